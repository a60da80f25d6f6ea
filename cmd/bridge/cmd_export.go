package main

import (
	"fmt"

	"cathedral-bridge/application/ports"
	"cathedral-bridge/domain/core/valueobjects"
	"cathedral-bridge/infrastructure/persistence/filesystem"
	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var geometry, fractal, system, version, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export catalog presets as an interchange document",
		Example: `  bridge export --geometry tree_of_life --fractal achad_reversal -o tree.json
  bridge export --fractal julia_mystical --form array`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if geometry == "" && fractal == "" {
				return pkgerrors.NewInvalidRequestError("one of --geometry or --fractal is required")
			}

			defaults := valueobjects.NewMetadata(a.cfg.DefaultSystem, a.cfg.DefaultVersion)
			bundle, err := a.container.Catalog.Bundle(geometry, fractal, valueobjects.NewMetadata(system, version).WithDefaults(defaults))
			if err != nil {
				return err
			}

			var sink ports.Sink
			if out == "" || out == "-" {
				sink = filesystem.NewWriterSink(cmd.OutOrStdout(), "stdout")
			} else {
				sink = filesystem.NewFileSink(out)
			}
			if err := a.container.Manager.ExportTo(cmd.Context(), sink, bundle); err != nil {
				return err
			}

			if sink.Location() != "stdout" {
				summary := bundle.Summarize()
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s\n", okStyle.Render("exported"), pathStyle.Render(out),
					mutedStyle.Render(fmt.Sprintf("(%d vertices, %d edges, %d nodes)", summary.VertexCount, summary.EdgeCount, summary.NodeCount)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&geometry, "geometry", "g", "", "Geometry preset name")
	cmd.Flags().StringVarP(&fractal, "fractal", "f", "", "Fractal preset name")
	cmd.Flags().StringVar(&system, "system", "", "Metadata system (defaults to the configured system)")
	cmd.Flags().StringVar(&version, "version", "", "Metadata version (defaults to the configured version)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file; stdout when empty or -")
	return cmd
}
