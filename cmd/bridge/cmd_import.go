package main

import (
	"encoding/json"
	"fmt"
	"io"

	"cathedral-bridge/application/commands"
	"cathedral-bridge/application/ports"
	"cathedral-bridge/application/queries"
	"cathedral-bridge/application/services"
	"cathedral-bridge/infrastructure/persistence/filesystem"

	"github.com/spf13/cobra"
)

// source opens a document path, with - meaning stdin
func (a *app) source(cmd *cobra.Command, path string) ports.Source {
	if path == "-" {
		return filesystem.NewReaderSource(cmd.InOrStdin(), "stdin", a.cfg.MaxPayloadBytes)
	}
	return filesystem.NewFileSource(path, a.cfg.MaxPayloadBytes)
}

func newImportCmd(a *app) *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a document and print its summary",
		Long:  `Reads an interchange document, validates it completely and prints what it contains. With --store the document is also saved to the configured document store.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			source := a.source(cmd, args[0])

			data, err := source.Read(ctx)
			if err != nil {
				return err
			}
			bundle, err := a.container.Manager.ImportFrom(ctx, services.NewPayloadSource(data, source.Location()))
			if err != nil {
				return err
			}

			if store != "" {
				if err := a.container.CommandBus.Send(ctx, commands.StoreDocumentCommand{Name: store, Payload: data}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", okStyle.Render("stored"), pathStyle.Render(store))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(bundle.Summarize())
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "Also store the document under this name")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|->...",
		Short: "Validate documents without importing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			failed := 0

			for _, path := range args {
				source := a.source(cmd, path)
				data, err := source.Read(ctx)
				if err != nil {
					failed++
					printVerdict(out, source.Location(), err)
					continue
				}

				result, err := a.container.QueryBus.Ask(ctx, queries.ValidateDocumentQuery{Payload: data})
				if err != nil {
					return err
				}
				validation := result.(*queries.ValidationResult)
				if validation.Valid {
					printVerdict(out, source.Location(), nil)
					continue
				}

				failed++
				fmt.Fprintf(out, "%s %s\n", errorStyle.Render("FAIL"), pathStyle.Render(source.Location()))
				for _, v := range validation.Violations {
					fmt.Fprintf(out, "  %s: %s %s\n", v.Path, v.Message, mutedStyle.Render("["+v.Code+"]"))
				}
				if validation.Truncated {
					fmt.Fprintln(out, mutedStyle.Render("  (more violations omitted)"))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
			}
			return nil
		},
	}
}

func printVerdict(out io.Writer, path string, err error) {
	if err != nil {
		fmt.Fprintf(out, "%s %s: %v\n", errorStyle.Render("FAIL"), pathStyle.Render(path), err)
		return
	}
	fmt.Fprintf(out, "%s %s\n", okStyle.Render("ok"), pathStyle.Render(path))
}
