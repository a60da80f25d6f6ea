package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"cathedral-bridge/application/queries"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newPresetsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the geometry and fractal presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := a.container.QueryBus.Ask(cmd.Context(), queries.ListPresetsQuery{})
			if err != nil {
				return err
			}
			presets := result.(*queries.PresetsResult)
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(presets)
			}

			geometries := newTable("GEOMETRY", "TITLE", "KIND", "FREQUENCY")
			for _, p := range presets.Geometries {
				geometries.Row(p.Name, p.Title, p.Kind, strconv.Itoa(p.Frequency))
			}
			fractals := newTable("FRACTAL", "TITLE", "ALGORITHM", "ITERATIONS")
			for _, p := range presets.Fractals {
				fractals.Row(p.Name, p.Title, p.Algorithm, strconv.Itoa(p.Iterations))
			}

			fmt.Fprintln(out, geometries.Render())
			fmt.Fprintln(out, fractals.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}
