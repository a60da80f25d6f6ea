// Command bridge exports, imports and validates interchange documents from
// the command line.
package main

import (
	"fmt"
	"os"

	"cathedral-bridge/infrastructure/config"
	"cathedral-bridge/infrastructure/di"

	"github.com/spf13/cobra"
)

// app holds what the subcommands share once the root command has run
type app struct {
	loadConfig func() (*config.Config, error)

	// persistent flags
	logLevel string
	form     string

	cfg       *config.Config
	container *di.Container
}

func newRootCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	a := &app{loadConfig: loadConfig}

	root := &cobra.Command{
		Use:           "bridge",
		Short:         "Cathedral interchange bridge",
		Long:          `Exports sacred geometry and fractal presets as interchange documents, and imports or validates documents produced by other tools.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.container != nil {
				a.container.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.form, "form", "", "Vertex form for written documents (object or array)")

	root.AddCommand(
		newExportCmd(a),
		newImportCmd(a),
		newValidateCmd(a),
		newPresetsCmd(a),
		newWatchCmd(a),
		newTokenCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.form != "" {
		cfg.VertexForm = a.form
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	container, err := di.InitializeContainer(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	a.cfg = cfg
	a.container = container
	return nil
}

func main() {
	if err := newRootCmd(config.LoadConfig).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}
