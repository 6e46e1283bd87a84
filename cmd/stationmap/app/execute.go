package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/stationmap/cmd/stationmap/cmd/fetch"
	"github.com/agentstation/stationmap/cmd/stationmap/cmd/list"
	"github.com/agentstation/stationmap/cmd/stationmap/cmd/organizations"
	"github.com/agentstation/stationmap/cmd/stationmap/cmd/render"
	"github.com/agentstation/stationmap/cmd/stationmap/cmd/version"
	"github.com/agentstation/stationmap/internal/cmd/output"
	"github.com/agentstation/stationmap/pkg/errors"
	"github.com/agentstation/stationmap/pkg/logging"
)

// Execute runs the stationmap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "stationmap",
		Short:   "Reference stations fetcher and map generator",
		Version: a.version,
		Long: `stationmap downloads the reference stations from the Hakai EIMS API,
assigns each work area to its organization and publishes the result as a CSV
and a static site with a station map and a station table.

A typical run fetches first and renders second:

  stationmap fetch  --output docs/stations.csv
  stationmap render --stations_csv docs/stations.csv --base_directory docs`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspection Commands:"})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.stationmap.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("format", "", "output format: table, wide, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("registry", "", "organization registry YAML file (default is the embedded registry)")

	rootCmd.SetVersionTemplate("stationmap {{.Version}}\n")
	if a.stdout != nil {
		rootCmd.SetOut(a.stdout)
	}

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config
// file named by --config, applies the global flags and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	format := mustGetString(cmd, "format")
	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		format,
		mustGetString(cmd, "log-level"),
		mustGetString(cmd, "registry"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	if a.config.ConfigFile != "" {
		a.logger.Debug().Str("config", a.config.ConfigFile).Msg("Using config file")
	}
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(fetch.NewCommand(a))
	rootCmd.AddCommand(render.NewCommand(a))

	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(organizations.NewCommand(a))

	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage formats err for the terminal; invalid input also points at --help.
func errorMessage(err error) string {
	msg := "Error: " + err.Error() + "\n"
	if errors.IsValidationError(err) {
		msg += "Run 'stationmap --help' for usage.\n"
	}
	return msg
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
