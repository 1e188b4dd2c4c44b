package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/registermodel/cmd/registermodel/cmd/register"
	"github.com/agentstation/registermodel/internal/cmd/globals"
	"github.com/agentstation/registermodel/internal/cmd/output"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
)

// Execute runs the registermodel CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
// The root command itself runs the registration.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := register.NewCommand(a)
	rootCmd.Version = a.version
	rootCmd.PersistentPreRunE = a.setupCommand
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	a.flags = globals.AddFlags(rootCmd)

	rootCmd.SetVersionTemplate("registermodel {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if a.flags.ConfigFile != "" {
		config, err := ReloadConfig(a.flags.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}
	a.config.UpdateFromFlags(a.flags)

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return errors.WrapValidation("format", err)
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
