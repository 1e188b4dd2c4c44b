package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/registermodel/cmd/registermodel/cmd/auth"
	"github.com/agentstation/registermodel/cmd/registermodel/cmd/check"
	"github.com/agentstation/registermodel/cmd/registermodel/cmd/show"
	"github.com/agentstation/registermodel/cmd/registermodel/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(check.NewCommand(a))
	rootCmd.AddCommand(show.NewCommand(a))
	rootCmd.AddCommand(auth.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}
