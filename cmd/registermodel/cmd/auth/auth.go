// Package auth provides registry credential commands.
package auth

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/registermodel/internal/appcontext"
)

// NewCommand creates the auth command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auth",
		GroupID: "management",
		Short:   "Inspect registry credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewStatusCommand(app))

	return cmd
}
