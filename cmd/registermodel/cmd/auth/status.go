package auth

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/registermodel/internal/appcontext"
	"github.com/agentstation/registermodel/internal/auth"
	"github.com/agentstation/registermodel/internal/cmd/format"
)

// NewStatusCommand creates the auth status subcommand using app context.
func NewStatusCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which credential a registration would use",
		Long: `Display the credential source for the configured registry backend.

Sources are checked in order: the run token of a tracked pipeline run,
AZURE_ACCESS_TOKEN, a service principal from AZURE_CLIENT_ID, AZURE_TENANT_ID
and AZURE_CLIENT_SECRET or AZURE_FEDERATED_TOKEN_FILE, and finally the default
Azure credential chain.

The command inspects the environment only and does not request a token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend := app.Backend()
			status := auth.NewChecker().Check(backend, app.RunContext())
			return format.Auth(cmd.OutOrStdout(), app.OutputFormat(), backend, status)
		},
	}
}
