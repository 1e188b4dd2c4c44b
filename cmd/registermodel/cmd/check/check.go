// Package check provides the model availability command.
package check

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/registermodel/internal/appcontext"
	"github.com/agentstation/registermodel/internal/cmd/format"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
	"github.com/agentstation/registermodel/pkg/registry"
)

// NewCommand creates the check command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var name, version string

	cmd := &cobra.Command{
		Use:     "check",
		GroupID: "management",
		Short:   "Check whether a model version is registered",
		Long: `Check looks up a model version in the registry.

The check is best effort: lookup failures are logged and reported as
"not found", and the command exits 0 either way.`,
		Example: `  registermodel check --model_name llama-2-7b-ft-1234 --model_version 1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" {
				return errors.NewValidationError("model_name", name, "is required")
			}
			if version == "" {
				return errors.NewValidationError("model_version", version, "is required")
			}
			return run(cmd, app, name, version)
		},
	}

	cmd.Flags().StringVar(&name, "model_name", "", "Registered model name")
	cmd.Flags().StringVar(&version, "model_version", "", "Registered model version")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, name, version string) error {
	ctx := cmd.Context()
	result := format.Availability{Name: name, Version: version}

	client, err := app.Registry(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Registry unavailable")
	} else {
		result.Model, result.Available = registry.Lookup(ctx, client, name, version)
	}

	return format.Available(cmd.OutOrStdout(), app.OutputFormat(), result)
}
