// Package show provides the command that prints a registration result.
package show

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/registermodel/internal/appcontext"
	"github.com/agentstation/registermodel/internal/cmd/format"
	"github.com/agentstation/registermodel/pkg/details"
	"github.com/agentstation/registermodel/pkg/errors"
)

// NewCommand creates the show command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:     "show",
		GroupID: "management",
		Short:   "Show a saved registration result",
		Long: `Show reads model_registration_details.json from a registration details
folder and prints the registered model.`,
		Example: `  registermodel show --registration_details_folder ./out
  registermodel show --registration_details_folder ./out -o wide`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if folder == "" {
				return errors.NewValidationError("registration_details_folder", folder, "is required")
			}
			model, err := details.Read(folder)
			if err != nil {
				return err
			}
			return format.Model(cmd.OutOrStdout(), app.OutputFormat(), model)
		},
	}

	cmd.Flags().StringVar(&folder, "registration_details_folder", "",
		"Folder containing model_registration_details.json")

	return cmd
}
