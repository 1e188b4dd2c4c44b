// Package register provides the registration command, the CLI's root
// command.
package register

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/registermodel/internal/appcontext"
	"github.com/agentstation/registermodel/internal/cmd/format"
	"github.com/agentstation/registermodel/internal/cmd/globals"
	"github.com/agentstation/registermodel/pkg/logging"
	"github.com/agentstation/registermodel/pkg/registry"
	"github.com/agentstation/registermodel/pkg/workflow"
)

// NewCommand creates the register command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	opts := &workflow.Options{}

	cmd := &cobra.Command{
		Use:   "registermodel",
		Short: "Register a fine-tuned model with the model registry",
		Long: `Registermodel runs after a fine-tuning job and registers the resulting
model directory with the model registry.

Steps run in order and stop at the first failure:
  1. convert .bin weight files to .safetensors (--convert_to_safetensors)
  2. derive the model name from the fine-tune metadata unless --model_name is set
  3. register the model with the base model properties
  4. write model_registration_details.json to --registration_details_folder
  5. copy the model directory to the same folder (--copy_model_to_output)`,
		Example: `  registermodel --model_path ./model --finetune_args_path ./finetune_args.json \
      --registration_details_folder ./out
  registermodel --model_path ./model --finetune_args_path ./args.json \
      --registration_details_folder ./out --convert_to_safetensors true --model_type PRESETS
  registermodel --registry local --local_registry_path ./registry \
      --model_path ./model --finetune_args_path ./args.json --registration_details_folder ./out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, *opts)
		},
	}

	AddFlags(cmd, opts)
	return cmd
}

// AddFlags binds the registration flags to opts. Flag names use
// underscores to match the job's argument contract.
func AddFlags(cmd *cobra.Command, opts *workflow.Options) {
	f := cmd.Flags()
	f.StringVar(&opts.ModelPath, "model_path", "",
		"Directory containing the fine-tuned model, or a URI to it")
	f.StringVar(&opts.ModelURI, "model_uri", "",
		"Registry-visible artifact URI (default derived from the run)")
	f.Var(globals.NewStrictBool("convert_to_safetensors", &opts.ConvertToSafetensors, false), "convert_to_safetensors",
		"Convert .bin weight files to .safetensors before registering")
	f.Var(globals.NewStrictBool("copy_model_to_output", &opts.CopyModelToOutput, false), "copy_model_to_output",
		"Copy the model directory to the registration details folder")
	f.Var(globals.NewFrameworkValue(&opts.ModelType, registry.FrameworkCustom), "model_type",
		"Model type: Custom or PRESETS")
	f.StringVar(&opts.ModelName, "model_name", "",
		"Model name (default derived from the fine-tune metadata)")
	f.StringVar(&opts.FinetuneArgsPath, "finetune_args_path", "",
		"Path to the fine-tune metadata JSON file")
	f.StringVar(&opts.ModelVersion, "model_version", "",
		"Requested model version (logged only; the registry assigns versions)")
	f.StringVar(&opts.RegistrationDetailsFolder, "registration_details_folder", "",
		"Folder for model_registration_details.json")
}

func run(cmd *cobra.Command, app appcontext.Interface, opts workflow.Options) error {
	ctx := cmd.Context()
	pipelineRun := app.RunContext()
	if pipelineRun != nil && pipelineRun.RunID != "" {
		ctx = logging.WithRunID(ctx, pipelineRun.RunID)
	}

	// Malformed options fail before the registry client is built.
	if err := opts.Validate(); err != nil {
		return err
	}

	client, err := app.Registry(ctx)
	if err != nil {
		return err
	}

	result, err := workflow.Run(ctx, opts, workflow.Deps{
		Registry: client,
	})
	if err != nil {
		return err
	}

	return format.Result(cmd.OutOrStdout(), app.OutputFormat(), result)
}
