// Package workflow runs the post-fine-tuning registration step: optional
// weight conversion, name derivation, property extraction, registration,
// the result file, and an optional copy of the model to the output folder.
package workflow

import (
	"os"
	"strings"

	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/registry"
)

// Options configures a single run. It is built once from the command line
// and not modified afterwards.
type Options struct {
	ModelPath                 string             `json:"model_path" yaml:"model_path"`
	ModelURI                  string             `json:"model_uri,omitempty" yaml:"model_uri,omitempty"`
	ConvertToSafetensors      bool               `json:"convert_to_safetensors" yaml:"convert_to_safetensors"`
	CopyModelToOutput         bool               `json:"copy_model_to_output" yaml:"copy_model_to_output"`
	ModelType                 registry.Framework `json:"model_type" yaml:"model_type"`
	ModelName                 string             `json:"model_name,omitempty" yaml:"model_name,omitempty"`
	ModelVersion              string             `json:"model_version,omitempty" yaml:"model_version,omitempty"`
	FinetuneArgsPath          string             `json:"finetune_args_path" yaml:"finetune_args_path"`
	RegistrationDetailsFolder string             `json:"registration_details_folder" yaml:"registration_details_folder"`
}

// IsRemote reports whether ModelPath is a URI rather than a local path.
func (o Options) IsRemote() bool {
	return strings.Contains(o.ModelPath, "://")
}

// Validate checks required fields and that local inputs exist. It performs
// no writes.
func (o Options) Validate() error {
	if o.ModelPath == "" {
		return errors.NewValidationError("model_path", o.ModelPath, "is required")
	}
	if o.RegistrationDetailsFolder == "" {
		return errors.NewValidationError("registration_details_folder", o.RegistrationDetailsFolder, "is required")
	}
	if o.FinetuneArgsPath == "" {
		return errors.NewValidationError("finetune_args_path", o.FinetuneArgsPath, "is required")
	}
	if o.ModelType != "" {
		if _, err := registry.ParseFramework(string(o.ModelType)); err != nil {
			return err
		}
	}

	if o.IsRemote() {
		if o.ConvertToSafetensors {
			return errors.NewValidationError("convert_to_safetensors", true, "requires a local model_path")
		}
		if o.CopyModelToOutput {
			return errors.NewValidationError("copy_model_to_output", true, "requires a local model_path")
		}
		return nil
	}

	info, err := os.Stat(o.ModelPath)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewValidationError("model_path", o.ModelPath, "does not exist")
		}
		return errors.WrapIO("stat", o.ModelPath, err)
	}
	if !info.IsDir() {
		return errors.NewValidationError("model_path", o.ModelPath, "must be a directory")
	}
	return nil
}
