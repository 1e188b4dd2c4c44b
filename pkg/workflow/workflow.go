package workflow

import (
	"context"

	"github.com/agentstation/registermodel/internal/weights/pickle"
	"github.com/agentstation/registermodel/pkg/convert"
	"github.com/agentstation/registermodel/pkg/copier"
	"github.com/agentstation/registermodel/pkg/details"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/finetune"
	"github.com/agentstation/registermodel/pkg/logging"
	"github.com/agentstation/registermodel/pkg/registry"
	"github.com/agentstation/registermodel/pkg/workspace"
)

// Deps are the collaborators of a run.
type Deps struct {
	// Registry receives the registration. Required.
	Registry registry.Client
	// Loader reads .bin weight files; nil uses the PyTorch pickle loader.
	Loader convert.Loader
	// NewID generates the unique suffix of derived names; nil uses UUIDs.
	NewID finetune.IDFunc
}

// Result summarizes a completed run.
type Result struct {
	Model       *registry.Model  `json:"model"`
	DetailsPath string           `json:"details_path"`
	Converted   []convert.Result `json:"converted,omitempty"`
	Copied      *copier.Stats    `json:"copied,omitempty"`
}

// Run executes the workflow. Steps run in order and the first failure
// aborts the run; earlier side effects are not rolled back.
func Run(ctx context.Context, opts Options, deps Deps) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if deps.Registry == nil {
		return nil, errors.NewConfigError("workflow", "no registry client configured", nil)
	}
	if deps.Loader == nil {
		deps.Loader = pickle.New()
	}

	logger := logging.FromContext(ctx)
	res := &Result{}

	if opts.ConvertToSafetensors {
		converted, err := convert.Dir(logging.WithOperation(ctx, "convert"), deps.Loader, opts.ModelPath)
		if err != nil {
			return nil, err
		}
		res.Converted = converted
	}

	if opts.ModelVersion != "" {
		logger.Warn().
			Str("model_version", opts.ModelVersion).
			Msg("model_version is not applied; the registry assigns the next version")
	}

	name := opts.ModelName
	if name == "" {
		derived, err := finetune.DeriveModelName(ctx, opts.FinetuneArgsPath, deps.NewID)
		if err != nil {
			return nil, err
		}
		name = derived
	}

	meta, err := finetune.Load(opts.FinetuneArgsPath)
	if err != nil {
		return nil, err
	}
	props, err := finetune.ExtractProperties(meta)
	if err != nil {
		return nil, err
	}

	uri, err := workspace.ModelURI(opts.ModelPath, opts.ModelURI)
	if err != nil {
		return nil, err
	}

	modelType := opts.ModelType
	if modelType == "" {
		modelType = registry.FrameworkCustom
	}

	regCtx := logging.WithOperation(logging.WithModel(ctx, name), "register")
	model, err := registry.NewRegistrar(deps.Registry).Register(regCtx, registry.Registration{
		Name:       name,
		Path:       opts.ModelPath,
		URI:        uri,
		Type:       modelType,
		Properties: props.Strings(),
	})
	if err != nil {
		return nil, err
	}
	res.Model = model

	path, err := details.Write(ctx, opts.RegistrationDetailsFolder, model)
	if err != nil {
		return nil, err
	}
	res.DetailsPath = path

	if opts.CopyModelToOutput {
		stats, err := copier.CopyTree(logging.WithOperation(ctx, "copy"), opts.ModelPath, opts.RegistrationDetailsFolder)
		if err != nil {
			return nil, err
		}
		res.Copied = stats
	}

	return res, nil
}
