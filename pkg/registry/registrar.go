package registry

import (
	"context"
	"time"

	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
)

// Registration is the input to Registrar.Register.
type Registration struct {
	Name       string
	Path       string
	URI        string
	Type       Framework
	Properties map[string]string
}

// Registrar submits registrations to a Client.
type Registrar struct {
	client Client
}

// NewRegistrar creates a Registrar backed by client.
func NewRegistrar(client Client) *Registrar {
	return &Registrar{client: client}
}

// Register sanitizes the model name and submits a create-or-update request
// with an empty description and no tags. The call is not retried; its
// latency is logged.
func (r *Registrar) Register(ctx context.Context, reg Registration) (*Model, error) {
	logger := logging.FromContext(ctx)

	name := reg.Name
	if !IsValidModelName(name) {
		logger.Info().
			Str("pattern", ValidModelNamePattern).
			Msg("Updating model name to match pattern")
		name = SanitizeModelName(name)
		logger.Info().Str("model_name", name).Msg("Updated model name")
	}
	if !IsValidModelName(name) {
		return nil, errors.NewValidationError("model_name", reg.Name, "model name is empty")
	}

	modelType := reg.Type
	if modelType == "" {
		modelType = FrameworkCustom
	}

	req := Request{
		Name:        name,
		Path:        reg.Path,
		URI:         reg.URI,
		Type:        modelType,
		Description: "",
		Tags:        map[string]string{},
		Properties:  reg.Properties,
	}

	start := time.Now()
	model, err := r.client.Register(ctx, req)
	if err != nil {
		return nil, errors.WrapResource("register", "model", name, err)
	}
	logger.Info().
		Float64("seconds", time.Since(start).Seconds()).
		Msg("Time to register")

	logger.Info().
		Str("model_name", model.Name).
		Str("model_version", model.Version).
		Msg("Registered model")
	logger.Info().Str("asset_id", model.ID).Msg("Model registered")

	return model, nil
}
