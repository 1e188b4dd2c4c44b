package finetune

import (
	"context"

	"github.com/google/uuid"

	"github.com/agentstation/registermodel/pkg/constants"
	"github.com/agentstation/registermodel/pkg/logging"
)

// IDFunc returns a unique token appended to derived model names.
type IDFunc func() string

// NewID returns a random (version 4) UUID string.
func NewID() string {
	return uuid.NewString()
}

// BaseModelName returns the third-from-last segment of the model asset ID.
// It reports false when the key is missing, not a string, or too short.
func (m Metadata) BaseModelName() (string, bool) {
	id, ok := m.ModelAssetID()
	if !ok {
		return "", false
	}
	parts, ok := segments(id)
	if !ok {
		return "", false
	}
	return parts[len(parts)-3], true
}

// DeriveModelName builds "<base>-ft-<id>" from the metadata file at path.
// A metadata file without a usable identifier falls back to
// constants.DefaultModelName; a file that cannot be read is an error.
func DeriveModelName(ctx context.Context, path string, newID IDFunc) (string, error) {
	logger := logging.FromContext(ctx)

	meta, err := Load(path)
	if err != nil {
		return "", err
	}

	base, ok := meta.BaseModelName()
	if !ok {
		logger.Warn().
			Str("key", ModelAssetIDKey).
			Msg("Base model identifier unavailable, using default name")
		base = constants.DefaultModelName
	}
	logger.Info().Str("base_model_name", base).Msg("Base model name")

	if newID == nil {
		newID = NewID
	}
	name := base + constants.FineTunedSuffix + newID()
	logger.Info().Str("model_name", name).Msg("Updated model name")

	return name, nil
}
