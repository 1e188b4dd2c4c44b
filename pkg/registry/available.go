package registry

import (
	"context"

	"github.com/agentstation/registermodel/pkg/logging"
)

// Lookup fetches a model version and reports whether it was found. Any
// error, including transport failures, is logged and reported as not found;
// the result is a hint, not an authoritative answer.
func Lookup(ctx context.Context, client Client, name, version string) (*Model, bool) {
	model, err := client.Get(ctx, name, version)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("model_name", name).
			Str("model_version", version).
			Msg("Model is not available")
		return nil, false
	}
	return model, true
}

// IsModelAvailable reports whether name and version are registered.
func IsModelAvailable(ctx context.Context, client Client, name, version string) bool {
	_, ok := Lookup(ctx, client, name, version)
	return ok
}
