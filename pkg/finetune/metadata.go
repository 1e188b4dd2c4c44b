// Package finetune reads the metadata file written by the upstream
// fine-tuning step and derives the model name and provenance properties
// attached to a registration.
package finetune

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/agentstation/registermodel/pkg/errors"
)

// ModelAssetIDKey holds the slash-delimited identifier of the base model.
// The key name is a contract with the fine-tuning step.
const ModelAssetIDKey = "model_asset_id"

// Metadata is the decoded fine-tune metadata file.
type Metadata map[string]any

// Load reads and decodes the metadata file at path.
func Load(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	if meta == nil {
		return nil, errors.NewParseError("json", path, "expected a JSON object", nil)
	}
	return meta, nil
}

// ModelAssetID returns the identifier string, if present.
func (m Metadata) ModelAssetID() (string, bool) {
	v, ok := m[ModelAssetIDKey]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// segments splits id on "/" and requires at least three parts.
func segments(id string) ([]string, bool) {
	parts := strings.Split(id, "/")
	if len(parts) < 3 {
		return nil, false
	}
	return parts, true
}
