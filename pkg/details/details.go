// Package details writes and reads the registration result file consumed
// by downstream pipeline steps.
package details

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/agentstation/registermodel/pkg/constants"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
	"github.com/agentstation/registermodel/pkg/registry"
)

// FileName is the result file inside the registration details folder.
const FileName = constants.RegistrationDetailsFile

const indent = "    "

// file is the on-disk layout. Integer versions are written as JSON numbers,
// the type the workspace SDKs report for model versions.
type file struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Version     json.RawMessage    `json:"version"`
	Type        registry.Framework `json:"type"`
	Properties  map[string]string  `json:"properties"`
	Tags        map[string]string  `json:"tags"`
	Description string             `json:"description"`
}

func encodeVersion(v string) json.RawMessage {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil && strconv.FormatInt(n, 10) == v {
		return json.RawMessage(v)
	}
	raw, _ := json.Marshal(v)
	return raw
}

// decodeVersion accepts a number or a string.
func decodeVersion(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// Path returns the result file path inside folder.
func Path(folder string) string {
	return filepath.Join(folder, FileName)
}

// Write records model in folder, creating the folder if needed and
// overwriting an existing result file.
func Write(ctx context.Context, folder string, model *registry.Model) (string, error) {
	if model == nil {
		return "", errors.NewValidationError("model", nil, "registered model is nil")
	}

	data, err := json.MarshalIndent(file{
		ID:          model.ID,
		Name:        model.Name,
		Version:     encodeVersion(model.Version),
		Type:        model.Type,
		Properties:  model.Properties,
		Tags:        model.Tags,
		Description: model.Description,
	}, "", indent)
	if err != nil {
		return "", errors.WrapParse("json", FileName, err)
	}

	if err := os.MkdirAll(folder, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", folder, err)
	}

	path := Path(folder)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}

	logging.FromContext(ctx).Info().
		Str("path", path).
		Msg("Saved the model registration details")
	return path, nil
}

// Read loads the result file from folder.
func Read(folder string) (*registry.Model, error) {
	path := Path(folder)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("registration details", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	version, err := decodeVersion(f.Version)
	if err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return &registry.Model{
		ID:          f.ID,
		Name:        f.Name,
		Version:     version,
		Type:        f.Type,
		Properties:  f.Properties,
		Tags:        f.Tags,
		Description: f.Description,
	}, nil
}
