// Package local is a registry backend that stores model versions in a
// directory tree:
//
//	<root>/models/<name>/<version>/model.json
//	<root>/models/<name>/<version>/artifact/...
package local

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/agentstation/utc"

	"github.com/agentstation/registermodel/pkg/constants"
	"github.com/agentstation/registermodel/pkg/copier"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
	"github.com/agentstation/registermodel/pkg/registry"
)

const artifactDir = "artifact"

// Record is the stored form of a model version.
type Record struct {
	registry.Model
	URI       string   `json:"uri,omitempty"`
	Source    string   `json:"source,omitempty"`
	CreatedAt utc.Time `json:"created_at"`
}

// Registry is a file-backed registry.Client.
type Registry struct {
	root string
	mu   sync.Mutex
}

// New returns a registry rooted at root. The directory is created on
// first registration.
func New(root string) *Registry {
	return &Registry{root: root}
}

var _ registry.Client = (*Registry)(nil)

func (r *Registry) modelDir(name string) string {
	return filepath.Join(r.root, "models", name)
}

func (r *Registry) versionDir(name, version string) string {
	return filepath.Join(r.modelDir(name), version)
}

// checkKey rejects names and versions that could leave the registry root.
func checkKey(name, version string) error {
	if !registry.IsValidModelName(name) {
		return errors.NewValidationError("model_name", name, "must match "+registry.ValidModelNamePattern)
	}
	if version != "" && !registry.IsValidModelName(version) {
		return errors.NewValidationError("model_version", version, "must match "+registry.ValidModelNamePattern)
	}
	return nil
}

// Register stores the next version of req.Name and copies req.Path into
// the version's artifact directory.
func (r *Registry) Register(ctx context.Context, req registry.Request) (*registry.Model, error) {
	if err := checkKey(req.Name, ""); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	version, err := r.nextVersion(req.Name)
	if err != nil {
		return nil, err
	}
	dir := r.versionDir(req.Name, version)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dir, err)
	}

	if req.Path != "" {
		if _, err := copier.CopyTree(ctx, req.Path, filepath.Join(dir, artifactDir)); err != nil {
			_ = os.RemoveAll(dir)
			return nil, err
		}
	}

	rec := Record{
		Model: registry.Model{
			ID:          req.Name + ":" + version,
			Name:        req.Name,
			Version:     version,
			Type:        req.Type,
			Properties:  nonNil(req.Properties),
			Tags:        nonNil(req.Tags),
			Description: req.Description,
		},
		URI:       req.URI,
		Source:    req.Path,
		CreatedAt: utc.Now(),
	}
	if err := writeRecord(filepath.Join(dir, constants.ModelRecordFile), &rec); err != nil {
		_ = os.RemoveAll(dir)
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("path", dir).
		Str("model_version", version).
		Msg("Stored model version")

	model := rec.Model
	return &model, nil
}

// Get returns a stored model version.
func (r *Registry) Get(_ context.Context, name, version string) (*registry.Model, error) {
	rec, err := r.Record(name, version)
	if err != nil {
		return nil, err
	}
	model := rec.Model
	return &model, nil
}

// Record returns the full stored record of a model version.
func (r *Registry) Record(name, version string) (*Record, error) {
	if err := checkKey(name, version); err != nil {
		return nil, err
	}
	if version == "" {
		return nil, errors.NewValidationError("model_version", version, "is required")
	}
	path := filepath.Join(r.versionDir(name, version), constants.ModelRecordFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("model", name+":"+version)
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return &rec, nil
}

// ArtifactPath returns the directory holding a version's files.
func (r *Registry) ArtifactPath(name, version string) string {
	return filepath.Join(r.versionDir(name, version), artifactDir)
}

func (r *Registry) nextVersion(name string) (string, error) {
	entries, err := os.ReadDir(r.modelDir(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "1", nil
		}
		return "", errors.WrapIO("read", r.modelDir(name), err)
	}

	highest := 0
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if n, err := strconv.Atoi(e.Name()); err == nil && n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1), nil
}

func writeRecord(path string, rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
