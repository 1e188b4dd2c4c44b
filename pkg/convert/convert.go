package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/registermodel/pkg/constants"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
	"github.com/agentstation/registermodel/pkg/safetensors"
)

// Loader reads a weight file into named tensors.
type Loader interface {
	Load(path string) ([]safetensors.Tensor, error)
}

// Result records one converted file.
type Result struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Tensors int    `json:"tensors"`
}

// TargetPath returns the safetensors path for a .bin file.
func TargetPath(path string) string {
	return strings.TrimSuffix(path, constants.BinaryWeightsExtension) + constants.SafetensorsExtension
}

// File converts a single weight file. The target is written to a temporary
// file and renamed into place; the source is removed only after the rename.
// On failure the source is untouched and no partial target remains.
func File(ctx context.Context, loader Loader, path string) (*Result, error) {
	logger := logging.FromContext(ctx)
	target := TargetPath(path)

	tensors, err := loader.Load(path)
	if err != nil {
		return nil, &errors.ConversionError{Source: path, Target: target, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return nil, &errors.ConversionError{Source: path, Target: target, Err: errors.WrapIO("create", target, err)}
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if err := safetensors.Write(tmp, tensors, map[string]string{"format": "pt"}); err != nil {
		_ = tmp.Close()
		cleanup()
		return nil, &errors.ConversionError{Source: path, Target: target, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return nil, &errors.ConversionError{Source: path, Target: target, Err: errors.WrapIO("close", tmpPath, err)}
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		cleanup()
		return nil, &errors.ConversionError{Source: path, Target: target, Err: errors.WrapIO("chmod", tmpPath, err)}
	}
	if err := os.Rename(tmpPath, target); err != nil {
		cleanup()
		return nil, &errors.ConversionError{Source: path, Target: target, Err: errors.WrapIO("rename", target, err)}
	}
	logger.Info().Str("path", target).Int("tensors", len(tensors)).Msg("Created safetensors file")

	if err := os.Remove(path); err != nil {
		return nil, &errors.ConversionError{Source: path, Target: target, Err: errors.WrapIO("delete", path, err)}
	}
	logger.Info().Str("path", path).Msg("Deleted weight file")

	return &Result{Source: path, Target: target, Tensors: len(tensors)}, nil
}

// Dir converts every .bin file under root in path order. It stops at the
// first failure; files converted before it stay converted.
func Dir(ctx context.Context, loader Loader, root string) ([]Result, error) {
	logger := logging.FromContext(ctx)

	files, err := FindWeightFiles(root, nil, nil)
	if err != nil {
		return nil, err
	}
	logger.Info().Strs("files", files).Msg("Identified weight files")

	results := make([]Result, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := File(ctx, loader, path)
		if err != nil {
			return results, err
		}
		results = append(results, *res)
	}
	return results, nil
}
