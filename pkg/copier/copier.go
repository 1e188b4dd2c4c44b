// Package copier copies a model directory tree into an output folder.
//
// Copies merge into an existing destination: files at the same relative
// path are overwritten, unrelated files are kept, and copying the same tree
// twice leaves the destination as after the first copy.
package copier

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentstation/registermodel/internal/fsutil"
	"github.com/agentstation/registermodel/pkg/constants"
	"github.com/agentstation/registermodel/pkg/errors"
	"github.com/agentstation/registermodel/pkg/logging"
)

// Stats summarizes a copy.
type Stats struct {
	Files int
	Dirs  int
	Bytes int64
}

// CopyTree copies src into dst, creating dst if needed. Symlinks are
// followed, src itself included, and their targets copied; a symlinked
// directory that leads back into its own tree is skipped. When dst lies
// inside src its subtree is skipped.
func CopyTree(ctx context.Context, src, dst string) (*Stats, error) {
	logger := logging.FromContext(ctx)
	logger.Info().Str("source", src).Str("destination", dst).Msg("Started copying the model to output directory")

	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return nil, errors.WrapIO("resolve", src, err)
	}
	dstAbs, err := filepath.Abs(dst)
	if err != nil {
		return nil, errors.WrapIO("resolve", dst, err)
	}

	info, err := os.Stat(srcAbs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("directory", src)
		}
		return nil, errors.WrapIO("stat", src, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("model_path", src, "must be a directory")
	}

	if err := os.MkdirAll(dstAbs, info.Mode().Perm()|0o700); err != nil {
		return nil, errors.WrapIO("create", dstAbs, err)
	}
	dstInfo, err := os.Stat(dstAbs)
	if err != nil {
		return nil, errors.WrapIO("stat", dstAbs, err)
	}

	stats := &Stats{}
	if os.SameFile(info, dstInfo) {
		logger.Warn().Str("path", srcAbs).Msg("Source and destination are the same directory")
		return stats, nil
	}
	err = fsutil.Walk(srcAbs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapIO("walk", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fi, err := d.Info()
		if err != nil {
			return errors.WrapIO("stat", path, err)
		}
		rel, err := filepath.Rel(srcAbs, path)
		if err != nil {
			return errors.WrapIO("resolve", path, err)
		}
		target := filepath.Join(dstAbs, rel)

		if d.IsDir() {
			if path != srcAbs && os.SameFile(fi, dstInfo) {
				return filepath.SkipDir
			}
			if err := os.MkdirAll(target, fi.Mode().Perm()|0o700); err != nil {
				return errors.WrapIO("create", target, err)
			}
			stats.Dirs++
			return nil
		}
		if !fi.Mode().IsRegular() {
			return nil
		}
		return copyFile(path, target, fi.Mode(), stats)
	})
	if err != nil {
		return stats, err
	}

	logger.Info().
		Int("files", stats.Files).
		Int("dirs", stats.Dirs).
		Int64("bytes", stats.Bytes).
		Msg("Completed copying the model")
	return stats, nil
}

func copyFile(src, dst string, mode fs.FileMode, stats *Stats) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapIO("open", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(dst), err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return errors.WrapIO("create", dst, err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return errors.WrapIO("copy", src, err)
	}
	if err := out.Close(); err != nil {
		return errors.WrapIO("close", dst, err)
	}
	// OpenFile keeps the mode of an existing file.
	if err := os.Chmod(dst, mode.Perm()); err != nil {
		return errors.WrapIO("chmod", dst, err)
	}

	stats.Files++
	stats.Bytes += n
	return nil
}
