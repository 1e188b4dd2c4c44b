// Package fsutil holds filesystem helpers shared by the copy and convert steps.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Walk walks the tree rooted at root like filepath.WalkDir, except that
// root and symlinks are followed. Paths passed to fn stay under root as
// given; entries reached through a symlink describe the link target but
// keep the link's name. A symlinked directory whose target contains the
// link, or any link on the way to it, is skipped.
func Walk(root string, fn fs.WalkDirFunc) error {
	real, err := filepath.EvalSymlinks(root)
	if err != nil {
		return fn(root, nil, err)
	}
	info, err := os.Stat(real)
	if err != nil {
		return fn(root, nil, err)
	}

	err = walk(root, real, followed{info: info, name: filepath.Base(root)}, []string{real}, fn)
	if errors.Is(err, filepath.SkipDir) || errors.Is(err, filepath.SkipAll) {
		return nil
	}
	return err
}

// walk visits path, whose resolved location is real. chain holds the
// resolved roots and link positions that led here.
func walk(path, real string, d fs.DirEntry, chain []string, fn fs.WalkDirFunc) error {
	if err := fn(path, d, nil); err != nil || !d.IsDir() {
		return err
	}

	entries, err := os.ReadDir(real)
	if err != nil {
		return fn(path, d, err)
	}

	for _, e := range entries {
		childPath := filepath.Join(path, e.Name())
		childReal := filepath.Join(real, e.Name())
		childChain := chain

		if e.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(childReal)
			if err == nil {
				var info fs.FileInfo
				if info, err = os.Stat(target); err == nil {
					if info.IsDir() && loops(chain, childReal, target) {
						continue
					}
					childChain = append(chain[:len(chain):len(chain)], childReal)
					e = followed{info: info, name: e.Name()}
					childReal = target
				}
			}
			if err != nil {
				if err := fn(childPath, e, err); err != nil && !errors.Is(err, filepath.SkipDir) {
					return err
				}
				continue
			}
		}

		if err := walk(childPath, childReal, e, childChain, fn); err != nil {
			if !errors.Is(err, filepath.SkipDir) {
				return err
			}
			if !e.IsDir() {
				return nil
			}
		}
	}
	return nil
}

// loops reports whether descending into target from the link at pos would
// revisit pos or any position in chain.
func loops(chain []string, pos, target string) bool {
	if Within(pos, target) {
		return true
	}
	for _, p := range chain {
		if Within(p, target) {
			return true
		}
	}
	return false
}

// Within reports whether path is dir or below it.
func Within(path, dir string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}

// followed is the DirEntry of a symlink target under the link's name.
type followed struct {
	info fs.FileInfo
	name string
}

func (f followed) Name() string               { return f.name }
func (f followed) IsDir() bool                { return f.info.IsDir() }
func (f followed) Type() fs.FileMode          { return f.info.Mode().Type() }
func (f followed) Info() (fs.FileInfo, error) { return f.info, nil }
