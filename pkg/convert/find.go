package convert

import (
	"io/fs"
	"regexp"
	"sort"

	"github.com/agentstation/registermodel/internal/fsutil"
	"github.com/agentstation/registermodel/pkg/errors"
)

// DefaultInclude matches PyTorch weight files.
var DefaultInclude = regexp.MustCompile(`\.bin$`)

// FindWeightFiles walks root and returns the sorted paths of regular files
// whose path matches include and does not match exclude. Symlinks are
// followed, root itself included. A nil include uses DefaultInclude; a nil
// exclude excludes nothing.
func FindWeightFiles(root string, include, exclude *regexp.Regexp) ([]string, error) {
	if include == nil {
		include = DefaultInclude
	}

	var files []string
	err := fsutil.Walk(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !include.MatchString(path) {
			return nil
		}
		if exclude != nil && exclude.MatchString(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.WrapIO("walk", root, err)
	}

	sort.Strings(files)
	return files, nil
}
