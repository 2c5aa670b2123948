package paths

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission given to a data file that does not
// exist yet.
const DefaultFileMode fs.FileMode = 0o644

// SaveTarget returns the file a save to path replaces and the permission
// bits the replacement must carry. A symlink at path resolves to the file
// it points at, so renaming over the target leaves the link in place. An
// existing file keeps its mode; a missing one gets DefaultFileMode.
func SaveTarget(path string) (string, fs.FileMode, error) {
	target := path
	resolved, err := filepath.EvalSymlinks(path)
	switch {
	case err == nil:
		target = resolved
	case !errors.Is(err, fs.ErrNotExist):
		return "", 0, err
	}

	info, err := os.Stat(target)
	switch {
	case err == nil:
		return target, info.Mode().Perm(), nil
	case errors.Is(err, fs.ErrNotExist):
		return target, DefaultFileMode, nil
	default:
		return "", 0, err
	}
}

// CreateTemp creates a temp file next to target with the given mode. The
// caller renames it over target once its content is complete.
func CreateTemp(target, pattern string, mode fs.FileMode) (*os.File, error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), pattern)
	if err != nil {
		return nil, err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	return tmp, nil
}
