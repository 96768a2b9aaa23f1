package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/das/pkg/types"
)

// Exists reports whether anything (file, directory or link) is present at
// path. Errors other than "not exist" are returned.
func Exists(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// IsDir reports whether path is a directory, without following links.
func IsDir(fsys types.FS, path string) (bool, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// IsEmptyDir reports whether path is a directory without entries.
func IsEmptyDir(fsys types.FS, path string) (bool, error) {
	entries, err := fsys.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

// CopyFile copies the bytes of src to dst, keeping the source permissions.
// The destination's parent directory must already exist.
func CopyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "copy", Path: src, Err: fs.ErrInvalid}
	}
	content, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	return fsys.WriteFile(dst, content, info.Mode().Perm())
}

// Touch creates an empty file at path. The parent must exist.
func Touch(fsys types.FS, path string) error {
	return fsys.WriteFile(path, nil, 0644)
}

func parentOf(path string) string {
	return filepath.Dir(filepath.Clean(path))
}
