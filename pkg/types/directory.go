package types

import (
	"fmt"
	"path/filepath"
)

// Logical names of the two trees a session works on.
const (
	BaseName    = "base"
	PartnerName = "partner"
)

// Directory is a canonical absolute location plus the logical name used in
// logs and messages.
type Directory struct {
	Name string
	Path string
}

// NewDirectory builds a handle for path. The path is made absolute and
// canonical, see Canonical.
func NewDirectory(name, path string) (Directory, error) {
	if path == "" {
		return Directory{}, fmt.Errorf("%s directory path is empty", name)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Directory{}, fmt.Errorf("failed to resolve %s directory %s: %w", name, path, err)
	}
	return Directory{Name: name, Path: Canonical(abs)}, nil
}

// Canonical resolves symbolic links in the absolute path abs on the real
// filesystem. When abs does not exist, its deepest existing ancestor is
// resolved and the missing tail appended as given.
func Canonical(abs string) string {
	abs = filepath.Clean(abs)
	var tail []string
	for dir := abs; ; {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(append([]string{resolved}, tail...)...)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		tail = append([]string{filepath.Base(dir)}, tail...)
		dir = parent
	}
}

// IsZero reports whether the handle was never set.
func (d Directory) IsZero() bool {
	return d.Path == ""
}

// Join resolves a slash-separated relative path against the directory.
func (d Directory) Join(rel string) string {
	if rel == "" || rel == "." {
		return d.Path
	}
	return filepath.Join(d.Path, filepath.FromSlash(rel))
}

func (d Directory) String() string {
	return fmt.Sprintf("%s(%s)", d.Name, d.Path)
}
