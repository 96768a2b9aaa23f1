package paths

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/das/pkg/errors"
)

// ValidatePath rejects empty paths, null bytes and paths longer than
// common filesystem limits.
func ValidatePath(p string) error {
	if p == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(p, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	if len(p) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// SanitizePath expands home and cleans the path. It never returns "".
func SanitizePath(p string) string {
	cleaned := filepath.Clean(expandHome(p))
	if cleaned == "" {
		return "."
	}
	return cleaned
}

// IsAbsolutePath returns true if the path is absolute.
func IsAbsolutePath(p string) bool {
	return filepath.IsAbs(p)
}

// RelativePath returns the relative path from base to target.
func RelativePath(base, target string) (string, error) {
	base = SanitizePath(base)
	target = SanitizePath(target)

	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput,
			"cannot determine relative path from %s to %s", base, target)
	}

	return rel, nil
}

// ContainsPath checks if child is parent or lies below it.
// Both paths are normalized before comparison.
func ContainsPath(parent, child string) bool {
	rel, err := RelativePath(parent, child)
	if err != nil {
		return false
	}
	return !escapes(filepath.ToSlash(rel))
}

// CleanRel normalizes a root-relative path to slash form; the root itself
// is "". Absolute paths and paths climbing out of the root fail with
// ErrPathEscape.
func CleanRel(rel string) (string, error) {
	if strings.Contains(rel, "\x00") {
		return "", errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	slashed := filepath.ToSlash(rel)
	if path.IsAbs(slashed) || filepath.IsAbs(rel) {
		return "", errors.Newf(errors.ErrPathEscape, "%q is not a relative path", rel).
			WithDetail("path", rel)
	}

	cleaned := path.Clean(slashed)
	if cleaned == "." {
		return "", nil
	}
	if escapes(cleaned) {
		return "", errors.Newf(errors.ErrPathEscape, "%q escapes its root", rel).
			WithDetail("path", rel)
	}
	return cleaned, nil
}

// JoinRel joins root-relative slash paths, treating "" as the root.
func JoinRel(elem ...string) string {
	joined := path.Join(elem...)
	if joined == "." {
		return ""
	}
	return joined
}

// ToSlashRel expresses the absolute path target relative to root in slash
// form. A target outside root fails with ErrPathEscape.
func ToSlashRel(root, target string) (string, error) {
	rel, err := RelativePath(root, target)
	if err != nil {
		return "", err
	}
	return CleanRel(rel)
}

func escapes(slashRel string) bool {
	return slashRel == ".." || strings.HasPrefix(slashRel, "../")
}
