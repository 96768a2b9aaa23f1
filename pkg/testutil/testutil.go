package testutil

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/das/pkg/types"
)

// Tree creates entries under root. An entry ending in "/" is a directory;
// "name=content" writes content, otherwise the file holds its own path.
// Parent directories are created as needed.
func Tree(t *testing.T, fsys types.FS, root string, entries ...string) {
	t.Helper()

	if err := fsys.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create root %s: %v", root, err)
	}

	for _, entry := range entries {
		if strings.HasSuffix(entry, "/") {
			dir := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(entry, "/")))
			if err := fsys.MkdirAll(dir, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", dir, err)
			}
			continue
		}

		name, content := entry, entry
		if i := strings.Index(entry, "="); i >= 0 {
			name, content = entry[:i], entry[i+1:]
		}
		CreateFile(t, fsys, root, name, content)
	}
}

// CreateFile creates a file with the given content under dir, creating
// parent directories first. It fails the test on error.
func CreateFile(t *testing.T, fsys types.FS, dir, name, content string) string {
	t.Helper()

	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := fsys.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", p, err)
	}
	if err := fsys.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", p, err)
	}
	return p
}

// CreateDir creates dir/name with its parents and returns its path.
func CreateDir(t *testing.T, fsys types.FS, dir, name string) string {
	t.Helper()

	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := fsys.MkdirAll(p, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", p, err)
	}
	return p
}

// ListTree returns every descendant of root as sorted slash paths, with
// directories suffixed by "/". A missing root lists as empty.
func ListTree(t *testing.T, fsys types.FS, root string) []string {
	t.Helper()

	var out []string
	pending := []string{""}
	for len(pending) > 0 {
		rel := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := fsys.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			if rel == "" {
				return []string{}
			}
			t.Fatalf("Failed to list %s: %v", rel, err)
		}
		for _, e := range entries {
			child := path.Join(rel, e.Name())
			if e.IsDir() {
				out = append(out, child+"/")
				pending = append(pending, child)
				continue
			}
			out = append(out, child)
		}
	}

	sort.Strings(out)
	if out == nil {
		return []string{}
	}
	return out
}

// ReadFile reads the content of a file and returns it as a string.
// It fails the test if the file cannot be read.
func ReadFile(t *testing.T, fsys types.FS, p string) string {
	t.Helper()

	content, err := fsys.ReadFile(p)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", p, err)
	}
	return string(content)
}

// FileExists reports whether p exists and is not a directory.
func FileExists(t *testing.T, fsys types.FS, p string) bool {
	t.Helper()

	info, err := fsys.Stat(p)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists reports whether p exists and is a directory.
func DirExists(t *testing.T, fsys types.FS, p string) bool {
	t.Helper()

	info, err := fsys.Stat(p)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// AssertFileContent checks that a file exists and has the expected content.
func AssertFileContent(t *testing.T, fsys types.FS, p, expected string) {
	t.Helper()

	if !FileExists(t, fsys, p) {
		t.Fatalf("File %s does not exist", p)
	}
	if actual := ReadFile(t, fsys, p); actual != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", p, expected, actual)
	}
}
