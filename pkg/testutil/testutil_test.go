package testutil

import (
	"testing"

	"github.com/arthur-debert/das/pkg/filesystem"
	"github.com/stretchr/testify/assert"
)

func TestTreeAndListTree(t *testing.T) {
	fs := filesystem.NewMemory()

	Tree(t, fs, "/root",
		"a.txt",
		"docs/readme.md=hello",
		"empty/",
	)

	assert.Equal(t, []string{"a.txt", "docs/", "docs/readme.md", "empty/"}, ListTree(t, fs, "/root"))
	AssertFileContent(t, fs, "/root/docs/readme.md", "hello")
	AssertFileContent(t, fs, "/root/a.txt", "a.txt")
}

func TestCreateHelpers(t *testing.T) {
	fs := filesystem.NewMemory()

	dir := CreateDir(t, fs, "/root", "x/y")
	assert.True(t, DirExists(t, fs, dir))
	assert.False(t, FileExists(t, fs, dir))

	file := CreateFile(t, fs, dir, "z.txt", "zz")
	assert.True(t, FileExists(t, fs, file))
	assert.Equal(t, "zz", ReadFile(t, fs, file))
}

func TestListTreeMissingRoot(t *testing.T) {
	assert.Empty(t, ListTree(t, filesystem.NewMemory(), "/nowhere"))
}
