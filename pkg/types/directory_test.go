package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDirectory(t *testing.T) {
	t.Run("relative path becomes absolute", func(t *testing.T) {
		dir, err := NewDirectory(BaseName, "some/dir/../dir")
		require.NoError(t, err)

		assert.True(t, filepath.IsAbs(dir.Path))
		assert.Equal(t, "dir", filepath.Base(dir.Path))
		assert.Equal(t, BaseName, dir.Name)
	})

	t.Run("links are resolved", func(t *testing.T) {
		root, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		target := filepath.Join(root, "target")
		require.NoError(t, os.Mkdir(target, 0755))
		link := filepath.Join(root, "link")
		require.NoError(t, os.Symlink(target, link))

		dir, err := NewDirectory(PartnerName, link)
		require.NoError(t, err)
		assert.Equal(t, target, dir.Path)

		dir, err = NewDirectory(PartnerName, filepath.Join(link, "missing"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(target, "missing"), dir.Path)
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		_, err := NewDirectory(PartnerName, "")
		assert.Error(t, err)
	})
}

func TestDirectoryJoin(t *testing.T) {
	dir := Directory{Name: BaseName, Path: "/data/base"}

	assert.Equal(t, "/data/base", dir.Join(""))
	assert.Equal(t, "/data/base", dir.Join("."))
	assert.Equal(t, filepath.Join("/data/base", "a", "b.txt"), dir.Join("a/b.txt"))
	assert.False(t, dir.IsZero())
	assert.True(t, Directory{}.IsZero())
	assert.Equal(t, "base(/data/base)", dir.String())
}
