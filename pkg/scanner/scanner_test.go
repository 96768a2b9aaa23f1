package scanner

import (
	"errors"
	"path/filepath"
	"testing"

	daserrors "github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/filesystem"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/testutil"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanTree(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.Tree(t, fs, "/root", "b/c.txt", "a/", "b/a.txt", "z.txt", "b/d/e.txt")

	s := New(fs)
	tree, err := s.ScanTree("/root")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "b/a.txt", "b/c.txt", "b/d", "b/d/e.txt", "z.txt"}, tree.Items(),
		"entries come depth-first pre-order, sorted by name, empty dirs included")
}

func TestScanTreeMissingRoot(t *testing.T) {
	fs := filesystem.NewMemory()
	s := New(fs)

	tree, err := s.ScanTree("/nowhere")
	require.NoError(t, err)
	assert.True(t, tree.IsEmpty())

	testutil.Tree(t, fs, "/root", "file")
	tree, err = s.ScanTree("/root/file")
	require.NoError(t, err)
	assert.True(t, tree.IsEmpty(), "a file root lists as empty")
}

func TestScanTreeAt(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.Tree(t, fs, "/root", "top.txt", "sub/one.txt", "sub/deep/two.txt")

	tree, err := New(fs).ScanTreeAt("/root", "sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/deep", "sub/deep/two.txt", "sub/one.txt"}, tree.Items(),
		"scoped results stay relative to the root")
}

func TestScenarioSections(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.Tree(t, fs, "/base", "a/x.txt")
	testutil.Tree(t, fs, "/partner", "a/", "a/y.txt")

	s := New(fs)

	inter, err := s.ScanIntersection("/base", "/partner")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, inter.Items())

	baseOnly, err := s.ScanExclusive("/base", "/partner")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/x.txt"}, baseOnly.Items())

	partnerOnly, err := s.ScanExclusive("/partner", "/base")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/y.txt"}, partnerOnly.Items())
}

func TestScanExclusiveIncludesWholeSubtree(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.Tree(t, fs, "/base", "only/x/y.txt", "only/z.txt", "shared.txt")
	testutil.Tree(t, fs, "/partner", "shared.txt")

	s := New(fs)
	got, err := s.ScanExclusive("/base", "/partner")
	require.NoError(t, err)
	assert.Equal(t, []string{"only", "only/x", "only/x/y.txt", "only/z.txt"}, got.Items())

	inter, err := s.ScanIntersection("/base", "/partner")
	require.NoError(t, err)
	assert.Equal(t, []string{"shared.txt"}, inter.Items())
}

func TestScanAgainstMissingPartner(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.Tree(t, fs, "/base", "a/b.txt")

	s := New(fs)
	got, err := s.ScanExclusive("/base", "/missing")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a/b.txt"}, got.Items())

	inter, err := s.ScanIntersection("/base", "/missing")
	require.NoError(t, err)
	assert.True(t, inter.IsEmpty())
}

func TestTypeMismatch(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.Tree(t, fs, "/base", "dir-vs-file/inner.txt", "file-vs-dir")
	testutil.Tree(t, fs, "/partner", "dir-vs-file", "file-vs-dir/inner.txt")

	s := New(fs)

	inter, err := s.ScanIntersection("/base", "/partner")
	require.NoError(t, err)
	assert.Equal(t, []string{"dir-vs-file", "file-vs-dir"}, inter.Items(),
		"a same-named entry counts as intersecting whatever its type")

	exclusive, err := s.ScanExclusive("/base", "/partner")
	require.NoError(t, err)
	assert.Equal(t, []string{"dir-vs-file/inner.txt"}, exclusive.Items(),
		"nothing below a mismatched base directory has a counterpart")
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name    string
		base    []string
		partner []string
	}{
		{
			name:    "disjoint",
			base:    []string{"a/b.txt", "c.txt"},
			partner: []string{"d/e.txt"},
		},
		{
			name:    "identical",
			base:    []string{"a/b.txt", "c/"},
			partner: []string{"a/b.txt", "c/"},
		},
		{
			name:    "mixed",
			base:    []string{"a/x.txt", "a/shared/s.txt", "m/k/l.txt", "f", "e/"},
			partner: []string{"a/y.txt", "a/shared/s.txt", "m", "f/g.txt", "e/"},
		},
		{
			name:    "empty base",
			base:    nil,
			partner: []string{"a.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := filesystem.NewMemory()
			testutil.Tree(t, fs, "/base", tt.base...)
			testutil.Tree(t, fs, "/partner", tt.partner...)

			s := New(fs)
			own, err := s.ScanTree("/base")
			require.NoError(t, err)
			exclusive, err := s.ScanExclusive("/base", "/partner")
			require.NoError(t, err)
			inter, err := s.ScanIntersection("/base", "/partner")
			require.NoError(t, err)

			assert.True(t, pathset.Intersect(exclusive, inter).IsEmpty(), "sections must be disjoint")
			assert.ElementsMatch(t, own.Items(), pathset.Union(exclusive, inter).Items(), "sections must cover the tree")
		})
	}
}

func TestScopedComparison(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.Tree(t, fs, "/base", "top.txt", "sub/a.txt", "sub/b.txt")
	testutil.Tree(t, fs, "/partner", "sub/a.txt")

	s := New(fs)

	inter, err := s.ScanIntersectionAt("/base", "/partner", "sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/a.txt"}, inter.Items())

	exclusive, err := s.ScanExclusiveAt("/base", "/partner", "sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/b.txt"}, exclusive.Items())
}

func TestIgnore(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.Tree(t, fs, "/base", ".das/state.json", "keep.txt", "junk.tmp", "sub/more.tmp", "sub/real.txt")
	testutil.Tree(t, fs, "/partner", "keep.txt")

	s := New(fs, WithIgnore(ignore.CompileIgnoreLines(".das/", "*.tmp")))

	tree, err := s.ScanTree("/base")
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt", "sub", "sub/real.txt"}, tree.Items())

	exclusive, err := s.ScanExclusive("/base", "/partner")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub", "sub/real.txt"}, exclusive.Items())
}

func TestSymlinksAreLeaves(t *testing.T) {
	fs := filesystem.NewOS()
	root := t.TempDir()

	outside := t.TempDir()
	testutil.Tree(t, fs, outside, "secret.txt")
	testutil.Tree(t, fs, root, "real.txt")
	require.NoError(t, fs.Symlink(outside, filepath.Join(root, "link")))

	tree, err := New(fs).ScanTree(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"link", "real.txt"}, tree.Items())
}

func TestReadErrorsPropagate(t *testing.T) {
	fs := testutil.NewMemoryFS()
	testutil.Tree(t, fs, "/base", "a/b.txt")
	fs.FailOn("readdir", "/base/a", errors.New("permission denied"))

	_, err := New(fs).ScanTree("/base")
	require.Error(t, err)
	assert.True(t, daserrors.IsErrorCode(err, daserrors.ErrFilesystem))
}
