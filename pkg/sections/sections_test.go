package sections

import (
	"testing"

	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/filesystem"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/scanner"
	"github.com/arthur-debert/das/pkg/testutil"
	"github.com/arthur-debert/das/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassifier(t *testing.T, base, partner []string) *Classifier {
	t.Helper()

	fs := filesystem.NewMemory()
	testutil.Tree(t, fs, "/base", base...)
	testutil.Tree(t, fs, "/partner", partner...)

	b, err := types.NewDirectory(types.BaseName, "/base")
	require.NoError(t, err)
	p, err := types.NewDirectory(types.PartnerName, "/partner")
	require.NoError(t, err)

	return New(scanner.New(fs), b, p)
}

func TestSections(t *testing.T) {
	c := newClassifier(t,
		[]string{"a/x.txt", "both.txt", "docs/readme.md", "docs/base-only.md"},
		[]string{"a/y.txt", "both.txt", "docs/readme.md", "extra/"},
	)

	own, err := c.OwnBase("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a/x.txt", "both.txt", "docs", "docs/base-only.md", "docs/readme.md"}, own.Items())

	ownPartner, err := c.OwnPartner("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a/y.txt", "both.txt", "docs", "docs/readme.md", "extra"}, ownPartner.Items())

	baseOnly, err := c.BaseExclusive("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/x.txt", "docs/base-only.md"}, baseOnly.Items())

	partnerOnly, err := c.PartnerExclusive("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/y.txt", "extra"}, partnerOnly.Items())

	inter, err := c.Intersection("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "both.txt", "docs", "docs/readme.md"}, inter.Items())
}

func TestPartitionHoldsForEveryScope(t *testing.T) {
	c := newClassifier(t,
		[]string{"a/x.txt", "a/b/c.txt", "a/b/d/", "m/k.txt", "f", "z.txt"},
		[]string{"a/b/c.txt", "a/b/e.txt", "m", "f/g.txt"},
	)

	for _, scope := range []string{"", ".", "a", "a/b", "a/b/d", "m", "missing"} {
		t.Run("scope="+scope, func(t *testing.T) {
			own, err := c.OwnBase(scope)
			require.NoError(t, err)
			exclusive, err := c.BaseExclusive(scope)
			require.NoError(t, err)
			inter, err := c.Intersection(scope)
			require.NoError(t, err)

			assert.True(t, pathset.Intersect(exclusive, inter).IsEmpty())
			assert.ElementsMatch(t, own.Items(), pathset.Union(exclusive, inter).Items())
		})
	}
}

func TestScopedPathsStayRootRelative(t *testing.T) {
	c := newClassifier(t, []string{"sub/a.txt", "sub/b.txt"}, []string{"sub/a.txt"})

	got, err := c.BaseExclusive("sub/")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/b.txt"}, got.Items())

	own, err := c.Own(c.Partner(), "sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/a.txt"}, own.Items())
}

func TestScopeEscape(t *testing.T) {
	c := newClassifier(t, []string{"a.txt"}, nil)

	for _, scope := range []string{"..", "a/../../x", "/etc"} {
		_, err := c.OwnBase(scope)
		require.Error(t, err, scope)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPathEscape), scope)
	}
}

func TestUnsetHandles(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.Tree(t, fs, "/base", "a.txt")
	b, err := types.NewDirectory(types.BaseName, "/base")
	require.NoError(t, err)

	c := New(scanner.New(fs), b, types.Directory{})

	exclusive, err := c.BaseExclusive("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, exclusive.Items(), "everything is exclusive without a partner")

	inter, err := c.Intersection("")
	require.NoError(t, err)
	assert.True(t, inter.IsEmpty())

	partner, err := c.OwnPartner("")
	require.NoError(t, err)
	assert.True(t, partner.IsEmpty())
}
