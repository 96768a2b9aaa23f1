package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/das/pkg/config"
	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/filesystem"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/paths"
	"github.com/arthur-debert/das/pkg/reconcile"
	"github.com/arthur-debert/das/pkg/testutil"
	"github.com/arthur-debert/das/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	fs      types.FS
	manager *Manager
	anchor  string
	base    string
	partner string
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	t.Setenv(paths.EnvStateDir, "")

	anchor, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	fs := filesystem.NewOS()
	require.NoError(t, fs.MkdirAll(filepath.Join(anchor, paths.AnchorDirName), 0755))

	p, err := paths.New(anchor)
	require.NoError(t, err)
	if cfg == nil {
		cfg = config.Default()
	}
	m, err := NewManager(fs, p, cfg)
	require.NoError(t, err)

	return &fixture{
		fs:      fs,
		manager: m,
		anchor:  anchor,
		base:    filepath.Join(anchor, "base"),
		partner: filepath.Join(anchor, "partner"),
	}
}

// link sets base and partner in one persisted update.
func (f *fixture) link(t *testing.T) {
	t.Helper()
	require.NoError(t, f.manager.Update(func(s *Session) error {
		if _, err := s.SetBase(f.base); err != nil {
			return err
		}
		_, err := s.SetPartner(f.partner)
		return err
	}))
}

func (f *fixture) selection(t *testing.T) []string {
	t.Helper()
	var out []string
	require.NoError(t, f.manager.View(func(s *Session) error {
		out = s.Selection().Items()
		return nil
	}))
	return out
}

func TestHandlesPersist(t *testing.T) {
	f := newFixture(t, nil)
	f.link(t)

	require.NoError(t, f.manager.View(func(s *Session) error {
		assert.Equal(t, types.Directory{Name: types.BaseName, Path: f.base}, s.Base())
		assert.Equal(t, types.Directory{Name: types.PartnerName, Path: f.partner}, s.Partner())
		assert.True(t, s.Stateful())
		return nil
	}))
	assert.FileExists(t, filepath.Join(f.anchor, paths.AnchorDirName, paths.StateFileName))
}

func TestAliases(t *testing.T) {
	f := newFixture(t, nil)
	f.link(t)

	require.NoError(t, f.manager.Update(func(s *Session) error {
		path, err := s.SetAlias("backup", "")
		require.NoError(t, err)
		assert.Equal(t, f.partner, path)

		_, err = s.SetAlias("other", filepath.Join(f.anchor, "other"))
		require.NoError(t, err)
		return nil
	}))

	require.NoError(t, f.manager.Update(func(s *Session) error {
		dir, err := s.SetBase("other")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(f.anchor, "other"), dir.Path)

		dir, err = s.SetPartner("@backup")
		require.NoError(t, err)
		assert.Equal(t, f.partner, dir.Path)

		_, err = s.SetPartner("@missing")
		assert.True(t, errors.IsErrorCode(err, errors.ErrAliasNotFound))

		_, err = s.SetAlias("", "/x")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

		names, _ := s.Aliases()
		assert.Equal(t, []string{"backup", "other"}, names)

		s.ClearAliases()
		names, _ = s.Aliases()
		assert.Empty(t, names)
		return nil
	}))
}

func TestAliasNeedsPartner(t *testing.T) {
	f := newFixture(t, nil)

	err := f.manager.Update(func(s *Session) error {
		_, err := s.SetAlias("phone", "")
		return err
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoDirectory))
}

func TestSelectTokens(t *testing.T) {
	f := newFixture(t, nil)
	f.link(t)

	tests := []struct {
		name  string
		scope string
		token string
		want  string
	}{
		{name: "relative", token: "docs/a.txt", want: "docs/a.txt"},
		{name: "scoped", scope: "docs", token: "a.txt", want: "docs/a.txt"},
		{name: "rooted", scope: "docs", token: "/music/b.mp3", want: "music/b.mp3"},
		{name: "absolute under base", scope: "docs", token: filepath.Join(f.base, "img", "c.png"), want: "img/c.png"},
		{name: "absolute under partner", token: filepath.Join(f.partner, "d"), want: "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, f.manager.Update(func(s *Session) error {
				s.Clear()
				if _, err := s.SetScope(tt.scope); err != nil {
					return err
				}
				_, err := s.Select(tt.token)
				return err
			}))
			assert.Equal(t, []string{tt.want}, f.selection(t))
		})
	}
}

func TestSetScopeFromAbsolutePath(t *testing.T) {
	f := newFixture(t, nil)
	f.link(t)

	require.NoError(t, f.manager.Update(func(s *Session) error {
		scope, err := s.SetScope(filepath.Join(f.base, "docs", "2024"))
		require.NoError(t, err)
		assert.Equal(t, "docs/2024", scope)

		_, err = s.SetScope("../up")
		assert.True(t, errors.IsErrorCode(err, errors.ErrPathEscape))
		assert.Equal(t, "docs/2024", s.Scope())
		return nil
	}))
}

func TestFailedUpdateIsNotSaved(t *testing.T) {
	f := newFixture(t, nil)
	f.link(t)

	err := f.manager.Update(func(s *Session) error {
		if _, err := s.Select("a"); err != nil {
			return err
		}
		_, err := s.Select("../escape")
		return err
	})
	require.Error(t, err)
	assert.Empty(t, f.selection(t))
}

func TestStatelessKeepsHandlesOnly(t *testing.T) {
	f := newFixture(t, nil)
	f.link(t)

	require.NoError(t, f.manager.Update(func(s *Session) error {
		s.SetStateful(false)
		_, err := s.Select("a", "b")
		return err
	}))

	require.NoError(t, f.manager.View(func(s *Session) error {
		assert.False(t, s.Stateful())
		assert.Equal(t, f.base, s.Base().Path)
		assert.True(t, s.Selection().IsEmpty())
		return nil
	}))
}

func TestSectionSelection(t *testing.T) {
	f := newFixture(t, nil)
	testutil.Tree(t, f.fs, f.base, "only-base.txt", "shared.txt", "dir/inner.txt")
	testutil.Tree(t, f.fs, f.partner, "only-partner.txt", "shared.txt", "dir/")
	f.link(t)

	require.NoError(t, f.manager.Update(func(s *Session) error {
		set, err := s.SelectBaseExclusive()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"dir/inner.txt", "only-base.txt"}, set.Items())

		set, err = s.SelectIntersection()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"dir/inner.txt", "only-base.txt", "dir", "shared.txt"}, set.Items())

		set, err = s.DeselectBaseExclusive()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"dir", "shared.txt"}, set.Items())

		set, err = s.SelectPartnerExclusive()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"dir", "shared.txt", "only-partner.txt"}, set.Items())

		set, err = s.DeselectPartnerExclusive()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"dir", "shared.txt"}, set.Items())

		set, err = s.DeselectIntersection()
		require.NoError(t, err)
		assert.True(t, set.IsEmpty())
		return nil
	}))
}

func TestSectionsNeedAHandle(t *testing.T) {
	f := newFixture(t, nil)

	err := f.manager.Update(func(s *Session) error {
		_, err := s.SelectIntersection()
		return err
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoDirectory))
}

func TestIgnorePatterns(t *testing.T) {
	cfg := config.Default()
	cfg.Scan.Ignore = append(cfg.Scan.Ignore, "*.tmp")
	f := newFixture(t, cfg)
	testutil.CreateFile(t, f.fs, f.anchor, cfg.Scan.IgnoreFile, "# build output\nbuild/\n")

	m, err := NewManager(f.fs, f.manager.Paths(), cfg)
	require.NoError(t, err)
	f.manager = m

	testutil.Tree(t, f.fs, f.base, "keep.txt", "scratch.tmp", "build/out.bin")
	f.link(t)

	require.NoError(t, f.manager.Update(func(s *Session) error {
		set, err := s.SelectBaseExclusive()
		require.NoError(t, err)
		assert.Equal(t, []string{"keep.txt"}, set.Items())
		return nil
	}))
}

func TestPushAndPull(t *testing.T) {
	f := newFixture(t, nil)
	testutil.Tree(t, f.fs, f.base, "docs/a.txt=alpha")
	testutil.Tree(t, f.fs, f.partner, "music/b.mp3=beat")
	f.link(t)

	require.NoError(t, f.manager.Update(func(s *Session) error {
		_, err := s.Select("docs/a.txt")
		return err
	}))

	require.NoError(t, f.manager.Update(func(s *Session) error {
		res, err := s.CopyTo(s.Selection())
		require.NoError(t, err)
		assert.Equal(t, reconcile.OpCopy, res.Operation)
		assert.Equal(t, []string{"docs/a.txt"}, res.Files)

		set, err := s.Targets("/music/b.mp3")
		require.NoError(t, err)
		_, err = s.CopyFrom(set)
		return err
	}))

	testutil.AssertFileContent(t, f.fs, filepath.Join(f.partner, "docs", "a.txt"), "alpha")
	testutil.AssertFileContent(t, f.fs, filepath.Join(f.base, "music", "b.mp3"), "beat")
	assert.Equal(t, []string{"docs/a.txt"}, f.selection(t), "targets do not touch the selection")
}

func TestGiveAndTake(t *testing.T) {
	f := newFixture(t, nil)
	testutil.Tree(t, f.fs, f.base, "out/a.txt")
	testutil.Tree(t, f.fs, f.partner, "in/b.txt")
	f.link(t)

	require.NoError(t, f.manager.Update(func(s *Session) error {
		if _, err := s.MoveTo(pathset.New("out")); err != nil {
			return err
		}
		_, err := s.MoveFrom(pathset.New("in"))
		return err
	}))

	assert.Equal(t, []string{"in/", "in/b.txt"}, testutil.ListTree(t, f.fs, f.base))
	assert.Equal(t, []string{"out/", "out/a.txt"}, testutil.ListTree(t, f.fs, f.partner))
}

func TestRemoveAndTouch(t *testing.T) {
	f := newFixture(t, nil)
	testutil.Tree(t, f.fs, f.base, "a.txt")
	testutil.Tree(t, f.fs, f.partner, "b.txt")
	f.link(t)

	require.NoError(t, f.manager.Update(func(s *Session) error {
		if _, err := s.RemoveAtBase(pathset.New("a.txt")); err != nil {
			return err
		}
		if _, err := s.RemoveAtPartner(pathset.New("b.txt")); err != nil {
			return err
		}
		if _, err := s.TouchBase(pathset.New("new/one.txt")); err != nil {
			return err
		}
		_, err := s.TouchPartner(pathset.New("two.txt"))
		return err
	}))

	assert.Equal(t, []string{"new/", "new/one.txt"}, testutil.ListTree(t, f.fs, f.base))
	assert.Equal(t, []string{"two.txt"}, testutil.ListTree(t, f.fs, f.partner))
}

func TestReconcileNeedsHandles(t *testing.T) {
	f := newFixture(t, nil)

	verbs := map[string]func(*Session, pathset.PathSet) (*reconcile.Result, error){
		"copy-to":        (*Session).CopyTo,
		"copy-from":      (*Session).CopyFrom,
		"move-to":        (*Session).MoveTo,
		"move-from":      (*Session).MoveFrom,
		"remove-base":    (*Session).RemoveAtBase,
		"remove-partner": (*Session).RemoveAtPartner,
		"touch-base":     (*Session).TouchBase,
		"touch-partner":  (*Session).TouchPartner,
	}
	for name, verb := range verbs {
		t.Run(name, func(t *testing.T) {
			err := f.manager.View(func(s *Session) error {
				_, err := verb(s, pathset.New("a"))
				return err
			})
			assert.True(t, errors.IsErrorCode(err, errors.ErrNoDirectory))
		})
	}
}

func TestDryRunFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Reconcile.DryRun = true
	f := newFixture(t, cfg)
	testutil.Tree(t, f.fs, f.base, "a.txt")
	f.link(t)

	require.NoError(t, f.manager.View(func(s *Session) error {
		res, err := s.CopyTo(pathset.New("a.txt"))
		require.NoError(t, err)
		assert.True(t, res.DryRun)
		assert.Equal(t, []string{"a.txt"}, res.Files)
		return nil
	}))
	assert.NoDirExists(t, f.partner)
}

func TestBackupAndRestore(t *testing.T) {
	f := newFixture(t, nil)
	testutil.Tree(t, f.fs, f.base, "notes/n.md=v1")
	f.link(t)

	require.NoError(t, f.manager.View(func(s *Session) error {
		res, err := s.Backup(pathset.New("notes"), "")
		require.NoError(t, err)
		assert.Equal(t, f.manager.Paths().BackupDir(), res.Root)
		return nil
	}))
	testutil.AssertFileContent(t, f.fs, filepath.Join(f.manager.Paths().BackupDir(), "notes", "n.md"), "v1")

	require.NoError(t, os.WriteFile(filepath.Join(f.base, "notes", "n.md"), []byte("v2"), 0644))
	require.NoError(t, f.manager.View(func(s *Session) error {
		_, err := s.Restore(pathset.New("notes/n.md"), "")
		return err
	}))
	testutil.AssertFileContent(t, f.fs, filepath.Join(f.base, "notes", "n.md"), "v1")
}

func TestStatusReport(t *testing.T) {
	f := newFixture(t, nil)
	testutil.Tree(t, f.fs, f.base, "a.txt=12345", "dir/b.txt=123", "only.txt")
	testutil.Tree(t, f.fs, f.partner, "a.txt", "dir/", "extra.txt")
	f.link(t)

	require.NoError(t, f.manager.Update(func(s *Session) error {
		if _, err := s.Select("a.txt", "dir", "missing"); err != nil {
			return err
		}
		if _, err := s.Stash("saved"); err != nil {
			return err
		}
		_, err := s.Select("a.txt", "dir")
		return err
	}))

	require.NoError(t, f.manager.View(func(s *Session) error {
		report, err := s.Status()
		require.NoError(t, err)

		assert.Equal(t, f.anchor, report.Anchor)
		assert.Equal(t, f.base, report.Base)
		require.NotNil(t, report.Sections)
		assert.Equal(t, 2, report.Sections.BaseExclusive)
		assert.Equal(t, 2, report.Sections.Intersection)
		assert.Equal(t, 1, report.Sections.PartnerExclusive)
		assert.Equal(t, []string{"a.txt", "dir"}, report.Selection)
		assert.Equal(t, int64(8), report.SelectionBytes)
		require.Len(t, report.Stash, 1)
		assert.Equal(t, "saved", report.Stash[0].Key)
		assert.Equal(t, 3, report.Stash[0].Size)
		return nil
	}))
}

func TestHandlesResolveLinks(t *testing.T) {
	f := newFixture(t, nil)
	testutil.Tree(t, f.fs, f.base, "docs/a.txt")
	viaLink := filepath.Join(f.anchor, "base-link")
	require.NoError(t, os.Symlink(f.base, viaLink))

	require.NoError(t, f.manager.Update(func(s *Session) error {
		dir, err := s.SetBase(viaLink)
		require.NoError(t, err)
		assert.Equal(t, f.base, dir.Path)

		_, err = s.Select(filepath.Join(viaLink, "docs", "a.txt"))
		return err
	}))
	assert.Equal(t, []string{"docs/a.txt"}, f.selection(t))
}
