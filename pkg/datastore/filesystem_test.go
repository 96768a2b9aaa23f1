package datastore

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/filesystem"
	"github.com/arthur-debert/das/pkg/selection"
	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...Option) (DataStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".das")
	return New(filesystem.NewOS(), filepath.Join(dir, "state.json"), filepath.Join(dir, "state.lock"), opts...), dir
}

func TestLoadMissingIsFresh(t *testing.T) {
	store, _ := newStore(t)

	session, err := store.Load()
	require.NoError(t, err)
	assert.True(t, session.Stateful)
	assert.Equal(t, CurrentVersion, session.Version)
	assert.NotNil(t, session.Alias)
	assert.Empty(t, session.Selection)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newStore(t)

	session := NewSession()
	session.Base = "/data/base"
	session.Partner = "/data/partner"
	session.Alias["phone"] = "/mnt/phone"
	session.Snapshot = selection.Snapshot{
		Scope:      "docs",
		Selection:  []string{"docs/a", "docs/b"},
		Stash:      map[string][]string{"0": {"x"}},
		StashOrder: []string{"0"},
		StashSeq:   1,
	}
	require.NoError(t, store.Save(session))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, session, loaded)
}

func TestStatelessDropsSelection(t *testing.T) {
	store, _ := newStore(t)

	session := NewSession()
	session.Stateful = false
	session.Base = "/b"
	session.Selection = []string{"a"}
	session.Stash["k"] = []string{"a"}
	require.NoError(t, store.Save(session))
	assert.Equal(t, []string{"a"}, session.Selection, "the caller's session is untouched")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.False(t, loaded.Stateful)
	assert.Equal(t, "/b", loaded.Base)
	assert.Empty(t, loaded.Selection)
	assert.Empty(t, loaded.Stash)
}

func TestLoadErrors(t *testing.T) {
	fs := filesystem.NewMemory()
	store := New(fs, "/s/state.json", filepath.Join(t.TempDir(), "state.lock"))

	require.NoError(t, fs.MkdirAll("/s", 0755))
	require.NoError(t, fs.WriteFile("/s/state.json", []byte("{not json"), 0644))
	_, err := store.Load()
	assert.True(t, errors.IsErrorCode(err, errors.ErrStateLoad))

	require.NoError(t, fs.WriteFile("/s/state.json", []byte(`{"version": 99}`), 0644))
	_, err = store.Load()
	assert.True(t, errors.IsErrorCode(err, errors.ErrStateLoad))
}

func TestUpdate(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Update(func(s *Session) error {
		s.Base = "/first"
		return nil
	})
	require.NoError(t, err)

	boom := stderrors.New("boom")
	_, err = store.Update(func(s *Session) error {
		s.Base = "/second"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "/first", loaded.Base, "a failed update is not saved")
}

func TestUpdateWaitsForLock(t *testing.T) {
	store, dir := newStore(t, WithLockTimeout(100*time.Millisecond))
	require.NoError(t, os.MkdirAll(dir, 0755))

	other := flock.New(filepath.Join(dir, "state.lock"))
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	_, err = store.Update(func(*Session) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStateLocked))

	require.NoError(t, other.Unlock())
	_, err = store.Update(func(*Session) error { return nil })
	assert.NoError(t, err)
}
