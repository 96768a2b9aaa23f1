package datastore

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/logging"
	"github.com/arthur-debert/das/pkg/selection"
	"github.com/arthur-debert/das/pkg/types"
	"github.com/goccy/go-json"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
)

// DefaultLockTimeout bounds how long Update waits for another das process.
const DefaultLockTimeout = 5 * time.Second

type filesystemDataStore struct {
	fs          types.FS
	path        string
	lockPath    string
	lockTimeout time.Duration
	logger      zerolog.Logger
}

// Option configures the store.
type Option func(*filesystemDataStore)

// WithLockTimeout changes how long Update waits for the lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *filesystemDataStore) {
		s.lockTimeout = d
	}
}

// New creates a DataStore keeping the session at statePath. The lock file
// is taken on the real filesystem at lockPath.
func New(fsys types.FS, statePath, lockPath string, opts ...Option) DataStore {
	s := &filesystemDataStore{
		fs:          fsys,
		path:        statePath,
		lockPath:    lockPath,
		lockTimeout: DefaultLockTimeout,
		logger:      logging.GetLogger("datastore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *filesystemDataStore) Path() string {
	return s.path
}

func (s *filesystemDataStore) Load() (*Session, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			s.logger.Debug().Str("path", s.path).Msg("no state file, starting fresh")
			return NewSession(), nil
		}
		return nil, errors.Wrapf(err, errors.ErrStateLoad, "failed to read %s", s.path)
	}

	session := NewSession()
	if err := json.Unmarshal(data, session); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStateLoad, "failed to parse %s", s.path).
			WithDetail("path", s.path)
	}
	if session.Version > CurrentVersion {
		return nil, errors.Newf(errors.ErrStateLoad, "%s was written by a newer das (version %d)", s.path, session.Version)
	}
	session.Version = CurrentVersion
	if session.Alias == nil {
		session.Alias = make(map[string]string)
	}
	if session.Stash == nil {
		session.Stash = make(map[string][]string)
	}
	return session, nil
}

func (s *filesystemDataStore) Save(session *Session) error {
	out := *session
	out.Version = CurrentVersion
	if !out.Stateful {
		out.Snapshot = selection.Snapshot{Stash: map[string][]string{}}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrStateSave, "failed to encode session")
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrStateSave, "failed to create %s", filepath.Dir(s.path))
	}
	tmp := s.path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrStateSave, "failed to write %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return errors.Wrapf(err, errors.ErrStateSave, "failed to replace %s", s.path)
	}

	s.logger.Trace().Str("path", s.path).Int("bytes", len(data)).Msg("session saved")
	return nil
}

func (s *filesystemDataStore) Update(fn func(*Session) error) (*Session, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	session, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return session, err
	}
	if err := s.Save(session); err != nil {
		return session, err
	}
	return session, nil
}

// lock takes the state lock, retrying until the timeout. The lock lives
// on the real filesystem whatever types.FS the store uses.
func (s *filesystemDataStore) lock() (func(), error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStateLocked, "failed to create %s", filepath.Dir(s.lockPath))
	}

	fl := flock.New(s.lockPath)
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 25*time.Millisecond)
	if err != nil && !stderrors.Is(err, context.DeadlineExceeded) {
		return nil, errors.Wrapf(err, errors.ErrStateLocked, "failed to lock %s", s.lockPath)
	}
	if !locked {
		return nil, errors.Newf(errors.ErrStateLocked, "state is locked by another das process (%s)", s.lockPath).
			WithDetail("path", s.lockPath)
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			s.logger.Warn().Err(err).Str("path", s.lockPath).Msg("failed to release state lock")
		}
	}, nil
}
