package session

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/das/pkg/config"
	"github.com/arthur-debert/das/pkg/datastore"
	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/logging"
	"github.com/arthur-debert/das/pkg/paths"
	"github.com/arthur-debert/das/pkg/reconcile"
	"github.com/arthur-debert/das/pkg/scanner"
	"github.com/arthur-debert/das/pkg/selection"
	"github.com/arthur-debert/das/pkg/types"
	"github.com/rs/zerolog"
	ignore "github.com/sabhiram/go-gitignore"
)

// Manager opens sessions for one anchor. Every call reads the persisted
// state afresh.
type Manager struct {
	fs       types.FS
	paths    paths.Paths
	cfg      *config.Config
	store    datastore.DataStore
	scanner  *scanner.Scanner
	executor *reconcile.Executor
	logger   zerolog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithStore replaces the state store derived from the configuration.
func WithStore(store datastore.DataStore) ManagerOption {
	return func(m *Manager) {
		m.store = store
	}
}

// NewManager wires the state store, scanner and executor for p from cfg.
func NewManager(fsys types.FS, p paths.Paths, cfg *config.Config, opts ...ManagerOption) (*Manager, error) {
	m := &Manager{
		fs:     fsys,
		paths:  p,
		cfg:    cfg,
		logger: logging.GetLogger("session"),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		dir := p.StateDir()
		if cfg.State.Dir != "" {
			dir = paths.ExpandHome(cfg.State.Dir)
		}
		m.store = datastore.New(fsys,
			filepath.Join(dir, cfg.State.File),
			filepath.Join(dir, paths.LockFileName))
	}

	matcher, err := m.ignoreMatcher()
	if err != nil {
		return nil, err
	}
	var scanOpts []scanner.Option
	if matcher != nil {
		scanOpts = append(scanOpts, scanner.WithIgnore(matcher))
	}
	m.scanner = scanner.New(fsys, scanOpts...)

	m.executor = reconcile.New(fsys,
		reconcile.WithPolicy(cfg.Policy()),
		reconcile.WithDryRun(cfg.Reconcile.DryRun),
		reconcile.WithScanner(m.scanner),
	)
	return m, nil
}

// ignoreMatcher compiles scan.ignore plus the lines of scan.ignore_file
// found at the anchor. It returns nil when there is nothing to ignore.
func (m *Manager) ignoreMatcher() (scanner.Matcher, error) {
	lines := append([]string{}, m.cfg.Scan.Ignore...)

	if m.cfg.Scan.IgnoreFile != "" {
		path := filepath.Join(m.paths.Anchor(), m.cfg.Scan.IgnoreFile)
		data, err := m.fs.ReadFile(path)
		switch {
		case err == nil:
			lines = append(lines, strings.Split(string(data), "\n")...)
		case !stderrors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read ignore file %s", path)
		}
	}

	if len(lines) == 0 {
		return nil, nil
	}
	m.logger.Debug().Strs("patterns", lines).Msg("scan ignore patterns")
	return ignore.CompileIgnoreLines(lines...), nil
}

// Paths returns the resolved locations.
func (m *Manager) Paths() paths.Paths {
	return m.paths
}

// Update runs fn on the session while holding the state lock and saves
// the result. Nothing is saved when fn fails.
func (m *Manager) Update(fn func(s *Session) error) error {
	_, err := m.store.Update(func(state *datastore.Session) error {
		s, err := m.open(state)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		state.Snapshot = s.sel.Snapshot()
		return nil
	})
	return err
}

// View runs fn on the session without saving it.
func (m *Manager) View(fn func(s *Session) error) error {
	state, err := m.store.Load()
	if err != nil {
		return err
	}
	s, err := m.open(state)
	if err != nil {
		return err
	}
	return fn(s)
}

func (m *Manager) open(state *datastore.Session) (*Session, error) {
	sel, err := selection.FromSnapshot(state.Snapshot)
	if err != nil {
		return nil, err
	}
	return &Session{
		manager: m,
		state:   state,
		sel:     sel,
		logger:  m.logger,
	}, nil
}
