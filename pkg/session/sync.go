package session

import (
	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/logging"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/paths"
	"github.com/arthur-debert/das/pkg/reconcile"
	"github.com/arthur-debert/das/pkg/types"
)

// CopyTo copies set from base to partner (push).
func (s *Session) CopyTo(set pathset.PathSet) (*reconcile.Result, error) {
	return s.run("copy-to", func() (*reconcile.Result, error) {
		base, partner, err := s.both()
		if err != nil {
			return nil, err
		}
		return s.manager.executor.Copy(set, base, partner)
	})
}

// CopyFrom copies set from partner to base (pull).
func (s *Session) CopyFrom(set pathset.PathSet) (*reconcile.Result, error) {
	return s.run("copy-from", func() (*reconcile.Result, error) {
		base, partner, err := s.both()
		if err != nil {
			return nil, err
		}
		return s.manager.executor.Copy(set, partner, base)
	})
}

// MoveTo moves set from base to partner (give).
func (s *Session) MoveTo(set pathset.PathSet) (*reconcile.Result, error) {
	return s.run("move-to", func() (*reconcile.Result, error) {
		base, partner, err := s.both()
		if err != nil {
			return nil, err
		}
		return s.manager.executor.Move(set, base, partner)
	})
}

// MoveFrom moves set from partner to base (take).
func (s *Session) MoveFrom(set pathset.PathSet) (*reconcile.Result, error) {
	return s.run("move-from", func() (*reconcile.Result, error) {
		base, partner, err := s.both()
		if err != nil {
			return nil, err
		}
		return s.manager.executor.Move(set, partner, base)
	})
}

// RemoveAtBase deletes set under base.
func (s *Session) RemoveAtBase(set pathset.PathSet) (*reconcile.Result, error) {
	return s.run("remove-base", func() (*reconcile.Result, error) {
		base, err := s.require(s.Base(), types.BaseName)
		if err != nil {
			return nil, err
		}
		return s.manager.executor.Remove(set, base)
	})
}

// RemoveAtPartner deletes set under partner.
func (s *Session) RemoveAtPartner(set pathset.PathSet) (*reconcile.Result, error) {
	return s.run("remove-partner", func() (*reconcile.Result, error) {
		partner, err := s.require(s.Partner(), types.PartnerName)
		if err != nil {
			return nil, err
		}
		return s.manager.executor.Remove(set, partner)
	})
}

// TouchBase creates the paths of set missing under base as empty files.
func (s *Session) TouchBase(set pathset.PathSet) (*reconcile.Result, error) {
	return s.run("touch-base", func() (*reconcile.Result, error) {
		base, err := s.require(s.Base(), types.BaseName)
		if err != nil {
			return nil, err
		}
		return s.manager.executor.Touch(set, base)
	})
}

// TouchPartner creates the paths of set missing under partner.
func (s *Session) TouchPartner(set pathset.PathSet) (*reconcile.Result, error) {
	return s.run("touch-partner", func() (*reconcile.Result, error) {
		partner, err := s.require(s.Partner(), types.PartnerName)
		if err != nil {
			return nil, err
		}
		return s.manager.executor.Touch(set, partner)
	})
}

// Backup copies set from base into dir, or into the configured backup
// directory when dir is empty.
func (s *Session) Backup(set pathset.PathSet, dir string) (*reconcile.Result, error) {
	return s.run("backup", func() (*reconcile.Result, error) {
		base, err := s.require(s.Base(), types.BaseName)
		if err != nil {
			return nil, err
		}
		return s.manager.executor.Backup(set, base, s.backupDir(dir))
	})
}

// Restore copies set from dir, or the configured backup directory, back
// into base.
func (s *Session) Restore(set pathset.PathSet, dir string) (*reconcile.Result, error) {
	return s.run("restore", func() (*reconcile.Result, error) {
		base, err := s.require(s.Base(), types.BaseName)
		if err != nil {
			return nil, err
		}
		return s.manager.executor.Restore(set, s.backupDir(dir), base)
	})
}

// run executes one verb with its logs tagged by name.
func (s *Session) run(verb string, fn func() (*reconcile.Result, error)) (res *reconcile.Result, err error) {
	_, done := logging.Operation(s.logger, verb)
	defer done(&err)
	return fn()
}

func (s *Session) backupDir(dir string) string {
	switch {
	case dir != "":
		return paths.ExpandHome(dir)
	case s.manager.cfg.Backup.Dir != "":
		return paths.ExpandHome(s.manager.cfg.Backup.Dir)
	default:
		return s.manager.paths.BackupDir()
	}
}

func (s *Session) both() (types.Directory, types.Directory, error) {
	base, err := s.require(s.Base(), types.BaseName)
	if err != nil {
		return types.Directory{}, types.Directory{}, err
	}
	partner, err := s.require(s.Partner(), types.PartnerName)
	if err != nil {
		return types.Directory{}, types.Directory{}, err
	}
	return base, partner, nil
}

func (s *Session) require(dir types.Directory, name string) (types.Directory, error) {
	if dir.IsZero() {
		return types.Directory{}, errors.Newf(errors.ErrNoDirectory, "%s is not set", name).
			WithDetail("directory", name)
	}
	return dir, nil
}
