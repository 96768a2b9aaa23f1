package reconcile

import (
	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/types"
)

// BackupName is the logical name of a backup directory handle.
const BackupName = "backup"

// Backup copies the selected paths of from into backupDir, which is
// created when missing.
func (e *Executor) Backup(set pathset.PathSet, from types.Directory, backupDir string) (*Result, error) {
	dir, err := backupHandle(backupDir)
	if err != nil {
		return nil, err
	}
	return e.Copy(set, from, dir)
}

// Restore copies the selected paths of backupDir back into to.
func (e *Executor) Restore(set pathset.PathSet, backupDir string, to types.Directory) (*Result, error) {
	dir, err := backupHandle(backupDir)
	if err != nil {
		return nil, err
	}
	return e.Copy(set, dir, to)
}

func backupHandle(path string) (types.Directory, error) {
	dir, err := types.NewDirectory(BackupName, path)
	if err != nil {
		return types.Directory{}, errors.Wrap(err, errors.ErrNoDirectory, "invalid backup directory")
	}
	return dir, nil
}
