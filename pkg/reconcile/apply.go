package reconcile

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/das/pkg/filesystem"
	"github.com/arthur-debert/das/pkg/types"
)

// scaffold makes every planned directory exist under root, shallowest
// first. Anything that is not a directory in the way, links included, is
// deleted and replaced.
func (e *Executor) scaffold(root types.Directory, dirs []string) error {
	if err := e.ensureRoot(root); err != nil {
		return err
	}

	for _, rel := range dirs {
		abs := root.Join(rel)
		info, err := e.fs.Lstat(abs)
		switch {
		case err == nil && info.IsDir():
			continue
		case err == nil:
			e.logger.Debug().Str("path", abs).Msg("replacing non-directory with directory")
			if err := e.fs.RemoveAll(abs); err != nil {
				return fsError(err, "remove", abs)
			}
		case !stderrors.Is(err, fs.ErrNotExist):
			return fsError(err, "stat", abs)
		}

		if err := e.fs.Mkdir(abs, 0755); err != nil {
			return fsError(err, "mkdir", abs)
		}
		e.logger.Trace().Str("path", abs).Msg("created directory")
	}
	return nil
}

// ensureRoot creates a missing destination root. A root that exists as
// something else is an error; das never replaces a root.
func (e *Executor) ensureRoot(root types.Directory) error {
	isDir, err := filesystem.IsDir(e.fs, root.Path)
	if err != nil {
		return fsError(err, "stat", root.Path)
	}
	if isDir {
		return nil
	}

	exists, err := filesystem.Exists(e.fs, root.Path)
	if err != nil {
		return fsError(err, "stat", root.Path)
	}
	if exists {
		return fsError(fs.ErrExist, "mkdir", root.Path)
	}
	if err := e.fs.MkdirAll(root.Path, 0755); err != nil {
		return fsError(err, "mkdir", root.Path)
	}
	return nil
}

// clear removes whatever sits at abs, recursively for directories.
func (e *Executor) clear(abs string) error {
	info, err := e.fs.Lstat(abs)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fsError(err, "stat", abs)
	}
	if info.IsDir() {
		err = e.fs.RemoveAll(abs)
	} else {
		err = e.fs.Remove(abs)
	}
	if err != nil {
		return fsError(err, "remove", abs)
	}
	return nil
}

func (e *Executor) copyFile(src, dst types.Directory, rel string) error {
	from, to := src.Join(rel), dst.Join(rel)
	if err := e.clear(to); err != nil {
		return err
	}
	if err := filesystem.CopyFile(e.fs, from, to); err != nil {
		return fsError(err, "copy", from)
	}
	e.logger.Trace().Str("from", from).Str("to", to).Msg("copied")
	return nil
}

func (e *Executor) moveFile(src, dst types.Directory, rel string) error {
	from, to := src.Join(rel), dst.Join(rel)
	if err := e.clear(to); err != nil {
		return err
	}
	if err := e.fs.Rename(from, to); err != nil {
		return fsError(err, "rename", from)
	}
	e.logger.Trace().Str("from", from).Str("to", to).Msg("moved")
	return nil
}

// prune removes planned directories under root that exist and are empty,
// deepest first. Non-empty directories are never touched.
func (e *Executor) prune(root types.Directory, dirs []string) error {
	for i := len(dirs) - 1; i >= 0; i-- {
		abs := root.Join(dirs[i])
		isDir, err := filesystem.IsDir(e.fs, abs)
		if err != nil {
			return fsError(err, "stat", abs)
		}
		if !isDir {
			continue
		}

		empty, err := filesystem.IsEmptyDir(e.fs, abs)
		if err != nil {
			return fsError(err, "readdir", abs)
		}
		if !empty {
			continue
		}
		if err := e.fs.Remove(abs); err != nil {
			return fsError(err, "remove", abs)
		}
		e.logger.Trace().Str("path", abs).Msg("pruned")
	}
	return nil
}
