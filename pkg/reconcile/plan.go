package reconcile

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/paths"
	"github.com/arthur-debert/das/pkg/types"
	mapset "github.com/deckarep/golang-set/v2"
)

// plan collects the directories and files one call acts on.
type plan struct {
	dirs  mapset.Set[string]
	files mapset.Set[string]
}

func newPlan() *plan {
	return &plan{
		dirs:  mapset.NewThreadUnsafeSet[string](),
		files: mapset.NewThreadUnsafeSet[string](),
	}
}

// addFile records rel and every ancestor directory below the root.
func (p *plan) addFile(rel string) {
	p.files.Add(rel)
	p.addAncestors(rel)
}

// addDir records rel and every ancestor directory below the root.
func (p *plan) addDir(rel string) {
	p.dirs.Add(rel)
	p.addAncestors(rel)
}

func (p *plan) addAncestors(rel string) {
	for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if !p.dirs.Add(dir) {
			return
		}
	}
}

// fill stores the plan ascending. A parent always sorts before its
// children, so reversing gives a safe deepest-first order. A path that is
// the ancestor of another planned path is a directory, never a file.
func (p *plan) fill(res *Result) {
	res.Dirs = p.dirs.ToSlice()
	sort.Strings(res.Dirs)
	res.Files = p.files.Difference(p.dirs).ToSlice()
	sort.Strings(res.Files)
}

// entryKind is what a relative path resolves to without following links.
type entryKind int

const (
	kindMissing entryKind = iota
	kindFile
	kindDir
	kindLink
)

// inspect walks rel component by component under root with Lstat. A link
// anywhere on the way is reported as kindLink; a missing or non-directory
// ancestor makes the path kindMissing.
func (e *Executor) inspect(root types.Directory, rel string) (entryKind, error) {
	current := root.Path
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		current = filepath.Join(current, part)
		info, err := e.fs.Lstat(current)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return kindMissing, nil
			}
			return kindMissing, fsError(err, "stat", current)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return kindLink, nil
		}
		if i == len(parts)-1 {
			if info.IsDir() {
				return kindDir, nil
			}
			return kindFile, nil
		}
		if !info.IsDir() {
			return kindMissing, nil
		}
	}
	return kindMissing, nil
}

// skip applies the policy to a path the plan cannot use.
func (e *Executor) skip(res *Result, rel string, reason SkipReason) error {
	if e.policy == Strict {
		return errors.Newf(reason.code(), "%s: %s under %s", rel, reason, res.Root).
			WithDetail("path", rel).
			WithDetail("reason", string(reason))
	}
	e.logger.Debug().Str("path", rel).Str("reason", string(reason)).Msg("skipped")
	res.Skipped = append(res.Skipped, Skip{Path: rel, Reason: reason})
	return nil
}

// clean normalizes a selected path. ok is false when the path was skipped.
func (e *Executor) clean(res *Result, raw string) (string, bool, error) {
	rel, err := paths.CleanRel(raw)
	if err != nil {
		return "", false, e.skip(res, raw, SkipEscape)
	}
	if rel == "" {
		return "", false, e.skip(res, raw, SkipRoot)
	}
	return rel, true, nil
}

// planExisting plans copy, move and remove: selected paths must exist
// under root. A file brings its ancestors; a directory brings itself, its
// ancestors and everything below it.
func (e *Executor) planExisting(res *Result, set pathset.PathSet, root types.Directory) (*plan, error) {
	p := newPlan()
	for _, raw := range set.Items() {
		rel, ok, err := e.clean(res, raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		kind, err := e.inspect(root, rel)
		if err != nil {
			return nil, err
		}
		switch kind {
		case kindMissing:
			err = e.skip(res, rel, SkipMissing)
		case kindLink:
			err = e.skip(res, rel, SkipEscape)
		case kindFile:
			p.addFile(rel)
		case kindDir:
			p.addDir(rel)
			err = e.planSubtree(res, p, root, rel)
		}
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (e *Executor) planSubtree(res *Result, p *plan, root types.Directory, rel string) error {
	below, err := e.scanner.ScanTreeAt(root.Path, rel)
	if err != nil {
		return err
	}
	for _, child := range below.Items() {
		if p.files.Contains(child) || p.dirs.Contains(child) {
			continue
		}
		abs := root.Join(child)
		info, err := e.fs.Lstat(abs)
		if err != nil {
			return fsError(err, "stat", abs)
		}
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			if err := e.skip(res, child, SkipEscape); err != nil {
				return err
			}
		case info.IsDir():
			p.dirs.Add(child)
		default:
			p.files.Add(child)
		}
	}
	return nil
}

// planMissing plans touch: only selected paths that do not exist yet.
func (e *Executor) planMissing(res *Result, set pathset.PathSet, root types.Directory) (*plan, error) {
	p := newPlan()
	for _, raw := range set.Items() {
		rel, ok, err := e.clean(res, raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		kind, err := e.inspect(root, rel)
		if err != nil {
			return nil, err
		}
		switch kind {
		case kindMissing:
			p.addFile(rel)
		case kindLink:
			if err := e.skip(res, rel, SkipEscape); err != nil {
				return nil, err
			}
		default:
			e.logger.Trace().Str("path", rel).Msg("exists, not touched")
		}
	}
	return p, nil
}
