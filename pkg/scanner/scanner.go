package scanner

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	daserrors "github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/logging"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/types"
	"github.com/rs/zerolog"
)

// Matcher decides whether a root-relative path is skipped during scans.
// *ignore.GitIgnore from github.com/sabhiram/go-gitignore satisfies it.
type Matcher interface {
	MatchesPath(f string) bool
}

// Scanner lists directory trees through a types.FS. Walks are depth-first
// pre-order with entries sorted by name; an explicit stack replaces
// recursion so deep trees cannot exhaust the goroutine stack. Symlinks are
// reported as leaves and never followed.
type Scanner struct {
	fs     types.FS
	ignore Matcher
	logger zerolog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithIgnore skips every entry (and its subtree) the matcher accepts.
func WithIgnore(m Matcher) Option {
	return func(s *Scanner) {
		s.ignore = m
	}
}

// New creates a Scanner over fsys.
func New(fsys types.FS, opts ...Option) *Scanner {
	s := &Scanner{
		fs:     fsys,
		logger: logging.GetLogger("scanner"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanTree returns every descendant of root, files and directories alike,
// relative to root. A missing root is an empty tree.
func (s *Scanner) ScanTree(root string) (pathset.PathSet, error) {
	return s.ScanTreeAt(root, "")
}

// ScanIntersection returns the base entries that have a same-named
// counterpart in partner, descending only where both sides are directories.
func (s *Scanner) ScanIntersection(base, partner string) (pathset.PathSet, error) {
	return s.ScanIntersectionAt(base, partner, "")
}

// ScanExclusive returns the base entries with no counterpart in partner,
// including whole subtrees of unmatched directories.
func (s *Scanner) ScanExclusive(base, partner string) (pathset.PathSet, error) {
	return s.ScanExclusiveAt(base, partner, "")
}

// ScanTreeAt lists root/scope; results stay relative to root.
func (s *Scanner) ScanTreeAt(root, scope string) (pathset.PathSet, error) {
	var out []string
	if err := s.walkTree(root, scope, &out); err != nil {
		return pathset.PathSet{}, err
	}
	s.logger.Trace().Str("root", root).Str("scope", scope).Int("entries", len(out)).Msg("tree scanned")
	return pathset.New(out...), nil
}

// item is one pending entry on the walk stack.
type item struct {
	rel     string
	baseDir bool
	kind    matchKind
}

type matchKind int

const (
	kindUnmatched matchKind = iota
	kindSharedDir
	kindMatched
	kindMismatched
)

// ScanIntersectionAt is ScanIntersection restricted to scope.
func (s *Scanner) ScanIntersectionAt(base, partner, scope string) (pathset.PathSet, error) {
	var out []string
	stack, err := s.pairChildren(base, partner, scope, nil)
	if err != nil {
		return pathset.PathSet{}, err
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.kind == kindUnmatched {
			continue
		}
		out = append(out, it.rel)
		if it.kind == kindSharedDir {
			if stack, err = s.pairChildren(base, partner, it.rel, stack); err != nil {
				return pathset.PathSet{}, err
			}
		}
	}

	s.logger.Trace().Str("base", base).Str("partner", partner).Int("entries", len(out)).Msg("intersection scanned")
	return pathset.New(out...), nil
}

// ScanExclusiveAt is ScanExclusive restricted to scope.
//
// A counterpart of the other type (file against directory) keeps the entry
// itself out of the result. Nothing below such a directory can have a
// counterpart, so its descendants are reported as exclusive.
func (s *Scanner) ScanExclusiveAt(base, partner, scope string) (pathset.PathSet, error) {
	var out []string
	stack, err := s.pairChildren(base, partner, scope, nil)
	if err != nil {
		return pathset.PathSet{}, err
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch it.kind {
		case kindUnmatched:
			out = append(out, it.rel)
			if it.baseDir {
				if err := s.walkTree(base, it.rel, &out); err != nil {
					return pathset.PathSet{}, err
				}
			}
		case kindMismatched:
			if it.baseDir {
				if err := s.walkTree(base, it.rel, &out); err != nil {
					return pathset.PathSet{}, err
				}
			}
		case kindSharedDir:
			if stack, err = s.pairChildren(base, partner, it.rel, stack); err != nil {
				return pathset.PathSet{}, err
			}
		}
	}

	s.logger.Trace().Str("base", base).Str("partner", partner).Int("entries", len(out)).Msg("exclusive scanned")
	return pathset.New(out...), nil
}

// walkTree appends every descendant of root/scope to out in pre-order.
func (s *Scanner) walkTree(root, scope string, out *[]string) error {
	type pending struct {
		rel   string
		isDir bool
	}

	push := func(stack []pending, rel string) ([]pending, error) {
		entries, err := s.readDir(root, rel)
		if err != nil {
			return stack, err
		}
		for i := len(entries) - 1; i >= 0; i-- {
			stack = append(stack, pending{rel: joinRel(rel, entries[i].Name()), isDir: entries[i].IsDir()})
		}
		return stack, nil
	}

	stack, err := push(nil, scope)
	if err != nil {
		return err
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		*out = append(*out, p.rel)
		if p.isDir {
			if stack, err = push(stack, p.rel); err != nil {
				return err
			}
		}
	}
	return nil
}

// pairChildren classifies the base entries of rel against the partner
// entries of the same directory and pushes them in reverse name order so
// they pop in ascending order.
func (s *Scanner) pairChildren(base, partner, rel string, stack []item) ([]item, error) {
	baseEntries, err := s.readDir(base, rel)
	if err != nil {
		return stack, err
	}
	if len(baseEntries) == 0 {
		return stack, nil
	}

	partnerEntries, err := s.readDir(partner, rel)
	if err != nil {
		return stack, err
	}
	partnerDirs := make(map[string]bool, len(partnerEntries))
	for _, e := range partnerEntries {
		partnerDirs[e.Name()] = e.IsDir()
	}

	for i := len(baseEntries) - 1; i >= 0; i-- {
		e := baseEntries[i]
		it := item{rel: joinRel(rel, e.Name()), baseDir: e.IsDir()}

		partnerDir, ok := partnerDirs[e.Name()]
		switch {
		case !ok:
			it.kind = kindUnmatched
		case e.IsDir() && partnerDir:
			it.kind = kindSharedDir
		case e.IsDir() == partnerDir:
			it.kind = kindMatched
		default:
			it.kind = kindMismatched
		}
		stack = append(stack, it)
	}
	return stack, nil
}

// readDir lists root/rel sorted by name, minus ignored entries. A missing
// or non-directory location lists as empty.
func (s *Scanner) readDir(root, rel string) ([]fs.DirEntry, error) {
	dir := root
	if rel != "" {
		dir = filepath.Join(root, filepath.FromSlash(rel))
	}

	info, err := s.fs.Lstat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, daserrors.Wrapf(err, daserrors.ErrFilesystem, "failed to stat %s", dir)
	}
	if !info.IsDir() {
		return nil, nil
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, daserrors.Wrapf(err, daserrors.ErrFilesystem, "failed to list %s", dir)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	if s.ignore == nil {
		return entries, nil
	}
	kept := entries[:0:0]
	for _, e := range entries {
		if s.ignored(joinRel(rel, e.Name()), e.IsDir()) {
			s.logger.Trace().Str("path", joinRel(rel, e.Name())).Msg("ignored")
			continue
		}
		kept = append(kept, e)
	}
	return kept, nil
}

func (s *Scanner) ignored(rel string, isDir bool) bool {
	if s.ignore.MatchesPath(rel) {
		return true
	}
	return isDir && s.ignore.MatchesPath(rel+"/")
}

func joinRel(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return path.Join(dir, name)
}
