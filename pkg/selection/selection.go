package selection

import (
	"path"
	"strconv"
	"strings"

	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/logging"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/paths"
	"github.com/rs/zerolog"
)

// SectionSource provides the sections the section-driven operations select
// from. *sections.Classifier satisfies it.
type SectionSource interface {
	BaseExclusive(scope string) (pathset.PathSet, error)
	PartnerExclusive(scope string) (pathset.PathSet, error)
	Intersection(scope string) (pathset.PathSet, error)
}

// State is the current selection, the scope tokens are resolved against,
// and the stash of detached snapshots. It is not safe for concurrent use.
type State struct {
	current pathset.PathSet
	scope   string

	stash map[string]pathset.PathSet
	order []string
	seq   int

	logger zerolog.Logger
}

// New returns an empty State scoped to the root.
func New() *State {
	return &State{
		stash:  make(map[string]pathset.PathSet),
		logger: logging.GetLogger("selection"),
	}
}

// Current returns the selection.
func (s *State) Current() pathset.PathSet {
	return s.current
}

// Scope returns the root-relative scope, "" for the root.
func (s *State) Scope() string {
	return s.scope
}

// SetScope changes the scope new tokens are resolved against. A leading
// "/" is ignored; the scope is always root-relative.
func (s *State) SetScope(scope string) error {
	cleaned, err := paths.CleanRel(strings.TrimLeft(scope, "/"))
	if err != nil {
		return err
	}
	s.scope = cleaned
	return nil
}

// NormalizeToken resolves a user token against the scope. A token starting
// with "/" is taken from the root instead.
func (s *State) NormalizeToken(tok string) (string, error) {
	rooted := strings.HasPrefix(tok, "/")
	bare := strings.TrimLeft(tok, "/")
	if bare == "" || path.Clean(bare) == "." {
		return "", errors.Newf(errors.ErrInvalidInput, "%q does not name a path", tok)
	}

	joined := bare
	if !rooted && s.scope != "" {
		joined = s.scope + "/" + bare
	}

	cleaned, err := paths.CleanRel(joined)
	if err != nil {
		return "", err
	}
	if cleaned == "" {
		return "", errors.Newf(errors.ErrInvalidInput, "%q resolves to the root", tok)
	}
	return cleaned, nil
}

func (s *State) normalize(tokens []string) ([]string, error) {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		n, err := s.NormalizeToken(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Select adds tokens to the selection. On error nothing changes.
func (s *State) Select(tokens ...string) (pathset.PathSet, error) {
	normalized, err := s.normalize(tokens)
	if err != nil {
		return s.current, err
	}
	s.current = pathset.Select(s.current, normalized...)
	return s.current, nil
}

// Deselect removes tokens from the selection. On error nothing changes.
func (s *State) Deselect(tokens ...string) (pathset.PathSet, error) {
	normalized, err := s.normalize(tokens)
	if err != nil {
		return s.current, err
	}
	s.current = pathset.Deselect(s.current, normalized...)
	return s.current, nil
}

// SelectSet unions set into the selection. Members are taken as-is.
func (s *State) SelectSet(set pathset.PathSet) pathset.PathSet {
	s.current = pathset.Union(s.current, set)
	return s.current
}

// DeselectSet removes every member of set from the selection.
func (s *State) DeselectSet(set pathset.PathSet) pathset.PathSet {
	s.current = pathset.Except(s.current, set)
	return s.current
}

// Replace sets the selection to set.
func (s *State) Replace(set pathset.PathSet) pathset.PathSet {
	s.current = set.Clone()
	return s.current
}

// Clear empties the selection.
func (s *State) Clear() pathset.PathSet {
	s.current = pathset.PathSet{}
	return s.current
}

// SelectBaseExclusive adds the base-exclusive section under the scope.
func (s *State) SelectBaseExclusive(src SectionSource) (pathset.PathSet, error) {
	return s.fromSection(src.BaseExclusive, s.SelectSet)
}

// SelectIntersection adds the intersection section under the scope.
func (s *State) SelectIntersection(src SectionSource) (pathset.PathSet, error) {
	return s.fromSection(src.Intersection, s.SelectSet)
}

// SelectPartnerExclusive adds the partner-exclusive section under the scope.
func (s *State) SelectPartnerExclusive(src SectionSource) (pathset.PathSet, error) {
	return s.fromSection(src.PartnerExclusive, s.SelectSet)
}

// DeselectBaseExclusive removes the base-exclusive section under the scope.
func (s *State) DeselectBaseExclusive(src SectionSource) (pathset.PathSet, error) {
	return s.fromSection(src.BaseExclusive, s.DeselectSet)
}

// DeselectIntersection removes the intersection section under the scope.
func (s *State) DeselectIntersection(src SectionSource) (pathset.PathSet, error) {
	return s.fromSection(src.Intersection, s.DeselectSet)
}

// DeselectPartnerExclusive removes the partner-exclusive section under the
// scope.
func (s *State) DeselectPartnerExclusive(src SectionSource) (pathset.PathSet, error) {
	return s.fromSection(src.PartnerExclusive, s.DeselectSet)
}

func (s *State) fromSection(section func(string) (pathset.PathSet, error), apply func(pathset.PathSet) pathset.PathSet) (pathset.PathSet, error) {
	set, err := section(s.scope)
	if err != nil {
		return s.current, err
	}
	return apply(set), nil
}

// KeepMatching keeps the selected paths matching the regular expression.
func (s *State) KeepMatching(pattern, flags string) (pathset.PathSet, error) {
	return s.filter(func(set pathset.PathSet) (pathset.PathSet, error) {
		return pathset.KeepMatching(set, pattern, flags)
	})
}

// RemoveMatching drops the selected paths matching the regular expression.
func (s *State) RemoveMatching(pattern, flags string) (pathset.PathSet, error) {
	return s.filter(func(set pathset.PathSet) (pathset.PathSet, error) {
		return pathset.RemoveMatching(set, pattern, flags)
	})
}

// KeepGlob keeps the selected paths matching the glob.
func (s *State) KeepGlob(glob string) (pathset.PathSet, error) {
	return s.filter(func(set pathset.PathSet) (pathset.PathSet, error) {
		return pathset.KeepGlob(set, glob)
	})
}

// RemoveGlob drops the selected paths matching the glob.
func (s *State) RemoveGlob(glob string) (pathset.PathSet, error) {
	return s.filter(func(set pathset.PathSet) (pathset.PathSet, error) {
		return pathset.RemoveGlob(set, glob)
	})
}

func (s *State) filter(fn func(pathset.PathSet) (pathset.PathSet, error)) (pathset.PathSet, error) {
	out, err := fn(s.current)
	if err != nil {
		return s.current, err
	}
	s.current = out
	return s.current, nil
}

// Stash moves the selection into the stash under key and empties the
// selection. An empty key picks the next free counter value. Stashing onto
// an existing key replaces its snapshot.
func (s *State) Stash(key string) (string, error) {
	if key == "" {
		key = s.nextKey()
	}
	if strings.TrimSpace(key) != key {
		return "", errors.Newf(errors.ErrInvalidInput, "stash key %q has surrounding spaces", key)
	}

	if _, exists := s.stash[key]; exists {
		s.dropKey(key)
	}
	s.stash[key] = s.current.Clone()
	s.order = append(s.order, key)
	s.current = pathset.PathSet{}

	s.logger.Debug().Str("key", key).Int("entries", s.stash[key].Len()).Msg("stashed")
	return key, nil
}

// Unstash makes the snapshot under key the selection and deletes it from
// the stash. An empty key takes the most recent entry.
func (s *State) Unstash(key string) (pathset.PathSet, error) {
	key, snapshot, err := s.lookup(key)
	if err != nil {
		return s.current, err
	}
	s.dropKey(key)
	s.current = snapshot
	return s.current, nil
}

// UnionStash adds the snapshot under key to the selection.
func (s *State) UnionStash(key string) (pathset.PathSet, error) {
	_, snapshot, err := s.lookup(key)
	if err != nil {
		return s.current, err
	}
	return s.SelectSet(snapshot), nil
}

// IntersectStash keeps only the selected paths present under key.
func (s *State) IntersectStash(key string) (pathset.PathSet, error) {
	_, snapshot, err := s.lookup(key)
	if err != nil {
		return s.current, err
	}
	s.current = pathset.Intersect(s.current, snapshot)
	return s.current, nil
}

// ExceptStash removes the paths under key from the selection.
func (s *State) ExceptStash(key string) (pathset.PathSet, error) {
	_, snapshot, err := s.lookup(key)
	if err != nil {
		return s.current, err
	}
	return s.DeselectSet(snapshot), nil
}

// ClearStash deletes every snapshot. The key counter keeps counting.
func (s *State) ClearStash() {
	s.stash = make(map[string]pathset.PathSet)
	s.order = nil
}

// StashKeys returns the stash keys, oldest first.
func (s *State) StashKeys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// Stashed returns the snapshot under key.
func (s *State) Stashed(key string) (pathset.PathSet, bool) {
	set, ok := s.stash[key]
	return set, ok
}

func (s *State) lookup(key string) (string, pathset.PathSet, error) {
	if key == "" {
		if len(s.order) == 0 {
			return "", pathset.PathSet{}, errors.New(errors.ErrStashNotFound, "stash is empty")
		}
		key = s.order[len(s.order)-1]
	}
	set, ok := s.stash[key]
	if !ok {
		return "", pathset.PathSet{}, errors.Newf(errors.ErrStashNotFound, "no stash entry %q", key).
			WithDetail("key", key)
	}
	return key, set, nil
}

func (s *State) dropKey(key string) {
	delete(s.stash, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *State) nextKey() string {
	for {
		key := strconv.Itoa(s.seq)
		s.seq++
		if _, taken := s.stash[key]; !taken {
			return key
		}
	}
}
