package session

import (
	"github.com/arthur-debert/das/pkg/pathset"
)

// Selection returns the current selection.
func (s *Session) Selection() pathset.PathSet {
	return s.sel.Current()
}

// Select adds paths to the selection. Absolute paths under base or
// partner are accepted.
func (s *Session) Select(raw ...string) (pathset.PathSet, error) {
	toks, err := s.tokens(raw)
	if err != nil {
		return s.sel.Current(), err
	}
	return s.sel.Select(toks...)
}

// Deselect removes paths from the selection.
func (s *Session) Deselect(raw ...string) (pathset.PathSet, error) {
	toks, err := s.tokens(raw)
	if err != nil {
		return s.sel.Current(), err
	}
	return s.sel.Deselect(toks...)
}

// Clear empties the selection.
func (s *Session) Clear() pathset.PathSet {
	return s.sel.Clear()
}

// SelectBaseExclusive adds the paths only base has under the scope.
func (s *Session) SelectBaseExclusive() (pathset.PathSet, error) {
	c, err := s.Sections()
	if err != nil {
		return s.sel.Current(), err
	}
	return s.sel.SelectBaseExclusive(c)
}

// SelectIntersection adds the paths both sides have under the scope.
func (s *Session) SelectIntersection() (pathset.PathSet, error) {
	c, err := s.Sections()
	if err != nil {
		return s.sel.Current(), err
	}
	return s.sel.SelectIntersection(c)
}

// SelectPartnerExclusive adds the paths only partner has under the scope.
func (s *Session) SelectPartnerExclusive() (pathset.PathSet, error) {
	c, err := s.Sections()
	if err != nil {
		return s.sel.Current(), err
	}
	return s.sel.SelectPartnerExclusive(c)
}

func (s *Session) DeselectBaseExclusive() (pathset.PathSet, error) {
	c, err := s.Sections()
	if err != nil {
		return s.sel.Current(), err
	}
	return s.sel.DeselectBaseExclusive(c)
}

func (s *Session) DeselectIntersection() (pathset.PathSet, error) {
	c, err := s.Sections()
	if err != nil {
		return s.sel.Current(), err
	}
	return s.sel.DeselectIntersection(c)
}

func (s *Session) DeselectPartnerExclusive() (pathset.PathSet, error) {
	c, err := s.Sections()
	if err != nil {
		return s.sel.Current(), err
	}
	return s.sel.DeselectPartnerExclusive(c)
}

// KeepMatching keeps selected paths matching the regular expression.
func (s *Session) KeepMatching(pattern, flags string) (pathset.PathSet, error) {
	return s.sel.KeepMatching(pattern, flags)
}

// RemoveMatching drops selected paths matching the regular expression.
func (s *Session) RemoveMatching(pattern, flags string) (pathset.PathSet, error) {
	return s.sel.RemoveMatching(pattern, flags)
}

// KeepGlob keeps selected paths matching the glob.
func (s *Session) KeepGlob(glob string) (pathset.PathSet, error) {
	return s.sel.KeepGlob(glob)
}

// RemoveGlob drops selected paths matching the glob.
func (s *Session) RemoveGlob(glob string) (pathset.PathSet, error) {
	return s.sel.RemoveGlob(glob)
}

// Stash moves the selection under key and returns the key used.
func (s *Session) Stash(key string) (string, error) {
	return s.sel.Stash(key)
}

// Unstash restores a stashed selection; an empty key takes the latest.
func (s *Session) Unstash(key string) (pathset.PathSet, error) {
	return s.sel.Unstash(key)
}

func (s *Session) UnionStash(key string) (pathset.PathSet, error) {
	return s.sel.UnionStash(key)
}

func (s *Session) IntersectStash(key string) (pathset.PathSet, error) {
	return s.sel.IntersectStash(key)
}

func (s *Session) ExceptStash(key string) (pathset.PathSet, error) {
	return s.sel.ExceptStash(key)
}

// ClearStash drops every stashed selection.
func (s *Session) ClearStash() {
	s.sel.ClearStash()
}

// StashKeys lists stash keys oldest first.
func (s *Session) StashKeys() []string {
	return s.sel.StashKeys()
}
