package selection

import (
	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/pathset"
)

// Snapshot is the persistable form of a State.
type Snapshot struct {
	Scope      string              `json:"scope"`
	Selection  []string            `json:"selection"`
	Stash      map[string][]string `json:"stash"`
	StashOrder []string            `json:"stash_order"`
	StashSeq   int                 `json:"stash_seq"`
}

// Snapshot captures the state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Scope:      s.scope,
		Selection:  s.current.Items(),
		Stash:      make(map[string][]string, len(s.stash)),
		StashOrder: s.StashKeys(),
		StashSeq:   s.seq,
	}
	for key, set := range s.stash {
		snap.Stash[key] = set.Items()
	}
	return snap
}

// FromSnapshot rebuilds a State. Stash keys missing from StashOrder are
// appended in sorted order.
func FromSnapshot(snap Snapshot) (*State, error) {
	s := New()
	if err := s.SetScope(snap.Scope); err != nil {
		return nil, errors.Wrap(err, errors.ErrStateLoad, "invalid scope in saved state")
	}

	s.current = pathset.New(snap.Selection...)
	s.seq = snap.StashSeq

	for _, key := range snap.StashOrder {
		items, ok := snap.Stash[key]
		if !ok {
			continue
		}
		if _, dup := s.stash[key]; dup {
			continue
		}
		s.stash[key] = pathset.New(items...)
		s.order = append(s.order, key)
	}
	for _, key := range pathset.New(keys(snap.Stash)...).Sorted() {
		if _, ok := s.stash[key]; !ok {
			s.stash[key] = pathset.New(snap.Stash[key]...)
			s.order = append(s.order, key)
		}
	}
	return s, nil
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
