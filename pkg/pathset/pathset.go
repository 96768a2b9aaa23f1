package pathset

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// PathSet is a duplicate-free collection of relative path strings.
// Membership is exact string equality; insertion order is kept so listings
// read the way the user built them. The zero value is an empty set.
type PathSet struct {
	order []string
	index mapset.Set[string]
}

// New builds a set from values, dropping duplicates and keeping first-seen
// order.
func New(values ...string) PathSet {
	s := PathSet{
		order: make([]string, 0, len(values)),
		index: mapset.NewThreadUnsafeSetWithSize[string](len(values)),
	}
	for _, v := range values {
		s.add(v)
	}
	return s
}

// Len returns the number of elements.
func (s PathSet) Len() int {
	return len(s.order)
}

// IsEmpty reports whether the set has no elements.
func (s PathSet) IsEmpty() bool {
	return len(s.order) == 0
}

// Contains reports exact-string membership.
func (s PathSet) Contains(value string) bool {
	if s.index == nil {
		return false
	}
	return s.index.Contains(value)
}

// Items returns the elements in insertion order. The slice is a copy.
func (s PathSet) Items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Sorted returns the elements in ascending string order.
func (s PathSet) Sorted() []string {
	out := s.Items()
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s PathSet) Clone() PathSet {
	return New(s.order...)
}

// Equal reports whether both sets hold the same elements, ignoring order.
func (s PathSet) Equal(other PathSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, v := range s.order {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

func (s *PathSet) add(value string) bool {
	if s.index == nil {
		s.index = mapset.NewThreadUnsafeSet[string]()
	}
	if !s.index.Add(value) {
		return false
	}
	s.order = append(s.order, value)
	return true
}
