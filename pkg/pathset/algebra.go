package pathset

// Select returns set plus values. Values already present are ignored.
func Select(set PathSet, values ...string) PathSet {
	out := set.Clone()
	for _, v := range values {
		out.add(v)
	}
	return out
}

// Deselect returns set without values. Absent values are ignored.
func Deselect(set PathSet, values ...string) PathSet {
	if len(values) == 0 {
		return set.Clone()
	}
	drop := New(values...)
	return Except(set, drop)
}

// Distinct drops duplicates from list, keeping first-seen order.
func Distinct(list []string) []string {
	return New(list...).Items()
}

// Union concatenates all sets, dropping duplicates.
func Union(sets ...PathSet) PathSet {
	size := 0
	for _, s := range sets {
		size += s.Len()
	}
	all := make([]string, 0, size)
	for _, s := range sets {
		all = append(all, s.order...)
	}
	return New(all...)
}

// Intersect returns the elements present in both sets. The smaller set is
// iterated and its order is kept.
func Intersect(a, b PathSet) PathSet {
	probe, other := a, b
	if b.Len() < a.Len() {
		probe, other = b, a
	}
	out := New()
	for _, v := range probe.order {
		if other.Contains(v) {
			out.add(v)
		}
	}
	return out
}

// Except returns the elements of a not present in b.
func Except(a, b PathSet) PathSet {
	out := New()
	for _, v := range a.order {
		if !b.Contains(v) {
			out.add(v)
		}
	}
	return out
}

// Filter keeps the elements for which keep returns true.
func Filter(set PathSet, keep func(string) bool) PathSet {
	out := New()
	for _, v := range set.order {
		if keep(v) {
			out.add(v)
		}
	}
	return out
}
