// Package sections partitions a base/partner pair of directory trees.
//
// For any scope the base tree splits into two disjoint sections:
// BaseExclusive (no same-named entry on the partner side) and
// Intersection (a same-named entry exists, whatever its type). The
// partner side has its own PartnerExclusive section. Sections are derived
// on demand and never cached, so they always reflect the trees as they are
// at call time.
package sections
