// Package pathset implements the set algebra das uses for selections,
// stash entries and tree sections.
//
// A PathSet holds root-relative, slash-separated path strings. Every
// operation is pure: it leaves its inputs untouched and returns a new set.
// Membership is exact string equality, so "a/b" and "a//b" are different
// elements; callers normalize paths before they reach a set.
package pathset
