// Package selection holds the paths reconciliation acts on.
//
// A State owns the current selection, a scope and a stash of named
// snapshots. User tokens are resolved against the scope, so "b.txt" typed
// while scoped to "docs" is stored as "docs/b.txt"; a token starting with
// "/" is taken from the root. Nothing here touches the filesystem except
// through a SectionSource.
//
// Stash keys default to a counter that never hands out a key twice, even
// after entries are removed or a user key happens to look like a number.
package selection
