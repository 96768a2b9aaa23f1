// Package datastore persists the das session: the stateful flag, the base
// and partner directories, aliases, the selection and its stash.
//
// The session is a JSON file (<anchor>/.das/state.json by default)
// written atomically through a temporary file. Read-modify-write cycles go
// through Update, which holds an advisory file lock so two das processes
// on the same anchor cannot interleave.
package datastore
