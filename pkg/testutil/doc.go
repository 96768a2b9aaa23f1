// Package testutil provides helpers shared by the das test suites: a
// compact tree builder and lister that work against any types.FS, and an
// in-memory filesystem with error injection for exercising failure paths.
package testutil
