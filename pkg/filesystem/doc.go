// Package filesystem provides filesystem implementations for das.
//
// This package contains implementations of the types.FS interface,
// the OS-backed one used by the CLI and an afero-backed one used by tests,
// plus the small helpers the scanner and executor share.
package filesystem
