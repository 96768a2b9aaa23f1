// Package session ties the persisted state to the set algebra and the
// executor.
//
// A Manager resolves where state lives and builds the scanner (with the
// configured ignore patterns) and executor once. Each command then runs
// inside Manager.Update, which loads the state under a file lock, hands
// the caller a Session and saves the result, or Manager.View for
// read-only commands.
//
// Sessions accept paths in three forms: relative to the scope, rooted
// with a leading "/", or absolute filesystem paths that lie under base or
// partner. Base and partner targets may be alias names.
package session
