// Package paths provides centralized path handling for das.
//
// It handles:
//
//   - Anchor discovery: the nearest directory above the working directory
//     that contains a .das directory owns the session
//   - State, lock, config and backup locations derived from the anchor
//   - XDG directories for logs and for sessions without an anchor
//   - Root-relative path normalization shared by the core packages
//
// # Environment Variables
//
//   - DAS_ANCHOR: pin the anchor directory instead of discovering it
//   - DAS_STATE_DIR: override the state directory (default: <anchor>/.das)
//   - XDG_STATE_HOME, XDG_CONFIG_HOME: honored through github.com/adrg/xdg
//
// # Relative paths
//
// Every set in das holds root-relative paths in slash form. CleanRel
// normalizes one, JoinRel builds one, ToSlashRel converts an absolute
// filesystem path under a root. Anything resolving outside its root is an
// ErrPathEscape.
package paths
