package das

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "Synchronize two directory trees as sets of paths"

	// Setup
	MsgInitShort       = "Create a .das anchor in the current or given directory"
	MsgStatusShort     = "Show handles, sections, selection and stash"
	MsgStatefulShort   = "Keep the selection between commands"
	MsgStatelessShort  = "Forget the selection after every command"
	MsgBaseShort       = "Set the base directory (path or alias)"
	MsgPartnerShort    = "Set the partner directory (path or alias)"
	MsgAliasShort      = "Name a directory, the partner by default"
	MsgAliasClearShort = "Forget every alias"
	MsgScopeShort      = "Set the subdirectory paths are relative to"

	// Selection
	MsgSelectShort          = "Add paths to the selection"
	MsgDeselectShort        = "Remove paths from the selection"
	MsgSelectBaseShort      = "Select the paths only base has"
	MsgSelectInterShort     = "Select the paths both sides have"
	MsgSelectPartnerShort   = "Select the paths only partner has"
	MsgDeselectBaseShort    = "Deselect the paths only base has"
	MsgDeselectInterShort   = "Deselect the paths both sides have"
	MsgDeselectPartnerShort = "Deselect the paths only partner has"
	MsgSelectRegexShort     = "Keep selected paths matching a regular expression"
	MsgDeselectRegexShort   = "Drop selected paths matching a regular expression"
	MsgSelectGlobShort      = "Keep selected paths matching a glob"
	MsgDeselectGlobShort    = "Drop selected paths matching a glob"
	MsgClearShort           = "Empty the selection"

	// Stash
	MsgStashShort          = "Move the selection into the stash"
	MsgUnstashShort        = "Restore a stashed selection, the latest by default"
	MsgStashUnionShort     = "Add a stashed selection to the current one"
	MsgStashIntersectShort = "Keep only paths also in a stashed selection"
	MsgStashExceptShort    = "Drop paths found in a stashed selection"
	MsgStashClearShort     = "Drop every stashed selection"

	// Sync
	MsgPushShort         = "Copy paths from base to partner"
	MsgPullShort         = "Copy paths from partner to base"
	MsgGiveShort         = "Move paths from base to partner"
	MsgTakeShort         = "Move paths from partner to base"
	MsgRemoveBaseShort   = "Delete paths under base"
	MsgRemovePartShort   = "Delete paths under partner"
	MsgTouchBaseShort    = "Create missing paths under base as empty files"
	MsgTouchPartnerShort = "Create missing paths under partner as empty files"
	MsgBackupShort       = "Copy paths from base into a backup directory"
	MsgRestoreShort      = "Copy paths from a backup directory into base"

	// Misc
	MsgGenConfigShort  = "Print the effective configuration as TOML"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Output
	MsgInitDone        = "Initialized das in %s\n"
	MsgInitExists      = "das is already initialized in %s\n"
	MsgHandleSet       = "%s: %s\n"
	MsgAliasSet        = "%s -> %s\n"
	MsgAliasItem       = "  %s -> %s\n"
	MsgNoAliases       = "No aliases."
	MsgScopeSet        = "scope: /%s\n"
	MsgModeSet         = "mode: %s\n"
	MsgStashed         = "stashed as %s\n"
	MsgStashEmpty      = "Stash is empty."
	MsgStashCleared    = "Stash cleared."
	MsgStashItem       = "  %s (%d)\n"
	MsgConfigWritten   = "Wrote %s\n"
	MsgFallbackWarning = "Warning: no .das directory found, using %s with state in %s\n"
	MsgVersionFormat   = "das version %s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagStrict  = "Fail instead of skipping paths that cannot be acted on"
	MsgFlagAnchor  = "Directory holding the .das state (default: nearest above cwd)"
	MsgFlagFlags   = "Regular expression flags (i, m, s)"
	MsgFlagWrite   = "Write the configuration to the anchor instead of stdout"
	MsgFlagDir     = "Backup directory (default: backup.dir or the state directory)"
	MsgFlagList    = "List instead of changing anything"

	// Errors
	MsgErrInitPaths  = "failed to initialize paths: %w"
	MsgErrNoCommand  = "no command specified"
	MsgErrConfigFile = "%s already exists"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/select-long.txt
	msgSelectLongRaw string
	MsgSelectLong    = strings.TrimSpace(msgSelectLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)
)
