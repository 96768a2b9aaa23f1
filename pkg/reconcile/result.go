package reconcile

// Operation names a reconciliation verb.
type Operation string

const (
	OpCopy   Operation = "copy"
	OpMove   Operation = "move"
	OpRemove Operation = "remove"
	OpTouch  Operation = "touch"
)

// Skip is a selected path the plan left out.
type Skip struct {
	Path   string     `json:"path"`
	Reason SkipReason `json:"reason"`
}

// Result describes one reconciliation call. Dirs and Files are the plan,
// root-relative and ascending; they are filled in even on DryRun.
type Result struct {
	Operation Operation `json:"operation"`
	// Source is the tree read from by copy and move
	Source string `json:"source,omitempty"`
	// Root is the destination of copy, move and touch, or the target of
	// remove
	Root    string   `json:"root"`
	Dirs    []string `json:"dirs"`
	Files   []string `json:"files"`
	Skipped []Skip   `json:"skipped,omitempty"`
	DryRun  bool     `json:"dry_run"`
}

// Empty reports whether the plan has nothing to do.
func (r *Result) Empty() bool {
	return len(r.Dirs) == 0 && len(r.Files) == 0
}
