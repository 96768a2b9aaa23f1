package status

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/reconcile"
	"github.com/dustin/go-humanize"
)

// DryRunNotice closes the output of a verb run with --dry-run.
const DryRunNotice = "DRY RUN MODE - No changes were made"

// RenderSelection writes the selection size followed by its paths.
func RenderSelection(w io.Writer, set pathset.PathSet, styles *Styles) error {
	var b strings.Builder
	b.WriteString(styles.Render("Count", humanize.Comma(int64(set.Len()))) + " selected\n")
	for _, p := range set.Items() {
		b.WriteString("  " + styles.Render("Path", p) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderResult writes the plan a verb carried out: a header with the
// operation and root, the planned files, then every skipped path.
func RenderResult(w io.Writer, res *reconcile.Result, styles *Styles) error {
	var b strings.Builder
	b.WriteString(styles.Render("Header", string(res.Operation)) + " " +
		styles.Render("Path", res.Root) + ": " +
		styles.Render("Count", fmt.Sprintf("%s directories, %s files",
			humanize.Comma(int64(len(res.Dirs))), humanize.Comma(int64(len(res.Files))))) + "\n")
	for _, f := range res.Files {
		b.WriteString("  " + f + "\n")
	}
	for _, s := range res.Skipped {
		b.WriteString("  " + styles.Render("Warning", "skipped") + " " + s.Path + " " +
			styles.Render("Muted", "("+string(s.Reason)+")") + "\n")
	}
	if res.DryRun {
		b.WriteString(styles.Render("Warning", DryRunNotice) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
