package status

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// SectionCounts is the size of each section under the current scope.
type SectionCounts struct {
	BaseExclusive    int
	Intersection     int
	PartnerExclusive int
}

// StashEntry is one stashed selection.
type StashEntry struct {
	Key  string
	Size int
}

// Report is everything the status view shows. Empty Base or Partner means
// the handle is unset; Sections is nil unless both are set.
type Report struct {
	Anchor         string
	Stateful       bool
	Base           string
	Partner        string
	Scope          string
	Sections       *SectionCounts
	Selection      []string
	SelectionBytes int64
	Stash          []StashEntry
}

// Render writes r to w using styles.
func Render(w io.Writer, r Report, styles *Styles) error {
	var b strings.Builder

	b.WriteString(styles.Render("Header", "das") + " " + styles.Render("Muted", r.Anchor) + "\n")
	row(&b, styles, "base", handle(styles, r.Base))
	row(&b, styles, "partner", handle(styles, r.Partner))
	row(&b, styles, "scope", styles.Render("Path", "/"+r.Scope))
	mode := "stateful"
	if !r.Stateful {
		mode = "stateless"
	}
	row(&b, styles, "mode", mode)

	if r.Sections != nil {
		b.WriteString("\n" + styles.Render("Header", "sections") + "\n")
		row(&b, styles, "base only", count(styles, r.Sections.BaseExclusive))
		row(&b, styles, "both", count(styles, r.Sections.Intersection))
		row(&b, styles, "partner only", count(styles, r.Sections.PartnerExclusive))
	}

	b.WriteString("\n" + styles.Render("Header", "selection") + " ")
	b.WriteString(styles.Render("Muted", fmt.Sprintf("(%s, %s)",
		plural(len(r.Selection), "path"), humanize.Bytes(uint64(r.SelectionBytes)))) + "\n")
	for _, p := range r.Selection {
		b.WriteString("  " + p + "\n")
	}

	if len(r.Stash) > 0 {
		b.WriteString("\n" + styles.Render("Header", "stash") + "\n")
		for _, e := range r.Stash {
			b.WriteString("  " + styles.Render("Key", e.Key) + " " +
				styles.Render("Muted", "("+plural(e.Size, "path")+")") + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func row(b *strings.Builder, styles *Styles, label, value string) {
	b.WriteString("  " + styles.Render("Label", fmt.Sprintf("%-13s", label)) + value + "\n")
}

func handle(styles *Styles, path string) string {
	if path == "" {
		return styles.Render("Warning", "unset")
	}
	return styles.Render("Path", path)
}

func count(styles *Styles, n int) string {
	return styles.Render("Count", humanize.Comma(int64(n)))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
