package session

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/status"
)

// Status gathers the report `das status` renders. Section counts are
// computed only when both handles are set.
func (s *Session) Status() (status.Report, error) {
	report := status.Report{
		Anchor:    s.manager.paths.Anchor(),
		Stateful:  s.state.Stateful,
		Base:      s.state.Base,
		Partner:   s.state.Partner,
		Scope:     s.sel.Scope(),
		Selection: s.sel.Current().Items(),
	}

	if s.state.Base != "" && s.state.Partner != "" {
		counts, err := s.sectionCounts()
		if err != nil {
			return report, err
		}
		report.Sections = counts
	}

	if s.state.Base != "" {
		size, err := s.selectionBytes()
		if err != nil {
			return report, err
		}
		report.SelectionBytes = size
	}

	for _, key := range s.sel.StashKeys() {
		set, _ := s.sel.Stashed(key)
		report.Stash = append(report.Stash, status.StashEntry{Key: key, Size: set.Len()})
	}
	return report, nil
}

func (s *Session) sectionCounts() (*status.SectionCounts, error) {
	c, err := s.Sections()
	if err != nil {
		return nil, err
	}
	scope := s.sel.Scope()

	baseOnly, err := c.BaseExclusive(scope)
	if err != nil {
		return nil, err
	}
	both, err := c.Intersection(scope)
	if err != nil {
		return nil, err
	}
	partnerOnly, err := c.PartnerExclusive(scope)
	if err != nil {
		return nil, err
	}
	return &status.SectionCounts{
		BaseExclusive:    baseOnly.Len(),
		Intersection:     both.Len(),
		PartnerExclusive: partnerOnly.Len(),
	}, nil
}

// selectionBytes sums the sizes of the regular files the selection covers
// under base. Selected directories count everything below them; links
// and missing paths count nothing.
func (s *Session) selectionBytes() (int64, error) {
	base := s.Base()
	covered := s.sel.Current()
	for _, rel := range s.sel.Current().Items() {
		below, err := s.manager.scanner.ScanTreeAt(base.Path, rel)
		if err != nil {
			return 0, err
		}
		covered = pathset.Union(covered, below)
	}

	var total int64
	for _, rel := range covered.Items() {
		info, err := s.manager.fs.Lstat(base.Join(rel))
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return 0, errors.Wrapf(err, errors.ErrFilesystem, "failed to stat %s", rel)
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
	}
	return total, nil
}
