package sections

import (
	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/paths"
	"github.com/arthur-debert/das/pkg/scanner"
	"github.com/arthur-debert/das/pkg/types"
)

// Classifier derives sections from a base and a partner directory. It
// holds no results; every call rescans.
type Classifier struct {
	scanner *scanner.Scanner
	base    types.Directory
	partner types.Directory
}

// New creates a Classifier over the two handles. Either handle may be zero,
// in which case it scans as an empty tree.
func New(s *scanner.Scanner, base, partner types.Directory) *Classifier {
	return &Classifier{
		scanner: s,
		base:    base,
		partner: partner,
	}
}

// Base returns the base handle
func (c *Classifier) Base() types.Directory {
	return c.base
}

// Partner returns the partner handle
func (c *Classifier) Partner() types.Directory {
	return c.partner
}

// Own lists dir below scope, relative to dir.
func (c *Classifier) Own(dir types.Directory, scope string) (pathset.PathSet, error) {
	scope, err := cleanScope(scope)
	if err != nil {
		return pathset.PathSet{}, err
	}
	if dir.IsZero() {
		return pathset.PathSet{}, nil
	}
	return c.scanner.ScanTreeAt(dir.Path, scope)
}

// OwnBase lists the base tree below scope.
func (c *Classifier) OwnBase(scope string) (pathset.PathSet, error) {
	return c.Own(c.base, scope)
}

// OwnPartner lists the partner tree below scope.
func (c *Classifier) OwnPartner(scope string) (pathset.PathSet, error) {
	return c.Own(c.partner, scope)
}

// BaseExclusive lists base paths below scope with no partner counterpart.
func (c *Classifier) BaseExclusive(scope string) (pathset.PathSet, error) {
	return c.exclusive(c.base, c.partner, scope)
}

// PartnerExclusive lists partner paths below scope with no base
// counterpart. Paths are relative to partner.
func (c *Classifier) PartnerExclusive(scope string) (pathset.PathSet, error) {
	return c.exclusive(c.partner, c.base, scope)
}

// Intersection lists base paths below scope that have a partner
// counterpart. Together with BaseExclusive it partitions OwnBase.
func (c *Classifier) Intersection(scope string) (pathset.PathSet, error) {
	scope, err := cleanScope(scope)
	if err != nil {
		return pathset.PathSet{}, err
	}
	if c.base.IsZero() || c.partner.IsZero() {
		return pathset.PathSet{}, nil
	}
	return c.scanner.ScanIntersectionAt(c.base.Path, c.partner.Path, scope)
}

func (c *Classifier) exclusive(from, other types.Directory, scope string) (pathset.PathSet, error) {
	scope, err := cleanScope(scope)
	if err != nil {
		return pathset.PathSet{}, err
	}
	if from.IsZero() {
		return pathset.PathSet{}, nil
	}
	if other.IsZero() {
		return c.scanner.ScanTreeAt(from.Path, scope)
	}
	return c.scanner.ScanExclusiveAt(from.Path, other.Path, scope)
}

func cleanScope(scope string) (string, error) {
	cleaned, err := paths.CleanRel(scope)
	if err != nil {
		return "", errors.Wrapf(err, errors.GetErrorCode(err), "invalid scope %q", scope)
	}
	return cleaned, nil
}
