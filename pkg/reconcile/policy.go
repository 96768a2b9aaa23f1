package reconcile

import (
	"strings"

	"github.com/arthur-debert/das/pkg/errors"
)

// Policy decides what happens to selected paths that cannot be acted on.
type Policy int

const (
	// Lenient skips missing or escaping paths and logs them at debug level
	Lenient Policy = iota
	// Strict fails the call before anything is changed
	Strict
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	default:
		return "lenient"
	}
}

// ParsePolicy reads "lenient" or "strict", case-insensitively. An empty
// string is Lenient.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	default:
		return Lenient, errors.Newf(errors.ErrInvalidInput, "unknown policy %q", s).
			WithDetail("valid", []string{"lenient", "strict"})
	}
}

// SkipReason says why a path was left out of a plan.
type SkipReason string

const (
	SkipMissing SkipReason = "missing"
	SkipEscape  SkipReason = "escape"
	SkipRoot    SkipReason = "root"
)

func (r SkipReason) code() errors.ErrorCode {
	switch r {
	case SkipEscape:
		return errors.ErrPathEscape
	case SkipRoot:
		return errors.ErrInvalidInput
	default:
		return errors.ErrNotFound
	}
}
