package pathset

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/das/pkg/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// KeepMatching keeps the paths whose literal string matches pattern.
func KeepMatching(set PathSet, pattern, flags string) (PathSet, error) {
	re, err := CompilePattern(pattern, flags)
	if err != nil {
		return PathSet{}, err
	}
	return Filter(set, re.MatchString), nil
}

// RemoveMatching drops the paths whose literal string matches pattern.
func RemoveMatching(set PathSet, pattern, flags string) (PathSet, error) {
	re, err := CompilePattern(pattern, flags)
	if err != nil {
		return PathSet{}, err
	}
	return Filter(set, func(p string) bool { return !re.MatchString(p) }), nil
}

// CompilePattern compiles pattern with single-letter flags: i, m and s map
// to the RE2 flags of the same name, g and u are accepted and ignored.
func CompilePattern(pattern, flags string) (*regexp.Regexp, error) {
	var inline strings.Builder
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			if !strings.ContainsRune(inline.String(), f) {
				inline.WriteRune(f)
			}
		case 'g', 'u':
		default:
			return nil, errors.Newf(errors.ErrPattern, "unsupported pattern flag %q", string(f)).
				WithDetail("pattern", pattern)
		}
	}

	expr := pattern
	if inline.Len() > 0 {
		expr = "(?" + inline.String() + ")" + pattern
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPattern, "invalid pattern %q", pattern).
			WithDetail("pattern", pattern)
	}
	return re, nil
}

// KeepGlob keeps the paths matching a doublestar glob such as "src/**/*.go".
func KeepGlob(set PathSet, glob string) (PathSet, error) {
	if !doublestar.ValidatePattern(glob) {
		return PathSet{}, errors.Newf(errors.ErrPattern, "invalid glob %q", glob)
	}
	return Filter(set, func(p string) bool {
		ok, _ := doublestar.Match(glob, p)
		return ok
	}), nil
}

// RemoveGlob drops the paths matching glob.
func RemoveGlob(set PathSet, glob string) (PathSet, error) {
	if !doublestar.ValidatePattern(glob) {
		return PathSet{}, errors.Newf(errors.ErrPattern, "invalid glob %q", glob)
	}
	return Filter(set, func(p string) bool {
		ok, _ := doublestar.Match(glob, p)
		return !ok
	}), nil
}
