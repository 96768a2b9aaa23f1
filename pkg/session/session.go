package session

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/das/pkg/datastore"
	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/pathset"
	"github.com/arthur-debert/das/pkg/paths"
	"github.com/arthur-debert/das/pkg/sections"
	"github.com/arthur-debert/das/pkg/selection"
	"github.com/arthur-debert/das/pkg/types"
	"github.com/rs/zerolog"
)

// AliasPrefix forces a target to be read as an alias name.
const AliasPrefix = "@"

// Session is one load of the persisted state plus the selection built
// from it. Changes reach disk only through Manager.Update.
type Session struct {
	manager *Manager
	state   *datastore.Session
	sel     *selection.State
	logger  zerolog.Logger
}

// Stateful reports whether the selection survives between invocations.
func (s *Session) Stateful() bool {
	return s.state.Stateful
}

// SetStateful toggles persistence of the selection, scope and stash.
func (s *Session) SetStateful(on bool) {
	s.state.Stateful = on
}

// Base returns the base handle, zero when unset.
func (s *Session) Base() types.Directory {
	return handle(types.BaseName, s.state.Base)
}

// Partner returns the partner handle, zero when unset.
func (s *Session) Partner() types.Directory {
	return handle(types.PartnerName, s.state.Partner)
}

func handle(name, path string) types.Directory {
	if path == "" {
		return types.Directory{}
	}
	return types.Directory{Name: name, Path: path}
}

// SetBase points the base handle at target, an alias or a path.
func (s *Session) SetBase(target string) (types.Directory, error) {
	path, err := s.Resolve(target)
	if err != nil {
		return types.Directory{}, err
	}
	s.state.Base = path
	s.logger.Info().Str("base", path).Msg("base set")
	return s.Base(), nil
}

// SetPartner points the partner handle at target, an alias or a path.
func (s *Session) SetPartner(target string) (types.Directory, error) {
	path, err := s.Resolve(target)
	if err != nil {
		return types.Directory{}, err
	}
	s.state.Partner = path
	s.logger.Info().Str("partner", path).Msg("partner set")
	return s.Partner(), nil
}

// Resolve turns target into an absolute path. A known alias wins over a
// path of the same name; "@name" must be an alias.
func (s *Session) Resolve(target string) (string, error) {
	if name, forced := strings.CutPrefix(target, AliasPrefix); forced {
		path, ok := s.state.Alias[name]
		if !ok {
			return "", errors.Newf(errors.ErrAliasNotFound, "no alias named %q", name).
				WithDetail("alias", name)
		}
		return path, nil
	}
	if path, ok := s.state.Alias[target]; ok {
		return path, nil
	}
	return paths.NormalizePath(target)
}

// SetAlias names a directory. An empty path names the current partner.
func (s *Session) SetAlias(name, path string) (string, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), AliasPrefix)
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return "", errors.Newf(errors.ErrInvalidInput, "invalid alias name %q", name)
	}

	if path == "" {
		if s.state.Partner == "" {
			return "", errors.New(errors.ErrNoDirectory, "no partner to alias")
		}
		path = s.state.Partner
	} else {
		normalized, err := paths.NormalizePath(path)
		if err != nil {
			return "", err
		}
		path = normalized
	}

	s.state.Alias[name] = path
	return path, nil
}

// ClearAliases forgets every alias.
func (s *Session) ClearAliases() {
	s.state.Alias = make(map[string]string)
}

// Aliases returns alias names, sorted, with their paths.
func (s *Session) Aliases() ([]string, map[string]string) {
	names := make([]string, 0, len(s.state.Alias))
	for name := range s.state.Alias {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, s.state.Alias
}

// Scope returns the root-relative scope.
func (s *Session) Scope() string {
	return s.sel.Scope()
}

// SetScope changes the scope. An absolute path under base or partner is
// taken relative to that handle.
func (s *Session) SetScope(scope string) (string, error) {
	token, err := s.token(scope)
	if err != nil {
		return "", err
	}
	if err := s.sel.SetScope(token); err != nil {
		return "", err
	}
	return s.sel.Scope(), nil
}

// token rewrites an absolute filesystem path lying under base or partner
// as a root-relative token. Other tokens pass through unchanged, so
// "/docs" outside both handles still means docs at the root.
func (s *Session) token(tok string) (string, error) {
	if !filepath.IsAbs(tok) && !strings.HasPrefix(tok, "~") {
		return tok, nil
	}

	abs, err := paths.AbsPath(tok)
	if err != nil {
		return "", err
	}
	// The lexical form wins; the canonical parent is the fallback, so a link
	// named by the token itself stays a link.
	candidates := []string{abs}
	if dir := filepath.Dir(abs); dir != abs {
		candidates = append(candidates, filepath.Join(types.Canonical(dir), filepath.Base(abs)))
	}
	for _, candidate := range candidates {
		if rel, ok := s.underHandle(candidate); ok {
			return "/" + rel, nil
		}
	}
	return tok, nil
}

func (s *Session) underHandle(abs string) (string, bool) {
	for _, dir := range []types.Directory{s.Base(), s.Partner()} {
		if dir.IsZero() || !paths.ContainsPath(dir.Path, abs) {
			continue
		}
		if rel, err := paths.ToSlashRel(dir.Path, abs); err == nil {
			return rel, true
		}
	}
	return "", false
}

func (s *Session) tokens(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		t, err := s.token(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Targets resolves tokens into a set without touching the selection. With
// no tokens it returns the selection.
func (s *Session) Targets(raw ...string) (pathset.PathSet, error) {
	if len(raw) == 0 {
		return s.sel.Current(), nil
	}
	toks, err := s.tokens(raw)
	if err != nil {
		return pathset.PathSet{}, err
	}
	normalized := make([]string, 0, len(toks))
	for _, tok := range toks {
		n, err := s.sel.NormalizeToken(tok)
		if err != nil {
			return pathset.PathSet{}, err
		}
		normalized = append(normalized, n)
	}
	return pathset.New(normalized...), nil
}

// Sections returns a classifier over the current handles. At least one
// must be set.
func (s *Session) Sections() (*sections.Classifier, error) {
	base, partner := s.Base(), s.Partner()
	if base.IsZero() && partner.IsZero() {
		return nil, errors.New(errors.ErrNoDirectory, "neither base nor partner is set")
	}
	return sections.New(s.manager.scanner, base, partner), nil
}
