// Package paths provides centralized path handling for das.
// It locates the session anchor, implements XDG Base Directory
// compliance and provides the root-relative path helpers shared by the
// scanner, the selection and the reconciliation executor.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/types"
)

// Environment variable names
const (
	// EnvAnchor pins the anchor directory, skipping discovery
	EnvAnchor = "DAS_ANCHOR"

	// EnvStateDir overrides the directory holding state and lock files
	EnvStateDir = "DAS_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the anchor. These are not user-configurable; the
// configurable locations live in pkg/config.
const (
	// DasDirName is the directory name used under the XDG homes
	DasDirName = "das"

	// AnchorDirName marks a directory as a das anchor
	AnchorDirName = ".das"

	// ConfigFileName is the per-anchor configuration file
	ConfigFileName = ".das.toml"

	// StateFileName holds the persisted session
	StateFileName = "state.json"

	// LockFileName guards StateFileName
	LockFileName = "state.lock"

	// BackupDirName is the default backup location inside the state dir
	BackupDirName = "backups"

	// LogFileName is the name of the log file
	LogFileName = "das.log"
)

// Paths resolves every location das reads or writes
type Paths interface {
	Anchor() string
	UsedFallback() bool
	StateDir() string
	StatePath() string
	LockPath() string
	ConfigPath() string
	BackupDir() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
}

type paths struct {
	// anchor is the directory the session belongs to
	anchor string

	// stateDir holds state.json and state.lock
	stateDir string

	// configPath is the TOML file layered over the defaults
	configPath string

	// xdgState is the XDG state directory for das
	xdgState string

	// usedFallback is set when no .das directory was found above cwd
	usedFallback bool
}

// New creates a Paths instance. An empty anchor is taken from DAS_ANCHOR
// or discovered by walking up from the working directory.
func New(anchor string) (Paths, error) {
	p := &paths{
		xdgState: filepath.Join(xdg.StateHome, DasDirName),
	}

	if anchor == "" {
		anchor = os.Getenv(EnvAnchor)
	}
	if anchor == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFilesystem, "failed to get current directory")
		}
		found, ok := FindAnchor(cwd)
		if ok {
			anchor = found
		} else {
			anchor = cwd
			p.usedFallback = true
		}
	}

	abs, err := filepath.Abs(expandHome(anchor))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilesystem, "failed to get absolute path for anchor %s", anchor)
	}
	p.anchor = abs

	switch {
	case os.Getenv(EnvStateDir) != "":
		p.stateDir = expandHome(os.Getenv(EnvStateDir))
	case p.usedFallback:
		p.stateDir = p.xdgState
	default:
		p.stateDir = filepath.Join(p.anchor, AnchorDirName)
	}

	if p.usedFallback {
		p.configPath = filepath.Join(xdg.ConfigHome, DasDirName, ConfigFileName)
	} else {
		p.configPath = filepath.Join(p.anchor, ConfigFileName)
	}

	return p, nil
}

// FindAnchor walks up from start to the first directory containing a
// .das directory.
func FindAnchor(start string) (string, bool) {
	dir := filepath.Clean(start)
	for {
		info, err := os.Stat(filepath.Join(dir, AnchorDirName))
		if err == nil && info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is not ours to expand
	return path
}

// ExpandHome expands a leading ~ in path
func ExpandHome(path string) string {
	return expandHome(path)
}

func (p *paths) Anchor() string {
	return p.anchor
}

func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

func (p *paths) StateDir() string {
	return p.stateDir
}

func (p *paths) StatePath() string {
	return filepath.Join(p.stateDir, StateFileName)
}

func (p *paths) LockPath() string {
	return filepath.Join(p.stateDir, LockFileName)
}

func (p *paths) ConfigPath() string {
	return p.configPath
}

func (p *paths) BackupDir() string {
	return filepath.Join(p.stateDir, BackupDirName)
}

// LogFilePath lives under XDG_STATE_HOME regardless of the anchor
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath expands home, makes the path absolute and resolves
// symbolic links in it. Relative paths resolve against the working
// directory.
func (p *paths) NormalizePath(path string) (string, error) {
	return NormalizePath(path)
}

// NormalizePath is the package-level form of Paths.NormalizePath
func NormalizePath(path string) (string, error) {
	abs, err := AbsPath(path)
	if err != nil {
		return "", err
	}
	return types.Canonical(abs), nil
}

// AbsPath is NormalizePath without link resolution.
func AbsPath(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFilesystem, "failed to get absolute path for %s", path)
	}
	return filepath.Clean(abs), nil
}
