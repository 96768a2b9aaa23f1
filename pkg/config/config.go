package config

// Config is the effective das configuration.
type Config struct {
	Reconcile Reconcile `koanf:"reconcile" toml:"reconcile"`
	Scan      Scan      `koanf:"scan" toml:"scan"`
	State     State     `koanf:"state" toml:"state"`
	Backup    Backup    `koanf:"backup" toml:"backup"`
	Output    Output    `koanf:"output" toml:"output"`
}

// Reconcile configures the executor
type Reconcile struct {
	Policy string `koanf:"policy" toml:"policy"`
	DryRun bool   `koanf:"dry_run" toml:"dry_run"`
}

// Scan configures the tree scanner
type Scan struct {
	// Ignore holds gitignore-style patterns
	Ignore []string `koanf:"ignore" toml:"ignore"`
	// IgnoreFile is read from the anchor directory when present
	IgnoreFile string `koanf:"ignore_file" toml:"ignore_file"`
}

// State locates the persisted session
type State struct {
	Dir  string `koanf:"dir" toml:"dir"`
	File string `koanf:"file" toml:"file"`
}

// Backup locates backup snapshots
type Backup struct {
	Dir string `koanf:"dir" toml:"dir"`
}

// Output controls rendering
type Output struct {
	Color string `koanf:"color" toml:"color"`
}

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
