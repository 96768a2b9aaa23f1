package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/das/pkg/errors"
	"github.com/arthur-debert/das/pkg/logging"
	"github.com/arthur-debert/das/pkg/reconcile"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix starts every environment override. A double underscore
// separates sections: DAS_RECONCILE__DRY_RUN=true sets reconcile.dry_run.
const EnvPrefix = "DAS_"

// Load builds the configuration. configPath may be empty or point to a
// missing file; overrides holds dotted keys set from the command line and
// wins over everything else.
func Load(configPath string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Anchor config
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", configPath).
					WithDetail("path", configPath)
			}
			logger.Debug().Str("path", configPath).Msg("loaded config file")
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat %s", configPath)
		}
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command-line overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded defaults alone.
func Default() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		// the embedded file is part of the binary
		panic(err)
	}
	return cfg
}

// envKey maps DAS_SCAN__IGNORE_FILE to scan.ignore_file. Variables
// without a section separator are not configuration (DAS_ANCHOR and
// friends) and map to "", which koanf drops.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if _, err := reconcile.ParsePolicy(c.Reconcile.Policy); err != nil {
		return errors.Wrapf(err, errors.ErrConfigValid, "invalid reconcile.policy %q", c.Reconcile.Policy)
	}

	switch c.Output.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Newf(errors.ErrConfigValid, "invalid output.color %q", c.Output.Color).
			WithDetail("valid", []string{ColorAuto, ColorAlways, ColorNever})
	}

	if c.State.File == "" {
		return errors.New(errors.ErrConfigValid, "state.file cannot be empty")
	}
	return nil
}

// Policy returns the parsed reconcile.policy.
func (c *Config) Policy() reconcile.Policy {
	p, _ := reconcile.ParsePolicy(c.Reconcile.Policy)
	return p
}
