package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/arthur-debert/moopad/pkg/logging"
	"github.com/arthur-debert/moopad/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every settings environment variable
const EnvPrefix = "MOOPAD_"

// Settings keys
const (
	KeyMaxProcs        = "max_procs"
	KeyShell           = "shell"
	KeyFormat          = "format"
	KeyStrictTemplates = "strict_templates"
	KeyDryRun          = "dry_run"
	KeyJUnit           = "junit"
)

// Settings are the runtime knobs of a run, as opposed to the pipeline
// configuration describing what to run
type Settings struct {
	MaxProcs        int64  `koanf:"max_procs"`
	Shell           string `koanf:"shell"`
	Format          string `koanf:"format"`
	StrictTemplates bool   `koanf:"strict_templates"`
	DryRun          bool   `koanf:"dry_run"`
	JUnit           string `koanf:"junit"`
}

// SettingsOptions controls where settings are read from
type SettingsOptions struct {
	// Path of the user settings file, paths.SettingsPath() when empty.
	// A missing file is not an error.
	Path string

	// DotEnv is an optional .env file whose MOOPAD_ entries are applied
	// below the real environment. A missing file is not an error.
	DotEnv string

	// Overrides are applied last, typically the flags set on the command
	// line, keyed like the settings file
	Overrides map[string]interface{}
}

// LoadSettings layers the embedded defaults, the user settings file, the
// project .env file, MOOPAD_ environment variables and the overrides, in
// that order
func LoadSettings(opts SettingsOptions) (*Settings, error) {
	logger := logging.GetLogger("config.settings")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load default settings")
	}

	// 2. User settings file
	path := opts.Path
	if path == "" {
		path = paths.SettingsPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "failed to load settings from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user settings")
	}

	// 3. Project .env file
	if opts.DotEnv != "" {
		if err := loadDotEnv(k, opts.DotEnv); err != nil {
			return nil, err
		}
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load environment settings")
	}

	// 5. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to apply overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to unmarshal settings")
	}

	if s.MaxProcs < 0 {
		return nil, errors.Newf(errors.ErrSettingsLoad, "%s must not be negative, got %d", KeyMaxProcs, s.MaxProcs)
	}

	logger.Debug().
		Int64(KeyMaxProcs, s.MaxProcs).
		Str(KeyShell, s.Shell).
		Str(KeyFormat, s.Format).
		Bool(KeyStrictTemplates, s.StrictTemplates).
		Bool(KeyDryRun, s.DryRun).
		Str(KeyJUnit, s.JUnit).
		Msg("Resolved settings")

	return &s, nil
}

// envKey maps MOOPAD_MAX_PROCS to max_procs
func envKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
}

// loadDotEnv applies the MOOPAD_ entries of a .env file
func loadDotEnv(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	entries, err := godotenv.Read(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSettingsLoad, "failed to read %s", path).
			WithDetail("path", path)
	}

	values := make(map[string]interface{})
	for name, value := range entries {
		if strings.HasPrefix(name, EnvPrefix) {
			values[envKey(name)] = value
		}
	}
	if len(values) == 0 {
		return nil
	}

	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return errors.Wrapf(err, errors.ErrSettingsLoad, "failed to apply %s", path)
	}
	logger := logging.GetLogger("config.settings")
	logger.Debug().Str("path", path).Int("keys", len(values)).Msg("Loaded .env settings")
	return nil
}
