// Package config loads the two kinds of configuration moopad uses.
//
// The pipeline configuration (moopad.yaml or moopad.toml) declares the
// stages, their path rules and the reusable action templates. It is read
// through an afero filesystem, parsed with the koanf parser matching the
// file extension and decoded into pkg/types with mapstructure.
//
// Runtime settings (concurrency, shell, report format...) are layered
// with koanf: embedded defaults, the optional user settings file, MOOPAD_
// environment variables and finally command line flags.
package config
