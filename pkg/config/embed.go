package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.yaml
var defaultSettings []byte

//go:embed embedded/moopad.yaml
var sampleConfig []byte

// SampleConfig returns a commented starter pipeline configuration in YAML
func SampleConfig() []byte {
	return append([]byte(nil), sampleConfig...)
}

// DefaultSettingsContent returns the embedded default settings
func DefaultSettingsContent() string {
	return string(defaultSettings)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
