package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// settingsFile is the on-disk schema of the service settings.
type settingsFile struct {
	Captions bool     `yaml:"captions"`
	FPSLimit int      `yaml:"fps_limit"`
	FPSHint  string   `yaml:"fps_hint"`
	Exclude  []string `yaml:"exclude"`
}

// LoadFile reads and validates a settings file. An empty path yields the
// default policy.
func LoadFile(path string) (Policy, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

// Parse decodes settings YAML into a validated policy. Omitted keys fall back
// to the defaults.
func Parse(data []byte) (Policy, error) {
	file := settingsFile{FPSHint: string(HintInt)}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Policy{}, fmt.Errorf("parse settings: %w", err)
	}
	p := Policy{
		Captions:      file.Captions,
		FrameRateCap:  file.FPSLimit,
		FrameRateHint: FrameRateHint(file.FPSHint),
		Exclude:       file.Exclude,
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}
