package declarative

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOptions configures YAML loading behavior.
type LoadOptions struct {
	AllowUnknownFields bool
}

// LoadFile reads a manifest from the given YAML file.
func LoadFile(path string) (*Manifest, error) {
	return LoadFileWithOptions(path, LoadOptions{})
}

// LoadFileWithOptions reads a manifest using caller-provided loading options.
func LoadFileWithOptions(path string, opts LoadOptions) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: reading a user-specified manifest
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	m, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest YAML. Unknown fields are rejected unless
// AllowUnknownFields is set. An absent state defaults to present.
func Parse(data []byte, opts LoadOptions) (*Manifest, error) {
	var m Manifest
	if opts.AllowUnknownFields {
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&m); err != nil {
			return nil, err
		}
	}
	if m.State == "" {
		m.State = StatePresent
	}
	return &m, nil
}
