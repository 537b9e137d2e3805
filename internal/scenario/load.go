package scenario

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a scenario file syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf selects the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// LoadFile reads and validates the scenario at path.
func LoadFile(path string) (*Scenario, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(path, data, format)
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
// source names the data in errors.
func Parse(source string, data []byte, format Format) (*Scenario, error) {
	var s Scenario

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, &ParseError{Path: source, Err: err}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, &ParseError{Path: source, Err: err}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", source, err)
	}
	return &s, nil
}

//go:embed demos/*.toml
var demos embed.FS

// Demo returns an embedded scenario by name.
func Demo(name string) (*Scenario, error) {
	path := "demos/" + name + ".toml"
	data, err := demos.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownDemo, name, strings.Join(DemoNames(), ", "))
	}
	return Parse(path, data, FormatTOML)
}

// DemoNames lists the embedded scenarios.
func DemoNames() []string {
	entries, err := demos.ReadDir("demos")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}
