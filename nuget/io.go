package nuget

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// descriptorPermissions is the file permission mode for written descriptor files.
const descriptorPermissions = 0o644

// Format is the encoding of a descriptor file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Unknown
// extensions default to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Set is the on-disk shape of a resolved package closure.
type Set struct {
	Packages []*Package `json:"packages" yaml:"packages"`
}

// ReadFile reads and validates a descriptor file.
func ReadFile(path string) ([]*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read package descriptors: %w", err)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse decodes descriptor data and validates every package.
func Parse(data []byte, format Format) ([]*Package, error) {
	var set Set
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("failed to parse package descriptors YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("failed to parse package descriptors JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown descriptor format %q", format)
	}

	for _, p := range set.Packages {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return set.Packages, nil
}

// WriteFile writes packages in the format implied by the path.
func WriteFile(path string, pkgs []*Package) error {
	var buf bytes.Buffer
	if err := Write(&buf, pkgs, FormatFromPath(path)); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), descriptorPermissions)
}

// Write encodes packages to w.
func Write(w io.Writer, pkgs []*Package, format Format) error {
	set := Set{Packages: pkgs}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(set); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}
}
