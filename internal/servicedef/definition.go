// Package servicedef loads and writes serverless service definitions as
// generic trees so unknown fields survive a rewrite untouched.
package servicedef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mikecbrant/local-authorizers/internal/localauth"
)

// DefaultStage is used when neither the caller nor provider.stage names one.
const DefaultStage = "dev"

// Format is the on-disk encoding of a definition.
type Format string

const (
	// FormatYAML covers .yml and .yaml files.
	FormatYAML Format = "yaml"
	// FormatJSON covers .json files.
	FormatJSON Format = "json"
)

var (
	// ErrUnsupportedFormat is returned for files that are not YAML or JSON.
	ErrUnsupportedFormat = errors.New("servicedef: unsupported file extension")
	// ErrMalformed is returned when the document shape is not a service definition.
	ErrMalformed = errors.New("servicedef: malformed service definition")
)

// Definition is a decoded service definition.
type Definition struct {
	Path   string
	Format Format
	Root   map[string]any
}

// FormatForPath picks the encoding from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w %q; expected .yaml, .yml, or .json", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and decodes the definition at path.
func Load(path string) (*Definition, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read service definition %s: %w", path, err)
	}
	def, err := Decode(raw, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	def.Path = path
	return def, nil
}

// Decode parses raw in the given format.
func Decode(raw []byte, format Format) (*Definition, error) {
	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrMalformed)
	}
	return &Definition{Format: format, Root: root}, nil
}

// ServiceName accepts both `service: name` and `service: {name: ...}`.
func (d *Definition) ServiceName() string {
	switch s := d.Root["service"].(type) {
	case string:
		return s
	case map[string]any:
		name, _ := s["name"].(string)
		return name
	default:
		return ""
	}
}

func (d *Definition) provider() map[string]any {
	p, _ := d.Root["provider"].(map[string]any)
	return p
}

// ProviderName returns provider.name, or "" when absent.
func (d *Definition) ProviderName() string {
	name, _ := d.provider()["name"].(string)
	return name
}

// ProviderStage returns provider.stage, or "" when absent.
func (d *Definition) ProviderStage() string {
	stage, _ := d.provider()["stage"].(string)
	return stage
}

// Functions returns the function collection, creating it when absent.
func (d *Definition) Functions() (map[string]any, error) {
	switch fns := d.Root["functions"].(type) {
	case nil:
		created := map[string]any{}
		d.Root["functions"] = created
		return created, nil
	case map[string]any:
		return fns, nil
	default:
		return nil, fmt.Errorf("%w: functions must be a mapping, got %T", ErrMalformed, fns)
	}
}

// DeploymentContext resolves the rewrite context. The stage comes from
// stageOverride, then provider.stage, then DefaultStage.
func (d *Definition) DeploymentContext(stageOverride string) localauth.DeploymentContext {
	stage := stageOverride
	if stage == "" {
		stage = d.ProviderStage()
	}
	if stage == "" {
		stage = DefaultStage
	}
	return localauth.DeploymentContext{
		Provider:    d.ProviderName(),
		ServiceName: d.ServiceName(),
		Stage:       stage,
	}
}

// Encode writes the definition to w in format.
func (d *Definition) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d.Root); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(d.Root); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

// Save writes the definition to path using the encoding its extension implies.
func (d *Definition) Save(path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := d.Encode(&buf, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write service definition %s: %w", path, err)
	}
	return nil
}
