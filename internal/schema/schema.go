// Package schema reads the description of a binding target from a YAML or
// TOML file.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jpvetterli/argbind"
)

// Format is a schema file format.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// variablePattern matches the names which can be bound in a usage expression.
var variablePattern = regexp.MustCompile(`^[A-Za-z$_][A-Za-z0-9$_]*$`)

// Schema describes a binding target: the usage expression, the array
// delimiter and the type of each field, as written in the file.
type Schema struct {
	Usage     string            `yaml:"usage"     toml:"usage"`
	Delimiter string            `yaml:"delimiter" toml:"delimiter"`
	Fields    map[string]string `yaml:"fields"    toml:"fields"`
}

// FormatOf returns the format of a file by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("schema %s: unknown file extension (expected .yaml, .yml or .toml)", path)
	}
}

// Load reads and decodes a schema file.
func Load(path string) (*Schema, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Decode(b, format)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", path, err)
	}
	return s, nil
}

// Decode decodes a schema. Unknown keys are errors.
func Decode(b []byte, format Format) (*Schema, error) {
	var s Schema

	switch format {
	case YAML:
		d := yaml.NewDecoder(bytes.NewReader(b))
		d.KnownFields(true)
		if err := d.Decode(&s); err != nil {
			return nil, err
		}
	case TOML:
		md, err := toml.Decode(string(b), &s)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	if strings.TrimSpace(s.Usage) == "" {
		return nil, errors.New("usage is missing")
	}
	return &s, nil
}

// Target returns a target with the declared fields.
func (s *Schema) Target() (*argbind.MapTarget, error) {
	names := make([]string, 0, len(s.Fields))
	for n := range s.Fields {
		names = append(names, n)
	}
	sort.Strings(names)

	fields := make(map[string]argbind.FieldType, len(s.Fields))
	for _, n := range names {
		if !variablePattern.MatchString(n) {
			return nil, fmt.Errorf("field %q: not a valid variable name", n)
		}
		ft, err := argbind.ParseFieldType(s.Fields[n])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", n, err)
		}
		fields[n] = ft
	}
	return argbind.NewMapTarget(fields), nil
}

// Config returns base updated with the schema delimiter, if any. Base is not
// modified.
func (s *Schema) Config(base *argbind.Config) *argbind.Config {
	c := argbind.NewConfig()
	if base != nil {
		c.SetDelimiter(base.Delimiter())
		c.SetLogger(base.Logger())
		c.SetLogLevel(base.LogLevel())
		c.SetMetrics(base.Metrics())
	}
	if s.Delimiter != "" {
		c.SetDelimiter(s.Delimiter)
	}
	return c
}
