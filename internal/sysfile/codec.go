package sysfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a file encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads and validates the system description at path.
func Load(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("sysfile: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f, format)
	if err != nil {
		return Document{}, fmt.Errorf("sysfile: %s: %w", path, err)
	}
	return doc, nil
}

// Decode reads and validates one system description from r.
func Decode(r io.Reader, format Format) (Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}

	var doc Document
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(content, &doc)
	case FormatTOML:
		err = toml.Unmarshal(content, &doc)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		if errors.Is(err, ErrMalformed) {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// wireDocument is the encoded form of a Document with every value reduced to
// a number or a [re, im] pair.
type wireDocument struct {
	Kind     string `yaml:"kind" toml:"kind" json:"kind"`
	Domain   string `yaml:"domain,omitempty" toml:"domain,omitempty" json:"domain,omitempty"`
	B        []any  `yaml:"b,omitempty" toml:"b,omitempty" json:"b,omitempty"`
	A        []any  `yaml:"a,omitempty" toml:"a,omitempty" json:"a,omitempty"`
	Zeros    []any  `yaml:"zeros,omitempty" toml:"zeros,omitempty" json:"zeros,omitempty"`
	Poles    []any  `yaml:"poles,omitempty" toml:"poles,omitempty" json:"poles,omitempty"`
	Gain     any    `yaml:"gain,omitempty" toml:"gain,omitempty" json:"gain,omitempty"`
	Residues []any  `yaml:"residues,omitempty" toml:"residues,omitempty" json:"residues,omitempty"`
	K        []any  `yaml:"k,omitempty" toml:"k,omitempty" json:"k,omitempty"`
}

// Encode writes doc to w.
func Encode(w io.Writer, format Format, doc Document) error {
	wire := wireDocument{
		Kind:     string(doc.Kind),
		Domain:   string(doc.Domain),
		B:        toPlain(doc.B),
		A:        toPlain(doc.A),
		Zeros:    toPlain(doc.Zeros),
		Poles:    toPlain(doc.Poles),
		Residues: toPlain(doc.Residues),
		K:        toPlain(doc.K),
	}
	if doc.Gain != nil {
		wire.Gain = doc.Gain.plain()
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(wire); err != nil {
			return fmt.Errorf("sysfile: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(wire); err != nil {
			return fmt.Errorf("sysfile: %w", err)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(wire); err != nil {
			return fmt.Errorf("sysfile: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
