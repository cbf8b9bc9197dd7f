// Package schema holds the JSON Schemas for every document the pipeline
// reads or writes.
package schema

import (
	"embed"
	"errors"
	"fmt"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrUnknown is returned for a schema name that is not registered.
var ErrUnknown = errors.New("unknown schema")

// Name identifies a document schema.
type Name string

const (
	Content    Name = "content"
	Theme      Name = "theme"
	PDFStyle   Name = "pdf_style"
	Integrated Name = "integrated"
)

// Schema is a JSON Schema document.
type Schema struct {
	Name   Name
	Source []byte
}

// registry lists the schemas in the order documents flow through a run.
var registry = []Name{Content, Theme, PDFStyle, Integrated}

// Names returns every registered schema name.
func Names() []Name {
	names := make([]Name, len(registry))
	copy(names, registry)
	return names
}

// ParseName resolves a schema name given on the command line.
func ParseName(s string) (Name, error) {
	for _, n := range registry {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknown, s)
}

// All returns every schema, loaded from the embedded files.
func All() ([]Schema, error) {
	schemas := make([]Schema, 0, len(registry))
	for _, n := range registry {
		s, err := Get(n)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, *s)
	}
	return schemas, nil
}

// Get returns a single schema by name.
func Get(name Name) (*Schema, error) {
	for _, n := range registry {
		if n != name {
			continue
		}
		content, err := schemaFS.ReadFile(filename(n))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", n, err)
		}
		return &Schema{Name: n, Source: content}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
}

func filename(n Name) string {
	return fmt.Sprintf("schemas/%s.json", n)
}
