// Package output renders command results as YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a structured output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatYAML

// ParseFormat resolves a --output flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatYAML), "yml":
		return FormatYAML, nil
	case string(FormatJSON):
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown output format: %s (want yaml or json)", s)
}

// Printer writes values to a writer in a fixed format.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a printer.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Print writes data in the printer's format.
func (p *Printer) Print(data any) error {
	return Write(p.w, p.format, data)
}

// Write writes data to w in the given format.
func Write(w io.Writer, format Format, data any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
