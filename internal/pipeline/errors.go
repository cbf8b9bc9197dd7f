package pipeline

import (
	"fmt"
	"strings"
)

// NoValidInputError is returned when the present documents do not form any
// recognized input combination.
type NoValidInputError struct {
	Presence Presence
}

func (e *NoValidInputError) Error() string {
	return fmt.Sprintf("no valid input files found (content=%t style=%t pdf_style=%t)",
		e.Presence.Content, e.Presence.Style, e.Presence.PDFStyle)
}

// DocumentLoadError is returned when a required document cannot be read,
// decoded or fails its structural checks. Nothing has been written when it
// occurs.
type DocumentLoadError struct {
	Document string // document label, e.g. "02_style_theme.json"
	Path     string
	Err      error
}

func (e *DocumentLoadError) Error() string {
	return fmt.Sprintf("failed to load %s (%s): %v", e.Document, e.Path, e.Err)
}

func (e *DocumentLoadError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when the persisted presentation fails one or
// more structural checks. The output has already been written.
type ValidationError struct {
	Path     string
	Failures []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("validation of %s failed: %s", e.Path, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error {
	return e.Failures
}
