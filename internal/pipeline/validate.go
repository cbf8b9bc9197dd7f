package pipeline

import (
	"errors"

	"go.uber.org/multierr"

	"github.com/jackzampolin/deck/internal/document"
)

var (
	// ErrNoSlides reports an empty presentation outside pdf-only mode.
	ErrNoSlides = errors.New("no slides found in output")
	// ErrMissingDesignTokens reports a theme without design tokens.
	ErrMissingDesignTokens = errors.New("design tokens missing")
)

// Validate checks a persisted presentation. Every failing check is
// returned; nil means the document is valid.
func Validate(doc *document.Integrated, mode document.Mode) []error {
	var err error
	if len(doc.Slides) == 0 && mode != document.ModePDFOnly {
		err = multierr.Append(err, ErrNoSlides)
	}
	if doc.Theme.DesignTokens == nil {
		err = multierr.Append(err, ErrMissingDesignTokens)
	}
	return multierr.Errors(err)
}
