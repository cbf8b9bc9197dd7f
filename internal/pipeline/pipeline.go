// Package pipeline integrates slide content with a style theme into a
// single presentation document.
//
// A run selects a mode from the documents that exist, loads and normalizes
// them, merges every slide with its template, writes the result and then
// validates what was written.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/jackzampolin/deck/internal/document"
	"github.com/jackzampolin/deck/internal/schema"
	"github.com/jackzampolin/deck/internal/store"
)

// Paths are the store keys of the pipeline's documents.
type Paths struct {
	Content  string
	Style    string
	PDFStyle string
	Output   string
}

// ContentLabel returns the label recorded for the content document.
func (p Paths) ContentLabel() string { return filepath.Base(p.Content) }

// StyleLabel returns the label recorded for the style theme.
func (p Paths) StyleLabel() string { return filepath.Base(p.Style) }

// PDFStyleLabel returns the label recorded for the PDF style analysis.
func (p Paths) PDFStyleLabel() string { return filepath.Base(p.PDFStyle) }

// Inputs returns the keys of the three input documents.
func (p Paths) Inputs() []string {
	return []string{p.Content, p.Style, p.PDFStyle}
}

// Pipeline runs the integration against a store.
type Pipeline struct {
	store          store.Store
	paths          Paths
	validator      *schema.Validator
	uniqueSlideIDs bool
	logger         *slog.Logger
	now            func() time.Time
}

// Option customizes a Pipeline during construction.
type Option func(*Pipeline)

// WithLogger sets the logger for progress output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithClock overrides the clock used for generated timestamps.
func WithClock(clock func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = clock
	}
}

// WithSchemaValidator checks every input document against its schema
// before it is decoded.
func WithSchemaValidator(v *schema.Validator) Option {
	return func(p *Pipeline) {
		p.validator = v
	}
}

// WithUniqueSlideIDs controls whether duplicate slide ids fail the load.
// Enabled by default.
func WithUniqueSlideIDs(enabled bool) Option {
	return func(p *Pipeline) {
		p.uniqueSlideIDs = enabled
	}
}

// New creates a pipeline over the store.
func New(st store.Store, paths Paths, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:          st,
		paths:          paths,
		uniqueSlideIDs: true,
		logger:         slog.Default(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result describes a completed run. It is returned alongside a
// ValidationError, since the output exists even when validation fails.
type Result struct {
	Mode        document.Mode
	Presence    Presence
	OutputPath  string
	OutputBytes int64
	// Document is the presentation as read back from the store.
	Document *document.Integrated
}

// Detect reports which input documents exist.
func (p *Pipeline) Detect() (Presence, error) {
	var presence Presence
	for _, check := range []struct {
		path string
		dst  *bool
	}{
		{p.paths.Content, &presence.Content},
		{p.paths.Style, &presence.Style},
		{p.paths.PDFStyle, &presence.PDFStyle},
	} {
		ok, err := p.store.Exists(check.path)
		if err != nil {
			return Presence{}, fmt.Errorf("failed to detect input documents: %w", err)
		}
		*check.dst = ok
	}
	return presence, nil
}

// Run executes one integration. Errors are *NoValidInputError,
// *DocumentLoadError or *ValidationError for the pipeline's own failure
// kinds; anything else comes from the store or the context.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	presence, err := p.Detect()
	if err != nil {
		return nil, err
	}
	mode, err := SelectMode(presence)
	if err != nil {
		return nil, err
	}
	p.logger.Info("input mode selected",
		"mode", mode,
		"content", presence.Content,
		"style", presence.Style,
		"pdf_style", presence.PDFStyle,
	)
	if mode == document.ModePDFOnly {
		p.logger.Warn("pdf style loaded without content, slides must be created manually")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inputs, err := p.Load(mode)
	if err != nil {
		return nil, err
	}

	doc := Merge(inputs, mode, SourceFiles(presence, p.paths), p.now())
	for _, s := range doc.Slides {
		p.logger.Debug("merged slide", "id", s.ID, "type", s.Type)
	}
	p.logger.Info("slides merged", "total", len(doc.Slides))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := doc.Encode()
	if err != nil {
		return nil, err
	}
	if err := p.store.Write(p.paths.Output, data); err != nil {
		return nil, fmt.Errorf("failed to write integrated presentation: %w", err)
	}
	p.logger.Info("integrated file written", "path", p.paths.Output)

	return p.verify(mode, presence)
}

// verify reads the output back and runs the structural checks on what was
// actually persisted.
func (p *Pipeline) verify(mode document.Mode, presence Presence) (*Result, error) {
	data, err := p.store.Read(p.paths.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to read back integrated presentation: %w", err)
	}
	size, err := p.store.Size(p.paths.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to stat integrated presentation: %w", err)
	}
	written, err := document.ParseIntegrated(data)
	if err != nil {
		return nil, err
	}

	p.logger.Info("validating output",
		"bytes", size,
		"slides", len(written.Slides),
		"templates", len(written.Theme.SlideTemplates),
		"design_tokens", len(written.Theme.DesignTokens),
	)

	result := &Result{
		Mode:        mode,
		Presence:    presence,
		OutputPath:  p.paths.Output,
		OutputBytes: size,
		Document:    written,
	}

	if failures := Validate(written, mode); len(failures) > 0 {
		for _, f := range failures {
			p.logger.Error("validation failed", "error", f)
		}
		return result, &ValidationError{Path: p.paths.Output, Failures: failures}
	}
	return result, nil
}
