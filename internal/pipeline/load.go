package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackzampolin/deck/internal/document"
	"github.com/jackzampolin/deck/internal/schema"
)

// Inputs is the normalized (slides, theme) pair a mode resolves to.
type Inputs struct {
	Slides []document.Slide
	Theme  document.Theme
}

// Load reads and normalizes the documents the mode needs.
func (p *Pipeline) Load(mode document.Mode) (Inputs, error) {
	switch mode {
	case document.ModeContentAndTheme:
		slides, err := p.loadSlides()
		if err != nil {
			return Inputs{}, err
		}
		theme, err := p.loadTheme()
		if err != nil {
			return Inputs{}, err
		}
		return Inputs{Slides: slides, Theme: theme}, nil

	case document.ModeContentAndPDF:
		slides, err := p.loadSlides()
		if err != nil {
			return Inputs{}, err
		}
		theme, err := p.loadPDFTheme()
		if err != nil {
			return Inputs{}, err
		}
		return Inputs{Slides: slides, Theme: theme}, nil

	case document.ModePDFOnly:
		theme, err := p.loadPDFTheme()
		if err != nil {
			return Inputs{}, err
		}
		return Inputs{Slides: []document.Slide{}, Theme: theme}, nil
	}
	return Inputs{}, fmt.Errorf("unknown mode: %s", mode)
}

func (p *Pipeline) loadSlides() ([]document.Slide, error) {
	path := p.paths.Content
	data, err := p.readDocument(path, schema.Content)
	if err != nil {
		return nil, err
	}
	content, err := document.ParseContent(data)
	if err != nil {
		return nil, loadError(path, err)
	}
	if p.uniqueSlideIDs {
		if dups := content.DuplicateIDs(); len(dups) > 0 {
			return nil, loadError(path, fmt.Errorf("duplicate slide ids: %s", strings.Join(dups, ", ")))
		}
	}
	p.logger.Info("content loaded", "file", filepath.Base(path), "slides", len(content.Slides))
	return content.Slides, nil
}

func (p *Pipeline) loadTheme() (document.Theme, error) {
	path := p.paths.Style
	data, err := p.readDocument(path, schema.Theme)
	if err != nil {
		return document.Theme{}, err
	}
	theme, err := document.ParseTheme(data)
	if err != nil {
		return document.Theme{}, loadError(path, err)
	}
	p.logger.Info("style theme loaded", "file", filepath.Base(path), "templates", len(theme.SlideTemplates))
	return theme.WithTemplateDefaults(), nil
}

func (p *Pipeline) loadPDFTheme() (document.Theme, error) {
	path := p.paths.PDFStyle
	data, err := p.readDocument(path, schema.PDFStyle)
	if err != nil {
		return document.Theme{}, err
	}
	analysis, err := document.ParsePDFStyle(data)
	if err != nil {
		return document.Theme{}, loadError(path, err)
	}
	theme, err := analysis.Theme(p.now())
	if err != nil {
		return document.Theme{}, loadError(path, err)
	}
	p.logger.Info("pdf style analysis converted to theme",
		"file", filepath.Base(path),
		"source", analysis.Metadata.SourceFile,
		"templates", len(theme.SlideTemplates),
	)
	return theme.WithTemplateDefaults(), nil
}

// readDocument fetches a document and, when schema checks are enabled,
// validates it before any decoding happens.
func (p *Pipeline) readDocument(path string, name schema.Name) ([]byte, error) {
	data, err := p.store.Read(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	if p.validator != nil {
		if err := p.validator.Validate(name, data); err != nil {
			return nil, loadError(path, err)
		}
	}
	return data, nil
}

func loadError(path string, err error) *DocumentLoadError {
	return &DocumentLoadError{Document: filepath.Base(path), Path: path, Err: err}
}
