package pipeline

import (
	"encoding/json"
	"time"

	"github.com/jackzampolin/deck/internal/document"
)

// Merge assembles the integrated presentation. Slides keep their input
// order; each one is filled from the template registered for its type.
func Merge(in Inputs, mode document.Mode, sourceFiles []string, now time.Time) *document.Integrated {
	slides := make([]document.MergedSlide, 0, len(in.Slides))
	for _, s := range in.Slides {
		tmpl, _ := in.Theme.TemplateFor(s.Type)
		slides = append(slides, MergeSlide(s, tmpl))
	}

	return &document.Integrated{
		Metadata: document.Metadata{
			ProjectName: document.ProjectName(in.Slides),
			GeneratedAt: document.FormatTimestamp(now),
			SourceFiles: sourceFiles,
			TotalSlides: len(in.Slides),
			Mode:        mode,
		},
		Slides:     slides,
		Theme:      in.Theme,
		Navigation: document.DefaultNavigation(),
	}
}

// MergeSlide resolves background and spacing: the slide's own value wins
// when set, otherwise the template's value is used.
func MergeSlide(s document.Slide, tmpl document.Template) document.MergedSlide {
	return document.MergedSlide{
		ID:         s.ID,
		Type:       s.Type,
		Order:      s.Order,
		Layout:     s.Layout,
		Elements:   s.Elements,
		Background: orDefault(s.Background, tmpl.BackgroundDefault),
		Spacing:    orDefault(s.Spacing, tmpl.SpacingDefault),
		Transition: s.Transition,
	}
}

// orDefault returns own when it is set; the fallback is only consulted
// otherwise.
func orDefault(own json.RawMessage, fallback func() json.RawMessage) json.RawMessage {
	if document.Truthy(own) {
		return own
	}
	return fallback()
}

// SourceFiles lists the labels of every present input, in the fixed order
// content, style, pdf style, regardless of which ones the mode reads.
func SourceFiles(p Presence, paths Paths) []string {
	files := make([]string, 0, p.Count())
	if p.Content {
		files = append(files, paths.ContentLabel())
	}
	if p.Style {
		files = append(files, paths.StyleLabel())
	}
	if p.PDFStyle {
		files = append(files, paths.PDFStyleLabel())
	}
	return files
}
