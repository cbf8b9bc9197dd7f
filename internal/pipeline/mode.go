package pipeline

import "github.com/jackzampolin/deck/internal/document"

// Presence records which of the well-known input documents exist.
type Presence struct {
	Content  bool
	Style    bool
	PDFStyle bool
}

// Count returns how many documents are present.
func (p Presence) Count() int {
	n := 0
	for _, ok := range []bool{p.Content, p.Style, p.PDFStyle} {
		if ok {
			n++
		}
	}
	return n
}

// SelectMode picks the operating mode. A style theme takes precedence over a
// PDF style analysis when both are present.
func SelectMode(p Presence) (document.Mode, error) {
	switch {
	case p.Content && p.Style:
		return document.ModeContentAndTheme, nil
	case p.Content && p.PDFStyle:
		return document.ModeContentAndPDF, nil
	case p.PDFStyle:
		return document.ModePDFOnly, nil
	default:
		return "", &NoValidInputError{Presence: p}
	}
}
