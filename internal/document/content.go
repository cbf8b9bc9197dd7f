package document

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultProjectName is used when the first slide carries no title text.
const DefaultProjectName = "Presentation"

// ErrMissingSlides is returned when a content document has no slides array.
var ErrMissingSlides = errors.New("content document has no slides array")

// Content is the slide content document.
type Content struct {
	Slides []Slide `json:"slides"`
}

// Slide is a single content unit. Optional presentation fields stay as raw
// JSON so they are carried through unchanged.
type Slide struct {
	ID         string                     `json:"id"`
	Type       string                     `json:"type"`
	Order      json.RawMessage            `json:"order,omitempty"`
	Layout     json.RawMessage            `json:"layout,omitempty"`
	Elements   map[string]json.RawMessage `json:"elements,omitempty"`
	Background json.RawMessage            `json:"background,omitempty"`
	Spacing    json.RawMessage            `json:"spacing,omitempty"`
	Transition json.RawMessage            `json:"transition,omitempty"`
}

// ParseContent decodes a content document and checks that it has slides.
func ParseContent(data []byte) (*Content, error) {
	var c Content
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content document: %w", err)
	}
	if c.Slides == nil {
		return nil, ErrMissingSlides
	}
	return &c, nil
}

// DuplicateIDs returns every slide id that appears more than once, in order
// of first repetition.
func (c *Content) DuplicateIDs() []string {
	seen := make(map[string]int, len(c.Slides))
	var dups []string
	for _, s := range c.Slides {
		seen[s.ID]++
		if seen[s.ID] == 2 {
			dups = append(dups, s.ID)
		}
	}
	return dups
}

// TitleText returns elements.title.text when it resolves to a non-empty
// string.
func (s Slide) TitleText() (string, bool) {
	raw, ok := s.Elements["title"]
	if !ok || !isObject(raw) {
		return "", false
	}
	var title struct {
		Text json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(raw, &title); err != nil {
		return "", false
	}
	var text string
	if err := json.Unmarshal(title.Text, &text); err != nil {
		return "", false
	}
	return text, text != ""
}

// ProjectName derives a presentation name from the first slide's title,
// falling back to DefaultProjectName.
func ProjectName(slides []Slide) string {
	if len(slides) == 0 {
		return DefaultProjectName
	}
	if text, ok := slides[0].TitleText(); ok {
		return text
	}
	return DefaultProjectName
}
