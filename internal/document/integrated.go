package document

import (
	"encoding/json"
	"fmt"
)

// Mode identifies which combination of inputs produced a presentation.
type Mode string

const (
	ModeContentAndTheme Mode = "content-and-theme"
	ModeContentAndPDF   Mode = "content-and-pdf"
	ModePDFOnly         Mode = "pdf-only"
)

// Integrated is the merged presentation written by the pipeline.
type Integrated struct {
	Metadata   Metadata      `json:"metadata"`
	Slides     []MergedSlide `json:"slides"`
	Theme      Theme         `json:"theme"`
	Navigation Navigation    `json:"navigation"`
}

// Metadata summarizes how an integrated presentation was produced.
type Metadata struct {
	ProjectName string   `json:"projectName"`
	GeneratedAt string   `json:"generatedAt"`
	SourceFiles []string `json:"sourceFiles"`
	TotalSlides int      `json:"totalSlides"`
	Mode        Mode     `json:"mode"`
}

// MergedSlide is a slide whose background and spacing have been resolved
// against its template.
type MergedSlide struct {
	ID         string                     `json:"id"`
	Type       string                     `json:"type"`
	Order      json.RawMessage            `json:"order,omitempty"`
	Layout     json.RawMessage            `json:"layout,omitempty"`
	Elements   map[string]json.RawMessage `json:"elements,omitempty"`
	Background json.RawMessage            `json:"background,omitempty"`
	Spacing    json.RawMessage            `json:"spacing,omitempty"`
	Transition json.RawMessage            `json:"transition,omitempty"`
}

// Navigation configures how a viewer moves between slides.
type Navigation struct {
	Keyboard KeyboardNavigation `json:"keyboard"`
	Dots     DotsNavigation     `json:"dots"`
	Touch    TouchNavigation    `json:"touch"`
}

// KeyboardNavigation maps navigation actions to key names.
type KeyboardNavigation struct {
	Enabled bool    `json:"enabled"`
	Keys    KeySets `json:"keys"`
}

// KeySets lists the keys bound to each navigation action.
type KeySets struct {
	Next     []string `json:"next"`
	Previous []string `json:"previous"`
	First    []string `json:"first"`
	Last     []string `json:"last"`
}

// DotsNavigation configures pagination dots.
type DotsNavigation struct {
	Enabled  bool   `json:"enabled"`
	Position string `json:"position"`
}

// TouchNavigation configures swipe handling.
type TouchNavigation struct {
	Enabled        bool `json:"enabled"`
	SwipeThreshold int  `json:"swipeThreshold"`
}

// DefaultNavigation returns the navigation block shared by every mode.
func DefaultNavigation() Navigation {
	return Navigation{
		Keyboard: KeyboardNavigation{
			Enabled: true,
			Keys: KeySets{
				Next:     []string{"ArrowRight", "Space"},
				Previous: []string{"ArrowLeft"},
				First:    []string{"Home"},
				Last:     []string{"End"},
			},
		},
		Dots: DotsNavigation{
			Enabled:  true,
			Position: "bottom-center",
		},
		Touch: TouchNavigation{
			Enabled:        true,
			SwipeThreshold: 50,
		},
	}
}

// Encode renders the presentation as 2-space indented JSON.
func (d *Integrated) Encode() ([]byte, error) {
	out := *d
	if out.Slides == nil {
		out.Slides = []MergedSlide{}
	}
	if out.Metadata.SourceFiles == nil {
		out.Metadata.SourceFiles = []string{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode integrated presentation: %w", err)
	}
	return data, nil
}

// ParseIntegrated decodes an integrated presentation.
func ParseIntegrated(data []byte) (*Integrated, error) {
	var d Integrated
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse integrated presentation: %w", err)
	}
	return &d, nil
}
