package document

import (
	"encoding/json"
	"fmt"
)

// Theme is a style theme: design tokens plus per-slide-type templates.
// Keys other than the three recognized ones are preserved in Extra.
type Theme struct {
	Metadata       json.RawMessage
	DesignTokens   map[string]json.RawMessage
	SlideTemplates map[string]Template
	Extra          map[string]json.RawMessage
}

// ThemeMetadata describes a theme synthesized from a PDF style analysis.
type ThemeMetadata struct {
	ThemeName       string `json:"themeName"`
	Version         string `json:"version"`
	GeneratedAt     string `json:"generatedAt"`
	SourceReference string `json:"sourceReference"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Theme) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var theme Theme
	if raw, ok := fields["metadata"]; ok {
		theme.Metadata = raw
		delete(fields, "metadata")
	}
	if raw, ok := fields["designTokens"]; ok {
		if err := json.Unmarshal(raw, &theme.DesignTokens); err != nil {
			return fmt.Errorf("designTokens: %w", err)
		}
		delete(fields, "designTokens")
	}
	if raw, ok := fields["slideTemplates"]; ok {
		if err := json.Unmarshal(raw, &theme.SlideTemplates); err != nil {
			return fmt.Errorf("slideTemplates: %w", err)
		}
		delete(fields, "slideTemplates")
	}
	if len(fields) > 0 {
		theme.Extra = fields
	}
	*t = theme
	return nil
}

// MarshalJSON implements json.Marshaler. designTokens and slideTemplates are
// always emitted, as null when unset.
func (t Theme) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Extra)+3)
	for k, v := range t.Extra {
		out[k] = v
	}
	if len(t.Metadata) > 0 {
		out["metadata"] = t.Metadata
	}
	out["designTokens"] = t.DesignTokens
	out["slideTemplates"] = t.SlideTemplates
	return json.Marshal(out)
}

// ParseTheme decodes a style theme document.
func ParseTheme(data []byte) (*Theme, error) {
	var t Theme
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse style theme: %w", err)
	}
	return &t, nil
}

// WithTemplateDefaults returns a copy of the theme whose SlideTemplates is
// never nil.
func (t Theme) WithTemplateDefaults() Theme {
	if t.SlideTemplates == nil {
		t.SlideTemplates = map[string]Template{}
	}
	return t
}

// TemplateFor looks up the template for a slide type. The zero Template,
// which supplies no defaults, is returned when none is registered.
func (t Theme) TemplateFor(slideType string) (Template, bool) {
	tmpl, ok := t.SlideTemplates[slideType]
	return tmpl, ok
}

// Template holds the per-slide-type defaults the merger understands. The
// decoded JSON is kept so unrecognized fields survive re-serialization.
type Template struct {
	Background *TemplateBackground
	Spacing    json.RawMessage

	raw json.RawMessage
}

// TemplateBackground is the background block of a template.
type TemplateBackground struct {
	Default json.RawMessage `json:"default,omitempty"`
}

type templateFields struct {
	Background *TemplateBackground `json:"background,omitempty"`
	Spacing    json.RawMessage     `json:"spacing,omitempty"`
}

// NewTemplate builds a template from a default background and spacing.
// Either may be nil.
func NewTemplate(background, spacing json.RawMessage) Template {
	t := Template{Spacing: spacing}
	if background != nil {
		t.Background = &TemplateBackground{Default: background}
	}
	return t
}

// UnmarshalJSON implements json.Unmarshaler. Templates that are not JSON
// objects are kept verbatim and contribute no defaults.
func (t *Template) UnmarshalJSON(data []byte) error {
	tmpl := Template{raw: append(json.RawMessage(nil), data...)}
	if !isObject(data) {
		*t = tmpl
		return nil
	}
	var fields struct {
		Background json.RawMessage `json:"background"`
		Spacing    json.RawMessage `json:"spacing"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	tmpl.Spacing = fields.Spacing
	if isObject(fields.Background) {
		var bg TemplateBackground
		if err := json.Unmarshal(fields.Background, &bg); err != nil {
			return err
		}
		tmpl.Background = &bg
	}
	*t = tmpl
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Template) MarshalJSON() ([]byte, error) {
	if t.raw != nil {
		return t.raw, nil
	}
	return json.Marshal(templateFields{Background: t.Background, Spacing: t.Spacing})
}

// BackgroundDefault returns background.default, or nil when the template
// has none.
func (t Template) BackgroundDefault() json.RawMessage {
	if t.Background == nil {
		return nil
	}
	return t.Background.Default
}

// SpacingDefault returns the template spacing, or nil when it has none.
func (t Template) SpacingDefault() json.RawMessage {
	return t.Spacing
}
