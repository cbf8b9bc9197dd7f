package document

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// compactJSON compares raw values independent of indentation.
var compactJSON = cmp.Transformer("compact", func(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
})

func sampleIntegrated(t *testing.T) *Integrated {
	t.Helper()
	theme, err := ParseTheme([]byte(`{"metadata":{"themeName":"t"},"designTokens":{"colors":{"primary":"#000"}},"slideTemplates":{"title":{"background":{"default":"blue"}}}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &Integrated{
		Metadata: Metadata{
			ProjectName: "Intro",
			GeneratedAt: "2025-12-02T00:00:00.000Z",
			SourceFiles: []string{"01_contents_slides.json", "02_style_theme.json"},
			TotalSlides: 1,
			Mode:        ModeContentAndTheme,
		},
		Slides: []MergedSlide{{
			ID:         "s1",
			Type:       "title",
			Order:      json.RawMessage(`1`),
			Layout:     json.RawMessage(`{"columns":2}`),
			Elements:   map[string]json.RawMessage{"title": json.RawMessage(`{"text":"Intro"}`)},
			Background: json.RawMessage(`"blue"`),
		}},
		Theme:      *theme,
		Navigation: DefaultNavigation(),
	}
}

func TestIntegrated_RoundTrip(t *testing.T) {
	doc := sampleIntegrated(t)

	first, err := doc.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, err := ParseIntegrated(first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := decoded.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("round trip changed the document:\n%s\nvs\n%s", first, second)
	}

	if diff := cmp.Diff(doc.Metadata, decoded.Metadata); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(doc.Navigation, decoded.Navigation); diff != "" {
		t.Errorf("navigation mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(doc.Slides, decoded.Slides, compactJSON); diff != "" {
		t.Errorf("slides mismatch (-want +got):\n%s", diff)
	}
}

func TestIntegrated_EncodeEmpty(t *testing.T) {
	doc := &Integrated{
		Metadata:   Metadata{ProjectName: DefaultProjectName, Mode: ModePDFOnly},
		Navigation: DefaultNavigation(),
	}
	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw struct {
		Metadata struct {
			SourceFiles json.RawMessage `json:"sourceFiles"`
		} `json:"metadata"`
		Slides json.RawMessage `json:"slides"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw.Slides) != "[]" {
		t.Errorf("expected slides to encode as [], got %s", raw.Slides)
	}
	if string(raw.Metadata.SourceFiles) != "[]" {
		t.Errorf("expected sourceFiles to encode as [], got %s", raw.Metadata.SourceFiles)
	}
	if !bytes.HasPrefix(data, []byte("{\n  \"metadata\"")) {
		t.Errorf("expected 2-space indented output, got %s", data[:20])
	}
}

func TestMergedSlide_OmitsUnresolvedFields(t *testing.T) {
	data, err := json.Marshal(MergedSlide{ID: "s1", Type: "body"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"id":"s1","type":"body"}` {
		t.Errorf("unexpected encoding: %s", data)
	}
}

func TestDefaultNavigation(t *testing.T) {
	data, err := json.Marshal(DefaultNavigation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"keyboard":{"enabled":true,"keys":{"next":["ArrowRight","Space"],"previous":["ArrowLeft"],"first":["Home"],"last":["End"]}},` +
		`"dots":{"enabled":true,"position":"bottom-center"},` +
		`"touch":{"enabled":true,"swipeThreshold":50}}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}
