package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	// PDFThemeName names every theme synthesized from a PDF style analysis.
	PDFThemeName = "PDF-Extracted Theme"
	// PDFThemeVersion is the version stamped on synthesized themes.
	PDFThemeVersion = "1.0.0"
)

// ErrMissingSourceFile is returned when a PDF style analysis does not name
// the PDF it was produced from.
var ErrMissingSourceFile = errors.New("pdf style analysis has no metadata.sourceFile")

// PDFStyleAnalysis is the style information extracted from a reference PDF.
type PDFStyleAnalysis struct {
	Metadata          PDFMetadata                `json:"metadata"`
	SlideStructures   []SlideStructure           `json:"slideStructures,omitempty"`
	DesignTokens      map[string]json.RawMessage `json:"designTokens"`
	ComponentPatterns map[string]Template        `json:"componentPatterns"`
	Recommendations   json.RawMessage            `json:"recommendations,omitempty"`
	ExtractionNotes   *ExtractionNotes           `json:"extractionNotes,omitempty"`
}

// PDFMetadata describes the analyzed PDF.
type PDFMetadata struct {
	SourceFile     string `json:"sourceFile"`
	AnalyzedAt     string `json:"analyzedAt,omitempty"`
	AnalysisMethod string `json:"analysisMethod,omitempty"`
	TotalPages     int    `json:"totalPages,omitempty"`
	AnalyzedPages  []int  `json:"analyzedPages,omitempty"`
}

// SlideStructure is the per-page structure detected in the PDF.
type SlideStructure struct {
	SlideNumber int                        `json:"slideNumber"`
	Type        string                     `json:"type"`
	Layout      string                     `json:"layout"`
	Dimensions  *PageDimensions            `json:"dimensions,omitempty"`
	Elements    map[string]json.RawMessage `json:"elements,omitempty"`
	Background  json.RawMessage            `json:"background,omitempty"`
	Spacing     json.RawMessage            `json:"spacing,omitempty"`
}

// PageDimensions is a page size in PDF user space units.
type PageDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ExtractionNotes records what an analysis could and could not detect.
type ExtractionNotes struct {
	Limitations    []string `json:"limitations,omitempty"`
	Strengths      []string `json:"strengths,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// ParsePDFStyle decodes a PDF style analysis and checks that it names its
// source file.
func ParsePDFStyle(data []byte) (*PDFStyleAnalysis, error) {
	var a PDFStyleAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to parse pdf style analysis: %w", err)
	}
	if a.Metadata.SourceFile == "" {
		return nil, ErrMissingSourceFile
	}
	return &a, nil
}

// Theme converts the analysis into a style theme. Component patterns become
// slide templates unchanged.
func (a *PDFStyleAnalysis) Theme(now time.Time) (Theme, error) {
	meta, err := json.Marshal(ThemeMetadata{
		ThemeName:       PDFThemeName,
		Version:         PDFThemeVersion,
		GeneratedAt:     FormatTimestamp(now),
		SourceReference: a.Metadata.SourceFile,
	})
	if err != nil {
		return Theme{}, fmt.Errorf("failed to encode theme metadata: %w", err)
	}
	return Theme{
		Metadata:       meta,
		DesignTokens:   a.DesignTokens,
		SlideTemplates: a.ComponentPatterns,
	}, nil
}
