// Package pdfstyle derives a PDF style analysis from a reference PDF. The
// analysis only covers page geometry; colors and typography are seeded
// with neutral defaults for manual review.
package pdfstyle

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/jackzampolin/deck/internal/document"
)

// AnalysisMethod is recorded in the metadata of every analysis.
const AnalysisMethod = "pdfcpu-page-geometry"

// Slide types assigned to pages.
const (
	TypeHeroCover   = "hero-cover"
	TypeContentText = "content-text"
	TypeRotated     = "content-rotated"
)

const (
	defaultBackground = `"#FFFFFF"`
	defaultSpacing    = `{"padding":"40px"}`
)

// Analyzer reads PDFs with pdfcpu.
type Analyzer struct {
	conf   *model.Configuration
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithClock overrides the clock used for analyzedAt.
func WithClock(clock func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = clock
	}
}

// New creates an analyzer. PDFs are read in relaxed validation mode since
// exported slide decks are frequently slightly malformed.
func New(opts ...Option) *Analyzer {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	a := &Analyzer{
		conf:   conf,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze measures every page of the PDF and builds the analysis.
// sourceFile is recorded as metadata.sourceFile.
func (a *Analyzer) Analyze(rs io.ReadSeeker, sourceFile string) (*document.PDFStyleAnalysis, error) {
	dims, err := api.PageDims(rs, a.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions of %s: %w", sourceFile, err)
	}

	pages := make([]document.PageDimensions, len(dims))
	for i, d := range dims {
		pages[i] = document.PageDimensions{Width: d.Width, Height: d.Height}
	}
	a.logger.Info("pdf measured", "file", sourceFile, "pages", len(pages))

	return Build(sourceFile, pages, a.now())
}

// Build assembles an analysis from measured pages.
func Build(sourceFile string, pages []document.PageDimensions, now time.Time) (*document.PDFStyleAnalysis, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s has no pages", sourceFile)
	}

	structures := make([]document.SlideStructure, len(pages))
	analyzed := make([]int, len(pages))
	patterns := make(map[string]document.Template)
	for i := range pages {
		page := pages[i]
		slideType := classify(i, page, pages[0])
		structures[i] = document.SlideStructure{
			SlideNumber: i + 1,
			Type:        slideType,
			Layout:      "auto-detected",
			Dimensions:  &page,
			Background:  json.RawMessage(`{"color":"#FFFFFF"}`),
			Spacing:     json.RawMessage(defaultSpacing),
		}
		analyzed[i] = i + 1
		if _, ok := patterns[slideType]; !ok {
			patterns[slideType] = document.NewTemplate(json.RawMessage(defaultBackground), json.RawMessage(defaultSpacing))
		}
	}

	tokens, err := designTokens(pages[0])
	if err != nil {
		return nil, err
	}

	return &document.PDFStyleAnalysis{
		Metadata: document.PDFMetadata{
			SourceFile:     sourceFile,
			AnalyzedAt:     document.FormatTimestamp(now),
			AnalysisMethod: AnalysisMethod,
			TotalPages:     len(pages),
			AnalyzedPages:  analyzed,
		},
		SlideStructures:   structures,
		DesignTokens:      tokens,
		ComponentPatterns: patterns,
		Recommendations:   json.RawMessage(`{}`),
		ExtractionNotes: &document.ExtractionNotes{
			Limitations:    []string{"Page geometry only", "No text, color or font extraction"},
			Strengths:      []string{"Accurate page count and dimensions"},
			Recommendation: "Review and add visual styles manually.",
		},
	}, nil
}

// classify assigns a slide type from page position and geometry. The cover
// is the first page; pages whose orientation differs from the cover are
// flagged as rotated content.
func classify(index int, page, cover document.PageDimensions) string {
	switch {
	case index == 0:
		return TypeHeroCover
	case landscape(page) != landscape(cover):
		return TypeRotated
	default:
		return TypeContentText
	}
}

func landscape(p document.PageDimensions) bool {
	return p.Width > p.Height
}

type namedRatio struct {
	name  string
	value float64
}

var knownRatios = []namedRatio{
	{"16:9", 16.0 / 9.0},
	{"16:10", 16.0 / 10.0},
	{"4:3", 4.0 / 3.0},
	{"3:2", 3.0 / 2.0},
	{"1:1", 1},
	{"√2:1", math.Sqrt2},
}

// AspectRatio names the aspect ratio of a page, orienting it long side
// first. Ratios within 1% of a common presentation format use its name.
func AspectRatio(p document.PageDimensions) string {
	long, short := p.Width, p.Height
	if short > long {
		long, short = short, long
	}
	if short <= 0 {
		return "unknown"
	}
	r := long / short
	for _, known := range knownRatios {
		if math.Abs(r-known.value)/known.value < 0.01 {
			return known.name
		}
	}
	return fmt.Sprintf("%.2f:1", r)
}

func designTokens(cover document.PageDimensions) (map[string]json.RawMessage, error) {
	orientation := "portrait"
	if landscape(cover) {
		orientation = "landscape"
	}
	groups := map[string]any{
		"colors": map[string]any{
			"primary":    map[string]string{"main": "#000000", "description": "Detected primary color"},
			"background": map[string]string{"main": "#FFFFFF", "description": "Detected background"},
			"text":       map[string]string{"primary": "#000000", "secondary": "#666666"},
		},
		"typography": map[string]any{
			"heading": map[string]string{"fontFamily": "sans-serif", "fontWeight": "700"},
			"body":    map[string]string{"fontFamily": "sans-serif", "fontWeight": "400"},
		},
		"spacing": map[string]any{
			"page": map[string]string{"horizontal": "50px", "vertical": "50px"},
		},
		"layout": map[string]any{
			"aspectRatio": AspectRatio(cover),
			"orientation": orientation,
			"pageSize":    map[string]float64{"width": cover.Width, "height": cover.Height},
		},
	}

	tokens := make(map[string]json.RawMessage, len(groups))
	for name, group := range groups {
		raw, err := json.Marshal(group)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s tokens: %w", name, err)
		}
		tokens[name] = raw
	}
	return tokens, nil
}
