package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/deck/internal/config"
	"github.com/jackzampolin/deck/internal/pipeline"
	"github.com/jackzampolin/deck/internal/schema"
	"github.com/jackzampolin/deck/internal/store"
)

var integrateCmd = &cobra.Command{
	Use:   "integrate",
	Short: "Merge the available documents into the integrated presentation",
	Long: `Integrate selects an input mode from the documents present:

  content-and-theme  slide content + style theme
  content-and-pdf    slide content + PDF style analysis
  pdf-only           PDF style analysis alone (no slides)

and writes the integrated presentation, then reads it back and validates it.

Exit codes:
  0  success
  2  no usable input documents
  3  an input document could not be loaded
  4  the written presentation failed validation
  1  any other failure`,
	Args: cobra.NoArgs,
	RunE: runIntegrate,
}

func init() {
	rootCmd.AddCommand(integrateCmd)
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	cfg := e.config.Get()
	p, err := e.newPipeline(cfg, e.documentPaths(cfg))
	if err != nil {
		return err
	}
	return e.integrate(cmd.Context(), p)
}

// runSummary is printed after every run.
type runSummary struct {
	Mode        string   `json:"mode" yaml:"mode"`
	Output      string   `json:"output" yaml:"output"`
	Bytes       int64    `json:"bytes" yaml:"bytes"`
	Project     string   `json:"project" yaml:"project"`
	TotalSlides int      `json:"total_slides" yaml:"total_slides"`
	SourceFiles []string `json:"source_files" yaml:"source_files"`
	Valid       bool     `json:"valid" yaml:"valid"`
	Failures    []string `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// documentPaths resolves the configured document paths against the project
// root.
func (e *env) documentPaths(cfg *config.Config) pipeline.Paths {
	paths := cfg.ResolvedPaths()
	return pipeline.Paths{
		Content:  e.home.Resolve(paths.Content),
		Style:    e.home.Resolve(paths.Style),
		PDFStyle: e.home.Resolve(paths.PDFStyle),
		Output:   e.home.Resolve(paths.Output),
	}
}

// newPipeline builds a pipeline over paths. Logging and validation settings
// come from cfg; cfg's own paths are ignored.
func (e *env) newPipeline(cfg *config.Config, paths pipeline.Paths) (*pipeline.Pipeline, error) {
	opts := []pipeline.Option{
		pipeline.WithLogger(runLogger(e.logger)),
		pipeline.WithUniqueSlideIDs(cfg.Validation.UniqueSlideIDs),
	}
	if cfg.Validation.InputSchemas {
		v, err := schema.NewValidator()
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithSchemaValidator(v))
	}

	return pipeline.New(store.NewOS(), paths, opts...), nil
}

// integrate runs p once and prints the summary. The summary is also
// printed when the written document fails validation.
func (e *env) integrate(ctx context.Context, p *pipeline.Pipeline) error {
	res, err := p.Run(ctx)
	if res == nil {
		return err
	}

	summary := runSummary{
		Mode:        string(res.Mode),
		Output:      e.home.Rel(res.OutputPath),
		Bytes:       res.OutputBytes,
		Project:     res.Document.Metadata.ProjectName,
		TotalSlides: res.Document.Metadata.TotalSlides,
		SourceFiles: res.Document.Metadata.SourceFiles,
		Valid:       err == nil,
	}
	var verr *pipeline.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Failures {
			summary.Failures = append(summary.Failures, f.Error())
		}
	}
	if perr := e.printer.Print(summary); perr != nil {
		return perr
	}
	return err
}
