package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/deck/internal/pdfstyle"
	"github.com/jackzampolin/deck/internal/schema"
	"github.com/jackzampolin/deck/internal/store"
)

var analyzeOut string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pdf>",
	Short: "Generate a PDF style analysis from a reference PDF",
	Long: `Analyze measures every page of a PDF and writes a PDF style analysis
that integrate can use when no style theme exists.

Only page geometry is extracted. Colors and typography are neutral
placeholders to be refined by hand.

Examples:
  deck analyze decks/brand.pdf
  deck analyze decks/brand.pdf --out analysis/pdf-analysis/brand.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}

		pdfPath := e.home.Resolve(args[0])
		f, err := os.Open(pdfPath)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		analyzer := pdfstyle.New(pdfstyle.WithLogger(e.logger))
		analysis, err := analyzer.Analyze(f, filepath.Base(pdfPath))
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode analysis: %w", err)
		}
		v, err := schema.NewValidator()
		if err != nil {
			return err
		}
		if err := v.Validate(schema.PDFStyle, data); err != nil {
			return err
		}

		out := analyzeOut
		if out == "" {
			out = e.config.Get().ResolvedPaths().PDFStyle
		}
		out = e.home.Resolve(out)
		if err := store.NewOS().Write(out, data); err != nil {
			return fmt.Errorf("failed to write analysis: %w", err)
		}
		e.logger.Info("pdf style analysis written", "path", out)

		return e.printer.Print(map[string]any{
			"source":      analysis.Metadata.SourceFile,
			"output":      e.home.Rel(out),
			"total_pages": analysis.Metadata.TotalPages,
			"templates":   len(analysis.ComponentPatterns),
		})
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "output path (default: paths.pdf_style from config)")

	rootCmd.AddCommand(analyzeCmd)
}
