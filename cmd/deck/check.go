package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/deck/internal/schema"
)

var checkSchema string

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Check that a file is valid JSON, optionally against a schema",
	Long: `Check parses a JSON document and reports the first syntax error with
the surrounding lines. With --schema the document is also validated against
one of the embedded schemas: content, theme, pdf_style or integrated.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}

		path := e.home.Resolve(args[0])
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		if err := checkJSON(data); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		result := map[string]any{"file": args[0], "valid_json": true}
		if checkSchema != "" {
			name, err := schema.ParseName(checkSchema)
			if err != nil {
				return err
			}
			v, err := schema.NewValidator()
			if err != nil {
				return err
			}
			if err := v.Validate(name, data); err != nil {
				return err
			}
			result["schema"] = string(name)
		}
		return e.printer.Print(result)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkSchema, "schema", "", "schema to validate against")

	rootCmd.AddCommand(checkCmd)
}

// contextLines is how many lines are shown on each side of a syntax error.
const contextLines = 2

// checkJSON reports whether data is well-formed JSON. Syntax errors carry
// the line and column of the failure and an excerpt around it.
func checkJSON(data []byte) error {
	var v any
	err := json.Unmarshal(data, &v)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return err
	}
	line, col := position(data, syntaxErr.Offset)
	return fmt.Errorf("invalid JSON at line %d, column %d: %v\n%s",
		line, col, syntaxErr, excerpt(data, line))
}

// position converts a byte offset into a 1-based line and column. The
// decoder reports the offset just past the offending byte.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col = 1, 1
	for _, b := range data[:max(offset-1, 0)] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func excerpt(data []byte, line int) string {
	lines := strings.Split(string(data), "\n")
	start := max(line-1-contextLines, 0)
	end := min(line+contextLines, len(lines))

	var b strings.Builder
	for i := start; i < end; i++ {
		marker := "  "
		if i == line-1 {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%4d | %s\n", marker, i+1, lines[i])
	}
	return strings.TrimRight(b.String(), "\n")
}
