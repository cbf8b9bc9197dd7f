package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/deck/internal/config"
	"github.com/jackzampolin/deck/internal/home"
	"github.com/jackzampolin/deck/internal/output"
	"github.com/jackzampolin/deck/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "deck",
	Short: "Merge slide content with a style theme into a presentation",
	Long: `Deck integrates presentation documents.

It looks for three JSON documents under the project root:
  - slide content    (analysis/presentation-pipeline/01_contents_slides.json)
  - style theme      (analysis/presentation-pipeline/02_style_theme.json)
  - PDF style        (analysis/pdf-analysis/bluehive_style_analysis.json)

and merges whatever is available into
analysis/presentation-pipeline/03_integrate_presentation.json.

Run without a subcommand to integrate once.`,
	Version:       version.GitRelease,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runIntegrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: <home>/deck.yaml, ./deck.yaml or ~/.deck/deck.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "project root that document paths are relative to (default: working directory)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", string(output.DefaultFormat), "output format: yaml or json",
	)

	rootCmd.AddCommand(versionCmd)
}

// env is the per-invocation state shared by commands.
type env struct {
	home    *home.Dir
	config  *config.Manager
	logger  *slog.Logger
	printer *output.Printer
}

func setup(cmd *cobra.Command) (*env, error) {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}

	h, err := home.New(homeDir)
	if err != nil {
		return nil, err
	}
	if !h.Exists() {
		return nil, fmt.Errorf("project root %s does not exist", h.Path())
	}

	cm, err := config.NewManager(cfgFile, h.Path())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cm.Get().Log)
	if err != nil {
		return nil, err
	}
	if used := cm.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", "file", used)
	}

	return &env{
		home:    h,
		config:  cm,
		logger:  logger,
		printer: output.NewPrinter(cmd.OutOrStdout(), format),
	}, nil
}

// newLogger writes to stderr so stdout stays machine readable.
func newLogger(cfg config.LogCfg) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.JSON() {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}

func runLogger(logger *slog.Logger) *slog.Logger {
	return logger.With("run_id", uuid.NewString())
}
