package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/deck/internal/config"
	"github.com/jackzampolin/deck/internal/pipeline"
	"github.com/jackzampolin/deck/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Integrate, then re-integrate whenever an input document changes",
	Long: `Watch runs the integration once, then again every time one of the
input documents or the config file changes, until interrupted.

Failed runs are reported and watching continues. Document paths are fixed
when watch starts; other settings, such as log and validation options, are
reloaded from the config file. Restart watch to pick up new paths.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		paths := e.documentPaths(e.config.Get())
		e.config.OnChange(func(cfg *config.Config) {
			if e.documentPaths(cfg) != paths {
				e.logger.Warn("document paths changed, restart watch to use them")
			}
			e.logger.Info("configuration reloaded", "file", e.config.ConfigFileUsed())
		})
		e.config.WatchConfig()

		run := func(ctx context.Context, changed []string) error {
			if len(changed) > 0 {
				e.logger.Info("change detected", "files", changed)
			}
			p, err := e.newPipeline(e.config.Get(), paths)
			if err != nil {
				return err
			}
			return e.integrate(ctx, p)
		}
		if err := run(ctx, nil); err != nil {
			e.logger.Error("initial run failed", "error", err)
		}

		files := watchFiles(paths, e.config.ConfigFileUsed())
		w, err := watch.New(files, e.config.Get().Debounce(), e.logger)
		if err != nil {
			return err
		}
		e.logger.Info("watching for changes", "files", len(files))
		return w.Run(ctx, run)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// watchFiles lists the input documents and, when one was loaded, the config
// file.
func watchFiles(paths pipeline.Paths, configFile string) []string {
	files := paths.Inputs()
	if configFile != "" {
		files = append(files, configFile)
	}
	return files
}
