package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mergebench/internal/config"
	"mergebench/internal/report"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report [results.csv]",
		Short: "Summarize a results table per tool",
		Long:  "Read a results CSV (default: the latest run's table) and print per-tool mean timing and agreement rates against the reference.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.OutputDir, "latest", "results.csv")
			if len(args) == 1 {
				path = args[0]
			}
			return report.Generate(path, cfg.ToolNames(), cfg.ReferenceName, os.Stdout)
		},
	}
}
