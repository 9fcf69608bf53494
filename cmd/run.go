package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mergebench/internal/compare"
	"mergebench/internal/config"
	"mergebench/internal/conflict"
	"mergebench/internal/result"
	"mergebench/internal/runner"
	"mergebench/internal/scenario"
)

var flagTrials int

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark every configured tool against the staged scenarios",
		RunE:  runBenchmark,
	}
	cmd.Flags().IntVar(&flagTrials, "trials", 0, "override trial count per tool per scenario")
	return cmd
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.LoadEnv(); err != nil {
		return err
	}
	if flagTrials > 0 {
		cfg.Trials = flagTrials
	}

	scenarios, err := scenario.Discover(cfg.ScenariosDir)
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios staged under %s (run `mergebench sample` first)", cfg.ScenariosDir)
	}

	runDir, err := result.CreateRunDir(cfg.OutputDir)
	if err != nil {
		return err
	}
	fmt.Printf("Run directory: %s\n", runDir)

	toolNames := cfg.ToolNames()
	sources := append(toolNames, cfg.ReferenceName)
	table := result.NewTable(filepath.Join(runDir, "results.csv"), toolNames, cfg.ReferenceName)

	for _, scn := range scenarios {
		fmt.Printf("Processing %s/%s... ", scn.Project, scn.Commit)

		base, left, right, ok := scn.Inputs()
		if !ok {
			fmt.Println("skipped: base/left/right not all present")
			continue
		}

		timings := make(map[string]float64, len(cfg.Tools))
		results := make(map[string]compare.Source, len(sources))
		for _, tool := range cfg.Tools {
			outputDir := filepath.Join(runDir, "output", scn.Project, scn.Commit, tool.Name)
			ms := runner.Benchmark(tool, base, left, right, outputDir, cfg.Trials)
			timings[tool.Name] = ms
			if ms == runner.FailedTime {
				fmt.Printf("[%s failed all trials] ", tool.Name)
			}
			results[tool.Name] = parseSource(runner.OutputPath(outputDir, left))
		}
		results[cfg.ReferenceName] = parseSource(scn.SlotFile(scenario.SlotChild))

		row := compare.Build(scn.Project, scn.Commit, filepath.Base(base), sources, results, timings)
		if err := table.Append(row); err != nil {
			log.Printf("warning: writing row for %s/%s: %v", scn.Project, scn.Commit, err)
			continue
		}
		fmt.Println("done")
	}

	fmt.Println("\nBenchmark run complete.")
	fmt.Printf("Results: %s\n", table.Path())
	return nil
}

// parseSource parses a merge result file into a comparison source. An empty
// or missing path yields an invalid source: its conflict count reports as
// the sentinel and it never compares equal to anything.
func parseSource(path string) compare.Source {
	if path == "" {
		return compare.Source{}
	}
	parsed := conflict.Parse(path)
	return compare.Source{
		Count:   parsed.Count,
		Content: parsed.Content,
		Blocks:  parsed.Blocks,
		Valid:   fileExists(path),
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
