package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mergebench/internal/config"
	"mergebench/internal/sampler"
)

var (
	flagCount   int
	flagSeed    int64
	flagDataset string
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Stage a random subset of dataset scenarios into the working set",
		RunE:  runSample,
	}
	cmd.Flags().IntVar(&flagCount, "count", -1, "scenarios to stage (-1 keeps the current working set)")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "sampling seed (default: current unix time)")
	cmd.Flags().StringVar(&flagDataset, "dataset", "", "dataset name under the dataset root")
	return cmd
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if flagCount == -1 {
		fmt.Println("Keeping existing working set.")
		return nil
	}

	seed := flagSeed
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().Unix()
	}
	// Always echo the seed so any sample can be reproduced.
	fmt.Printf("Sampling with seed %d\n", seed)

	datasetDir := cfg.DatasetDir
	if flagDataset != "" {
		datasetDir = filepath.Join(datasetDir, flagDataset)
	}

	picked, err := sampler.Sample(datasetDir, cfg.ScenariosDir, flagCount, seed)
	if err != nil {
		return err
	}
	fmt.Printf("Staged %d scenarios into %s:\n", len(picked), cfg.ScenariosDir)
	for _, c := range picked {
		fmt.Printf("  - %s/%s\n", c.Project, c.Commit)
	}
	return nil
}
