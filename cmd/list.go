package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mergebench/internal/config"
	"mergebench/internal/scenario"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured tools and staged scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Println("Tools:")
			for _, t := range cfg.Tools {
				fmt.Printf("  - %s (%s)\n", t.Name, t.BinaryPath)
			}
			fmt.Printf("\nReference: %s\n", cfg.ReferenceName)

			scenarios, err := scenario.Discover(cfg.ScenariosDir)
			if err != nil {
				fmt.Printf("\nWorking set %s not readable: %v\n", cfg.ScenariosDir, err)
				return nil
			}
			fmt.Printf("\nScenarios (%d):\n", len(scenarios))
			for _, s := range scenarios {
				fmt.Printf("  - %s/%s\n", s.Project, s.Commit)
			}
			return nil
		},
	}
}
