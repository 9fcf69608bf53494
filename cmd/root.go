package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mergebench",
		Short: "Benchmark harness for three-way merge tools",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "mergebench.yaml", "config file path")
	root.AddCommand(newRunCmd())
	root.AddCommand(newSampleCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	return root
}
