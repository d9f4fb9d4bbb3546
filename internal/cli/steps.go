/*
PURPOSE:
  Defines the 'steps' subcommand.
  Lists the pipeline for a cell without running anything.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.NewPlan()

USAGE:
  cellbench steps --cell fixtures/cells/http_server.z1c
*/

package cli

import (
	"fmt"

	"github.com/alessio/shellescape"
	"github.com/spf13/cobra"

	"github.com/daryltucker/cellbench/internal/config"
	"github.com/daryltucker/cellbench/internal/engine"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List the pipeline steps without running them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := engine.NewAssembler(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, step := range engine.NewPlan(a.CellPath).All() {
			mode := "inherit"
			if step.Capture {
				mode = "capture"
			}
			fmt.Fprintf(out, "%d. %-16s [%s] %s\n", i+1, step.Label, mode, shellescape.QuoteCommand(step.Args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd)
	stepsCmd.Flags().StringVar(&cellOverride, "cell", config.DefaultCell, "Path to the canonical benchmark cell")
}
