/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the benchmark pipeline and writes the report.

REQUIREMENTS:
  User-specified:
  - Two inputs only: the benchmark cell and the report destination.
  - Print one confirmation line naming the report.

  Implementation-discovered:
  - Flags override the config file only when set explicitly.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Assembler
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load fails, the cell is missing or a step fails.

USAGE:
  cellbench run --cell fixtures/cells/http_server.z1c --output benchmarks/latest.json
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/cellbench/internal/config"
	"github.com/daryltucker/cellbench/internal/engine"
)

var (
	cellOverride   string
	outputOverride string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark pipeline",
	Long: `Runs the benchmark pipeline against one cell. Steps run in a fixed order
and the first failing step aborts the run without writing a report:
1. cargo fmt, cargo clippy (-D warnings), cargo test
2. z1 fmt --check on the cell
3. z1 fmt --mode relaxed, z1 hash and z1 ctx on the cell (output captured)

The report records every command, the compact/relaxed size ratio, the
semantic and format hashes and the context budget estimate.`,
	Example: `  # Run with defaults
  cellbench run

  # Benchmark another cell and write elsewhere
  cellbench run --cell fixtures/cells/scheduler.z1c --output benchmarks/scheduler.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		a, err := engine.NewAssembler(cfg)
		if err != nil {
			return err
		}
		res, err := a.Run()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "[bench] wrote %s\n", a.Display(res.OutputPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&cellOverride, "cell", config.DefaultCell, "Path to the canonical benchmark cell")
	runCmd.Flags().StringVar(&outputOverride, "output", config.DefaultOutput, "Destination JSON report")
}
