/*
PURPOSE:
  Defines the root Cobra command for the cellbench CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support a global --config flag.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Errors are printed once by main.go, so cobra's own printing is off.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/cellbench/main.go
  - Calls: Child commands (run, steps, schema)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

RELATED FILES:
  - cmd/cellbench/main.go
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/daryltucker/cellbench/internal/config"
	"github.com/daryltucker/cellbench/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           "cellbench",
		Short:         "Benchmark harness for the z1 toolchain",
		Long:          `Runs the z1 toolchain against a benchmark cell and records timings, hashes and context estimates as JSON. Use 'run --help' for options.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./cellbench.yaml)")
}

// loadConfig loads the config file and applies --cell/--output when the
// user set them explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("cell"); f != nil && f.Changed {
		cfg.Cell = cellOverride
	}
	if f := cmd.Flags().Lookup("output"); f != nil && f.Changed {
		cfg.Output = outputOverride
	}
	output.Logger.Debug("Config loaded", "cell", cfg.Cell, "output", cfg.Output, "root", cfg.Root)
	return cfg, nil
}
