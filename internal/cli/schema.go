package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daryltucker/cellbench/internal/output"
	"github.com/daryltucker/cellbench/internal/schema"
)

var schemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print or export the JSON Schema of the benchmark report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := schema.ReportSchema()
		if schemaOut == "" {
			_, err := cmd.OutOrStdout().Write(doc)
			return err
		}

		if err := os.MkdirAll(filepath.Dir(schemaOut), 0755); err != nil {
			return fmt.Errorf("failed to create target directory for %s: %w", schemaOut, err)
		}
		if err := os.WriteFile(schemaOut, doc, 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", schemaOut, err)
		}
		output.Logger.Info("Schema exported", "path", schemaOut)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate REPORT",
	Short: "Validate an existing report against the schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read report: %w", err)
		}
		if err := schema.ValidateReport(data); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		digest, err := output.Digest(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (sha256 %s)\n", args[0], digest)
		return nil
	},
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaOut, "out", "o", "", "Write the schema to this path instead of stdout")
	schemaCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
}
