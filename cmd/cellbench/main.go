/*
PURPOSE:
  Entry point for cellbench.
  Builds the CLI root command and executes it.

REQUIREMENTS:
  User-specified:
  - Single binary entry point for the benchmark harness.
  - Nonzero exit status when the cell is missing or any pipeline step fails.

  Implementation-discovered:
  - Uses cobra for CLI command management.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.Execute()
  - Depends on: internal/cli package

ERROR HANDLING:
  - Explicit error check on Execute(); exit code 1 on failure.

IMPLEMENTATION RULES:
  - Keep main() minimal. All logic belongs in internal/ packages.
  - Do not use global variables for state here.

USAGE:
  go build -o cellbench ./cmd/cellbench
  ./cellbench run --cell fixtures/cells/http_server.z1c

RELATED FILES:
  - internal/cli/root.go - The actual root command definition.
*/

package main

import (
	"fmt"
	"os"

	"github.com/daryltucker/cellbench/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
