package engine

// Step is one command of the benchmark pipeline.
type Step struct {
	Label   string
	Args    []string
	Capture bool
}

// Plan is the fixed pipeline for one cell. The order of All() is the
// execution order and is part of the report contract.
type Plan struct {
	// Checks run with inherited output: fmt, clippy, test, cell fmt --check.
	Checks []Step
	// Relaxed prints the relaxed rendering of the cell.
	Relaxed Step
	// Hash prints the semhash/formhash listing.
	Hash Step
	// Context prints the verbose token-budget report.
	Context Step
}

// z1 runs the workspace CLI through cargo.
func z1(args ...string) []string {
	return append([]string{"cargo", "run", "-p", "z1-cli", "--"}, args...)
}

// NewPlan returns the pipeline for the cell at cellPath.
func NewPlan(cellPath string) Plan {
	return Plan{
		Checks: []Step{
			{Label: "cargo fmt", Args: []string{"cargo", "fmt", "--all"}},
			{Label: "cargo clippy", Args: []string{
				"cargo", "clippy", "--workspace", "--all-targets", "--all-features", "--", "-D", "warnings",
			}},
			{Label: "cargo test", Args: []string{"cargo", "test", "--workspace", "--all-targets"}},
			{Label: "z1 fmt --check", Args: z1("fmt", cellPath, "--check")},
		},
		Relaxed: Step{
			Label:   "z1 fmt relaxed",
			Args:    z1("fmt", cellPath, "--mode", "relaxed", "--stdout"),
			Capture: true,
		},
		Hash: Step{
			Label:   "z1 hash",
			Args:    z1("hash", cellPath),
			Capture: true,
		},
		Context: Step{
			Label:   "z1 ctx",
			Args:    z1("ctx", cellPath, "--verbose", "--no-enforce"),
			Capture: true,
		},
	}
}

// All returns every step in execution order.
func (p Plan) All() []Step {
	steps := make([]Step, 0, len(p.Checks)+3)
	steps = append(steps, p.Checks...)
	return append(steps, p.Relaxed, p.Hash, p.Context)
}
