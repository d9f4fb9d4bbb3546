/*
PURPOSE:
  Orchestrates one benchmark run and assembles the report.
  Runs the fixed pipeline, measures the cell and writes the JSON report.

REQUIREMENTS:
  User-specified:
  - Steps run strictly in order; the first failure aborts the run and no
    report is written.
  - The compact text is read from disk only after every step succeeded.
  - Captured streams are truncated before serialization.

  Implementation-discovered:
  - Revision lookup and clock are injectable for tests.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/engine (Runner, Plan), internal/extract, internal/output

ERROR HANDLING:
  - ErrCellNotFound before any command runs.
  - *CommandError from the failing step, unchanged.
  - Parse errors from the context report are fatal.

USAGE:
  a, err := engine.NewAssembler(cfg)
  res, err := a.Run()
*/

package engine

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/daryltucker/cellbench/internal/config"
	"github.com/daryltucker/cellbench/internal/extract"
	"github.com/daryltucker/cellbench/internal/model"
	"github.com/daryltucker/cellbench/internal/output"
)

// ErrCellNotFound is returned when the benchmark cell does not exist.
var ErrCellNotFound = errors.New("benchmark cell not found")

// Assembler drives the pipeline for one cell.
type Assembler struct {
	Root          string
	CellPath      string // absolute
	OutputPath    string // absolute
	SummaryPath   string // absolute, empty disables the CSV summary
	TruncateLimit int

	Runner   *Runner
	Revision func(root string) (string, error)
	Now      func() time.Time
}

// Result describes a completed run.
type Result struct {
	Report     model.Report
	OutputPath string
	Digest     string
}

// NewAssembler resolves cfg against its project root.
func NewAssembler(cfg *config.Config) (*Assembler, error) {
	root, err := cfg.ResolveRoot()
	if err != nil {
		return nil, err
	}
	a := &Assembler{
		Root:          root,
		CellPath:      resolvePath(root, cfg.Cell),
		OutputPath:    resolvePath(root, cfg.Output),
		TruncateLimit: cfg.TruncateLimit,
		Runner:        NewRunner(root),
		Revision:      GitHead,
		Now:           time.Now,
	}
	if cfg.SummaryCSV != "" {
		a.SummaryPath = resolvePath(root, cfg.SummaryCSV)
	}
	return a, nil
}

// Run executes the pipeline and writes the report.
func (a *Assembler) Run() (Result, error) {
	if _, err := os.Stat(a.CellPath); err != nil {
		return Result{}, fmt.Errorf("%w: %s (expected at %s)", ErrCellNotFound, relativeDisplay(a.Root, a.CellPath), a.CellPath)
	}

	plan := NewPlan(a.CellPath)
	var commands []model.CommandResult

	for _, step := range plan.Checks {
		res, err := a.Runner.Run(step.Label, step.Args, step.Capture)
		if err != nil {
			return Result{}, err
		}
		commands = append(commands, res)
	}

	relaxed, err := a.Runner.Run(plan.Relaxed.Label, plan.Relaxed.Args, plan.Relaxed.Capture)
	if err != nil {
		return Result{}, err
	}
	hash, err := a.Runner.Run(plan.Hash.Label, plan.Hash.Args, plan.Hash.Capture)
	if err != nil {
		return Result{}, err
	}
	ctxRes, err := a.Runner.Run(plan.Context.Label, plan.Context.Args, plan.Context.Capture)
	if err != nil {
		return Result{}, err
	}
	commands = append(commands, relaxed, hash, ctxRes)

	compact, err := os.ReadFile(a.CellPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", a.CellPath, err)
	}

	ctxReport, err := extract.ParseContext(deref(ctxRes.Stdout))
	if err != nil {
		return Result{}, fmt.Errorf("parse context report: %w", err)
	}

	revision := a.Revision
	if revision == nil {
		revision = GitHead
	}
	head, err := revision(a.Root)
	if err != nil {
		return Result{}, err
	}
	now := a.Now
	if now == nil {
		now = time.Now
	}

	report := model.Report{
		Meta: model.Meta{
			GitHead:     head,
			Timestamp:   now().UTC().Format(time.RFC3339Nano),
			Cell:        relativeDisplay(a.Root, a.CellPath),
			CellMetrics: extract.MeasureCell(decodeText(compact), deref(relaxed.Stdout)),
			Hashes:      extract.ParseHashes(deref(hash.Stdout)),
			Context:     ctxReport,
		},
		Commands: make([]model.CommandResult, 0, len(commands)),
	}
	for _, c := range commands {
		c.Stdout = extract.TruncatePtr(c.Stdout, a.TruncateLimit)
		c.Stderr = extract.TruncatePtr(c.Stderr, a.TruncateLimit)
		report.Commands = append(report.Commands, c)
	}

	digest, err := output.WriteReport(a.OutputPath, report)
	if err != nil {
		return Result{}, err
	}
	output.Logger.Info("Report written", "path", a.OutputPath, "commands", len(report.Commands), "digest", digest)

	if a.SummaryPath != "" {
		if err := output.WriteSummary(a.SummaryPath, report.Commands); err != nil {
			return Result{}, err
		}
		output.Logger.Info("Summary written", "path", a.SummaryPath)
	}

	return Result{Report: report, OutputPath: a.OutputPath, Digest: digest}, nil
}

// Display returns path relative to the project root when it lies inside it.
func (a *Assembler) Display(path string) string {
	return relativeDisplay(a.Root, path)
}

// GitHead returns the commit checked out in root.
func GitHead(root string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to execute git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

func relativeDisplay(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
