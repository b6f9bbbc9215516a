// Package cli implements the command logic behind cmd/mendel, keeping the
// cobra layer thin.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/mendelian/mendel"
	"github.com/mendelian/mendel/internal/definition"
	"github.com/mendelian/mendel/internal/presentation"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	DefinitionPath string
	// Trials overrides the definition's trial count when nonzero.
	Trials uint64
	// Seed overrides the definition's seed when set.
	Seed *uint64
	// Policy overrides the definition's error policy when nonempty.
	Policy  string
	Workers int
	// JSON emits the result as a JSON document instead of a report.
	JSON bool
	// Plain skips terminal styling and prints raw markdown.
	Plain bool
	// Level is the confidence level for the report's intervals.
	Level float64

	Out    io.Writer
	Logger *slog.Logger
}

// runOutput is the JSON shape emitted with --json.
type runOutput struct {
	Name          string             `json:"name,omitempty"`
	Trials        uint64             `json:"trials"`
	Counts        map[string]uint64  `json:"counts"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// Run loads a definition file, executes it, and writes the result.
func Run(ctx context.Context, opts RunOptions) error {
	def, err := definition.Load(opts.DefinitionPath)
	if err != nil {
		return err
	}
	exp, err := def.Compile()
	if err != nil {
		return err
	}

	trials := def.Trials
	if opts.Trials > 0 {
		trials = opts.Trials
	}
	seed := def.Seed
	if opts.Seed != nil {
		seed = opts.Seed
	}
	policyName := def.Policy
	if opts.Policy != "" {
		policyName = opts.Policy
	}
	policy, err := mendel.ParseErrorPolicy(policyName)
	if err != nil {
		return err
	}
	workers := def.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	simOpts := []mendel.Option{mendel.WithErrorPolicy(policy)}
	if seed != nil {
		simOpts = append(simOpts, mendel.WithSeed(*seed))
	}
	if workers > 1 {
		simOpts = append(simOpts, mendel.WithWorkers(workers))
	}

	opts.Logger.Debug("starting simulation",
		"definition", opts.DefinitionPath,
		"trials", trials,
		"policy", policy.String(),
		"workers", workers,
	)

	dist, err := mendel.Simulate(ctx, exp, trials, simOpts...)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if opts.JSON {
		out := runOutput{
			Name:          def.Name,
			Trials:        dist.TotalTrials(),
			Counts:        make(map[string]uint64),
			Probabilities: make(map[string]float64),
		}
		for label := range dist.Labels() {
			out.Counts[label] = dist.Count(label)
			out.Probabilities[label] = dist.ProbabilityOf(label)
		}
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	level := opts.Level
	if level == 0 {
		level = 0.95
	}
	report := presentation.Markdown(def.Name, dist, level)
	if opts.Plain {
		fmt.Fprint(opts.Out, report)
		return nil
	}
	fmt.Fprint(opts.Out, presentation.Render(report))
	return nil
}

// Validate loads and compiles a definition file without running it.
func Validate(path string, out io.Writer) error {
	def, err := definition.Load(path)
	if err != nil {
		return err
	}
	if _, err := def.Compile(); err != nil {
		return err
	}
	if def.Trials == 0 {
		fmt.Fprintf(out, "%s: valid (no trial count; pass --trials at run time)\n", path)
		return nil
	}
	fmt.Fprintf(out, "%s: valid\n", path)
	return nil
}
