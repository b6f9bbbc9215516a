// Package engine runs experiments for a requested number of trials and folds
// the compound results into an empirical distribution.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mendelian/mendel/pkg/domain"
	"github.com/mendelian/mendel/pkg/random"
)

// Policy decides what a run does when an evaluation rule fails a trial.
type Policy int

const (
	// PolicyAbort fails the whole run on the first evaluation error.
	// No partial distribution is returned. This is the default.
	PolicyAbort Policy = iota
	// PolicySkip excludes failing trials from counts and total, and keeps
	// going until the requested number of successful trials is collected or
	// the retry budget runs out.
	PolicySkip
)

// ParsePolicy maps a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "abort":
		return PolicyAbort, nil
	case "skip-and-continue":
		return PolicySkip, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized error policy %q", domain.ErrConfiguration, s)
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicySkip:
		return "skip-and-continue"
	default:
		return "unknown"
	}
}

// EarlyStop ends a run before the full trial count once the confidence
// interval for Label is narrow enough, or once MaxDuration of wall-clock
// time has elapsed. The distribution computed so far is returned either way.
type EarlyStop struct {
	// Label whose estimate is being watched.
	Label string
	// Level is the confidence level of the watched interval (0.90/0.95/0.99).
	Level float64
	// MaxWidth is the full interval width (high minus low) that triggers the stop.
	MaxWidth float64
	// CheckEvery is the number of successful trials between checks (default 1000).
	CheckEvery uint64
	// MaxDuration bounds the run in wall-clock time (0 means unbounded).
	MaxDuration time.Duration
}

// Options configures a run.
type Options struct {
	Policy Policy
	// Workers is the number of parallel trial batches. Values below 2 run
	// sequentially. Parallel runs require a splittable source.
	Workers int
	// RetryBudget caps total attempts under PolicySkip (default 10x trials).
	RetryBudget uint64
	// EarlyStop, when set, forces a sequential run.
	EarlyStop *EarlyStop
}

// Run executes trials independent calls to the experiment and returns the
// finalized distribution. Given the same source seed, trial count, worker
// count, and experiment, results are bit-for-bit reproducible.
func Run(ctx context.Context, exp *domain.Experiment, trials uint64, src random.Source, opts Options) (*domain.Distribution, error) {
	if exp == nil {
		return nil, fmt.Errorf("%w: nil experiment", domain.ErrConfiguration)
	}
	if trials == 0 {
		return nil, domain.ErrInvalidTrialCount
	}
	if opts.Policy != PolicyAbort && opts.Policy != PolicySkip {
		return nil, fmt.Errorf("%w: unrecognized error policy %d", domain.ErrConfiguration, opts.Policy)
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("%w: worker count %d", domain.ErrConfiguration, opts.Workers)
	}
	if opts.EarlyStop != nil {
		if _, err := domain.ZScore(opts.EarlyStop.Level); err != nil {
			return nil, err
		}
		if opts.EarlyStop.MaxWidth <= 0 {
			return nil, fmt.Errorf("%w: early stop width %v", domain.ErrConfiguration, opts.EarlyStop.MaxWidth)
		}
	}

	budget := opts.RetryBudget
	if budget == 0 {
		if trials > math.MaxUint64/10 {
			budget = math.MaxUint64
		} else {
			budget = trials * 10
		}
	}

	if opts.Workers > 1 && opts.EarlyStop == nil {
		return runParallel(ctx, exp, trials, src, opts, budget)
	}

	acc := domain.NewAccumulator()
	if err := runBatch(ctx, exp, trials, src, opts.Policy, budget, 0, acc, opts.EarlyStop); err != nil {
		return nil, err
	}
	return acc.Finalize(), nil
}

// runBatch folds up to trials successful results into acc. offset shifts the
// trial index reported in evaluation errors so parallel batches stay
// attributable.
func runBatch(ctx context.Context, exp *domain.Experiment, trials uint64, src random.Source,
	policy Policy, budget uint64, offset uint64, acc *domain.Accumulator, stop *EarlyStop) error {

	var (
		start     = time.Now()
		successes uint64
		attempts  uint64
	)

	checkEvery := uint64(1000)
	var z float64
	if stop != nil {
		if stop.CheckEvery > 0 {
			checkEvery = stop.CheckEvery
		}
		z, _ = domain.ZScore(stop.Level)
	}

	for successes < trials {
		if attempts%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if attempts >= budget && policy == PolicySkip {
			return fmt.Errorf("%w: %d of %d trials classified after %d attempts",
				domain.ErrExhaustedRetries, successes, trials, attempts)
		}
		attempts++

		label, err := exp.RunOnce(src)
		if err != nil {
			var evalErr *domain.EvaluationError
			if errors.As(err, &evalErr) {
				if policy == PolicySkip {
					continue
				}
				evalErr.Trial = offset + successes
				return evalErr
			}
			return err
		}

		acc.Add(label)
		successes++

		if stop != nil && successes%checkEvery == 0 {
			if stop.MaxDuration > 0 && time.Since(start) >= stop.MaxDuration {
				return nil
			}
			// A label with no occurrences yet has a degenerate zero-width
			// interval; keep running until it has actually been observed.
			if n := acc.Count(stop.Label); n > 0 {
				p := float64(n) / float64(acc.Total())
				width := 2 * z * math.Sqrt(p*(1-p)/float64(acc.Total()))
				if width <= stop.MaxWidth {
					return nil
				}
			}
		}
	}
	return nil
}

// runParallel executes disjoint trial batches on split sources and merges the
// partial counts in worker order, which keeps runs reproducible for a fixed
// worker count.
func runParallel(ctx context.Context, exp *domain.Experiment, trials uint64, src random.Source,
	opts Options, budget uint64) (*domain.Distribution, error) {

	splitter, ok := src.(random.Splitter)
	if !ok {
		return nil, fmt.Errorf("%w: source does not support splitting into %d worker streams",
			domain.ErrConfiguration, opts.Workers)
	}

	workers := opts.Workers
	if uint64(workers) > trials {
		workers = int(trials)
	}
	sources := splitter.Split(workers)

	batch := trials / uint64(workers)
	batchBudget := budget / uint64(workers)
	if batchBudget == 0 {
		batchBudget = 1
	}

	accs := make([]*domain.Accumulator, workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range workers {
		n := batch
		if i == workers-1 {
			n += trials % uint64(workers)
		}
		offset := uint64(i) * batch
		accs[i] = domain.NewAccumulator()
		g.Go(func() error {
			return runBatch(gctx, exp, n, sources[i], opts.Policy, batchBudget, offset, accs[i], nil)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := domain.NewAccumulator()
	for _, acc := range accs {
		merged.Merge(acc)
	}
	return merged.Finalize(), nil
}
