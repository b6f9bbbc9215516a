package mendel

import (
	"context"
	"time"

	"github.com/mendelian/mendel/internal/engine"
	"github.com/mendelian/mendel/pkg/domain"
	"github.com/mendelian/mendel/pkg/random"
)

// Re-exported core types, so typical callers only import mendel.
type (
	Outcome      = domain.Outcome
	Space        = domain.Space
	Draw         = domain.Draw
	Rule         = domain.Rule
	Experiment   = domain.Experiment
	Distribution = domain.Distribution
)

// Re-exported error kinds.
var (
	ErrInvalidOutcomeSpace = domain.ErrInvalidOutcomeSpace
	ErrInvalidTrialCount   = domain.ErrInvalidTrialCount
	ErrEvaluation          = domain.ErrEvaluation
	ErrExhaustedRetries    = domain.ErrExhaustedRetries
	ErrConfiguration       = domain.ErrConfiguration
)

// ErrorPolicy decides what a run does when an evaluation rule fails a trial.
type ErrorPolicy = engine.Policy

const (
	// PolicyAbort fails the whole run on the first evaluation error (default).
	PolicyAbort = engine.PolicyAbort
	// PolicySkip excludes failing trials and keeps going until enough valid
	// trials are collected or the retry budget runs out.
	PolicySkip = engine.PolicySkip
)

// ParseErrorPolicy maps a configuration string ("abort" or
// "skip-and-continue") to an ErrorPolicy.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	return engine.ParsePolicy(s)
}

// NewSpace constructs a weighted outcome space. See domain.NewSpace.
func NewSpace(outcomes ...Outcome) (*Space, error) {
	return domain.NewSpace(outcomes...)
}

// UniformSpace constructs a space in which every label has equal weight.
func UniformSpace(labels ...string) (*Space, error) {
	return domain.Uniform(labels...)
}

// NewExperiment pairs a draw specification with an evaluation rule.
func NewExperiment(draws []Draw, rule Rule) (*Experiment, error) {
	return domain.NewExperiment(draws, rule)
}

// SingleDraw builds the common one-draw experiment over a space.
func SingleDraw(space *Space, rule Rule) (*Experiment, error) {
	return domain.Single(space, rule)
}

type settings struct {
	src  random.Source
	opts engine.Options
}

// Option configures a single Simulate call.
type Option func(*settings)

// WithSeed makes the run reproducible: the same seed always yields the same
// distribution for a fixed experiment, trial count, and worker count.
func WithSeed(seed uint64) Option {
	return func(s *settings) { s.src = random.NewSeeded(seed) }
}

// WithSource substitutes a custom random source.
func WithSource(src random.Source) Option {
	return func(s *settings) { s.src = src }
}

// WithErrorPolicy selects how evaluation errors are handled.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(s *settings) { s.opts.Policy = p }
}

// WithWorkers runs disjoint trial batches on independent random streams.
// Outcome counting is a plain sum, so the merged result only differs from a
// sequential run by statistical noise.
func WithWorkers(n int) Option {
	return func(s *settings) { s.opts.Workers = n }
}

// WithRetryBudget caps total attempts under PolicySkip.
func WithRetryBudget(budget uint64) Option {
	return func(s *settings) { s.opts.RetryBudget = budget }
}

// WithEarlyStop ends the run once the confidence interval for label at the
// given level is narrower than maxWidth, or after maxDuration of wall-clock
// time. The distribution computed so far is returned. Early stopping forces
// a sequential run.
func WithEarlyStop(label string, level, maxWidth float64, maxDuration time.Duration) Option {
	return func(s *settings) {
		s.opts.EarlyStop = &engine.EarlyStop{
			Label:       label,
			Level:       level,
			MaxWidth:    maxWidth,
			MaxDuration: maxDuration,
		}
	}
}

// Simulate runs trials independent executions of the experiment and returns
// the finalized distribution. It is the single entry point for the library;
// everything else is construction and reporting.
func Simulate(ctx context.Context, exp *Experiment, trials uint64, opts ...Option) (*Distribution, error) {
	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.src == nil {
		s.src = random.New()
	}
	return engine.Run(ctx, exp, trials, s.src, s.opts)
}
