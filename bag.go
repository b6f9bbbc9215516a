package mendel

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/mendelian/mendel/internal/config"
	"github.com/mendelian/mendel/pkg/domain"
)

const (
	hit  = "hit"
	miss = "miss"
)

// defaultTrials resolves the Bag trial count from the environment once.
var defaultTrials = sync.OnceValue(func() uint64 {
	cfg, err := config.Load()
	if err != nil {
		return 100_000
	}
	return cfg.MaxSims
})

// Bag is the quick-odds API: a population of arbitrary items, each equally
// likely to be picked. Odds and SampleOdds answer "how likely is it that a
// random pick (or handful of picks) satisfies this predicate" by simulation.
type Bag[T any] struct {
	items  []T
	trials uint64
}

// NewBag puts items in a bag. It fails with ErrInvalidOutcomeSpace when the
// bag would be empty.
func NewBag[T any](items ...T) (*Bag[T], error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty bag", domain.ErrInvalidOutcomeSpace)
	}
	b := &Bag[T]{items: items, trials: defaultTrials()}
	return b, nil
}

// Range puts the integers of the half-open interval [min, max) in a bag.
func Range(min, max int) (*Bag[int], error) {
	if max <= min {
		return nil, fmt.Errorf("%w: empty range [%d, %d)", domain.ErrInvalidOutcomeSpace, min, max)
	}
	items := make([]int, 0, max-min)
	for v := min; v < max; v++ {
		items = append(items, v)
	}
	return NewBag(items...)
}

// SetTrials overrides the number of simulations per question. The default
// comes from MENDEL_MAX_SIMS (100,000 when unset).
func (b *Bag[T]) SetTrials(n uint64) { b.trials = n }

// Trials returns the number of simulations run per question.
func (b *Bag[T]) Trials() uint64 { return b.trials }

func (b *Bag[T]) space() (*domain.Space, error) {
	outcomes := make([]domain.Outcome, len(b.items))
	for i, item := range b.items {
		outcomes[i] = domain.Outcome{Label: strconv.Itoa(i), Weight: 1, Value: item}
	}
	return domain.NewSpace(outcomes...)
}

// Odds estimates the probability that pred holds for one random pick from
// the bag.
func (b *Bag[T]) Odds(ctx context.Context, pred func(T) bool, opts ...Option) (float64, error) {
	space, err := b.space()
	if err != nil {
		return 0, err
	}
	exp, err := domain.Single(space, func(drawn []domain.Outcome) (string, error) {
		if pred(drawn[0].Value.(T)) {
			return hit, nil
		}
		return miss, nil
	})
	if err != nil {
		return 0, err
	}

	dist, err := Simulate(ctx, exp, b.trials, opts...)
	if err != nil {
		return 0, err
	}
	return dist.ProbabilityOf(hit), nil
}

// SampleOdds estimates the probability that pred holds for k picks taken
// from the bag without replacement.
func (b *Bag[T]) SampleOdds(ctx context.Context, k int, pred func([]T) bool, opts ...Option) (float64, error) {
	space, err := b.space()
	if err != nil {
		return 0, err
	}
	exp, err := domain.NewExperiment(
		[]domain.Draw{{Space: space, Count: k, WithoutReplacement: true}},
		func(drawn []domain.Outcome) (string, error) {
			picked := make([]T, len(drawn))
			for i, o := range drawn {
				picked[i] = o.Value.(T)
			}
			if pred(picked) {
				return hit, nil
			}
			return miss, nil
		},
	)
	if err != nil {
		return 0, err
	}

	dist, err := Simulate(ctx, exp, b.trials, opts...)
	if err != nil {
		return 0, err
	}
	return dist.ProbabilityOf(hit), nil
}
