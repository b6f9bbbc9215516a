package domain

import (
	"fmt"
	"sort"
)

// RandomSource is the randomness a space needs to draw: a stream of
// uniformly distributed values in [0, 1). The concrete implementations
// live in pkg/random.
type RandomSource interface {
	Float64() float64
}

// Outcome is a single labeled possibility with an associated selection
// weight. Value is an optional payload handed through to evaluation rules;
// the core never inspects it.
type Outcome struct {
	Label  string
	Weight float64
	Value  any
}

// Space is an immutable, weighted set of outcomes one draw selects from.
// Cumulative weight prefix sums are computed once at construction so each
// draw costs a single binary search.
type Space struct {
	outcomes []Outcome
	cum      []float64
	total    float64
}

// NewSpace constructs a Space from the given outcomes. It fails with
// ErrInvalidOutcomeSpace when the sequence is empty, any weight is not
// strictly positive, or two outcomes share a label. Weights need not be
// normalized; selection probability is weight over total weight.
func NewSpace(outcomes ...Outcome) (*Space, error) {
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("%w: no outcomes", ErrInvalidOutcomeSpace)
	}

	seen := make(map[string]struct{}, len(outcomes))
	s := &Space{
		outcomes: make([]Outcome, len(outcomes)),
		cum:      make([]float64, len(outcomes)),
	}
	for i, o := range outcomes {
		if o.Weight <= 0 {
			return nil, fmt.Errorf("%w: outcome %q has weight %v", ErrInvalidOutcomeSpace, o.Label, o.Weight)
		}
		if _, dup := seen[o.Label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidOutcomeSpace, o.Label)
		}
		seen[o.Label] = struct{}{}
		s.outcomes[i] = o
		s.total += o.Weight
		s.cum[i] = s.total
	}
	return s, nil
}

// Uniform constructs a Space in which every label has equal weight.
func Uniform(labels ...string) (*Space, error) {
	outcomes := make([]Outcome, len(labels))
	for i, l := range labels {
		outcomes[i] = Outcome{Label: l, Weight: 1}
	}
	return NewSpace(outcomes...)
}

// Len returns the number of outcomes in the space.
func (s *Space) Len() int { return len(s.outcomes) }

// TotalWeight returns the sum of all outcome weights.
func (s *Space) TotalWeight() float64 { return s.total }

// Outcomes returns a copy of the space's outcomes in declaration order.
func (s *Space) Outcomes() []Outcome {
	out := make([]Outcome, len(s.outcomes))
	copy(out, s.outcomes)
	return out
}

// Draw selects one outcome with probability proportional to its weight.
// It samples a uniform value in [0, total) and locates the first cumulative
// boundary exceeding it, so selection is exact regardless of the order the
// weights were summed in.
func (s *Space) Draw(src RandomSource) Outcome {
	target := src.Float64() * s.total
	i := sort.SearchFloat64s(s.cum, target)
	// SearchFloat64s finds the first boundary >= target; an exact hit on a
	// boundary belongs to the next outcome.
	for i < len(s.cum) && s.cum[i] == target {
		i++
	}
	if i >= len(s.outcomes) {
		i = len(s.outcomes) - 1
	}
	return s.outcomes[i]
}

// Sample draws k outcomes without replacement: each draw removes the chosen
// outcome from the pool, and the remaining weights are renormalized
// implicitly. It fails when k is not in [1, Len()].
func (s *Space) Sample(src RandomSource, k int) ([]Outcome, error) {
	if k <= 0 || k > len(s.outcomes) {
		return nil, fmt.Errorf("%w: sample size %d for space of %d outcomes", ErrConfiguration, k, len(s.outcomes))
	}

	pool := make([]Outcome, len(s.outcomes))
	copy(pool, s.outcomes)
	remaining := s.total

	picked := make([]Outcome, 0, k)
	for range k {
		target := src.Float64() * remaining
		acc := 0.0
		idx := len(pool) - 1
		for i, o := range pool {
			acc += o.Weight
			if target < acc {
				idx = i
				break
			}
		}
		picked = append(picked, pool[idx])
		remaining -= pool[idx].Weight
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return picked, nil
}
