package domain

import (
	"fmt"
	"iter"
	"math"
)

// Accumulator collects compound result labels during a simulation run. It is
// the only writer of a distribution's counts; once Finalize is called the
// counts are frozen behind the read-only Distribution.
type Accumulator struct {
	counts map[string]uint64
	order  []string
	total  uint64
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{counts: make(map[string]uint64)}
}

// Add records one occurrence of label.
func (a *Accumulator) Add(label string) {
	if _, seen := a.counts[label]; !seen {
		a.order = append(a.order, label)
	}
	a.counts[label]++
	a.total++
}

// Merge folds another accumulator's counts into this one. Counting is a
// plain sum, so merging is commutative up to label insertion order; parallel
// batches merge in worker order to keep runs reproducible.
func (a *Accumulator) Merge(other *Accumulator) {
	for _, label := range other.order {
		n := other.counts[label]
		if _, seen := a.counts[label]; !seen {
			a.order = append(a.order, label)
		}
		a.counts[label] += n
		a.total += n
	}
}

// Total returns the number of labels recorded so far.
func (a *Accumulator) Total() uint64 { return a.total }

// Count returns how many times label has been recorded so far.
func (a *Accumulator) Count(label string) uint64 { return a.counts[label] }

// Finalize hands the accumulated counts to a read-only Distribution.
// The accumulator must not be used afterwards.
func (a *Accumulator) Finalize() *Distribution {
	d := &Distribution{counts: a.counts, order: a.order, total: a.total}
	a.counts = nil
	a.order = nil
	return d
}

// Distribution is the tally of compound results across all trials of a run.
// All accessors are read-only; nothing mutates a distribution after the
// simulator finalizes it.
type Distribution struct {
	counts map[string]uint64
	order  []string
	total  uint64
}

// TotalTrials returns the number of trials folded into the distribution.
func (d *Distribution) TotalTrials() uint64 { return d.total }

// Count returns how many trials produced label.
func (d *Distribution) Count(label string) uint64 { return d.counts[label] }

// ProbabilityOf returns count(label) / total trials as the point estimate of
// the label's probability. Labels that never occurred estimate to 0.
func (d *Distribution) ProbabilityOf(label string) float64 {
	if d.total == 0 {
		return 0
	}
	return float64(d.counts[label]) / float64(d.total)
}

// Labels yields every label observed with nonzero count, in order of first
// occurrence. The sequence is restartable: ranging over it again replays the
// same labels.
func (d *Distribution) Labels() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, label := range d.order {
			if !yield(label) {
				return
			}
		}
	}
}

// z-scores for the supported two-sided confidence levels.
var zScores = map[float64]float64{
	0.90: 1.6449,
	0.95: 1.9600,
	0.99: 2.5758,
}

// ZScore returns the standard normal quantile for a supported two-sided
// confidence level (0.90, 0.95 or 0.99).
func ZScore(level float64) (float64, error) {
	z, ok := zScores[level]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported confidence level %v", ErrConfiguration, level)
	}
	return z, nil
}

// ConfidenceInterval returns a symmetric interval around the point estimate
// for label, using the normal approximation to the binomial proportion
// (standard error sqrt(p(1-p)/n)). The approximation degrades for p near 0
// or 1 and for small trial counts; callers needing tighter guarantees should
// increase the trial count instead. Supported levels are 0.90, 0.95 and
// 0.99; anything else fails with ErrConfiguration. Bounds are clamped to
// [0, 1].
func (d *Distribution) ConfidenceInterval(label string, level float64) (low, high float64, err error) {
	z, err := ZScore(level)
	if err != nil {
		return 0, 0, err
	}
	if d.total == 0 {
		return 0, 0, fmt.Errorf("%w: empty distribution", ErrConfiguration)
	}

	p := d.ProbabilityOf(label)
	se := math.Sqrt(p * (1 - p) / float64(d.total))
	low = math.Max(0, p-z*se)
	high = math.Min(1, p+z*se)
	return low, high, nil
}
