package domain

import "fmt"

// Draw names one sampling step of an experiment: how many outcomes to take
// from which space, and whether a drawn outcome goes back in the pool before
// the next one is taken.
type Draw struct {
	Space *Space
	Count int
	// WithoutReplacement removes each drawn outcome from the pool for the
	// remainder of this Draw. Draws are with replacement by default.
	WithoutReplacement bool
}

// Rule classifies the tuple of outcomes drawn in one trial into a single
// compound result label. Rules must be pure: no state between trials.
// A rule returning an error marks the trial as unclassifiable; the
// simulator's error policy decides what happens next.
type Rule func(drawn []Outcome) (string, error)

// Experiment composes one or more draws into a single compound outcome per
// trial. It holds references to the spaces it draws from but never mutates
// them, and keeps no state between trials.
type Experiment struct {
	draws []Draw
	rule  Rule
	width int
}

// NewExperiment validates the draw specification and pairs it with an
// evaluation rule. Each Draw must name a space and a positive count; a
// without-replacement Draw cannot ask for more outcomes than its space holds.
func NewExperiment(draws []Draw, rule Rule) (*Experiment, error) {
	if len(draws) == 0 {
		return nil, fmt.Errorf("%w: experiment has no draws", ErrConfiguration)
	}
	if rule == nil {
		return nil, fmt.Errorf("%w: experiment has no evaluation rule", ErrConfiguration)
	}

	width := 0
	for i, d := range draws {
		if d.Space == nil {
			return nil, fmt.Errorf("%w: draw %d has no space", ErrConfiguration, i)
		}
		if d.Count <= 0 {
			return nil, fmt.Errorf("%w: draw %d has count %d", ErrConfiguration, i, d.Count)
		}
		if d.WithoutReplacement && d.Count > d.Space.Len() {
			return nil, fmt.Errorf("%w: draw %d takes %d of %d outcomes without replacement",
				ErrConfiguration, i, d.Count, d.Space.Len())
		}
		width += d.Count
	}

	e := &Experiment{
		draws: make([]Draw, len(draws)),
		rule:  rule,
		width: width,
	}
	copy(e.draws, draws)
	return e, nil
}

// Single is a convenience constructor for the common one-draw experiment.
func Single(space *Space, rule Rule) (*Experiment, error) {
	return NewExperiment([]Draw{{Space: space, Count: 1}}, rule)
}

// RunOnce executes one trial: it performs every draw in declaration order
// and applies the evaluation rule to the full tuple. Each invocation is
// independent given the source's state.
func (e *Experiment) RunOnce(src RandomSource) (string, error) {
	drawn := make([]Outcome, 0, e.width)
	for _, d := range e.draws {
		if d.WithoutReplacement {
			picked, err := d.Space.Sample(src, d.Count)
			if err != nil {
				return "", err
			}
			drawn = append(drawn, picked...)
			continue
		}
		for range d.Count {
			drawn = append(drawn, d.Space.Draw(src))
		}
	}

	label, err := e.rule(drawn)
	if err != nil {
		return "", &EvaluationError{Err: err}
	}
	return label, nil
}
