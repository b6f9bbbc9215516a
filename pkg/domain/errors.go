package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidOutcomeSpace is returned when a space is constructed empty, with a
// non-positive weight, or with duplicate labels.
var ErrInvalidOutcomeSpace = errors.New("invalid outcome space")

// ErrInvalidTrialCount is returned when a simulation is requested with zero trials.
var ErrInvalidTrialCount = errors.New("trial count must be positive")

// ErrEvaluation is returned when an evaluation rule cannot classify a draw tuple.
var ErrEvaluation = errors.New("evaluation failed")

// ErrExhaustedRetries is returned when the skip policy cannot collect enough
// valid trials within its retry budget.
var ErrExhaustedRetries = errors.New("retry budget exhausted")

// ErrConfiguration is returned for invalid random ranges, unrecognized
// policies, and other malformed options.
var ErrConfiguration = errors.New("invalid configuration")

// EvaluationError carries the trial index at which an evaluation rule failed.
// It matches ErrEvaluation under errors.Is.
type EvaluationError struct {
	Trial uint64
	Err   error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("trial %d: evaluation failed: %v", e.Trial, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// Is reports whether target is ErrEvaluation, so callers can test the error
// kind without knowing the concrete type.
func (e *EvaluationError) Is(target error) bool { return target == ErrEvaluation }
