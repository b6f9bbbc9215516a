/*
Package domain contains the core model of the simulation engine.

It defines the weighted outcome space, the experiment composition, and the
empirical distribution that trials fold into. This package is kept pure and
free of external dependencies like I/O or persistence; it never logs, and it
reports every failure as a structured error value.

# Key Entities

  - Outcome: a labeled possibility with a positive selection weight.
  - Space: an immutable weighted set of outcomes a single draw selects from.
  - Experiment: one or more draws plus a pure evaluation rule that classifies
    each trial's draw tuple into a compound result label.
  - Accumulator / Distribution: the mutable fold target during a run, and the
    read-only tally handed to callers once the run completes.
*/
package domain
