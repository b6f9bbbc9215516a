/*
Package mendel estimates the probability of discrete outcomes purely by
repeated randomized sampling, rather than by closed-form probability formulas.

You describe a weighted outcome space, compose one or more draws into an
experiment with a plain Go function as the evaluation rule, and run it for a
number of trials. The result is an empirical distribution: frequency counts,
derived probabilities, and confidence bounds.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/mendelian/mendel"
	)

	func main() {
		coin, err := mendel.UniformSpace("heads", "tails")
		if err != nil {
			log.Fatal(err)
		}

		// Two independent flips; classify the pair.
		exp, err := mendel.NewExperiment(
			[]mendel.Draw{{Space: coin, Count: 2}},
			func(drawn []mendel.Outcome) (string, error) {
				if drawn[0].Label == "heads" && drawn[1].Label == "heads" {
					return "both-heads", nil
				}
				return "other", nil
			},
		)
		if err != nil {
			log.Fatal(err)
		}

		dist, err := mendel.Simulate(context.Background(), exp, 10_000, mendel.WithSeed(42))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("P(both heads) ~= %.3f\n", dist.ProbabilityOf("both-heads"))
	}

# Determinism

Given the same seed, trial count, worker count, and experiment, a run is
bit-for-bit reproducible. Omitting the seed draws one from the operating
system's entropy pool.

# Bags

For quick "odds of..." questions over a collection of arbitrary items, the
generic Bag API skips the experiment plumbing: put items in a bag and ask
for the odds that a predicate holds for a random pick, or for a handful of
picks without replacement.

	numbers, _ := mendel.Range(1, 11)
	odds, _ := numbers.Odds(context.Background(), func(v int) bool { return v%2 == 0 })
*/
package mendel
