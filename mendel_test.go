package mendel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendelian/mendel"
)

func TestSimulate_WeightedSpace(t *testing.T) {
	space, err := mendel.NewSpace(
		mendel.Outcome{Label: "A", Weight: 1},
		mendel.Outcome{Label: "B", Weight: 3},
	)
	require.NoError(t, err)

	exp, err := mendel.SingleDraw(space, func(drawn []mendel.Outcome) (string, error) {
		return drawn[0].Label, nil
	})
	require.NoError(t, err)

	dist, err := mendel.Simulate(context.Background(), exp, 4000, mendel.WithSeed(42))
	require.NoError(t, err)

	assert.Equal(t, uint64(4000), dist.TotalTrials())
	assert.InDelta(t, 0.75, dist.ProbabilityOf("B"), 0.02)

	// Rerunning with the same seed reproduces identical counts.
	again, err := mendel.Simulate(context.Background(), exp, 4000, mendel.WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, dist.Count("A"), again.Count("A"))
	assert.Equal(t, dist.Count("B"), again.Count("B"))
}

func TestSimulate_DefaultSourceIsRandom(t *testing.T) {
	coin, err := mendel.UniformSpace("heads", "tails")
	require.NoError(t, err)
	exp, err := mendel.SingleDraw(coin, func(drawn []mendel.Outcome) (string, error) {
		return drawn[0].Label, nil
	})
	require.NoError(t, err)

	dist, err := mendel.Simulate(context.Background(), exp, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), dist.TotalTrials())
}

func TestSimulate_Workers(t *testing.T) {
	coin, err := mendel.UniformSpace("heads", "tails")
	require.NoError(t, err)
	exp, err := mendel.SingleDraw(coin, func(drawn []mendel.Outcome) (string, error) {
		return drawn[0].Label, nil
	})
	require.NoError(t, err)

	dist, err := mendel.Simulate(context.Background(), exp, 20_000,
		mendel.WithSeed(9), mendel.WithWorkers(4))
	require.NoError(t, err)
	assert.Equal(t, uint64(20_000), dist.TotalTrials())
	assert.InDelta(t, 0.5, dist.ProbabilityOf("heads"), 0.02)
}

func TestSimulate_EarlyStop(t *testing.T) {
	coin, err := mendel.UniformSpace("heads", "tails")
	require.NoError(t, err)
	exp, err := mendel.SingleDraw(coin, func(drawn []mendel.Outcome) (string, error) {
		return drawn[0].Label, nil
	})
	require.NoError(t, err)

	dist, err := mendel.Simulate(context.Background(), exp, 1_000_000,
		mendel.WithSeed(9),
		mendel.WithEarlyStop("heads", 0.95, 0.1, time.Minute))
	require.NoError(t, err)
	assert.Less(t, dist.TotalTrials(), uint64(1_000_000))
	assert.InDelta(t, 0.5, dist.ProbabilityOf("heads"), 0.05)
}

func TestParseErrorPolicy(t *testing.T) {
	p, err := mendel.ParseErrorPolicy("skip-and-continue")
	require.NoError(t, err)
	assert.Equal(t, mendel.PolicySkip, p)

	_, err = mendel.ParseErrorPolicy("bogus")
	assert.ErrorIs(t, err, mendel.ErrConfiguration)
}
