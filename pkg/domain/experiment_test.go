package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendelian/mendel/pkg/domain"
	"github.com/mendelian/mendel/pkg/random"
)

func labelRule(drawn []domain.Outcome) (string, error) {
	return drawn[0].Label, nil
}

func TestNewExperiment_Validation(t *testing.T) {
	space, err := domain.Uniform("a", "b")
	require.NoError(t, err)

	_, err = domain.NewExperiment(nil, labelRule)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = domain.NewExperiment([]domain.Draw{{Space: space, Count: 1}}, nil)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = domain.NewExperiment([]domain.Draw{{Space: nil, Count: 1}}, labelRule)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = domain.NewExperiment([]domain.Draw{{Space: space, Count: 0}}, labelRule)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = domain.NewExperiment(
		[]domain.Draw{{Space: space, Count: 3, WithoutReplacement: true}}, labelRule)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestExperiment_RunOnce(t *testing.T) {
	space, err := domain.Uniform("heads", "tails")
	require.NoError(t, err)

	exp, err := domain.NewExperiment([]domain.Draw{{Space: space, Count: 2}},
		func(drawn []domain.Outcome) (string, error) {
			require.Len(t, drawn, 2)
			if drawn[0].Label == "heads" && drawn[1].Label == "heads" {
				return "both-heads", nil
			}
			return "other", nil
		})
	require.NoError(t, err)

	src := random.NewSeeded(1)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		label, err := exp.RunOnce(src)
		require.NoError(t, err)
		seen[label] = true
	}
	assert.True(t, seen["both-heads"])
	assert.True(t, seen["other"])
}

func TestExperiment_MultipleSpaces(t *testing.T) {
	coin, err := domain.Uniform("heads", "tails")
	require.NoError(t, err)
	die, err := domain.Uniform("1", "2", "3", "4", "5", "6")
	require.NoError(t, err)

	exp, err := domain.NewExperiment(
		[]domain.Draw{{Space: coin, Count: 1}, {Space: die, Count: 1}},
		func(drawn []domain.Outcome) (string, error) {
			return drawn[0].Label + "/" + drawn[1].Label, nil
		})
	require.NoError(t, err)

	label, err := exp.RunOnce(random.NewSeeded(3))
	require.NoError(t, err)
	assert.Contains(t, label, "/")
}

func TestExperiment_RuleError(t *testing.T) {
	space, err := domain.Uniform("a")
	require.NoError(t, err)

	ruleErr := errors.New("undefined combination")
	exp, err := domain.Single(space, func([]domain.Outcome) (string, error) {
		return "", ruleErr
	})
	require.NoError(t, err)

	_, err = exp.RunOnce(random.NewSeeded(1))
	assert.ErrorIs(t, err, domain.ErrEvaluation)
	assert.ErrorIs(t, err, ruleErr)

	var evalErr *domain.EvaluationError
	assert.ErrorAs(t, err, &evalErr)
}
