package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDistribution_SumsToForty(t *testing.T) {
	dist := DefaultDistribution()

	for _, variant := range []TestVariant{VariantAcademic, VariantGeneral} {
		assert.Equal(t, StandardQuestionCount, dist.Total(variant), "variant %s", variant)
	}
	assert.NoError(t, dist.Validate(StandardQuestionCount))
}

func TestDistribution_ForReturnsCopy(t *testing.T) {
	dist := DefaultDistribution()

	rows, err := dist.For(VariantAcademic)
	require.NoError(t, err)
	rows[0].Count = 99

	again, err := dist.For(VariantAcademic)
	require.NoError(t, err)
	assert.Equal(t, 6, again[0].Count)

	_, err = dist.For(TestVariant("listening"))
	assert.Error(t, err)
}

func TestDistribution_ValidateRejectsBadTables(t *testing.T) {
	short := QuestionTypeDistribution{
		VariantAcademic: {{Type: TypeMultipleChoice, Count: 39}},
	}
	assert.ErrorContains(t, short.Validate(StandardQuestionCount), "sums to 39")

	unknown := QuestionTypeDistribution{
		VariantAcademic: {{Type: QuestionType("diagram_labelling"), Count: 40}},
	}
	assert.ErrorContains(t, unknown.Validate(StandardQuestionCount), "unknown question type")
}

func TestScaleDistribution(t *testing.T) {
	rows, err := DefaultDistribution().For(VariantAcademic)
	require.NoError(t, err)

	t.Run("same size is unchanged", func(t *testing.T) {
		assert.Equal(t, rows, ScaleDistribution(rows, 40))
	})

	t.Run("half size keeps order and total", func(t *testing.T) {
		scaled := ScaleDistribution(rows, 20)
		total := 0
		for _, tc := range scaled {
			total += tc.Count
		}
		assert.Equal(t, 20, total)
		assert.Equal(t, TypeMultipleChoice, scaled[0].Type)
		assert.Equal(t, 3, scaled[0].Count)
	})

	t.Run("small target drops empty rows", func(t *testing.T) {
		scaled := ScaleDistribution(rows, 3)
		total := 0
		for _, tc := range scaled {
			assert.Positive(t, tc.Count)
			total += tc.Count
		}
		assert.Equal(t, 3, total)
		// Ties on remainder go to earlier rows.
		assert.Equal(t, []TypeCount{
			{Type: TypeMultipleChoice, Count: 1},
			{Type: TypeTrueFalseNotGiven, Count: 1},
			{Type: TypeMatchingHeadings, Count: 1},
		}, scaled)
	})

	t.Run("zero target", func(t *testing.T) {
		assert.Empty(t, ScaleDistribution(rows, 0))
	})
}
