package domain

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// StandardQuestionCount is the number of questions in a full IELTS reading test
const StandardQuestionCount = 40

// TypeCount is one row of a distribution table
type TypeCount struct {
	Type  QuestionType `json:"type" mapstructure:"type"`
	Count int          `json:"count" mapstructure:"count"`
}

// QuestionTypeDistribution maps a test variant to the ordered list of question types and
// how many of each a test contains. Iteration order of the rows is the order questions are
// generated and numbered in.
type QuestionTypeDistribution map[TestVariant][]TypeCount

// DefaultDistribution returns the built-in distribution tables
func DefaultDistribution() QuestionTypeDistribution {
	return QuestionTypeDistribution{
		VariantAcademic: {
			{Type: TypeMultipleChoice, Count: 6},
			{Type: TypeTrueFalseNotGiven, Count: 6},
			{Type: TypeMatchingHeadings, Count: 5},
			{Type: TypeSentenceCompletion, Count: 5},
			{Type: TypeShortAnswer, Count: 4},
			{Type: TypeMatchingInformation, Count: 4},
			{Type: TypeSummaryCompletion, Count: 4},
			{Type: TypeMatchingFeatures, Count: 3},
			{Type: TypeNoteCompletion, Count: 3},
		},
		VariantGeneral: {
			{Type: TypeMultipleChoice, Count: 5},
			{Type: TypeTrueFalseNotGiven, Count: 7},
			{Type: TypeMatchingHeadings, Count: 4},
			{Type: TypeSentenceCompletion, Count: 6},
			{Type: TypeShortAnswer, Count: 5},
			{Type: TypeMatchingInformation, Count: 4},
			{Type: TypeSummaryCompletion, Count: 3},
			{Type: TypeMatchingFeatures, Count: 3},
			{Type: TypeNoteCompletion, Count: 3},
		},
	}
}

// For returns a copy of the rows configured for the variant
func (d QuestionTypeDistribution) For(variant TestVariant) ([]TypeCount, error) {
	rows, ok := d[variant]
	if !ok {
		return nil, fmt.Errorf("no question type distribution configured for %q", variant)
	}
	return append([]TypeCount(nil), rows...), nil
}

// Total sums the counts configured for the variant
func (d QuestionTypeDistribution) Total(variant TestVariant) int {
	return lo.SumBy(d[variant], func(tc TypeCount) int { return tc.Count })
}

// Validate checks every variant sums to expectedTotal and uses known types only
func (d QuestionTypeDistribution) Validate(expectedTotal int) error {
	for variant, rows := range d {
		for _, row := range rows {
			if !row.Type.IsKnown() {
				return fmt.Errorf("distribution %q: unknown question type %q", variant, row.Type)
			}
			if row.Count < 0 {
				return fmt.Errorf("distribution %q: negative count for %q", variant, row.Type)
			}
		}
		if total := d.Total(variant); total != expectedTotal {
			return fmt.Errorf("distribution %q sums to %d, expected %d", variant, total, expectedTotal)
		}
	}
	return nil
}

// ScaleDistribution resizes rows to target questions using the largest remainder method.
// Row order is preserved, ties go to the earlier row and rows scaled to zero are dropped.
func ScaleDistribution(rows []TypeCount, target int) []TypeCount {
	total := lo.SumBy(rows, func(tc TypeCount) int { return tc.Count })
	if target <= 0 || total == 0 {
		return []TypeCount{}
	}
	if target == total {
		return append([]TypeCount(nil), rows...)
	}

	scaled := make([]TypeCount, len(rows))
	remainders := make([]int, len(rows))
	assigned := 0
	for i, row := range rows {
		scaled[i] = TypeCount{Type: row.Type, Count: row.Count * target / total}
		remainders[i] = row.Count * target % total
		assigned += scaled[i].Count
	}

	order := lo.Range(len(rows))
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for _, idx := range order {
		if assigned >= target {
			break
		}
		scaled[idx].Count++
		assigned++
	}

	return lo.Filter(scaled, func(tc TypeCount, _ int) bool { return tc.Count > 0 })
}
