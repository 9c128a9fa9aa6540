package domain

import (
	"fmt"
	"sort"
)

// BandThreshold maps a minimum number of correct answers to a band
type BandThreshold struct {
	MinimumCorrect int     `json:"minimumCorrect" mapstructure:"minimum_correct"`
	Band           float64 `json:"band" mapstructure:"band"`
}

// BandTable is sorted descending by MinimumCorrect
type BandTable []BandThreshold

// DefaultBandTables returns the built-in conversion tables for both variants
func DefaultBandTables() map[TestVariant]BandTable {
	return map[TestVariant]BandTable{
		VariantAcademic: {
			{39, 9.0}, {37, 8.5}, {35, 8.0}, {33, 7.5}, {30, 7.0}, {28, 6.5},
			{23, 6.0}, {19, 5.5}, {15, 5.0}, {13, 4.5}, {10, 4.0}, {8, 3.5},
			{6, 3.0}, {4, 2.5}, {2, 2.0}, {1, 1.0}, {0, 0.0},
		},
		VariantGeneral: {
			{40, 9.0}, {39, 8.5}, {37, 8.0}, {36, 7.5}, {34, 7.0}, {32, 6.5},
			{30, 6.0}, {27, 5.5}, {23, 5.0}, {19, 4.5}, {15, 4.0}, {12, 3.5},
			{9, 3.0}, {6, 2.5}, {4, 2.0}, {2, 1.0}, {0, 0.0},
		},
	}
}

// Validate checks ordering, monotonic bands and the presence of the zero row
func (t BandTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("band table is empty")
	}
	for i, row := range t {
		if row.MinimumCorrect < 0 {
			return fmt.Errorf("band table row %d: negative minimum %d", i, row.MinimumCorrect)
		}
		if i == 0 {
			continue
		}
		prev := t[i-1]
		if row.MinimumCorrect >= prev.MinimumCorrect {
			return fmt.Errorf("band table row %d: thresholds must be strictly descending (%d after %d)", i, row.MinimumCorrect, prev.MinimumCorrect)
		}
		if row.Band > prev.Band {
			return fmt.Errorf("band table row %d: band %.1f exceeds band %.1f of a higher threshold", i, row.Band, prev.Band)
		}
	}
	if t[len(t)-1].MinimumCorrect != 0 {
		return fmt.Errorf("band table has no entry for 0 correct answers")
	}
	return nil
}

// Lookup returns the band of the first row whose minimum is <= correct
func (t BandTable) Lookup(correct int) float64 {
	if correct < 0 {
		correct = 0
	}
	for _, row := range t {
		if row.MinimumCorrect <= correct {
			return row.Band
		}
	}
	return 0
}

// BandScoreConverter converts raw correct-answer counts to band scores per variant
type BandScoreConverter struct {
	tables map[TestVariant]BandTable
}

// NewBandScoreConverter copies, sorts and validates the given tables
func NewBandScoreConverter(tables map[TestVariant]BandTable) (*BandScoreConverter, error) {
	sorted := make(map[TestVariant]BandTable, len(tables))
	for variant, table := range tables {
		cp := append(BandTable(nil), table...)
		sort.SliceStable(cp, func(i, j int) bool { return cp[i].MinimumCorrect > cp[j].MinimumCorrect })
		if err := cp.Validate(); err != nil {
			return nil, fmt.Errorf("band table %q: %w", variant, err)
		}
		sorted[variant] = cp
	}
	return &BandScoreConverter{tables: sorted}, nil
}

// Convert returns the band score for correct answers under the variant's table
func (c *BandScoreConverter) Convert(correct int, variant TestVariant) (float64, error) {
	table, ok := c.tables[variant]
	if !ok {
		return 0, fmt.Errorf("no band table configured for %q", variant)
	}
	return table.Lookup(correct), nil
}
