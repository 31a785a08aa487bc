// Package game implements the BB-Bounce gameplay rules: progressive
// difficulty, block scoring, and the damage-dependent block colors.
// Everything here is pure and deterministic so it can be called from any
// scheduling context without coordination.
package game

// Row progression constants.
const (
	// BaseRows is the number of block rows at level 1.
	BaseRows = 5

	// MaxRows caps the grid height; reached at level 6.
	MaxRows = 10
)

// Toughness tiers. A block's toughness is the number of hits needed to
// destroy it.
const (
	ToughnessSoft   = 1
	ToughnessMedium = 2
	ToughnessHard   = 3
)

// RowCount returns the number of block rows for the given level:
// 5 rows at level 1, one more per level, capped at 10 from level 6 on.
// Levels below 1 extrapolate the arithmetic formula (level 0 yields 4);
// production callers validate levels upstream and never pass them.
func RowCount(level int) int {
	rows := BaseRows + level - 1
	if rows > MaxRows {
		return MaxRows
	}
	return rows
}

// BlockToughness returns the hit requirement for a block in the given row
// of the given level. Row 0 is the topmost row. The distribution hardens in
// four phases, and thresholds are floored fractions of the current level's
// row count, not of a fixed 10-row grid:
//
//	levels 1-6:   every row is 1-hit
//	levels 7-9:   top half 2-hit, rest 1-hit
//	levels 10-12: top 25% 3-hit, next up to 65% 2-hit, rest 1-hit
//	levels 13+:   top 50% 3-hit, next up to 80% 2-hit, rest 1-hit
//
// Within any level the result is non-increasing as rowIndex grows.
func BlockToughness(level, rowIndex int) int {
	if level <= 6 {
		return ToughnessSoft
	}

	rows := RowCount(level)

	switch {
	case level <= 9:
		if rowIndex < rows/2 {
			return ToughnessMedium
		}
		return ToughnessSoft

	case level <= 12:
		if rowIndex < int(float64(rows)*0.25) {
			return ToughnessHard
		}
		if rowIndex < int(float64(rows)*0.65) {
			return ToughnessMedium
		}
		return ToughnessSoft

	default:
		if rowIndex < int(float64(rows)*0.5) {
			return ToughnessHard
		}
		if rowIndex < int(float64(rows)*0.8) {
			return ToughnessMedium
		}
		return ToughnessSoft
	}
}

// AggregateToughness sums the toughness of every row at the given level.
// It is non-decreasing as the level increases, which keeps each level at
// least as hard as the previous one even across phase boundaries.
func AggregateToughness(level int) int {
	total := 0
	for row := range RowCount(level) {
		total += BlockToughness(level, row)
	}
	return total
}
