package game

// Scoring constants.
const (
	// BasePoints is the value of a plain 1-hit block.
	BasePoints = 10

	// PartialHitPoints is awarded for a hit that damages a multi-hit block
	// without destroying it, regardless of the block's toughness.
	PartialHitPoints = 5
)

// PointsForToughness returns the completion bonus for destroying a block
// that required maxHits hits: 10, 25, 50, and 100 for 1 through 4. Values
// outside that range fall back to the base score rather than erroring, so
// a malformed block can never zero out or crash a run.
func PointsForToughness(maxHits int) int {
	switch maxHits {
	case 1:
		return BasePoints
	case 2:
		return BasePoints * 5 / 2
	case 3:
		return BasePoints * 5
	case 4:
		return BasePoints * 10
	default:
		return BasePoints
	}
}
