package game

// DefaultColumns is the number of blocks per row in the standard play field.
// Column count is layout only; none of the difficulty or scoring rules
// depend on it.
const DefaultColumns = 8

// Block is a single destructible block in the level grid.
type Block struct {
	Row         int  // Row index, 0 = topmost
	Toughness   int  // Hits required to destroy
	DamageTaken int  // Hits absorbed so far
	Alive       bool // Alive == DamageTaken < Toughness
}

// HitResult describes the outcome of one successful hit on a block.
type HitResult struct {
	Points    int  // Score delta for this hit
	Destroyed bool // True when this hit destroyed the block
}

// Hit applies one hit to the block and returns the score delta. A hit that
// leaves the block alive awards the fixed partial increment; the hit that
// destroys it awards the completion bonus for its toughness. Hitting a dead
// block is a no-op worth nothing, so the liveness transition happens at
// most once per block.
func (b *Block) Hit() HitResult {
	if !b.Alive {
		return HitResult{}
	}

	b.DamageTaken++
	if b.DamageTaken < b.Toughness {
		return HitResult{Points: PartialHitPoints}
	}

	b.Alive = false
	return HitResult{Points: PointsForToughness(b.Toughness), Destroyed: true}
}

// Grid is the block layout for one level. Shape is fixed at construction;
// only block damage mutates afterwards. A new grid is built for every
// level start and discarded on level transition.
type Grid struct {
	Level  int
	Blocks [][]Block // [row][col]
}

// NewGrid builds the grid for a level: RowCount(level) rows of cols blocks,
// each row's toughness from BlockToughness.
func NewGrid(level, cols int) *Grid {
	if cols <= 0 {
		cols = DefaultColumns
	}

	rows := RowCount(level)
	g := &Grid{
		Level:  level,
		Blocks: make([][]Block, rows),
	}

	for row := range rows {
		toughness := BlockToughness(level, row)
		g.Blocks[row] = make([]Block, cols)
		for col := range cols {
			g.Blocks[row][col] = Block{
				Row:       row,
				Toughness: toughness,
				Alive:     true,
			}
		}
	}

	return g
}

// CountAlive returns the number of remaining blocks.
func (g *Grid) CountAlive() int {
	count := 0
	for _, row := range g.Blocks {
		for _, b := range row {
			if b.Alive {
				count++
			}
		}
	}
	return count
}

// Cleared reports whether every block has been destroyed.
func (g *Grid) Cleared() bool {
	return g.CountAlive() == 0
}
