package game

import "testing"

func TestRowCountProgression(t *testing.T) {
	want := map[int]int{
		1: 5,
		2: 6,
		3: 7,
		4: 8,
		5: 9,
		6: 10,
	}

	for level, rows := range want {
		if got := RowCount(level); got != rows {
			t.Errorf("RowCount(%d) = %d, want %d", level, got, rows)
		}
	}
}

func TestRowCountCapsAtMax(t *testing.T) {
	for _, level := range []int{6, 7, 10, 20, 100} {
		if got := RowCount(level); got != MaxRows {
			t.Errorf("RowCount(%d) = %d, want cap of %d", level, got, MaxRows)
		}
	}
}

func TestRowCountNonDecreasing(t *testing.T) {
	for level := 1; level < 100; level++ {
		if RowCount(level+1) < RowCount(level) {
			t.Errorf("RowCount decreased from level %d (%d) to %d (%d)",
				level, RowCount(level), level+1, RowCount(level+1))
		}
	}
}

func TestRowCountBelowLevelOne(t *testing.T) {
	// Levels below 1 are undefined behavior guarded upstream; the formula
	// just extrapolates. Documented here, not relied on anywhere.
	if got := RowCount(0); got != 4 {
		t.Errorf("RowCount(0) = %d, want extrapolated 4", got)
	}
	if got := RowCount(-1); got != 3 {
		t.Errorf("RowCount(-1) = %d, want extrapolated 3", got)
	}
}

func TestToughnessAllSoftThroughLevelSix(t *testing.T) {
	for level := 1; level <= 6; level++ {
		for row := 0; row < RowCount(level); row++ {
			if got := BlockToughness(level, row); got != ToughnessSoft {
				t.Errorf("BlockToughness(%d, %d) = %d, want 1", level, row, got)
			}
		}
	}
}

func TestToughnessPhaseTwo(t *testing.T) {
	// Levels 7-9 have 10 rows; the top half takes two hits.
	for _, level := range []int{7, 8, 9} {
		for row := range 5 {
			if got := BlockToughness(level, row); got != ToughnessMedium {
				t.Errorf("BlockToughness(%d, %d) = %d, want 2", level, row, got)
			}
		}
		for row := 5; row < 10; row++ {
			if got := BlockToughness(level, row); got != ToughnessSoft {
				t.Errorf("BlockToughness(%d, %d) = %d, want 1", level, row, got)
			}
		}
	}
}

func TestToughnessPhaseThree(t *testing.T) {
	// Level 10: rows 0-1 are 3-hit, rows 2-5 are 2-hit, rows 6-9 are 1-hit.
	cases := []struct {
		row  int
		want int
	}{
		{0, 3}, {1, 3},
		{2, 2}, {5, 2},
		{6, 1}, {9, 1},
	}
	for _, c := range cases {
		if got := BlockToughness(10, c.row); got != c.want {
			t.Errorf("BlockToughness(10, %d) = %d, want %d", c.row, got, c.want)
		}
	}
}

func TestToughnessPhaseFour(t *testing.T) {
	// Level 13+: rows 0-4 are 3-hit, rows 5-7 are 2-hit, rows 8-9 are 1-hit.
	for _, level := range []int{13, 20, 50, 100} {
		cases := []struct {
			row  int
			want int
		}{
			{0, 3}, {4, 3},
			{5, 2}, {7, 2},
			{8, 1}, {9, 1},
		}
		for _, c := range cases {
			if got := BlockToughness(level, c.row); got != c.want {
				t.Errorf("BlockToughness(%d, %d) = %d, want %d", level, c.row, got, c.want)
			}
		}
	}
}

func TestToughnessNonIncreasingWithinLevel(t *testing.T) {
	for level := 1; level <= 100; level++ {
		prev := BlockToughness(level, 0)
		for row := 1; row < RowCount(level); row++ {
			cur := BlockToughness(level, row)
			if cur > prev {
				t.Errorf("level %d: toughness rose from %d to %d at row %d",
					level, prev, cur, row)
			}
			prev = cur
		}
	}
}

func TestAggregateToughnessNonDecreasing(t *testing.T) {
	for level := 1; level < 100; level++ {
		cur := AggregateToughness(level)
		next := AggregateToughness(level + 1)
		if next < cur {
			t.Errorf("aggregate toughness dropped from %d (level %d) to %d (level %d)",
				cur, level, next, level+1)
		}
	}
}
