package game

import (
	"regexp"
	"testing"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestColorForOneHitBlocksKeepBaseColor(t *testing.T) {
	for row := range 10 {
		got := ColorFor(1, 0, row)
		if got != BaseColor(row) {
			t.Errorf("row %d: ColorFor = %s, want base %s", row, got, BaseColor(row))
		}
	}
}

func TestColorForPaletteCycle(t *testing.T) {
	if c := ColorFor(1, 0, 0); c != "#ff0000" {
		t.Errorf("row 0 base color = %s, want #ff0000", c)
	}
	if c := ColorFor(1, 0, 1); c != "#ff7700" {
		t.Errorf("row 1 base color = %s, want #ff7700", c)
	}
	if c := ColorFor(1, 0, 5); c != "#ff0000" {
		t.Errorf("row 5 should cycle back to #ff0000, got %s", c)
	}
}

func TestColorForAlwaysValidHex(t *testing.T) {
	for toughness := 1; toughness <= 4; toughness++ {
		for damage := 0; damage <= toughness; damage++ {
			for row := range 10 {
				got := ColorFor(toughness, damage, row)
				if !hexColorRe.MatchString(got) {
					t.Errorf("ColorFor(%d, %d, %d) = %q, not a hex color",
						toughness, damage, row, got)
				}
			}
		}
	}
}

func TestColorForBrightensWithDamage(t *testing.T) {
	// A fresh multi-hit block renders at 40% brightness and climbs toward
	// the base color as it takes damage, so each stage must differ.
	undamaged := ColorFor(3, 0, 0)
	damaged := ColorFor(3, 1, 0)
	nearlyDead := ColorFor(3, 2, 0)

	if undamaged == damaged || damaged == nearlyDead {
		t.Errorf("damage stages should differ: %s, %s, %s", undamaged, damaged, nearlyDead)
	}

	if undamaged != "#660000" {
		t.Errorf("fresh 3-hit red block = %s, want #660000", undamaged)
	}
}

func TestColorForFullDamage(t *testing.T) {
	// Full damage scales by exactly 1.0, returning the base channel values.
	if got := ColorFor(2, 2, 0); got != "#ff0000" {
		t.Errorf("fully damaged red block = %s, want #ff0000", got)
	}
}
