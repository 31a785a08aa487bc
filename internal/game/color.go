package game

import (
	"fmt"
	"strconv"
)

// basePalette holds the row colors, cycled by rowIndex mod len.
var basePalette = [5]string{
	"#ff0000",
	"#ff7700",
	"#ffff00",
	"#00ff00",
	"#0077ff",
}

// BaseColor returns the undamaged palette color for a row.
func BaseColor(rowIndex int) string {
	if rowIndex < 0 {
		rowIndex = -rowIndex
	}
	return basePalette[rowIndex%len(basePalette)]
}

// ColorFor returns the display color for a block as a "#rrggbb" hex string.
// One-hit blocks keep their base row color. Multi-hit blocks start dimmed
// and brighten toward the base color as they take damage: each channel is
// scaled by 0.4 + (damageTaken/toughness)*0.6, floored and clamped to a
// byte. The result is a valid 6-hex-digit color for every toughness >= 1
// and damageTaken in [0, toughness].
func ColorFor(toughness, damageTaken, rowIndex int) string {
	base := BaseColor(rowIndex)
	if toughness == 1 {
		return base
	}

	r := hexChannel(base[1:3])
	g := hexChannel(base[3:5])
	b := hexChannel(base[5:7])

	hitRatio := float64(damageTaken) / float64(toughness)
	factor := 0.4 + hitRatio*0.6

	return fmt.Sprintf("#%02x%02x%02x", scale(r, factor), scale(g, factor), scale(b, factor))
}

// hexChannel parses a two-digit hex channel.
func hexChannel(s string) int {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return int(v)
}

// scale multiplies a channel by factor, flooring and clamping to [0, 255].
func scale(channel int, factor float64) int {
	v := int(float64(channel) * factor)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
