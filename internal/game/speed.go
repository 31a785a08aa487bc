package game

import "math"

// Ball speed parameters. Speed grows with the level and the player may
// scale it further with a fixed multiplier; neither affects scoring.
const (
	// BaseBallSpeed is the ball speed at level 1 with a 1x multiplier.
	BaseBallSpeed = 4.0

	// SpeedPerLevel is added to the base speed for each level beyond 1.
	SpeedPerLevel = 0.5

	// DefaultSpeedMultiplier replaces any multiplier outside the allowed
	// set.
	DefaultSpeedMultiplier = 1.0
)

// ValidSpeedMultiplier reports whether m is one of the selectable
// multipliers (1x, 2x, 3x).
func ValidSpeedMultiplier(m float64) bool {
	return m == 1 || m == 2 || m == 3
}

// NormalizeSpeedMultiplier returns m if it is selectable, otherwise the
// default.
func NormalizeSpeedMultiplier(m float64) float64 {
	if ValidSpeedMultiplier(m) {
		return m
	}
	return DefaultSpeedMultiplier
}

// BallSpeed returns the level-scaled base speed before the player
// multiplier. Levels below 1 clamp to level 1.
func BallSpeed(level int) float64 {
	if level < 1 {
		level = 1
	}
	return BaseBallSpeed + float64(level-1)*SpeedPerLevel
}

// EffectiveSpeed returns the ball speed for a level under the given
// multiplier. Invalid multipliers fall back to 1x.
func EffectiveSpeed(level int, multiplier float64) float64 {
	return BallSpeed(level) * NormalizeSpeedMultiplier(multiplier)
}

// ScaleVelocity rescales a velocity vector to the target speed, keeping
// its direction. A zero vector stays zero.
func ScaleVelocity(vx, vy, target float64) (float64, float64) {
	current := math.Hypot(vx, vy)
	if current == 0 {
		return 0, 0
	}
	ratio := target / current
	return vx * ratio, vy * ratio
}
