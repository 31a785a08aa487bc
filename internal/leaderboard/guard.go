// Package leaderboard implements the score-submission integrity pipeline
// and the ranking read path over the score store.
package leaderboard

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// Submission bounds enforced by the guard; the storage schema repeats the
// score and level bounds as CHECK constraints.
const (
	MaxNameLength = 20
	MaxScore      = 999999
	MinLevel      = 1
	MaxLevel      = 100

	// Plausibility: score may not exceed level*PointsPerLevelBound plus the
	// flat allowance. Rough upper estimate of what a level can yield.
	PointsPerLevelBound = 500
	ScoreAllowance      = 10000

	// DefaultName replaces an absent display name.
	DefaultName = "Anonymous"
)

// Submission is a candidate score as decoded at the API boundary. Score and
// Level are pointers so absent fields are distinguishable from zero values.
type Submission struct {
	Name   *string `json:"name"`
	Score  *int    `json:"score"`
	Level  *int    `json:"level"`
	Secret string  `json:"secret"`
}

// ValidSubmission is the sanitized result of a submission that passed every
// guard check.
type ValidSubmission struct {
	Name  string
	Score int
	Level int
}

// Guard validates score submissions before they reach the store.
type Guard struct {
	secret string
	logger *log.Logger
}

// NewGuard creates a guard that accepts submissions carrying the given
// shared secret.
func NewGuard(secret string, logger *log.Logger) *Guard {
	if logger == nil {
		logger = log.Default()
	}
	return &Guard{secret: secret, logger: logger}
}

// Validate runs the submission checks in order, stopping at the first
// failure: required fields, name, score bounds, level bounds, secret,
// plausibility. identity is the caller's network identity, used only for
// audit logging of unauthorized and implausible attempts. The
// persistence-backed duplicate check happens later, in Service.Submit.
func (g *Guard) Validate(sub Submission, identity string) (ValidSubmission, error) {
	var valid ValidSubmission

	if sub.Score == nil || sub.Level == nil || sub.Secret == "" {
		return valid, E(KindMissingFields, "missing required fields: score, level, secret")
	}

	name := DefaultName
	if sub.Name != nil {
		trimmed := strings.TrimSpace(*sub.Name)
		if utf8.RuneCountInString(trimmed) > MaxNameLength {
			return valid, E(KindInvalidName, "name too long (max 20 characters)")
		}
		if trimmed == "" {
			return valid, E(KindInvalidName, "name cannot be empty")
		}
		if name = sanitizeName(trimmed); name == "" {
			name = DefaultName
		}
	}

	score, level := *sub.Score, *sub.Level

	if score < 0 || score > MaxScore {
		return valid, E(KindInvalidScore, "score must be between 0 and 999999")
	}

	if level < MinLevel || level > MaxLevel {
		return valid, E(KindInvalidLevel, "level must be between 1 and 100")
	}

	if sub.Secret != g.secret {
		g.logger.Warn("invalid secret token attempt", "identity", identity)
		return valid, E(KindUnauthorized, "invalid authentication token")
	}

	if score > level*PointsPerLevelBound+ScoreAllowance {
		g.logger.Warn("suspiciously high score",
			"score", score, "level", level, "identity", identity)
		return valid, E(KindImplausibleScore, "score exceeds plausible maximum for level reached")
	}

	valid = ValidSubmission{Name: name, Score: score, Level: level}
	return valid, nil
}

// sanitizeName strips characters that could break display or markup.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '\'', '"':
			return -1
		}
		return r
	}, name)
}
