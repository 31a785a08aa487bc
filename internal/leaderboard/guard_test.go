package leaderboard

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

const testSecret = "test-secret-token"

func testGuard() *Guard {
	return NewGuard(testSecret, log.New(io.Discard))
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func validSub() Submission {
	return Submission{
		Name:   strPtr("TestPlayer"),
		Score:  intPtr(1000),
		Level:  intPtr(5),
		Secret: testSecret,
	}
}

func wantKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := KindOf(err); got != kind {
		t.Errorf("error kind = %s, want %s", got, kind)
	}
}

func TestValidateAccepts(t *testing.T) {
	valid, err := testGuard().Validate(validSub(), "203.0.113.9")
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}

	if valid.Name != "TestPlayer" || valid.Score != 1000 || valid.Level != 5 {
		t.Errorf("valid submission = %+v, want TestPlayer/1000/5", valid)
	}
}

func TestValidateMissingFields(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Submission)
	}{
		{"no score", func(s *Submission) { s.Score = nil }},
		{"no level", func(s *Submission) { s.Level = nil }},
		{"no secret", func(s *Submission) { s.Secret = "" }},
	}

	for _, c := range cases {
		sub := validSub()
		c.mut(&sub)
		_, err := testGuard().Validate(sub, "id")
		wantKind(t, err, KindMissingFields)
	}
}

func TestValidateNameRules(t *testing.T) {
	g := testGuard()

	// Absent name defaults
	sub := validSub()
	sub.Name = nil
	valid, err := g.Validate(sub, "id")
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if valid.Name != DefaultName {
		t.Errorf("absent name = %q, want %q", valid.Name, DefaultName)
	}

	// Whitespace-only name rejected
	sub = validSub()
	sub.Name = strPtr("   ")
	_, err = g.Validate(sub, "id")
	wantKind(t, err, KindInvalidName)

	// Over-long name rejected (length checked on the trimmed name)
	sub = validSub()
	sub.Name = strPtr("ThisNameIsFarTooLongToKeep")
	_, err = g.Validate(sub, "id")
	wantKind(t, err, KindInvalidName)

	// Length counts characters, not bytes: 10 runes of katakana are 30
	// bytes and still well within the limit.
	sub = validSub()
	sub.Name = strPtr("ブロックブロックブロ")
	valid, err = g.Validate(sub, "id")
	if err != nil {
		t.Fatalf("Validate() failed for multibyte name: %v", err)
	}
	if valid.Name != "ブロックブロックブロ" {
		t.Errorf("multibyte name = %q, want it kept verbatim", valid.Name)
	}

	// 21 runes is over the limit regardless of encoding width.
	sub = validSub()
	sub.Name = strPtr(strings.Repeat("ブ", 21))
	_, err = g.Validate(sub, "id")
	wantKind(t, err, KindInvalidName)

	// Surrounding whitespace trimmed
	sub = validSub()
	sub.Name = strPtr("  Spacey  ")
	valid, err = g.Validate(sub, "id")
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if valid.Name != "Spacey" {
		t.Errorf("trimmed name = %q, want Spacey", valid.Name)
	}
}

func TestValidateSanitizesName(t *testing.T) {
	sub := validSub()
	sub.Name = strPtr(`Bob<script>'"`)

	valid, err := testGuard().Validate(sub, "id")
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if valid.Name != "Bobscript" {
		t.Errorf("sanitized name = %q, want Bobscript", valid.Name)
	}

	// A name that is nothing but stripped characters falls back to the
	// default rather than persisting empty.
	sub = validSub()
	sub.Name = strPtr(`<>'"`)
	valid, err = testGuard().Validate(sub, "id")
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if valid.Name != DefaultName {
		t.Errorf("fully stripped name = %q, want %q", valid.Name, DefaultName)
	}
}

func TestValidateScoreBounds(t *testing.T) {
	for _, score := range []int{-100, -1, 1000000} {
		sub := validSub()
		sub.Score = intPtr(score)
		_, err := testGuard().Validate(sub, "id")
		wantKind(t, err, KindInvalidScore)
	}

	// Bounds are inclusive; 0 needs a level-1 game to stay plausible
	sub := validSub()
	sub.Score = intPtr(0)
	if _, err := testGuard().Validate(sub, "id"); err != nil {
		t.Errorf("score 0 should be valid: %v", err)
	}
}

func TestValidateLevelBounds(t *testing.T) {
	for _, level := range []int{0, -3, 101} {
		sub := validSub()
		sub.Level = intPtr(level)
		_, err := testGuard().Validate(sub, "id")
		wantKind(t, err, KindInvalidLevel)
	}
}

func TestValidateSecret(t *testing.T) {
	sub := validSub()
	sub.Secret = "wrong-token"
	_, err := testGuard().Validate(sub, "id")
	wantKind(t, err, KindUnauthorized)
}

func TestValidatePlausibility(t *testing.T) {
	// Level 5 allows at most 5*500 + 10000 = 12500
	sub := validSub()
	sub.Score = intPtr(12501)
	_, err := testGuard().Validate(sub, "id")
	wantKind(t, err, KindImplausibleScore)

	sub.Score = intPtr(12500)
	if _, err := testGuard().Validate(sub, "id"); err != nil {
		t.Errorf("score at the plausibility bound should pass: %v", err)
	}
}

func TestValidateOrderShortCircuits(t *testing.T) {
	// A submission that is both missing its secret and carries a bad score
	// must fail on the first check in the pipeline.
	sub := validSub()
	sub.Secret = ""
	sub.Score = intPtr(-5)
	_, err := testGuard().Validate(sub, "id")
	wantKind(t, err, KindMissingFields)

	// Bad score is reported before the bad secret is considered.
	sub = validSub()
	sub.Secret = "wrong"
	sub.Score = intPtr(-5)
	_, err = testGuard().Validate(sub, "id")
	wantKind(t, err, KindInvalidScore)
}

func TestErrorHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindMissingFields, http.StatusBadRequest},
		{KindInvalidScore, http.StatusBadRequest},
		{KindInvalidLevel, http.StatusBadRequest},
		{KindStoreConstraint, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindRateLimited, http.StatusTooManyRequests},
		{KindStoreUnavailable, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := E(c.kind, "x").HTTPStatus(); got != c.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", c.kind, got, c.want)
		}
	}
}

func TestKindOfUnknownError(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindInternal {
		t.Errorf("KindOf(plain error) = %s, want internal", got)
	}
}

func TestHashIdentity(t *testing.T) {
	h1 := HashIdentity("203.0.113.9")
	h2 := HashIdentity("203.0.113.9")
	h3 := HashIdentity("203.0.113.10")

	if h1 != h2 {
		t.Error("hash must be deterministic")
	}
	if h1 == h3 {
		t.Error("distinct identities must hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
	if h1 == "203.0.113.9" {
		t.Error("hash must not be the raw identity")
	}
}
