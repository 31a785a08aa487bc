package leaderboard

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cjunker/bb-bounce/internal/storage"
)

// Pagination bounds for the read path.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Options configures a Service.
type Options struct {
	// Secret is the shared submission token.
	Secret string

	// Window is the per-identity duplicate-submission window.
	Window time.Duration

	// StoreTimeout bounds every store call. Zero means no deadline.
	StoreTimeout time.Duration

	Logger *log.Logger
}

// Service ties the submission guard to the score store: it validates
// candidate scores, enforces the duplicate window, persists accepted
// submissions, and serves the ranked read path.
type Service struct {
	store   *storage.Store
	guard   *Guard
	window  time.Duration
	timeout time.Duration
	logger  *log.Logger
}

// NewService creates a Service over an explicitly constructed store handle.
func NewService(store *storage.Store, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		store:   store,
		guard:   NewGuard(opts.Secret, logger),
		window:  opts.Window,
		timeout: opts.StoreTimeout,
		logger:  logger,
	}
}

// Submit validates a candidate score and persists it. identity is the
// caller's network identity; it is hashed before any store access and never
// persisted raw. On success it returns the stored record and its rank.
//
// The pre-insert window check and the insert are not atomic; the store's
// unique (identity_hash, window_bucket) index backstops the race, and its
// conflict error converts to the same rate-limited outcome.
func (s *Service) Submit(ctx context.Context, sub Submission, identity string) (*storage.Score, int, error) {
	valid, err := s.guard.Validate(sub, identity)
	if err != nil {
		return nil, 0, err
	}

	hash := HashIdentity(identity)

	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	recent, err := s.store.RecentSubmission(ctx, hash, s.window)
	if err != nil {
		return nil, 0, s.storeErr("duplicate check", err)
	}
	if recent {
		return nil, 0, E(KindRateLimited, "score already submitted recently, please wait")
	}

	record, err := s.store.InsertScore(ctx, valid.Name, valid.Score, valid.Level, hash, s.window)
	if err != nil {
		// Schema CHECK failures report the same kinds the guard would
		// have used for the out-of-range value.
		switch {
		case errors.Is(err, storage.ErrDuplicateSubmission):
			return nil, 0, E(KindRateLimited, "score already submitted recently, please wait")
		case errors.Is(err, storage.ErrScoreOutOfBounds):
			return nil, 0, E(KindInvalidScore, "score must be between 0 and 999999")
		case errors.Is(err, storage.ErrLevelOutOfBounds):
			return nil, 0, E(KindInvalidLevel, "level must be between 1 and 100")
		case errors.Is(err, storage.ErrConstraintViolated):
			return nil, 0, E(KindStoreConstraint, "score or level out of bounds")
		}
		return nil, 0, s.storeErr("insert", err)
	}

	rank, err := s.store.Rank(ctx, record.ID)
	if err != nil {
		return nil, 0, s.storeErr("rank", err)
	}

	s.logger.Info("score submitted",
		"name", record.Name, "score", record.Score, "level", record.LevelReached, "rank", rank)

	return record, rank, nil
}

// Top returns a leaderboard page. limit must be in [1, MaxLimit] and offset
// non-negative; out-of-range values are rejected, not clamped.
func (s *Service) Top(ctx context.Context, limit, offset int) ([]storage.Score, error) {
	if limit < 1 || limit > MaxLimit {
		return nil, E(KindRangeInvalid, "limit must be between 1 and 100")
	}
	if offset < 0 {
		return nil, E(KindRangeInvalid, "offset must not be negative")
	}

	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	scores, err := s.store.TopScores(ctx, limit, offset)
	if err != nil {
		return nil, s.storeErr("top scores", err)
	}
	return scores, nil
}

// Stats returns aggregate leaderboard statistics.
func (s *Service) Stats(ctx context.Context) (*storage.Stats, error) {
	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, s.storeErr("stats", err)
	}
	return stats, nil
}

// Healthy reports store reachability for the liveness probe.
func (s *Service) Healthy(ctx context.Context) error {
	ctx, cancel := s.boundCtx(ctx)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		return s.storeErr("ping", err)
	}
	return nil
}

// boundCtx applies the configured store deadline.
func (s *Service) boundCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// storeErr logs a store failure and converts it to the unavailable kind.
func (s *Service) storeErr(op string, err error) error {
	s.logger.Error("store operation failed", "op", op, "error", err)
	return E(KindStoreUnavailable, "leaderboard store unavailable")
}
