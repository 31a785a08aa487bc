package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cjunker/bb-bounce/internal/leaderboard"
	"github.com/cjunker/bb-bounce/internal/storage"
)

// scoreJSON is the wire form of a leaderboard entry.
type scoreJSON struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	LevelReached int    `json:"level_reached"`
	CreatedAt    string `json:"created_at"`
	Rank         int    `json:"rank,omitempty"`
}

func toScoreJSON(sc storage.Score) scoreJSON {
	return scoreJSON{
		ID:           sc.ID,
		Name:         sc.Name,
		Score:        sc.Score,
		LevelReached: sc.LevelReached,
		CreatedAt:    sc.CreatedAt.Format(time.RFC3339),
		Rank:         sc.Rank,
	}
}

// handleScores serves a leaderboard page. Absent limit/offset default to
// 10/0; present-but-unparseable values are rejected rather than silently
// defaulted.
func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", leaderboard.DefaultLimit)
	if err != nil {
		s.writeError(w, leaderboard.E(leaderboard.KindRangeInvalid, "limit must be an integer"))
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		s.writeError(w, leaderboard.E(leaderboard.KindRangeInvalid, "offset must be an integer"))
		return
	}

	scores, err := s.service.Top(r.Context(), limit, offset)
	if err != nil {
		s.writeError(w, err)
		return
	}

	entries := make([]scoreJSON, len(scores))
	for i, sc := range scores {
		entries[i] = toScoreJSON(sc)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(entries),
		"scores":  entries,
	})
}

// handleSubmit validates and persists a score submission.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub leaderboard.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		s.writeError(w, leaderboard.E(leaderboard.KindMissingFields, "request body must be valid JSON"))
		return
	}

	record, rank, err := s.service.Submit(r.Context(), sub, s.clientIP(r))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Score submitted successfully!",
		"score":   toScoreJSON(*record),
		"rank":    rank,
	})
}

// handleStats serves aggregate leaderboard statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats": map[string]any{
			"total_scores":  stats.TotalScores,
			"average_score": stats.AverageScore,
			"highest_score": stats.HighestScore,
			"highest_level": stats.HighestLevel,
		},
	})
}

// handleHealth reports liveness and store reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Healthy(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    leaderboard.AsError(err).Message,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Seconds(),
	})
}

// handleStatic serves the game frontend, falling back to index.html for
// client-side routes. Unknown /api paths get a JSON 404 instead.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": "not found",
		})
		return
	}

	dir := s.cfg.Server.StaticDir
	if dir == "" {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}

	http.ServeFile(w, r, filepath.Join(dir, "index.html"))
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Headers are already written; nothing to recover
	json.NewEncoder(w).Encode(body)
}

// writeError converts a failure to its JSON form. Internal details stay in
// the log; clients get the categorized kind and a stable message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	le := leaderboard.AsError(err)
	writeJSON(w, le.HTTPStatus(), map[string]any{
		"error": le.Message,
		"kind":  string(le.Kind),
	})
}
