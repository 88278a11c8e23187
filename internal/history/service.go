package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/DSchneidersAH/ai-fit-tool/internal/cache"
	"github.com/DSchneidersAH/ai-fit-tool/internal/database"
	"github.com/DSchneidersAH/ai-fit-tool/internal/fit"
)

// Entry is one stored assessment as returned to API clients
type Entry struct {
	ID         string             `json:"id"`
	TaskVector fit.Vector         `json:"task_vector"`
	Scores     map[string]float64 `json:"scores"`
	BestFit    string             `json:"best_fit"`
	BestScore  float64            `json:"best_score"`
	CreatedAt  time.Time          `json:"created_at"`
}

// RecentResponse is the payload for recent-assessment queries
type RecentResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// Service persists completed assessments and serves aggregate history
type Service struct {
	repo  *database.Repository
	cache *cache.Cache
}

// NewService creates a history service backed by the assessments table
func NewService(repo *database.Repository, cacheTTL time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache.NewCache(cacheTTL),
	}
}

// taskHash anonymizes a rating vector into a stable dedupe key
func taskHash(task fit.Vector) string {
	data, _ := json.Marshal(task)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// SaveAssessment stores a scored task. Identical vectors collapse onto one
// row keyed by the task hash.
func (s *Service) SaveAssessment(task fit.Vector, results []fit.FitResult, ipAddress, userAgent string, isPublic bool) error {
	scores := make(map[string]float64, len(results))
	bestFit := ""
	bestScore := float64(0)
	for _, r := range results {
		scores[r.Profile] = r.Score
		if r.Rank == 1 {
			bestFit = r.Profile
			bestScore = r.Score
		}
	}

	vectorJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task vector: %w", err)
	}

	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}

	hash := taskHash(task)

	record := database.NewAssessment(
		hash, string(vectorJSON), string(scoresJSON),
		bestFit, bestScore, ipAddress, userAgent, isPublic,
	)

	if err := s.repo.SaveAssessment(record); err != nil {
		return err
	}

	// Stored rows changed, so cached listings are stale
	s.cache.Clear()

	slog.Info("Assessment saved",
		"task_hash", hash[:8]+"...",
		"best_fit", bestFit,
		"best_score", bestScore,
	)

	return nil
}

// Recent returns the most recent public assessments, newest first
func (s *Service) Recent(limit int) (*RecentResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	cacheKey := fmt.Sprintf("recent:%d", limit)
	if data, found := s.cache.Get(cacheKey); found {
		var response RecentResponse
		if err := json.Unmarshal(data, &response); err == nil {
			slog.Debug("History cache hit", "key", cacheKey)
			return &response, nil
		}
	}

	records, err := s.repo.GetRecentAssessments(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entry, err := toEntry(record)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	response := &RecentResponse{
		Entries: entries,
		Total:   len(entries),
	}

	if data, err := json.Marshal(response); err == nil {
		s.cache.Set(cacheKey, data)
	}

	return response, nil
}

// Summary returns aggregate counts and averages grouped by best-fit profile
func (s *Service) Summary() (map[string]interface{}, error) {
	const cacheKey = "summary"
	if data, found := s.cache.Get(cacheKey); found {
		var stats map[string]interface{}
		if err := json.Unmarshal(data, &stats); err == nil {
			slog.Debug("History cache hit", "key", cacheKey)
			return stats, nil
		}
	}

	stats, err := s.repo.GetStats()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		s.cache.Set(cacheKey, data)
	}

	return stats, nil
}

// PurgeOlderThan removes assessments past the retention window
func (s *Service) PurgeOlderThan(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)

	purged, err := s.repo.PurgeOlderThan(cutoff)
	if err != nil {
		return 0, err
	}

	if purged > 0 {
		s.cache.Clear()
		slog.Info("Purged expired assessments", "count", purged, "cutoff", cutoff.Format(time.RFC3339))
	}

	return purged, nil
}

// StartRetentionPurge runs the retention purge on a fixed interval
func (s *Service) StartRetentionPurge(interval, retention time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			if _, err := s.PurgeOlderThan(retention); err != nil {
				slog.Error("Retention purge failed", "error", err)
			}
		}
	}()
}

// GetCacheStats returns history cache statistics
func (s *Service) GetCacheStats() map[string]interface{} {
	return s.cache.Stats()
}

func toEntry(record *database.Assessment) (Entry, error) {
	var vector fit.Vector
	if err := json.Unmarshal([]byte(record.TaskVector), &vector); err != nil {
		return Entry{}, fmt.Errorf("failed to unmarshal task vector: %w", err)
	}

	var scores map[string]float64
	if err := json.Unmarshal([]byte(record.Scores), &scores); err != nil {
		return Entry{}, fmt.Errorf("failed to unmarshal scores: %w", err)
	}

	return Entry{
		ID:         record.ID,
		TaskVector: vector,
		Scores:     scores,
		BestFit:    record.BestFit,
		BestScore:  record.BestScore,
		CreatedAt:  record.CreatedAt,
	}, nil
}
