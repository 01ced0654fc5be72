package cache

import (
	"context"
	"encoding/json"
	"time"

	"hotel_feedback_back_end/internal/database"
)

const (
	StatsCacheTTL = 5 * time.Minute

	statsKey = "feedback:stats"
)

// CachedStats est l'instantané cumulatif servi par GET /api/stats.
type CachedStats struct {
	Total     int                 `json:"total"`
	Means     map[string]*float64 `json:"means"`
	Composite *float64            `json:"composite"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// GetStatsFromCache récupère l'instantané depuis Redis, ou le recalcule via
// compute et le met en cache.
func GetStatsFromCache(compute func() (*CachedStats, error)) (*CachedStats, error) {
	ctx := context.Background()

	// 1. Essayer le cache Redis
	if database.Redis != nil {
		data, err := database.Redis.Get(ctx, statsKey).Result()
		if err == nil {
			var stats CachedStats
			if json.Unmarshal([]byte(data), &stats) == nil {
				return &stats, nil
			}
		}
	}

	// 2. Recalculer depuis ScyllaDB
	stats, err := compute()
	if err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	if database.Redis != nil {
		jsonData, _ := json.Marshal(stats)
		database.Redis.Set(ctx, statsKey, jsonData, StatsCacheTTL)
	}

	return stats, nil
}

// InvalidateStatsCache invalide l'instantané après chaque nouvelle soumission.
func InvalidateStatsCache() {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(context.Background(), statsKey)
}
