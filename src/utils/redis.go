package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	DB "Backend-PackSurvey/src/database"
	"Backend-PackSurvey/src/models"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 5 * time.Minute
)

// ensureClient returns the shared Redis client managed by the database package.
// If the database package didn't initialize Redis, this will return nil and
// callers should handle that case (they already do).
func ensureClient() *redis.Client {
	return DB.RedisClient
}

// CacheDashboardStats เก็บตัวเลขสรุป dashboard ใน Redis พร้อม TTL
// Returns nil if Redis is not available (development mode)
func CacheDashboardStats(stats *models.DashboardStats) error {
	client := ensureClient()
	if client == nil {
		// ไม่มี Redis ใน dev mode - ข้าม
		return nil
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %v", err)
	}
	if err := client.Set(Ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache stats: %v", err)
	}
	return nil
}

// GetCachedDashboardStats อ่านตัวเลขสรุปจาก cache - nil, nil เมื่อไม่มี cache
func GetCachedDashboardStats() (*models.DashboardStats, error) {
	client := ensureClient()
	if client == nil {
		return nil, nil
	}

	data, err := client.Get(Ctx, statsCacheKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached stats: %v", err)
	}

	var stats models.DashboardStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached stats: %v", err)
	}
	return &stats, nil
}

// InvalidateDashboardStats ลบ cache หลัง catalog ถูกแก้หรือ session จบ
// Returns nil if Redis is not available (development mode)
func InvalidateDashboardStats() error {
	client := ensureClient()
	if client == nil {
		return nil
	}

	if err := client.Del(Ctx, statsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stats cache: %v", err)
	}
	return nil
}
