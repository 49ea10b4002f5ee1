package jobs

import (
	"Backend-PackSurvey/src/database"
	"Backend-PackSurvey/src/services/reports"
	"Backend-PackSurvey/src/utils"
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// EnqueueRefreshStats ยิง task คำนวณ dashboard stats ใหม่เข้า queue
// ไม่มี Asynq (dev mode) จะแค่ invalidate cache แล้วให้ request ถัดไปคำนวณเอง
func EnqueueRefreshStats(reason string) {
	if err := utils.InvalidateDashboardStats(); err != nil {
		log.Printf("⚠️ Warning: failed to invalidate stats cache: %v", err)
	}

	if database.AsynqClient == nil {
		return
	}

	task, err := NewRefreshStatsTask(reason)
	if err != nil {
		log.Printf("⚠️ Warning: failed to build refresh stats task: %v", err)
		return
	}
	if _, err := database.AsynqClient.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		log.Printf("⚠️ Warning: failed to enqueue refresh stats task: %v", err)
	}
}

// HandleRefreshStatsTask คำนวณตัวเลขสรุปใหม่แล้วอุ่น cache ไว้ให้หน้า dashboard
func HandleRefreshStatsTask(ctx context.Context, t *asynq.Task) error {
	var payload RefreshStatsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	stats, err := reports.ComputeDashboardStats(ctx)
	if err != nil {
		log.Println("❌ Failed to compute dashboard stats:", err)
		return err
	}

	if err := utils.CacheDashboardStats(stats); err != nil {
		log.Println("❌ Failed to cache dashboard stats:", err)
		return err
	}

	log.Printf("✅ Dashboard stats refreshed (%s): %d sessions, %.1f%% complete",
		payload.Reason, stats.TotalSessions, stats.CompletionRate)
	return nil
}
