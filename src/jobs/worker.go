package jobs

import (
	"Backend-PackSurvey/src/database"
	"log"

	"github.com/hibiken/asynq"
)

// RunWorker เปิด asynq server ใน goroutine ของ process เดียวกับ API
// ไม่มี Redis ก็ข้ามไป - ระบบหลักไม่พึ่ง background jobs
func RunWorker() {
	if database.RedisURI == "" {
		log.Println("⚠️ Redis not available. Background worker will not start.")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI},
		asynq.Config{Concurrency: 2},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRefreshStats, HandleRefreshStatsTask)

	go func() {
		log.Println("✅ Background worker started")
		if err := srv.Run(mux); err != nil {
			log.Println("❌ Background worker stopped:", err)
		}
	}()
}
