package reports

import (
	DB "Backend-PackSurvey/src/database"
	"Backend-PackSurvey/src/models"
	"Backend-PackSurvey/src/services/questions"
	"Backend-PackSurvey/src/services/responses"
	"Backend-PackSurvey/src/services/sessions"
	"Backend-PackSurvey/src/utils"
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// GetDashboardStats อ่านตัวเลขสรุปจาก cache ก่อน ถ้าไม่มีค่อยคำนวณจาก store
func GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	if cached, err := utils.GetCachedDashboardStats(); err == nil && cached != nil {
		return cached, nil
	}

	stats, err := ComputeDashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	if err := utils.CacheDashboardStats(stats); err != nil {
		log.Printf("⚠️ Warning: failed to cache dashboard stats: %v", err)
	}
	return stats, nil
}

// ComputeDashboardStats คำนวณตัวเลขสรุปตรงจากทั้งสาม store (read-only)
func ComputeDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	activeQuestions, err := DB.QuestionCollection.CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	totalResponses, err := DB.ResponseCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count responses: %w", err)
	}

	totalSessions, err := DB.SessionCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	completedSessions, err := DB.SessionCollection.CountDocuments(ctx, bson.M{"isCompleted": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count completed sessions: %w", err)
	}

	return &models.DashboardStats{
		TotalQuestions: int(activeQuestions),
		TotalResponses: int(totalResponses),
		TotalSessions:  int(totalSessions),
		CompletionRate: CompletionRate(int(completedSessions), int(totalSessions)),
	}, nil
}

// CompletionRate เปอร์เซ็นต์ของ session ที่ทำจบ - 0 เมื่อยังไม่มี session (กันหารศูนย์)
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// ExportResponses สร้างไฟล์ CSV ของคำตอบทั้งหมด join กับข้อความคำถาม ณ เวลาอ่าน
// คำถามที่ถูกลบไปแล้วจะขึ้นเป็น "Unknown Question" แทนที่จะ export ล้มเหลว
func ExportResponses(ctx context.Context) ([]byte, string, error) {
	rs, err := responses.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	qs, err := questions.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}
	qByID := make(map[int]models.Question, len(qs))
	for _, q := range qs {
		qByID[q.ID] = q
	}

	data, err := csvBytes(responseCSVHeader, BuildResponseRows(rs, qByID))
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("survey_responses_%s.csv", time.Now().Format("2006-01-02"))
	return data, filename, nil
}

// ExportSessions สร้างไฟล์ CSV ของ session ทั้งหมด
func ExportSessions(ctx context.Context) ([]byte, string, error) {
	ss, err := sessions.ListAll(ctx)
	if err != nil {
		return nil, "", err
	}

	data, err := csvBytes(sessionCSVHeader, BuildSessionRows(ss))
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("survey_sessions_%s.csv", time.Now().Format("2006-01-02"))
	return data, filename, nil
}
