package responses

import (
	"Backend-PackSurvey/src/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

var ErrAnswerRequired = errors.New("this question is required")

// Store ชั้น persistence ของคำตอบ - upsert ต้อง atomic ต่อ (sessionId, questionId)
type Store interface {
	Upsert(ctx context.Context, r *models.SurveyResponse) error
	Find(ctx context.Context, sessionID string, questionID int) (*models.SurveyResponse, error)
	CountForSession(ctx context.Context, sessionID string, questionIDs []int) (int, error)
}

// ProgressSink ปลายทางของ progress signal (Session Lifecycle Manager)
type ProgressSink interface {
	RecordProgress(ctx context.Context, sessionID string, completed int) error
}

// Service บันทึกคำตอบหนึ่งข้อ แล้วส่งต่อจำนวนข้อที่ตอบแล้วให้ lifecycle manager
type Service struct {
	store    Store
	progress ProgressSink
	now      func() time.Time
}

func NewService(store Store, progress ProgressSink) *Service {
	return &Service{
		store:    store,
		progress: progress,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ValidateAnswer ตรวจ required-field - คำถามบังคับห้ามตอบว่าง
func ValidateAnswer(q models.Question, v models.AnswerValue) error {
	if q.IsRequired && v.IsEmpty() {
		return ErrAnswerRequired
	}
	return nil
}

// Record บันทึกคำตอบแบบ upsert key (sessionId, questionId) - ส่งซ้ำหรือย้อนกลับมา
// แก้คำตอบจะทับของเดิม ไม่เพิ่มแถวใหม่ จากนั้นนับจำนวนข้อ (เฉพาะใน snapshot
// ของ session) แล้วส่งให้ RecordProgress
//
// ถ้า progress update ล้มเหลวหลังคำตอบถูกเขียนสำเร็จแล้ว จะไม่ rollback -
// ยอมรับ window ที่ progress นับขาด (นับใหม่ได้จากการ advance ครั้งถัดไป)
func (s *Service) Record(ctx context.Context, sessionID string, q models.Question, v models.AnswerValue, snapshotIDs []int, userAgent string) (int, error) {
	if err := ValidateAnswer(q, v); err != nil {
		return 0, err
	}
	if v.IsEmpty() {
		// ข้อ optional ที่เว้นว่าง - ไม่เขียนอะไร
		return s.countSilently(ctx, sessionID, snapshotIDs), nil
	}

	resp := &models.SurveyResponse{
		SessionID:   sessionID,
		QuestionID:  q.ID,
		SubmittedAt: s.now(),
		UserAgent:   userAgent,
	}
	resp.SetAnswer(v)

	if err := s.store.Upsert(ctx, resp); err != nil {
		return 0, fmt.Errorf("failed to save response: %w", err)
	}

	count := s.countSilently(ctx, sessionID, snapshotIDs)
	if err := s.progress.RecordProgress(ctx, sessionID, count); err != nil {
		log.Printf("⚠️ Warning: failed to update progress for session %s: %v", sessionID, err)
	}
	return count, nil
}

// Recorded ดึงคำตอบเดิมของข้อที่ระบุ (ใช้ตอน retreat) - nil เมื่อยังไม่เคยตอบ
func (s *Service) Recorded(ctx context.Context, sessionID string, questionID int) (*models.AnswerValue, error) {
	resp, err := s.store.Find(ctx, sessionID, questionID)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	v := resp.Answer()
	return &v, nil
}

func (s *Service) countSilently(ctx context.Context, sessionID string, snapshotIDs []int) int {
	count, err := s.store.CountForSession(ctx, sessionID, snapshotIDs)
	if err != nil {
		log.Printf("⚠️ Warning: failed to count responses for session %s: %v", sessionID, err)
		return 0
	}
	return count
}
