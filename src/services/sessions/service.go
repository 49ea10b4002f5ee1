package sessions

import (
	"Backend-PackSurvey/src/models"
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrSessionNotFound = errors.New("survey session not found")

// Store การเขียนแต่ละ operation ต้อง atomic ใน document เดียว
// (conditional update ฝั่ง store คือตัวกันการ race ระหว่าง advance ซ้ำ)
type Store interface {
	Insert(ctx context.Context, s *models.SurveySession) error
	Get(ctx context.Context, id string) (*models.SurveySession, error)
	SetProgress(ctx context.Context, id string, completed int) error
	MarkCompleted(ctx context.Context, id string, at time.Time, completed int) error
}

// Service จัดการ lifecycle ของ session: Created → InProgress → Completed (terminal)
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Start สร้าง session ใหม่พร้อม snapshot จำนวนคำถาม ณ ตอนเริ่ม
// total ไม่ถูกแก้อีกแม้ catalog เปลี่ยนระหว่าง session
func (s *Service) Start(ctx context.Context, id string, total int) (*models.SurveySession, error) {
	sess := &models.SurveySession{
		ID:                 id,
		StartedAt:          s.now(),
		TotalQuestions:     total,
		CompletedQuestions: 0,
		IsCompleted:        false,
	}
	if err := s.store.Insert(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create survey session: %w", err)
	}
	return sess, nil
}

// Get อ่าน session ตาม id
func (s *Service) Get(ctx context.Context, id string) (*models.SurveySession, error) {
	return s.store.Get(ctx, id)
}

// RecordProgress อัปเดตจำนวนข้อที่ตอบแล้วแบบ monotonic
// ค่าที่น้อยกว่าหรือเท่าปัจจุบันเป็น no-op (ไม่ใช่ error) เพื่อรองรับ
// progress signal ที่มาช้าหรือซ้ำจาก retry ฝั่ง client
func (s *Service) RecordProgress(ctx context.Context, id string, completed int) error {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if completed <= sess.CompletedQuestions {
		return nil
	}
	if completed > sess.TotalQuestions {
		completed = sess.TotalQuestions
	}
	return s.store.SetProgress(ctx, id, completed)
}

// Complete ปิด session - idempotent เรียกซ้ำได้ผลเท่าเดิม
// ตั้ง completedAt, isCompleted และดัน completedQuestions ให้เท่า total
func (s *Service) Complete(ctx context.Context, id string) error {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if sess.IsCompleted {
		return nil
	}
	return s.store.MarkCompleted(ctx, id, s.now(), sess.TotalQuestions)
}
