package flow

import (
	"Backend-PackSurvey/src/models"
	"Backend-PackSurvey/src/services/responses"
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoQuestionsAvailable ไม่มีคำถาม active ใน catalog - flow เริ่มไม่ได้
	ErrNoQuestionsAvailable = errors.New("no survey questions available")
	// ErrFlowNotFound ไม่รู้จัก session token นี้ - ไม่มีทาง recover flow กลับมา
	ErrFlowNotFound = errors.New("survey session not found")
	// ErrSubmissionInFlight มี advance ก่อนหน้าที่ยังรอ store อยู่ (กันการกดซ้ำ)
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// Catalog read path ของ question catalog ที่ controller ใช้ snapshot
type Catalog interface {
	ListActiveOrdered(ctx context.Context) ([]models.Question, error)
}

// Recorder สัญญาของ Response Recorder
type Recorder interface {
	Record(ctx context.Context, sessionID string, q models.Question, v models.AnswerValue, snapshotIDs []int, userAgent string) (int, error)
	Recorded(ctx context.Context, sessionID string, questionID int) (*models.AnswerValue, error)
}

// Lifecycle สัญญาของ Session Lifecycle Manager ที่ flow ต้องใช้
type Lifecycle interface {
	Start(ctx context.Context, id string, total int) (*models.SurveySession, error)
	Complete(ctx context.Context, id string) error
}

// Step สถานะของ flow หลังแต่ละ operation สำหรับส่งกลับให้ client
type Step struct {
	Question       *models.Question   `json:"question,omitempty"`
	Draft          models.AnswerValue `json:"draft"`
	Index          int                `json:"index"`
	Total          int                `json:"total"`
	CompletedCount int                `json:"completedCount"`
	Completed      bool               `json:"completed"`
}

// Flow ตัวเดินลำดับคำถามของหนึ่ง session:
// snapshot ของคำถาม active (ไม่ re-fetch ระหว่างทาง), index ปัจจุบัน,
// และ draft คำตอบต่อข้อ (ยังไม่ persist จนกว่าจะยืนยัน advance)
type Flow struct {
	mu         sync.Mutex
	sessionID  string
	userAgent  string
	questions  []models.Question
	index      int
	drafts     map[int]models.AnswerValue
	completed  int  // จำนวนข้อที่ recorder ยืนยันแล้ว
	submitting bool // advance ถูกปิดระหว่างรอ store - กัน double submission
	terminal   bool

	recorder  Recorder
	lifecycle Lifecycle
}

// Current คืนคำถาม ณ index ปัจจุบันพร้อม draft
func (f *Flow) Current() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stepLocked()
}

// SetDraft แก้ draft ของข้อปัจจุบัน - ไม่ persist ไม่ validate
func (f *Flow) SetDraft(v models.AnswerValue) Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.terminal {
		f.drafts[f.questions[f.index].ID] = v
	}
	return f.stepLocked()
}

// Advance ตรวจ draft กับ required flag แล้วบันทึกก่อนเลื่อนไปข้อถัดไป
// ข้อสุดท้ายสำเร็จ → ปิด session ผ่าน lifecycle manager และ flow เป็น terminal
// Recorder ล้มเหลว → index ไม่ขยับ draft คงเดิม ให้ผู้ใช้ retry เอง
func (f *Flow) Advance(ctx context.Context) (Step, error) {
	f.mu.Lock()
	if f.terminal {
		step := f.stepLocked()
		f.mu.Unlock()
		return step, nil
	}
	if f.submitting {
		f.mu.Unlock()
		return Step{}, ErrSubmissionInFlight
	}

	q := f.questions[f.index]
	draft := f.drafts[q.ID]
	if q.IsRequired && draft.IsEmpty() {
		f.mu.Unlock()
		return Step{}, responses.ErrAnswerRequired
	}

	last := f.index == len(f.questions)-1
	f.submitting = true
	f.mu.Unlock()

	// store call อยู่นอก lock - flow อื่นไม่ถูก block และ advance ซ้ำโดนกันด้วย submitting
	var (
		count     int
		recordErr error
	)
	if !draft.IsEmpty() {
		count, recordErr = f.recorder.Record(ctx, f.sessionID, q, draft, f.snapshotIDs(), f.userAgent)
	}

	var completeErr error
	if recordErr == nil && last {
		completeErr = f.lifecycle.Complete(ctx, f.sessionID)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if recordErr != nil {
		return Step{}, recordErr
	}
	if !draft.IsEmpty() && count > f.completed {
		f.completed = count
	}
	if last {
		if completeErr != nil {
			return Step{}, fmt.Errorf("failed to complete survey: %w", completeErr)
		}
		f.terminal = true
		return f.stepLocked(), nil
	}
	f.index++
	return f.stepLocked(), nil
}

// Retreat ถอย index หนึ่งข้อ (ถ้าไม่ใช่ข้อแรก) แล้วเติม draft จากคำตอบที่เคยบันทึก
// เป็นแค่ lookup - ไม่ validate ไม่เขียนอะไร
func (f *Flow) Retreat(ctx context.Context) (Step, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return Step{}, ErrSubmissionInFlight
	}
	if f.terminal || f.index == 0 {
		step := f.stepLocked()
		f.mu.Unlock()
		return step, nil
	}
	f.index--
	q := f.questions[f.index]
	_, hasDraft := f.drafts[q.ID]
	f.mu.Unlock()

	if !hasDraft {
		// draft ในหน่วยความจำหาย (เช่น process ใหม่) - ดึงจาก store แทน
		if v, err := f.recorder.Recorded(ctx, f.sessionID, q.ID); err == nil && v != nil {
			f.mu.Lock()
			f.drafts[q.ID] = *v
			f.mu.Unlock()
		}
	}
	return f.Current(), nil
}

func (f *Flow) stepLocked() Step {
	step := Step{
		Index:          f.index,
		Total:          len(f.questions),
		CompletedCount: f.completed,
		Completed:      f.terminal,
	}
	if !f.terminal {
		q := f.questions[f.index]
		step.Question = &q
		step.Draft = f.drafts[q.ID]
	}
	return step
}

func (f *Flow) snapshotIDs() []int {
	ids := make([]int, len(f.questions))
	for i, q := range f.questions {
		ids[i] = q.ID
	}
	return ids
}
