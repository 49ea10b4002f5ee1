package flow

import (
	"Backend-PackSurvey/src/models"
	"context"
	"fmt"
	"sync"
)

// Manager ถือ flow ที่ยังเปิดอยู่ในหน่วยความจำ key ด้วย session token
// session ที่ถูกทิ้งกลางทางจะอยู่ใน registry จน process จบ - ฝั่ง store
// session นั้นก็ค้างเป็น InProgress ตลอดเช่นกัน (ไม่มี expiry ใน core)
type Manager struct {
	mu    sync.RWMutex
	flows map[string]*Flow

	catalog   Catalog
	recorder  Recorder
	lifecycle Lifecycle
}

func NewManager(catalog Catalog, recorder Recorder, lifecycle Lifecycle) *Manager {
	return &Manager{
		flows:     make(map[string]*Flow),
		catalog:   catalog,
		recorder:  recorder,
		lifecycle: lifecycle,
	}
}

// Start snapshot คำถาม active หนึ่งครั้ง สร้าง session ใน store แล้วลงทะเบียน flow
// catalog ที่ถูกแก้หลังจากนี้ไม่กระทบ session ที่เริ่มไปแล้ว (total คงที่)
func (m *Manager) Start(ctx context.Context, sessionID, userAgent string) (*Flow, error) {
	qs, err := m.catalog.ListActiveOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey questions: %w", err)
	}
	if len(qs) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	if _, err := m.lifecycle.Start(ctx, sessionID, len(qs)); err != nil {
		return nil, err
	}

	f := &Flow{
		sessionID: sessionID,
		userAgent: userAgent,
		questions: qs,
		drafts:    make(map[int]models.AnswerValue),
		recorder:  m.recorder,
		lifecycle: m.lifecycle,
	}

	m.mu.Lock()
	m.flows[sessionID] = f
	m.mu.Unlock()
	return f, nil
}

// Get คืน flow ของ session token - ErrFlowNotFound เมื่อไม่รู้จัก (fatal ต่อ flow นั้น)
func (m *Manager) Get(sessionID string) (*Flow, error) {
	m.mu.RLock()
	f, ok := m.flows[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrFlowNotFound
	}
	return f, nil
}
