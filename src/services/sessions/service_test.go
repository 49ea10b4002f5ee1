package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-PackSurvey/src/models"
)

// memStore in-memory Store สำหรับทดสอบ lifecycle โดยไม่ต้องมี MongoDB
type memStore struct {
	sessions map[string]*models.SurveySession
	setCalls int
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]*models.SurveySession{}}
}

func (m *memStore) Insert(_ context.Context, s *models.SurveySession) error {
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (*models.SurveySession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) SetProgress(_ context.Context, id string, completed int) error {
	m.setCalls++
	if s, ok := m.sessions[id]; ok && completed > s.CompletedQuestions {
		s.CompletedQuestions = completed
	}
	return nil
}

func (m *memStore) MarkCompleted(_ context.Context, id string, at time.Time, completed int) error {
	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if s.IsCompleted {
		return nil
	}
	s.IsCompleted = true
	s.CompletedAt = &at
	s.CompletedQuestions = completed
	return nil
}

func newTestService(store Store, at time.Time) *Service {
	svc := NewService(store)
	svc.now = func() time.Time { return at }
	return svc
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	started := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("StartSnapshotsTotalQuestions", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store, started)

		sess, err := svc.Start(ctx, "sess-1", 6)
		require.NoError(t, err)
		assert.Equal(t, 6, sess.TotalQuestions)
		assert.Equal(t, 0, sess.CompletedQuestions)
		assert.False(t, sess.IsCompleted)
		assert.Nil(t, sess.CompletedAt)
		assert.Equal(t, started, sess.StartedAt)
	})

	t.Run("GetUnknownSessionReturnsNotFound", func(t *testing.T) {
		svc := newTestService(newMemStore(), started)

		_, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("RecordProgressIsMonotonic", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store, started)
		_, err := svc.Start(ctx, "sess-1", 5)
		require.NoError(t, err)

		require.NoError(t, svc.RecordProgress(ctx, "sess-1", 3))
		sess, _ := svc.Get(ctx, "sess-1")
		assert.Equal(t, 3, sess.CompletedQuestions)

		// ค่าที่น้อยกว่าเดิมต้องเป็น no-op ไม่ใช่ error
		require.NoError(t, svc.RecordProgress(ctx, "sess-1", 1))
		sess, _ = svc.Get(ctx, "sess-1")
		assert.Equal(t, 3, sess.CompletedQuestions)

		// ค่าเท่าเดิมก็ no-op เช่นกัน - store ต้องไม่ถูกเรียกซ้ำ
		calls := store.setCalls
		require.NoError(t, svc.RecordProgress(ctx, "sess-1", 3))
		assert.Equal(t, calls, store.setCalls)
	})

	t.Run("RecordProgressClampsToTotal", func(t *testing.T) {
		svc := newTestService(newMemStore(), started)
		_, err := svc.Start(ctx, "sess-1", 4)
		require.NoError(t, err)

		require.NoError(t, svc.RecordProgress(ctx, "sess-1", 99))
		sess, _ := svc.Get(ctx, "sess-1")
		assert.Equal(t, 4, sess.CompletedQuestions)
	})

	t.Run("RecordProgressUnknownSession", func(t *testing.T) {
		svc := newTestService(newMemStore(), started)
		err := svc.RecordProgress(ctx, "missing", 1)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("CompleteIsIdempotent", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store, started)
		_, err := svc.Start(ctx, "sess-1", 3)
		require.NoError(t, err)

		require.NoError(t, svc.Complete(ctx, "sess-1"))
		first, _ := svc.Get(ctx, "sess-1")
		require.True(t, first.IsCompleted)
		require.NotNil(t, first.CompletedAt)
		assert.Equal(t, 3, first.CompletedQuestions)

		// เรียกซ้ำด้วยเวลาอื่น - timestamp เดิมต้องไม่เปลี่ยน
		svc.now = func() time.Time { return started.Add(time.Hour) }
		require.NoError(t, svc.Complete(ctx, "sess-1"))
		second, _ := svc.Get(ctx, "sess-1")
		assert.Equal(t, first.CompletedAt, second.CompletedAt)
	})

	t.Run("CompleteUnknownSession", func(t *testing.T) {
		svc := newTestService(newMemStore(), started)
		err := svc.Complete(ctx, "missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
