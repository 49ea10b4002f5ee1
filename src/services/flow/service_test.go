package flow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-PackSurvey/src/models"
	"Backend-PackSurvey/src/services/responses"
	"Backend-PackSurvey/src/services/sessions"
)

// fixture ประกอบ flow.Manager กับ service จริง แต่ store เป็น in-memory

type sessionStore struct {
	mu   sync.Mutex
	data map[string]*models.SurveySession
}

func (s *sessionStore) Insert(_ context.Context, sess *models.SurveySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.data[sess.ID] = &cp
	return nil
}

func (s *sessionStore) Get(_ context.Context, id string) (*models.SurveySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.data[id]
	if !ok {
		return nil, sessions.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *sessionStore) SetProgress(_ context.Context, id string, completed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.data[id]; ok && completed > sess.CompletedQuestions {
		sess.CompletedQuestions = completed
	}
	return nil
}

func (s *sessionStore) MarkCompleted(_ context.Context, id string, at time.Time, completed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.data[id]
	if !ok {
		return sessions.ErrSessionNotFound
	}
	if !sess.IsCompleted {
		sess.IsCompleted = true
		sess.CompletedAt = &at
		sess.CompletedQuestions = completed
	}
	return nil
}

type respKey struct {
	sessionID  string
	questionID int
}

type responseStore struct {
	mu        sync.Mutex
	data      map[respKey]*models.SurveyResponse
	upsertErr error // เมื่อ set ให้ Upsert ล้มเหลวครั้งถัดไป
	entered   chan struct{} // ปิดเมื่อ Upsert แรกเริ่มทำงาน
	blockOn   chan struct{}
}

func (s *responseStore) Upsert(_ context.Context, r *models.SurveyResponse) error {
	if s.entered != nil {
		close(s.entered)
		s.entered = nil
	}
	if s.blockOn != nil {
		<-s.blockOn
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upsertErr != nil {
		return s.upsertErr
	}
	cp := *r
	s.data[respKey{r.SessionID, r.QuestionID}] = &cp
	return nil
}

func (s *responseStore) Find(_ context.Context, sessionID string, questionID int) (*models.SurveyResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data[respKey{sessionID, questionID}]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *responseStore) CountForSession(_ context.Context, sessionID string, questionIDs []int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inSnapshot := map[int]bool{}
	for _, id := range questionIDs {
		inSnapshot[id] = true
	}
	count := 0
	for k := range s.data {
		if k.sessionID == sessionID && inSnapshot[k.questionID] {
			count++
		}
	}
	return count, nil
}

type staticCatalog struct {
	questions []models.Question
}

func (c staticCatalog) ListActiveOrdered(context.Context) ([]models.Question, error) {
	return c.questions, nil
}

func threeQuestions() []models.Question {
	return []models.Question{
		{ID: 1, QuestionText: "How was the packaging?", QuestionType: models.QuestionTypeScale, IsRequired: true, DisplayOrder: 1, IsActive: true},
		{ID: 2, QuestionText: "Anything else?", QuestionType: models.QuestionTypeText, DisplayOrder: 2, IsActive: true},
		{ID: 3, QuestionText: "Would you recommend us?", QuestionType: models.QuestionTypeText, IsRequired: true, DisplayOrder: 3, IsActive: true},
	}
}

type fixture struct {
	manager   *Manager
	sessStore *sessionStore
	respStore *responseStore
}

func newFixture(qs []models.Question) *fixture {
	sessStore := &sessionStore{data: map[string]*models.SurveySession{}}
	respStore := &responseStore{data: map[respKey]*models.SurveyResponse{}}
	lifecycle := sessions.NewService(sessStore)
	recorder := responses.NewService(respStore, lifecycle)
	return &fixture{
		manager:   NewManager(staticCatalog{questions: qs}, recorder, lifecycle),
		sessStore: sessStore,
		respStore: respStore,
	}
}

func TestManagerStart(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyCatalogRefusesToStart", func(t *testing.T) {
		fx := newFixture(nil)
		_, err := fx.manager.Start(ctx, "sess-1", "")
		assert.ErrorIs(t, err, ErrNoQuestionsAvailable)
	})

	t.Run("StartCreatesSessionAndFirstStep", func(t *testing.T) {
		fx := newFixture(threeQuestions())
		f, err := fx.manager.Start(ctx, "sess-1", "ua")
		require.NoError(t, err)

		step := f.Current()
		require.NotNil(t, step.Question)
		assert.Equal(t, 1, step.Question.ID)
		assert.Equal(t, 0, step.Index)
		assert.Equal(t, 3, step.Total)
		assert.False(t, step.Completed)

		sess, err := fx.sessStore.Get(ctx, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, 3, sess.TotalQuestions)
	})

	t.Run("UnknownSessionTokenIsNotRecoverable", func(t *testing.T) {
		fx := newFixture(threeQuestions())
		_, err := fx.manager.Get("missing")
		assert.ErrorIs(t, err, ErrFlowNotFound)
	})
}

// TestFullWalkthrough ตอบข้อ 1, ข้ามข้อ 2 (optional), เว้นข้อ 3 ที่ required
// แล้วถูกปฏิเสธ, ตอบข้อ 3 จริง → session ปิด
func TestFullWalkthrough(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(threeQuestions())
	f, err := fx.manager.Start(ctx, "sess-1", "ua")
	require.NoError(t, err)

	// ข้อ 1 (required scale)
	f.SetDraft(models.StructuredAnswer(map[string]interface{}{"value": 4}))
	step, err := f.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, step.Index)
	assert.Equal(t, 1, step.CompletedCount)

	// ข้อ 2 optional - ข้ามโดยไม่ตอบ ต้องไม่เขียนอะไร
	step, err = f.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, step.Index)
	assert.Equal(t, 1, step.CompletedCount)
	_, hasSkipped := fx.respStore.data[respKey{"sess-1", 2}]
	assert.False(t, hasSkipped)

	// ข้อ 3 required - เว้นว่างต้องโดนปฏิเสธและ index ไม่ขยับ
	_, err = f.Advance(ctx)
	assert.ErrorIs(t, err, responses.ErrAnswerRequired)
	assert.Equal(t, 2, f.Current().Index)

	// ตอบจริงแล้ว advance - flow จบและ session ถูกปิด
	f.SetDraft(models.TextAnswer("Absolutely"))
	step, err = f.Advance(ctx)
	require.NoError(t, err)
	assert.True(t, step.Completed)
	assert.Nil(t, step.Question)
	assert.Equal(t, 2, step.CompletedCount)

	sess, err := fx.sessStore.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, sess.IsCompleted)
	assert.NotNil(t, sess.CompletedAt)
	assert.Equal(t, 3, sess.CompletedQuestions)

	// advance หลัง terminal เป็น no-op
	step, err = f.Advance(ctx)
	require.NoError(t, err)
	assert.True(t, step.Completed)
}

func TestAdvanceFailureKeepsPosition(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(threeQuestions())
	f, err := fx.manager.Start(ctx, "sess-1", "")
	require.NoError(t, err)

	fx.respStore.upsertErr = errors.New("mongo down")
	f.SetDraft(models.TextAnswer("lost"))
	_, err = f.Advance(ctx)
	require.Error(t, err)

	// index เดิม draft เดิม - retry ได้เมื่อ store กลับมา
	step := f.Current()
	assert.Equal(t, 0, step.Index)
	assert.Equal(t, models.AnswerText, step.Draft.Kind)

	fx.respStore.upsertErr = nil
	step, err = f.Advance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, step.Index)
	assert.Equal(t, 1, step.CompletedCount)
}

func TestRetreat(t *testing.T) {
	ctx := context.Background()

	t.Run("RetreatAtFirstQuestionIsNoop", func(t *testing.T) {
		fx := newFixture(threeQuestions())
		f, err := fx.manager.Start(ctx, "sess-1", "")
		require.NoError(t, err)

		step, err := f.Retreat(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, step.Index)
	})

	t.Run("RetreatRestoresPersistedAnswerAsDraft", func(t *testing.T) {
		fx := newFixture(threeQuestions())
		f, err := fx.manager.Start(ctx, "sess-1", "")
		require.NoError(t, err)

		f.SetDraft(models.TextAnswer("original"))
		_, err = f.Advance(ctx)
		require.NoError(t, err)

		// จำลอง draft ในหน่วยความจำหาย - retreat ต้องเติมจาก store
		f.mu.Lock()
		delete(f.drafts, 1)
		f.mu.Unlock()

		step, err := f.Retreat(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, step.Index)
		assert.Equal(t, "original", step.Draft.Text)
	})

	t.Run("EditAfterRetreatOverwrites", func(t *testing.T) {
		fx := newFixture(threeQuestions())
		f, err := fx.manager.Start(ctx, "sess-1", "")
		require.NoError(t, err)

		f.SetDraft(models.TextAnswer("first"))
		_, err = f.Advance(ctx)
		require.NoError(t, err)

		_, err = f.Retreat(ctx)
		require.NoError(t, err)
		f.SetDraft(models.TextAnswer("second"))
		step, err := f.Advance(ctx)
		require.NoError(t, err)

		// ยัง 1 คำตอบ - upsert ทับของเดิม ไม่เพิ่มแถว
		assert.Equal(t, 1, step.CompletedCount)
		saved := fx.respStore.data[respKey{"sess-1", 1}]
		require.NotNil(t, saved)
		assert.Equal(t, "second", *saved.ResponseText)
	})
}

// TestDoubleSubmitGuard ระหว่างที่ advance แรกค้างอยู่ที่ store
// การ advance ซ้ำต้องโดน ErrSubmissionInFlight ทันที
func TestDoubleSubmitGuard(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(threeQuestions())
	f, err := fx.manager.Start(ctx, "sess-1", "")
	require.NoError(t, err)

	release := make(chan struct{})
	entered := make(chan struct{})
	fx.respStore.blockOn = release
	fx.respStore.entered = entered
	f.SetDraft(models.TextAnswer("slow"))

	done := make(chan error, 1)
	go func() {
		_, err := f.Advance(ctx)
		done <- err
	}()

	// รอให้ goroutine แรกเข้า store call แล้วลอง advance ซ้ำ
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("first advance never reached the store")
	}

	_, err = f.Advance(ctx)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	_, err = f.Retreat(ctx)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, f.Current().Index)
}
