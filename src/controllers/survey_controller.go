package controllers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"Backend-PackSurvey/src/jobs"
	"Backend-PackSurvey/src/models"
	"Backend-PackSurvey/src/services/flow"
	"Backend-PackSurvey/src/services/questions"
	"Backend-PackSurvey/src/services/responses"
	"Backend-PackSurvey/src/services/sessions"
	"Backend-PackSurvey/src/utils"
)

var flows *flow.Manager

// questionCatalog ผูก read path ของ questions package เข้ากับ interface ของ flow
type questionCatalog struct{}

func (questionCatalog) ListActiveOrdered(ctx context.Context) ([]models.Question, error) {
	return questions.ListActiveOrdered(ctx)
}

// InitFlowManager ประกอบ engine: catalog → recorder → lifecycle → flow registry
// ต้องเรียกหลัง ConnectMongoDB
func InitFlowManager() {
	sessionSvc := sessions.NewService(sessions.NewMongoStore())
	responseSvc := responses.NewService(responses.NewMongoStore(), sessionSvc)
	flows = flow.NewManager(questionCatalog{}, responseSvc, sessionSvc)
}

// --------- Public survey flow ---------

type startSessionIn struct {
	SessionID string `json:"sessionId" validate:"required,uuid4"`
}

// StartSurvey godoc
// @Summary      Start a survey session
// @Tags         survey
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "client-generated session token"
// @Success      201  {object}  flow.Step
// @Router       /survey/sessions [post]
func StartSurvey(c *fiber.Ctx) error {
	var in startSessionIn
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "sessionId must be a UUID")
	}

	f, err := flows.Start(c.Context(), in.SessionID, c.Get("User-Agent"))
	if err != nil {
		if errors.Is(err, flow.ErrNoQuestionsAvailable) {
			return utils.HandleError(c, fiber.StatusNotFound, "No survey questions available at this time")
		}
		log.Printf("❌ Failed to start survey session: %v", err)
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to start survey. Please try again.")
	}

	return c.Status(fiber.StatusCreated).JSON(f.Current())
}

// GetCurrentStep godoc
// @Summary      Current question of a session
// @Tags         survey
// @Produce      json
// @Param        id  path  string  true  "session token"
// @Success      200  {object}  flow.Step
// @Router       /survey/sessions/{id}/current [get]
func GetCurrentStep(c *fiber.Ctx) error {
	f, err := lookupFlow(c)
	if f == nil {
		return err
	}
	return c.JSON(f.Current())
}

type draftIn struct {
	Value models.AnswerValue `json:"value"`
}

// SetDraft godoc
// @Summary      Update the draft answer for the current question
// @Tags         survey
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "session token"
// @Success      200  {object}  flow.Step
// @Router       /survey/sessions/{id}/draft [put]
func SetDraft(c *fiber.Ctx) error {
	f, err := lookupFlow(c)
	if f == nil {
		return err
	}

	var in draftIn
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	return c.JSON(f.SetDraft(in.Value))
}

// AdvanceSurvey godoc
// @Summary      Validate, persist, and move to the next question
// @Tags         survey
// @Produce      json
// @Param        id  path  string  true  "session token"
// @Success      200  {object}  flow.Step
// @Router       /survey/sessions/{id}/advance [post]
func AdvanceSurvey(c *fiber.Ctx) error {
	f, err := lookupFlow(c)
	if f == nil {
		return err
	}

	step, aerr := f.Advance(c.Context())
	if aerr != nil {
		switch {
		case errors.Is(aerr, responses.ErrAnswerRequired):
			return utils.HandleError(c, fiber.StatusUnprocessableEntity, "This question is required")
		case errors.Is(aerr, flow.ErrSubmissionInFlight):
			return utils.HandleError(c, fiber.StatusConflict, "A submission is already in progress")
		case errors.Is(aerr, sessions.ErrSessionNotFound):
			return utils.HandleError(c, fiber.StatusNotFound, "Survey session not found")
		default:
			log.Printf("❌ Failed to save response: %v", aerr)
			return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to save response. Please try again.")
		}
	}

	if step.Completed {
		jobs.EnqueueRefreshStats("session-completed")
	}
	return c.JSON(step)
}

// RetreatSurvey godoc
// @Summary      Go back one question
// @Tags         survey
// @Produce      json
// @Param        id  path  string  true  "session token"
// @Success      200  {object}  flow.Step
// @Router       /survey/sessions/{id}/retreat [post]
func RetreatSurvey(c *fiber.Ctx) error {
	f, err := lookupFlow(c)
	if f == nil {
		return err
	}

	step, rerr := f.Retreat(c.Context())
	if rerr != nil {
		if errors.Is(rerr, flow.ErrSubmissionInFlight) {
			return utils.HandleError(c, fiber.StatusConflict, "A submission is already in progress")
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to go back. Please try again.")
	}
	return c.JSON(step)
}

// GetSurveyQuestions godoc
// @Summary      Active questions in display order (landing page count)
// @Tags         survey
// @Produce      json
// @Success      200  {array}  models.Question
// @Router       /survey/questions [get]
func GetSurveyQuestions(c *fiber.Ctx) error {
	qs, err := questions.ListActiveOrdered(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to load survey questions")
	}
	return c.JSON(qs)
}

// lookupFlow คืน flow ของ session ใน path param - nil เมื่อตอบ error ไปแล้ว
func lookupFlow(c *fiber.Ctx) (*flow.Flow, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.HandleError(c, fiber.StatusBadRequest, "Invalid session token")
	}

	f, err := flows.Get(id)
	if err != nil {
		return nil, utils.HandleError(c, fiber.StatusNotFound, "Survey session not found")
	}
	return f, nil
}
