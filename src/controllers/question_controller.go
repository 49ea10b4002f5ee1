package controllers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Backend-PackSurvey/src/jobs"
	"Backend-PackSurvey/src/models"
	"Backend-PackSurvey/src/services/questions"
	"Backend-PackSurvey/src/utils"
)

var validate = validator.New()

type questionIn struct {
	QuestionText string                 `json:"questionText" validate:"required"`
	QuestionType string                 `json:"questionType" validate:"required,oneof=text scale multiple_choice"`
	Options      map[string]interface{} `json:"options,omitempty"`
	IsRequired   *bool                  `json:"isRequired"` // ไม่ส่งมา = true
	DisplayOrder int                    `json:"displayOrder" validate:"gte=0"`
	IsActive     *bool                  `json:"isActive"` // ไม่ส่งมา = true
}

func (in questionIn) toModel() models.Question {
	q := models.Question{
		QuestionText: in.QuestionText,
		QuestionType: models.QuestionType(in.QuestionType),
		Options:      in.Options,
		IsRequired:   true,
		DisplayOrder: in.DisplayOrder,
		IsActive:     true,
	}
	if in.IsRequired != nil {
		q.IsRequired = *in.IsRequired
	}
	if in.IsActive != nil {
		q.IsActive = *in.IsActive
	}
	return q
}

// GetAllQuestions godoc
// @Summary      List every question, inactive included
// @Tags         questions
// @Produce      json
// @Success      200  {array}  models.Question
// @Router       /admin/questions [get]
func GetAllQuestions(c *fiber.Ctx) error {
	qs, err := questions.ListAll(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to load questions")
	}
	return c.JSON(qs)
}

// CreateQuestion godoc
// @Summary      Create a new question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Question
// @Router       /admin/questions [post]
func CreateQuestion(c *fiber.Ctx) error {
	var in questionIn
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "questionText and a valid questionType are required")
	}

	q := in.toModel()
	if err := questions.Create(c.Context(), &q); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to create question")
	}

	jobs.EnqueueRefreshStats("question-created")
	return c.Status(fiber.StatusCreated).JSON(q)
}

// UpdateQuestion godoc
// @Summary      Update an existing question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "question id"
// @Success      200  {object}  models.Question
// @Router       /admin/questions/{id} [put]
func UpdateQuestion(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid question ID")
	}

	var in questionIn
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "questionText and a valid questionType are required")
	}

	q := in.toModel()
	if err := questions.Update(c.Context(), id, &q); err != nil {
		if err == questions.ErrQuestionNotFound {
			return utils.HandleError(c, fiber.StatusNotFound, "Question not found")
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to update question")
	}

	jobs.EnqueueRefreshStats("question-updated")

	updated, err := questions.GetByID(c.Context(), id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to load updated question")
	}
	return c.JSON(updated)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         questions
// @Param        id  path  int  true  "question id"
// @Success      204
// @Router       /admin/questions/{id} [delete]
func DeleteQuestion(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid question ID")
	}

	if err := questions.Delete(c.Context(), id); err != nil {
		if err == questions.ErrQuestionNotFound {
			return utils.HandleError(c, fiber.StatusNotFound, "Question not found")
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to delete question")
	}

	jobs.EnqueueRefreshStats("question-deleted")
	return c.SendStatus(fiber.StatusNoContent)
}
