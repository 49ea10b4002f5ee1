package controllers

import (
	"github.com/gofiber/fiber/v2"

	"Backend-PackSurvey/src/services/reports"
	"Backend-PackSurvey/src/services/responses"
	"Backend-PackSurvey/src/services/sessions"
	"Backend-PackSurvey/src/utils"
)

// GetDashboardStats godoc
// @Summary      Get survey dashboard statistics
// @Tags         reports
// @Produce      json
// @Success      200  {object}  models.DashboardStats
// @Router       /admin/stats [get]
func GetDashboardStats(c *fiber.Ctx) error {
	stats, err := reports.GetDashboardStats(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to compute statistics")
	}
	return c.JSON(stats)
}

// ListSessions godoc
// @Summary      List all survey sessions, newest first
// @Tags         reports
// @Produce      json
// @Success      200  {array}  models.SurveySession
// @Router       /admin/sessions [get]
func ListSessions(c *fiber.Ctx) error {
	ss, err := sessions.ListAll(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to load sessions")
	}
	return c.JSON(ss)
}

// ListResponses godoc
// @Summary      List all recorded responses, newest first
// @Tags         reports
// @Produce      json
// @Success      200  {array}  models.SurveyResponse
// @Router       /admin/responses [get]
func ListResponses(c *fiber.Ctx) error {
	rs, err := responses.ListAll(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to load responses")
	}
	return c.JSON(rs)
}

// ExportResponsesCSV godoc
// @Summary      Download all responses as a CSV file
// @Tags         reports
// @Produce      text/csv
// @Success      200
// @Router       /admin/export/responses [get]
func ExportResponsesCSV(c *fiber.Ctx) error {
	data, filename, err := reports.ExportResponses(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to export responses")
	}
	return sendCSV(c, data, filename)
}

// ExportSessionsCSV godoc
// @Summary      Download all sessions as a CSV file
// @Tags         reports
// @Produce      text/csv
// @Success      200
// @Router       /admin/export/sessions [get]
func ExportSessionsCSV(c *fiber.Ctx) error {
	data, filename, err := reports.ExportSessions(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to export sessions")
	}
	return sendCSV(c, data, filename)
}

func sendCSV(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
