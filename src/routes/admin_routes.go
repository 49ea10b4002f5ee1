package routes

import (
	"Backend-PackSurvey/src/controllers"
	"Backend-PackSurvey/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// adminRoutes กำหนด route ฝั่งผู้ดูแลระบบ ต้องมี JWT และ role admin
func adminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.AuthJWT, middleware.RequireAdmin)

	admin.Get("/questions", controllers.GetAllQuestions)
	admin.Post("/questions", controllers.CreateQuestion)
	admin.Put("/questions/:id", controllers.UpdateQuestion)
	admin.Delete("/questions/:id", controllers.DeleteQuestion)

	admin.Get("/stats", controllers.GetDashboardStats)
	admin.Get("/sessions", controllers.ListSessions)
	admin.Get("/responses", controllers.ListResponses)

	admin.Get("/export/responses", controllers.ExportResponsesCSV)
	admin.Get("/export/sessions", controllers.ExportSessionsCSV)
}
