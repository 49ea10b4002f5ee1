package routes

import (
	"Backend-PackSurvey/src/controllers"

	"github.com/gofiber/fiber/v2"
)

// surveyRoutes กำหนด route ฝั่งผู้ตอบแบบสอบถาม (ไม่ต้อง login)
func surveyRoutes(app *fiber.App) {
	survey := app.Group("/survey")

	survey.Get("/questions", controllers.GetSurveyQuestions) // 📋 คำถามที่เปิดใช้งาน
	survey.Post("/sessions", controllers.StartSurvey)        // ▶️ เริ่ม session ใหม่

	session := survey.Group("/sessions/:id")
	session.Get("/current", controllers.GetCurrentStep)
	session.Put("/draft", controllers.SetDraft)
	session.Post("/advance", controllers.AdvanceSurvey)
	session.Post("/retreat", controllers.RetreatSurvey)
}
