package seeder

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"Backend-PackSurvey/src/database"
	"Backend-PackSurvey/src/models"
	"Backend-PackSurvey/src/services/questions"
)

// SeedDefaultQuestions สร้างชุดคำถามเริ่มต้นถ้ายังไม่มีคำถามใน database
func SeedDefaultQuestions() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := database.QuestionCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("ℹ️ Questions already exist, skipping question seed")
		return nil
	}

	scaleOptions := map[string]interface{}{
		"min":      models.ScaleMin,
		"max":      models.ScaleMax,
		"minLabel": "Strongly Disagree",
		"maxLabel": "Strongly Agree",
	}

	defaults := []models.Question{
		{
			QuestionText: "How would you rate your overall experience with our product?",
			QuestionType: models.QuestionTypeScale,
			Options:      scaleOptions,
			IsRequired:   true,
		},
		{
			QuestionText: "The product packaging was easy to open and reseal.",
			QuestionType: models.QuestionTypeScale,
			Options:      scaleOptions,
			IsRequired:   true,
		},
		{
			QuestionText: "Where did you purchase this product?",
			QuestionType: models.QuestionTypeMultipleChoice,
			Options: map[string]interface{}{
				"choices": []string{"Supermarket", "Farmers Market", "Online", "Convenience Store", "Other"},
			},
			IsRequired: true,
		},
		{
			QuestionText: "How often do you purchase this product?",
			QuestionType: models.QuestionTypeMultipleChoice,
			Options: map[string]interface{}{
				"choices": []string{"Weekly", "Monthly", "A few times a year", "This was my first time"},
			},
			IsRequired: false,
		},
		{
			QuestionText: "What did you like most about the product?",
			QuestionType: models.QuestionTypeText,
			IsRequired:   false,
		},
		{
			QuestionText: "Do you have any suggestions for how we could improve?",
			QuestionType: models.QuestionTypeText,
			IsRequired:   true,
		},
	}

	for i := range defaults {
		defaults[i].DisplayOrder = i + 1
		defaults[i].IsActive = true
		if err := questions.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d default survey questions", len(defaults))
	return nil
}

// SeedAdminUser สร้าง admin user จาก ADMIN_EMAIL / ADMIN_PASSWORD ถ้ายังไม่มี
func SeedAdminUser() error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := database.UserCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("ℹ️ Admin user already exists, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: string(hash),
		Role:     "admin",
	}
	if _, err := database.UserCollection.InsertOne(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Seeded admin user %s", email)
	return nil
}
