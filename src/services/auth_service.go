package services

import (
	"Backend-PackSurvey/src/database"
	"Backend-PackSurvey/src/models"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// AuthenticateUser ตรวจ email/password กับ user ใน store
// ใช้เฉพาะฝั่ง admin - respondent flow ไม่ต้อง login
func AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := database.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	user.Password = ""
	return &user, nil
}
