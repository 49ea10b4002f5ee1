package responses

import (
	DB "Backend-PackSurvey/src/database"
	"Backend-PackSurvey/src/models"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoStore เก็บคำตอบลง collection "responses"
// unique index (sessionId, questionId) ใน database.EnsureIndexes เป็น backstop ของ upsert key
type mongoStore struct{}

func NewMongoStore() Store {
	return mongoStore{}
}

// Upsert เขียนทับคำตอบเดิมของ (sessionId, questionId) หรือแทรกใหม่ใน write เดียว
// ต้อง $unset ฝั่ง variant ที่ไม่ได้ใช้ เผื่อคำตอบใหม่เปลี่ยนชนิดจาก text เป็น structured
func (mongoStore) Upsert(ctx context.Context, r *models.SurveyResponse) error {
	filter := bson.M{"sessionId": r.SessionID, "questionId": r.QuestionID}

	set := bson.M{
		"submittedAt": r.SubmittedAt,
		"userAgent":   r.UserAgent,
	}
	unset := bson.M{}
	if r.ResponseText != nil {
		set["responseText"] = *r.ResponseText
		unset["responseData"] = ""
	} else {
		set["responseData"] = r.ResponseData
		unset["responseText"] = ""
	}

	update := bson.M{
		"$set":         set,
		"$unset":       unset,
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
	}

	_, err := DB.ResponseCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert response: %w", err)
	}
	return nil
}

func (mongoStore) Find(ctx context.Context, sessionID string, questionID int) (*models.SurveyResponse, error) {
	var resp models.SurveyResponse
	err := DB.ResponseCollection.FindOne(ctx, bson.M{
		"sessionId":  sessionID,
		"questionId": questionID,
	}).Decode(&resp)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find response: %w", err)
	}
	return &resp, nil
}

// CountForSession นับจำนวนข้อที่มีคำตอบแล้วใน session โดยจำกัดเฉพาะคำถามใน snapshot
// upsert key การันตีว่าแต่ละข้อนับได้ครั้งเดียว
func (mongoStore) CountForSession(ctx context.Context, sessionID string, questionIDs []int) (int, error) {
	filter := bson.M{
		"sessionId":  sessionID,
		"questionId": bson.M{"$in": questionIDs},
	}
	count, err := DB.ResponseCollection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return int(count), nil
}

// ListAll ดึงคำตอบทั้งหมด เรียงส่งล่าสุดก่อน (หน้า admin และ export)
func ListAll(ctx context.Context) ([]models.SurveyResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := DB.ResponseCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch responses: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.SurveyResponse
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode responses: %w", err)
	}
	return result, nil
}
