package sessions

import (
	DB "Backend-PackSurvey/src/database"
	"Backend-PackSurvey/src/models"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoStore เก็บ session ลง collection "sessions" (_id = session token)
type mongoStore struct{}

func NewMongoStore() Store {
	return mongoStore{}
}

func (mongoStore) Insert(ctx context.Context, s *models.SurveySession) error {
	_, err := DB.SessionCollection.InsertOne(ctx, s)
	return err
}

func (mongoStore) Get(ctx context.Context, id string) (*models.SurveySession, error) {
	var sess models.SurveySession
	err := DB.SessionCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&sess)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &sess, nil
}

// SetProgress เขียนแบบมี $lt guard - ถ้ามี writer อื่นดันค่าไปไกลกว่าแล้ว
// การเขียนนี้จะไม่ match และ counter ไม่ถอยหลัง
func (mongoStore) SetProgress(ctx context.Context, id string, completed int) error {
	filter := bson.M{
		"_id":                id,
		"completedQuestions": bson.M{"$lt": completed},
	}
	update := bson.M{"$set": bson.M{"completedQuestions": completed}}

	if _, err := DB.SessionCollection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to update session progress: %w", err)
	}
	return nil
}

// MarkCompleted เขียนเฉพาะเมื่อยังไม่ complete - เรียกซ้ำจึงไม่ match และไม่ทับ timestamp เดิม
func (mongoStore) MarkCompleted(ctx context.Context, id string, at time.Time, completed int) error {
	filter := bson.M{"_id": id, "isCompleted": false}
	update := bson.M{"$set": bson.M{
		"isCompleted":        true,
		"completedAt":        at,
		"completedQuestions": completed,
	}}

	if _, err := DB.SessionCollection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// ListAll ดึง session ทั้งหมด เรียงเริ่มล่าสุดก่อน (สำหรับหน้า admin และ export)
func ListAll(ctx context.Context) ([]models.SurveySession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	cursor, err := DB.SessionCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.SurveySession
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return result, nil
}
