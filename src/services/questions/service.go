package questions

import (
	DB "Backend-PackSurvey/src/database"
	"Backend-PackSurvey/src/models"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrQuestionNotFound = errors.New("question not found")

// ListActiveOrdered ดึงเฉพาะคำถาม active เรียงตาม displayOrder (ตัดสินด้วย _id เมื่อเท่ากัน)
// Sequencing controller snapshot ลำดับนี้ครั้งเดียวตอนเริ่ม session
func ListActiveOrdered(ctx context.Context) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "displayOrder", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := DB.QuestionCollection.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find active questions: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.Question
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	return result, nil
}

// ListAll ดึงคำถามทั้งหมดรวม inactive สำหรับหน้า editor
func ListAll(ctx context.Context) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "displayOrder", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := DB.QuestionCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.Question
	if err = cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}
	return result, nil
}

// GetByID ดึงคำถามตาม id
func GetByID(ctx context.Context, id int) (*models.Question, error) {
	var q models.Question
	err := DB.QuestionCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

// Create เพิ่มคำถามใหม่ ตั้ง id ถัดไปจากค่าสูงสุดใน collection
// ถ้าไม่ระบุ displayOrder จะต่อท้ายรายการเดิม
func Create(ctx context.Context, q *models.Question) error {
	nextID, err := nextQuestionID(ctx)
	if err != nil {
		return fmt.Errorf("failed to allocate question id: %w", err)
	}
	q.ID = nextID

	if q.DisplayOrder == 0 {
		count, err := DB.QuestionCollection.CountDocuments(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("failed to count questions: %w", err)
		}
		q.DisplayOrder = int(count) + 1
	}

	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now

	if _, err := DB.QuestionCollection.InsertOne(ctx, q); err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

// Update แก้ไขคำถามเดิม (editor เท่านั้น - core ไม่เขียน catalog)
func Update(ctx context.Context, id int, q *models.Question) error {
	update := bson.M{"$set": bson.M{
		"questionText": q.QuestionText,
		"questionType": q.QuestionType,
		"options":      q.Options,
		"isRequired":   q.IsRequired,
		"displayOrder": q.DisplayOrder,
		"isActive":     q.IsActive,
		"updatedAt":    time.Now().UTC(),
	}}

	result, err := DB.QuestionCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// Delete ลบคำถามออกจาก catalog
func Delete(ctx context.Context, id int) error {
	result, err := DB.QuestionCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func nextQuestionID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var last models.Question
	err := DB.QuestionCollection.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 1, nil
		}
		return 0, err
	}
	return last.ID + 1, nil
}
