package models

import "time"

// QuestionType ประเภทคำถามที่ระบบรองรับ
type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"
	QuestionTypeScale          QuestionType = "scale" // 1-5
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
)

// ขอบเขตของคำตอบแบบ scale
const (
	ScaleMin = 1
	ScaleMax = 5
)

// Question คำถามหนึ่งข้อใน catalog
// เรียงลำดับ active questions ด้วย displayOrder แล้วตัดสินด้วย _id เมื่อซ้ำกัน
type Question struct {
	ID           int                    `bson:"_id" json:"id"`
	QuestionText string                 `bson:"questionText" json:"questionText"`
	QuestionType QuestionType           `bson:"questionType" json:"questionType"`
	Options      map[string]interface{} `bson:"options,omitempty" json:"options,omitempty"` // payload เฉพาะ type เช่น choice list (core ไม่ตีความ)
	IsRequired   bool                   `bson:"isRequired" json:"isRequired"`
	DisplayOrder int                    `bson:"displayOrder" json:"displayOrder"`
	IsActive     bool                   `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time              `bson:"updatedAt" json:"updatedAt"`
}
