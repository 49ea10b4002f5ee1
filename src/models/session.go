package models

import "time"

// SurveySession การทำแบบสอบถามของผู้ตอบหนึ่งคน ตั้งแต่เริ่มจนจบ
// _id คือ token ที่ client สร้างเอง (UUID) - opaque สำหรับชั้น store
//
// Invariants:
//   - 0 <= CompletedQuestions <= TotalQuestions
//   - IsCompleted == true ก็ต่อเมื่อ CompletedAt ถูกตั้งค่า
//   - TotalQuestions คือ snapshot ตอนเริ่ม session ไม่เปลี่ยนแม้ catalog ถูกแก้
type SurveySession struct {
	ID                 string     `bson:"_id" json:"id"`
	StartedAt          time.Time  `bson:"startedAt" json:"startedAt"`
	CompletedAt        *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	TotalQuestions     int        `bson:"totalQuestions" json:"totalQuestions"`
	CompletedQuestions int        `bson:"completedQuestions" json:"completedQuestions"`
	IsCompleted        bool       `bson:"isCompleted" json:"isCompleted"`
}
