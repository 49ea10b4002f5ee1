package models

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerKind ชนิดของค่าคำตอบใน AnswerValue
type AnswerKind int

const (
	AnswerEmpty AnswerKind = iota
	AnswerText
	AnswerStructured
)

// AnswerValue ค่าคำตอบแบบ tagged variant - เป็น text หรือ structured payload
// อย่างใดอย่างหนึ่งเท่านั้น ไม่มีทางถูกตั้งค่าพร้อมกันทั้งสองแบบ
type AnswerValue struct {
	Kind AnswerKind
	Text string
	Data map[string]interface{}
}

// TextAnswer สร้างคำตอบแบบข้อความ (ข้อความว่างถือว่า empty)
func TextAnswer(s string) AnswerValue {
	if strings.TrimSpace(s) == "" {
		return AnswerValue{}
	}
	return AnswerValue{Kind: AnswerText, Text: s}
}

// StructuredAnswer สร้างคำตอบแบบ structured payload
func StructuredAnswer(data map[string]interface{}) AnswerValue {
	if len(data) == 0 {
		return AnswerValue{}
	}
	return AnswerValue{Kind: AnswerStructured, Data: data}
}

// IsEmpty true เมื่อไม่มีคำตอบ (ใช้ตัดสิน required validation และการ skip)
func (v AnswerValue) IsEmpty() bool {
	return v.Kind == AnswerEmpty
}

// UnmarshalJSON รับค่าจาก client ได้หลายรูป:
// string -> text, object -> structured, ค่า scalar อื่น -> structured {"value": x}
func (v *AnswerValue) UnmarshalJSON(raw []byte) error {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		*v = AnswerValue{}
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*v = TextAnswer(s)
		return nil
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err == nil {
		*v = StructuredAnswer(obj)
		return nil
	}

	// number / bool / array ห่อไว้ใน {"value": ...} แบบเดียวกับ response_data เดิม
	var any interface{}
	if err := json.Unmarshal(raw, &any); err != nil {
		return err
	}
	*v = StructuredAnswer(map[string]interface{}{"value": any})
	return nil
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AnswerText:
		return json.Marshal(v.Text)
	case AnswerStructured:
		return json.Marshal(v.Data)
	default:
		return []byte("null"), nil
	}
}

// SurveyResponse คำตอบหนึ่งข้อของหนึ่ง session
// key ความ unique คือ (sessionId, questionId) - การส่งซ้ำจะ upsert ทับของเดิม
type SurveyResponse struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	SessionID    string                 `bson:"sessionId" json:"sessionId"`
	QuestionID   int                    `bson:"questionId" json:"questionId"`
	ResponseText *string                `bson:"responseText,omitempty" json:"responseText,omitempty"`
	ResponseData map[string]interface{} `bson:"responseData,omitempty" json:"responseData,omitempty"`
	SubmittedAt  time.Time              `bson:"submittedAt" json:"submittedAt"`
	UserAgent    string                 `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
}

// SetAnswer แปลง AnswerValue ลง field ที่ mutually exclusive ของ document
func (r *SurveyResponse) SetAnswer(v AnswerValue) {
	r.ResponseText = nil
	r.ResponseData = nil
	switch v.Kind {
	case AnswerText:
		text := v.Text
		r.ResponseText = &text
	case AnswerStructured:
		r.ResponseData = v.Data
	}
}

// Answer อ่านค่ากลับเป็น AnswerValue (ใช้ตอน retreat เติม draft เดิม)
func (r *SurveyResponse) Answer() AnswerValue {
	if r.ResponseText != nil {
		return TextAnswer(*r.ResponseText)
	}
	if r.ResponseData != nil {
		return StructuredAnswer(r.ResponseData)
	}
	return AnswerValue{}
}
