package reports

import (
	"Backend-PackSurvey/src/models"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"time"
)

// sentinel สำหรับ response ที่อ้างคำถามซึ่งไม่อยู่ใน catalog แล้ว
const (
	unknownQuestionText = "Unknown Question"
	unknownQuestionType = "unknown"
)

var responseCSVHeader = []string{
	"id", "session_id", "question_id", "question_text", "question_type",
	"answer", "submitted_at", "user_agent",
}

var sessionCSVHeader = []string{
	"id", "started_at", "completed_at", "total_questions",
	"completed_questions", "is_completed",
}

// BuildResponseRows แปลงคำตอบเป็นแถว CSV โดย join ข้อความคำถามตาม question id
func BuildResponseRows(rs []models.SurveyResponse, qByID map[int]models.Question) [][]string {
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		questionText := unknownQuestionText
		questionType := unknownQuestionType
		if q, ok := qByID[r.QuestionID]; ok {
			questionText = q.QuestionText
			questionType = string(q.QuestionType)
		}

		rows = append(rows, []string{
			r.ID.Hex(),
			r.SessionID,
			strconv.Itoa(r.QuestionID),
			questionText,
			questionType,
			renderAnswer(r),
			r.SubmittedAt.Format(time.RFC3339),
			r.UserAgent,
		})
	}
	return rows
}

// BuildSessionRows แปลง session เป็นแถว CSV
func BuildSessionRows(ss []models.SurveySession) [][]string {
	rows := make([][]string, 0, len(ss))
	for _, s := range ss {
		completedAt := ""
		if s.CompletedAt != nil {
			completedAt = s.CompletedAt.Format(time.RFC3339)
		}

		rows = append(rows, []string{
			s.ID,
			s.StartedAt.Format(time.RFC3339),
			completedAt,
			strconv.Itoa(s.TotalQuestions),
			strconv.Itoa(s.CompletedQuestions),
			strconv.FormatBool(s.IsCompleted),
		})
	}
	return rows
}

// renderAnswer แสดงค่าคำตอบเป็น string เดียว - text ตรง ๆ หรือ JSON ของ payload
func renderAnswer(r models.SurveyResponse) string {
	if r.ResponseText != nil {
		return *r.ResponseText
	}
	if r.ResponseData != nil {
		data, err := json.Marshal(r.ResponseData)
		if err == nil {
			return string(data)
		}
	}
	return ""
}

// csvBytes เขียน header + rows เป็น CSV (comma คั่น, field ที่มี comma ถูกครอบ quote)
func csvBytes(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
