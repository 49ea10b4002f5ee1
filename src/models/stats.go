package models

// DashboardStats ตัวเลขสรุปบนหน้า admin dashboard
type DashboardStats struct {
	TotalQuestions int     `json:"totalQuestions"` // เฉพาะ active
	TotalResponses int     `json:"totalResponses"`
	TotalSessions  int     `json:"totalSessions"`
	CompletionRate float64 `json:"completionRate"` // เปอร์เซ็นต์, 0 เมื่อยังไม่มี session
}
