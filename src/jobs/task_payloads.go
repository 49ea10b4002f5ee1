package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeRefreshStats = "stats:refresh"

type RefreshStatsPayload struct {
	Reason string `json:"reason"` // เช่น "session-completed", "question-edited"
}

func NewRefreshStatsTask(reason string) (*asynq.Task, error) {
	payload, err := json.Marshal(RefreshStatsPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRefreshStats, payload), nil
}
