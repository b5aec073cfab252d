package entities

import "encoding/json"

// QueueLoadLevel describes how busy an OPD queue is
type QueueLoadLevel string

const (
	QueueLoadHigh     QueueLoadLevel = "High Load"
	QueueLoadModerate QueueLoadLevel = "Moderate Load"
)

const highLoadRatio = 0.7

// OPDQueue is the token queue for one department's outpatient counter
type OPDQueue struct {
	ID             string `json:"id"`
	Department     string `json:"department"`
	Doctor         string `json:"doctor"`
	CurrentToken   int    `json:"current_token"`
	TotalTokens    int    `json:"total_tokens"`
	AvgWaitMinutes int    `json:"avg_wait_minutes"`
}

// LoadLevel is High Load once more than 70% of tokens are served
func (q *OPDQueue) LoadLevel() QueueLoadLevel {
	if q.TotalTokens > 0 && float64(q.CurrentToken)/float64(q.TotalTokens) > highLoadRatio {
		return QueueLoadHigh
	}
	return QueueLoadModerate
}

// MarshalJSON includes the derived load level
func (q OPDQueue) MarshalJSON() ([]byte, error) {
	type queue OPDQueue
	return json.Marshal(struct {
		queue
		LoadLevel QueueLoadLevel `json:"load_level"`
	}{
		queue:     queue(q),
		LoadLevel: q.LoadLevel(),
	})
}
