package models

import "time"

// HistoryRecord is one persisted query and its outcome.
type HistoryRecord struct {
	ID             string    `json:"id"`
	StoreRef       string    `json:"storeRef"`
	Question       string    `json:"question"`
	Answer         string    `json:"answer"`
	IsFound        bool      `json:"isFound"`
	CitationCount  int       `json:"citationCount"`
	ResponseTimeMs int64     `json:"responseTimeMs"`
	CreatedAt      time.Time `json:"createdAt"`
}
