package models

import "time"

// HistoryEntry records one processing request for the history endpoint.
type HistoryEntry struct {
	ID             string    `json:"id"`
	SchemaFile     string    `json:"schemaFile"`
	Query          string    `json:"query"`
	CorrectedQuery string    `json:"correctedQuery,omitempty"`
	OutputFormat   string    `json:"outputFormat"`
	Threshold      float64   `json:"threshold"`
	TableCount     int       `json:"tableCount"`
	TopScore       float64   `json:"topScore"`
	DurationMs     int64     `json:"durationMs"`
	CreatedAt      time.Time `json:"createdAt"`
}
