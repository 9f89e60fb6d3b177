package model

import "time"

// RunStatus tracks a persisted aggregation run through its lifecycle.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is a persisted aggregation run. Result is nil until the run
// completes; Error is set only on failure.
type Run struct {
	ID        string           `json:"id"`
	Company   string           `json:"company"`
	Domain    string           `json:"domain,omitempty"`
	Status    RunStatus        `json:"status"`
	Result    *AggregateResult `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
