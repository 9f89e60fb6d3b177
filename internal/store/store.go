// Package store persists aggregation runs so past results can be fetched
// without re-spending source credits. Two backends: Postgres for shared
// deployments, SQLite for single-machine use.
package store

import (
	"context"
	"errors"

	"github.com/sells-group/adintel/internal/model"
)

// ErrRunNotFound is returned by GetRun when no run exists for the ID.
var ErrRunNotFound = errors.New("run not found")

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status  model.RunStatus `json:"status,omitempty"`
	Company string          `json:"company,omitempty"`
	Limit   int             `json:"limit,omitempty"`
	Offset  int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for aggregation runs. CreateRun
// takes the caller's run ID so the stored row matches the ID embedded in
// the eventual result.
type Store interface {
	CreateRun(ctx context.Context, runID, company, domain string) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, result *model.AggregateResult) error
	FailRun(ctx context.Context, runID, message string) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
