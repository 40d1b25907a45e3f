package port

import "github.com/vertextoedge/space-reclaimer/internal/domain"

// RunJournal keeps an audit trail of finished runs.
// It is write-mostly: the reclaimer never reads it back.
type RunJournal interface {
	// RecordRun stores the result and its deleted directories, setting result.ID
	RecordRun(result *domain.RunResult) error

	// RecentRuns returns up to limit runs, newest first
	RecentRuns(limit int) ([]*domain.RunResult, error)
}
