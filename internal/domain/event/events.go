package event

import (
	"time"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
)

// Event names
const (
	NameReclaimStarted     = "reclaim.started"
	NameDirectoryReclaimed = "directory.reclaimed"
	NameReclaimCompleted   = "reclaim.completed"
	NameReclaimFailed      = "reclaim.failed"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	// EventName returns the name of the event
	EventName() string
	// OccurredAt returns when the event occurred
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// ReclaimStarted is raised when pre-flight passed and deletion is about to begin
type ReclaimStarted struct {
	BaseEvent
	TargetPath     string
	Root           string
	ThresholdBytes int64
	FreeBytes      uint64
	Candidates     int
}

// EventName returns the event name
func (e ReclaimStarted) EventName() string {
	return NameReclaimStarted
}

// NewReclaimStarted creates a new ReclaimStarted event
func NewReclaimStarted(targetPath, root string, thresholdBytes int64, freeBytes uint64, candidates int) ReclaimStarted {
	return ReclaimStarted{
		BaseEvent:      BaseEvent{Timestamp: time.Now()},
		TargetPath:     targetPath,
		Root:           root,
		ThresholdBytes: thresholdBytes,
		FreeBytes:      freeBytes,
		Candidates:     candidates,
	}
}

// DirectoryReclaimed is raised after a directory tree was deleted
type DirectoryReclaimed struct {
	BaseEvent
	Path           string
	CreatedAt      time.Time
	Size           int64
	SkippedEntries int
	FreeBytesAfter uint64
	Position       int // 1-based position in deletion order
}

// EventName returns the event name
func (e DirectoryReclaimed) EventName() string {
	return NameDirectoryReclaimed
}

// NewDirectoryReclaimed creates a new DirectoryReclaimed event
func NewDirectoryReclaimed(d domain.DeletedDirectory, position int) DirectoryReclaimed {
	return DirectoryReclaimed{
		BaseEvent:      BaseEvent{Timestamp: time.Now()},
		Path:           d.Path,
		CreatedAt:      d.CreatedAt,
		Size:           d.SizeBytes,
		SkippedEntries: d.SkippedEntries,
		FreeBytesAfter: d.FreeBytesAfter,
		Position:       position,
	}
}

// ReclaimCompleted is raised when a run ends without error
type ReclaimCompleted struct {
	BaseEvent
	TargetPath         string
	Outcome            domain.Outcome
	DirectoriesDeleted int
	BytesFreed         int64
	FreeBytesAfter     uint64
	Duration           time.Duration
}

// EventName returns the event name
func (e ReclaimCompleted) EventName() string {
	return NameReclaimCompleted
}

// NewReclaimCompleted creates a new ReclaimCompleted event from a result
func NewReclaimCompleted(r *domain.RunResult) ReclaimCompleted {
	return ReclaimCompleted{
		BaseEvent:          BaseEvent{Timestamp: time.Now()},
		TargetPath:         r.TargetPath,
		Outcome:            r.Outcome,
		DirectoriesDeleted: r.DirectoriesDeleted,
		BytesFreed:         r.BytesFreed,
		FreeBytesAfter:     r.FreeBytesAfter,
		Duration:           r.Elapsed,
	}
}

// ReclaimFailed is raised when a run ends with an error
type ReclaimFailed struct {
	BaseEvent
	TargetPath         string
	Error              string
	DirectoriesDeleted int
	BytesFreed         int64
}

// EventName returns the event name
func (e ReclaimFailed) EventName() string {
	return NameReclaimFailed
}

// NewReclaimFailed creates a new ReclaimFailed event
func NewReclaimFailed(r *domain.RunResult, err error) ReclaimFailed {
	return ReclaimFailed{
		BaseEvent:          BaseEvent{Timestamp: time.Now()},
		TargetPath:         r.TargetPath,
		Error:              err.Error(),
		DirectoriesDeleted: r.DirectoriesDeleted,
		BytesFreed:         r.BytesFreed,
	}
}
