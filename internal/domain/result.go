package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/vertextoedge/space-reclaimer/internal/domain/vo"
)

// Outcome is the terminal result of a run
type Outcome string

// Outcome constants
const (
	OutcomeAlreadySatisfied Outcome = "already_satisfied"
	OutcomeGoalMet          Outcome = "goal_met"
	OutcomeExhausted        Outcome = "exhausted"
	OutcomeFailed           Outcome = "failed"
)

// IsSuccess returns true for the three non-error outcomes
func (o Outcome) IsSuccess() bool {
	return o == OutcomeAlreadySatisfied || o == OutcomeGoalMet || o == OutcomeExhausted
}

// DeletedDirectory records one directory removed during a run
type DeletedDirectory struct {
	Name           string
	Path           string
	CreatedAt      time.Time
	SizeBytes      int64
	SkippedEntries int
	FreeBytesAfter uint64
	DeletedAt      time.Time
}

// RunResult summarizes one run. Deleted directories are only ever added
// through RecordDeletion so the counters always match the list.
type RunResult struct {
	ID              int64 // Journal id, zero until recorded
	TargetPath      string
	ThresholdBytes  int64
	Outcome         Outcome
	FreeBytesBefore uint64
	FreeBytesAfter  uint64
	StartedAt       time.Time
	Elapsed         time.Duration
	Error           string
	States          []RunState // States visited, in order; not persisted

	DirectoriesDeleted int
	BytesFreed         int64
	Deleted            []DeletedDirectory
}

// NewRunResult creates an empty result for the target
func NewRunResult(target ReclaimTarget, startedAt time.Time) *RunResult {
	return &RunResult{
		TargetPath:     target.Path(),
		ThresholdBytes: target.ThresholdBytes(),
		StartedAt:      startedAt,
	}
}

// RecordDeletion adds a deleted directory to the result
func (r *RunResult) RecordDeletion(d DeletedDirectory) {
	r.Deleted = append(r.Deleted, d)
	r.DirectoriesDeleted++
	r.BytesFreed += d.SizeBytes
	r.FreeBytesAfter = d.FreeBytesAfter
}

// Freed returns BytesFreed as a ByteSize
func (r *RunResult) Freed() vo.ByteSize {
	if r.BytesFreed < 0 {
		return vo.ByteSize{}
	}
	return vo.MustByteSize(r.BytesFreed)
}

// Summary returns the operator-facing report of the run
func (r *RunResult) Summary() string {
	freed := r.Freed()
	var b strings.Builder
	fmt.Fprintf(&b, "Directories deleted: %d\n", r.DirectoriesDeleted)
	fmt.Fprintf(&b, "Space freed: %d bytes, %d KiB, %d MiB, %d GiB (%s)\n",
		freed.Bytes(), freed.KiB(), freed.MiB(), freed.GiB(), freed)
	fmt.Fprintf(&b, "Elapsed: %d ms, %d s", r.Elapsed.Milliseconds(), int64(r.Elapsed/time.Second))
	return b.String()
}
