package reclaimer

import (
	"context"
	"time"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
	"github.com/vertextoedge/space-reclaimer/internal/domain/event"
	"github.com/vertextoedge/space-reclaimer/internal/port"
	"github.com/vertextoedge/space-reclaimer/internal/util/ratelimiter"
	"go.uber.org/zap"
)

// Config contains reclaimer configuration
type Config struct {
	// ProgressInterval is the minimum time between progress log entries
	ProgressInterval time.Duration
}

// DefaultConfig returns default reclaimer configuration
func DefaultConfig() *Config {
	return &Config{
		ProgressInterval: 5 * time.Second,
	}
}

// Reclaimer deletes the oldest immediate subdirectories of a target until
// the volume's free space reaches the threshold or no directories remain.
// It holds no state between runs.
type Reclaimer struct {
	validator *Validator
	volumes   port.VolumeInspector
	catalog   port.DirectoryCatalog
	events    event.EventDispatcher
	logger    *zap.Logger
	progress  *ratelimiter.Limiter
	now       func() time.Time
}

// New creates a new Reclaimer. events and logger may be nil.
func New(cfg *Config, volumes port.VolumeInspector, catalog port.DirectoryCatalog, events event.EventDispatcher, logger *zap.Logger) *Reclaimer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if events == nil {
		events = event.NullDispatcher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Reclaimer{
		validator: NewValidator(volumes, logger),
		volumes:   volumes,
		catalog:   catalog,
		events:    events,
		logger:    logger,
		progress:  ratelimiter.New(cfg.ProgressInterval),
		now:       time.Now,
	}
}

// Run performs one reclaim pass.
//
// The returned result is never nil. On error it holds whatever was deleted
// before the failure and its Outcome is domain.OutcomeFailed. The context
// is only checked between directories; a measurement or deletion in
// progress is never interrupted.
func (r *Reclaimer) Run(ctx context.Context, target domain.ReclaimTarget) (*domain.RunResult, error) {
	start := r.now()
	result := domain.NewRunResult(target, start)
	machine := domain.NewRunMachine()
	r.progress.Reset()

	r.transition(machine, domain.RunStateValidating)
	pre, err := r.validator.Check(target)
	if err != nil {
		return r.fail(machine, result, err)
	}
	result.FreeBytesBefore = pre.Volume.Free
	result.FreeBytesAfter = pre.Volume.Free

	if pre.Satisfied {
		r.transition(machine, domain.RunStateShortCircuited)
		return r.finish(machine, result), nil
	}

	r.transition(machine, domain.RunStateIterating)
	entries, err := r.catalog.List(target.Path())
	if err != nil {
		return r.fail(machine, result, err)
	}
	domain.SortByCreation(entries)

	r.events.Dispatch(event.NewReclaimStarted(target.Path(), pre.Root, target.ThresholdBytes(), pre.Volume.Free, len(entries)))

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return r.fail(machine, result, err)
		}

		size, err := entry.Measure(r.catalog.Size)
		if err != nil {
			return r.fail(machine, result, err)
		}

		if err := r.catalog.Remove(entry); err != nil {
			return r.fail(machine, result, err)
		}

		deleted := domain.DeletedDirectory{
			Name:           entry.Name,
			Path:           entry.Path,
			CreatedAt:      entry.CreatedAt,
			SizeBytes:      size.Bytes,
			SkippedEntries: size.Skipped,
			FreeBytesAfter: result.FreeBytesAfter,
			DeletedAt:      r.now(),
		}

		// Free space is re-read from the volume after every deletion; the
		// summed sizes are only reported, never used to decide when to stop.
		usage, err := r.volumes.Usage(pre.Root)
		if err != nil {
			result.RecordDeletion(deleted)
			return r.fail(machine, result, domain.NewIOFailure("query free space", pre.Root, err))
		}
		deleted.FreeBytesAfter = usage.Free
		result.RecordDeletion(deleted)

		r.events.Dispatch(event.NewDirectoryReclaimed(deleted, i+1))
		r.logProgress(result, len(entries))

		if usage.Satisfies(target.ThresholdBytes()) {
			r.transition(machine, domain.RunStateGoalMet)
			return r.finish(machine, result), nil
		}
	}

	r.transition(machine, domain.RunStateExhausted)
	return r.finish(machine, result), nil
}

// finish completes a successful run
func (r *Reclaimer) finish(machine *domain.RunMachine, result *domain.RunResult) *domain.RunResult {
	result.Outcome = machine.State().Outcome()
	result.Elapsed = r.now().Sub(result.StartedAt)
	r.transition(machine, domain.RunStateDone)
	result.States = machine.History()

	r.events.Dispatch(event.NewReclaimCompleted(result))
	return result
}

// fail completes a run that ended with err
func (r *Reclaimer) fail(machine *domain.RunMachine, result *domain.RunResult, err error) (*domain.RunResult, error) {
	r.transition(machine, domain.RunStateFailed)
	result.Outcome = domain.OutcomeFailed
	result.Error = err.Error()
	result.Elapsed = r.now().Sub(result.StartedAt)
	r.transition(machine, domain.RunStateDone)
	result.States = machine.History()

	r.events.Dispatch(event.NewReclaimFailed(result, err))
	return result, err
}

func (r *Reclaimer) transition(machine *domain.RunMachine, next domain.RunState) {
	if err := machine.Transition(next); err != nil {
		r.logger.DPanic("illegal run state transition", zap.Error(err))
	}
}

// logProgress emits at most one progress entry per configured interval
func (r *Reclaimer) logProgress(result *domain.RunResult, total int) {
	if allowed, _ := r.progress.Allow(); !allowed {
		return
	}
	r.logger.Info("reclaim progress",
		zap.Int("deleted", result.DirectoriesDeleted),
		zap.Int("candidates", total),
		zap.Int64("bytes_freed", result.BytesFreed),
		zap.Uint64("free_bytes", result.FreeBytesAfter))
}
