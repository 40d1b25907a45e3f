package event

import (
	"sync"

	"go.uber.org/zap"
)

// LoggingHandler logs all events
type LoggingHandler struct {
	logger *zap.Logger
}

// NewLoggingHandler creates a new LoggingHandler
func NewLoggingHandler(logger *zap.Logger) *LoggingHandler {
	return &LoggingHandler{logger: logger}
}

// Handle logs the event
func (h *LoggingHandler) Handle(event DomainEvent) error {
	switch e := event.(type) {
	case ReclaimStarted:
		h.logger.Info("reclaim started",
			zap.String("target", e.TargetPath),
			zap.String("root", e.Root),
			zap.Int64("threshold_bytes", e.ThresholdBytes),
			zap.Uint64("free_bytes", e.FreeBytes),
			zap.Int("candidates", e.Candidates),
		)
	case DirectoryReclaimed:
		h.logger.Debug("directory reclaimed",
			zap.String("path", e.Path),
			zap.Time("created_at", e.CreatedAt),
			zap.Int64("size", e.Size),
			zap.Int("skipped_entries", e.SkippedEntries),
			zap.Uint64("free_bytes_after", e.FreeBytesAfter),
			zap.Int("position", e.Position),
		)
	case ReclaimCompleted:
		h.logger.Info("reclaim completed",
			zap.String("target", e.TargetPath),
			zap.String("outcome", string(e.Outcome)),
			zap.Int("directories_deleted", e.DirectoriesDeleted),
			zap.Int64("bytes_freed", e.BytesFreed),
			zap.Duration("duration", e.Duration),
		)
	case ReclaimFailed:
		h.logger.Error("reclaim failed",
			zap.String("target", e.TargetPath),
			zap.String("error", e.Error),
			zap.Int("directories_deleted", e.DirectoriesDeleted),
			zap.Int64("bytes_freed", e.BytesFreed),
		)
	default:
		h.logger.Debug("domain event",
			zap.String("event", event.EventName()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}
	return nil
}

// HandledEvents returns the events this handler handles
func (h *LoggingHandler) HandledEvents() []string {
	return []string{"*"} // Handle all events
}

// MetricsHandler collects counters from events
type MetricsHandler struct {
	mu                 sync.Mutex
	runsStarted        int64
	runsCompleted      int64
	runsFailed         int64
	directoriesDeleted int64
	bytesFreed         int64
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// Handle updates metrics based on the event
func (h *MetricsHandler) Handle(event DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch e := event.(type) {
	case ReclaimStarted:
		h.runsStarted++
	case DirectoryReclaimed:
		h.directoriesDeleted++
		h.bytesFreed += e.Size
	case ReclaimCompleted:
		h.runsCompleted++
	case ReclaimFailed:
		h.runsFailed++
	}
	return nil
}

// HandledEvents returns the events this handler handles
func (h *MetricsHandler) HandledEvents() []string {
	return []string{
		NameReclaimStarted,
		NameDirectoryReclaimed,
		NameReclaimCompleted,
		NameReclaimFailed,
	}
}

// GetMetrics returns current metrics
func (h *MetricsHandler) GetMetrics() map[string]int64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	return map[string]int64{
		"runs_started":        h.runsStarted,
		"runs_completed":      h.runsCompleted,
		"runs_failed":         h.runsFailed,
		"directories_deleted": h.directoriesDeleted,
		"bytes_freed":         h.bytesFreed,
	}
}
