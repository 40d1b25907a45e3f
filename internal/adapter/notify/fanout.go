package notify

import (
	"context"

	"github.com/vertextoedge/space-reclaimer/internal/port"
	"go.uber.org/zap"
)

// Fanout delivers every notification to all sinks. A failing sink is
// logged and does not stop delivery to the others.
type Fanout struct {
	sinks  []port.Notifier
	logger *zap.Logger
}

// Ensure Fanout implements port.Notifier
var _ port.Notifier = (*Fanout)(nil)

// NewFanout creates a new Fanout over the given sinks
func NewFanout(logger *zap.Logger, sinks ...port.Notifier) *Fanout {
	return &Fanout{sinks: sinks, logger: logger}
}

// Notify delivers to each sink and always returns nil
func (f *Fanout) Notify(ctx context.Context, level port.Level, message string) error {
	for _, sink := range f.sinks {
		if err := sink.Notify(ctx, level, message); err != nil {
			f.logger.Warn("notification delivery failed",
				zap.String("level", level.String()),
				zap.Error(err))
		}
	}
	return nil
}
