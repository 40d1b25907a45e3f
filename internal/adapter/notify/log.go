package notify

import (
	"context"

	"github.com/vertextoedge/space-reclaimer/internal/port"
	"go.uber.org/zap"
)

// LogNotifier writes notifications to the application log
type LogNotifier struct {
	logger *zap.Logger
}

// Ensure LogNotifier implements port.Notifier
var _ port.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the message at the matching level
func (n *LogNotifier) Notify(_ context.Context, level port.Level, message string) error {
	switch level {
	case port.LevelInfo:
		n.logger.Info(message)
	case port.LevelWarning:
		n.logger.Warn(message, zap.Bool("run_stopped", true))
	default:
		n.logger.Error(message, zap.Bool("run_stopped", true))
	}
	return nil
}
