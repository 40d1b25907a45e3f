package port

import "context"

// Level is the severity of an operator notification
type Level int

// Notification levels
const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// String returns the level name
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// EndsRun reports whether a message at this level terminates the run
func (l Level) EndsRun() bool {
	return l >= LevelWarning
}

// Notifier delivers leveled messages to operators
type Notifier interface {
	Notify(ctx context.Context, level Level, message string) error
}
