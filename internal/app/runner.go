package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
	"github.com/vertextoedge/space-reclaimer/internal/domain/vo"
	"github.com/vertextoedge/space-reclaimer/internal/port"
	"go.uber.org/zap"
)

// Exit codes returned to the shell
const (
	ExitOK      = 0
	ExitError   = 1
	ExitWarning = 2
)

// Reclaimer is the reclaim pass the runner drives
type Reclaimer interface {
	Run(ctx context.Context, target domain.ReclaimTarget) (*domain.RunResult, error)
}

// Runner executes one reclaim pass, journals it and notifies operators.
// It never exits the process; callers map the returned level to an exit code.
type Runner struct {
	reclaimer Reclaimer
	journal   port.RunJournal
	notifier  port.Notifier
	logger    *zap.Logger
}

// NewRunner creates a new Runner. journal may be nil.
func NewRunner(reclaimer Reclaimer, journal port.RunJournal, notifier port.Notifier, logger *zap.Logger) *Runner {
	return &Runner{
		reclaimer: reclaimer,
		journal:   journal,
		notifier:  notifier,
		logger:    logger,
	}
}

// Run reclaims space for target and returns the level of the final notification
func (r *Runner) Run(ctx context.Context, target domain.ReclaimTarget) (port.Level, *domain.RunResult) {
	result, err := r.reclaimer.Run(ctx, target)

	if r.journal != nil && result != nil {
		if jerr := r.journal.RecordRun(result); jerr != nil {
			r.logger.Error("failed to record run in journal", zap.Error(jerr))
		}
	}

	// The final report must reach every sink even after an interrupt
	level, message := Report(result, err)
	if nerr := r.notifier.Notify(context.WithoutCancel(ctx), level, message); nerr != nil {
		r.logger.Error("failed to deliver notification", zap.Error(nerr))
	}
	return level, result
}

// Classify maps an error to the notification level it is reported at
func Classify(err error) port.Level {
	switch {
	case err == nil:
		return port.LevelInfo
	case domain.IsConfigurationError(err), domain.IsVolumeError(err):
		return port.LevelWarning
	default:
		return port.LevelError
	}
}

// ExitCode maps a notification level to the process exit code
func ExitCode(level port.Level) int {
	switch {
	case !level.EndsRun():
		return ExitOK
	case level == port.LevelWarning:
		return ExitWarning
	default:
		return ExitError
	}
}

// Describe renders an error as an operator message
func Describe(err error) string {
	if Classify(err) == port.LevelError {
		return fmt.Sprintf("A critical error occurred: %v\nThe run was stopped.", err)
	}
	return fmt.Sprintf("%v\nThe run was stopped.", err)
}

// Report builds the final notification for a run
func Report(result *domain.RunResult, err error) (port.Level, string) {
	if err == nil && result != nil && !result.Outcome.IsSuccess() {
		err = fmt.Errorf("run ended with outcome %q: %s", result.Outcome, result.Error)
	}
	if err != nil {
		level := Classify(err)
		message := Describe(err)
		if errors.Is(err, context.Canceled) {
			message = "The run was interrupted."
		}
		if result != nil && result.DirectoriesDeleted > 0 {
			message += "\nProgress before stopping:\n" + result.Summary()
		}
		return level, message
	}

	switch result.Outcome {
	case domain.OutcomeAlreadySatisfied:
		free := vo.ByteSizeFromUint64(result.FreeBytesBefore)
		threshold := vo.MustByteSize(result.ThresholdBytes)
		return port.LevelInfo, fmt.Sprintf(
			"Free space %d GiB (%s) is at or above the %d GiB threshold. Nothing was deleted.",
			free.GiB(), free, threshold.GiB())
	case domain.OutcomeExhausted:
		return port.LevelInfo, result.Summary() +
			"\nAll directories were deleted but the free space threshold was not reached."
	default:
		return port.LevelInfo, result.Summary()
	}
}
