package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/vertextoedge/space-reclaimer/internal/adapter/filesystem"
	"github.com/vertextoedge/space-reclaimer/internal/adapter/notify"
	"github.com/vertextoedge/space-reclaimer/internal/adapter/sqlite"
	"github.com/vertextoedge/space-reclaimer/internal/app"
	"github.com/vertextoedge/space-reclaimer/internal/config"
	"github.com/vertextoedge/space-reclaimer/internal/domain/event"
	"github.com/vertextoedge/space-reclaimer/internal/fixture"
	"github.com/vertextoedge/space-reclaimer/internal/logger"
	"github.com/vertextoedge/space-reclaimer/internal/port"
	"github.com/vertextoedge/space-reclaimer/internal/service/reclaimer"
	"go.uber.org/zap"
)

const version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to an optional YAML configuration file")
	envPath := flag.String("env", ".env", "Path to an optional dotenv file")
	targetPath := flag.String("path", "", "Directory whose oldest subdirectories are deleted (required)")
	freeSpace := flag.String("freeSpace", "", fmt.Sprintf("Free space to reach, in GiB (default %d)", config.DefaultFreeSpaceGB))
	silent := flag.Bool("silentMode", false, "Do not wait for a key press before exiting")
	testMode := flag.Bool("testmode", false, "Fill -path with generated folders and files instead of reclaiming")
	history := flag.Int("history", 0, "Print the last N journaled runs and exit")
	flag.Usage = usage
	flag.Parse()

	overrides := map[string]interface{}{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			overrides[config.KeyTargetPath] = *targetPath
		case "freeSpace":
			overrides[config.KeyFreeSpace] = *freeSpace
		case "silentMode":
			overrides[config.KeySilent] = *silent
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printBanner(os.Stdout)

	// Load configuration
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: *configPath,
		EnvFile:    *envPath,
		Overrides:  overrides,
	})
	if err != nil {
		// Logger settings are part of the config, so report with defaults
		_ = logger.Init("info", "text")
		defer logger.Sync()
		return finish(ctx, notify.NewLogNotifier(logger.GetZapLogger()), app.Classify(err), app.Describe(err), *silent)
	}

	// Initialize logger
	var logOutputs []string
	if cfg.Logging.File != "" {
		logOutputs = append(logOutputs, cfg.Logging.File)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, logOutputs...); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return app.ExitError
	}
	defer logger.Sync()

	zapLogger := logger.GetZapLogger()
	zapLogger.Debug("starting space-reclaimer",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	notifier := buildNotifier(cfg, zapLogger)

	if *testMode {
		return runFixture(ctx, cfg, notifier, zapLogger)
	}

	// Open run journal
	var journal port.RunJournal
	if cfg.Journal.Path != "" {
		store, err := sqlite.Open(cfg.Journal.Path)
		if err != nil {
			return finish(ctx, notifier, port.LevelError, app.Describe(err), cfg.Silent)
		}
		defer store.Close()
		journal = store
	}

	if *history > 0 {
		if journal == nil {
			return finish(ctx, notifier, port.LevelWarning, "journal.path is not configured; no history is available", cfg.Silent)
		}
		if err := printHistory(os.Stdout, journal, *history); err != nil {
			return finish(ctx, notifier, port.LevelError, app.Describe(err), cfg.Silent)
		}
		return app.ExitOK
	}

	if cfg.Target.FreeSpaceDefaulted {
		_ = notifier.Notify(ctx, port.LevelInfo,
			fmt.Sprintf("-freeSpace is not specified, using the default of %d GiB", config.DefaultFreeSpaceGB))
	}

	target, err := cfg.Target.ReclaimTarget()
	if err != nil {
		return finish(ctx, notifier, app.Classify(err), app.Describe(err), cfg.Silent)
	}

	dispatcher := event.NewInMemoryDispatcher(func(e event.DomainEvent, err error) {
		zapLogger.Warn("event handler failed", zap.String("event", e.EventName()), zap.Error(err))
	})
	dispatcher.Subscribe(event.NewLoggingHandler(zapLogger))
	metrics := event.NewMetricsHandler()
	dispatcher.Subscribe(metrics)

	reclaimerService := reclaimer.New(
		&reclaimer.Config{ProgressInterval: cfg.Reclaim.GetProgressInterval()},
		filesystem.NewInspector(),
		filesystem.NewCatalog(zapLogger),
		dispatcher,
		zapLogger,
	)

	runner := app.NewRunner(reclaimerService, journal, notifier, zapLogger)
	level, _ := runner.Run(ctx, target)

	zapLogger.Debug("run metrics", zap.Any("metrics", metrics.GetMetrics()))

	pause(cfg.Silent)
	return app.ExitCode(level)
}

// buildNotifier combines the log notifier with Slack when configured
func buildNotifier(cfg *config.Config, zapLogger *zap.Logger) port.Notifier {
	sinks := []port.Notifier{notify.NewLogNotifier(zapLogger)}
	if cfg.Slack.SlackEnabled() {
		sinks = append(sinks, notify.NewSlackNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, cfg.Slack.Source))
	}
	return notify.NewFanout(zapLogger, sinks...)
}

// runFixture generates test folders and files under the target path
func runFixture(ctx context.Context, cfg *config.Config, notifier port.Notifier, zapLogger *zap.Logger) int {
	if cfg.Target.Path == "" {
		return finish(ctx, notifier, port.LevelWarning, "-path is required in test mode", cfg.Silent)
	}

	generator := fixture.New(zapLogger, nil)
	report, err := generator.Generate(ctx, cfg.Target.Path, fixture.Options{
		Folders:  cfg.Fixture.Folders,
		Files:    cfg.Fixture.Files,
		FileSize: cfg.Fixture.GetFileSize(),
		Progress: os.Stderr,
	})
	if err != nil {
		return finish(ctx, notifier, port.LevelError, app.Describe(err), cfg.Silent)
	}

	message := fmt.Sprintf("Created %d folders in %d ms and %d files in %d ms under %s",
		len(report.Folders), report.FolderDuration.Milliseconds(),
		len(report.Files), report.FileDuration.Milliseconds(), cfg.Target.Path)
	return finish(ctx, notifier, port.LevelInfo, message, cfg.Silent)
}

// printHistory writes recent journaled runs as a table
func printHistory(w io.Writer, journal port.RunJournal, limit int) error {
	runs, err := journal.RecentRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to read run history: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tTARGET\tOUTCOME\tDELETED\tFREED\tELAPSED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.TargetPath, r.Outcome,
			r.DirectoriesDeleted, r.Freed(), r.Elapsed.Round(1e6))
	}
	return tw.Flush()
}

// finish notifies, pauses unless silent and returns the exit code for level
func finish(ctx context.Context, notifier port.Notifier, level port.Level, message string, silent bool) int {
	_ = notifier.Notify(context.WithoutCancel(ctx), level, message)
	pause(silent)
	return app.ExitCode(level)
}

// pause waits for Enter so a console window opened by a scheduler stays visible
func pause(silent bool) {
	if silent {
		return
	}
	fmt.Fprintln(os.Stderr, "Press Enter to exit...")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}

func printBanner(w io.Writer) {
	fmt.Fprintf(w, `space-reclaimer %s
Frees disk space by deleting the subdirectories of -path, oldest first by
creation time, together with their contents, until the volume has at least
-freeSpace GiB free (default %d). It may delete every subdirectory of -path.

Example:
  space-reclaimer -path /data/recordings -freeSpace 300 -silentMode

`, version, config.DefaultFreeSpaceGB)
}

func usage() {
	printBanner(flag.CommandLine.Output())
	fmt.Fprintln(flag.CommandLine.Output(), "Flags:")
	flag.PrintDefaults()
}
