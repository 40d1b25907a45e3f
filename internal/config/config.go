package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vertextoedge/space-reclaimer/internal/domain"
)

// Configuration keys that can be overridden from the command line
const (
	KeyTargetPath   = "target.path"
	KeyFreeSpace    = "target.free_space_gb"
	KeySilent       = "silent"
	KeySlackToken   = "slack.token"
	KeySlackChannel = "slack.channel_id"
)

// DefaultFreeSpaceGB is the threshold used when none is configured
const DefaultFreeSpaceGB = 100

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "RECLAIMER"

// Config represents the entire application configuration
type Config struct {
	Target  TargetConfig  `mapstructure:"target"`
	Reclaim ReclaimConfig `mapstructure:"reclaim"`
	Logging LoggingConfig `mapstructure:"logging"`
	Journal JournalConfig `mapstructure:"journal"`
	Slack   SlackConfig   `mapstructure:"slack"`
	Fixture FixtureConfig `mapstructure:"fixture"`
	Silent  bool          `mapstructure:"silent"` // Skip the pause before exit
}

// TargetConfig describes what to reclaim
type TargetConfig struct {
	Path        string `mapstructure:"path"`
	FreeSpaceGB string `mapstructure:"free_space_gb"` // Whole GiB, kept raw so bad input can be reported verbatim

	// FreeSpaceDefaulted is set when no threshold was configured anywhere
	FreeSpaceDefaulted bool `mapstructure:"-"`
}

// ReclaimConfig contains reclaim loop settings
type ReclaimConfig struct {
	ProgressInterval string `mapstructure:"progress_interval"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"` // Optional extra log destination
}

// JournalConfig contains run journal settings
type JournalConfig struct {
	Path string `mapstructure:"path"` // SQLite file; empty disables the journal
}

// SlackConfig contains Slack notification settings
type SlackConfig struct {
	Token     string `mapstructure:"token"`
	ChannelID string `mapstructure:"channel_id"`
	Source    string `mapstructure:"source"`
}

// FixtureConfig controls the test-mode folder generator
type FixtureConfig struct {
	Folders    int `mapstructure:"folders"`
	Files      int `mapstructure:"files"`
	FileSizeKB int `mapstructure:"file_size_kb"`
}

// LoadOptions tells Load where to read configuration from
type LoadOptions struct {
	// ConfigFile is an optional YAML file
	ConfigFile string
	// EnvFile is an optional dotenv file, ignored when missing
	EnvFile string
	// Overrides are applied last, keyed by configuration key
	Overrides map[string]interface{}
}

// Load builds the configuration from defaults, the optional YAML file,
// environment variables and overrides, in increasing precedence.
// Every returned error is a *domain.ConfigurationError.
func Load(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if _, err := os.Stat(opts.EnvFile); err == nil {
			if err := godotenv.Load(opts.EnvFile); err != nil {
				return nil, domain.NewConfigurationError("env file", opts.EnvFile, err)
			}
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault(KeyTargetPath, "")
	v.SetDefault(KeySilent, false)
	v.SetDefault("reclaim.progress_interval", "5s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("journal.path", "")
	v.SetDefault("slack.source", defaultSource())
	v.SetDefault("fixture.folders", 800)
	v.SetDefault("fixture.files", 800)
	v.SetDefault("fixture.file_size_kb", 1024)

	// The threshold has no default so an explicit empty value can be told
	// apart from an absent one
	_ = v.BindEnv(KeyFreeSpace)
	_ = v.BindEnv(KeySlackToken, EnvPrefix+"_SLACK_TOKEN", "SLACK_TOKEN")
	_ = v.BindEnv(KeySlackChannel, EnvPrefix+"_SLACK_CHANNEL_ID", "SLACK_CHANNEL_ID")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, domain.NewConfigurationError("config file", opts.ConfigFile, fmt.Errorf("failed to read config file: %w", err))
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, domain.NewConfigurationError("config", "", fmt.Errorf("failed to unmarshal config: %w", err))
	}

	if strings.TrimSpace(config.Target.FreeSpaceGB) == "" {
		if v.IsSet(KeyFreeSpace) {
			return nil, domain.NewConfigurationError("free space", "", domain.ErrValueRequired)
		}
		config.Target.FreeSpaceGB = strconv.Itoa(DefaultFreeSpaceGB)
		config.Target.FreeSpaceDefaulted = true
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration. It does not touch the filesystem;
// see TargetConfig.ReclaimTarget for the path checks.
func (c *Config) Validate() error {
	if _, err := c.Target.ThresholdGiB(); err != nil {
		return err
	}

	if _, err := time.ParseDuration(c.Reclaim.ProgressInterval); err != nil {
		return domain.NewConfigurationError("reclaim.progress_interval", c.Reclaim.ProgressInterval, err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return domain.NewConfigurationError("logging.level", c.Logging.Level, domain.ErrInvalidInput)
	}

	switch c.Logging.Format {
	case "json", "text":
		// Valid formats
	default:
		return domain.NewConfigurationError("logging.format", c.Logging.Format, domain.ErrInvalidInput)
	}

	if (c.Slack.Token == "") != (c.Slack.ChannelID == "") {
		return domain.NewConfigurationError("slack", "", fmt.Errorf("token and channel_id must be set together"))
	}

	if c.Fixture.Folders < 0 || c.Fixture.Files < 0 || c.Fixture.FileSizeKB < 0 {
		return domain.NewConfigurationError("fixture", "", fmt.Errorf("counts and sizes must not be negative"))
	}

	return nil
}

// ThresholdGiB parses the free space threshold as a non-negative whole number
func (c *TargetConfig) ThresholdGiB() (int64, error) {
	raw := strings.TrimSpace(c.FreeSpaceGB)
	gib, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || gib < 0 {
		return 0, domain.NewConfigurationError("free space", c.FreeSpaceGB, domain.ErrInvalidThreshold)
	}
	return gib, nil
}

// ReclaimTarget validates the target directory and builds the run target
func (c *TargetConfig) ReclaimTarget() (domain.ReclaimTarget, error) {
	if strings.TrimSpace(c.Path) == "" {
		return domain.ReclaimTarget{}, domain.NewConfigurationError("path", "", domain.ErrPathRequired)
	}

	info, err := os.Stat(c.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ReclaimTarget{}, domain.NewConfigurationError("path", c.Path, domain.ErrPathNotFound)
		}
		return domain.ReclaimTarget{}, domain.NewConfigurationError("path", c.Path, err)
	}
	if !info.IsDir() {
		return domain.ReclaimTarget{}, domain.NewConfigurationError("path", c.Path, domain.ErrNotADirectory)
	}

	gib, err := c.ThresholdGiB()
	if err != nil {
		return domain.ReclaimTarget{}, err
	}
	return domain.NewReclaimTarget(c.Path, gib)
}

// GetProgressInterval returns the progress log interval as time.Duration
func (c *ReclaimConfig) GetProgressInterval() time.Duration {
	d, err := time.ParseDuration(c.ProgressInterval)
	if err != nil || d < 0 {
		return 5 * time.Second
	}
	return d
}

// GetFileSize returns the fixture file size in bytes
func (c *FixtureConfig) GetFileSize() int64 {
	return int64(c.FileSizeKB) * 1024
}

// SlackEnabled returns true when Slack notifications are configured
func (c *SlackConfig) SlackEnabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

func defaultSource() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "space-reclaimer"
	}
	return "space-reclaimer@" + host
}
