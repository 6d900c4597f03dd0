package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ogulcanaydogan/tomatina/pkg/model"
	"github.com/ogulcanaydogan/tomatina/pkg/tracker"
	"github.com/spf13/viper"
)

// Config holds all Tomatina configuration.
type Config struct {
	Timer     TimerConfig     `mapstructure:"timer" yaml:"timer"`
	Signal    SignalConfig    `mapstructure:"signal" yaml:"signal"`
	Indicator IndicatorConfig `mapstructure:"indicator" yaml:"indicator"`
	Journal   JournalConfig   `mapstructure:"journal" yaml:"journal"`
	Status    StatusConfig    `mapstructure:"status" yaml:"status"`
	Alerts    AlertsConfig    `mapstructure:"alerts" yaml:"alerts"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// TimerConfig defines phase lengths in minutes and the poll cadence.
type TimerConfig struct {
	WorkMinutes       int    `mapstructure:"work_minutes" yaml:"work_minutes"`
	ShortBreakMinutes int    `mapstructure:"short_break_minutes" yaml:"short_break_minutes"`
	LongBreakMinutes  int    `mapstructure:"long_break_minutes" yaml:"long_break_minutes"`
	PollInterval      string `mapstructure:"poll_interval" yaml:"poll_interval"`
}

// SignalConfig defines where button presses arrive.
type SignalConfig struct {
	FIFOPath string `mapstructure:"fifo_path" yaml:"fifo_path"`
}

// IndicatorConfig selects the indicator backend and color overrides.
type IndicatorConfig struct {
	Backend string            `mapstructure:"backend" yaml:"backend"`
	Colors  map[string]string `mapstructure:"colors" yaml:"colors,omitempty"`
}

// JournalConfig defines the transition history database.
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// StatusConfig defines the read-only status server.
type StatusConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Listen  string `mapstructure:"listen" yaml:"listen"`
}

// AlertsConfig defines alerting integrations.
type AlertsConfig struct {
	Slack   SlackConfig   `mapstructure:"slack" yaml:"slack"`
	Webhook WebhookConfig `mapstructure:"webhook" yaml:"webhook"`
}

// SlackConfig defines Slack webhook settings.
type SlackConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	WebhookURL string `mapstructure:"webhook_url" yaml:"webhook_url"`
	Channel    string `mapstructure:"channel" yaml:"channel"`
}

// WebhookConfig defines generic webhook settings.
type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	URL     string `mapstructure:"url" yaml:"url"`
	Secret  string `mapstructure:"secret" yaml:"secret"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level   string `mapstructure:"level" yaml:"level"`
	Format  string `mapstructure:"format" yaml:"format"`
	Journal bool   `mapstructure:"journal" yaml:"journal"`
}

// Load reads configuration from file and environment variables.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}

		v.AddConfigPath(filepath.Join(home, ".tomatina"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Defaults
	home, _ := os.UserHomeDir()
	v.SetDefault("timer.work_minutes", 20)
	v.SetDefault("timer.short_break_minutes", 5)
	v.SetDefault("timer.long_break_minutes", 15)
	v.SetDefault("timer.poll_interval", "50ms")
	v.SetDefault("signal.fifo_path", "/tmp/tomatina.fifo")
	v.SetDefault("indicator.backend", "usb")
	for _, p := range model.Phases() {
		v.SetDefault("indicator.colors."+p.String(), "")
	}
	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", filepath.Join(home, ".tomatina", "journal.db"))
	v.SetDefault("status.enabled", false)
	v.SetDefault("status.listen", "127.0.0.1:8765")
	v.SetDefault("alerts.slack.enabled", false)
	v.SetDefault("alerts.slack.webhook_url", "")
	v.SetDefault("alerts.slack.channel", "#pomodoro")
	v.SetDefault("alerts.webhook.enabled", false)
	v.SetDefault("alerts.webhook.url", "")
	v.SetDefault("alerts.webhook.secret", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.journal", false)

	// Environment variables
	v.SetEnvPrefix("TOMATINA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values the daemon cannot run without.
func (c *Config) Validate() error {
	for _, m := range []struct {
		key   string
		value int
	}{
		{"timer.work_minutes", c.Timer.WorkMinutes},
		{"timer.short_break_minutes", c.Timer.ShortBreakMinutes},
		{"timer.long_break_minutes", c.Timer.LongBreakMinutes},
	} {
		if m.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", m.key, m.value)
		}
	}
	if _, err := c.PollInterval(); err != nil {
		return err
	}
	return nil
}

// TrackerConfig converts the configured minutes to a tracker configuration.
func (c *Config) TrackerConfig() (tracker.TrackerConfig, error) {
	return tracker.NewTrackerConfig(
		time.Duration(c.Timer.WorkMinutes)*time.Minute,
		time.Duration(c.Timer.ShortBreakMinutes)*time.Minute,
		time.Duration(c.Timer.LongBreakMinutes)*time.Minute,
	)
}

// PollInterval parses the poll cadence.
func (c *Config) PollInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timer.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("timer.poll_interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timer.poll_interval must be positive, got %s", d)
	}
	return d, nil
}
