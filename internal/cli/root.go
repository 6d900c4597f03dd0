package cli

import (
	"log/slog"
	"os"

	"github.com/ogulcanaydogan/tomatina/internal/config"
	"github.com/ogulcanaydogan/tomatina/internal/logging"
	"github.com/ogulcanaydogan/tomatina/pkg/alerts"
	"github.com/ogulcanaydogan/tomatina/pkg/indicator"
	"github.com/ogulcanaydogan/tomatina/pkg/indicator/usbbutton"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tomatina",
	Short: "Tomatina - a work/break timer driven by a USB button",
	Long: `Tomatina cycles through work intervals and short and long breaks.
A press on the USB button (or "tomatina press") acknowledges the current
phase, and the button light shows where you are in the cycle.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.tomatina/config.yaml)")
}

// loadConfig loads the configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger creates a structured logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(cfg.Logging, os.Stderr)
}

// initIndicators registers the available indicator backends.
func initIndicators(logger *slog.Logger) *indicator.Registry {
	registry := indicator.NewRegistry()
	_ = registry.Register("usb", func() (indicator.Indicator, error) {
		return usbbutton.Open()
	})
	_ = registry.Register("terminal", func() (indicator.Indicator, error) {
		return indicator.NewTerminal(os.Stdout), nil
	})
	_ = registry.Register("log", func() (indicator.Indicator, error) {
		return indicator.NewLog(logger), nil
	})
	return registry
}

// initNotifiers creates alert notifiers from config.
func initNotifiers(cfg *config.Config) []alerts.Notifier {
	var notifiers []alerts.Notifier

	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alerts.NewSlackNotifier(
			cfg.Alerts.Slack.WebhookURL,
			cfg.Alerts.Slack.Channel,
		))
	}

	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alerts.NewWebhookNotifier(
			cfg.Alerts.Webhook.URL,
			cfg.Alerts.Webhook.Secret,
		))
	}

	return notifiers
}
