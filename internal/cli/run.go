package cli

import (
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/ogulcanaydogan/tomatina/internal/runner"
	"github.com/ogulcanaydogan/tomatina/internal/server"
	"github.com/ogulcanaydogan/tomatina/pkg/indicator"
	"github.com/ogulcanaydogan/tomatina/pkg/journal"
	"github.com/ogulcanaydogan/tomatina/pkg/model"
	"github.com/ogulcanaydogan/tomatina/pkg/signal"
	"github.com/ogulcanaydogan/tomatina/pkg/tracker"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the timer loop",
	Long: `Run the timer loop. Button presses are read from a named pipe and the
indicator color follows the current phase. Stop with Ctrl+C.`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("indicator", "i", "", "Indicator backend: usb, terminal, log (default from config)")
	runCmd.Flags().String("fifo", "", "Named pipe for button presses (default from config)")
	runCmd.Flags().Bool("status", false, "Serve the status API (overrides config)")
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if backend, _ := cmd.Flags().GetString("indicator"); backend != "" {
		cfg.Indicator.Backend = backend
	}
	if fifo, _ := cmd.Flags().GetString("fifo"); fifo != "" {
		cfg.Signal.FIFOPath = fifo
	}
	if serve, _ := cmd.Flags().GetBool("status"); serve {
		cfg.Status.Enabled = true
	}

	logger := newLogger(cfg)

	trackerCfg, err := cfg.TrackerConfig()
	if err != nil {
		return err
	}
	poll, err := cfg.PollInterval()
	if err != nil {
		return err
	}
	palette, err := indicator.DefaultPalette().WithOverrides(cfg.Indicator.Colors)
	if err != nil {
		return fmt.Errorf("indicator colors: %w", err)
	}

	ind, err := initIndicators(logger).Open(cfg.Indicator.Backend)
	if err != nil {
		return fmt.Errorf("open indicator: %w", err)
	}
	defer ind.Close()

	ctx, stop := ossignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := signal.OpenFIFO(cfg.Signal.FIFOPath, logger)
	if err != nil {
		return err
	}
	defer src.Close()
	logger.Info("listening for button presses", "fifo", src.Path())

	opts := runner.Options{
		PollInterval: poll,
		Palette:      palette,
		Notifiers:    initNotifiers(cfg),
		Board:        runner.NewBoard(),
	}

	var history server.HistorySource
	if cfg.Journal.Enabled {
		store, err := journal.NewSQLite(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer store.Close()

		rec, err := journal.NewRecorder(ctx, store, &model.Session{
			StartedAt: time.Now(),
			WorkMins:  cfg.Timer.WorkMinutes,
			ShortMins: cfg.Timer.ShortBreakMinutes,
			LongMins:  cfg.Timer.LongBreakMinutes,
		})
		if err != nil {
			return fmt.Errorf("start journal session: %w", err)
		}
		logger.Info("journal session started", "session", rec.SessionID(), "path", cfg.Journal.Path)
		opts.Recorder = rec
		history = store
	}

	r, err := runner.New(tracker.New(trackerCfg, time.Now()), src, ind, opts, logger)
	if err != nil {
		return err
	}

	if cfg.Status.Enabled {
		srv := server.NewServer(opts.Board, history, logger)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Status.Listen); err != nil {
				logger.Error("status server failed", "error", err)
			}
		}()
	}

	return r.Run(ctx)
}
