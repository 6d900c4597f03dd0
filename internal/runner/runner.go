package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ogulcanaydogan/tomatina/pkg/alerts"
	"github.com/ogulcanaydogan/tomatina/pkg/indicator"
	"github.com/ogulcanaydogan/tomatina/pkg/model"
	"github.com/ogulcanaydogan/tomatina/pkg/signal"
	"github.com/ogulcanaydogan/tomatina/pkg/tracker"
)

const (
	defaultPollInterval = 50 * time.Millisecond
	alertTimeout        = 10 * time.Second
)

// TransitionRecorder persists transitions for later reporting.
type TransitionRecorder interface {
	Record(ctx context.Context, tr model.Transition) error
}

// Options configures a Runner. Zero values pick defaults or disable the
// optional collaborators.
type Options struct {
	PollInterval time.Duration
	Palette      indicator.Palette
	Clock        Clock
	Recorder     TransitionRecorder
	Notifiers    []alerts.Notifier
	Board        *Board
}

// Runner is the polling loop connecting a signal source, a tracker and an
// indicator. It is the only goroutine that touches the tracker.
type Runner struct {
	tracker   *tracker.Tracker
	source    signal.Source
	indicator indicator.Indicator
	palette   indicator.Palette
	poll      time.Duration
	clock     Clock
	recorder  TransitionRecorder
	notifiers []alerts.Notifier
	board     *Board
	logger    *slog.Logger
	inflight  sync.WaitGroup
}

// New creates a runner. The palette must cover every phase.
func New(t *tracker.Tracker, src signal.Source, ind indicator.Indicator, opts Options, logger *slog.Logger) (*Runner, error) {
	if opts.Palette == nil {
		opts.Palette = indicator.DefaultPalette()
	}
	if err := opts.Palette.Validate(); err != nil {
		return nil, err
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}

	return &Runner{
		tracker:   t,
		source:    src,
		indicator: ind,
		palette:   opts.Palette,
		poll:      opts.PollInterval,
		clock:     opts.Clock,
		recorder:  opts.Recorder,
		notifiers: opts.Notifiers,
		board:     opts.Board,
		logger:    logger,
	}, nil
}

// Run configures the indicator and polls until ctx is cancelled. An
// indicator failure stops the loop and is returned.
func (r *Runner) Run(ctx context.Context) error {
	defer r.Wait()

	phase := r.tracker.Phase()
	if err := r.indicator.Configure(ctx, r.palette.ColorFor(phase)); err != nil {
		return fmt.Errorf("configure indicator: %w", err)
	}
	r.logger.Info("tomatina started",
		"phase", phase,
		"indicator", r.indicator.Name(),
		"poll_interval", r.poll,
	)
	r.publish(r.clock.Now())

	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()

	for {
		if err := r.Step(ctx); err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			r.logger.Info("tomatina stopping", "completed_intervals", r.tracker.CompletedIntervals())
			return nil
		case <-ticker.C:
		}
	}
}

// Step runs one loop iteration: handle at most one press, tick, and reflect
// a phase change on the indicator.
func (r *Runner) Step(ctx context.Context) error {
	initial := r.tracker.Phase()
	var transitions []model.Transition

	if ev, ok := r.source.Poll(); ok {
		switch ev {
		case signal.Primary:
			r.logger.Info("detected button press")
			transitions = append(transitions, r.tracker.Next(r.clock.Now()))
		default:
			r.logger.Debug("ignoring button press", "event", ev)
		}
	}

	now := r.clock.Now()
	if tr, fired := r.tracker.Tick(now); fired {
		transitions = append(transitions, tr)
	}

	for _, tr := range transitions {
		r.observe(ctx, tr)
	}

	if current := r.tracker.Phase(); current != initial {
		r.logger.Info("state changed", "from", initial, "to", current)
		if err := r.indicator.SetColor(ctx, r.palette.ColorFor(current)); err != nil {
			return fmt.Errorf("set indicator color: %w", err)
		}
	}

	r.announce(now)
	r.publish(now)
	return nil
}

// Wait blocks until in-flight alerts finish.
func (r *Runner) Wait() {
	r.inflight.Wait()
}

func (r *Runner) observe(ctx context.Context, tr model.Transition) {
	r.logger.Debug("transition",
		"from", tr.From,
		"to", tr.To,
		"cause", tr.Cause,
		"completed_intervals", tr.CompletedIntervals,
	)
	if tr.SkippedAhead() {
		r.logger.Info("work interval ended early", "completed_intervals", tr.CompletedIntervals)
	}

	if r.recorder != nil {
		if err := r.recorder.Record(ctx, tr); err != nil {
			r.logger.Error("record transition", "error", err)
		}
	}

	if alert, ok := alerts.FromTransition(tr); ok {
		for _, n := range r.notifiers {
			r.inflight.Add(1)
			go r.notify(n, alert)
		}
	}
}

func (r *Runner) notify(n alerts.Notifier, alert alerts.Alert) {
	defer r.inflight.Done()
	ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
	defer cancel()
	if err := n.Send(ctx, alert); err != nil {
		r.logger.Error("send alert failed", "notifier", n.Name(), "kind", alert.Kind, "error", err)
	}
}

// announce logs the remaining time once per minute boundary.
func (r *Runner) announce(now time.Time) {
	remaining, ok := r.tracker.TimeRemaining(now)
	if !ok {
		return
	}
	if t, ok := tracker.LoggableTimeRemaining(remaining, r.poll); ok {
		r.logger.Info("time remaining",
			"phase", r.tracker.Phase(),
			"remaining", tracker.FormatClock(t),
		)
	}
}

func (r *Runner) publish(now time.Time) {
	if r.board != nil {
		r.board.Publish(r.tracker.Snapshot(now), now)
	}
}
