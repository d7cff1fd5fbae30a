package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lixenwraith/keyway/app"
	"github.com/lixenwraith/keyway/backend/evdevkey"
	"github.com/lixenwraith/keyway/backend/vt"
	"github.com/lixenwraith/keyway/config"
	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/input"
	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/logutil"
)

// lineSession is the shared main loop of the raw and device front ends:
// events and scheduled jobs are handled one at a time, each logged line is
// printed as it happens
type lineSession struct {
	t   *tracer
	ctx *app.Context
}

func newLineSession(cfg *config.Config, prefix string) *lineSession {
	t := newTracer()
	t.changed = func(line string) { fmt.Fprintf(os.Stdout, "%s\r\n", line) }
	ctx := app.New(
		app.WithConfig(cfg),
		app.WithDriver(t),
		app.WithLogger(logutil.New(prefix)),
		app.WithInjector(t),
		app.WithPlaybackDone(func(err error) {
			if err != nil {
				t.logf("playback failed: %v", err)
			} else {
				t.logf("playback finished")
			}
		}),
	)
	t.ctx = ctx
	ctx.SetDialog(buildDialog(t))
	ctx.Globals().CtrlFunc = func(c key.Code) { t.logf("ctrl function %s", t.name(c)) }
	return &lineSession{t: t, ctx: ctx}
}

// handle routes one decoded event and reports whether to keep going
func (s *lineSession) handle(ev event.Event) bool {
	switch p := ev.Payload.(type) {
	case event.KeyEvent:
		if s.t.Key(p.Code, p.Pressed) == input.OutcomeExit {
			return false
		}
	case event.ButtonEvent:
		s.t.Button(p)
	case event.MotionEvent:
		s.t.Motion(p)
	case event.WheelEvent:
		s.t.Wheel(p)
	}
	return true
}

// run consumes events until the source closes, ctx ends or a key asks to
// quit
func (s *lineSession) run(ctx context.Context, events <-chan event.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok || !s.handle(ev) {
				return
			}
		case job := <-s.ctx.Jobs():
			job()
		case <-ctx.Done():
			return
		}
	}
}

// runRaw reads the controlling terminal in raw mode and decodes escape
// sequences without tcell
func runRaw(cfg *config.Config) error {
	r, err := vt.Open(os.Stdin, os.Stdout, cfg.Terminal.Mouse, logutil.New("vt "))
	if err != nil {
		return err
	}
	defer r.Close()

	s := newLineSession(cfg, "keytrace ")
	defer s.ctx.Close()
	if err := startSessions(s.ctx, cfg); err != nil {
		return err
	}
	s.t.logf("raw mode - Ctrl+Q quits")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	s.run(ctx, r.Events())
	cancel()
	if err := <-done; err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// runDevice reads a Linux input device. The process needs read access to
// the device node; the terminal stays in cooked mode, so typed keys are also
// echoed by the shell.
func runDevice(cfg *config.Config, path string) error {
	q := event.NewQueue()
	r, err := evdevkey.Open(path, q, logutil.New("evdev "))
	if err != nil {
		return err
	}

	s := newLineSession(cfg, "keytrace ")
	defer s.ctx.Close()
	if err := startSessions(s.ctx, cfg); err != nil {
		return err
	}
	s.t.logf("reading %s - Ctrl+Q or interrupt quits", path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go r.Run(ctx)

	// the reader pushes from its own goroutine; drain on a short tick
	events := make(chan event.Event)
	go func() {
		defer close(events)
		tick := time.NewTicker(10 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				for _, ev := range q.Drain() {
					select {
					case events <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()
	s.run(ctx, events)
	return nil
}
