package tcellkey

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/input"
	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/logutil"
)

// Handler receives decoded input on the loop goroutine
type Handler interface {
	Key(c key.Code, pressed bool) input.Outcome
	Button(e event.ButtonEvent)
	Motion(e event.MotionEvent)
	Wheel(e event.WheelEvent)
}

type quitSignal struct{}

// Loop polls a screen and routes its events to a Handler. Functions posted
// through the loop's Scheduler run between events on the same goroutine.
type Loop struct {
	screen tcell.Screen
	h      Handler
	log    *log.Logger
	mouse  mouseState

	// OnResize, when set, runs for every resize event
	OnResize func(w, h int)
	// OnUnknown, when set, receives key events that decode to 0
	OnUnknown func(ev *tcell.EventKey)
}

// NewLoop creates a loop over an initialized screen
func NewLoop(s tcell.Screen, h Handler, logger *log.Logger) *Loop {
	if logger == nil {
		logger = logutil.Discard
	}
	return &Loop{screen: s, h: h, log: logger}
}

// Run polls until Quit, ctx cancellation or screen finalization
func (l *Loop) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, l.Quit)
	defer stop()
	for {
		ev := l.screen.PollEvent()
		if ev == nil {
			return ctx.Err()
		}
		if !l.Handle(ev) {
			return ctx.Err()
		}
	}
}

// Quit makes Run return after the events already queued
func (l *Loop) Quit() {
	if err := l.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{})); err != nil {
		l.log.Printf("quit: %v", err)
	}
}

// Handle processes one event and reports whether the loop should continue
func (l *Loop) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		c := Decode(ev)
		if c == 0 {
			if l.OnUnknown != nil {
				l.OnUnknown(ev)
			}
			return true
		}
		if l.h.Key(c, true) == input.OutcomeExit {
			return false
		}
	case *tcell.EventMouse:
		for _, out := range l.mouse.translate(ev) {
			switch p := out.Payload.(type) {
			case event.ButtonEvent:
				l.h.Button(p)
			case event.MotionEvent:
				l.h.Motion(p)
			case event.WheelEvent:
				l.h.Wheel(p)
			}
		}
	case *tcell.EventResize:
		if l.OnResize != nil {
			w, h := ev.Size()
			l.OnResize(w, h)
		}
	case *tcell.EventInterrupt:
		switch d := ev.Data().(type) {
		case quitSignal:
			return false
		case *scheduled:
			d.run()
		}
	}
	return true
}

type scheduled struct {
	fn       func()
	canceled atomic.Bool
}

func (s *scheduled) run() {
	if !s.canceled.Load() {
		s.fn()
	}
}

// Scheduler defers functions onto the loop goroutine
type Scheduler struct {
	screen tcell.Screen
}

// Scheduler returns a scheduler bound to the loop's screen
func (l *Loop) Scheduler() Scheduler { return Scheduler{screen: l.screen} }

// After posts fn to the loop once d has elapsed
func (s Scheduler) After(d time.Duration, fn func()) func() {
	job := &scheduled{fn: fn}
	t := time.AfterFunc(d, func() {
		s.screen.PostEvent(tcell.NewEventInterrupt(job))
	})
	var once sync.Once
	return func() {
		once.Do(func() {
			job.canceled.Store(true)
			t.Stop()
		})
	}
}

// Injector replays events by posting native tcell events to the screen, so
// playback passes through the same decoding as live input. Terminals report
// no key releases; released keys are dropped.
type Injector struct {
	screen tcell.Screen
	mu     sync.Mutex
	held   tcell.ButtonMask
}

// NewInjector creates an injector for s
func NewInjector(s tcell.Screen) *Injector {
	return &Injector{screen: s}
}

func (in *Injector) InjectKey(c key.Code, pressed bool) {
	if !pressed {
		return
	}
	if ev, ok := Encode(c); ok {
		in.screen.PostEvent(ev)
	}
}

func (in *Injector) InjectButton(x, y int, button byte, status int) {
	in.mu.Lock()
	switch status {
	case event.StatusPress, event.StatusDoubleClick:
		in.held |= maskOf(button)
	case event.StatusRelease:
		in.held &^= maskOf(button)
	}
	held := in.held
	in.mu.Unlock()
	in.screen.PostEvent(tcell.NewEventMouse(x, y, held, tcell.ModNone))
}

func (in *Injector) InjectWheel(delta float32, x, y int) {
	in.mu.Lock()
	held := in.held
	in.mu.Unlock()
	w := tcell.WheelDown
	if delta > 0 {
		w = tcell.WheelUp
	}
	in.screen.PostEvent(tcell.NewEventMouse(x, y, held|w, tcell.ModNone))
}
