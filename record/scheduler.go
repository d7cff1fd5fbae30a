package record

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/key"
)

// Scheduler runs fn once after d without blocking the caller. The returned
// function cancels a pending run.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler runs steps on runtime timers. fn runs on a timer goroutine,
// so the Injector must be safe to call from there.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// LoopScheduler hands each due step to the goroutine that drains Jobs, so
// playback runs between live events instead of beside them
type LoopScheduler struct {
	jobs chan func()
}

// NewLoopScheduler buffers up to n due steps
func NewLoopScheduler(n int) *LoopScheduler {
	return &LoopScheduler{jobs: make(chan func(), n)}
}

// Jobs yields due steps; the owner runs each one on its event loop
func (s *LoopScheduler) Jobs() <-chan func() { return s.jobs }

func (s *LoopScheduler) After(d time.Duration, fn func()) func() {
	var canceled atomic.Bool
	t := time.AfterFunc(d, func() {
		s.jobs <- func() {
			if !canceled.Load() {
				fn()
			}
		}
	})
	return func() {
		canceled.Store(true)
		t.Stop()
	}
}

// Injector re-creates native input from played records
type Injector interface {
	// InjectButton sends a press, release, double click or, with
	// event.StatusMotion, a pointer move with button held
	InjectButton(x, y int, button byte, status int)
	InjectKey(c key.Code, pressed bool)
	InjectWheel(delta float32, x, y int)
}

// HooksInjector replays straight into a Hooks set, bypassing any native
// layer. Motion records arrive as motion taps.
type HooksInjector struct {
	Hooks *event.Hooks
}

func (h HooksInjector) InjectButton(x, y int, button byte, status int) {
	if status == event.StatusMotion {
		h.Hooks.FireMotion(event.MotionEvent{X: x, Y: y, Button: button})
		return
	}
	h.Hooks.FireButton(event.ButtonEvent{Button: button, Status: status, X: x, Y: y})
}

func (h HooksInjector) InjectKey(c key.Code, pressed bool) {
	h.Hooks.FireKey(event.KeyEvent{Code: c, Pressed: pressed})
}

func (h HooksInjector) InjectWheel(delta float32, x, y int) {
	h.Hooks.FireWheel(event.WheelEvent{Delta: delta, X: x, Y: y})
}
