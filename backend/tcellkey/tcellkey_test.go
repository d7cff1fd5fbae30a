package tcellkey

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/input"
	"github.com/lixenwraith/keyway/key"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Code
	}{
		{"Rune a", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), key.LowerA},
		{"Rune A shift", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), key.A},
		{"Alt a", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModAlt), key.Alt(key.A)},
		{"Ctrl A", tcell.NewEventKey(tcell.KeyCtrlA, 1, tcell.ModCtrl), key.Ctrl(key.A)},
		{"Ctrl J", tcell.NewEventKey(tcell.KeyCtrlJ, 10, tcell.ModCtrl), key.Ctrl(key.J)},
		{"Ctrl space", tcell.NewEventKey(tcell.KeyCtrlSpace, 0, tcell.ModCtrl), key.Ctrl(key.SP)},
		{"Ctrl backslash", tcell.NewEventKey(tcell.KeyCtrlBackslash, 28, tcell.ModCtrl), key.Ctrl(key.Backslash)},
		{"Backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.BS},
		{"Enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.CR},
		{"Ctrl enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModCtrl), key.Ctrl(key.CR)},
		{"Backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), key.Shift(key.TAB)},
		{"Shift up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), key.Shift(key.Up)},
		{"Meta F5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModMeta), key.Sys(key.F5)},
		{"Center", tcell.NewEventKey(tcell.KeyCenter, 0, tcell.ModNone), key.Middle},
		{"Cedilla", tcell.NewEventKey(tcell.KeyRune, 'ç', tcell.ModNone), key.LowerCcedilla},
		{"Other rune", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), 0},
		{"F20", tcell.NewEventKey(tcell.KeyF20, 0, tcell.ModNone), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.ev); got != tt.want {
				t.Errorf("Decode = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	var keys []tcell.Key
	for k := range special {
		keys = append(keys, k)
	}
	for k := range ctrlPunct {
		keys = append(keys, k)
	}
	for k := tcell.KeyCtrlA; k <= tcell.KeyCtrlZ; k++ {
		keys = append(keys, k)
	}
	for k := tcell.KeyF1; k <= tcell.KeyF12; k++ {
		keys = append(keys, k)
	}
	keys = append(keys, tcell.KeyBacktab)

	var events []*tcell.EventKey
	for m := tcell.ModMask(0); m < 16; m++ {
		for _, k := range keys {
			events = append(events, tcell.NewEventKey(k, rune(k), m))
		}
		for r := rune(' '); r <= '~'; r++ {
			events = append(events, tcell.NewEventKey(tcell.KeyRune, r, m))
		}
		for _, r := range []rune{'¨', '´', 'Ç', 'ç'} {
			events = append(events, tcell.NewEventKey(tcell.KeyRune, r, m))
		}
	}
	for _, ev := range events {
		c := Decode(ev)
		if c == 0 {
			continue
		}
		enc, ok := Encode(c)
		if !ok {
			t.Errorf("Encode(%v) failed", c)
			continue
		}
		if got := Decode(enc); got != c {
			t.Errorf("Decode(Encode(%v)) = %v", c, got)
		}
	}
}

func TestEncodeUnmapped(t *testing.T) {
	if _, ok := Encode(key.LShift); ok {
		t.Error("terminals have no shift key event")
	}
}

type keyCall struct {
	Code    key.Code
	Pressed bool
}

type recorder struct {
	keys   []keyCall
	events []event.Event
	exitOn key.Code
}

func (r *recorder) Key(c key.Code, pressed bool) input.Outcome {
	r.keys = append(r.keys, keyCall{c, pressed})
	if c == r.exitOn {
		return input.OutcomeExit
	}
	return input.OutcomeHandled
}

func (r *recorder) Button(e event.ButtonEvent) { r.events = append(r.events, event.Button(e)) }
func (r *recorder) Motion(e event.MotionEvent) { r.events = append(r.events, event.Motion(e)) }
func (r *recorder) Wheel(e event.WheelEvent)   { r.events = append(r.events, event.Wheel(e)) }

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(s.Fini)
	return s
}

// poll skips the resize a screen may queue on Init
func poll(s tcell.Screen) tcell.Event {
	for {
		ev := s.PollEvent()
		if _, ok := ev.(*tcell.EventResize); !ok {
			return ev
		}
	}
}

func TestLoopKeys(t *testing.T) {
	h := &recorder{exitOn: key.Esc}
	l := NewLoop(newScreen(t), h, nil)

	if !l.Handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Fatal("loop stopped on x")
	}
	var unknown int
	l.OnUnknown = func(*tcell.EventKey) { unknown++ }
	l.Handle(tcell.NewEventKey(tcell.KeyF30, 0, tcell.ModNone))
	if l.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("loop continued after exit outcome")
	}
	want := []keyCall{{key.LowerX, true}, {key.Esc, true}}
	if diff := cmp.Diff(want, h.keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if unknown != 1 {
		t.Errorf("unknown = %d, want 1", unknown)
	}
}

func TestLoopMouse(t *testing.T) {
	h := &recorder{}
	l := NewLoop(newScreen(t), h, nil)
	for _, ev := range []*tcell.EventMouse{
		tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(6, 3, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(6, 3, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(6, 3, tcell.Button2, tcell.ModNone),
		tcell.NewEventMouse(6, 3, tcell.WheelUp, tcell.ModNone),
	} {
		l.Handle(ev)
	}
	want := []event.Event{
		event.Motion(event.MotionEvent{X: 4, Y: 2}),
		event.Button(event.ButtonEvent{Button: event.Button1, Status: event.StatusPress, X: 4, Y: 2}),
		event.Motion(event.MotionEvent{X: 6, Y: 3, Button: event.Button1}),
		event.Button(event.ButtonEvent{Button: event.Button1, Status: event.StatusRelease, X: 6, Y: 3}),
		event.Button(event.ButtonEvent{Button: event.Button3, Status: event.StatusPress, X: 6, Y: 3}),
		event.Wheel(event.WheelEvent{Delta: 1, X: 6, Y: 3}),
		event.Button(event.ButtonEvent{Button: event.Button3, Status: event.StatusRelease, X: 6, Y: 3}),
	}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestInjectorRoundTrip(t *testing.T) {
	s := newScreen(t)
	h := &recorder{}
	l := NewLoop(s, h, nil)
	inj := NewInjector(s)

	inj.InjectKey(key.Ctrl(key.Q), true)
	inj.InjectKey(key.Ctrl(key.Q), false)
	inj.InjectButton(3, 4, event.Button2, event.StatusPress)
	inj.InjectButton(5, 4, event.Button2, event.StatusMotion)
	inj.InjectButton(5, 4, event.Button2, event.StatusRelease)
	inj.InjectWheel(-1, 5, 4)
	for i := 0; i < 5; i++ {
		l.Handle(poll(s))
	}

	if diff := cmp.Diff([]keyCall{{key.Ctrl(key.Q), true}}, h.keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	want := []event.Event{
		event.Button(event.ButtonEvent{Button: event.Button2, Status: event.StatusPress, X: 3, Y: 4}),
		event.Motion(event.MotionEvent{X: 5, Y: 4, Button: event.Button2}),
		event.Button(event.ButtonEvent{Button: event.Button2, Status: event.StatusRelease, X: 5, Y: 4}),
		event.Wheel(event.WheelEvent{Delta: -1, X: 5, Y: 4}),
	}
	if diff := cmp.Diff(want, h.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSchedulerRunsOnLoop(t *testing.T) {
	s := newScreen(t)
	l := NewLoop(s, &recorder{}, nil)
	sch := l.Scheduler()

	var ran []string
	cancel := sch.After(time.Hour, func() { ran = append(ran, "late") })
	sch.After(0, func() { ran = append(ran, "now") })
	cancel()

	l.Handle(poll(s))
	if diff := cmp.Diff([]string{"now"}, ran); diff != "" {
		t.Errorf("ran mismatch (-want +got):\n%s", diff)
	}
}

func TestQuit(t *testing.T) {
	s := newScreen(t)
	l := NewLoop(s, &recorder{}, nil)
	l.Quit()
	if l.Handle(poll(s)) {
		t.Error("loop continued after Quit")
	}
}

func TestServiceLifecycle(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	svc := NewService()
	if err := svc.Init(); err == nil {
		t.Fatal("Init without handler succeeded")
	}
	h := &recorder{exitOn: key.Esc}
	if err := svc.Init(s, h); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	select {
	case <-svc.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not exit on Esc")
	}
	if err := svc.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
	if err := svc.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}
