package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/keyway/config"
	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/input"
	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/record"
	"github.com/lixenwraith/keyway/widget"
)

// queueScheduler runs playback steps on demand
type queueScheduler struct {
	pending []func()
}

func (s *queueScheduler) After(d time.Duration, fn func()) func() {
	i := len(s.pending)
	s.pending = append(s.pending, fn)
	return func() { s.pending[i] = nil }
}

func (s *queueScheduler) runAll() {
	for i := 0; i < len(s.pending); i++ {
		if fn := s.pending[i]; fn != nil {
			s.pending[i] = nil
			fn()
		}
	}
}

type fixture struct {
	ctx                *Context
	dlg, first, second *widget.Element
	ok                 *widget.Element
	sched              *queueScheduler
	pressed            []string
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	f := &fixture{sched: &queueScheduler{}}
	f.dlg = widget.NewDialog("dlg")
	f.first = widget.New(widget.KindText, "first")
	f.second = widget.New(widget.KindText, "second")
	f.ok = widget.New(widget.KindButton, "ok")
	f.ok.OnAction(func(e *widget.Element) widget.Result {
		f.pressed = append(f.pressed, e.Name)
		return widget.Default
	})
	f.dlg.Append(f.first, f.second, f.ok)
	f.dlg.SetDefaultEnter(f.ok)
	f.dlg.SetFocused(f.first)

	opts := []Option{
		WithClock(record.NewMockClock(time.Unix(0, 0))),
		WithScheduler(f.sched),
	}
	if cfg != nil {
		opts = append(opts, WithConfig(cfg))
	}
	f.ctx = New(opts...)
	f.ctx.SetDialog(f.dlg)
	t.Cleanup(func() { f.ctx.Close() })
	return f
}

func TestHandleKeyTapsBeforeChain(t *testing.T) {
	f := newFixture(t, nil)
	var order []string
	f.ctx.Hooks().Set(event.Slots{Key: func(e event.KeyEvent) {
		order = append(order, "tap")
	}})
	f.first.BindAnyKey(func(e *widget.Element, c key.Code) widget.Result {
		order = append(order, "chain")
		return widget.Ignore
	})

	if got := f.ctx.HandleKey(f.first, key.LowerA); got != input.OutcomeHandled {
		t.Errorf("outcome = %v, want handled", got)
	}
	if diff := cmp.Diff([]string{"tap", "chain"}, order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestHandleKeyWithoutOwnerOnlyTaps(t *testing.T) {
	f := newFixture(t, nil)
	taps := 0
	f.ctx.Hooks().Set(event.Slots{Key: func(event.KeyEvent) { taps++ }})
	if got := f.ctx.HandleKey(nil, key.LowerA); got != input.OutcomeUnhandled {
		t.Errorf("outcome = %v, want unhandled", got)
	}
	if taps != 1 {
		t.Errorf("taps = %d, want 1", taps)
	}
}

func TestGlobalsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Globals.LayoutResizeKey = false
	f := newFixture(t, cfg)
	g := f.ctx.Globals()
	if !g.LayoutDialogKey || g.LayoutResizeKey {
		t.Errorf("globals = %+v", *g)
	}
	if f.ctx.Dispatcher().Globals() != g {
		t.Error("dispatcher does not share the context globals")
	}
}

func TestKeyFollowsFocus(t *testing.T) {
	f := newFixture(t, nil)

	if got := f.ctx.Key(key.TAB, true); got != input.OutcomeHandled {
		t.Fatalf("tab outcome = %v", got)
	}
	if got := f.dlg.Focused(); got != f.second {
		t.Fatalf("focus = %v, want second", got.Name)
	}

	var seen []key.Code
	f.second.BindAnyKey(func(e *widget.Element, c key.Code) widget.Result {
		seen = append(seen, c)
		return widget.Default
	})
	f.ctx.Key(key.LowerB, true)
	if diff := cmp.Diff([]key.Code{key.LowerB}, seen); diff != "" {
		t.Errorf("second saw (-want +got):\n%s", diff)
	}

	f.ctx.Key(key.CR, true)
	if diff := cmp.Diff([]string{"ok"}, f.pressed); diff != "" {
		t.Errorf("default button (-want +got):\n%s", diff)
	}
}

func TestKeyPressAndReleaseReachKeyPress(t *testing.T) {
	f := newFixture(t, nil)
	var got []bool
	f.first.OnKeyPress(func(e *widget.Element, c key.Code, pressed bool) widget.Result {
		got = append(got, pressed)
		return widget.Default
	})
	f.ctx.Key(key.LowerA, true)
	f.ctx.Key(key.LowerA, false)
	if diff := cmp.Diff([]bool{true, false}, got); diff != "" {
		t.Errorf("key press calls (-want +got):\n%s", diff)
	}
}

func TestKeyPressCallbackConsumes(t *testing.T) {
	tests := []struct {
		name  string
		ret   widget.Result
		want  input.Outcome
		chain bool
	}{
		{"default", widget.Default, input.OutcomeUnhandled, true},
		{"ignore", widget.Ignore, input.OutcomeHandled, false},
		{"close", widget.Close, input.OutcomeExit, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.first.OnKeyPress(func(e *widget.Element, c key.Code, pressed bool) widget.Result {
				return tt.ret
			})
			chain := false
			f.first.BindAnyKey(func(e *widget.Element, c key.Code) widget.Result {
				chain = true
				return widget.Default
			})
			if got := f.ctx.Key(key.LowerX, true); got != tt.want {
				t.Errorf("Key = %v, want %v", got, tt.want)
			}
			if chain != tt.chain {
				t.Errorf("focus chain ran = %v, want %v", chain, tt.chain)
			}
		})
	}
}

func TestBindingsRunWhenChainIgnores(t *testing.T) {
	cfg := config.Default()
	cfg.Bindings[key.Ctrl(key.N)] = config.ActionNextFocus
	cfg.Bindings[key.Ctrl(key.P)] = config.ActionPrevFocus
	cfg.Bindings[key.Ctrl(key.G)] = config.ActionActivateDefault
	f := newFixture(t, cfg)

	steps := []struct {
		code    key.Code
		want    input.Outcome
		focused *widget.Element
	}{
		{key.Ctrl(key.N), input.OutcomeHandled, f.second},
		{key.Ctrl(key.N), input.OutcomeHandled, f.ok},
		{key.Ctrl(key.P), input.OutcomeHandled, f.second},
		{key.Ctrl(key.G), input.OutcomeHandled, f.second},
		{key.Ctrl(key.Q), input.OutcomeExit, f.second},
		{key.Ctrl(key.K), input.OutcomeUnhandled, f.second},
	}
	for i, s := range steps {
		if got := f.ctx.Key(s.code, true); got != s.want {
			t.Errorf("step %d: outcome = %v, want %v", i, got, s.want)
		}
		if got := f.dlg.Focused(); got != s.focused {
			t.Errorf("step %d: focus = %s, want %s", i, got.Name, s.focused.Name)
		}
	}
	if diff := cmp.Diff([]string{"ok"}, f.pressed); diff != "" {
		t.Errorf("activations (-want +got):\n%s", diff)
	}
}

func TestBoundKeyLosesToCallback(t *testing.T) {
	f := newFixture(t, nil)
	f.dlg.BindKey(key.Ctrl(key.Q), func(*widget.Element, key.Code) widget.Result {
		return widget.Ignore
	})
	if got := f.ctx.Key(key.Ctrl(key.Q), true); got != input.OutcomeHandled {
		t.Errorf("outcome = %v, want handled", got)
	}
}

func TestRecordThenPlay(t *testing.T) {
	for _, mode := range []record.Mode{record.ModeText, record.ModeBinary} {
		t.Run(string(mode), func(t *testing.T) {
			f := newFixture(t, nil)
			path := filepath.Join(t.TempDir(), "session.rec")

			if err := f.ctx.RecordInput(path, mode); err != nil {
				t.Fatalf("RecordInput: %v", err)
			}
			f.ctx.Key(key.LowerA, true)
			f.ctx.Key(key.LowerA, false)
			f.ctx.Button(event.ButtonEvent{Button: event.Button1, Status: event.StatusPress, X: 3, Y: 4})
			f.ctx.Wheel(event.WheelEvent{Delta: -1, X: 3, Y: 4})
			if err := f.ctx.RecordInput("", mode); err != nil {
				t.Fatalf("stop: %v", err)
			}
			if f.ctx.Recorder().State() != record.StateIdle {
				t.Fatalf("recorder state = %v", f.ctx.Recorder().State())
			}

			var got []event.Event
			f.ctx.Hooks().Set(event.Slots{
				Button: func(e event.ButtonEvent) { got = append(got, event.Button(e)) },
				Key:    func(e event.KeyEvent) { got = append(got, event.Key(e)) },
				Wheel:  func(e event.WheelEvent) { got = append(got, event.Wheel(e)) },
			})
			var typed []key.Code
			f.first.BindAnyKey(func(e *widget.Element, c key.Code) widget.Result {
				typed = append(typed, c)
				return widget.Ignore
			})

			if err := f.ctx.PlayInput(path); err != nil {
				t.Fatalf("PlayInput: %v", err)
			}
			f.sched.runAll()

			want := []event.Event{
				event.Key(event.KeyEvent{Code: key.LowerA, Pressed: true}),
				event.Key(event.KeyEvent{Code: key.LowerA, Pressed: false}),
				event.Button(event.ButtonEvent{Button: event.Button1, Status: event.StatusPress, X: 3, Y: 4}),
				event.Wheel(event.WheelEvent{Delta: -1, X: 3, Y: 4}),
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("replayed (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]key.Code{key.LowerA}, typed); diff != "" {
				t.Errorf("focus chain (-want +got):\n%s", diff)
			}
			if st := f.ctx.Player().State(); st != record.StateIdle {
				t.Errorf("player state = %v, want idle", st)
			}
		})
	}
}

func TestRecordRestartClosesPrevious(t *testing.T) {
	f := newFixture(t, nil)
	dir := t.TempDir()
	first := filepath.Join(dir, "first.rec")
	second := filepath.Join(dir, "second.rec")

	if err := f.ctx.RecordInput(first, record.ModeText); err != nil {
		t.Fatal(err)
	}
	f.ctx.Key(key.LowerA, true)
	if err := f.ctx.RecordInput(second, record.ModeText); err != nil {
		t.Fatal(err)
	}
	f.ctx.Key(key.LowerB, true)
	if err := f.ctx.RecordInput("", ""); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{first, second} {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
		if len(lines) != 2 || lines[0] != "IUPINPUT TXT" {
			t.Errorf("%s = %q", filepath.Base(p), data)
		}
	}
}

func TestRecordInputErrors(t *testing.T) {
	f := newFixture(t, nil)
	dir := t.TempDir()

	err := f.ctx.RecordInput(filepath.Join(dir, "missing", "x.rec"), record.ModeText)
	if !errors.Is(err, record.ErrOpen) {
		t.Errorf("missing dir: err = %v, want ErrOpen", err)
	}

	path := filepath.Join(dir, "bad.rec")
	err = f.ctx.RecordInput(path, record.Mode("WAV"))
	if !errors.Is(err, record.ErrFormat) {
		t.Errorf("bad mode: err = %v, want ErrFormat", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("bad mode left %s behind", path)
	}
	if st := f.ctx.Recorder().State(); st != record.StateIdle {
		t.Errorf("recorder state = %v, want idle", st)
	}
}

func TestPlayInputErrors(t *testing.T) {
	f := newFixture(t, nil)
	dir := t.TempDir()

	err := f.ctx.PlayInput(filepath.Join(dir, "none.rec"))
	if !errors.Is(err, record.ErrOpen) || record.Code(err) >= 0 {
		t.Errorf("missing file: err = %v code %d", err, record.Code(err))
	}

	bad := filepath.Join(dir, "bad.rec")
	if err := os.WriteFile(bad, []byte("NOTINPUT TXT\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := f.ctx.PlayInput(bad); !errors.Is(err, record.ErrSignature) {
		t.Errorf("bad signature: err = %v", err)
	}
	if st := f.ctx.Player().State(); st != record.StateIdle {
		t.Errorf("player state = %v, want idle", st)
	}
	if err := f.ctx.PlayInput(""); err != nil {
		t.Errorf("empty filename: %v", err)
	}
}

func TestPlayInputEmptyCancels(t *testing.T) {
	f := newFixture(t, nil)
	path := filepath.Join(t.TempDir(), "s.rec")
	if err := os.WriteFile(path, []byte("IUPINPUT TXT\nKEY 0 97 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	taps := 0
	f.ctx.Hooks().Set(event.Slots{Key: func(event.KeyEvent) { taps++ }})

	if err := f.ctx.PlayInput(path); err != nil {
		t.Fatal(err)
	}
	if st := f.ctx.Player().State(); st != record.StatePlaying {
		t.Fatalf("state = %v, want playing", st)
	}
	f.ctx.PlayInput("")
	f.sched.runAll()
	if taps != 0 {
		t.Errorf("cancelled session injected %d keys", taps)
	}
	if st := f.ctx.Player().State(); st != record.StateIdle {
		t.Errorf("state = %v, want idle", st)
	}
}

func TestDefaultPlaybackRunsOnJobs(t *testing.T) {
	ctx := New(WithClock(record.NewMockClock(time.Unix(0, 0))))
	defer ctx.Close()
	if ctx.Jobs() == nil {
		t.Fatal("Jobs is nil without a scheduler")
	}
	dlg := widget.NewDialog("dlg")
	text := widget.New(widget.KindText, "text")
	dlg.Append(text)
	dlg.SetFocused(text)
	ctx.SetDialog(dlg)

	path := filepath.Join(t.TempDir(), "s.rec")
	if err := os.WriteFile(path, []byte("IUPINPUT TXT\nKEY 0 97 1\nKEY 0 97 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var got []bool
	ctx.Hooks().Set(event.Slots{Key: func(e event.KeyEvent) { got = append(got, e.Pressed) }})

	if err := ctx.PlayInput(path); err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("step ran before the loop drained Jobs: %v", got)
	}
	timeout := time.After(5 * time.Second)
	for ctx.Player().State() == record.StatePlaying {
		select {
		case job := <-ctx.Jobs():
			job()
		case <-timeout:
			t.Fatal("playback did not finish")
		}
	}
	if diff := cmp.Diff([]bool{true, false}, got); diff != "" {
		t.Errorf("replayed (-want +got):\n%s", diff)
	}
}

func TestCustomSchedulerHasNoJobs(t *testing.T) {
	f := newFixture(t, nil)
	if f.ctx.Jobs() != nil {
		t.Error("Jobs should be nil with a custom scheduler")
	}
}
