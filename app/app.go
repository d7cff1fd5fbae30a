// Package app holds the per-process input context: the key table, the global
// hotkey switches, the native event taps, the dispatcher and the record and
// playback sessions.
package app

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lixenwraith/keyway/config"
	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/input"
	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/logutil"
	"github.com/lixenwraith/keyway/record"
	"github.com/lixenwraith/keyway/widget"
)

// Context is owned by the event loop goroutine. Without WithScheduler,
// playback steps arrive on Jobs and the loop runs them between events.
type Context struct {
	table      *key.Table
	globals    *input.Globals
	hooks      *event.Hooks
	dispatcher *input.Dispatcher
	recorder   *record.Recorder
	player     *record.Player
	cfg        *config.Config
	log        *log.Logger

	dialog  *widget.Element
	recFile io.Closer

	driver    input.Driver
	injector  record.Injector
	scheduler record.Scheduler
	jobs      *record.LoopScheduler
	clock     record.Clock
	codec     record.NativeCodec
	onDone    func(error)
}

// Option configures a Context
type Option func(*Context)

// WithConfig applies cfg's globals and bindings
func WithConfig(cfg *config.Config) Option {
	return func(c *Context) { c.cfg = cfg }
}

// WithLogger sets the logger shared by the dispatcher, recorder and player
func WithLogger(l *log.Logger) Option {
	return func(c *Context) { c.log = l }
}

// WithDriver sets the native side of navigation
func WithDriver(dr input.Driver) Option {
	return func(c *Context) { c.driver = dr }
}

// WithInjector replaces the playback target. By default playback feeds the
// Context itself, so replayed keys reach the taps and the focus chain.
func WithInjector(inj record.Injector) Option {
	return func(c *Context) { c.injector = inj }
}

// WithScheduler sets the timer used by playback. The scheduler must run
// steps where the injector may be called; Jobs is then nil.
func WithScheduler(s record.Scheduler) Option {
	return func(c *Context) { c.scheduler = s }
}

// WithClock sets the clock used by both sessions
func WithClock(cl record.Clock) Option {
	return func(c *Context) { c.clock = cl }
}

// WithCodec sets the native key codec used by BIN files
func WithCodec(nc record.NativeCodec) Option {
	return func(c *Context) { c.codec = nc }
}

// WithPlaybackDone is called when a playback session ends on its own
func WithPlaybackDone(fn func(error)) Option {
	return func(c *Context) { c.onDone = fn }
}

// New builds a Context with the default key table
func New(opts ...Option) *Context {
	c := &Context{
		table:   key.Default(),
		globals: &input.Globals{},
		hooks:   &event.Hooks{},
		log:     logutil.Discard,
	}
	for _, o := range opts {
		o(c)
	}
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	c.globals.LayoutDialogKey = c.cfg.Globals.LayoutDialogKey
	c.globals.LayoutResizeKey = c.cfg.Globals.LayoutResizeKey

	dopts := []input.Option{
		input.WithTable(c.table),
		input.WithGlobals(c.globals),
		input.WithLogger(c.log),
	}
	if c.driver != nil {
		dopts = append(dopts, input.WithDriver(c.driver))
	}
	c.dispatcher = input.NewDispatcher(dopts...)

	ropts := []record.RecorderOption{record.RecordLogger(c.log)}
	popts := []record.PlayerOption{record.PlayLogger(c.log)}
	if c.clock != nil {
		ropts = append(ropts, record.RecordClock(c.clock))
		popts = append(popts, record.PlayClock(c.clock))
	}
	if c.codec != nil {
		ropts = append(ropts, record.RecordCodec(c.codec))
		popts = append(popts, record.PlayCodec(c.codec))
	}
	if c.scheduler == nil {
		c.jobs = record.NewLoopScheduler(16)
		c.scheduler = c.jobs
	}
	popts = append(popts, record.PlayScheduler(c.scheduler))
	if c.onDone != nil {
		popts = append(popts, record.OnDone(c.onDone))
	}
	if c.injector == nil {
		c.injector = c
	}
	c.recorder = record.NewRecorder(ropts...)
	c.player = record.NewPlayer(c.injector, popts...)
	return c
}

func (c *Context) Table() *key.Table             { return c.table }
func (c *Context) Globals() *input.Globals       { return c.globals }
func (c *Context) Hooks() *event.Hooks           { return c.hooks }
func (c *Context) Dispatcher() *input.Dispatcher { return c.dispatcher }
func (c *Context) Recorder() *record.Recorder    { return c.recorder }
func (c *Context) Player() *record.Player        { return c.player }
func (c *Context) Config() *config.Config        { return c.cfg }
func (c *Context) Dialog() *widget.Element       { return c.dialog }
func (c *Context) SetDialog(dlg *widget.Element) { c.dialog = dlg }

// Jobs yields due playback steps when no scheduler was supplied. The event
// loop must run each one; a nil channel means a custom scheduler is in use.
func (c *Context) Jobs() <-chan func() {
	if c.jobs == nil {
		return nil
	}
	return c.jobs.Jobs()
}

// RecordInput starts recording every tapped event to filename. A running
// session is stopped and its file closed first. An empty filename only stops.
func (c *Context) RecordInput(filename string, mode record.Mode) error {
	err := c.stopRecording()
	if filename == "" {
		return err
	}
	f, ferr := os.Create(filename)
	if ferr != nil {
		return fmt.Errorf("%w: %v", record.ErrOpen, ferr)
	}
	if serr := c.recorder.Start(f, mode, c.hooks); serr != nil {
		f.Close()
		os.Remove(filename)
		return serr
	}
	c.recFile = f
	return nil
}

func (c *Context) stopRecording() error {
	err := c.recorder.Stop()
	if c.recFile != nil {
		if cerr := c.recFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", record.ErrWrite, cerr)
		}
		c.recFile = nil
	}
	return err
}

// PlayInput replays filename into the injector. A running session is
// cancelled first. An empty filename only cancels.
func (c *Context) PlayInput(filename string) error {
	c.player.Stop()
	if filename == "" {
		return nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("%w: %v", record.ErrOpen, err)
	}
	if err := c.player.Start(f); err != nil {
		f.Close()
		return err
	}
	return nil
}

// Close ends both sessions
func (c *Context) Close() error {
	c.player.Stop()
	return c.stopRecording()
}

// HandleKey is the backend entry point for a key press on owner. The key tap
// fires first, then the owner's key-press callback, then the focus chain.
func (c *Context) HandleKey(owner *widget.Element, code key.Code) input.Outcome {
	c.hooks.FireKey(event.KeyEvent{Code: code, Pressed: true})
	if owner == nil {
		return input.OutcomeUnhandled
	}
	switch c.dispatcher.DispatchKeyPress(owner, code, true) {
	case widget.Close:
		return input.OutcomeExit
	case widget.Ignore:
		return input.OutcomeHandled
	}
	if !owner.Alive() {
		return input.OutcomeHandled
	}
	out := c.dispatcher.ProcessKey(owner, code)
	if out == input.OutcomeUnhandled {
		out = c.bound(owner, code)
	}
	return out
}

// HandleKeyRelease fires the key tap for a release and offers it to the
// owner's key-press callback
func (c *Context) HandleKeyRelease(owner *widget.Element, code key.Code) {
	c.hooks.FireKey(event.KeyEvent{Code: code, Pressed: false})
	if owner != nil {
		c.dispatcher.DispatchKeyPress(owner, code, false)
	}
}

func (c *Context) HandleButton(e event.ButtonEvent) { c.hooks.FireButton(e) }
func (c *Context) HandleMotion(e event.MotionEvent) { c.hooks.FireMotion(e) }
func (c *Context) HandleWheel(e event.WheelEvent)   { c.hooks.FireWheel(e) }

// bound runs the configured action for a key the focus chain left alone
func (c *Context) bound(owner *widget.Element, code key.Code) input.Outcome {
	act := c.cfg.Action(code)
	if act == config.ActionNone {
		return input.OutcomeUnhandled
	}
	dlg := owner.Dialog()
	name, _ := c.table.CodeToName(code)
	c.log.Printf("app: binding %s -> %s", name, act)
	switch act {
	case config.ActionQuit:
		return input.OutcomeExit
	case config.ActionNextFocus:
		c.moveFocus(dlg, owner.NextFocusable())
	case config.ActionPrevFocus:
		c.moveFocus(dlg, owner.PrevFocusable())
	case config.ActionActivateDefault, config.ActionCancelDefault:
		if dlg == nil {
			return input.OutcomeUnhandled
		}
		b := dlg.DefaultEnter()
		if act == config.ActionCancelDefault {
			b = dlg.DefaultEsc()
		}
		if b == nil || !b.Alive() {
			return input.OutcomeUnhandled
		}
		if b.Activate() == widget.Close {
			return input.OutcomeExit
		}
	}
	return input.OutcomeHandled
}

func (c *Context) moveFocus(dlg, target *widget.Element) {
	if dlg == nil || target == nil {
		return
	}
	if dlg.SetFocused(target) && c.driver != nil {
		c.driver.SetFocus(target)
	}
}

// owner is the focused element of the current dialog, or the dialog itself
func (c *Context) owner() *widget.Element {
	if c.dialog == nil || !c.dialog.Alive() {
		return nil
	}
	if f := c.dialog.Focused(); f != nil && f.Alive() {
		return f
	}
	return c.dialog
}

// Key routes a decoded key to the focused element of the current dialog
func (c *Context) Key(code key.Code, pressed bool) input.Outcome {
	if !pressed {
		c.HandleKeyRelease(c.owner(), code)
		return input.OutcomeHandled
	}
	return c.HandleKey(c.owner(), code)
}

func (c *Context) Button(e event.ButtonEvent) { c.HandleButton(e) }
func (c *Context) Motion(e event.MotionEvent) { c.HandleMotion(e) }
func (c *Context) Wheel(e event.WheelEvent)   { c.HandleWheel(e) }

// InjectButton replays a button record; a motion status is routed to the
// motion tap
func (c *Context) InjectButton(x, y int, button byte, status int) {
	if status == event.StatusMotion {
		c.HandleMotion(event.MotionEvent{X: x, Y: y, Button: button})
		return
	}
	c.HandleButton(event.ButtonEvent{Button: button, Status: status, X: x, Y: y})
}

// InjectKey replays a key record. An exit outcome has no loop to leave here.
func (c *Context) InjectKey(code key.Code, pressed bool) {
	c.Key(code, pressed)
}

func (c *Context) InjectWheel(delta float32, x, y int) {
	c.HandleWheel(event.WheelEvent{Delta: delta, X: x, Y: y})
}
