// Package input routes decoded key codes through the focus chain and applies
// the default dialog navigation when no callback consumes them.
package input

import (
	"log"

	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/logutil"
	"github.com/lixenwraith/keyway/widget"
)

// Outcome tells the backend what to do with the native event
type Outcome uint8

const (
	OutcomeUnhandled Outcome = iota // let the native default run
	OutcomeHandled                  // swallow the event
	OutcomeExit                     // swallow and leave the main loop
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHandled:
		return "handled"
	case OutcomeExit:
		return "exit"
	}
	return "unhandled"
}

// Dispatcher delivers key codes to application callbacks and runs the
// navigation policy. It holds no per-key state and is safe to reuse.
type Dispatcher struct {
	table   *key.Table
	globals *Globals
	driver  Driver
	log     *log.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithTable replaces the default name table
func WithTable(t *key.Table) Option {
	return func(d *Dispatcher) { d.table = t }
}

// WithGlobals sets the global hotkey flags
func WithGlobals(g *Globals) Option {
	return func(d *Dispatcher) { d.globals = g }
}

// WithDriver sets the native collaborator
func WithDriver(dr Driver) Option {
	return func(d *Dispatcher) { d.driver = dr }
}

// WithLogger sets the debug logger
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// NewDispatcher creates a dispatcher with the default table, empty globals
// and a driver that only tracks focus in the widget tree
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		table:   key.Default(),
		globals: &Globals{},
		driver:  NopDriver{},
		log:     logutil.Discard,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Globals returns the live global flags
func (d *Dispatcher) Globals() *Globals { return d.globals }

// DispatchKeyAny walks from owner up the parent chain. At each node the
// binding for the code's name is tried, then the any-key binding. The first
// bound callback runs; Continue keeps walking, anything else is returned.
// With nothing bound the result is Default.
func (d *Dispatcher) DispatchKeyAny(owner *widget.Element, c key.Code) widget.Result {
	canon, named := d.table.Canonical(c)
	for n := owner; n != nil; {
		var fn widget.KeyFunc
		if named {
			fn = n.KeyFunc(canon)
		}
		if fn == nil {
			fn = n.AnyKeyFunc()
		}
		if fn == nil {
			n = n.Parent()
			continue
		}
		// parent is captured before the callback can detach n
		parent := n.Parent()
		ret := fn(n, c)
		if ret == widget.Close {
			return ret
		}
		if !n.Alive() {
			return widget.Ignore
		}
		if ret != widget.Continue {
			return ret
		}
		if p := n.Parent(); p != nil {
			parent = p
		}
		n = parent
	}
	return widget.Default
}

// DispatchKeyPress delivers a raw press or release to owner only
func (d *Dispatcher) DispatchKeyPress(owner *widget.Element, c key.Code, pressed bool) widget.Result {
	if owner == nil {
		return widget.Default
	}
	fn := owner.KeyPressFunc()
	if fn == nil {
		return widget.Default
	}
	return fn(owner, c, pressed)
}

// ProcessKey is the backend entry point for a key press on owner
func (d *Dispatcher) ProcessKey(owner *widget.Element, c key.Code) Outcome {
	if !owner.Alive() {
		return OutcomeUnhandled
	}
	switch d.DispatchKeyAny(owner, c) {
	case widget.Close:
		return OutcomeExit
	case widget.Ignore:
		return OutcomeHandled
	}
	if !owner.Alive() {
		return OutcomeHandled
	}
	return d.navigate(owner, c)
}
