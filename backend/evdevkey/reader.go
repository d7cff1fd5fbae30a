package evdevkey

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/holoplot/go-evdev"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/logutil"
)

// Reader turns the raw event stream of one input device into portable events.
// Modifier and lock state is tracked from the stream itself, seeded from the
// device when one is attached.
type Reader struct {
	dev   *evdev.InputDevice
	queue *event.Queue
	log   *log.Logger

	shift, ctrl, alt, meta int // held counts, left and right keys both count
	caps, num              bool

	x, y    int
	moved   bool
	buttons byte // last pressed mouse button, 0 when none
}

// NewReader wraps dev. Events go to q
func NewReader(dev *evdev.InputDevice, q *event.Queue, logger *log.Logger) *Reader {
	if logger == nil {
		logger = logutil.Discard
	}
	r := &Reader{dev: dev, queue: q, log: logger}
	if dev != nil {
		r.seed()
	}
	return r
}

// Open opens the device at path read-only
func Open(path string, q *event.Queue, logger *log.Logger) (*Reader, error) {
	dev, err := evdev.OpenWithFlags(path, os.O_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return NewReader(dev, q, logger), nil
}

// Keyboards lists the event devices under dir that report key events
func Keyboards(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		full := filepath.Join(dir, e.Name())
		dev, err := evdev.OpenWithFlags(full, os.O_RDONLY)
		if err != nil {
			continue
		}
		for _, t := range dev.CapableTypes() {
			if t == evdev.EV_KEY {
				paths = append(paths, full)
				break
			}
		}
		dev.Close()
	}
	return paths, nil
}

func (r *Reader) seed() {
	if st, err := r.dev.State(evdev.EV_KEY); err == nil {
		r.shift = count(st[evdev.KEY_LEFTSHIFT], st[evdev.KEY_RIGHTSHIFT])
		r.ctrl = count(st[evdev.KEY_LEFTCTRL], st[evdev.KEY_RIGHTCTRL])
		r.alt = count(st[evdev.KEY_LEFTALT], st[evdev.KEY_RIGHTALT])
		r.meta = count(st[evdev.KEY_LEFTMETA], st[evdev.KEY_RIGHTMETA])
	} else {
		r.log.Printf("key state: %v", err)
	}
	if st, err := r.dev.State(evdev.EV_LED); err == nil {
		r.caps = st[evdev.LED_CAPSL]
		r.num = st[evdev.LED_NUML]
	}
}

func count(bs ...bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

// Run reads until ctx is done or the device fails. The device is closed on
// return.
func (r *Reader) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// unblocks ReadOne
			r.dev.Close()
		case <-stop:
		}
	}()
	defer r.dev.Close()

	for {
		ev, err := r.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read %s: %w", r.dev.Path(), err)
		}
		for _, out := range r.handle(ev) {
			r.queue.Push(out)
		}
	}
}

func (r *Reader) state(code evdev.EvCode) Event {
	return Event{
		Code:     code,
		Shift:    r.shift > 0,
		Ctrl:     r.ctrl > 0,
		Alt:      r.alt > 0,
		Meta:     r.meta > 0,
		CapsLock: r.caps,
		NumLock:  r.num,
	}
}

var mouseButtons = map[evdev.EvCode]byte{
	evdev.BTN_LEFT:   event.Button1,
	evdev.BTN_MIDDLE: event.Button2,
	evdev.BTN_RIGHT:  event.Button3,
	evdev.BTN_SIDE:   event.Button4,
	evdev.BTN_EXTRA:  event.Button5,
}

// handle translates one raw event. Value 2 is auto-repeat and reports a
// press without touching modifier state.
func (r *Reader) handle(ev *evdev.InputEvent) []event.Event {
	switch ev.Type {
	case evdev.EV_KEY:
		if b, ok := mouseButtons[ev.Code]; ok {
			return r.button(b, ev.Value)
		}
		return r.key(ev.Code, ev.Value)
	case evdev.EV_REL:
		switch ev.Code {
		case evdev.REL_X:
			r.x += int(ev.Value)
			r.moved = true
		case evdev.REL_Y:
			r.y += int(ev.Value)
			r.moved = true
		case evdev.REL_WHEEL:
			return []event.Event{event.Wheel(event.WheelEvent{Delta: float32(ev.Value), X: r.x, Y: r.y})}
		}
	case evdev.EV_SYN:
		if ev.Code == evdev.SYN_REPORT && r.moved {
			r.moved = false
			return []event.Event{event.Motion(event.MotionEvent{X: r.x, Y: r.y, Button: r.buttons})}
		}
	}
	return nil
}

func (r *Reader) button(b byte, value int32) []event.Event {
	status := event.StatusRelease
	if value != 0 {
		status = event.StatusPress
		r.buttons = b
	} else if r.buttons == b {
		r.buttons = 0
	}
	return []event.Event{event.Button(event.ButtonEvent{Button: b, Status: status, X: r.x, Y: r.y})}
}

func (r *Reader) key(code evdev.EvCode, value int32) []event.Event {
	pressed := value != 0
	if value != 2 {
		r.track(code, pressed)
	}
	c := Decode(r.state(code))
	if c == 0 {
		return nil
	}
	return []event.Event{event.Key(event.KeyEvent{Code: c, Pressed: pressed})}
}

func (r *Reader) track(code evdev.EvCode, pressed bool) {
	d := -1
	if pressed {
		d = 1
	}
	switch code {
	case evdev.KEY_LEFTSHIFT, evdev.KEY_RIGHTSHIFT:
		r.shift = max(0, r.shift+d)
	case evdev.KEY_LEFTCTRL, evdev.KEY_RIGHTCTRL:
		r.ctrl = max(0, r.ctrl+d)
	case evdev.KEY_LEFTALT, evdev.KEY_RIGHTALT:
		r.alt = max(0, r.alt+d)
	case evdev.KEY_LEFTMETA, evdev.KEY_RIGHTMETA:
		r.meta = max(0, r.meta+d)
	case evdev.KEY_CAPSLOCK:
		if pressed {
			r.caps = !r.caps
		}
	case evdev.KEY_NUMLOCK:
		if pressed {
			r.num = !r.num
		}
	}
}

// Codec stores key codes in SYS mode recordings as evdev key codes with a
// modifier and lock bit set.
type Codec struct{}

const (
	nativeShift uint32 = 1 << iota
	nativeCtrl
	nativeAlt
	nativeMeta
	nativeCaps
	nativeNum
)

func (Codec) EncodeNative(c key.Code) (uint32, uint32, bool) {
	e, ok := Encode(c)
	if !ok {
		return 0, 0, false
	}
	var m uint32
	for _, f := range []struct {
		on  bool
		bit uint32
	}{
		{e.Shift, nativeShift}, {e.Ctrl, nativeCtrl}, {e.Alt, nativeAlt},
		{e.Meta, nativeMeta}, {e.CapsLock, nativeCaps}, {e.NumLock, nativeNum},
	} {
		if f.on {
			m |= f.bit
		}
	}
	return uint32(e.Code), m, true
}

func (Codec) DecodeNative(native, mods uint32) key.Code {
	return Decode(Event{
		Code:     evdev.EvCode(native),
		Shift:    mods&nativeShift != 0,
		Ctrl:     mods&nativeCtrl != 0,
		Alt:      mods&nativeAlt != 0,
		Meta:     mods&nativeMeta != 0,
		CapsLock: mods&nativeCaps != 0,
		NumLock:  mods&nativeNum != 0,
	})
}
