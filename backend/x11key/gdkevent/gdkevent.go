// Package gdkevent connects GTK widget input signals to the key code space
// and the event taps.
package gdkevent

import (
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"

	"github.com/lixenwraith/keyway/backend/x11key"
	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/key"
)

// Decode converts a GDK key event
func Decode(ev *gdk.EventKey) key.Code {
	return x11key.Decode(x11key.Event{
		Keysym: uint32(ev.KeyVal()),
		State:  uint32(ev.State()),
	})
}

// KeyHandler receives decoded keys; returning true stops GTK's own handling
type KeyHandler func(c key.Code, pressed bool) bool

// Attach connects key, button, motion and scroll signals of da. Keys go to
// the taps and then to h; pointer events only feed the taps.
func Attach(da *gtk.DrawingArea, hooks *event.Hooks, h KeyHandler) {
	var held byte = event.ButtonNone

	da.SetCanFocus(true)
	da.AddEvents(int(gdk.KEY_PRESS_MASK | gdk.KEY_RELEASE_MASK |
		gdk.BUTTON_PRESS_MASK | gdk.BUTTON_RELEASE_MASK |
		gdk.POINTER_MOTION_MASK | gdk.SCROLL_MASK))

	onKey := func(pressed bool) func(*gtk.DrawingArea, *gdk.Event) bool {
		return func(_ *gtk.DrawingArea, ev *gdk.Event) bool {
			c := Decode(gdk.EventKeyNewFromEvent(ev))
			if c == 0 {
				return false
			}
			hooks.FireKey(event.KeyEvent{Code: c, Pressed: pressed})
			return h != nil && h(c, pressed)
		}
	}
	da.Connect("key-press-event", onKey(true))
	da.Connect("key-release-event", onKey(false))

	da.Connect("button-press-event", func(_ *gtk.DrawingArea, ev *gdk.Event) bool {
		btn := gdk.EventButtonNewFromEvent(ev)
		b := event.ButtonByte(int(btn.Button()))
		status := event.StatusPress
		if btn.Type() == gdk.EVENT_2BUTTON_PRESS {
			status = event.StatusDoubleClick
		}
		held = b
		hooks.FireButton(event.ButtonEvent{Button: b, Status: status, X: int(btn.X()), Y: int(btn.Y())})
		return false
	})
	da.Connect("button-release-event", func(_ *gtk.DrawingArea, ev *gdk.Event) bool {
		btn := gdk.EventButtonNewFromEvent(ev)
		b := event.ButtonByte(int(btn.Button()))
		if held == b {
			held = event.ButtonNone
		}
		hooks.FireButton(event.ButtonEvent{Button: b, Status: event.StatusRelease, X: int(btn.X()), Y: int(btn.Y())})
		return false
	})
	da.Connect("motion-notify-event", func(_ *gtk.DrawingArea, ev *gdk.Event) bool {
		x, y := gdk.EventMotionNewFromEvent(ev).MotionVal()
		hooks.FireMotion(event.MotionEvent{X: int(x), Y: int(y), Button: held})
		return false
	})
	da.Connect("scroll-event", func(_ *gtk.DrawingArea, ev *gdk.Event) bool {
		sc := gdk.EventScrollNewFromEvent(ev)
		var delta float32
		switch sc.Direction() {
		case gdk.SCROLL_UP:
			delta = 1
		case gdk.SCROLL_DOWN:
			delta = -1
		default:
			return false
		}
		hooks.FireWheel(event.WheelEvent{Delta: delta, X: int(sc.X()), Y: int(sc.Y())})
		return false
	})
}
