// Package qtevent feeds Qt widget key events into the key code space.
package qtevent

import (
	"github.com/mappu/miqt/qt6"

	"github.com/lixenwraith/keyway/backend/qtkey"
	"github.com/lixenwraith/keyway/key"
)

// FromQt copies the fields the decoder needs out of a QKeyEvent
func FromQt(ev *qt6.QKeyEvent) qtkey.Event {
	return qtkey.Event{
		Key:       ev.Key(),
		Modifiers: uint32(ev.Modifiers()),
		Text:      ev.Text(),
	}
}

// Decode converts a QKeyEvent to a key code
func Decode(ev *qt6.QKeyEvent) key.Code {
	return qtkey.Decode(FromQt(ev))
}

// Handler receives decoded key presses and releases. Returning true stops the
// widget's own key handling.
type Handler func(c key.Code, pressed bool) bool

// Attach overrides the key press and release handlers of w. Auto repeated
// releases are dropped so each repeat arrives as a press.
func Attach(w *qt6.QWidget, h Handler) {
	w.OnKeyPressEvent(func(super func(event *qt6.QKeyEvent), event *qt6.QKeyEvent) {
		if c := Decode(event); c != 0 && h(c, true) {
			return
		}
		super(event)
	})
	w.OnKeyReleaseEvent(func(super func(event *qt6.QKeyEvent), event *qt6.QKeyEvent) {
		if event.IsAutoRepeat() {
			super(event)
			return
		}
		if c := Decode(event); c != 0 && h(c, false) {
			return
		}
		super(event)
	})
}
