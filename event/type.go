// Package event carries native input events from backends to the record
// taps and the dispatcher.
package event

import (
	"github.com/lixenwraith/keyway/key"
)

// Kind identifies one of the four tapped native event classes
type Kind uint8

const (
	KindNone Kind = iota
	KindButton
	KindMotion
	KindKey
	KindWheel
)

// Mouse button identities as stored in records
const (
	ButtonNone byte = '0'
	Button1    byte = '1'
	Button2    byte = '2'
	Button3    byte = '3'
	Button4    byte = '4'
	Button5    byte = '5'
)

// Button status values. StatusMotion is only used when replaying a motion
// record through the button injection path.
const (
	StatusMotion      = -1
	StatusRelease     = 0
	StatusPress       = 1
	StatusDoubleClick = 2
)

// ButtonEvent is a press, release or double click
type ButtonEvent struct {
	Button byte
	Status int
	X, Y   int
}

// MotionEvent is pointer movement; Button is the held button or ButtonNone
type MotionEvent struct {
	X, Y   int
	Button byte
}

// KeyEvent is a decoded key press or release
type KeyEvent struct {
	Code    key.Code
	Pressed bool
}

// WheelEvent is a scroll step; positive Delta scrolls up
type WheelEvent struct {
	Delta float32
	X, Y  int
}

// Event is a tagged union used where events cross goroutines
type Event struct {
	Kind    Kind
	Payload any
}

// Button wraps a ButtonEvent
func Button(e ButtonEvent) Event { return Event{Kind: KindButton, Payload: e} }

// Motion wraps a MotionEvent
func Motion(e MotionEvent) Event { return Event{Kind: KindMotion, Payload: e} }

// Key wraps a KeyEvent
func Key(e KeyEvent) Event { return Event{Kind: KindKey, Payload: e} }

// Wheel wraps a WheelEvent
func Wheel(e WheelEvent) Event { return Event{Kind: KindWheel, Payload: e} }

// ButtonIndex converts a record button identity to 1..5, 0 for none
func ButtonIndex(b byte) int {
	if b >= Button1 && b <= Button5 {
		return int(b - ButtonNone)
	}
	return 0
}

// ButtonByte is the inverse of ButtonIndex
func ButtonByte(i int) byte {
	if i >= 1 && i <= 5 {
		return ButtonNone + byte(i)
	}
	return ButtonNone
}
