// Package x11key converts X11 keysyms and modifier state, as delivered by
// Xlib and GDK, to key codes and back.
package x11key

import (
	"github.com/lixenwraith/keyway/key"
)

// Modifier state masks
const (
	ShiftMask   = 1 << 0
	LockMask    = 1 << 1
	ControlMask = 1 << 2
	Mod1Mask    = 1 << 3 // Alt
	Mod2Mask    = 1 << 4 // NumLock
	Mod4Mask    = 1 << 6 // Super
	SuperMask   = 1 << 26
)

// Keysyms outside the function key page
const (
	XK_ISO_Left_Tab = 0xFE20
	XK_diaeresis    = 0xA8
	XK_acute        = 0xB4
	XK_Ccedilla     = 0xC7
	XK_ccedilla     = 0xE7
)

// Event is a key event's keysym and state
type Event struct {
	Keysym uint32
	State  uint32
}

type extEntry struct {
	low    byte
	code   key.Code
	keypad bool
}

// extEntries lists the 0xFFxx keysyms by low byte
var extEntries = []extEntry{
	{0x08, key.BS, false},
	{0x09, key.TAB, false},
	{0x0B, key.Middle, false}, // Clear
	{0x0D, key.CR, false},
	{0x13, key.Pause, false},
	{0x14, key.ScrollLock, false},
	{0x1B, key.Esc, false},
	{0x50, key.Home, false},
	{0x51, key.Left, false},
	{0x52, key.Up, false},
	{0x53, key.Right, false},
	{0x54, key.Down, false},
	{0x55, key.PgUp, false},
	{0x56, key.PgDn, false},
	{0x57, key.End, false},
	{0x61, key.Print, false},
	{0x63, key.Ins, false},
	{0x67, key.Menu, false},
	{0x6A, key.Help, false},
	{0x7F, key.NumLock, false},
	{0xE1, key.LShift, false},
	{0xE2, key.RShift, false},
	{0xE3, key.LCtrl, false},
	{0xE4, key.RCtrl, false},
	{0xE5, key.CapsLock, false},
	{0xE9, key.LAlt, false},
	{0xEA, key.RAlt, false},
	{0xFF, key.Del, false},

	{0x80, key.SP, true},
	{0x89, key.TAB, true},
	{0x8D, key.CR, true},
	{0x95, key.Home, true},
	{0x96, key.Left, true},
	{0x97, key.Up, true},
	{0x98, key.Right, true},
	{0x99, key.Down, true},
	{0x9A, key.PgUp, true},
	{0x9B, key.PgDn, true},
	{0x9C, key.End, true},
	{0x9D, key.Middle, true}, // KP_Begin
	{0x9E, key.Ins, true},
	{0x9F, key.Del, true},
	{0xAA, key.Asterisk, true},
	{0xAB, key.Plus, true},
	{0xAC, key.Comma, true},
	{0xAD, key.Minus, true},
	{0xAE, key.Period, true},
	{0xAF, key.Slash, true},
	{0xBD, key.Equal, true},
}

var (
	ext    [256]key.Code
	extRev = make(map[key.Code]uint32)
)

func init() {
	for _, e := range extEntries {
		ext[e.low] = e.code
		if !e.keypad {
			extRev[e.code] = 0xFF00 | uint32(e.low)
		}
	}
	for i := 0; i < 10; i++ {
		ext[0xB0+i] = key.Num0 + key.Code(i) // KP_0..KP_9
	}
	for i := 0; i < 12; i++ {
		low := 0xBE + i
		ext[low] = key.F1 + key.Code(i)
		extRev[ext[low]] = 0xFF00 | uint32(low)
	}
}

func mods(state uint32) key.Mod {
	var m key.Mod
	if state&ShiftMask != 0 {
		m |= key.ModShift
	}
	if state&ControlMask != 0 {
		m |= key.ModCtrl
	}
	if state&Mod1Mask != 0 {
		m |= key.ModAlt
	}
	if state&(Mod4Mask|SuperMask) != 0 {
		m |= key.ModSys
	}
	return m
}

// Decode converts a keysym and state to a key code, 0 for keysyms with no
// portable identity
func Decode(e Event) key.Code {
	m := mods(e.State)
	ks := e.Keysym
	switch {
	case ks >= 0xFF00 && ks <= 0xFFFF:
		c := ext[ks&0xFF]
		if c == 0 {
			return 0
		}
		return key.Compose(c, m)
	case ks == XK_ISO_Left_Tab:
		return key.Compose(key.TAB, m|key.ModShift)
	case ks >= 0x20 && ks <= 0x7E,
		ks == XK_diaeresis, ks == XK_acute, ks == XK_Ccedilla, ks == XK_ccedilla:
		return key.Compose(key.Code(ks), m)
	}
	return 0
}

// Encode returns the keysym and state that decode back to c
func Encode(c key.Code) (Event, bool) {
	var state uint32
	if c.IsShift() {
		state |= ShiftMask
	}
	if c.IsCtrl() {
		state |= ControlMask
	}
	if c.IsAlt() {
		state |= Mod1Mask
	}
	if c.IsSys() {
		state |= Mod4Mask
	}
	base := c.Base()
	switch {
	case base == key.SP:
		return Event{Keysym: 0x20, State: state}, true
	case base > key.SP && base <= key.Tilde,
		base == key.Diaeresis, base == key.Acute, base == key.Ccedilla, base == key.LowerCcedilla:
		if base >= 'A' && base <= 'Z' && !c.IsShift() && (c.IsCtrl() || c.IsAlt() || c.IsSys()) {
			base += 'a' - 'A'
		}
		return Event{Keysym: uint32(base), State: state}, true
	}
	if ks, ok := extRev[base]; ok {
		return Event{Keysym: ks, State: state}, true
	}
	return Event{}, false
}
