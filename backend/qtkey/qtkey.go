// Package qtkey converts Qt key events (Qt::Key values, keyboard modifier
// flags and the event text) to key codes and back.
package qtkey

import (
	"unicode/utf8"

	"github.com/lixenwraith/keyway/key"
)

// Qt::Key values for the non character keys
const (
	Key_Escape     = 0x01000000
	Key_Tab        = 0x01000001
	Key_Backtab    = 0x01000002
	Key_Backspace  = 0x01000003
	Key_Return     = 0x01000004
	Key_Enter      = 0x01000005
	Key_Insert     = 0x01000006
	Key_Delete     = 0x01000007
	Key_Pause      = 0x01000008
	Key_Print      = 0x01000009
	Key_Clear      = 0x0100000B
	Key_Home       = 0x01000010
	Key_End        = 0x01000011
	Key_Left       = 0x01000012
	Key_Up         = 0x01000013
	Key_Right      = 0x01000014
	Key_Down       = 0x01000015
	Key_PageUp     = 0x01000016
	Key_PageDown   = 0x01000017
	Key_Shift      = 0x01000020
	Key_Control    = 0x01000021
	Key_Meta       = 0x01000022
	Key_Alt        = 0x01000023
	Key_CapsLock   = 0x01000024
	Key_NumLock    = 0x01000025
	Key_ScrollLock = 0x01000026
	Key_F1         = 0x01000030
	Key_F12        = 0x0100003B
	Key_Menu       = 0x01000055
	Key_Help       = 0x01000058
	Key_Space      = 0x20
	Key_A          = 0x41
	Key_Z          = 0x5A
	Key_diaeresis  = 0xA8
	Key_acute      = 0xB4
	Key_Ccedilla   = 0xC7
)

// Qt::KeyboardModifier flags
const (
	ShiftModifier   = 0x02000000
	ControlModifier = 0x04000000
	AltModifier     = 0x08000000
	MetaModifier    = 0x10000000
	KeypadModifier  = 0x20000000
)

// Event is the part of a QKeyEvent the decoder reads
type Event struct {
	Key       int
	Modifiers uint32
	Text      string
}

var special = map[int]key.Code{
	Key_Escape:     key.Esc,
	Key_Tab:        key.TAB,
	Key_Backspace:  key.BS,
	Key_Return:     key.CR,
	Key_Enter:      key.CR,
	Key_Insert:     key.Ins,
	Key_Delete:     key.Del,
	Key_Pause:      key.Pause,
	Key_Print:      key.Print,
	Key_Clear:      key.Middle,
	Key_Home:       key.Home,
	Key_End:        key.End,
	Key_Left:       key.Left,
	Key_Up:         key.Up,
	Key_Right:      key.Right,
	Key_Down:       key.Down,
	Key_PageUp:     key.PgUp,
	Key_PageDown:   key.PgDn,
	Key_Shift:      key.LShift,
	Key_Control:    key.LCtrl,
	Key_Alt:        key.LAlt,
	Key_CapsLock:   key.CapsLock,
	Key_NumLock:    key.NumLock,
	Key_ScrollLock: key.ScrollLock,
	Key_Menu:       key.Menu,
	Key_Help:       key.Help,
}

// keypad is what the navigation keys type with NumLock on
var keypad = map[int]key.Code{
	Key_Insert:   key.Num0,
	Key_End:      key.Num1,
	Key_Down:     key.Num2,
	Key_PageDown: key.Num3,
	Key_Left:     key.Num4,
	Key_Clear:    key.Num5,
	Key_Right:    key.Num6,
	Key_Home:     key.Num7,
	Key_Up:       key.Num8,
	Key_PageUp:   key.Num9,
	Key_Delete:   key.Period,
}

var specialRev = func() map[key.Code]int {
	m := make(map[key.Code]int, len(special))
	for k, c := range special {
		if k == Key_Enter {
			continue
		}
		m[c] = k
	}
	return m
}()

func mods(qm uint32) key.Mod {
	var m key.Mod
	if qm&ShiftModifier != 0 {
		m |= key.ModShift
	}
	if qm&ControlModifier != 0 {
		m |= key.ModCtrl
	}
	if qm&AltModifier != 0 {
		m |= key.ModAlt
	}
	if qm&MetaModifier != 0 {
		m |= key.ModSys
	}
	return m
}

func qtMods(c key.Code) uint32 {
	var qm uint32
	if c.IsShift() {
		qm |= ShiftModifier
	}
	if c.IsCtrl() {
		qm |= ControlModifier
	}
	if c.IsAlt() {
		qm |= AltModifier
	}
	if c.IsSys() {
		qm |= MetaModifier
	}
	return qm
}

// textRune returns the single character of the event text, 0 otherwise
func textRune(s string) rune {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || n != len(s) || r == utf8.RuneError {
		return 0
	}
	return r
}

// Decode converts a Qt key event to a key code, 0 for keys with no portable
// identity
func Decode(e Event) key.Code {
	m := mods(e.Modifiers)
	k := e.Key

	if k == Key_Backtab {
		return key.Compose(key.TAB, m|key.ModShift)
	}
	if e.Modifiers&KeypadModifier != 0 {
		if c, ok := keypad[k]; ok {
			return key.Compose(c, m)
		}
	}
	switch {
	case k >= Key_A && k <= Key_Z:
		base := key.Code(k)
		switch r := textRune(e.Text); {
		case r >= 'a' && r <= 'z':
			base = key.Code(r)
		case r >= 'A' && r <= 'Z':
		case m&key.ModShift == 0:
			base += 'a' - 'A'
		}
		return key.Compose(base, m)
	case k == Key_Ccedilla:
		base := key.Ccedilla
		switch r := textRune(e.Text); {
		case r == 'ç':
			base = key.LowerCcedilla
		case r == 'Ç':
		case m&key.ModShift == 0:
			base = key.LowerCcedilla
		}
		return key.Compose(base, m)
	case k > Key_Space && k <= '~', k == Key_diaeresis, k == Key_acute:
		return key.Compose(key.Code(k), m)
	case k == Key_Space:
		return key.Compose(key.SP, m)
	case k >= Key_F1 && k <= Key_F12:
		return (key.F1 + key.Code(k-Key_F1)).With(m)
	}
	if c, ok := special[k]; ok {
		return key.Compose(c, m)
	}
	return 0
}

// Encode returns an event that decodes back to c
func Encode(c key.Code) (Event, bool) {
	e := Event{Modifiers: qtMods(c)}
	plain := !c.IsCtrl() && !c.IsAlt() && !c.IsSys()
	base := c.Base()
	switch {
	case base >= 'a' && base <= 'z':
		e.Key = int(base - ('a' - 'A'))
		e.Text = string(rune(base))
	case base >= 'A' && base <= 'Z':
		e.Key = int(base)
		if plain {
			e.Modifiers |= ShiftModifier
			e.Text = string(rune(base))
		}
	case base == key.Ccedilla || base == key.LowerCcedilla:
		e.Key = Key_Ccedilla
		e.Text = string(rune(base))
	case base > key.SP && base <= key.Tilde, base == key.Diaeresis, base == key.Acute:
		e.Key = int(base)
		if plain {
			e.Text = string(rune(base))
		}
	case base == key.SP:
		e.Key = Key_Space
		e.Text = " "
	case base >= key.F1 && base <= key.F12:
		e.Key = Key_F1 + int(base-key.F1)
	default:
		k, ok := specialRev[base]
		if !ok {
			return Event{}, false
		}
		e.Key = k
	}
	return e, true
}
