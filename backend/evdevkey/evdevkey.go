// Package evdevkey converts Linux input event key codes to key codes and
// back, and reads keyboards and mice through /dev/input.
package evdevkey

import (
	"github.com/holoplot/go-evdev"

	"github.com/lixenwraith/keyway/key"
)

// Event is a key code with the modifier and lock state at the time it fired
type Event struct {
	Code     evdev.EvCode
	Shift    bool
	Ctrl     bool
	Alt      bool
	Meta     bool
	CapsLock bool
	NumLock  bool
}

var letters = map[evdev.EvCode]key.Code{
	evdev.KEY_A: key.LowerA, evdev.KEY_B: key.LowerB, evdev.KEY_C: key.LowerC,
	evdev.KEY_D: key.LowerD, evdev.KEY_E: key.LowerE, evdev.KEY_F: key.LowerF,
	evdev.KEY_G: key.LowerG, evdev.KEY_H: key.LowerH, evdev.KEY_I: key.LowerI,
	evdev.KEY_J: key.LowerJ, evdev.KEY_K: key.LowerK, evdev.KEY_L: key.LowerL,
	evdev.KEY_M: key.LowerM, evdev.KEY_N: key.LowerN, evdev.KEY_O: key.LowerO,
	evdev.KEY_P: key.LowerP, evdev.KEY_Q: key.LowerQ, evdev.KEY_R: key.LowerR,
	evdev.KEY_S: key.LowerS, evdev.KEY_T: key.LowerT, evdev.KEY_U: key.LowerU,
	evdev.KEY_V: key.LowerV, evdev.KEY_W: key.LowerW, evdev.KEY_X: key.LowerX,
	evdev.KEY_Y: key.LowerY, evdev.KEY_Z: key.LowerZ,
}

// chars maps main block keys to their unshifted US character
var chars = map[evdev.EvCode]rune{
	evdev.KEY_1: '1', evdev.KEY_2: '2', evdev.KEY_3: '3', evdev.KEY_4: '4',
	evdev.KEY_5: '5', evdev.KEY_6: '6', evdev.KEY_7: '7', evdev.KEY_8: '8',
	evdev.KEY_9: '9', evdev.KEY_0: '0',
	evdev.KEY_MINUS:      '-',
	evdev.KEY_EQUAL:      '=',
	evdev.KEY_LEFTBRACE:  '[',
	evdev.KEY_RIGHTBRACE: ']',
	evdev.KEY_SEMICOLON:  ';',
	evdev.KEY_APOSTROPHE: '\'',
	evdev.KEY_GRAVE:      '`',
	evdev.KEY_BACKSLASH:  '\\',
	evdev.KEY_COMMA:      ',',
	evdev.KEY_DOT:        '.',
	evdev.KEY_SLASH:      '/',
}

var fixed = map[evdev.EvCode]key.Code{
	evdev.KEY_ESC:        key.Esc,
	evdev.KEY_BACKSPACE:  key.BS,
	evdev.KEY_TAB:        key.TAB,
	evdev.KEY_ENTER:      key.CR,
	evdev.KEY_SPACE:      key.SP,
	evdev.KEY_LEFTCTRL:   key.LCtrl,
	evdev.KEY_RIGHTCTRL:  key.RCtrl,
	evdev.KEY_LEFTSHIFT:  key.LShift,
	evdev.KEY_RIGHTSHIFT: key.RShift,
	evdev.KEY_LEFTALT:    key.LAlt,
	evdev.KEY_RIGHTALT:   key.RAlt,
	evdev.KEY_CAPSLOCK:   key.CapsLock,
	evdev.KEY_NUMLOCK:    key.NumLock,
	evdev.KEY_SCROLLLOCK: key.ScrollLock,
	evdev.KEY_SYSRQ:      key.Print,
	evdev.KEY_PAUSE:      key.Pause,
	evdev.KEY_HOME:       key.Home,
	evdev.KEY_UP:         key.Up,
	evdev.KEY_PAGEUP:     key.PgUp,
	evdev.KEY_LEFT:       key.Left,
	evdev.KEY_RIGHT:      key.Right,
	evdev.KEY_END:        key.End,
	evdev.KEY_DOWN:       key.Down,
	evdev.KEY_PAGEDOWN:   key.PgDn,
	evdev.KEY_INSERT:     key.Ins,
	evdev.KEY_DELETE:     key.Del,
	evdev.KEY_COMPOSE:    key.Menu,
	evdev.KEY_HELP:       key.Help,
	evdev.KEY_KPENTER:    key.CR,
	evdev.KEY_KPASTERISK: key.Asterisk,
	evdev.KEY_KPPLUS:     key.Plus,
	evdev.KEY_KPMINUS:    key.Minus,
	evdev.KEY_KPSLASH:    key.Slash,
	evdev.KEY_KPEQUAL:    key.Equal,
}

var functionKeys = []evdev.EvCode{
	evdev.KEY_F1, evdev.KEY_F2, evdev.KEY_F3, evdev.KEY_F4,
	evdev.KEY_F5, evdev.KEY_F6, evdev.KEY_F7, evdev.KEY_F8,
	evdev.KEY_F9, evdev.KEY_F10, evdev.KEY_F11, evdev.KEY_F12,
}

// keypadKey pairs a keypad key with what it types with and without NumLock
type keypadKey struct {
	digit, nav key.Code
}

var keypad = map[evdev.EvCode]keypadKey{
	evdev.KEY_KP0:   {key.Num0, key.Ins},
	evdev.KEY_KP1:   {key.Num1, key.End},
	evdev.KEY_KP2:   {key.Num2, key.Down},
	evdev.KEY_KP3:   {key.Num3, key.PgDn},
	evdev.KEY_KP4:   {key.Num4, key.Left},
	evdev.KEY_KP5:   {key.Num5, key.Middle},
	evdev.KEY_KP6:   {key.Num6, key.Right},
	evdev.KEY_KP7:   {key.Num7, key.Home},
	evdev.KEY_KP8:   {key.Num8, key.Up},
	evdev.KEY_KP9:   {key.Num9, key.PgUp},
	evdev.KEY_KPDOT: {key.Period, key.Del},
}

var (
	fixedRev  = make(map[key.Code]evdev.EvCode)
	charRev   = make(map[rune]evdev.EvCode)
	letterRev = make(map[key.Code]evdev.EvCode)
	digitPad  = make(map[key.Code]evdev.EvCode)
	middlePad evdev.EvCode
)

func init() {
	for code, c := range fixed {
		switch code {
		case evdev.KEY_KPENTER, evdev.KEY_KPMINUS, evdev.KEY_KPSLASH, evdev.KEY_KPEQUAL:
			// typed without Shift on the main block
			continue
		}
		fixedRev[c] = code
	}
	for code, r := range chars {
		charRev[r] = code
	}
	for code, c := range letters {
		letterRev[c] = code
	}
	for code, k := range keypad {
		digitPad[k.digit] = code
		if k.nav == key.Middle {
			middlePad = code
		}
	}
	for i, code := range functionKeys {
		fixedRev[key.F1+key.Code(i)] = code
	}
}

func (e Event) mods() key.Mod {
	var m key.Mod
	if e.Shift {
		m |= key.ModShift
	}
	if e.Ctrl {
		m |= key.ModCtrl
	}
	if e.Alt {
		m |= key.ModAlt
	}
	if e.Meta {
		m |= key.ModSys
	}
	return m
}

// Decode converts a key event to a key code, 0 for keys with no portable
// identity
func Decode(e Event) key.Code {
	m := e.mods()
	if c, ok := letters[e.Code]; ok {
		if e.Shift != e.CapsLock {
			c = key.ToUpper(c)
		}
		return key.Compose(c, m)
	}
	if r, ok := chars[e.Code]; ok {
		return key.Compose(key.Code(key.USLayout.Char(r, e.Shift)), m)
	}
	if k, ok := keypad[e.Code]; ok {
		if e.NumLock {
			return key.Compose(k.digit, m)
		}
		return key.Compose(k.nav, m)
	}
	for i, code := range functionKeys {
		if code == e.Code {
			return (key.F1 + key.Code(i)).With(m)
		}
	}
	if c, ok := fixed[e.Code]; ok {
		return key.Compose(c, m)
	}
	return 0
}

// Encode returns a key event that decodes back to c
func Encode(c key.Code) (Event, bool) {
	e := Event{
		Shift: c.IsShift(),
		Ctrl:  c.IsCtrl(),
		Alt:   c.IsAlt(),
		Meta:  c.IsSys(),
	}
	base := c.Base()
	if base >= 'A' && base <= 'Z' {
		e.Code = letterRev[base+('a'-'A')]
		if !e.Ctrl && !e.Alt && !e.Meta {
			e.Shift = true
		}
		return e, true
	}
	if code, ok := letterRev[base]; ok {
		e.Code = code
		return e, true
	}
	if base == key.Middle {
		e.Code = middlePad
		return e, true
	}
	if code, ok := fixedRev[base]; ok {
		e.Code = code
		return e, true
	}
	r, shift, ok := key.USLayout.Key(rune(base))
	if !ok {
		return Event{}, false
	}
	// Shift held with an unshifted character only comes from the keypad
	if e.Shift && !shift {
		if code, ok := digitPad[base]; ok {
			e.Code = code
			e.NumLock = true
			return e, true
		}
		switch base {
		case key.Minus:
			e.Code = evdev.KEY_KPMINUS
			return e, true
		case key.Slash:
			e.Code = evdev.KEY_KPSLASH
			return e, true
		case key.Equal:
			e.Code = evdev.KEY_KPEQUAL
			return e, true
		}
	}
	code, ok := charRev[r]
	if !ok {
		return Event{}, false
	}
	e.Code = code
	if shift {
		e.Shift = true
	}
	return e, true
}
