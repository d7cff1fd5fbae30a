package winvk

import (
	"github.com/lixenwraith/keyway/key"
)

// Event is a keyboard message with the modifier and lock state sampled when
// it arrived
type Event struct {
	VK       uint16
	Extended bool // bit 24 of lParam
	Shift    bool
	Ctrl     bool
	Alt      bool
	Win      bool
	CapsLock bool
	NumLock  bool
	// Char is the translated character when the message carried one. Only
	// consulted for VK_PACKET and the accented keys.
	Char rune
}

// fixed maps keys whose code does not depend on the layout
var fixed = map[uint16]key.Code{
	VK_BACK:     key.BS,
	VK_TAB:      key.TAB,
	VK_CLEAR:    key.Middle,
	VK_RETURN:   key.CR,
	VK_SHIFT:    key.LShift,
	VK_CONTROL:  key.LCtrl,
	VK_MENU:     key.LAlt,
	VK_PAUSE:    key.Pause,
	VK_CAPITAL:  key.CapsLock,
	VK_ESCAPE:   key.Esc,
	VK_SPACE:    key.SP,
	VK_PRIOR:    key.PgUp,
	VK_NEXT:     key.PgDn,
	VK_END:      key.End,
	VK_HOME:     key.Home,
	VK_LEFT:     key.Left,
	VK_UP:       key.Up,
	VK_RIGHT:    key.Right,
	VK_DOWN:     key.Down,
	VK_SNAPSHOT: key.Print,
	VK_INSERT:   key.Ins,
	VK_DELETE:   key.Del,
	VK_HELP:     key.Help,
	VK_APPS:     key.Menu,
	VK_MULTIPLY: key.Asterisk,
	VK_ADD:      key.Plus,
	VK_SUBTRACT: key.Minus,
	VK_DECIMAL:  key.Period,
	VK_DIVIDE:   key.Slash,
	VK_NUMLOCK:  key.NumLock,
	VK_SCROLL:   key.ScrollLock,
	VK_LSHIFT:   key.LShift,
	VK_RSHIFT:   key.RShift,
	VK_LCONTROL: key.LCtrl,
	VK_RCONTROL: key.RCtrl,
	VK_LMENU:    key.LAlt,
	VK_RMENU:    key.RAlt,
}

// keypad maps navigation keys to the digit printed on the same keypad key
var keypad = map[uint16]key.Code{
	VK_INSERT: key.Num0,
	VK_END:    key.Num1,
	VK_DOWN:   key.Num2,
	VK_NEXT:   key.Num3,
	VK_LEFT:   key.Num4,
	VK_CLEAR:  key.Num5,
	VK_RIGHT:  key.Num6,
	VK_HOME:   key.Num7,
	VK_UP:     key.Num8,
	VK_PRIOR:  key.Num9,
	VK_DELETE: key.Period,
}

// oem maps punctuation keys to their unshifted US character
var oem = map[uint16]rune{
	VK_OEM_1:      ';',
	VK_OEM_PLUS:   '=',
	VK_OEM_COMMA:  ',',
	VK_OEM_MINUS:  '-',
	VK_OEM_PERIOD: '.',
	VK_OEM_2:      '/',
	VK_OEM_3:      '`',
	VK_OEM_4:      '[',
	VK_OEM_5:      '\\',
	VK_OEM_6:      ']',
	VK_OEM_7:      '\'',
}

var (
	fixedRev map[key.Code]uint16
	oemRev   map[rune]uint16
)

func init() {
	fixedRev = make(map[key.Code]uint16, len(fixed))
	for vk, c := range fixed {
		// generic modifier VKs decode like the left variants
		if vk == VK_SHIFT || vk == VK_CONTROL || vk == VK_MENU {
			continue
		}
		// operators that need Shift on the main keys are sent from the keypad
		if vk == VK_SUBTRACT || vk == VK_DECIMAL || vk == VK_DIVIDE {
			continue
		}
		fixedRev[c] = vk
	}
	oemRev = make(map[rune]uint16, len(oem))
	for vk, r := range oem {
		oemRev[r] = vk
	}
}

func keypadRev(r rune) (uint16, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint16(VK_NUMPAD0 + (r - '0')), true
	case r == '-':
		return VK_SUBTRACT, true
	case r == '.':
		return VK_DECIMAL, true
	case r == '/':
		return VK_DIVIDE, true
	}
	return 0, false
}

func isAccented(r rune) bool {
	switch key.Code(r) {
	case key.Ccedilla, key.LowerCcedilla, key.Acute, key.Diaeresis:
		return true
	}
	return false
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
	if e.Win {
		m |= key.ModSys
	}
	return m
}

// Decode converts a keyboard message to a key code, 0 when the key has no
// portable identity
func Decode(e Event) key.Code {
	m := e.mods()
	if isAccented(e.Char) {
		return key.Compose(key.Code(e.Char), m)
	}
	if e.VK == VK_PACKET {
		if e.Char > 0 && e.Char < 0x100 {
			return key.Compose(key.Code(e.Char), m)
		}
		return 0
	}

	if !e.Extended && !e.NumLock {
		if c, ok := keypad[e.VK]; ok {
			return key.Compose(c, m)
		}
	}

	switch vk := e.VK; {
	case vk >= 'A' && vk <= 'Z':
		base := key.Code(vk)
		if e.Shift == e.CapsLock {
			base += 'a' - 'A'
		}
		return key.Compose(base, m)
	case vk >= '0' && vk <= '9':
		return key.Compose(key.Code(key.USLayout.Char(rune(vk), e.Shift)), m)
	case vk >= VK_NUMPAD0 && vk <= VK_NUMPAD9:
		return key.Compose(key.Num0+key.Code(vk-VK_NUMPAD0), m)
	case vk >= VK_F1 && vk <= VK_F12:
		return (key.F1 + key.Code(vk-VK_F1)).With(m)
	}
	if r, ok := oem[e.VK]; ok {
		return key.Compose(key.Code(key.USLayout.Char(r, e.Shift)), m)
	}
	if c, ok := fixed[e.VK]; ok {
		return key.Compose(c, m)
	}
	return 0
}

// Encode returns a message that decodes back to c. Navigation keys are
// marked extended so they are not taken for keypad digits.
func Encode(c key.Code) (Event, bool) {
	e := Event{
		Shift: c.IsShift(),
		Ctrl:  c.IsCtrl(),
		Alt:   c.IsAlt(),
		Win:   c.IsSys(),
	}
	base := c.Base()
	switch {
	case base >= 'A' && base <= 'Z':
		e.VK = uint16(base)
		if !e.Ctrl && !e.Alt && !e.Win {
			e.Shift = true
		}
		return e, true
	case base >= 'a' && base <= 'z':
		e.VK = uint16(base - ('a' - 'A'))
		return e, true
	case base >= key.F1 && base <= key.F12:
		e.VK = uint16(VK_F1 + (base - key.F1))
		return e, true
	case isAccented(rune(base)):
		e.VK = VK_PACKET
		e.Char = rune(base)
		return e, true
	}
	if vk, ok := fixedRev[base]; ok {
		e.VK = vk
		if _, nav := keypad[vk]; nav {
			e.Extended = true
		}
		return e, true
	}
	r, shift, ok := key.USLayout.Key(rune(base))
	if !ok {
		return Event{}, false
	}
	// Shift held with an unshifted character only comes from the keypad
	if e.Shift && !shift {
		if vk, ok := keypadRev(r); ok {
			e.VK = vk
			return e, true
		}
	}
	switch {
	case r >= '0' && r <= '9':
		e.VK = uint16(r)
	default:
		vk, ok := oemRev[r]
		if !ok {
			return Event{}, false
		}
		e.VK = vk
	}
	if shift {
		e.Shift = true
	}
	return e, true
}
