package vt

import (
	"strconv"
	"unicode/utf8"

	"github.com/lixenwraith/keyway/key"
)

// letterSeq holds the final byte of keys sent as CSI 1;m X
var letterSeq = map[key.Code]byte{
	key.Up:     'A',
	key.Down:   'B',
	key.Right:  'C',
	key.Left:   'D',
	key.Middle: 'E',
	key.Home:   'H',
	key.End:    'F',
}

var tildeSeq = map[key.Code]int{
	key.Ins: 2, key.Del: 3, key.PgUp: 5, key.PgDn: 6,
	key.F5: 15, key.F6: 17, key.F7: 18, key.F8: 19,
	key.F9: 20, key.F10: 21, key.F11: 23, key.F12: 24,
}

// Encode returns the bytes an xterm compatible terminal sends for c.
// Legacy single byte and ESC prefixed forms are used where they are
// unambiguous, the CSI u form otherwise. A bare Esc needs the reader's
// escape timeout to be recognised.
func Encode(c key.Code) ([]byte, bool) {
	base, m := c.Base(), c.Mods()

	if b, ok := letterSeq[base]; ok {
		return csiSeq(1, m, b), true
	}
	if n, ok := tildeSeq[base]; ok {
		return csiTilde(n, m), true
	}
	if base >= key.F1 && base <= key.F4 {
		f := byte('P' + (base - key.F1))
		if m == 0 {
			return []byte{esc, 'O', f}, true
		}
		return csiSeq(1, m, f), true
	}
	if base == key.TAB && m&key.ModShift != 0 {
		return csiSeq(1, m&^key.ModShift, 'Z'), true
	}

	switch m {
	case 0:
		if b, ok := plain(base); ok {
			return b, true
		}
		return nil, false
	case key.ModCtrl:
		if b, ok := ctrlByte(base); ok {
			return []byte{b}, true
		}
	}
	if m&key.ModAlt != 0 {
		if b, ok := altSuffix(base, m&^key.ModAlt); ok {
			return append([]byte{esc}, b...), true
		}
	}
	return csiU(base, m)
}

// csiSeq builds ESC [ X or ESC [ n;m X
func csiSeq(n int, m key.Mod, final byte) []byte {
	if m == 0 {
		return []byte{esc, '[', final}
	}
	b := []byte{esc, '['}
	b = strconv.AppendInt(b, int64(n), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(modParam(m)), 10)
	return append(b, final)
}

func csiTilde(n int, m key.Mod) []byte {
	b := []byte{esc, '['}
	b = strconv.AppendInt(b, int64(n), 10)
	if m != 0 {
		b = append(b, ';')
		b = strconv.AppendInt(b, int64(modParam(m)), 10)
	}
	return append(b, '~')
}

func plain(base key.Code) ([]byte, bool) {
	switch base {
	case key.BS:
		return []byte{0x7f}, true
	case key.TAB, key.CR, key.SP:
		return []byte{byte(base)}, true
	case key.Esc:
		return []byte{esc}, true
	}
	if !base.IsPrintable() {
		return nil, false
	}
	return utf8.AppendRune(nil, rune(base)), true
}

func ctrlByte(base key.Code) (byte, bool) {
	switch base {
	case key.SP:
		return 0x00, true
	case key.Backslash:
		return 0x1c, true
	case key.BracketRight:
		return 0x1d, true
	case key.Circum:
		return 0x1e, true
	case key.Underscore:
		return 0x1f, true
	case key.H, key.I, key.J, key.M:
		// collide with BS, TAB and Enter
		return 0, false
	}
	if base >= key.A && base <= key.Z {
		return byte(base-key.A) + 1, true
	}
	return 0, false
}

// altSuffix returns what follows ESC when Alt is sent as a prefix. The
// receiving side infers Shift for printable characters from the layout, so
// the remaining modifiers must match that inference exactly.
func altSuffix(base key.Code, rest key.Mod) ([]byte, bool) {
	if rest == key.ModCtrl {
		if b, ok := ctrlByte(base); ok {
			return []byte{b}, true
		}
		return nil, false
	}
	var ch rune
	switch {
	case base >= key.A && base <= key.Z:
		switch rest {
		case 0:
			ch = rune(base + ('a' - 'A'))
		case key.ModShift:
			ch = rune(base)
		default:
			return nil, false
		}
	case base.IsPrintable():
		_, shift, ok := key.USLayout.Key(rune(base))
		want := key.Mod(0)
		if ok && shift {
			want = key.ModShift
		}
		if rest != want {
			return nil, false
		}
		ch = rune(base)
	default:
		if rest != 0 {
			return nil, false
		}
		return plain(base)
	}
	// ESC [ and ESC O start sequences
	if ch == '[' || ch == 'O' {
		return nil, false
	}
	return utf8.AppendRune(nil, ch), true
}

// csiU builds ESC [ codepoint ; m u
func csiU(base key.Code, m key.Mod) ([]byte, bool) {
	var cp int
	switch {
	case base == key.BS:
		cp = 127
	case base == key.TAB, base == key.CR, base == key.SP:
		cp = int(base)
	case base == key.Esc:
		cp = 27
	case base.IsPrintable():
		cp = int(base)
	default:
		return nil, false
	}
	b := []byte{esc, '['}
	b = strconv.AppendInt(b, int64(cp), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(modParam(m)), 10)
	return append(b, 'u'), true
}
