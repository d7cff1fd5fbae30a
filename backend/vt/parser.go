// Package vt decodes raw xterm/ANSI terminal input into key codes and mouse
// events, encodes key codes back into the sequences a terminal sends, and
// reads a raw-mode tty.
package vt

import (
	"unicode/utf8"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/key"
)

const esc = 0x1b

// Parser assembles a byte stream into events. Incomplete sequences stay
// buffered until more input arrives or Flush is called.
type Parser struct {
	buf  []byte
	held byte // mouse button currently down, 0 when none
}

// NewParser creates an empty parser
func NewParser() *Parser {
	return &Parser{buf: make([]byte, 0, 256)}
}

// Pending reports whether bytes are buffered
func (p *Parser) Pending() bool { return len(p.buf) > 0 }

// Feed appends data and returns every complete event
func (p *Parser) Feed(data []byte) []event.Event {
	p.buf = append(p.buf, data...)
	var out []event.Event
	consumed := p.parse(p.buf, &out)
	if consumed >= len(p.buf) {
		p.buf = p.buf[:0]
	} else if consumed > 0 {
		copy(p.buf, p.buf[consumed:])
		p.buf = p.buf[:len(p.buf)-consumed]
	}
	return out
}

// Flush resolves whatever is buffered after the escape timeout: a lone ESC
// becomes the Esc key, anything else is dropped
func (p *Parser) Flush() []event.Event {
	var out []event.Event
	if len(p.buf) > 0 && p.buf[0] == esc {
		out = append(out, keyEvent(key.Esc))
		if len(p.buf) > 1 {
			p.buf = p.buf[1:]
			rest := p.Feed(nil)
			out = append(out, rest...)
		}
	}
	p.buf = p.buf[:0]
	return out
}

func keyEvent(c key.Code) event.Event {
	return event.Key(event.KeyEvent{Code: c, Pressed: true})
}

// parse returns the number of bytes consumed, stopping at an incomplete
// sequence
func (p *Parser) parse(data []byte, out *[]event.Event) int {
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b == esc:
			if i+1 >= len(data) {
				return i
			}
			n, evs := p.parseEscape(data[i:])
			if n == 0 {
				return i
			}
			*out = append(*out, evs...)
			i += n
		case b >= 0x80:
			if !utf8.FullRune(data[i:]) {
				return i
			}
			r, size := utf8.DecodeRune(data[i:])
			if c := runeCode(r); c != 0 {
				*out = append(*out, keyEvent(c))
			}
			i += size
		default:
			*out = append(*out, keyEvent(control(b)))
			i++
		}
	}
	return i
}

// runeCode maps a decoded character to its key code, 0 outside the
// portable set
func runeCode(r rune) key.Code {
	c := key.Code(r)
	if c == key.SP || c.IsPrintable() {
		return c
	}
	return 0
}

// control maps a single byte that is not part of an escape sequence
func control(b byte) key.Code {
	switch {
	case b >= 0x20 && b < 0x7f:
		return key.Code(b)
	case b == 0x7f, b == 0x08:
		return key.BS
	case b == 0x09:
		return key.TAB
	case b == 0x0a, b == 0x0d:
		return key.CR
	case b == esc:
		return key.Esc
	case b == 0x00:
		return key.Ctrl(key.SP)
	case b <= 0x1a:
		return key.Ctrl(key.A + key.Code(b-1))
	}
	switch b {
	case 0x1c:
		return key.Ctrl(key.Backslash)
	case 0x1d:
		return key.Ctrl(key.BracketRight)
	case 0x1e:
		return key.Ctrl(key.Circum)
	}
	return key.Ctrl(key.Underscore)
}

// withAlt adds Alt to a code decoded after a bare ESC prefix. A printable
// character carries the Shift its layout position needed.
func withAlt(c key.Code) key.Code {
	b := c.Base()
	if b.IsPrintable() && c.Mods() == 0 {
		if _, shift, ok := key.USLayout.Key(rune(b)); ok && shift {
			return key.Compose(b, key.ModAlt|key.ModShift)
		}
	}
	return key.Compose(b, c.Mods()|key.ModAlt)
}

func (p *Parser) parseEscape(data []byte) (int, []event.Event) {
	switch b := data[1]; {
	case b == esc:
		return 2, []event.Event{keyEvent(key.Alt(key.Esc))}
	case b == '[':
		return p.parseCSI(data)
	case b == 'O':
		return parseSS3(data)
	case b >= 0x80:
		if !utf8.FullRune(data[1:]) {
			return 0, nil
		}
		r, size := utf8.DecodeRune(data[1:])
		if c := runeCode(r); c != 0 {
			return 1 + size, []event.Event{keyEvent(withAlt(c))}
		}
		return 1 + size, nil
	default:
		return 2, []event.Event{keyEvent(withAlt(control(b)))}
	}
}

// xterm modifier parameter: 1 + Shift(1) + Alt(2) + Ctrl(4) + Meta(8)
func paramMods(n int) key.Mod {
	if n < 2 {
		return 0
	}
	n--
	var m key.Mod
	if n&1 != 0 {
		m |= key.ModShift
	}
	if n&2 != 0 {
		m |= key.ModAlt
	}
	if n&4 != 0 {
		m |= key.ModCtrl
	}
	if n&8 != 0 {
		m |= key.ModSys
	}
	return m
}

func modParam(m key.Mod) int {
	n := 0
	if m&key.ModShift != 0 {
		n |= 1
	}
	if m&key.ModAlt != 0 {
		n |= 2
	}
	if m&key.ModCtrl != 0 {
		n |= 4
	}
	if m&key.ModSys != 0 {
		n |= 8
	}
	return n + 1
}

// letterFinal maps CSI and SS3 final bytes to keys
var letterFinal = map[byte]key.Code{
	'A': key.Up,
	'B': key.Down,
	'C': key.Right,
	'D': key.Left,
	'E': key.Middle,
	'H': key.Home,
	'F': key.End,
	'P': key.F1,
	'Q': key.F2,
	'R': key.F3,
	'S': key.F4,
}

// tildeKeys maps the first parameter of CSI n ~
var tildeKeys = map[int]key.Code{
	1: key.Home, 7: key.Home,
	2: key.Ins,
	3: key.Del,
	4: key.End, 8: key.End,
	5:  key.PgUp,
	6:  key.PgDn,
	11: key.F1, 12: key.F2, 13: key.F3, 14: key.F4, 15: key.F5,
	17: key.F6, 18: key.F7, 19: key.F8, 20: key.F9, 21: key.F10,
	23: key.F11, 24: key.F12,
}

// keypadSS3 maps application keypad mode finals
var keypadSS3 = map[byte]key.Code{
	'M': key.CR,
	'X': key.Equal,
	'j': key.Asterisk,
	'k': key.Plus,
	'l': key.Comma,
	'm': key.Minus,
	'n': key.Period,
	'o': key.Slash,
	'p': key.Num0, 'q': key.Num1, 'r': key.Num2, 's': key.Num3, 't': key.Num4,
	'u': key.Num5, 'v': key.Num6, 'w': key.Num7, 'x': key.Num8, 'y': key.Num9,
}

func (p *Parser) parseCSI(data []byte) (int, []event.Event) {
	if len(data) < 3 {
		return 0, nil
	}
	if data[2] == '<' {
		return p.parseSGRMouse(data)
	}
	// linux console F1..F5: ESC [ [ A..E
	if data[2] == '[' {
		if len(data) < 4 {
			return 0, nil
		}
		if data[3] >= 'A' && data[3] <= 'E' {
			return 4, []event.Event{keyEvent(key.F1 + key.Code(data[3]-'A'))}
		}
		return 4, nil
	}

	end := 2
	for ; end < len(data) && end < 32; end++ {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			break
		}
		if b < 0x20 || b > 0x3f {
			// not a parameter or intermediate byte, drop the introducer
			return 2, nil
		}
	}
	if end >= 32 {
		return end, nil
	}
	if end >= len(data) {
		return 0, nil
	}
	params, ok := parseParams(data[2:end])
	final := data[end]
	n := end + 1
	if !ok {
		return n, nil
	}
	c := csiKey(final, params)
	if c == 0 {
		return n, nil
	}
	return n, []event.Event{keyEvent(c)}
}

func param(params []int, i, def int) int {
	if i < len(params) && params[i] > 0 {
		return params[i]
	}
	return def
}

func csiKey(final byte, params []int) key.Code {
	m := paramMods(param(params, 1, 1))
	switch final {
	case 'Z':
		return key.TAB.With(m | key.ModShift)
	case '~':
		if c, ok := tildeKeys[param(params, 0, 0)]; ok {
			return c.With(m)
		}
		return 0
	case 'u':
		return csiUKey(param(params, 0, 0), m)
	}
	if c, ok := letterFinal[final]; ok {
		return c.With(m)
	}
	return 0
}

// csiUKey decodes the CSI codepoint;modifiers u form
func csiUKey(cp int, m key.Mod) key.Code {
	var base key.Code
	switch cp {
	case 8, 127:
		base = key.BS
	case 9:
		base = key.TAB
	case 13:
		base = key.CR
	case 27:
		base = key.Esc
	default:
		r := key.USLayout.Char(rune(cp), m&key.ModShift != 0)
		base = runeCode(r)
		if base == 0 {
			return 0
		}
	}
	return key.Compose(base, m)
}

func parseSS3(data []byte) (int, []event.Event) {
	if len(data) < 3 {
		return 0, nil
	}
	f := data[2]
	if c, ok := letterFinal[f]; ok {
		return 3, []event.Event{keyEvent(c)}
	}
	if c, ok := keypadSS3[f]; ok {
		return 3, []event.Event{keyEvent(c)}
	}
	return 3, nil
}

// parseParams reads semicolon separated decimal parameters
func parseParams(data []byte) ([]int, bool) {
	if len(data) == 0 {
		return nil, true
	}
	params := make([]int, 1, 4)
	for _, b := range data {
		switch {
		case b == ';':
			params = append(params, 0)
		case b >= '0' && b <= '9':
			v := &params[len(params)-1]
			*v = *v*10 + int(b-'0')
			if *v > 0x10FFFF {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return params, true
}

// parseSGRMouse decodes ESC [ < b ; x ; y M|m
func (p *Parser) parseSGRMouse(data []byte) (int, []event.Event) {
	end := 3
	for end < len(data) && end < 32 && data[end] != 'M' && data[end] != 'm' {
		end++
	}
	if end >= 32 {
		return end, nil
	}
	if end >= len(data) {
		return 0, nil
	}
	params, ok := parseParams(data[3:end])
	if !ok || len(params) != 3 {
		return end + 1, nil
	}
	btn, x, y := params[0], params[1]-1, params[2]-1
	release := data[end] == 'm'

	switch {
	case btn&64 != 0:
		switch btn & 3 {
		case 0:
			return end + 1, []event.Event{event.Wheel(event.WheelEvent{Delta: 1, X: x, Y: y})}
		case 1:
			return end + 1, []event.Event{event.Wheel(event.WheelEvent{Delta: -1, X: x, Y: y})}
		}
		return end + 1, nil
	case btn&32 != 0:
		return end + 1, []event.Event{event.Motion(event.MotionEvent{X: x, Y: y, Button: p.held})}
	}

	var b byte
	switch id := btn & 3; {
	case btn&128 != 0 && id < 2:
		b = event.Button4 + byte(id)
	case btn&128 != 0:
		return end + 1, nil
	case id == 3:
		// legacy release without identity
		b = p.held
	default:
		b = event.Button1 + byte(id)
	}
	if b == 0 {
		return end + 1, nil
	}
	status := event.StatusPress
	if release || btn&3 == 3 {
		status = event.StatusRelease
		if p.held == b {
			p.held = 0
		}
	} else {
		p.held = b
	}
	return end + 1, []event.Event{event.Button(event.ButtonEvent{Button: b, Status: status, X: x, Y: y})}
}
