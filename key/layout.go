package key

// Layout maps physical key characters to the characters they produce.
// Backends that see physical keys (virtual keys, evdev codes) use it to
// resolve the character a key types under Shift.
type Layout interface {
	// Char returns the character typed by the key whose unshifted character is r
	Char(unshifted rune, shift bool) rune
	// Key returns the unshifted key character and Shift state that type ch
	Key(ch rune) (unshifted rune, shift bool, ok bool)
}

// USLayout is the US ANSI layout
var USLayout Layout = usLayout{}

type usLayout struct{}

// usShifted pairs each unshifted character with its shifted form
var usShifted = map[rune]rune{
	'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
	'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
	'-': '_', '=': '+', '[': '{', ']': '}', '\\': '|',
	';': ':', '\'': '"', ',': '<', '.': '>', '/': '?', '`': '~',
}

var usUnshifted = func() map[rune]rune {
	m := make(map[rune]rune, len(usShifted))
	for k, v := range usShifted {
		m[v] = k
	}
	return m
}()

func (usLayout) Char(r rune, shift bool) rune {
	if !shift {
		return r
	}
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	if s, ok := usShifted[r]; ok {
		return s
	}
	return r
}

func (usLayout) Key(ch rune) (rune, bool, bool) {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == ' ':
		return ch, false, true
	case ch >= 'A' && ch <= 'Z':
		return ch + ('a' - 'A'), true, true
	}
	if _, ok := usShifted[ch]; ok {
		return ch, false, true
	}
	if u, ok := usUnshifted[ch]; ok {
		return u, true, true
	}
	return 0, false, false
}
