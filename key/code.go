// @focus: #input { keys }
package key

// Code is a portable key code: a base key in the low 28 bits and the
// Shift/Ctrl/Alt/Sys modifiers in the high 4 bits
type Code uint32

// Mod is a set of modifier bits as stored inside a Code
type Mod uint32

const (
	ModNone  Mod = 0
	ModShift Mod = 0x10000000
	ModCtrl  Mod = 0x20000000
	ModAlt   Mod = 0x40000000
	ModSys   Mod = 0x80000000 // Win key or Apple Command key

	ModMask Mod = ModShift | ModCtrl | ModAlt | ModSys
)

const baseMask = Code(0x0FFFFFFF)

// Control keys with fixed names
const (
	BS  Code = 0x08
	TAB Code = 0x09
	LF  Code = 0x0A
	CR  Code = 0x0D
)

// Printable range, same values as ASCII
const (
	SP           Code = ' '
	Exclam       Code = '!'
	QuoteDbl     Code = '"'
	NumberSign   Code = '#'
	Dollar       Code = '$'
	Percent      Code = '%'
	Ampersand    Code = '&'
	Apostrophe   Code = '\''
	ParentLeft   Code = '('
	ParentRight  Code = ')'
	Asterisk     Code = '*'
	Plus         Code = '+'
	Comma        Code = ','
	Minus        Code = '-'
	Period       Code = '.'
	Slash        Code = '/'
	Num0         Code = '0'
	Num1         Code = '1'
	Num2         Code = '2'
	Num3         Code = '3'
	Num4         Code = '4'
	Num5         Code = '5'
	Num6         Code = '6'
	Num7         Code = '7'
	Num8         Code = '8'
	Num9         Code = '9'
	Colon        Code = ':'
	Semicolon    Code = ';'
	Less         Code = '<'
	Equal        Code = '='
	Greater      Code = '>'
	Question     Code = '?'
	At           Code = '@'
	BracketLeft  Code = '['
	Backslash    Code = '\\'
	BracketRight Code = ']'
	Circum       Code = '^'
	Underscore   Code = '_'
	Grave        Code = '`'
	BraceLeft    Code = '{'
	Bar          Code = '|'
	BraceRight   Code = '}'
	Tilde        Code = '~'
)

// Letters. Upper case keys are A..Z, lower case LowerA..LowerZ
const (
	A Code = 'A' + iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
)

const (
	LowerA Code = 'a' + iota
	LowerB
	LowerC
	LowerD
	LowerE
	LowerF
	LowerG
	LowerH
	LowerI
	LowerJ
	LowerK
	LowerL
	LowerM
	LowerN
	LowerO
	LowerP
	LowerQ
	LowerR
	LowerS
	LowerT
	LowerU
	LowerV
	LowerW
	LowerX
	LowerY
	LowerZ
)

// Extended keys share their values with X11 keysyms, so any X11 or GDK
// keysym in the 0xFFxx range is directly a base code
const (
	Pause      Code = 0xFF13
	ScrollLock Code = 0xFF14
	Esc        Code = 0xFF1B
	Home       Code = 0xFF50
	Left       Code = 0xFF51
	Up         Code = 0xFF52
	Right      Code = 0xFF53
	Down       Code = 0xFF54
	PgUp       Code = 0xFF55
	PgDn       Code = 0xFF56
	End        Code = 0xFF57
	Middle     Code = 0xFF0B
	Print      Code = 0xFF61
	Ins        Code = 0xFF63
	Menu       Code = 0xFF67
	NumLock    Code = 0xFF7F
	Del        Code = 0xFFFF

	F1  Code = 0xFFBE
	F2  Code = 0xFFBF
	F3  Code = 0xFFC0
	F4  Code = 0xFFC1
	F5  Code = 0xFFC2
	F6  Code = 0xFFC3
	F7  Code = 0xFFC4
	F8  Code = 0xFFC5
	F9  Code = 0xFFC6
	F10 Code = 0xFFC7
	F11 Code = 0xFFC8
	F12 Code = 0xFFC9

	Clear Code = 0xFFD2
	Help  Code = 0xFFD3

	LShift   Code = 0xFFE1
	RShift   Code = 0xFFE2
	LCtrl    Code = 0xFFE3
	RCtrl    Code = 0xFFE4
	CapsLock Code = 0xFFE5
	LAlt     Code = 0xFFE9
	RAlt     Code = 0xFFEA
)

// Latin-1 accented keys
const (
	Diaeresis     Code = 0xA8
	Acute         Code = 0xB4
	Ccedilla      Code = 0xC7
	LowerCcedilla Code = 0xE7
)

// Shift returns c with the Shift bit set
func Shift(c Code) Code { return c | Code(ModShift) }

// Ctrl returns c with the Ctrl bit set
func Ctrl(c Code) Code { return c | Code(ModCtrl) }

// Alt returns c with the Alt bit set
func Alt(c Code) Code { return c | Code(ModAlt) }

// Sys returns c with the Sys bit set
func Sys(c Code) Code { return c | Code(ModSys) }

func (c Code) WithShift() Code { return Shift(c) }
func (c Code) WithCtrl() Code  { return Ctrl(c) }
func (c Code) WithAlt() Code   { return Alt(c) }
func (c Code) WithSys() Code   { return Sys(c) }

// With sets every bit of m that belongs to ModMask
func (c Code) With(m Mod) Code { return c | Code(m&ModMask) }

// Base strips all modifier bits
func (c Code) Base() Code { return c & baseMask }

// Mods returns the modifier bits of c
func (c Code) Mods() Mod { return Mod(c) & ModMask }

func (c Code) IsShift() bool { return Mod(c)&ModShift != 0 }
func (c Code) IsCtrl() bool  { return Mod(c)&ModCtrl != 0 }
func (c Code) IsAlt() bool   { return Mod(c)&ModAlt != 0 }
func (c Code) IsSys() bool   { return Mod(c)&ModSys != 0 }

// IsExtended reports whether the base lies outside the 7-bit range
func (c Code) IsExtended() bool { return c.Base() >= 128 }

// IsLetter reports whether the base is an ASCII letter of either case
func (c Code) IsLetter() bool {
	b := c.Base()
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// IsPrintable reports whether the base produces a visible character:
// ASCII 33..126 or one of the Latin-1 accented keys
func (c Code) IsPrintable() bool {
	b := c.Base()
	if b > SP && b <= Tilde {
		return true
	}
	switch b {
	case Diaeresis, Acute, Ccedilla, LowerCcedilla:
		return true
	}
	return false
}

// IsFunction reports whether the base is one of F1..F12
func (c Code) IsFunction() bool {
	b := c.Base()
	return b >= F1 && b <= F12
}

// Has reports whether every bit of m is set in c
func (c Code) Has(m Mod) bool { return c.Mods()&m == m }

// Compose builds the code a decoder reports for a base key under the given
// modifier state. With Ctrl, Alt or Sys held letters are reported upper case
// and every held modifier is kept. Without them Shift is absorbed by
// printable characters (the layout already applied it) and kept on
// everything else.
func Compose(base Code, m Mod) Code {
	base = base.Base()
	m &= ModMask
	if m&(ModCtrl|ModAlt|ModSys) != 0 {
		if base >= 'a' && base <= 'z' {
			base -= 'a' - 'A'
		}
		return base.With(m)
	}
	if base.IsPrintable() {
		return base
	}
	return base.With(m)
}

// ToUpper maps a lower case letter base to its upper case form, keeping modifiers
func ToUpper(c Code) Code {
	b := c.Base()
	if b >= 'a' && b <= 'z' {
		return (b - ('a' - 'A')).With(c.Mods())
	}
	if b == LowerCcedilla {
		return Ccedilla.With(c.Mods())
	}
	return c
}
