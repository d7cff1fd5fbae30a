// Package tcellkey connects a tcell screen to the portable key and event
// model: key decoding and encoding, an event loop feeding a Handler, and
// playback injection through the screen's event queue.
package tcellkey

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keyway/key"
)

var special = map[tcell.Key]key.Code{
	tcell.KeyBackspace:  key.BS,
	tcell.KeyBackspace2: key.BS,
	tcell.KeyTab:        key.TAB,
	tcell.KeyEnter:      key.CR,
	tcell.KeyEscape:     key.Esc,
	tcell.KeyUp:         key.Up,
	tcell.KeyDown:       key.Down,
	tcell.KeyLeft:       key.Left,
	tcell.KeyRight:      key.Right,
	tcell.KeyPgUp:       key.PgUp,
	tcell.KeyPgDn:       key.PgDn,
	tcell.KeyHome:       key.Home,
	tcell.KeyEnd:        key.End,
	tcell.KeyInsert:     key.Ins,
	tcell.KeyDelete:     key.Del,
	tcell.KeyHelp:       key.Help,
	tcell.KeyPrint:      key.Print,
	tcell.KeyPause:      key.Pause,
	tcell.KeyCenter:     key.Middle,
	tcell.KeyClear:      key.Middle,
}

// ctrlPunct are the control codes above Ctrl+Z
var ctrlPunct = map[tcell.Key]key.Code{
	tcell.KeyCtrlSpace:      key.SP,
	tcell.KeyCtrlBackslash:  key.Backslash,
	tcell.KeyCtrlRightSq:    key.BracketRight,
	tcell.KeyCtrlCarat:      key.Circum,
	tcell.KeyCtrlUnderscore: key.Underscore,
}

var specialRev = map[key.Code]tcell.Key{
	key.BS:     tcell.KeyBackspace2,
	key.TAB:    tcell.KeyTab,
	key.CR:     tcell.KeyEnter,
	key.Esc:    tcell.KeyEscape,
	key.Up:     tcell.KeyUp,
	key.Down:   tcell.KeyDown,
	key.Left:   tcell.KeyLeft,
	key.Right:  tcell.KeyRight,
	key.PgUp:   tcell.KeyPgUp,
	key.PgDn:   tcell.KeyPgDn,
	key.Home:   tcell.KeyHome,
	key.End:    tcell.KeyEnd,
	key.Ins:    tcell.KeyInsert,
	key.Del:    tcell.KeyDelete,
	key.Help:   tcell.KeyHelp,
	key.Print:  tcell.KeyPrint,
	key.Pause:  tcell.KeyPause,
	key.Middle: tcell.KeyCenter,
}

func mods(m tcell.ModMask) key.Mod {
	var r key.Mod
	if m&tcell.ModShift != 0 {
		r |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		r |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		r |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		r |= key.ModSys
	}
	return r
}

func modMask(m key.Mod) tcell.ModMask {
	var r tcell.ModMask
	if m&key.ModShift != 0 {
		r |= tcell.ModShift
	}
	if m&key.ModCtrl != 0 {
		r |= tcell.ModCtrl
	}
	if m&key.ModAlt != 0 {
		r |= tcell.ModAlt
	}
	if m&key.ModSys != 0 {
		r |= tcell.ModMeta
	}
	return r
}

func isCtrlLetter(k tcell.Key) bool {
	if k < tcell.KeyCtrlA || k > tcell.KeyCtrlZ {
		return false
	}
	switch k {
	case tcell.KeyBackspace, tcell.KeyTab, tcell.KeyEnter:
		return false
	}
	return true
}

// Decode converts a tcell key event to a key code, 0 when the key has no
// portable identity
func Decode(ev *tcell.EventKey) key.Code {
	m := mods(ev.Modifiers())
	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		c := key.Code(ev.Rune())
		if c == key.SP || c.IsPrintable() {
			return key.Compose(c, m)
		}
		return 0
	case k == tcell.KeyBacktab:
		return key.TAB.With(m | key.ModShift)
	case isCtrlLetter(k):
		return key.Compose(key.LowerA+key.Code(k-tcell.KeyCtrlA), m|key.ModCtrl)
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return (key.F1 + key.Code(k-tcell.KeyF1)).With(m)
	}
	if c, ok := ctrlPunct[k]; ok {
		return key.Compose(c, m|key.ModCtrl)
	}
	if c, ok := special[k]; ok {
		return c.With(m)
	}
	return 0
}

// Encode builds a key event that decodes back to c. Ctrl letters use the
// control codes a terminal sends, everything printable travels as a rune.
func Encode(c key.Code) (*tcell.EventKey, bool) {
	base, m := c.Base(), c.Mods()
	switch {
	case base == key.TAB && m&key.ModShift != 0:
		return tcell.NewEventKey(tcell.KeyBacktab, 0, modMask(m&^key.ModShift)), true
	case base >= 'A' && base <= 'Z' && m&key.ModCtrl != 0:
		k := tcell.KeyCtrlA + tcell.Key(base-'A')
		if isCtrlLetter(k) {
			return tcell.NewEventKey(k, rune(k), modMask(m)), true
		}
		return tcell.NewEventKey(tcell.KeyRune, rune(base+('a'-'A')), modMask(m)), true
	case base == key.SP || base.IsPrintable():
		return tcell.NewEventKey(tcell.KeyRune, rune(base), modMask(m)), true
	case base.IsFunction():
		return tcell.NewEventKey(tcell.KeyF1+tcell.Key(base-key.F1), 0, modMask(m)), true
	}
	if k, ok := specialRev[base]; ok {
		return tcell.NewEventKey(k, 0, modMask(m)), true
	}
	return nil, false
}
