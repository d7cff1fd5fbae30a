package widget

import (
	"strings"
	"unicode"
)

// Mnemonic is a registered Alt+letter target. Pos is the page index when
// Target is a tabs control.
type Mnemonic struct {
	Target *Element
	Pos    int
}

type dialogState struct {
	focus        *Element
	defaultEnter *Element
	defaultEsc   *Element
	mnemonics    map[rune]Mnemonic
}

func newDialogState() *dialogState {
	return &dialogState{mnemonics: make(map[rune]Mnemonic)}
}

// forget drops every dialog reference to a destroyed element
func (d *dialogState) forget(e *Element) {
	if d.focus == e {
		d.focus = nil
	}
	if d.defaultEnter == e {
		d.defaultEnter = nil
	}
	if d.defaultEsc == e {
		d.defaultEsc = nil
	}
	for r, m := range d.mnemonics {
		if m.Target == e {
			delete(d.mnemonics, r)
		}
	}
}

func (e *Element) state() *dialogState {
	if d := e.Dialog(); d != nil {
		return d.dlg
	}
	return nil
}

// Focused returns the focus owner of e's dialog
func (e *Element) Focused() *Element {
	if d := e.state(); d != nil {
		return d.focus
	}
	return nil
}

// SetFocused records f as the focus owner of its dialog. Controls that do not
// accept focus are refused.
func (e *Element) SetFocused(f *Element) bool {
	d := e.state()
	if d == nil || f == nil || !f.AcceptsFocus() || f.Dialog() != e.Dialog() {
		return false
	}
	d.focus = f
	return true
}

// DefaultEnter returns the button activated by Enter
func (e *Element) DefaultEnter() *Element {
	if d := e.state(); d != nil {
		return d.defaultEnter
	}
	return nil
}

// DefaultEsc returns the button activated by Esc
func (e *Element) DefaultEsc() *Element {
	if d := e.state(); d != nil {
		return d.defaultEsc
	}
	return nil
}

// SetDefaultEnter sets the dialog's Enter button, nil clears it
func (e *Element) SetDefaultEnter(b *Element) {
	if d := e.state(); d != nil {
		d.defaultEnter = b
	}
}

// SetDefaultEsc sets the dialog's Esc button, nil clears it
func (e *Element) SetDefaultEsc(b *Element) {
	if d := e.state(); d != nil {
		d.defaultEsc = b
	}
}

// RegisterMnemonic binds ch to target in e's dialog. Letters are keyed
// uppercase. A nil target removes the binding.
func (e *Element) RegisterMnemonic(ch rune, target *Element, pos int) {
	d := e.state()
	if d == nil || ch == 0 {
		return
	}
	ch = unicode.ToUpper(ch)
	if target == nil {
		delete(d.mnemonics, ch)
		return
	}
	d.mnemonics[ch] = Mnemonic{Target: target, Pos: pos}
}

// Mnemonic looks up ch in e's dialog
func (e *Element) Mnemonic(ch rune) (Mnemonic, bool) {
	d := e.state()
	if d == nil {
		return Mnemonic{}, false
	}
	m, ok := d.mnemonics[unicode.ToUpper(ch)]
	return m, ok
}

// SetTitle sets the title and registers its mnemonic, if any, with the
// owning dialog
func (e *Element) SetTitle(title string) {
	if dlg := e.Dialog(); dlg != nil && e != dlg {
		if old := MnemonicOf(e.title); old != 0 {
			if m, ok := dlg.Mnemonic(old); ok && m.Target == e.mnemonicTarget() {
				dlg.RegisterMnemonic(old, nil, 0)
			}
		}
	}
	e.title = title
	if dlg := e.Dialog(); dlg != nil {
		e.registerTitleMnemonic(dlg)
	}
}

// DisplayTitle returns the title with mnemonic markers removed
func (e *Element) DisplayTitle() string {
	return StripMnemonic(e.title)
}

// a page title switches its tabs parent
func (e *Element) mnemonicTarget() *Element {
	if e.parent != nil && e.parent.Kind == KindTabs {
		return e.parent
	}
	return e
}

func (e *Element) registerTitleMnemonic(dlg *Element) {
	if e == dlg {
		return
	}
	ch := MnemonicOf(e.title)
	if ch == 0 {
		return
	}
	target, pos := e, 0
	if e.parent != nil && e.parent.Kind == KindTabs {
		target = e.parent
		for i, c := range e.parent.children {
			if c == e {
				pos = i
				break
			}
		}
	}
	dlg.RegisterMnemonic(ch, target, pos)
}

// MnemonicOf returns the character following the first single '&' in title,
// 0 when there is none. "&&" is a literal ampersand.
func MnemonicOf(title string) rune {
	rs := []rune(title)
	for i := 0; i < len(rs)-1; i++ {
		if rs[i] != '&' {
			continue
		}
		if rs[i+1] == '&' {
			i++
			continue
		}
		return unicode.ToUpper(rs[i+1])
	}
	return 0
}

// StripMnemonic removes mnemonic markers and unescapes "&&"
func StripMnemonic(title string) string {
	if !strings.ContainsRune(title, '&') {
		return title
	}
	var b strings.Builder
	rs := []rune(title)
	for i := 0; i < len(rs); i++ {
		if rs[i] == '&' && i+1 < len(rs) {
			i++
		}
		b.WriteRune(rs[i])
	}
	return b.String()
}
