// Package widget is the control tree the key dispatcher walks: parent links
// for callback delivery, sibling order for focus traversal and the
// per-dialog state (focus owner, default buttons, mnemonics).
package widget

import (
	"github.com/lixenwraith/keyway/key"
)

// Kind classifies a control for dispatch and navigation decisions
type Kind uint8

const (
	KindDialog Kind = iota
	KindContainer
	KindButton
	KindFlatButton
	KindToggle
	KindLabel
	KindText
	KindList
	KindTabs
	KindCanvas
)

var kindNames = [...]string{
	KindDialog:     "dialog",
	KindContainer:  "container",
	KindButton:     "button",
	KindFlatButton: "flatbutton",
	KindToggle:     "toggle",
	KindLabel:      "label",
	KindText:       "text",
	KindList:       "list",
	KindTabs:       "tabs",
	KindCanvas:     "canvas",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Result is the return value of application callbacks
type Result int

const (
	Default  Result = iota // not consumed, continue normal processing
	Continue               // pass the key on to the parent
	Ignore                 // consumed
	Close                  // consumed, leave the main loop
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Ignore:
		return "ignore"
	case Close:
		return "close"
	}
	return "default"
}

type (
	KeyFunc       func(e *Element, c key.Code) Result
	KeyPressFunc  func(e *Element, c key.Code, pressed bool) Result
	ActionFunc    func(e *Element) Result
	TabChangeFunc func(e *Element, newPos, oldPos int) Result
)

// DefaultFontSize is reported by Font when no ancestor sets a size
const DefaultFontSize = 10

// Element is one node of the control tree
type Element struct {
	Kind Kind
	Name string

	CanFocus  bool
	Mapped    bool
	Visible   bool
	Active    bool
	Multiline bool

	parent    *Element
	children  []*Element
	destroyed bool

	title    string
	fontSize int
	fontSet  bool
	tabPos   int
	checked  bool

	keys      map[key.Code]KeyFunc
	anyKey    KeyFunc
	keyPress  KeyPressFunc
	action    ActionFunc
	tabChange TabChangeFunc

	dlg *dialogState
}

// New creates a mapped, visible, active control. Interactive kinds accept
// focus by default.
func New(kind Kind, name string) *Element {
	e := &Element{
		Kind:    kind,
		Name:    name,
		Mapped:  true,
		Visible: true,
		Active:  true,
	}
	e.CanFocus = e.IsInteractive()
	if kind == KindDialog {
		e.dlg = newDialogState()
	}
	return e
}

// NewDialog creates a dialog root
func NewDialog(name string) *Element {
	return New(KindDialog, name)
}

// Append attaches children in order and registers any mnemonics found in
// their titles with the owning dialog. Returns e for chaining.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil || c.destroyed {
			continue
		}
		if c.parent != nil {
			c.parent.detach(c)
		}
		c.parent = e
		e.children = append(e.children, c)
		if dlg := e.Dialog(); dlg != nil {
			c.Walk(func(n *Element) bool {
				n.registerTitleMnemonic(dlg)
				return true
			})
		}
	}
	return e
}

func (e *Element) detach(c *Element) {
	for i, x := range e.children {
		if x == c {
			e.children = append(e.children[:i], e.children[i+1:]...)
			break
		}
	}
	c.parent = nil
}

// Parent returns the parent control, nil for roots
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child slice, not a copy
func (e *Element) Children() []*Element { return e.children }

// Alive reports whether e has not been destroyed. Dispatch re-checks it after
// every application callback.
func (e *Element) Alive() bool { return e != nil && !e.destroyed }

// Destroy detaches e and marks its whole subtree dead
func (e *Element) Destroy() {
	if e.destroyed {
		return
	}
	dlg := e.Dialog()
	if e.parent != nil {
		e.parent.detach(e)
	}
	e.Walk(func(n *Element) bool {
		n.destroyed = true
		if dlg != nil {
			dlg.dlg.forget(n)
		}
		return true
	})
}

// Walk visits e and its descendants in preorder until fn returns false
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Dialog returns the dialog that owns e, e itself for dialogs
func (e *Element) Dialog() *Element {
	for n := e; n != nil; n = n.parent {
		if n.Kind == KindDialog {
			return n
		}
	}
	return nil
}

// IsInteractive reports whether the kind can receive keyboard input
func (e *Element) IsInteractive() bool {
	switch e.Kind {
	case KindButton, KindFlatButton, KindToggle, KindText, KindList, KindTabs, KindCanvas:
		return true
	}
	return false
}

// IsButtonLike reports push buttons, flat buttons and toggles
func (e *Element) IsButtonLike() bool {
	switch e.Kind {
	case KindButton, KindFlatButton, KindToggle:
		return true
	}
	return false
}

// IsMultiline reports a text control that keeps Tab and Enter for itself
func (e *Element) IsMultiline() bool {
	return e.Kind == KindText && e.Multiline
}

// IsContainer reports kinds that only hold other controls
func (e *Element) IsContainer() bool {
	switch e.Kind {
	case KindDialog, KindContainer, KindTabs:
		return true
	}
	return false
}

// Title returns the raw title including mnemonic markers
func (e *Element) Title() string { return e.title }

// SetFont sets an explicit font size
func (e *Element) SetFont(size int) {
	e.fontSize = size
	e.fontSet = true
}

// FontSet reports whether the size was set on e itself
func (e *Element) FontSet() bool { return e.fontSet }

// Font returns the effective font size, inherited from the nearest ancestor
// that sets one
func (e *Element) Font() int {
	for n := e; n != nil; n = n.parent {
		if n.fontSet {
			return n.fontSize
		}
	}
	return DefaultFontSize
}

// Checked reports the state of a toggle
func (e *Element) Checked() bool { return e.checked }

// TabPos returns the current page of a tabs control
func (e *Element) TabPos() int { return e.tabPos }

// SetTabPos switches pages and fires the tab change callback
func (e *Element) SetTabPos(pos int) Result {
	if pos < 0 || pos >= len(e.children) || pos == e.tabPos {
		return Default
	}
	old := e.tabPos
	e.tabPos = pos
	if e.tabChange != nil {
		return e.tabChange(e, pos, old)
	}
	return Default
}

// BindKey registers fn for c. The binding is stored under the canonical code
// of c, so it also fires for every code sharing the same name.
func (e *Element) BindKey(c key.Code, fn KeyFunc) {
	canon, ok := key.Default().Canonical(c)
	if !ok {
		return
	}
	if e.keys == nil {
		e.keys = make(map[key.Code]KeyFunc)
	}
	if fn == nil {
		delete(e.keys, canon)
		return
	}
	e.keys[canon] = fn
}

// BindKeyName registers fn under a symbolic name such as K_cA
func (e *Element) BindKeyName(name string, fn KeyFunc) error {
	c, ok := key.Default().NameToCode(name)
	if !ok {
		return &UnknownKeyError{Name: name}
	}
	e.BindKey(c, fn)
	return nil
}

// BindAnyKey registers the catch-all key callback
func (e *Element) BindAnyKey(fn KeyFunc) { e.anyKey = fn }

// OnKeyPress registers the raw press/release callback
func (e *Element) OnKeyPress(fn KeyPressFunc) { e.keyPress = fn }

// OnAction registers the activation callback of buttons and toggles
func (e *Element) OnAction(fn ActionFunc) { e.action = fn }

// OnTabChange registers the page change callback of tabs
func (e *Element) OnTabChange(fn TabChangeFunc) { e.tabChange = fn }

// KeyFunc returns the callback bound to a canonical code
func (e *Element) KeyFunc(canon key.Code) KeyFunc { return e.keys[canon] }

// AnyKeyFunc returns the catch-all callback
func (e *Element) AnyKeyFunc() KeyFunc { return e.anyKey }

// KeyPressFunc returns the press/release callback
func (e *Element) KeyPressFunc() KeyPressFunc { return e.keyPress }

// Activate runs the action callback as a click would. Toggles flip first.
func (e *Element) Activate() Result {
	if !e.Alive() || !e.Active {
		return Default
	}
	if e.Kind == KindToggle {
		e.checked = !e.checked
	}
	if e.action != nil {
		return e.action(e)
	}
	return Default
}

// UnknownKeyError reports a key name the table cannot resolve
type UnknownKeyError struct {
	Name string
}

func (err *UnknownKeyError) Error() string {
	return "widget: unknown key name " + err.Name
}
