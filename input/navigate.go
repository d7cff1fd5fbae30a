package input

import (
	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/widget"
)

var (
	layoutDialogKey = key.Ctrl(key.Shift(key.Alt(key.L)))
	ctrlTab         = key.Ctrl(key.TAB)
	shiftTab        = key.Shift(key.TAB)
	ctrlCR          = key.Ctrl(key.CR)
)

// Navigate applies the default dialog keyboard behavior for a code no
// callback consumed. The first matching rule wins. Returns true when the key
// was consumed and the native default must not run.
func (d *Dispatcher) Navigate(owner *widget.Element, c key.Code) bool {
	return d.navigate(owner, c) != OutcomeUnhandled
}

// navigate is Navigate reporting OutcomeExit when an activated default
// button or mnemonic target asked to close
func (d *Dispatcher) navigate(owner *widget.Element, c key.Code) Outcome {
	if !owner.Alive() {
		return OutcomeUnhandled
	}
	multiline := owner.IsMultiline()

	switch c {
	case ctrlTab, key.TAB:
		if multiline {
			return OutcomeUnhandled
		}
		d.focus(owner, owner.NextFocusable())
		return OutcomeHandled
	case shiftTab:
		if multiline {
			return OutcomeUnhandled
		}
		d.focus(owner, owner.PrevFocusable())
		return OutcomeHandled
	case key.Up, key.Down:
		if !owner.IsButtonLike() {
			break
		}
		if c == key.Up {
			d.focus(owner, owner.PrevFocusable())
		} else {
			d.focus(owner, owner.NextFocusable())
		}
		return OutcomeHandled
	case key.Esc:
		if b := owner.DefaultEsc(); b != nil && b.IsButtonLike() {
			d.log.Printf("navigate: esc activates %s", b.Name)
			return d.activate(b)
		}
	case key.CR, ctrlCR:
		if owner.IsButtonLike() || multiline != (c == ctrlCR) {
			break
		}
		if b := owner.DefaultEnter(); b != nil && b.IsButtonLike() {
			d.log.Printf("navigate: enter activates %s", b.Name)
			return d.activate(b)
		}
	}

	if c.IsAlt() && !c.IsCtrl() && !c.IsSys() {
		if ch := rune(c.Base()); ch < 128 && isAlnum(ch) {
			return d.mnemonic(owner, ch)
		}
	}

	if c == layoutDialogKey && d.globals.LayoutDialogKey {
		if dlg := owner.Dialog(); dlg != nil {
			d.driver.ShowLayoutDialog(dlg)
			return OutcomeHandled
		}
	}

	// Plus needs Shift on most layouts, so Shift is tolerated here
	if d.globals.LayoutResizeKey && c.IsCtrl() && !c.IsAlt() && !c.IsSys() {
		switch c.Base() {
		case key.Plus, key.Equal:
			return handled(d.rescale(owner, ScaleFontUp))
		case key.Minus:
			return handled(d.rescale(owner, ScaleFontDown))
		}
	}

	if d.globals.CtrlFunc != nil && c.Mods() == key.ModCtrl && c.IsFunction() {
		d.globals.CtrlFunc(c)
		return OutcomeHandled
	}
	return OutcomeUnhandled
}

func isAlnum(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z'
}

// focus records the new owner in the tree and tells the native side
func (d *Dispatcher) focus(owner, target *widget.Element) {
	if target == nil || target == owner {
		return
	}
	if owner.SetFocused(target) {
		d.driver.SetFocus(target)
	}
}

// activate runs a button's action. Close is reported even when the action
// tore the dialog down.
func (d *Dispatcher) activate(b *widget.Element) Outcome {
	if b.Activate() == widget.Close {
		return OutcomeExit
	}
	return OutcomeHandled
}

func handled(ok bool) Outcome {
	if ok {
		return OutcomeHandled
	}
	return OutcomeUnhandled
}
