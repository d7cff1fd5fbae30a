package input

import (
	"github.com/lixenwraith/keyway/widget"
)

// ProcessMnemonic resolves ch in the owner's dialog. A label forwards to the
// control after it, a tabs control switches page, buttons and toggles are
// activated and any other interactive control takes focus.
func (d *Dispatcher) ProcessMnemonic(owner *widget.Element, ch rune) bool {
	return d.mnemonic(owner, ch) != OutcomeUnhandled
}

func (d *Dispatcher) mnemonic(owner *widget.Element, ch rune) Outcome {
	dlg := owner.Dialog()
	if dlg == nil {
		return OutcomeUnhandled
	}
	m, ok := dlg.Mnemonic(ch)
	if !ok || !m.Target.Alive() {
		return OutcomeUnhandled
	}
	target := m.Target

	if target.Kind == widget.KindLabel {
		target = target.NextAfter()
		if target == nil {
			return OutcomeUnhandled
		}
	}

	switch {
	case target.Kind == widget.KindTabs:
		target.SetTabPos(m.Pos)
		if target.Alive() {
			d.driver.Refresh(dlg)
		}
	case target.IsButtonLike():
		return d.activate(target)
	default:
		d.focus(owner, target)
	}
	return OutcomeHandled
}
