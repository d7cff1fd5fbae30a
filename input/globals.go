package input

import (
	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/widget"
)

// Globals holds the process-wide hotkey switches read by the navigation
// policy
type Globals struct {
	// LayoutDialogKey enables Ctrl+Shift+Alt+L
	LayoutDialogKey bool
	// LayoutResizeKey enables Ctrl+Plus, Ctrl+Equal and Ctrl+Minus
	LayoutResizeKey bool
	// CtrlFunc receives Ctrl+F1..F12 with the raw code, bypassing the
	// focus chain
	CtrlFunc func(c key.Code)
}

// Driver is the native side of navigation. Focus is already recorded in the
// widget tree when SetFocus is called.
type Driver interface {
	SetFocus(e *widget.Element)
	ShowLayoutDialog(dialog *widget.Element)
	Refresh(dialog *widget.Element)
}

// NopDriver does nothing beyond the widget tree bookkeeping
type NopDriver struct{}

func (NopDriver) SetFocus(*widget.Element)         {}
func (NopDriver) ShowLayoutDialog(*widget.Element) {}
func (NopDriver) Refresh(*widget.Element)          {}
