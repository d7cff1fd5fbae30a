package input

import (
	"github.com/lixenwraith/keyway/widget"
)

// ScaleFontUp grows a size by a tenth, at least one point
func ScaleFontUp(size int) int {
	n := size * 11 / 10
	if n <= size {
		n = size + 1
	}
	return n
}

// ScaleFontDown shrinks a size by a tenth, at least one point. Not the
// inverse of ScaleFontUp: 11 goes to 9.
func ScaleFontDown(size int) int {
	n := size * 9 / 10
	if n >= size {
		n = size - 1
	}
	if n < 1 {
		n = 1
	}
	return n
}

// rescale resizes the dialog font and shifts every explicit descendant font
// by the same delta
func (d *Dispatcher) rescale(owner *widget.Element, scale func(int) int) bool {
	dlg := owner.Dialog()
	if dlg == nil {
		return false
	}
	old := dlg.Font()
	size := scale(old)
	delta := size - old
	dlg.SetFont(size)
	for _, c := range dlg.Children() {
		c.Walk(func(n *widget.Element) bool {
			if n.FontSet() && !n.IsContainer() {
				fs := n.Font() + delta
				if fs < 1 {
					fs = 1
				}
				n.SetFont(fs)
			}
			return true
		})
	}
	d.log.Printf("navigate: font %d -> %d on %s", old, size, dlg.Name)
	d.driver.Refresh(dlg)
	return true
}
