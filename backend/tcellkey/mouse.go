package tcellkey

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keyway/event"
)

// tcell numbers the right button 2 and the middle button 3
var buttonMap = []struct {
	mask tcell.ButtonMask
	b    byte
}{
	{tcell.Button1, event.Button1},
	{tcell.Button3, event.Button2},
	{tcell.Button2, event.Button3},
	{tcell.Button4, event.Button4},
	{tcell.Button5, event.Button5},
}

const buttonsOnly = tcell.Button1 | tcell.Button2 | tcell.Button3 | tcell.Button4 | tcell.Button5

func maskOf(b byte) tcell.ButtonMask {
	for _, m := range buttonMap {
		if m.b == b {
			return m.mask
		}
	}
	return tcell.ButtonNone
}

// mouseState turns tcell's level-triggered button masks into press and
// release edges
type mouseState struct {
	held tcell.ButtonMask
	x, y int
}

func (m *mouseState) held1() byte {
	for _, bm := range buttonMap {
		if m.held&bm.mask != 0 {
			return bm.b
		}
	}
	return 0
}

func (m *mouseState) translate(ev *tcell.EventMouse) []event.Event {
	x, y := ev.Position()
	btns := ev.Buttons()
	var out []event.Event

	switch {
	case btns&tcell.WheelUp != 0:
		out = append(out, event.Wheel(event.WheelEvent{Delta: 1, X: x, Y: y}))
	case btns&tcell.WheelDown != 0:
		out = append(out, event.Wheel(event.WheelEvent{Delta: -1, X: x, Y: y}))
	}

	now := btns & buttonsOnly
	changed := now ^ m.held
	for _, bm := range buttonMap {
		if changed&bm.mask == 0 {
			continue
		}
		status := event.StatusRelease
		if now&bm.mask != 0 {
			status = event.StatusPress
		}
		out = append(out, event.Button(event.ButtonEvent{Button: bm.b, Status: status, X: x, Y: y}))
	}
	moved := x != m.x || y != m.y
	m.held, m.x, m.y = now, x, y
	if changed == 0 && moved && len(out) == 0 {
		out = append(out, event.Motion(event.MotionEvent{X: x, Y: y, Button: m.held1()}))
	}
	return out
}
