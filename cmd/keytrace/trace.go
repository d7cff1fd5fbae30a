package main

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/keyway/app"
	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/input"
	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/widget"
)

const maxLines = 200

// tracer sits between a backend and the app context and keeps a log of what
// happened to every event
type tracer struct {
	ctx   *app.Context
	lines []string

	// changed is called after every logged line
	changed func(line string)
}

func newTracer() *tracer {
	return &tracer{changed: func(string) {}}
}

func (t *tracer) logf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if len(t.lines) == maxLines {
		copy(t.lines, t.lines[1:])
		t.lines = t.lines[:maxLines-1]
	}
	t.lines = append(t.lines, line)
	t.changed(line)
}

func (t *tracer) name(c key.Code) string {
	n, _ := t.ctx.Table().CodeToName(c)
	return n
}

func (t *tracer) Key(c key.Code, pressed bool) input.Outcome {
	owner := "-"
	if dlg := t.ctx.Dialog(); dlg != nil && dlg.Focused() != nil {
		owner = dlg.Focused().Name
	}
	out := t.ctx.Key(c, pressed)
	if pressed {
		t.logf("key   %-12s 0x%08X on %-8s -> %s", t.name(c), uint32(c), owner, out)
	} else {
		t.logf("up    %-12s 0x%08X on %s", t.name(c), uint32(c), owner)
	}
	return out
}

func (t *tracer) Button(e event.ButtonEvent) {
	t.ctx.Button(e)
	state := map[int]string{
		event.StatusRelease:     "release",
		event.StatusPress:       "press",
		event.StatusDoubleClick: "double",
	}[e.Status]
	t.logf("mouse %c %-7s at %d,%d", e.Button, state, e.X, e.Y)
}

func (t *tracer) Motion(e event.MotionEvent) {
	t.ctx.Motion(e)
	t.logf("move  %d,%d held %c", e.X, e.Y, e.Button)
}

func (t *tracer) Wheel(e event.WheelEvent) {
	t.ctx.Wheel(e)
	t.logf("wheel %+g at %d,%d", e.Delta, e.X, e.Y)
}

// InjectButton replays a button record through the same logging path
func (t *tracer) InjectButton(x, y int, button byte, status int) {
	if status == event.StatusMotion {
		t.Motion(event.MotionEvent{X: x, Y: y, Button: button})
		return
	}
	t.Button(event.ButtonEvent{Button: button, Status: status, X: x, Y: y})
}

func (t *tracer) InjectKey(c key.Code, pressed bool) { t.Key(c, pressed) }

func (t *tracer) InjectWheel(delta float32, x, y int) {
	t.Wheel(event.WheelEvent{Delta: delta, X: x, Y: y})
}

// SetFocus, ShowLayoutDialog and Refresh make the tracer the navigation
// driver
func (t *tracer) SetFocus(e *widget.Element) { t.logf("focus -> %s", e.Name) }

func (t *tracer) ShowLayoutDialog(dlg *widget.Element) {
	t.logf("layout dialog requested for %s", dlg.Name)
}

func (t *tracer) Refresh(dlg *widget.Element) {
	var fonts []string
	dlg.Walk(func(e *widget.Element) bool {
		if e.FontSet() {
			fonts = append(fonts, fmt.Sprintf("%s=%d", e.Name, e.Font()))
		}
		return true
	})
	t.logf("refresh %s fonts [%s]", dlg.Name, strings.Join(fonts, " "))
}

// buildDialog lays out the demo form
func buildDialog(t *tracer) *widget.Element {
	dlg := widget.NewDialog("keytrace")
	dlg.SetTitle("Key Trace")
	dlg.SetFont(10)

	form := widget.New(widget.KindContainer, "form")
	nameLabel := widget.New(widget.KindLabel, "nameLabel")
	nameLabel.SetTitle("&Name")
	name := widget.New(widget.KindText, "name")
	notesLabel := widget.New(widget.KindLabel, "notesLabel")
	notesLabel.SetTitle("No&tes")
	notes := widget.New(widget.KindText, "notes")
	notes.Multiline = true
	verbose := widget.New(widget.KindToggle, "verbose")
	verbose.SetTitle("&Verbose")
	form.Append(nameLabel, name, notesLabel, notes, verbose)

	ok := widget.New(widget.KindButton, "ok")
	ok.SetTitle("&OK")
	cancel := widget.New(widget.KindButton, "cancel")
	cancel.SetTitle("&Cancel")
	for _, b := range []*widget.Element{ok, cancel, verbose} {
		b.OnAction(func(e *widget.Element) widget.Result {
			t.logf("action %s", e.Name)
			return widget.Default
		})
	}
	dlg.Append(form, ok, cancel)
	dlg.SetDefaultEnter(ok)
	dlg.SetDefaultEsc(cancel)
	dlg.SetFocused(name)

	// Name swallows digits to show a callback consuming keys
	name.BindAnyKey(func(e *widget.Element, c key.Code) widget.Result {
		if b := c.Base(); c.Mods() == key.ModNone && b >= '0' && b <= '9' {
			t.logf("name rejects %c", rune(b))
			return widget.Ignore
		}
		return widget.Default
	})
	return dlg
}

// describe renders the dialog tree with the focus owner marked
func describe(dlg *widget.Element) []string {
	var out []string
	focus := dlg.Focused()
	var walk func(e *widget.Element, depth int)
	walk = func(e *widget.Element, depth int) {
		mark := "  "
		if e == focus {
			mark = "> "
		}
		title := e.DisplayTitle()
		if title == "" {
			title = e.Name
		}
		out = append(out, fmt.Sprintf("%s%s%-10s %s", mark, strings.Repeat("  ", depth), e.Kind, title))
		for _, c := range e.Children() {
			walk(c, depth+1)
		}
	}
	walk(dlg, 0)
	return out
}
