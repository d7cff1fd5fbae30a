package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/keyway/app"
	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/input"
	"github.com/lixenwraith/keyway/key"
)

func newTestTracer() *tracer {
	t := newTracer()
	t.ctx = app.New(app.WithDriver(t), app.WithInjector(t))
	t.ctx.SetDialog(buildDialog(t))
	return t
}

func TestTracerKeys(t *testing.T) {
	tr := newTestTracer()

	tr.Key(key.Code('1'), true)
	tr.Key(key.TAB, true)
	tr.Key(key.Alt(key.LowerO), true)
	if got := tr.Key(key.Ctrl(key.Q), true); got != input.OutcomeExit {
		t.Errorf("Ctrl+Q = %v, want exit", got)
	}

	var got []string
	for _, l := range tr.lines {
		if !strings.HasPrefix(l, "key ") {
			got = append(got, l)
		}
	}
	want := []string{
		"name rejects 1",
		"focus -> notes",
		"action ok",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("log (-want +got):\n%s", diff)
	}
}

func TestTracerInjectMotion(t *testing.T) {
	tr := newTestTracer()
	var moved []event.MotionEvent
	tr.ctx.Hooks().Set(event.Slots{Motion: func(e event.MotionEvent) { moved = append(moved, e) }})
	tr.InjectButton(4, 5, event.Button1, event.StatusMotion)
	if diff := cmp.Diff([]event.MotionEvent{{X: 4, Y: 5, Button: event.Button1}}, moved); diff != "" {
		t.Errorf("motion (-want +got):\n%s", diff)
	}
}

func TestDescribeMarksFocus(t *testing.T) {
	tr := newTestTracer()
	lines := describe(tr.ctx.Dialog())
	var marked []string
	for _, l := range lines {
		if strings.HasPrefix(l, "> ") {
			marked = append(marked, strings.Fields(l)[1])
		}
	}
	if diff := cmp.Diff([]string{"text"}, marked); diff != "" {
		t.Errorf("focus marks (-want +got):\n%s", diff)
	}
}
