package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/keyway/app"
	"github.com/lixenwraith/keyway/backend/tcellkey"
	"github.com/lixenwraith/keyway/config"
	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/logutil"
	"github.com/lixenwraith/keyway/service"
)

var (
	styleTitle  = tcell.StyleDefault.Bold(true).Reverse(true)
	styleTree   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleLog    = tcell.StyleDefault
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// runScreen drives the dialog from a tcell screen. Playback posts native
// tcell events so replayed keys go through the decoder again.
func runScreen(cfg *config.Config) error {
	t := newTracer()
	svc := tcellkey.NewService()
	var s service.Service = svc
	if err := s.Init(tcellkey.Handler(t)); err != nil {
		return err
	}
	screen := svc.Screen()

	ctx := app.New(
		app.WithConfig(cfg),
		app.WithDriver(t),
		app.WithLogger(logutil.New("keytrace ")),
		app.WithScheduler(svc.Loop().Scheduler()),
		app.WithInjector(tcellkey.NewInjector(screen)),
		app.WithPlaybackDone(func(err error) {
			if err != nil {
				t.logf("playback failed: %v", err)
			} else {
				t.logf("playback finished")
			}
		}),
	)
	defer ctx.Close()
	t.ctx = ctx
	ctx.SetDialog(buildDialog(t))
	ctx.Globals().CtrlFunc = func(c key.Code) { t.logf("ctrl function %s", t.name(c)) }
	t.changed = func(string) { draw(screen, t) }

	loop := svc.Loop()
	loop.OnResize = func(w, h int) {
		screen.Sync()
		draw(screen, t)
	}
	loop.OnUnknown = func(ev *tcell.EventKey) {
		t.logf("unmapped %s", ev.Name())
	}

	// Stop only finalizes a started service
	if err := startSessions(ctx, cfg); err != nil {
		screen.Fini()
		return err
	}
	draw(screen, t)
	if err := s.Start(); err != nil {
		screen.Fini()
		return err
	}
	<-svc.Done()
	return s.Stop()
}

func draw(s tcell.Screen, t *tracer) {
	s.Clear()
	w, h := s.Size()
	put(s, 0, 0, w, " keytrace - Tab moves focus, Alt+letter mnemonics, Ctrl+Q quits", styleTitle, true)

	y := 1
	for _, line := range describe(t.ctx.Dialog()) {
		if y >= h-1 {
			break
		}
		put(s, 0, y, w, line, styleTree, false)
		y++
	}
	y++

	rows := h - 1 - y
	if rows > 0 {
		start := len(t.lines) - rows
		if start < 0 {
			start = 0
		}
		for _, line := range t.lines[start:] {
			put(s, 1, y, w, line, styleLog, false)
			y++
		}
	}

	status := fmt.Sprintf(" record: %s  playback: %s", t.ctx.Recorder().State(), t.ctx.Player().State())
	put(s, 0, h-1, w, status, styleStatus, true)
	s.Show()
}

// put writes text at x,y clipped to w; fill pads the rest of the row
func put(s tcell.Screen, x, y, w int, text string, style tcell.Style, fill bool) {
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	for ; fill && x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
