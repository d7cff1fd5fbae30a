package robot

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/logutil"
)

type fakeDriver struct {
	calls []string
}

func (f *fakeDriver) Move(x, y int) { f.calls = append(f.calls, fmt.Sprintf("move %d,%d", x, y)) }

func (f *fakeDriver) Toggle(button, dir string) error {
	f.calls = append(f.calls, "toggle "+button+" "+dir)
	return nil
}

func (f *fakeDriver) Click(button string, double bool) {
	f.calls = append(f.calls, fmt.Sprintf("click %s %v", button, double))
}

func (f *fakeDriver) KeyToggle(name, dir string, mods ...string) error {
	f.calls = append(f.calls, fmt.Sprintf("key %s %s %v", name, dir, mods))
	return nil
}

func (f *fakeDriver) Type(s string) { f.calls = append(f.calls, "type "+s) }

func (f *fakeDriver) Scroll(dy int) { f.calls = append(f.calls, fmt.Sprintf("scroll %d", dy)) }

func newInjector() (*Injector, *fakeDriver) {
	f := &fakeDriver{}
	return &Injector{drv: f, log: logutil.Discard}, f
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		c     key.Code
		name  string
		mods  []string
		fails bool
	}{
		{c: key.LowerA, name: "a"},
		{c: key.A, name: "a", mods: []string{"shift"}},
		{c: key.Ctrl(key.A), name: "a", mods: []string{"ctrl"}},
		{c: key.Exclam, name: "1", mods: []string{"shift"}},
		{c: key.Ctrl(key.Shift(key.Exclam)), name: "1", mods: []string{"shift", "ctrl"}},
		{c: key.Alt(key.F4), name: "f4", mods: []string{"alt"}},
		{c: key.Sys(key.Esc), name: "esc", mods: []string{"cmd"}},
		{c: key.LowerCcedilla},
		{c: key.Help, fails: true},
	}
	for _, tt := range tests {
		name, mods, err := keyName(tt.c)
		if (err != nil) != tt.fails {
			t.Errorf("keyName(%v) error = %v", tt.c, err)
			continue
		}
		if name != tt.name || !cmp.Equal(mods, tt.mods) {
			t.Errorf("keyName(%v) = %q %v, want %q %v", tt.c, name, mods, tt.name, tt.mods)
		}
	}
}

func TestInject(t *testing.T) {
	in, f := newInjector()
	in.InjectButton(10, 20, event.Button1, event.StatusPress)
	in.InjectButton(15, 22, event.Button1, event.StatusMotion)
	in.InjectButton(15, 22, event.Button1, event.StatusRelease)
	in.InjectButton(1, 1, event.Button3, event.StatusDoubleClick)
	in.InjectButton(1, 1, event.Button4, event.StatusPress)
	in.InjectKey(key.Ctrl(key.Q), true)
	in.InjectKey(key.Ctrl(key.Q), false)
	in.InjectKey(key.LowerCcedilla, true)
	in.InjectKey(key.LowerCcedilla, false)
	in.InjectWheel(-2, 5, 6)

	want := []string{
		"move 10,20", "toggle left down",
		"move 15,22",
		"move 15,22", "toggle left up",
		"move 1,1", "click right true",
		"move 1,1",
		"key q down [ctrl]",
		"key q up [ctrl]",
		"type ç",
		"move 5,6", "scroll -2",
	}
	if diff := cmp.Diff(want, f.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}
