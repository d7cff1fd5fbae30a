// Package robot replays input as operating system events through robotgo,
// so playback reaches any focused application and not only the process
// that recorded it.
package robot

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/go-vgo/robotgo"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/key"
	"github.com/lixenwraith/keyway/logutil"
)

// driver is the subset of robotgo the injector needs
type driver interface {
	Move(x, y int)
	Toggle(button, dir string) error
	Click(button string, double bool)
	KeyToggle(name, dir string, mods ...string) error
	Type(s string)
	Scroll(dy int)
}

type robotgoDriver struct{}

func (robotgoDriver) Move(x, y int) { robotgo.Move(x, y) }

func (robotgoDriver) Toggle(button, dir string) error { return robotgo.Toggle(button, dir) }

func (robotgoDriver) Click(button string, double bool) { robotgo.Click(button, double) }

func (robotgoDriver) KeyToggle(name, dir string, mods ...string) error {
	args := make([]interface{}, 0, len(mods)+1)
	args = append(args, dir)
	for _, m := range mods {
		args = append(args, m)
	}
	return robotgo.KeyToggle(name, args...)
}

func (robotgoDriver) Type(s string) { robotgo.TypeStr(s) }

func (robotgoDriver) Scroll(dy int) { robotgo.Scroll(0, dy) }

// Injector implements record.Injector on top of robotgo
type Injector struct {
	mu  sync.Mutex
	drv driver
	log *log.Logger
}

// New creates an injector. A nil logger discards.
func New(logger *log.Logger) *Injector {
	if logger == nil {
		logger = logutil.Discard
	}
	return &Injector{drv: robotgoDriver{}, log: logger}
}

var buttonNames = map[byte]string{
	event.Button1: "left",
	event.Button2: "center",
	event.Button3: "right",
}

func (in *Injector) InjectButton(x, y int, button byte, status int) {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.drv.Move(x, y)
	if status == event.StatusMotion {
		return
	}
	name, ok := buttonNames[button]
	if !ok {
		in.log.Printf("button %c has no system equivalent", button)
		return
	}
	var err error
	switch status {
	case event.StatusPress:
		err = in.drv.Toggle(name, "down")
	case event.StatusRelease:
		err = in.drv.Toggle(name, "up")
	case event.StatusDoubleClick:
		in.drv.Click(name, true)
	}
	if err != nil {
		in.log.Printf("button %s: %v", name, err)
	}
}

func (in *Injector) InjectKey(c key.Code, pressed bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	name, mods, err := keyName(c)
	if err != nil {
		in.log.Printf("key: %v", err)
		return
	}
	if name == "" {
		// characters without a key of their own are typed on press
		if pressed {
			in.drv.Type(string(rune(c.Base())))
		}
		return
	}
	dir := "up"
	if pressed {
		dir = "down"
	}
	if err := in.drv.KeyToggle(name, dir, mods...); err != nil {
		in.log.Printf("key %s %s: %v", name, dir, err)
	}
}

func (in *Injector) InjectWheel(delta float32, x, y int) {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.drv.Move(x, y)
	in.drv.Scroll(int(delta))
}

var specialNames = map[key.Code]string{
	key.BS:         "backspace",
	key.TAB:        "tab",
	key.CR:         "enter",
	key.SP:         "space",
	key.Esc:        "esc",
	key.Up:         "up",
	key.Down:       "down",
	key.Left:       "left",
	key.Right:      "right",
	key.Home:       "home",
	key.End:        "end",
	key.PgUp:       "pageup",
	key.PgDn:       "pagedown",
	key.Ins:        "insert",
	key.Del:        "delete",
	key.Print:      "printscreen",
	key.Menu:       "menu",
	key.CapsLock:   "capslock",
	key.NumLock:    "num_lock",
	key.Middle:     "num_clear",
	key.LShift:     "lshift",
	key.RShift:     "rshift",
	key.LCtrl:      "lctrl",
	key.RCtrl:      "rctrl",
	key.LAlt:       "lalt",
	key.RAlt:       "ralt",
	key.ScrollLock: "scroll_lock",
	key.Pause:      "pause",
}

// keyName resolves the robotgo key name and modifier list for c. An empty
// name with a nil error means the character must be typed.
func keyName(c key.Code) (string, []string, error) {
	base := c.Base()
	var mods []string
	if c.IsShift() {
		mods = append(mods, "shift")
	}
	if c.IsCtrl() {
		mods = append(mods, "ctrl")
	}
	if c.IsAlt() {
		mods = append(mods, "alt")
	}
	if c.IsSys() {
		mods = append(mods, "cmd")
	}

	if n, ok := specialNames[base]; ok {
		return n, mods, nil
	}
	if base.IsFunction() {
		return fmt.Sprintf("f%d", base-key.F1+1), mods, nil
	}
	if base > key.SP && base <= key.Tilde {
		r, shift, ok := key.USLayout.Key(rune(base))
		if !ok {
			return "", nil, fmt.Errorf("no key for %q", rune(base))
		}
		// letters under Ctrl, Alt or Sys are upper case without Shift held
		if base >= 'A' && base <= 'Z' && c.Mods()&^key.ModShift != 0 {
			shift = false
		}
		if shift && !c.IsShift() {
			mods = append([]string{"shift"}, mods...)
		}
		return strings.ToLower(string(r)), mods, nil
	}
	if base.IsPrintable() {
		return "", nil, nil
	}
	return "", nil, fmt.Errorf("no key for %#x", uint32(c))
}
