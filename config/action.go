package config

// Action is a demo-level command a key can be bound to
type Action uint8

const (
	ActionNone Action = iota
	ActionNextFocus
	ActionPrevFocus
	ActionActivateDefault
	ActionCancelDefault
	ActionQuit
)

var actionNames = map[string]Action{
	"none":             ActionNone,
	"next_focus":       ActionNextFocus,
	"prev_focus":       ActionPrevFocus,
	"activate_default": ActionActivateDefault,
	"cancel_default":   ActionCancelDefault,
	"quit":             ActionQuit,
}

// ActionByName resolves a binding value
func ActionByName(name string) (Action, bool) {
	a, ok := actionNames[name]
	return a, ok
}

func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return "unknown"
}
