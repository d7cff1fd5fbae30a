package event

type (
	ButtonFunc func(ButtonEvent)
	MotionFunc func(MotionEvent)
	KeyFunc    func(KeyEvent)
	WheelFunc  func(WheelEvent)
)

// Slots is the set of four taps. A nil slot is disarmed.
type Slots struct {
	Button ButtonFunc
	Motion MotionFunc
	Key    KeyFunc
	Wheel  WheelFunc
}

// Hooks holds the taps every backend fires before dispatch. Owned by the
// event loop goroutine; events produced elsewhere go through a Queue.
type Hooks struct {
	slots Slots
}

// Slots returns the installed taps
func (h *Hooks) Slots() Slots { return h.slots }

// Swap installs s and returns the previous taps for later restore
func (h *Hooks) Swap(s Slots) Slots {
	prev := h.slots
	h.slots = s
	return prev
}

// Set installs s
func (h *Hooks) Set(s Slots) { h.slots = s }

// Armed reports whether any tap is installed
func (h *Hooks) Armed() bool {
	s := h.slots
	return s.Button != nil || s.Motion != nil || s.Key != nil || s.Wheel != nil
}

func (h *Hooks) FireButton(e ButtonEvent) {
	if h.slots.Button != nil {
		h.slots.Button(e)
	}
}

func (h *Hooks) FireMotion(e MotionEvent) {
	if h.slots.Motion != nil {
		h.slots.Motion(e)
	}
}

func (h *Hooks) FireKey(e KeyEvent) {
	if h.slots.Key != nil {
		h.slots.Key(e)
	}
}

func (h *Hooks) FireWheel(e WheelEvent) {
	if h.slots.Wheel != nil {
		h.slots.Wheel(e)
	}
}

// Fire routes a wrapped event to its tap. Unknown payloads are dropped.
func (h *Hooks) Fire(ev Event) {
	switch p := ev.Payload.(type) {
	case ButtonEvent:
		h.FireButton(p)
	case MotionEvent:
		h.FireMotion(p)
	case KeyEvent:
		h.FireKey(p)
	case WheelEvent:
		h.FireWheel(p)
	}
}
