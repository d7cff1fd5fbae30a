// Package record captures native input events to a stream and plays them
// back through an Injector with the original timing.
package record

import (
	"fmt"
	"strings"
)

// Mode selects the body encoding of a record stream
type Mode string

const (
	ModeBinary Mode = "BIN"
	ModeText   Mode = "TXT"
	ModeSys    Mode = "SYS" // text framing, backend native key identities
)

const signature = "IUPINPUT "

// ParseMode accepts the header tag in any case
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToUpper(strings.TrimSpace(s))); m {
	case ModeBinary, ModeText, ModeSys:
		return m, nil
	}
	return "", fmt.Errorf("unknown record mode %q", s)
}

// Header returns the header line written before any record
func (m Mode) Header() string {
	return signature + string(m) + "\n"
}

// State of a Recorder or Player session
type State uint8

const (
	StateIdle State = iota
	StateRecording
	StatePlaying
	StateError
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StatePlaying:
		return "playing"
	case StateError:
		return "error"
	}
	return "idle"
}
