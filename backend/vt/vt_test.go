package vt

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/keyway/event"
	"github.com/lixenwraith/keyway/key"
)

func keys(cs ...key.Code) []event.Event {
	var out []event.Event
	for _, c := range cs {
		out = append(out, keyEvent(c))
	}
	return out
}

func decode(in string) []event.Event {
	p := NewParser()
	out := p.Feed([]byte(in))
	return append(out, p.Flush()...)
}

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []event.Event
	}{
		{"Printable", "aZ~", keys(key.LowerA, key.Z, key.Tilde)},
		{"Space", " ", keys(key.SP)},
		{"Control letters", "\x01\x11", keys(key.Ctrl(key.A), key.Ctrl(key.Q))},
		{"Ctrl space", "\x00", keys(key.Ctrl(key.SP))},
		{"Enter variants", "\r\n", keys(key.CR, key.CR)},
		{"Backspace variants", "\x7f\x08", keys(key.BS, key.BS)},
		{"Tab", "\t", keys(key.TAB)},
		{"Ctrl punct", "\x1c\x1f", keys(key.Ctrl(key.Backslash), key.Ctrl(key.Underscore))},
		{"Lone escape", "\x1b", keys(key.Esc)},
		{"Alt escape", "\x1b\x1b", keys(key.Alt(key.Esc))},
		{"Alt lower", "\x1ba", keys(key.Alt(key.A))},
		{"Alt upper", "\x1bA", keys(key.Alt(key.Shift(key.A)))},
		{"Alt shifted punct", "\x1b!", keys(key.Alt(key.Shift(key.Exclam)))},
		{"Alt digit", "\x1b1", keys(key.Alt(key.Num1))},
		{"Alt ctrl", "\x1b\x01", keys(key.Alt(key.Ctrl(key.A)))},
		{"Alt backspace", "\x1b\x7f", keys(key.Alt(key.BS))},
		{"Arrows", "\x1b[A\x1b[D", keys(key.Up, key.Left)},
		{"Ctrl arrow", "\x1b[1;5C", keys(key.Ctrl(key.Right))},
		{"Shift alt ctrl meta home", "\x1b[1;16H", keys(key.Home.With(key.ModShift | key.ModAlt | key.ModCtrl | key.ModSys))},
		{"Backtab", "\x1b[Z", keys(key.Shift(key.TAB))},
		{"Tilde keys", "\x1b[2~\x1b[3;2~\x1b[5~\x1b[24~", keys(key.Ins, key.Shift(key.Del), key.PgUp, key.F12)},
		{"SS3 function", "\x1bOP\x1bOS", keys(key.F1, key.F4)},
		{"SS3 keypad", "\x1bOp\x1bOM\x1bOk", keys(key.Num0, key.CR, key.Plus)},
		{"Linux console F", "\x1b[[C", keys(key.F3)},
		{"Keypad center", "\x1b[E", keys(key.Middle)},
		{"CSI u ctrl shift a", "\x1b[97;6u", keys(key.Ctrl(key.Shift(key.A)))},
		{"CSI u shift digit", "\x1b[49;6u", keys(key.Ctrl(key.Shift(key.Exclam)))},
		{"CSI u ctrl enter", "\x1b[13;5u", keys(key.Ctrl(key.CR))},
		{"UTF-8 cedilla", "ç", keys(key.LowerCcedilla)},
		{"Unmapped rune", "é", nil},
		{"Unknown CSI", "\x1b[99~x", keys(key.LowerX)},
		{"Private CSI dropped", "\x1b[?1;2cx", keys(key.LowerX)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, decode(tt.in)); diff != "" {
				t.Errorf("decode %q mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseSplitInput(t *testing.T) {
	p := NewParser()
	if got := p.Feed([]byte("\x1b[1;")); len(got) != 0 {
		t.Fatalf("partial CSI produced %v", got)
	}
	if !p.Pending() {
		t.Fatal("partial CSI not buffered")
	}
	got := p.Feed([]byte("5Aq"))
	if diff := cmp.Diff(keys(key.Ctrl(key.Up), key.LowerQ), got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	// split UTF-8
	if got := p.Feed([]byte{0xc3}); len(got) != 0 {
		t.Fatalf("partial rune produced %v", got)
	}
	if diff := cmp.Diff(keys(key.LowerCcedilla), p.Feed([]byte{0xa7})); diff != "" {
		t.Errorf("rune mismatch (-want +got):\n%s", diff)
	}
}

func TestFlushIncompleteEscape(t *testing.T) {
	p := NewParser()
	p.Feed([]byte("\x1b["))
	if diff := cmp.Diff(keys(key.Esc, key.BracketLeft), p.Flush()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if p.Pending() {
		t.Error("buffer not cleared")
	}
}

func TestParseMouse(t *testing.T) {
	got := decode("\x1b[<0;5;3M\x1b[<32;6;3M\x1b[<0;6;3m\x1b[<2;1;1M\x1b[<2;1;1m\x1b[<64;2;2M\x1b[<65;2;2M\x1b[<35;9;9M")
	want := []event.Event{
		event.Button(event.ButtonEvent{Button: event.Button1, Status: event.StatusPress, X: 4, Y: 2}),
		event.Motion(event.MotionEvent{X: 5, Y: 2, Button: event.Button1}),
		event.Button(event.ButtonEvent{Button: event.Button1, Status: event.StatusRelease, X: 5, Y: 2}),
		event.Button(event.ButtonEvent{Button: event.Button3, Status: event.StatusPress, X: 0, Y: 0}),
		event.Button(event.ButtonEvent{Button: event.Button3, Status: event.StatusRelease, X: 0, Y: 0}),
		event.Wheel(event.WheelEvent{Delta: 1, X: 1, Y: 1}),
		event.Wheel(event.WheelEvent{Delta: -1, X: 1, Y: 1}),
		event.Motion(event.MotionEvent{X: 8, Y: 8}),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		c    key.Code
		want string
	}{
		{key.LowerA, "a"},
		{key.A, "A"},
		{key.Ctrl(key.A), "\x01"},
		{key.Ctrl(key.H), "\x1b[72;5u"},
		{key.Alt(key.A), "\x1ba"},
		{key.Alt(key.Shift(key.A)), "\x1bA"},
		{key.Alt(key.Shift(key.O)), "\x1b[79;4u"},
		{key.Shift(key.TAB), "\x1b[Z"},
		{key.Up, "\x1b[A"},
		{key.Ctrl(key.Up), "\x1b[1;5A"},
		{key.F1, "\x1bOP"},
		{key.Alt(key.F2), "\x1b[1;3Q"},
		{key.F5, "\x1b[15~"},
		{key.Shift(key.Del), "\x1b[3;2~"},
		{key.BS, "\x7f"},
		{key.Esc, "\x1b"},
		{key.LowerCcedilla, "ç"},
		{key.Ctrl(key.CR), "\x1b[13;5u"},
	}
	for _, tt := range tests {
		got, ok := Encode(tt.c)
		if !ok {
			t.Errorf("Encode(%v) failed", tt.c)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("Encode(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
	if _, ok := Encode(key.LShift); ok {
		t.Error("Encode(LShift) succeeded")
	}
}

// corpus lists inputs that cover every decoding path
func corpus() []string {
	var in []string
	for b := 0; b < 0x80; b++ {
		in = append(in, string([]byte{byte(b)}))
		in = append(in, string([]byte{esc, byte(b)}))
	}
	accented := []string{"¨", "´", "Ç", "ç"}
	for _, s := range accented {
		in = append(in, s, "\x1b"+s)
	}
	for m := 1; m <= 16; m++ {
		ms := strconv.Itoa(m)
		for f := range letterFinal {
			in = append(in, "\x1b[1;"+ms+string(f))
		}
		for n := range tildeKeys {
			in = append(in, "\x1b["+strconv.Itoa(n)+";"+ms+"~")
		}
		in = append(in, "\x1b[1;"+ms+"Z")
		for cp := 32; cp < 127; cp++ {
			in = append(in, "\x1b["+strconv.Itoa(cp)+";"+ms+"u")
		}
		for _, cp := range []int{8, 9, 13, 27, 127, 0xA8, 0xB4, 0xC7, 0xE7} {
			in = append(in, "\x1b["+strconv.Itoa(cp)+";"+ms+"u")
		}
	}
	for f := range letterFinal {
		in = append(in, "\x1b["+string(f), "\x1bO"+string(f))
	}
	for f := range keypadSS3 {
		in = append(in, "\x1bO"+string(f))
	}
	return in
}

func TestRoundTrip(t *testing.T) {
	for _, in := range corpus() {
		for _, ev := range decode(in) {
			kev, ok := ev.Payload.(event.KeyEvent)
			if !ok {
				continue
			}
			c := kev.Code
			enc, ok := Encode(c)
			if !ok {
				t.Errorf("Encode(%v) from %q failed", c, in)
				continue
			}
			if diff := cmp.Diff(keys(c), decode(string(enc))); diff != "" {
				t.Errorf("round trip of %v via %q (-want +got):\n%s", c, enc, diff)
			}
		}
	}
}
