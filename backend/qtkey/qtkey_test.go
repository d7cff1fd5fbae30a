package qtkey

import (
	"testing"

	"github.com/lixenwraith/keyway/key"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want key.Code
	}{
		{"Lower a", Event{Key: Key_A, Text: "a"}, key.LowerA},
		{"Upper a", Event{Key: Key_A, Modifiers: ShiftModifier, Text: "A"}, key.A},
		{"Caps text", Event{Key: Key_A, Text: "A"}, key.A},
		{"Ctrl a", Event{Key: Key_A, Modifiers: ControlModifier, Text: "\x01"}, key.Ctrl(key.A)},
		{"Meta shift a", Event{Key: Key_A, Modifiers: MetaModifier | ShiftModifier}, key.Sys(key.Shift(key.A))},
		{"Backtab", Event{Key: Key_Backtab, Modifiers: ShiftModifier}, key.Shift(key.TAB)},
		{"Backtab no shift flag", Event{Key: Key_Backtab}, key.Shift(key.TAB)},
		{"Keypad home", Event{Key: Key_Home, Modifiers: KeypadModifier}, key.Num7},
		{"Keypad delete", Event{Key: Key_Delete, Modifiers: KeypadModifier | ControlModifier}, key.Ctrl(key.Period)},
		{"Home", Event{Key: Key_Home}, key.Home},
		{"Keypad enter", Event{Key: Key_Enter, Modifiers: KeypadModifier}, key.CR},
		{"Exclam", Event{Key: '!', Modifiers: ShiftModifier, Text: "!"}, key.Exclam},
		{"Ctrl plus", Event{Key: '+', Modifiers: ControlModifier | ShiftModifier}, key.Ctrl(key.Shift(key.Plus))},
		{"F12", Event{Key: Key_F12, Modifiers: AltModifier}, key.Alt(key.F12)},
		{"Cedilla", Event{Key: Key_Ccedilla, Text: "ç"}, key.LowerCcedilla},
		{"Upper cedilla", Event{Key: Key_Ccedilla, Modifiers: ShiftModifier, Text: "Ç"}, key.Ccedilla},
		{"Meta key", Event{Key: Key_Meta}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.ev); got != tt.want {
				t.Errorf("Decode(%+v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	var keys []int
	for k := Key_Space; k <= '~'; k++ {
		keys = append(keys, k)
	}
	keys = append(keys, Key_diaeresis, Key_acute, Key_Ccedilla, Key_Backtab, Key_Enter)
	for k := range special {
		keys = append(keys, k)
	}
	for k := Key_F1; k <= Key_F12; k++ {
		keys = append(keys, k)
	}
	texts := []string{"", "a", "A", "ç", "Ç"}

	seen := 0
	for _, k := range keys {
		for bits := uint32(0); bits < 32; bits++ {
			for _, text := range texts {
				ev := Event{Key: k, Modifiers: bits << 25, Text: text}
				c := Decode(ev)
				if c == 0 {
					continue
				}
				seen++
				enc, ok := Encode(c)
				if !ok {
					t.Fatalf("Encode(%v) failed, decoded from %+v", c, ev)
				}
				if got := Decode(enc); got != c {
					t.Fatalf("Decode(Encode(%v)) = %v via %+v (from %+v)", c, got, enc, ev)
				}
			}
		}
	}
	if seen == 0 {
		t.Fatal("no key decoded")
	}
}
