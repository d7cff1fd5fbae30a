package key

import "testing"

var modifierFuncs = []struct {
	name string
	fn   func(Code) Code
	test func(Code) bool
}{
	{"Shift", Shift, Code.IsShift},
	{"Ctrl", Ctrl, Code.IsCtrl},
	{"Alt", Alt, Code.IsAlt},
	{"Sys", Sys, Code.IsSys},
}

var sampleCodes = []Code{SP, A, LowerZ, Num1, Exclam, Home, F12, Del, CapsLock, Ccedilla, TAB, CR}

func TestModifierIdempotence(t *testing.T) {
	for _, m := range modifierFuncs {
		for _, c := range sampleCodes {
			once := m.fn(c)
			if twice := m.fn(once); twice != once {
				t.Errorf("%s applied twice to %#x: got %#x, want %#x", m.name, c, twice, once)
			}
			if !m.test(once) {
				t.Errorf("%s(%#x) does not report the bit", m.name, c)
			}
			if once.Base() != c {
				t.Errorf("%s(%#x).Base() = %#x", m.name, c, once.Base())
			}
		}
	}
}

func TestModifiersCommute(t *testing.T) {
	for _, a := range modifierFuncs {
		for _, b := range modifierFuncs {
			for _, c := range sampleCodes {
				if x, y := a.fn(b.fn(c)), b.fn(a.fn(c)); x != y {
					t.Errorf("%s∘%s(%#x) = %#x, %s∘%s = %#x", a.name, b.name, c, x, b.name, a.name, y)
				}
			}
		}
	}
}

func TestBaseStripsEverything(t *testing.T) {
	c := Sys(Alt(Ctrl(Shift(F5))))
	if c.Base() != F5 {
		t.Fatalf("Base() = %#x, want %#x", c.Base(), F5)
	}
	if c.Mods() != ModMask {
		t.Errorf("Mods() = %#x, want %#x", c.Mods(), ModMask)
	}
	if !c.Has(ModCtrl | ModAlt) {
		t.Error("Has(Ctrl|Alt) = false")
	}
	if F5.IsShift() || F5.IsCtrl() || F5.IsAlt() || F5.IsSys() {
		t.Error("unmodified code reports a modifier")
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name string
		base Code
		mod  Mod
		want Code
	}{
		{"plain letter", LowerA, ModNone, LowerA},
		{"shifted letter keeps layout case", A, ModShift, A},
		{"ctrl forces upper case", LowerA, ModCtrl, Ctrl(A)},
		{"ctrl shift letter keeps shift bit", A, ModCtrl | ModShift, Ctrl(Shift(A))},
		{"alt letter", LowerQ, ModAlt, Alt(Q)},
		{"sys letter", LowerQ, ModSys, Sys(Q)},
		{"shift absorbed by punctuation", Exclam, ModShift, Exclam},
		{"ctrl keeps shift on punctuation", Num1, ModCtrl | ModShift, Ctrl(Shift(Num1))},
		{"shift kept on space", SP, ModShift, Shift(SP)},
		{"shift kept on tab", TAB, ModShift, Shift(TAB)},
		{"shift kept on extended", Home, ModShift, Shift(Home)},
		{"accented absorbs shift", Ccedilla, ModShift, Ccedilla},
		{"modifiers on input base are dropped", Ctrl(LowerB), ModNone, LowerB},
	}
	for _, tt := range tests {
		if got := Compose(tt.base, tt.mod); got != tt.want {
			t.Errorf("%s: Compose(%#x, %#x) = %#x, want %#x", tt.name, tt.base, tt.mod, got, tt.want)
		}
	}
}

func TestToUpper(t *testing.T) {
	if got := ToUpper(Ctrl(LowerX)); got != Ctrl(X) {
		t.Errorf("ToUpper(Ctrl(x)) = %#x", got)
	}
	if got := ToUpper(LowerCcedilla); got != Ccedilla {
		t.Errorf("ToUpper(ç) = %#x", got)
	}
	if got := ToUpper(Num5); got != Num5 {
		t.Errorf("ToUpper(5) = %#x", got)
	}
}

func TestUSLayout(t *testing.T) {
	chars := []struct {
		key   rune
		shift bool
		want  rune
	}{
		{'a', false, 'a'},
		{'a', true, 'A'},
		{'1', true, '!'},
		{'=', true, '+'},
		{'/', false, '/'},
		{' ', true, ' '},
	}
	for _, tt := range chars {
		if got := USLayout.Char(tt.key, tt.shift); got != tt.want {
			t.Errorf("Char(%q, %v) = %q, want %q", tt.key, tt.shift, got, tt.want)
		}
	}

	for ch := rune(' '); ch <= '~'; ch++ {
		k, shift, ok := USLayout.Key(ch)
		if !ok {
			t.Errorf("Key(%q) not found", ch)
			continue
		}
		if back := USLayout.Char(k, shift); back != ch {
			t.Errorf("Char(Key(%q)) = %q", ch, back)
		}
	}
}
