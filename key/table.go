package key

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Table is the immutable bidirectional map between base codes and names.
// Build it once with NewTable or share Default.
type Table struct {
	control  map[Code]Entry
	ascii    [int(Tilde-SP) + 1]Entry
	ext      [256]Entry // indexed by low byte of 0xFFxx codes, empty Name = no key
	accented map[Code]Entry
	byName   map[string]Entry
	order    []Entry
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Default returns the process-wide table, built on first use
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable()
	})
	return defaultTable
}

// NewTable builds a fresh table from the static entry lists
func NewTable() *Table {
	t := &Table{
		control:  make(map[Code]Entry, len(controlEntries)),
		accented: make(map[Code]Entry, len(accentedEntries)),
		byName:   make(map[string]Entry, len(controlEntries)+len(asciiEntries)+len(extendedEntries)+len(accentedEntries)),
	}

	for _, e := range controlEntries {
		t.control[e.Code] = e
		t.add(e)
	}
	for _, e := range asciiEntries {
		t.ascii[e.Code-SP] = e
		t.add(e)
	}
	for _, e := range extendedEntries {
		t.ext[e.Code&0xFF] = e
		t.add(e)
	}
	for _, e := range accentedEntries {
		t.accented[e.Code] = e
		t.add(e)
	}
	return t
}

func (t *Table) add(e Entry) {
	if _, dup := t.byName[e.Name]; dup {
		panic(fmt.Sprintf("key: duplicate name %s", e.Name))
	}
	t.byName[e.Name] = e
	t.order = append(t.order, e)
}

// lookup finds the table entry of a base code
func (t *Table) lookup(base Code) (Entry, bool) {
	switch {
	case base == BS || base == TAB || base == CR:
		return t.control[base], true
	case base < SP || base == 127:
		return Entry{}, false
	case base <= Tilde:
		return t.ascii[base-SP], true
	case base&0xFFFFFF00 == 0xFF00:
		e := t.ext[base&0xFF]
		return e, e.Name != ""
	}
	e, ok := t.accented[base]
	return e, ok
}

// Entry returns the table row for the base of c
func (t *Table) Entry(c Code) (Entry, bool) {
	return t.lookup(c.Base())
}

// PolicyOf returns the modifier policy of the base of c
func (t *Table) PolicyOf(c Code) (Policy, bool) {
	e, ok := t.lookup(c.Base())
	return e.Policy, ok
}

// nameMod picks the single modifier that appears in the name of c.
// Shift is checked first, then Ctrl, Alt and Sys; a code with several
// modifiers set is named after the first one found.
func nameMod(c Code, p Policy) Mod {
	m := c.Mods()
	if m == ModShift && p == PolicyAll {
		return ModShift
	}
	if p == PolicyBaseOnly {
		return ModNone
	}
	switch {
	case m&ModCtrl != 0:
		return ModCtrl
	case m&ModAlt != 0:
		return ModAlt
	case m&ModSys != 0:
		return ModSys
	}
	return ModNone
}

// CodeToName returns the symbolic name of c.
// Control characters other than BS, TAB and CR and DEL have no name.
// Codes outside the table get a synthesized K_0x<hex> name of their base.
func (t *Table) CodeToName(c Code) (string, bool) {
	base := c.Base()
	e, ok := t.lookup(base)
	if !ok {
		if base < SP || base == 127 {
			return "", false
		}
		return "K_0x" + strconv.FormatUint(uint64(base), 16), true
	}

	m := nameMod(c, e.Policy)
	if m == ModNone {
		return e.Name, true
	}
	for _, p := range modifierPrefixes {
		if p.mod == m {
			return "K_" + string(p.letter) + e.Name[2:], true
		}
	}
	return e.Name, true
}

// Canonical returns the code whose name equals the name of c, without
// building the name. Codes without a name report false.
func (t *Table) Canonical(c Code) (Code, bool) {
	base := c.Base()
	e, ok := t.lookup(base)
	if !ok {
		if base < SP || base == 127 {
			return 0, false
		}
		return base, true
	}
	return base.With(nameMod(c, e.Policy)), true
}

// allows reports whether entries with policy p have a named variant for m
func allows(p Policy, m Mod) bool {
	switch p {
	case PolicyAll:
		return true
	case PolicyNoShift:
		return m != ModShift
	}
	return false
}

// NameToCode resolves a name produced by CodeToName back to its code
func (t *Table) NameToCode(name string) (Code, bool) {
	if e, ok := t.byName[name]; ok {
		return e.Code, true
	}
	if !strings.HasPrefix(name, "K_") || len(name) < 4 {
		return 0, false
	}

	if strings.HasPrefix(name, "K_0x") {
		v, err := strconv.ParseUint(name[4:], 16, 32)
		if err != nil || Code(v) > baseMask {
			return 0, false
		}
		return Code(v), true
	}

	for _, p := range modifierPrefixes {
		if name[2] != p.letter {
			continue
		}
		e, ok := t.byName["K_"+name[3:]]
		if !ok || !allows(e.Policy, p.mod) {
			return 0, false
		}
		return e.Code.With(p.mod), true
	}
	return 0, false
}

// ForEachDefined visits every name the table can produce: each base entry
// followed by the modifier variants its policy allows
func (t *Table) ForEachDefined(visit func(name string, c Code)) {
	for _, e := range t.order {
		visit(e.Name, e.Code)
		for _, p := range modifierPrefixes {
			if allows(e.Policy, p.mod) {
				visit("K_"+string(p.letter)+e.Name[2:], e.Code.With(p.mod))
			}
		}
	}
}

// Names returns every name ForEachDefined visits, in the same order
func (t *Table) Names() []string {
	var out []string
	t.ForEachDefined(func(name string, _ Code) {
		out = append(out, name)
	})
	return out
}

// Entries returns the base entries in table order
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.order))
	copy(out, t.order)
	return out
}

// String formats c for diagnostics as its name, falling back to hex
func (c Code) String() string {
	if name, ok := Default().CodeToName(c); ok {
		return name
	}
	return fmt.Sprintf("0x%x", uint32(c))
}
