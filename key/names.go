package key

// Policy tells which modifier variants of a base key carry their own name
type Policy uint8

const (
	PolicyAll      Policy = iota // K_s, K_c, K_m and K_y forms all exist
	PolicyBaseOnly               // only the unmodified name exists
	PolicyNoShift                // Shift is part of the character, other forms exist
)

// Entry is one row of the name table
type Entry struct {
	Name   string
	Code   Code
	Policy Policy
}

// controlEntries are the three control characters that carry names
var controlEntries = []Entry{
	{"K_BS", BS, PolicyAll},
	{"K_TAB", TAB, PolicyAll},
	{"K_CR", CR, PolicyAll},
}

// asciiEntries covers 32..126 in code order
var asciiEntries = []Entry{
	{"K_SP", SP, PolicyAll},
	{"K_exclam", Exclam, PolicyNoShift},
	{"K_quotedbl", QuoteDbl, PolicyNoShift},
	{"K_numbersign", NumberSign, PolicyNoShift},
	{"K_dollar", Dollar, PolicyNoShift},
	{"K_percent", Percent, PolicyNoShift},
	{"K_ampersand", Ampersand, PolicyNoShift},
	{"K_apostrophe", Apostrophe, PolicyAll},
	{"K_parentleft", ParentLeft, PolicyNoShift},
	{"K_parentright", ParentRight, PolicyNoShift},
	{"K_asterisk", Asterisk, PolicyAll},
	{"K_plus", Plus, PolicyAll},
	{"K_comma", Comma, PolicyAll},
	{"K_minus", Minus, PolicyAll},
	{"K_period", Period, PolicyAll},
	{"K_slash", Slash, PolicyAll},
	{"K_0", Num0, PolicyNoShift},
	{"K_1", Num1, PolicyNoShift},
	{"K_2", Num2, PolicyNoShift},
	{"K_3", Num3, PolicyNoShift},
	{"K_4", Num4, PolicyNoShift},
	{"K_5", Num5, PolicyNoShift},
	{"K_6", Num6, PolicyNoShift},
	{"K_7", Num7, PolicyNoShift},
	{"K_8", Num8, PolicyNoShift},
	{"K_9", Num9, PolicyNoShift},
	{"K_colon", Colon, PolicyNoShift},
	{"K_semicolon", Semicolon, PolicyAll},
	{"K_less", Less, PolicyNoShift},
	{"K_equal", Equal, PolicyAll},
	{"K_greater", Greater, PolicyNoShift},
	{"K_question", Question, PolicyNoShift},
	{"K_at", At, PolicyNoShift},
	{"K_A", A, PolicyNoShift},
	{"K_B", B, PolicyNoShift},
	{"K_C", C, PolicyNoShift},
	{"K_D", D, PolicyNoShift},
	{"K_E", E, PolicyNoShift},
	{"K_F", F, PolicyNoShift},
	{"K_G", G, PolicyNoShift},
	{"K_H", H, PolicyNoShift},
	{"K_I", I, PolicyNoShift},
	{"K_J", J, PolicyNoShift},
	{"K_K", K, PolicyNoShift},
	{"K_L", L, PolicyNoShift},
	{"K_M", M, PolicyNoShift},
	{"K_N", N, PolicyNoShift},
	{"K_O", O, PolicyNoShift},
	{"K_P", P, PolicyNoShift},
	{"K_Q", Q, PolicyNoShift},
	{"K_R", R, PolicyNoShift},
	{"K_S", S, PolicyNoShift},
	{"K_T", T, PolicyNoShift},
	{"K_U", U, PolicyNoShift},
	{"K_V", V, PolicyNoShift},
	{"K_W", W, PolicyNoShift},
	{"K_X", X, PolicyNoShift},
	{"K_Y", Y, PolicyNoShift},
	{"K_Z", Z, PolicyNoShift},
	{"K_bracketleft", BracketLeft, PolicyAll},
	{"K_backslash", Backslash, PolicyAll},
	{"K_bracketright", BracketRight, PolicyAll},
	{"K_circum", Circum, PolicyNoShift},
	{"K_underscore", Underscore, PolicyNoShift},
	{"K_grave", Grave, PolicyAll},
	{"K_a", LowerA, PolicyBaseOnly},
	{"K_b", LowerB, PolicyBaseOnly},
	{"K_c", LowerC, PolicyBaseOnly},
	{"K_d", LowerD, PolicyBaseOnly},
	{"K_e", LowerE, PolicyBaseOnly},
	{"K_f", LowerF, PolicyBaseOnly},
	{"K_g", LowerG, PolicyBaseOnly},
	{"K_h", LowerH, PolicyBaseOnly},
	{"K_i", LowerI, PolicyBaseOnly},
	{"K_j", LowerJ, PolicyBaseOnly},
	{"K_k", LowerK, PolicyBaseOnly},
	{"K_l", LowerL, PolicyBaseOnly},
	{"K_m", LowerM, PolicyBaseOnly},
	{"K_n", LowerN, PolicyBaseOnly},
	{"K_o", LowerO, PolicyBaseOnly},
	{"K_p", LowerP, PolicyBaseOnly},
	{"K_q", LowerQ, PolicyBaseOnly},
	{"K_r", LowerR, PolicyBaseOnly},
	{"K_s", LowerS, PolicyBaseOnly},
	{"K_t", LowerT, PolicyBaseOnly},
	{"K_u", LowerU, PolicyBaseOnly},
	{"K_v", LowerV, PolicyBaseOnly},
	{"K_w", LowerW, PolicyBaseOnly},
	{"K_x", LowerX, PolicyBaseOnly},
	{"K_y", LowerY, PolicyBaseOnly},
	{"K_z", LowerZ, PolicyBaseOnly},
	{"K_braceleft", BraceLeft, PolicyNoShift},
	{"K_bar", Bar, PolicyNoShift},
	{"K_braceright", BraceRight, PolicyNoShift},
	{"K_tilde", Tilde, PolicyNoShift},
}

// extendedEntries populate the 256-slot table indexed by the low byte
var extendedEntries = []Entry{
	{"K_PAUSE", Pause, PolicyAll},
	{"K_ESC", Esc, PolicyAll},
	{"K_HOME", Home, PolicyAll},
	{"K_LEFT", Left, PolicyAll},
	{"K_UP", Up, PolicyAll},
	{"K_RIGHT", Right, PolicyAll},
	{"K_DOWN", Down, PolicyAll},
	{"K_PGUP", PgUp, PolicyAll},
	{"K_PGDN", PgDn, PolicyAll},
	{"K_END", End, PolicyAll},
	{"K_MIDDLE", Middle, PolicyAll},
	{"K_Print", Print, PolicyAll},
	{"K_INS", Ins, PolicyAll},
	{"K_Menu", Menu, PolicyAll},
	{"K_DEL", Del, PolicyAll},
	{"K_F1", F1, PolicyAll},
	{"K_F2", F2, PolicyAll},
	{"K_F3", F3, PolicyAll},
	{"K_F4", F4, PolicyAll},
	{"K_F5", F5, PolicyAll},
	{"K_F6", F6, PolicyAll},
	{"K_F7", F7, PolicyAll},
	{"K_F8", F8, PolicyAll},
	{"K_F9", F9, PolicyAll},
	{"K_F10", F10, PolicyAll},
	{"K_F11", F11, PolicyAll},
	{"K_F12", F12, PolicyAll},
	{"K_CLEAR", Clear, PolicyAll},
	{"K_HELP", Help, PolicyAll},

	// Locks and modifier keys carry no further modifiers
	{"K_NUM", NumLock, PolicyBaseOnly},
	{"K_SCROLL", ScrollLock, PolicyBaseOnly},
	{"K_CAPS", CapsLock, PolicyBaseOnly},
	{"K_LSHIFT", LShift, PolicyBaseOnly},
	{"K_RSHIFT", RShift, PolicyBaseOnly},
	{"K_LCTRL", LCtrl, PolicyBaseOnly},
	{"K_RCTRL", RCtrl, PolicyBaseOnly},
	{"K_LALT", LAlt, PolicyBaseOnly},
	{"K_RALT", RAlt, PolicyBaseOnly},
}

var accentedEntries = []Entry{
	{"K_ccedilla", LowerCcedilla, PolicyBaseOnly},
	{"K_Ccedilla", Ccedilla, PolicyNoShift},
	{"K_acute", Acute, PolicyBaseOnly},
	{"K_diaeresis", Diaeresis, PolicyBaseOnly},
}

// modifierPrefixes is the order in which modifier names are generated
var modifierPrefixes = []struct {
	letter byte
	mod    Mod
}{
	{'s', ModShift},
	{'c', ModCtrl},
	{'m', ModAlt},
	{'y', ModSys},
}
