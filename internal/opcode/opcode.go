// Package opcode holds the fixed, bijective mapping between AppleSoft BASIC
// reserved words and the single-byte tokens (0x80..0xFF) the Apple II ROM
// stores in place of them. It is read-only process-wide data — following the
// teacher lineage's guidance against wrapping constant lookup tables in a
// constructed singleton, it is exposed as package-level maps built once in
// an init block rather than behind a "New..." constructor.
package opcode

// table is the ordered list backing both the mnemonic->byte and
// byte->mnemonic maps, in ascending byte order. Each byte and each mnemonic
// appears once; REM is fixed at 0xB2 as required by the cassette archives
// this toolkit round-trips.
var table = []struct {
	Byte     byte
	Mnemonic string
}{
	{0x80, "END"}, {0x81, "FOR"}, {0x82, "NEXT"}, {0x83, "DATA"},
	{0x84, "INPUT"}, {0x85, "DEL"}, {0x86, "DIM"}, {0x87, "READ"},
	{0x88, "GR"}, {0x89, "TEXT"}, {0x8A, "PR#"}, {0x8B, "IN#"},
	{0x8C, "CALL"}, {0x8D, "PLOT"}, {0x8E, "HLIN"}, {0x8F, "VLIN"},
	{0x90, "HGR2"}, {0x91, "HGR"}, {0x92, "HCOLOR="}, {0x93, "HPLOT"},
	{0x94, "DRAW"}, {0x95, "XDRAW"}, {0x96, "HTAB"}, {0x97, "HOME"},
	{0x98, "ROT="}, {0x99, "SCALE="}, {0x9A, "SHLOAD"}, {0x9B, "TRACE"},
	{0x9C, "NOTRACE"}, {0x9D, "NORMAL"}, {0x9E, "INVERSE"}, {0x9F, "FLASH"},
	{0xA0, "COLOR="}, {0xA1, "POP"}, {0xA2, "VTAB"}, {0xA3, "HIMEM:"},
	{0xA4, "LOMEM:"}, {0xA5, "ONERR"}, {0xA6, "RESUME"}, {0xA7, "GET"},
	{0xA8, "WAIT"}, {0xA9, "LOAD"}, {0xAA, "SAVE"}, {0xAB, "DEF"},
	{0xAC, "POKE"}, {0xAD, "PRINT"}, {0xAE, "CONT"}, {0xAF, "LIST"},
	{0xB0, "CLEAR"}, {0xB1, "RUN"}, {0xB2, "REM"}, {0xB3, "STOP"},
	{0xB4, "ON"}, {0xBE, "NEW"}, {0xBF, "TAB("},
	{0xC0, "TO"}, {0xC1, "FN"}, {0xC2, "SPC("}, {0xC3, "THEN"},
	{0xC4, "AT"}, {0xC5, "NOT"}, {0xC6, "STEP"}, {0xC7, "+"},
	{0xC8, "-"}, {0xC9, "*"}, {0xCA, "/"}, {0xCB, "^"},
	{0xCC, "AND"}, {0xCD, "OR"}, {0xCE, ">"}, {0xCF, "="},
	{0xD0, "<"}, {0xD1, "SGN"}, {0xD2, "INT"}, {0xD3, "ABS"},
	{0xD4, "USR"}, {0xD5, "FRE"}, {0xD6, "SCRN("}, {0xD7, "PDL"},
	{0xD8, "POS"}, {0xD9, "SQR"}, {0xDA, "RND"}, {0xDB, "LOG"},
	{0xDC, "EXP"}, {0xDD, "COS"}, {0xDE, "SIN"}, {0xDF, "TAN"},
	{0xE0, "ATN"}, {0xE1, "PEEK"}, {0xE2, "LEN"}, {0xE3, "STR$"},
	{0xE4, "VAL"}, {0xE5, "ASC"}, {0xE6, "CHR$"}, {0xE7, "LEFT$"},
	{0xE8, "RIGHT$"}, {0xE9, "MID$"}, {0xEA, "LET"}, {0xEB, "GOTO"},
	{0xEC, "GOSUB"}, {0xED, "RETURN"}, {0xEE, "IF"}, {0xF0, "&"},
}

var byMnemonic map[string]byte
var byByte map[byte]string

func init() {
	byMnemonic = make(map[string]byte, len(table))
	byByte = make(map[byte]string, len(table))
	for _, e := range table {
		if _, dup := byByte[e.Byte]; !dup {
			byByte[e.Byte] = e.Mnemonic
		}
		if _, dup := byMnemonic[e.Mnemonic]; !dup {
			byMnemonic[e.Mnemonic] = e.Byte
		}
	}
}

// REM is the fixed token byte for the REM statement.
const REM byte = 0xB2

// Lookup returns the opcode byte for a reserved word (exact, case-sensitive
// match against the upper-cased mnemonic table) and whether it was found.
func Lookup(mnemonic string) (byte, bool) {
	b, ok := byMnemonic[mnemonic]
	return b, ok
}

// Mnemonic returns the reserved word for an opcode byte and whether the byte
// is a known token. Disassembly of an unknown byte in 0x80..0xFF is the
// caller's responsibility (policy: pass it through as an ASCII byte).
func Mnemonic(b byte) (string, bool) {
	m, ok := byByte[b]
	return m, ok
}

// IsToken reports whether b is a known opcode byte.
func IsToken(b byte) bool {
	_, ok := byByte[b]
	return ok
}
