package opcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestREMIsFixedByte(t *testing.T) {
	b, ok := Lookup("REM")
	assert.True(t, ok)
	assert.Equal(t, REM, b)
	assert.Equal(t, byte(0xB2), b)
}

func TestTableIsBijective(t *testing.T) {
	seenBytes := map[byte]bool{}
	seenMnemonics := map[string]bool{}
	for _, e := range table {
		assert.Falsef(t, seenBytes[e.Byte], "duplicate byte 0x%02X", e.Byte)
		assert.Falsef(t, seenMnemonics[e.Mnemonic], "duplicate mnemonic %s", e.Mnemonic)
		seenBytes[e.Byte] = true
		seenMnemonics[e.Mnemonic] = true

		m, ok := Mnemonic(e.Byte)
		assert.True(t, ok)
		assert.Equal(t, e.Mnemonic, m)

		back, ok := Lookup(e.Mnemonic)
		assert.True(t, ok)
		assert.Equal(t, e.Byte, back)
	}
}

func TestLookupMiss(t *testing.T) {
	_, ok := Lookup("NOTATOKEN")
	assert.False(t, ok)

	_, ok = Mnemonic(0x01)
	assert.False(t, ok)
	assert.False(t, IsToken(0x01))
}

func TestKnownReservedWords(t *testing.T) {
	for _, word := range []string{"PRINT", "GOTO", "LET", "REM", "="} {
		_, ok := Lookup(word)
		assert.Truef(t, ok, "expected %s to be a known token", word)
	}
}
