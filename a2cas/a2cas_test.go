package a2cas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a2cas-core-dx/internal/byteutil"
)

func TestScenarioREMRoundTrip(t *testing.T) {
	source := []string{`1 REM Eat "your" = vegetables`}
	program, err := Assemble(source)
	require.NoError(t, err)

	lines, err := Disassemble(program)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, source[0], lines[0].FullText)
}

func TestScenarioStringAssignment(t *testing.T) {
	source := []string{`1 LET X$ = "some value"`}
	program, err := Assemble(source)
	require.NoError(t, err)

	lines, err := Disassemble(program)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, source[0], lines[0].FullText)
}

func TestScenarioMultiLineProgram(t *testing.T) {
	source := []string{
		`1 LET X$ = "some value"`,
		`2 PRINT X$`,
		`3 LET Y$ = X$ + "some other test"`,
		`4 PRINT Y$`,
		`5 GOTO 1`,
	}
	program, err := Assemble(source)
	require.NoError(t, err)

	lines, err := Disassemble(program)
	require.NoError(t, err)
	require.Len(t, lines, len(source))
	for i, want := range source {
		assert.Equal(t, want, lines[i].FullText)
	}
}

func TestScenarioFullAudioRoundTrip(t *testing.T) {
	source := []string{
		`1 LET X$ = "some value"`,
		`2 PRINT X$`,
		`3 LET Y$ = X$ + "some other test"`,
		`4 PRINT Y$`,
		`5 GOTO 1`,
	}
	wantProgram, err := Assemble(source)
	require.NoError(t, err)

	wav, err := EncodeWave(source, true)
	require.NoError(t, err)

	gotProgram, gotData, autoRun, err := DecodeWave(wav)
	require.NoError(t, err)
	assert.Equal(t, wantProgram, gotProgram)
	assert.Empty(t, gotData)
	assert.True(t, autoRun)
}

func TestScenarioFullAudioRoundTripNoAutoRun(t *testing.T) {
	source := []string{`10 PRINT "HELLO"`}
	wantProgram, err := Assemble(source)
	require.NoError(t, err)

	wav, err := EncodeWave(source, false)
	require.NoError(t, err)

	gotProgram, _, autoRun, err := DecodeWave(wav)
	require.NoError(t, err)
	assert.Equal(t, wantProgram, gotProgram)
	assert.False(t, autoRun)
}

func TestScenarioCorruptedSampleFailsDecode(t *testing.T) {
	source := []string{`10 PRINT "HELLO"`}
	wav, err := EncodeWave(source, false)
	require.NoError(t, err)

	// Flip a byte inside the PCM sample data, well past the WAVE header, to
	// corrupt a sample's amplitude without touching the container itself.
	// For this short program the middle sample lies inside the second
	// leader tone, so decoding fails while locating that block's header.
	corrupted := append([]byte{}, wav...)
	corrupted[len(corrupted)/2] ^= 0xFF

	_, _, _, err = DecodeWave(corrupted)
	assert.Error(t, err)
}

func TestScenarioInvalidHeader(t *testing.T) {
	lines, err := Disassemble([]byte{0x00, 0x01, 0x12, 0x01, 0x00})
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestAssemblePerLineTopLevel(t *testing.T) {
	source := []string{`10 END`, `20 END`}
	perLine, err := AssemblePerLine(source)
	require.NoError(t, err)
	assert.Len(t, perLine, 2)
}

func TestOptionsMethodsRoundTrip(t *testing.T) {
	opts := Options{}
	program, err := opts.Assemble([]string{`10 END`})
	require.NoError(t, err)

	lines, err := opts.Disassemble(program)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "END", lines[0].Text)

	wav, err := opts.EncodeWave([]string{`10 END`}, false)
	require.NoError(t, err)

	gotProgram, _, _, err := opts.DecodeWave(wav)
	require.NoError(t, err)
	assert.Equal(t, program, gotProgram)
}

func TestXORChecksumIdentity(t *testing.T) {
	// Folding the 0xFF-seeded checksum back in through XORChecksum applies
	// the seed twice, so the result is 0x00, not 0xFF.
	b := []byte{0x01, 0x02, 0x03, 0xAB, 0xCD}
	sum := byteutil.XORChecksum(b)
	assert.Equal(t, byte(0x00), byteutil.XORChecksum(append(append([]byte{}, b...), sum)))
}
