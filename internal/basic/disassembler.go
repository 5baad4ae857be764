package basic

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"a2cas-core-dx/internal/byteutil"
	"a2cas-core-dx/internal/debug"
	"a2cas-core-dx/internal/opcode"
)

// Line is one decoded line of AppleSoft BASIC source: its line number and
// its reconstructed text (reserved words expanded from single-byte tokens,
// everything else passed through as written). Text and TextAfterNumber are
// the same value; TextAfterNumber is kept alongside FullText so callers that
// only ever saw the external three-field shape don't need the String method.
type Line struct {
	Number          int
	Text            string
	TextAfterNumber string
	FullText        string
}

// String renders the line the way it would appear in a program listing.
func (l Line) String() string {
	return fmt.Sprintf("%d %s", l.Number, l.Text)
}

func newLine(number int, text string) Line {
	return Line{
		Number:          number,
		Text:            text,
		TextAfterNumber: text,
		FullText:        fmt.Sprintf("%d %s", number, text),
	}
}

// Disassemble walks a tokenized AppleSoft program image record by record,
// expanding each record's body back into readable BASIC text.
//
// A zero next-line address marks the end of the program. A next-line
// address below the current one marks a corrupt header: the Options'
// logger, if one is set (DefaultOptions sets none), receives a soft-error
// note and disassembly stops there, returning whatever lines were already
// decoded. A record that claims more bytes than remain in the buffer, or
// fewer than the shortest well-formed record, is a hard failure:
// ErrTruncatedInput.
func Disassemble(program []byte) ([]Line, error) {
	return disassembleWith(program, DefaultOptions())
}

// DisassembleWithOptions is Disassemble with caller-supplied Options, for
// front ends that want the non-advancing-header soft error routed to their
// own debug.Logger instead of discarded.
func DisassembleWithOptions(program []byte, opts Options) ([]Line, error) {
	if opts.LoadAddress == 0 {
		opts.LoadAddress = loadAddress
	}
	return disassembleWith(program, opts)
}

func disassembleWith(program []byte, opts Options) ([]Line, error) {
	if opts.LoadAddress == 0 {
		opts.LoadAddress = loadAddress
	}
	var lines []Line
	currentAddress := uint32(opts.LoadAddress)

	for {
		idx := int(currentAddress - uint32(opts.LoadAddress))
		if idx >= len(program) {
			break
		}

		nextAddr16, err := byteutil.ReadU16LE(program, idx)
		if err != nil {
			return nil, errors.Wrapf(ErrTruncatedInput, "reading next-line address at offset %d", idx)
		}
		nextAddress := uint32(nextAddr16)
		if nextAddress == 0 {
			break
		}
		if nextAddress < currentAddress {
			if opts.Logger != nil {
				opts.Logger.LogDisassemblerf(debug.LogLevelWarning, "record at 0x%04X declares non-advancing next address 0x%04X, stopping", currentAddress, nextAddress)
			}
			break
		}

		instructionLength := int(nextAddress - currentAddress)
		if idx+instructionLength > len(program) {
			return nil, errors.Wrapf(ErrTruncatedInput, "record at offset %d needs %d bytes, only %d remain", idx, instructionLength, len(program)-idx)
		}
		if instructionLength < minRecordLength {
			return nil, errors.Wrapf(ErrTruncatedInput, "record at offset %d declares a %d-byte length, shorter than the %d-byte minimum", idx, instructionLength, minRecordLength)
		}
		record := program[idx : idx+instructionLength]

		lineNumber, err := byteutil.ReadU16LE(record, 2)
		if err != nil {
			return nil, errors.Wrapf(ErrTruncatedInput, "reading line number at offset %d", idx+2)
		}

		// record is [nextAddr(2)][lineNumber(2)][body...][0x00]; the
		// trailing terminator and the encoder's off-by-one both land past
		// the body, so both are dropped here.
		body := record[4 : len(record)-2]
		lines = append(lines, newLine(int(lineNumber), decodeBody(body, opts.Logger)))

		currentAddress = nextAddress - 1
	}
	return lines, nil
}

// decodeBody expands token bytes into their mnemonics, padded with spaces
// so they don't run into neighboring text, and passes every other byte
// through unchanged. Runs of whitespace introduced by that padding are
// then collapsed to a single space and the result trimmed, matching the
// normalized spacing AppleSoft's own LIST command produces.
//
// A byte in the token range (0x80..0xFF) with no mnemonic is the
// UnknownOpcode soft error: logged, not failed, and passed through as if it
// were a literal ASCII byte.
func decodeBody(body []byte, logger *debug.Logger) string {
	var b strings.Builder
	for _, c := range body {
		if mnemonic, ok := opcode.Mnemonic(c); ok {
			b.WriteByte(' ')
			b.WriteString(mnemonic)
			b.WriteByte(' ')
			continue
		}
		if c >= 0x80 && logger != nil {
			logger.LogDisassemblerf(debug.LogLevelWarning, "unknown opcode byte 0x%02X, passing through as ASCII", c)
		}
		b.WriteByte(c)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
