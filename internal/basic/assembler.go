package basic

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"a2cas-core-dx/internal/byteutil"
	"a2cas-core-dx/internal/debug"
	"a2cas-core-dx/internal/opcode"
)

// Options configures a single assembly run. A zero LoadAddress is replaced
// with the standard 0x0800, so the zero value assembles with logging
// disabled.
type Options struct {
	// LoadAddress is the address the first line's header is written at.
	// AppleSoft programs are always relocated to 0x0800 by the loader, which
	// is the value DefaultOptions sets.
	LoadAddress uint16
	Logger      *debug.Logger
}

// DefaultOptions returns the standard AppleSoft load address with logging
// disabled.
func DefaultOptions() Options {
	return Options{LoadAddress: loadAddress}
}

// Assemble tokenizes lines of AppleSoft BASIC source into a single flat
// in-memory program image: each line's encoded record back to back, closed
// by the two-byte end-of-program marker (0x00, 0x00).
func Assemble(lines []string) ([]byte, error) {
	return assembleWith(lines, DefaultOptions())
}

// AssembleWithOptions is Assemble with caller-supplied Options, for front
// ends that want assembler diagnostics routed to their own debug.Logger.
func AssembleWithOptions(lines []string, opts Options) ([]byte, error) {
	if opts.LoadAddress == 0 {
		opts.LoadAddress = loadAddress
	}
	return assembleWith(lines, opts)
}

// AssemblePerLine tokenizes lines of AppleSoft BASIC source the same way as
// Assemble, but returns each line's encoded record separately instead of
// concatenated, for front ends that want to highlight which output bytes
// came from which source line. The end-of-program marker is not part of any
// line's record, so it is omitted here; concatenating the result and
// appending {0x00, 0x00} reproduces Assemble's output exactly.
func AssemblePerLine(lines []string) ([][]byte, error) {
	return assemblePerLineWith(lines, DefaultOptions())
}

func assembleWith(lines []string, opts Options) ([]byte, error) {
	records, err := assemblePerLineWith(lines, opts)
	if err != nil {
		return nil, err
	}
	var out []byte
	for _, r := range records {
		out = append(out, r...)
	}
	out = append(out, 0x00, 0x00)
	return out, nil
}

func assemblePerLineWith(lines []string, opts Options) ([][]byte, error) {
	if opts.LoadAddress == 0 {
		opts.LoadAddress = loadAddress
	}
	records := make([][]byte, 0, len(lines))
	currentAddress := uint32(opts.LoadAddress)
	for lineIdx, raw := range lines {
		lineNumber, body, err := assembleLine(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "source line %d", lineIdx+1)
		}
		record, n := encodeRecord(currentAddress, lineNumber, body)
		records = append(records, record)
		if opts.Logger != nil {
			opts.Logger.LogAssemblerf(debug.LogLevelDebug, "encoded line %d at 0x%04X (%d bytes)", lineNumber, currentAddress, n)
		}
		currentAddress += n
	}
	return records, nil
}

// assembleLine tokenizes a single BASIC source line into its decimal line
// number and its token-encoded body (everything after the line number, not
// including the next-line-address/line-number header or the trailing null).
func assembleLine(raw string) (uint16, []byte, error) {
	atoms := atomize(raw)
	if len(atoms) == 0 {
		return 0, nil, errors.Wrap(ErrInvalidLineNumber, "missing line number")
	}

	lineNumber, err := parseLineNumber(atoms[0].text)
	if err != nil {
		return 0, nil, err
	}

	if len(atoms) >= 2 && isREM(atoms[1].text) {
		remainder := raw[atoms[1].end:]
		remainder = strings.TrimPrefix(remainder, " ")
		body := make([]byte, 0, 2+len(remainder))
		body = append(body, opcode.REM, 0x20)
		body = append(body, []byte(remainder)...)
		return lineNumber, body, nil
	}

	var body []byte
	for _, a := range atoms[1:] {
		if b, ok := opcode.Lookup(strings.ToUpper(a.text)); ok {
			body = append(body, b)
			continue
		}
		body = append(body, []byte(a.text)...)
	}
	return lineNumber, body, nil
}

func parseLineNumber(text string) (uint16, error) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidLineNumber, "%q is not a number", text)
	}
	if n < minLineNumber || n >= maxLineNumber {
		return 0, errors.Wrapf(ErrInvalidLineNumber, "%d is outside [%d, %d)", n, minLineNumber, maxLineNumber)
	}
	return uint16(n), nil
}

// encodeRecord lays out one line's on-disk record:
//
//	[0:2]   next line's address (little-endian)
//	[2:4]   this line's number (little-endian)
//	[4:4+len(body)] token-encoded body
//	[last]  0x00 terminator
//
// The next-line address is one byte past where the following record
// actually starts. Real AppleSoft computes nextAddress as currentAddress
// plus the line's byte count, with no adjustment; the +1 here is this
// toolkit's own documented off-by-one, and Disassemble must undo it on the
// way back out by computing currentAddress = nextAddress - 1.
func encodeRecord(currentAddress uint32, lineNumber uint16, body []byte) ([]byte, uint32) {
	n := uint32(2 + 2 + len(body) + 1)
	nextAddress := currentAddress + n + 1

	record := make([]byte, n)
	byteutil.WriteU16LE(record, 0, uint16(nextAddress))
	byteutil.WriteU16LE(record, 2, lineNumber)
	copy(record[4:], body)
	record[n-1] = 0x00
	return record, n
}
