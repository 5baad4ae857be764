// Package a2cas is the public front door for the AppleSoft BASIC
// tokenizer and cassette audio toolkit: assemble and disassemble tokenized
// program images, and encode or decode the WAVE cassette archives built
// from them. Everything else in this module lives under internal/ — a
// thin CLI, GUI, or test harness built on top of this package is expected
// to do its own file I/O and argument parsing.
package a2cas

import (
	"github.com/pkg/errors"

	"a2cas-core-dx/internal/basic"
	"a2cas-core-dx/internal/cassette"
	"a2cas-core-dx/internal/debug"
)

// DefaultSampleRate is the sample rate EncodeWave renders at. DecodeWave
// does not use it: it decodes at whatever rate the WAVE header declares.
const DefaultSampleRate = 48000

// Line mirrors basic.Line: a disassembled source line's number and text.
type Line = basic.Line

// Options carries a debug.Logger through the four operations below, matching
// the teacher's pattern of a single component-tagged logger threaded through
// a whole pipeline rather than constructed per call. The package-level
// functions (Assemble, Disassemble, EncodeWave, DecodeWave) are shorthand
// for Options{} — logging disabled.
type Options struct {
	Logger *debug.Logger
}

// Assemble tokenizes lines of AppleSoft BASIC source into a single flat
// program image, terminated by the end-of-program marker.
func Assemble(lines []string) ([]byte, error) {
	return (Options{}).Assemble(lines)
}

// Assemble is Assemble routed through o's Logger.
func (o Options) Assemble(lines []string) ([]byte, error) {
	return basic.AssembleWithOptions(lines, basic.Options{Logger: o.Logger})
}

// AssemblePerLine is Assemble but returns one record per source line
// instead of a single concatenated image.
func AssemblePerLine(lines []string) ([][]byte, error) {
	return basic.AssemblePerLine(lines)
}

// Disassemble expands a tokenized program image back into source lines.
func Disassemble(program []byte) ([]Line, error) {
	return (Options{}).Disassemble(program)
}

// Disassemble is Disassemble routed through o's Logger.
func (o Options) Disassemble(program []byte) ([]Line, error) {
	return basic.DisassembleWithOptions(program, basic.Options{Logger: o.Logger})
}

// EncodeWave assembles lines of AppleSoft BASIC source and renders the
// result as a complete WAVE cassette archive at DefaultSampleRate, with no
// trailing data block.
func EncodeWave(lines []string, autoRun bool) ([]byte, error) {
	return (Options{}).EncodeWave(lines, autoRun)
}

// EncodeWave is EncodeWave routed through o's Logger.
func (o Options) EncodeWave(lines []string, autoRun bool) ([]byte, error) {
	program, err := o.Assemble(lines)
	if err != nil {
		return nil, errors.Wrap(err, "assembling program for cassette encode")
	}
	return cassette.EncodeWithOptions(program, nil, autoRun, DefaultSampleRate, cassette.Options{Logger: o.Logger}), nil
}

// DecodeWave parses a WAVE cassette archive back into its tokenized BASIC
// program, any trailing data block, and the auto-run flag declared in the
// archive's length record.
func DecodeWave(wave []byte) (basicBytes []byte, data []byte, autoRun bool, err error) {
	return (Options{}).DecodeWave(wave)
}

// DecodeWave is DecodeWave routed through o's Logger.
func (o Options) DecodeWave(wave []byte) (basicBytes []byte, data []byte, autoRun bool, err error) {
	return cassette.DecodeWithOptions(wave, cassette.Options{Logger: o.Logger})
}
