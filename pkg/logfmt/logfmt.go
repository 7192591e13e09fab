// Package logfmt formats the per-round register snapshot spec.md §6
// defines into the plain, LaTeX, and (supplementing the original) JSON
// forms a log sink can emit. simon.c writes these directly to stdout with
// fprintf; here each writer wraps an io.Writer and implements
// simon.LogSink so the CLI decides where the output goes.
package logfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/oisee/simontool/pkg/simon"
)

// PlainWriter emits the three-line-per-round block of spec.md §6: LFSR +
// toggle + z on one line, key hex grouped by n/(2m) on the next,
// ciphertext hex grouped the same way on the third.
type PlainWriter struct {
	out   io.Writer
	group int
}

// NewPlainWriter returns a PlainWriter grouping hex output every group
// nibbles (pass n/(2*m), e.g. 2 for SIMON 32/64).
func NewPlainWriter(out io.Writer, group int) *PlainWriter {
	return &PlainWriter{out: out, group: group}
}

// OnRound implements simon.LogSink.
func (w *PlainWriter) OnRound(s simon.RoundSnapshot) error {
	_, err := fmt.Fprintf(w.out, "round %02d: lfsr=%d toggle=%d z=%d\nK: %s\nC: %s\n",
		s.Round, s.LFSRBit, s.ToggleBit, s.Z, s.K.HexString(w.group), s.C.HexString(w.group))
	return err
}

// LaTeXWriter emits one table row per round — round number, LFSR bit, z,
// grouped key hex, grouped ciphertext hex — terminated by \\ and followed
// by \hline. It writes no \multirow or \cline, and the toggle bit is not
// part of the row.
type LaTeXWriter struct {
	out   io.Writer
	group int
}

// NewLaTeXWriter returns a LaTeXWriter grouping hex output the same way as
// NewPlainWriter.
func NewLaTeXWriter(out io.Writer, group int) *LaTeXWriter {
	return &LaTeXWriter{out: out, group: group}
}

// OnRound implements simon.LogSink.
func (w *LaTeXWriter) OnRound(s simon.RoundSnapshot) error {
	_, err := fmt.Fprintf(w.out, "%02d & %d & %d & %s & %s \\\\\n\\hline\n",
		s.Round, s.LFSRBit, s.Z, s.K.HexString(w.group), s.C.HexString(w.group))
	return err
}

// jsonRound is the JSON-serializable form of a RoundSnapshot; bitreg
// registers don't implement json.Marshaler themselves so this package
// renders them to hex before handing off to encoding/json.
type jsonRound struct {
	Round     int    `json:"round"`
	LFSRBit   byte   `json:"lfsr_bit"`
	ToggleBit byte   `json:"toggle_bit"`
	Z         byte   `json:"z"`
	Key       string `json:"key"`
	Crypto    string `json:"crypto"`
}

// JSONWriter round-trips each RoundSnapshot through encoding/json, one
// object per line — the one log format this module adds beyond the
// original's plain/LaTeX pair (--log-format json).
type JSONWriter struct {
	out io.Writer
	enc *json.Encoder
}

// NewJSONWriter returns a JSONWriter.
func NewJSONWriter(out io.Writer) *JSONWriter {
	return &JSONWriter{out: out, enc: json.NewEncoder(out)}
}

// OnRound implements simon.LogSink.
func (w *JSONWriter) OnRound(s simon.RoundSnapshot) error {
	return w.enc.Encode(jsonRound{
		Round:     s.Round,
		LFSRBit:   s.LFSRBit,
		ToggleBit: s.ToggleBit,
		Z:         s.Z,
		Key:       s.K.HexString(0),
		Crypto:    s.C.HexString(0),
	})
}
