package simon

import "github.com/oisee/simontool/pkg/bitreg"

// TickEvent is the per-bit-clock waveform snapshot handed to a StrobeSink
// (spec.md §4.7).
type TickEvent struct {
	K             int // bit-clock index
	ClockExponent int // the session's fixed PWL "mag" exponent (Config.ClockMagnitude)
	Strobes       StrobeSet
	LFSRBit       byte
	ToggleBit     byte
	Z             byte
	FK, FC        byte
}

// RoundSnapshot is the per-word-boundary register snapshot handed to a
// LogSink (spec.md §4.7), taken before step 1 of the tick at that boundary.
type RoundSnapshot struct {
	Round              int
	K, C               *bitreg.Register
	LFSRBit, ToggleBit byte
	Z                  byte
}

// StrobeSink receives one TickEvent per bit-clock. Returning a non-nil
// error is a fatal stop: the session aborts at the current tick boundary
// and discards partial output (spec.md §7).
type StrobeSink interface {
	OnTick(TickEvent) error
}

// LogSink receives one RoundSnapshot per word boundary, with the same
// fatal-stop contract as StrobeSink.
type LogSink interface {
	OnRound(RoundSnapshot) error
}

// NullStrobeSink discards every tick; the permitted no-op sink (spec.md
// §4.7).
type NullStrobeSink struct{}

func (NullStrobeSink) OnTick(TickEvent) error { return nil }

// NullLogSink discards every round snapshot.
type NullLogSink struct{}

func (NullLogSink) OnRound(RoundSnapshot) error { return nil }
