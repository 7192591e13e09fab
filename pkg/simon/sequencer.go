package simon

import "github.com/oisee/simontool/pkg/bitreg"

// Sequencer is the master clock (C5): it owns the key and ciphertext
// registers and the LFSR, and advances all three by exactly one bit-clock
// per Tick call, in the order spec.md §4.5 mandates. Direction-specific
// behavior (shift direction, tap offset, key-bit source, LFSR traversal)
// is entirely captured by Dir, so this type never branches on a mode flag.
type Sequencer struct {
	K, C *bitreg.Register
	L    *LFSR
	Dir  Direction

	K0             int // bit-clock counter
	WordSize       int // n
	ClockMagnitude int // PWL "mag" exponent, fixed for the session
	Strobes        StrobeSet
	FK, FC         byte

	StrobeSink StrobeSink
	LogSink    LogSink

	round int
}

// NewSequencer constructs a sequencer over already-seeded K, C, and L.
// clockMagnitude is the fixed PWL exponent every TickEvent carries
// (spec.md §6, simon.c's clock_magnitude); pass Config.ClockMagnitude.
func NewSequencer(k, c *bitreg.Register, l *LFSR, dir Direction, wordSize, clockMagnitude int) *Sequencer {
	return &Sequencer{
		K: k, C: c, L: l, Dir: dir, WordSize: wordSize, ClockMagnitude: clockMagnitude,
		StrobeSink: NullStrobeSink{},
		LogSink:    NullLogSink{},
	}
}

// Tick performs exactly the seven steps of spec.md §4.5: strobes, key
// feedback, ciphertext feedback, conditional LFSR step, the two register
// shifts, then the counter increment. At a word boundary the LogSink
// snapshot is taken first, before the strobes; the StrobeSink event is
// emitted after the shifts and before the counter increment. It
// is a total function of pre-tick state — the only error it can return
// comes from an attached sink reporting a fatal stop (spec.md §7).
func (s *Sequencer) Tick() error {
	c := s.K0 % s.WordSize
	atWordStart := c == 0

	if atWordStart && s.LogSink != nil {
		if err := s.LogSink.OnRound(RoundSnapshot{
			Round:     s.round,
			K:         s.K.Clone(),
			C:         s.C.Clone(),
			LFSRBit:   s.L.Z(),
			ToggleBit: s.L.ToggleBit(),
			Z:         s.L.Z(),
		}); err != nil {
			return err
		}
	}

	s.Strobes = Strobes(c, s.WordSize, s.Dir)

	z := s.L.Z()
	s.FK = KeyFeedback(s.K, s.Strobes, z, s.Dir)

	var keyBit byte
	if s.Dir.KeyBitSource == KeyBitPreShift {
		keyBit = s.K.Bit(0)
	} else {
		keyBit = s.FK
	}
	s.FC = CryptoFeedback(s.C, s.Strobes, keyBit, s.Dir)

	if atWordStart {
		s.Dir.StepLFSR(s.L)
	}

	s.Dir.ShiftKey(s.K, s.FK)
	s.Dir.ShiftCrypto(s.C, s.FC)

	if s.StrobeSink != nil {
		if err := s.StrobeSink.OnTick(TickEvent{
			K:             s.K0,
			ClockExponent: s.ClockMagnitude,
			Strobes:       s.Strobes,
			LFSRBit:       s.L.Z(),
			ToggleBit:     s.L.ToggleBit(),
			Z:             z,
			FK:            s.FK,
			FC:            s.FC,
		}); err != nil {
			return err
		}
	}

	s.K0++
	if s.K0%s.WordSize == 0 {
		s.round++
	}
	return nil
}
