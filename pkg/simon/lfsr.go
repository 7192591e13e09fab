package simon

import "github.com/oisee/simontool/pkg/bitreg"

// LFSR is the 5-bit linear-feedback shift register plus its 2-bit toggle
// bit (spec.md §4.2). It drives the z-sequence used as the SIMON round
// constant stream. Pure and session-independent: it can be stepped and
// inspected without a Sequencer, matching spec.md §9's design note that
// the LFSR step function be unit-testable in isolation.
type LFSR struct {
	reg    *bitreg.Register // 5 bits
	toggle *bitreg.Register // 2 bits
}

// NewEncryptLFSR seeds the LFSR to 0b10000 with toggle 0b01, the
// encryption initial state.
func NewEncryptLFSR() *LFSR {
	l := newLFSR()
	l.toggle.SetBit(0, 1)
	return l
}

// NewDecryptLFSR seeds the LFSR to 0b10000 with toggle 0b10, the
// decryption initial state (a different toggle phase; the LFSR still
// starts at 0b10000 but is stepped backward).
func NewDecryptLFSR() *LFSR {
	l := newLFSR()
	l.toggle.SetBit(1, 1)
	return l
}

func newLFSR() *LFSR {
	reg := bitreg.New(5)
	reg.SetBit(4, 1) // 0b10000
	return &LFSR{reg: reg, toggle: bitreg.New(2)}
}

// newLFSRWithSeed constructs an LFSR from an explicit 5-bit register value
// and 2-bit toggle value, bypassing the fixed 0b10000 seed — used to chain
// a decrypt session from an encrypting session's ending state (see
// (*Session).LFSRState / WithLFSRSeed).
func newLFSRWithSeed(lfsrState, toggleState byte) *LFSR {
	reg := bitreg.New(5)
	for i := 0; i < 5; i++ {
		reg.SetBit(i, (lfsrState>>uint(i))&1)
	}
	toggle := bitreg.New(2)
	for i := 0; i < 2; i++ {
		toggle.SetBit(i, (toggleState>>uint(i))&1)
	}
	return &LFSR{reg: reg, toggle: toggle}
}

// StepForward implements lfsr_enc_step: o0 = bit2^bit4, o1 = bit4^bit3,
// rotate left by one, then overwrite bit0 with o0 and bit4 with o1. The
// toggle rotates left by one in lockstep.
func (l *LFSR) StepForward() {
	a := l.reg.Bit(4)
	b := l.reg.Bit(3)
	c := l.reg.Bit(2)
	o0 := c ^ a
	o1 := a ^ b
	l.reg.RotateLeft(1)
	l.reg.SetBit(0, o0)
	l.reg.SetBit(4, o1)
	l.toggle.RotateLeft(1)
}

// StepBackward implements lfsr_dec_step: o4 = bit3^bit0, o1 = o4^bit4,
// rotate right by one, then overwrite bit4 with o4 and bit3 with o1. The
// toggle rotates left by one in lockstep (same as StepForward — the
// toggle's own traversal direction does not reverse).
func (l *LFSR) StepBackward() {
	b3 := l.reg.Bit(3)
	b0 := l.reg.Bit(0)
	b1 := l.reg.Bit(4)
	o4 := b3 ^ b0
	o1 := o4 ^ b1
	l.reg.RotateRight(1)
	l.reg.SetBit(4, o4)
	l.reg.SetBit(3, o1)
	l.toggle.RotateLeft(1)
}

// Z returns the externally observed z bit: the LFSR's MSB (bit 4).
func (l *LFSR) Z() byte { return l.reg.Bit(4) }

// ToggleBit returns the toggle register's MSB, available for waveform
// output; it does not feed the z output in this parameterization.
func (l *LFSR) ToggleBit() byte { return l.toggle.Bit(1) }

// State returns the raw 5-bit LFSR value, mostly for snapshotting.
func (l *LFSR) State() byte {
	var v byte
	for i := 0; i < 5; i++ {
		v |= l.reg.Bit(i) << uint(i)
	}
	return v
}
