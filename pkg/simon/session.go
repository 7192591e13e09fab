package simon

import (
	"context"
	"fmt"

	"github.com/oisee/simontool/pkg/bitreg"
)

// Session is the C6 driver: it owns the Sequencer for the duration of one
// encrypt or decrypt call and exports the result as bytes once Run
// completes.
type Session struct {
	Cfg Config
	Seq *Sequencer

	Input, Output []byte
}

// SessionOption configures a Session at construction time, beyond spec.md
// §4.6's default seeding rule.
type SessionOption func(*sessionOpts)

type sessionOpts struct {
	lfsrSeed     byte
	toggleSeed   byte
	overrideLFSR bool
}

// WithLFSRSeed overrides the session's LFSR and toggle initial state. The
// default decrypt seed (0b10000, toggle 0b10) only inverts an encrypt run
// whose length is a multiple of the LFSR's 31-state period (spec.md §9's
// open question on the decrypt algebra, and §8 scenario 1/2's round-trip
// property, hold only when the decrypt side continues from the encrypting
// session's actual ending LFSR/toggle state rather than the fixed seed —
// see DESIGN.md). Chain sessions with (*Session).LFSRState().
func WithLFSRSeed(lfsr, toggle byte) SessionOption {
	return func(o *sessionOpts) {
		o.lfsrSeed = lfsr
		o.toggleSeed = toggle
		o.overrideLFSR = true
	}
}

func newSession(cfg Config, key, block []byte, dir Direction, defaultLFSR, defaultToggle byte, opts []SessionOption) (*Session, error) {
	o := sessionOpts{lfsrSeed: defaultLFSR, toggleSeed: defaultToggle}
	for _, apply := range opts {
		apply(&o)
	}

	if len(key) > cfg.KeyBits/8 {
		return nil, &ConfigError{Field: "key", Reason: fmt.Sprintf("key exceeds %d bytes", cfg.KeyBits/8)}
	}
	if len(block) > cfg.BlockBits/8 {
		return nil, &ConfigError{Field: "block", Reason: fmt.Sprintf("block exceeds %d bytes", cfg.BlockBits/8)}
	}

	k := bitreg.New(cfg.KeyBits)
	k.LoadBytes(key)
	c := bitreg.New(cfg.BlockBits)
	c.LoadBytes(block)

	l := newLFSRWithSeed(o.lfsrSeed, o.toggleSeed)

	seq := NewSequencer(k, c, l, dir, cfg.WordSize, cfg.ClockMagnitude)

	return &Session{Cfg: cfg, Seq: seq, Input: block}, nil
}

// NewEncryptSession seeds LFSR=0b10000/toggle=0b01, loads key and block
// MSB-first with zero-padding on the right, and returns a Session ready to
// Run (spec.md §4.6).
func NewEncryptSession(cfg Config, key, block []byte, opts ...SessionOption) (*Session, error) {
	return newSession(cfg, key, block, Encrypt, 0b10000, 0b01, opts)
}

// NewDecryptSession seeds LFSR=0b10000/toggle=0b10 by default (spec.md
// §4.6's literal text); pass WithLFSRSeed to continue from an encrypting
// session's ending state, which is what a full round-trip requires (see
// WithLFSRSeed). key is expected to be the round-T expanded key the caller
// captured from the corresponding encrypt session.
func NewDecryptSession(cfg Config, key, block []byte, opts ...SessionOption) (*Session, error) {
	return newSession(cfg, key, block, Decrypt, 0b10000, 0b10, opts)
}

// Run executes n*T bit-clocks, or exactly clockMax if clockMax != 0
// (spec.md §4.6), checking ctx between ticks only — the only point at
// which session state is self-consistent (spec.md §5). On a sink fatal
// stop or context cancellation, Run discards partial output and returns
// the error; otherwise it returns the big-endian ciphertext/plaintext
// bytes.
func (s *Session) Run(ctx context.Context, clockMax int) ([]byte, error) {
	total := clockMax
	if total == 0 {
		total = s.Cfg.TotalClocks()
	}

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.Seq.Tick(); err != nil {
			return nil, fmt.Errorf("simon: session aborted at tick %d: %w", i, err)
		}
	}

	out := make([]byte, s.Cfg.BlockBits/8)
	s.Seq.C.CopyBytesOut(out)
	s.Output = out
	return out, nil
}

// LFSRState returns the session's current LFSR register value and toggle
// value, for chaining into a subsequent session via WithLFSRSeed.
func (s *Session) LFSRState() (lfsr, toggle byte) {
	return s.Seq.L.State(), s.Seq.L.toggle.Bit(0) | s.Seq.L.toggle.Bit(1)<<1
}

// KeyState returns the session's current key register bytes, big-endian,
// for handing to a decrypt session as the round-T expanded key.
func (s *Session) KeyState() []byte {
	buf := make([]byte, s.Cfg.KeyBits/8)
	s.Seq.K.CopyBytesOut(buf)
	return buf
}
