// Package simon implements a cycle-accurate behavioral model of a
// bit-serial hardware datapath for the SIMON 32/64 lightweight block
// cipher: the LFSR-driven round-constant sequence, the mux controller,
// the XOR feedback network, and the master clock sequencer that ties them
// together one bit-clock at a time.
package simon

import "fmt"

// ConfigError reports a rejected cipher configuration: an unsupported
// block/key combination, or a key or block longer than the register it
// loads into. Non-hex input is rejected earlier, by pkg/hexcodec.
// Distinct from a generic error so callers can errors.As it per spec.md
// §7's "configuration error" class.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("simon: invalid %s: %s", e.Field, e.Reason)
}

// Config holds the cipher parameters {block_bits, key_bits, rounds, Z}
// and their derived word size / key-word count (spec.md §3).
type Config struct {
	BlockBits int // 2n
	KeyBits   int // m*n
	Rounds    int // T
	ZIndex    int // Z: which z-sequence to use

	WordSize int // n, derived
	KeyWords int // m, derived

	ClockMagnitude int // PWL "mag" exponent, fixed per session (simon.c's clock_magnitude)
}

// New32x64 returns the only cipher configuration this simulator runs:
// SIMON 32/64 (n=16, m=4, T=32, Z=0). spec.md §9's open question on
// supporting other parameterizations is decided here: the API honors only
// this configuration and rejects every other combination via NewConfig.
func New32x64() Config {
	cfg, err := NewConfig(32, 64)
	if err != nil {
		// New32x64 constructs a configuration this package itself defines
		// as valid; a failure here would be a bug in this file, not a
		// caller error.
		panic(err)
	}
	return cfg
}

// allowedBlockBits and allowedKeyBits enumerate the widths SIMON
// parameterizes across (spec.md §3); NewConfig rounds a requested width up
// to the next one of these, then checks the (block,key) pair against the
// single combination this simulator actually implements.
var allowedBlockBits = []int{32, 48, 64, 96, 128}
var allowedKeyBits = []int{64, 72, 96, 128, 144, 192, 256}

// NewConfig rounds blockBits and keyBits up to the next valid SIMON width
// (spec.md §6's set_block_bits/set_key_bits rule) and returns a Config for
// the 32/64 parameterization. Any request that does not round to exactly
// block_bits=32, key_bits=64 is rejected with a *ConfigError: this
// simulator implements only the SIMON 32/64 mux/feedback tables (spec.md
// §9's open question, decided as "(a) honor only 32/64 at the API").
func NewConfig(blockBits, keyBits int) (Config, error) {
	b := roundUp(blockBits, allowedBlockBits)
	k := roundUp(keyBits, allowedKeyBits)
	if b != 32 || k != 64 {
		return Config{}, &ConfigError{
			Field:  "block_bits/key_bits",
			Reason: fmt.Sprintf("only SIMON 32/64 is implemented (requested rounds to %d/%d)", b, k),
		}
	}
	n := b / 2
	m := k / n
	if m < 2 || m > 4 {
		return Config{}, &ConfigError{Field: "key_bits", Reason: "key word count m must be in [2,4]"}
	}
	return Config{
		BlockBits:      b,
		KeyBits:        k,
		Rounds:         32,
		ZIndex:         0,
		WordSize:       n,
		KeyWords:       m,
		ClockMagnitude: -6, // microseconds, simon.c's clock_magnitude constant
	}, nil
}

func roundUp(bits int, allowed []int) int {
	best := -1
	max := allowed[0]
	for _, w := range allowed {
		if w > max {
			max = w
		}
		if w >= bits && (best == -1 || w < best) {
			best = w
		}
	}
	if best == -1 {
		return max
	}
	return best
}

// KeyHexChars is the number of hex characters set_key_hex accepts
// (m*n/4): the full key register's hex width.
func (c Config) KeyHexChars() int { return c.KeyBits / 4 }

// BlockHexChars is the number of hex characters set_block_hex accepts
// (2n/4): the full ciphertext/plaintext register's hex width.
func (c Config) BlockHexChars() int { return c.BlockBits / 4 }

// TotalClocks is n*T, the default number of bit-clocks a full session
// runs for when no clock-limit override is supplied.
func (c Config) TotalClocks() int { return c.WordSize * c.Rounds }
