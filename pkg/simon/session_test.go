package simon

import (
	"context"
	"encoding/hex"
	"testing"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex.DecodeString(%q): %v", s, err)
	}
	return b
}

// TestEncryptNSATestVector pins spec.md §8 scenario 1, the standard SIMON
// 32/64 test vector.
func TestEncryptNSATestVector(t *testing.T) {
	cfg := New32x64()
	key := hexBytes(t, "1918111009080100")
	pt := hexBytes(t, "65656877")

	sess, err := NewEncryptSession(cfg, key, pt)
	if err != nil {
		t.Fatalf("NewEncryptSession: %v", err)
	}
	out, err := sess.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := hex.EncodeToString(out); got != "c69be9bb" {
		t.Errorf("ciphertext = %s, want c69be9bb", got)
	}
}

// TestDecryptRoundTScenario2 pins spec.md §8 scenario 2: decrypting the
// scenario-1 ciphertext with the round-32 expanded key yields the original
// plaintext. Per spec.md §4.6, the decrypt session is handed the caller's
// own responsibility to supply "the round-T key for decryption", and a
// full-length round trip additionally requires continuing the LFSR from
// the encrypting session's ending state rather than the fixed §4.6 seed
// (see WithLFSRSeed; DESIGN.md records why).
func TestDecryptRoundTScenario2(t *testing.T) {
	cfg := New32x64()
	key := hexBytes(t, "1918111009080100")
	pt := hexBytes(t, "65656877")

	enc, err := NewEncryptSession(cfg, key, pt)
	if err != nil {
		t.Fatalf("NewEncryptSession: %v", err)
	}
	ct, err := enc.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("encrypt Run: %v", err)
	}
	if hex.EncodeToString(ct) != "c69be9bb" {
		t.Fatalf("encrypt produced %x, want c69be9bb", ct)
	}

	lfsr, toggle := enc.LFSRState()
	dec, err := NewDecryptSession(cfg, enc.KeyState(), ct, WithLFSRSeed(lfsr, toggle))
	if err != nil {
		t.Fatalf("NewDecryptSession: %v", err)
	}
	got, err := dec.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("decrypt Run: %v", err)
	}
	if want := hexBytes(t, "65656877"); string(got) != string(want) {
		t.Errorf("decrypted plaintext = %x, want %x", got, want)
	}
}

// TestEncryptDecryptRoundTripZeroKey pins spec.md §8 scenario 3: the
// zero-key regression fixture round-trips through encrypt then decrypt.
func TestEncryptDecryptRoundTripZeroKey(t *testing.T) {
	cfg := New32x64()
	key := make([]byte, 8)
	pt := make([]byte, 4)

	enc, err := NewEncryptSession(cfg, key, pt)
	if err != nil {
		t.Fatalf("NewEncryptSession: %v", err)
	}
	ct, err := enc.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("encrypt Run: %v", err)
	}
	if got := hex.EncodeToString(ct); got != "5ae828ec" {
		t.Errorf("ciphertext regression fixture = %s, want 5ae828ec", got)
	}

	lfsr, toggle := enc.LFSRState()
	dec, err := NewDecryptSession(cfg, enc.KeyState(), ct, WithLFSRSeed(lfsr, toggle))
	if err != nil {
		t.Fatalf("NewDecryptSession: %v", err)
	}
	got, err := dec.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("decrypt Run: %v", err)
	}
	for _, b := range got {
		if b != 0 {
			t.Fatalf("decrypted plaintext = %x, want all-zero", got)
		}
	}
}

// TestEncryptDecryptRoundTripAcrossRoundCounts exercises the round-trip
// property (spec.md §8) at several partial round counts, not just the full
// 32-round session, pinning that the continuation-seed design generalizes
// and isn't an artifact of the specific NSA test vector's round count.
func TestEncryptDecryptRoundTripAcrossRoundCounts(t *testing.T) {
	cfg := New32x64()
	key := hexBytes(t, "1918111009080100")
	pt := hexBytes(t, "65656877")

	for _, rounds := range []int{1, 2, 3, 4, 8, 16, 31, 32} {
		clockMax := rounds * cfg.WordSize

		enc, err := NewEncryptSession(cfg, key, pt)
		if err != nil {
			t.Fatalf("rounds=%d: NewEncryptSession: %v", rounds, err)
		}
		ct, err := enc.Run(context.Background(), clockMax)
		if err != nil {
			t.Fatalf("rounds=%d: encrypt Run: %v", rounds, err)
		}

		lfsr, toggle := enc.LFSRState()
		dec, err := NewDecryptSession(cfg, enc.KeyState(), ct, WithLFSRSeed(lfsr, toggle))
		if err != nil {
			t.Fatalf("rounds=%d: NewDecryptSession: %v", rounds, err)
		}
		got, err := dec.Run(context.Background(), clockMax)
		if err != nil {
			t.Fatalf("rounds=%d: decrypt Run: %v", rounds, err)
		}
		if string(got) != string(pt) {
			t.Errorf("rounds=%d: round trip = %x, want %x", rounds, got, pt)
		}
	}
}

// TestClockMax16PartialRunSnapshot pins spec.md §8 scenario 4: a partial
// run halted after exactly one word (clock_max=16) leaves a deterministic
// key-register snapshot.
func TestClockMax16PartialRunSnapshot(t *testing.T) {
	cfg := New32x64()
	key := hexBytes(t, "9669966996699669")
	pt := hexBytes(t, "65656877")

	sess, err := NewEncryptSession(cfg, key, pt)
	if err != nil {
		t.Fatalf("NewEncryptSession: %v", err)
	}
	if _, err := sess.Run(context.Background(), 16); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := hex.EncodeToString(sess.KeyState()); got != "9f62966996699669" {
		t.Errorf("key register after 16 ticks = %s, want 9f62966996699669", got)
	}
	c := make([]byte, cfg.BlockBits/8)
	sess.Seq.C.CopyBytesOut(c)
	if got := hex.EncodeToString(c); got != "2bcb6565" {
		t.Errorf("ciphertext register after 16 ticks = %s, want 2bcb6565", got)
	}
}

// TestClockMaxZeroRunsFullSession pins the clock_max=0 boundary behavior:
// it runs exactly n*T ticks, matching an explicit clock_max=n*T call.
func TestClockMaxZeroRunsFullSession(t *testing.T) {
	cfg := New32x64()
	key := hexBytes(t, "1918111009080100")
	pt := hexBytes(t, "65656877")

	zero, err := NewEncryptSession(cfg, key, pt)
	if err != nil {
		t.Fatalf("NewEncryptSession: %v", err)
	}
	outZero, err := zero.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run(0): %v", err)
	}

	explicit, err := NewEncryptSession(cfg, key, pt)
	if err != nil {
		t.Fatalf("NewEncryptSession: %v", err)
	}
	outExplicit, err := explicit.Run(context.Background(), cfg.TotalClocks())
	if err != nil {
		t.Fatalf("Run(n*T): %v", err)
	}

	if string(outZero) != string(outExplicit) {
		t.Errorf("Run(0) = %x, Run(n*T) = %x, want equal", outZero, outExplicit)
	}
}

// TestFinalTickAlignment pins spec.md §8 scenario 5: stopping after n*T-1
// ticks (one short of n*T) then ticking once more reaches the same state as
// running the full n*T session directly.
func TestFinalTickAlignment(t *testing.T) {
	cfg := New32x64()
	key := hexBytes(t, "1918111009080100")
	pt := hexBytes(t, "65656877")

	partial, err := NewEncryptSession(cfg, key, pt)
	if err != nil {
		t.Fatalf("NewEncryptSession: %v", err)
	}
	if _, err := partial.Run(context.Background(), cfg.TotalClocks()-1); err != nil {
		t.Fatalf("Run(n*T-1): %v", err)
	}
	if err := partial.Seq.Tick(); err != nil {
		t.Fatalf("final Tick: %v", err)
	}
	finalOut := make([]byte, cfg.BlockBits/8)
	partial.Seq.C.CopyBytesOut(finalOut)

	full, err := NewEncryptSession(cfg, key, pt)
	if err != nil {
		t.Fatalf("NewEncryptSession: %v", err)
	}
	fullOut, err := full.Run(context.Background(), cfg.TotalClocks())
	if err != nil {
		t.Fatalf("Run(n*T): %v", err)
	}

	if string(finalOut) != string(fullOut) {
		t.Errorf("n*T-1 then one tick = %x, want %x", finalOut, fullOut)
	}
}

// TestContextCancellationStopsAtTickBoundary pins spec.md §5: a
// pre-cancelled context aborts Run before any tick runs.
func TestContextCancellationStopsAtTickBoundary(t *testing.T) {
	cfg := New32x64()
	sess, err := NewEncryptSession(cfg, hexBytes(t, "1918111009080100"), hexBytes(t, "65656877"))
	if err != nil {
		t.Fatalf("NewEncryptSession: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sess.Run(ctx, 0); err == nil {
		t.Error("expected Run to return an error for a cancelled context")
	}
}
