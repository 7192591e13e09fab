package simon

import "testing"

func TestLFSRPeriod31(t *testing.T) {
	l := NewEncryptLFSR()
	start := l.State()
	for i := 0; i < 31; i++ {
		l.StepForward()
	}
	if got := l.State(); got != start {
		t.Errorf("LFSR state after 31 forward steps = %05b, want %05b (period 31)", got, start)
	}
}

func TestLFSRForwardBackwardIdentity(t *testing.T) {
	l := NewEncryptLFSR()
	start := l.State()
	l.StepForward()
	l.StepBackward()
	if got := l.State(); got != start {
		t.Errorf("forward then backward step = %05b, want %05b (identity)", got, start)
	}
}

func TestLFSRBackwardForwardIdentity(t *testing.T) {
	l := NewDecryptLFSR()
	start := l.State()
	l.StepBackward()
	l.StepForward()
	if got := l.State(); got != start {
		t.Errorf("backward then forward step = %05b, want %05b (identity)", got, start)
	}
}

func TestToggleRotatesEachStep(t *testing.T) {
	l := NewEncryptLFSR()
	if l.ToggleBit() != 0 {
		t.Fatalf("encrypt toggle seed should start with MSB 0 (0b01), got %d", l.ToggleBit())
	}
	l.StepForward()
	if l.ToggleBit() != 1 {
		t.Errorf("toggle should have rotated to present 1 after one step, got %d", l.ToggleBit())
	}
}

func TestLFSRDoesNotCollapseToZero(t *testing.T) {
	// A 5-bit maximal-length LFSR visits all 31 nonzero states before
	// repeating; it should never settle at all-zero.
	l := NewEncryptLFSR()
	seen := map[byte]bool{}
	for i := 0; i < 31; i++ {
		if l.State() == 0 {
			t.Fatalf("LFSR reached all-zero state at step %d", i)
		}
		seen[l.State()] = true
		l.StepForward()
	}
	if len(seen) != 31 {
		t.Errorf("expected 31 distinct LFSR states over one period, saw %d", len(seen))
	}
}
