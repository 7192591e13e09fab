package simon

// StrobeSet holds the six mux control signals (spec.md §4.3) derived purely
// from the within-word bit index. km1/km3/km4 gate the key feedback taps;
// cm0/cm1/cm8 gate the ciphertext feedback taps.
type StrobeSet struct {
	Km1, Km3, Km4 bool
	Cm0, Cm1, Cm8 bool
}

// Strobes computes the mux strobes for bit-clock index c (0<=c<n) in the
// given direction. Pure and stateless: a table-driven test exercises every
// c for both directions independently of a Sequencer.
func Strobes(c, n int, dir Direction) StrobeSet {
	if dir.Name == Decrypt.Name {
		return StrobeSet{
			Cm0: c != n-1,
			Cm1: c < n-2,
			Cm8: c < n-8,
			Km1: c == 0,
			Km3: c <= 2,
			Km4: c <= 3,
		}
	}
	return StrobeSet{
		Cm0: c != 0,
		Cm1: c > 1,
		Cm8: c > 7,
		Km1: c == n-1,
		Km3: c >= n-3,
		Km4: c >= n-4,
	}
}
