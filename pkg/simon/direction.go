package simon

import "github.com/oisee/simontool/pkg/bitreg"

// KeyBitSource names which key bit the ciphertext feedback consumes on a
// given tick: encrypt reads bit 0 of K before K itself shifts; decrypt reads
// the freshly computed next key bit instead (spec.md §9's "used as
// produced" note, and §4.4.2).
type KeyBitSource int

const (
	KeyBitPreShift KeyBitSource = iota
	KeyBitJustComputed
)

// Direction captures everything that differs between the encrypt and
// decrypt tick (spec.md §9's "mode as data" design note) so the sequencer
// never branches on a mode flag: shift direction for both registers, the
// LFSR's traversal, which key bit feeds the ciphertext feedback, and the
// one-bit tap offset decrypt's feedback taps carry relative to encrypt's.
type Direction struct {
	Name string

	ShiftKey    func(k *bitreg.Register, b byte)
	ShiftCrypto func(c *bitreg.Register, b byte)
	StepLFSR    func(l *LFSR)

	KeyBitSource KeyBitSource
	TapOffset    int
	KeyWords     int
}

// Encrypt is the forward direction: shift-right-insert-MSB on both
// registers, LFSR stepping forward, ciphertext feedback consuming bit 0 of
// K before it shifts.
var Encrypt = Direction{
	Name:         "encrypt",
	ShiftKey:     func(k *bitreg.Register, b byte) { k.ShiftRightInsertMSB(b) },
	ShiftCrypto:  func(c *bitreg.Register, b byte) { c.ShiftRightInsertMSB(b) },
	StepLFSR:     func(l *LFSR) { l.StepForward() },
	KeyBitSource: KeyBitPreShift,
	TapOffset:    0,
	KeyWords:     4,
}

// Decrypt is the reverse direction: insert-bit-at-LSB on both registers,
// LFSR stepping backward, ciphertext feedback consuming the just-computed
// next key bit, all taps shifted by one position relative to Encrypt.
var Decrypt = Direction{
	Name:         "decrypt",
	ShiftKey:     func(k *bitreg.Register, b byte) { k.InsertBitAtLSB(b) },
	ShiftCrypto:  func(c *bitreg.Register, b byte) { c.InsertBitAtLSB(b) },
	StepLFSR:     func(l *LFSR) { l.StepBackward() },
	KeyBitSource: KeyBitJustComputed,
	TapOffset:    1,
	KeyWords:     4,
}
