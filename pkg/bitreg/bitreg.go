// Package bitreg implements a fixed-width bit vector with the indexing and
// shift primitives a bit-serial hardware register exposes: per-bit
// get/set, byte-granular load/store, circular rotate, and the two
// end-insertion shifts a serial datapath uses to stream a feedback bit in.
//
// Bit 0 is the least-significant (rightmost) bit; bit Width-1 is the
// most-significant (leftmost) bit. Byte 0 is the most-significant byte.
package bitreg

import (
	"fmt"
	"math/bits"
	"strings"
)

// Register is a fixed-length sequence of 0/1 bits. The zero value is not
// usable; construct one with New. Width never changes after construction.
type Register struct {
	width int
	words []uint64 // words[0] holds bits [0:64), little-endian word order
}

// New allocates a zeroed register of the given bit width. It panics if
// width is not positive: a zero- or negative-width register is a
// programmer error, not a runtime condition to recover from.
func New(width int) *Register {
	if width <= 0 {
		panic(fmt.Sprintf("bitreg: invalid width %d", width))
	}
	return &Register{
		width: width,
		words: make([]uint64, (width+63)/64),
	}
}

// Width returns the register's fixed bit width.
func (r *Register) Width() int { return r.width }

// MSBIndex returns the index of the most significant bit, Width-1.
func (r *Register) MSBIndex() int { return r.width - 1 }

func (r *Register) checkIndex(i int) {
	if i < 0 || i >= r.width {
		panic(fmt.Sprintf("bitreg: index %d out of range [0,%d)", i, r.width))
	}
}

// Bit returns the value (0 or 1) of bit i. i out of range is a programmer
// error and panics.
func (r *Register) Bit(i int) byte {
	r.checkIndex(i)
	return byte((r.words[i/64] >> uint(i%64)) & 1)
}

// SetBit sets bit i to b&1. i out of range is a programmer error and
// panics.
func (r *Register) SetBit(i int, b byte) {
	r.checkIndex(i)
	mask := uint64(1) << uint(i%64)
	if b&1 != 0 {
		r.words[i/64] |= mask
	} else {
		r.words[i/64] &^= mask
	}
}

// nbytes is the number of bytes a Width-bit register serializes to.
func (r *Register) nbytes() int { return (r.width + 7) / 8 }

// SetByte writes byte j (byte 0 is the most-significant byte) from b.
// j out of range is a programmer error and panics.
func (r *Register) SetByte(j int, b byte) {
	n := r.nbytes()
	if j < 0 || j >= n {
		panic(fmt.Sprintf("bitreg: byte index %d out of range [0,%d)", j, n))
	}
	// byte j covers bits [hi-7 .. hi] where hi counts down from the MSB end.
	hi := r.width - 1 - j*8
	for k := 0; k < 8; k++ {
		idx := hi - k
		if idx < 0 {
			break
		}
		r.SetBit(idx, (b>>uint(7-k))&1)
	}
}

// Byte reads byte j (byte 0 is the most-significant byte).
func (r *Register) Byte(j int) byte {
	n := r.nbytes()
	if j < 0 || j >= n {
		panic(fmt.Sprintf("bitreg: byte index %d out of range [0,%d)", j, n))
	}
	hi := r.width - 1 - j*8
	var b byte
	for k := 0; k < 8; k++ {
		idx := hi - k
		if idx < 0 {
			continue
		}
		b |= r.Bit(idx) << uint(7-k)
	}
	return b
}

// LoadBytes fills the register from a big-endian (MSB-byte-first) byte
// slice. If buf is shorter than the register's byte length, the remaining
// low-order bytes are left zero — the right-zero-padding rule spec'd for
// key/block loading.
func (r *Register) LoadBytes(buf []byte) {
	n := r.nbytes()
	for j := 0; j < n; j++ {
		if j < len(buf) {
			r.SetByte(j, buf[j])
		} else {
			r.SetByte(j, 0)
		}
	}
}

// CopyBytesOut writes the register's big-endian byte serialization into
// buf, which must be at least as long as the register's byte length.
func (r *Register) CopyBytesOut(buf []byte) {
	n := r.nbytes()
	for j := 0; j < n; j++ {
		buf[j] = r.Byte(j)
	}
}

// RotateLeft performs a circular left rotate by n bits (n may exceed
// Width; it is taken mod Width).
func (r *Register) RotateLeft(n int) {
	w := r.width
	n = ((n % w) + w) % w
	if n == 0 {
		return
	}
	old := make([]byte, w)
	for i := 0; i < w; i++ {
		old[i] = r.Bit(i)
	}
	for i := 0; i < w; i++ {
		r.SetBit((i+n)%w, old[i])
	}
}

// RotateRight performs a circular right rotate by n bits.
func (r *Register) RotateRight(n int) {
	r.RotateLeft(-n)
}

// ShiftRightInsertMSB shifts every bit one position toward the LSB,
// dropping the old bit 0, and places b at bit Width-1 (the MSB).
func (r *Register) ShiftRightInsertMSB(b byte) {
	for i := 0; i < r.width-1; i++ {
		r.SetBit(i, r.Bit(i+1))
	}
	r.SetBit(r.width-1, b)
}

// InsertBitAtLSB shifts every bit one position toward the MSB, dropping
// the old bit Width-1, and places b at bit 0 (the LSB).
func (r *Register) InsertBitAtLSB(b byte) {
	for i := r.width - 1; i > 0; i-- {
		r.SetBit(i, r.Bit(i-1))
	}
	r.SetBit(0, b)
}

// HexString renders the register as a hex string, most-significant
// nibble first, optionally grouped into chunks of group nibbles separated
// by a single space (group<=0 means no grouping).
func (r *Register) HexString(group int) string {
	nibbles := (r.width + 3) / 4
	var sb strings.Builder
	for i := 0; i < nibbles; i++ {
		hi := r.width - 1 - i*4
		var nib byte
		for k := 0; k < 4; k++ {
			idx := hi - k
			if idx >= 0 {
				nib |= r.Bit(idx) << uint(3-k)
			}
		}
		fmt.Fprintf(&sb, "%x", nib)
		if group > 0 && (i+1)%group == 0 && i+1 != nibbles {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// Dump renders the register as a binary string grouped every `group` bits
// (group<=0 means no grouping), most-significant bit first.
func (r *Register) Dump(group int) string {
	var sb strings.Builder
	for i := r.width - 1; i >= 0; i-- {
		sb.WriteByte('0' + r.Bit(i))
		pos := r.width - i
		if group > 0 && pos%group == 0 && i != 0 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// PopCount returns the number of set bits, occasionally useful for parity
// checks on grouped fields.
func (r *Register) PopCount() int {
	n := 0
	for _, w := range r.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Clone returns an independent copy of r.
func (r *Register) Clone() *Register {
	c := &Register{width: r.width, words: make([]uint64, len(r.words))}
	copy(c.words, r.words)
	return c
}
