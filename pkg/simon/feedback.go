package simon

import "github.com/oisee/simontool/pkg/bitreg"

// CryptoFeedback computes the next bit to shift into the ciphertext
// register C (spec.md §4.4.1/§4.4.2). keyBit is the key bit the direction's
// KeyBitSource selects: bit 0 of K (pre-shift) for encrypt, the
// just-computed key feedback bit for decrypt.
func CryptoFeedback(c *bitreg.Register, st StrobeSet, keyBit byte, dir Direction) byte {
	n := c.Width() / 2
	msb := c.MSBIndex()
	high := n - 1

	if dir.TapOffset == 0 {
		n1 := c.Bit(msb)
		if st.Cm0 {
			n1 = c.Bit(high)
		}
		n2 := c.Bit(msb - 1)
		if st.Cm1 {
			n2 = c.Bit(high - 1)
		}
		n8 := c.Bit(msb - 7)
		if st.Cm8 {
			n8 = c.Bit(high - 7)
		}
		return keyBit ^ c.Bit(0) ^ (n1 & n8) ^ n2
	}

	n1 := c.Bit(msb - 1)
	if st.Cm0 {
		n1 = c.Bit(high - 1)
	}
	n2 := c.Bit(msb - 2)
	if st.Cm1 {
		n2 = c.Bit(high - 2)
	}
	n8 := c.Bit(msb - 8)
	if st.Cm8 {
		n8 = c.Bit(high - 8)
	}
	x0 := c.Bit(msb)
	return keyBit ^ x0 ^ (n1 & n8) ^ n2
}

// KeyFeedback computes the next bit to shift into the key register K
// (spec.md §4.4.3/§4.4.4). Only m=4 (dir.KeyWords==4) is implemented; any
// other value is a configuration this package never constructs, so it
// panics rather than returning a *ConfigError — the same "total on in-range
// arguments" contract bitreg uses.
func KeyFeedback(k *bitreg.Register, st StrobeSet, z byte, dir Direction) byte {
	if dir.KeyWords != 4 {
		panic("simon: KeyFeedback implements only m=4 (SIMON 32/64)")
	}
	n := k.Width() / dir.KeyWords

	if dir.TapOffset == 0 {
		i3a := k.Bit(3*n + 3)
		if st.Km3 {
			i3a = k.Bit(2*n + 3)
		}
		i4a := k.Bit(3*n + 4)
		if st.Km4 {
			i4a = k.Bit(2*n + 4)
		}
		b1 := k.Bit(n + 1)
		if st.Km1 {
			b1 = k.Bit(1)
		}
		b3 := i3a ^ k.Bit(n)
		b4 := i4a ^ b1

		k0 := k.Bit(0)
		ks := (^k0) & 1

		kz := byte(1)
		if !st.Cm0 {
			kz = z ^ 1
		}
		if !st.Cm1 {
			return ks ^ b3 ^ b4 ^ kz
		}
		return ks ^ b3 ^ b4
	}

	i2a := k.Bit(3*n + 2)
	if st.Km3 {
		i2a = k.Bit(2*n + 2)
	}
	i3a := k.Bit(3*n + 3)
	if st.Km4 {
		i3a = k.Bit(2*n + 3)
	}
	b0 := k.Bit(n)
	if st.Km1 {
		b0 = k.Bit(0)
	}
	b3 := i3a ^ b0
	b2 := i2a ^ k.Bit(n-1)

	kmsb := k.Bit(k.MSBIndex())

	kz := byte(1)
	if !st.Cm0 {
		kz = z ^ 1
	}
	var raw byte
	if !st.Cm1 {
		raw = kmsb ^ b2 ^ b3 ^ kz
	} else {
		raw = kmsb ^ b2 ^ b3
	}
	return (^raw) & 1
}
