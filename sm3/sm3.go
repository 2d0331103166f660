package sm3

import (
	"encoding/binary"
	"math/bits"
)

const (
	// Size is the digest size in bytes.
	Size = 32

	// BlockSize is the compression block size in bytes.
	BlockSize = 64
)

var iv = [8]uint32{
	0x7380166f, 0x4914b2b9, 0x172442d7, 0xda8a0600,
	0xa96f30bc, 0x163138aa, 0xe38dee4d, 0xb0fb0e4e,
}

// Sum computes the SM3 digest of data.
func Sum(data []byte) [Size]byte {
	state := iv

	// Padding: 0x80, zeros, then the 64-bit big-endian bit length, so
	// the total is a multiple of the block size.
	padded := make([]byte, 0, len(data)+BlockSize+8)
	padded = append(padded, data...)
	padded = append(padded, 0x80)
	for len(padded)%BlockSize != 56 {
		padded = append(padded, 0)
	}
	padded = binary.BigEndian.AppendUint64(padded, uint64(len(data))*8)

	for i := 0; i < len(padded); i += BlockSize {
		compress(&state, padded[i:i+BlockSize])
	}

	var digest [Size]byte
	for i, word := range state {
		binary.BigEndian.PutUint32(digest[i*4:], word)
	}

	return digest
}

// compress folds one 64-byte block into the state.
func compress(state *[8]uint32, block []byte) {
	var w [68]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 68; i++ {
		w[i] = p1(w[i-16]^w[i-9]^bits.RotateLeft32(w[i-3], 15)) ^
			bits.RotateLeft32(w[i-13], 7) ^ w[i-6]
	}

	var w2 [64]uint32
	for i := 0; i < 64; i++ {
		w2[i] = w[i] ^ w[i+4]
	}

	a, b, c, d := state[0], state[1], state[2], state[3]
	e, f, g, h := state[4], state[5], state[6], state[7]

	for i := 0; i < 64; i++ {
		t := uint32(0x79cc4519)
		if i >= 16 {
			t = 0x7a879d8a
		}

		ss1 := bits.RotateLeft32(bits.RotateLeft32(a, 12)+e+bits.RotateLeft32(t, i%32), 7)
		ss2 := ss1 ^ bits.RotateLeft32(a, 12)
		tt1 := ff(a, b, c, i) + d + ss2 + w2[i]
		tt2 := gg(e, f, g, i) + h + ss1 + w[i]

		d = c
		c = bits.RotateLeft32(b, 9)
		b = a
		a = tt1
		h = g
		g = bits.RotateLeft32(f, 19)
		f = e
		e = p0(tt2)
	}

	state[0] ^= a
	state[1] ^= b
	state[2] ^= c
	state[3] ^= d
	state[4] ^= e
	state[5] ^= f
	state[6] ^= g
	state[7] ^= h
}

// ff is the boolean mixing function for the first state half; it switches
// behavior at round 16.
func ff(x, y, z uint32, round int) uint32 {
	if round < 16 {
		return x ^ y ^ z
	}

	return (x & y) | (x & z) | (y & z)
}

// gg is the boolean mixing function for the second state half; it switches
// behavior at round 16.
func gg(x, y, z uint32, round int) uint32 {
	if round < 16 {
		return x ^ y ^ z
	}

	return (x & y) | (^x & z)
}

func p0(x uint32) uint32 {
	return x ^ bits.RotateLeft32(x, 9) ^ bits.RotateLeft32(x, 17)
}

func p1(x uint32) uint32 {
	return x ^ bits.RotateLeft32(x, 15) ^ bits.RotateLeft32(x, 23)
}
