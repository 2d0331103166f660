package signer

import (
	"encoding/binary"
	"encoding/hex"
	"math/bits"

	"github.com/vitalvas/ttsign/sm3"
)

const (
	// gorgonVersion is the flag byte leading the signature buffer.
	gorgonVersion = 0x04

	// gorgonSize is the signature width in bytes.
	gorgonSize = 20

	// gorgonSeed is the initial carry byte of the mixing passes.
	gorgonSeed = 0xd6
)

// gorgonInput collects everything the integrity signature covers.
type gorgonInput struct {
	queryDigest   [sm3.Size]byte
	contentDigest [sm3.Size]byte
	contentLen    uint32
	timestamp     uint32

	// cookieDigest is nil when the request carries no cookie.
	cookieDigest []byte
}

// gorgonSign builds the fixed-width buffer and runs the mixing passes,
// returning the lowercase hex integrity signature. The timestamp here is
// the same value the khronos header carries as decimal seconds.
func gorgonSign(in gorgonInput) (string, error) {
	t, err := loadTables()
	if err != nil {
		return "", err
	}

	var buf [gorgonSize]byte
	buf[0] = gorgonVersion
	copy(buf[1:5], in.queryDigest[:4])
	copy(buf[5:9], in.contentDigest[:4])
	binary.BigEndian.PutUint32(buf[9:13], in.contentLen)
	binary.BigEndian.PutUint32(buf[13:17], in.timestamp)
	if in.cookieDigest != nil {
		copy(buf[17:20], in.cookieDigest[:3])
	}

	mix(buf[:], &t.gorgon)

	return hex.EncodeToString(buf[:]), nil
}

// mix runs four chained passes over the buffer. Each byte is XORed with
// the running carry, looked up in the constant table, rotated by the pass
// number, and folded with the table entry; the carry threads every output
// byte through all later ones, and the pass boundary threads the final
// byte back to the front.
func mix(buf []byte, table *[256]uint32) {
	carry := byte(gorgonSeed)

	for pass := 0; pass < 4; pass++ {
		for i := range buf {
			v := buf[i] ^ carry
			k := table[v]
			v = bits.RotateLeft8(v, pass+1) ^ byte(k) ^ byte(k>>8) ^ byte(k>>16) ^ byte(k>>24)
			buf[i] = v
			carry = v
		}
	}
}
