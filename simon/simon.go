package simon

import (
	"encoding/binary"
	"errors"
	"math/bits"
)

const (
	// BlockSize is the cipher block size in bytes.
	BlockSize = 8

	// KeySize is the cipher key size in bytes.
	KeySize = 16

	rounds = 44
)

// zSequence is the z3 constant sequence used by the Simon64/128 key
// schedule, one bit per round beyond the initial four.
const zSequence = "11011011101011000110010111100000010010001010011100110100001111"

var (
	// ErrInvalidKeyLength is returned when a key is not exactly 16 bytes.
	ErrInvalidKeyLength = errors.New("simon: key must be exactly 16 bytes")

	// ErrInvalidBlockLength is returned when a block is not exactly 8 bytes.
	ErrInvalidBlockLength = errors.New("simon: block must be exactly 8 bytes")
)

// Cipher is a Simon64/128 instance with an expanded key schedule.
// It is safe for concurrent use after creation.
type Cipher struct {
	roundKeys [rounds]uint32
}

// NewCipher creates a Simon64/128 cipher with the given 16-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}

	c := &Cipher{}
	for i := 0; i < 4; i++ {
		c.roundKeys[i] = binary.LittleEndian.Uint32(key[i*4 : (i+1)*4])
	}

	for i := 4; i < rounds; i++ {
		tmp := bits.RotateLeft32(c.roundKeys[i-1], -3) ^ c.roundKeys[i-3]
		tmp ^= bits.RotateLeft32(tmp, -1)

		z := uint32(0)
		if zSequence[(i-4)%len(zSequence)] == '1' {
			z = 1
		}

		c.roundKeys[i] = ^c.roundKeys[i-4] ^ tmp ^ z ^ 3
	}

	return c, nil
}

// BlockSize returns the cipher block size in bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts an 8-byte block from src into dst, panicking on short
// input as crypto/cipher.Block implementations do. Use EncryptBlock for
// an error-returning variant.
func (c *Cipher) Encrypt(dst, src []byte) {
	if err := c.EncryptBlock(dst, src); err != nil {
		panic(err)
	}
}

// Decrypt decrypts an 8-byte block from src into dst, panicking on short
// input as crypto/cipher.Block implementations do. Use DecryptBlock for
// an error-returning variant.
func (c *Cipher) Decrypt(dst, src []byte) {
	if err := c.DecryptBlock(dst, src); err != nil {
		panic(err)
	}
}

// EncryptBlock encrypts an 8-byte block from src into dst.
func (c *Cipher) EncryptBlock(dst, src []byte) error {
	if len(src) != BlockSize || len(dst) < BlockSize {
		return ErrInvalidBlockLength
	}

	x := binary.LittleEndian.Uint32(src[0:4])
	y := binary.LittleEndian.Uint32(src[4:8])

	for i := 0; i < rounds; i++ {
		x, y = y^round(x)^c.roundKeys[i], x
	}

	binary.LittleEndian.PutUint32(dst[0:4], x)
	binary.LittleEndian.PutUint32(dst[4:8], y)

	return nil
}

// DecryptBlock decrypts an 8-byte block from src into dst.
func (c *Cipher) DecryptBlock(dst, src []byte) error {
	if len(src) != BlockSize || len(dst) < BlockSize {
		return ErrInvalidBlockLength
	}

	x := binary.LittleEndian.Uint32(src[0:4])
	y := binary.LittleEndian.Uint32(src[4:8])

	for i := rounds - 1; i >= 0; i-- {
		x, y = y, x^round(y)^c.roundKeys[i]
	}

	binary.LittleEndian.PutUint32(dst[0:4], x)
	binary.LittleEndian.PutUint32(dst[4:8], y)

	return nil
}

// round is the Simon round function f(x) = (ROL1(x) & ROL8(x)) ^ ROL2(x).
func round(x uint32) uint32 {
	return (bits.RotateLeft32(x, 1) & bits.RotateLeft32(x, 8)) ^ bits.RotateLeft32(x, 2)
}
