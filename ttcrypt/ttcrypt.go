package ttcrypt

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/vitalvas/ttsign/simon"
)

var (
	// ErrUnsupportedPayloadType is returned when a payload is neither
	// text, bytes, a field map, nor a JSON object.
	ErrUnsupportedPayloadType = errors.New("ttcrypt: unsupported payload type")

	// ErrInvalidCiphertextLength is returned when decrypt input is shorter
	// than the magic/IV prefix or not block aligned.
	ErrInvalidCiphertextLength = errors.New("ttcrypt: invalid ciphertext length")

	// ErrBadMagic is returned when decrypt input does not start with the
	// expected magic byte.
	ErrBadMagic = errors.New("ttcrypt: unrecognized magic byte")

	// ErrInvalidPadding is returned when decrypted content carries
	// malformed block padding.
	ErrInvalidPadding = errors.New("ttcrypt: invalid padding")
)

// magic is the fixed version byte prefixing every sealed payload.
const magic = 0x74

// defaultKey seals payloads when no key is supplied via WithKey.
var defaultKey = []byte{
	0x6e, 0x94, 0xc8, 0xc7, 0x06, 0x06, 0x33, 0x21,
	0xcc, 0x2c, 0x11, 0x10, 0x8f, 0xc8, 0xf4, 0xf7,
}

// Cipher seals and opens payloads. It is safe for concurrent use.
type Cipher struct {
	key  []byte
	rand io.Reader
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithKey overrides the fixed default key with a context-derived one.
// The key must be exactly simon.KeySize bytes; NewCipher reports the
// violation on first use.
func WithKey(key []byte) Option {
	return func(c *Cipher) { c.key = key }
}

// WithRand overrides the IV source. Intended for tests; production code
// should keep the default crypto/rand source so IVs never repeat.
func WithRand(r io.Reader) Option {
	return func(c *Cipher) { c.rand = r }
}

// New returns a Cipher with the fixed default key and a crypto/rand IV
// source, adjusted by the given options.
func New(opts ...Option) *Cipher {
	c := &Cipher{key: defaultKey, rand: rand.Reader}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Encrypt canonicalizes the payload and seals it: a magic byte, a fresh
// 8-byte IV, then the CBC ciphertext of the padded canonical bytes.
func (c *Cipher) Encrypt(p Payload) ([]byte, error) {
	plain, err := p.Canonical()
	if err != nil {
		return nil, err
	}

	blk, err := simon.NewCipher(c.key)
	if err != nil {
		return nil, err
	}

	padded := pad(plain, simon.BlockSize)
	out := make([]byte, 1+simon.BlockSize+len(padded))
	out[0] = magic

	iv := out[1 : 1+simon.BlockSize]
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return nil, fmt.Errorf("ttcrypt: reading iv: %w", err)
	}

	cipher.NewCBCEncrypter(blk, iv).CryptBlocks(out[1+simon.BlockSize:], padded)

	return out, nil
}

// Decrypt strips the magic byte and IV, decrypts, and returns the
// canonical plaintext bytes.
func (c *Cipher) Decrypt(data []byte) ([]byte, error) {
	if len(data) < 1+2*simon.BlockSize {
		return nil, ErrInvalidCiphertextLength
	}

	if data[0] != magic {
		return nil, fmt.Errorf("%w: 0x%02x", ErrBadMagic, data[0])
	}

	iv := data[1 : 1+simon.BlockSize]
	ct := data[1+simon.BlockSize:]
	if len(ct)%simon.BlockSize != 0 {
		return nil, ErrInvalidCiphertextLength
	}

	blk, err := simon.NewCipher(c.key)
	if err != nil {
		return nil, err
	}

	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(blk, iv).CryptBlocks(plain, ct)

	return unpad(plain, simon.BlockSize)
}

// pad appends PKCS#7 padding up to the next block boundary. Input that is
// already aligned gains a full padding block.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}

	return padded
}

// unpad strips and validates PKCS#7 padding.
func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrInvalidPadding
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrInvalidPadding
		}
	}

	return data[:len(data)-n], nil
}
