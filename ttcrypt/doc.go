// Package ttcrypt encrypts and decrypts structured payloads for
// registration-style API calls.
//
// A Payload is a tagged variant: UTF-8 text, raw bytes, a wire field map,
// or a JSON object. Each variant has exactly one canonical byte form, and
// Encrypt seals that form with the Simon block cipher in CBC mode:
//
//	c := ttcrypt.New()
//	sealed, err := c.Encrypt(ttcrypt.Object(map[string]any{
//	    "device_id": "123456",
//	    "os":        "android",
//	}))
//
// The output is a magic byte, the 8-byte IV, then the ciphertext.
// Decrypt reverses the process and returns the canonical plaintext bytes:
//
//	plain, err := c.Decrypt(sealed)
//
// The IV source is injectable for tests via WithRand; the default draws
// from crypto/rand, so IVs never repeat across calls within a process.
package ttcrypt
