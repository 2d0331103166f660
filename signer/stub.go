package signer

import (
	"encoding/hex"

	"github.com/vitalvas/ttsign/sm3"
)

// Stub returns the lowercase hex digest of the canonical body bytes for
// the x-ss-stub header. An absent body digests as the empty byte
// sequence, which is stable across runs and implementations.
func Stub(body []byte) string {
	digest := sm3.Sum(body)

	return hex.EncodeToString(digest[:])
}
