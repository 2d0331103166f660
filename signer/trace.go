package signer

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// generateTraceID returns a trace id for the x-tt-trace-id header:
// version "00", a 32-hex-char trace segment, a 16-hex-char span segment
// (the leading half of the trace), and flags "01", hyphen-joined.
//
// When r is nil the trace segment comes from a fresh UUIDv4, which is
// collision-resistant across the process lifetime; tests inject a fixed
// source instead.
func generateTraceID(r io.Reader) (string, error) {
	var seg [16]byte

	if r == nil {
		seg = [16]byte(uuid.New())
	} else if _, err := io.ReadFull(r, seg[:]); err != nil {
		return "", fmt.Errorf("signer: reading trace id: %w", err)
	}

	trace := hex.EncodeToString(seg[:])

	return "00-" + trace + "-" + trace[:16] + "-01", nil
}
