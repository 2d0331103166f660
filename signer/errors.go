package signer

import "errors"

var (
	// ErrInitialization is returned by every signer when the embedded
	// constant tables are missing entries or fail to parse. No signing
	// operates without them.
	ErrInitialization = errors.New("signer: constant tables unavailable")

	// ErrInvalidIV is returned when a caller-supplied IV is not exactly
	// one cipher block.
	ErrInvalidIV = errors.New("signer: iv must be exactly 8 bytes")
)
