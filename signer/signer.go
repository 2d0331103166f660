package signer

import (
	"crypto/rand"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vitalvas/ttsign/simon"
	"github.com/vitalvas/ttsign/sm3"
	"github.com/vitalvas/ttsign/ttcrypt"
)

// Config configures one GenerateHeaders call. The zero value signs with
// the default device identity, the current time, and fresh randomness.
type Config struct {
	// Device identifies the application install. A zero Device uses the
	// upstream default identity; individual zero fields fall back the
	// same way.
	Device Device

	// Cookie is passed through into the integrity signature and the
	// final bundle, possibly empty.
	Cookie string

	// Timestamp is the unix time in seconds. When zero, the current
	// time is used. The same resolved value feeds every signer.
	Timestamp int64

	// TraceID overrides the generated x-tt-trace-id. Intended for tests.
	TraceID string

	// IV overrides the generated 8-byte cipher IV. Intended for tests;
	// production code must let each call draw a fresh IV.
	IV []byte

	// Rand overrides the randomness source for trace id and IV
	// generation. When nil, trace ids come from UUIDv4 generation and
	// IVs from crypto/rand.
	Rand io.Reader
}

// Bundle holds the eight signature headers produced for one request.
// It is complete by construction and never mutated after being returned.
type Bundle struct {
	ReqTicket string // x-ss-req-ticket: decimal milliseconds
	TraceID   string // x-tt-trace-id: templated hex string
	Stub      string // x-ss-stub: hex body digest
	Ladon     string // x-ladon: license token
	Gorgon    string // x-gorgon: hex integrity signature
	Khronos   string // x-khronos: decimal seconds
	Argus     string // x-argus: base64 primary signature
	Cookie    string // cookie: pass-through, possibly empty
}

// Headers returns the bundle as the eight named header fields.
func (b *Bundle) Headers() map[string]string {
	return map[string]string{
		"x-ss-req-ticket": b.ReqTicket,
		"x-tt-trace-id":   b.TraceID,
		"x-ss-stub":       b.Stub,
		"x-ladon":         b.Ladon,
		"x-gorgon":        b.Gorgon,
		"x-khronos":       b.Khronos,
		"x-argus":         b.Argus,
		"cookie":          b.Cookie,
	}
}

// Apply sets all eight header fields on an outgoing header map.
func (b *Bundle) Apply(h http.Header) {
	for name, value := range b.Headers() {
		h.Set(name, value)
	}
}

// GenerateHeaders signs one request: params is the canonical query
// string, body the optional request payload (the zero Payload means
// none). The body is canonicalized once and that byte form feeds every
// signer that covers it.
func GenerateHeaders(params string, body ttcrypt.Payload, cfg Config) (*Bundle, error) {
	dev := cfg.Device.withDefaults()

	values, err := url.ParseQuery(params)
	if err != nil {
		return nil, fmt.Errorf("signer: parsing params: %w", err)
	}

	// Resolve the instant once: the ticket is milliseconds, khronos and
	// every internal timestamp the matching seconds.
	millis := cfg.Timestamp * 1000
	if cfg.Timestamp == 0 {
		millis = time.Now().UnixMilli()
	}
	unix := millis / 1000

	var bodyBytes []byte
	hasBody := !body.IsZero()
	if hasBody {
		if bodyBytes, err = body.Canonical(); err != nil {
			return nil, err
		}
	}

	trace := cfg.TraceID
	if trace == "" {
		if trace, err = generateTraceID(cfg.Rand); err != nil {
			return nil, err
		}
	}

	iv := cfg.IV
	if iv == nil {
		iv = make([]byte, simon.BlockSize)
		source := cfg.Rand
		if source == nil {
			source = rand.Reader
		}
		if _, err := io.ReadFull(source, iv); err != nil {
			return nil, fmt.Errorf("signer: reading iv: %w", err)
		}
	}
	if len(iv) != simon.BlockSize {
		return nil, ErrInvalidIV
	}

	contentDigest := sm3.Sum(bodyBytes)

	gorgonIn := gorgonInput{
		queryDigest:   sm3.Sum([]byte(params)),
		contentDigest: contentDigest,
		contentLen:    uint32(len(bodyBytes)),
		timestamp:     uint32(unix),
	}
	if cfg.Cookie != "" {
		cookieDigest := sm3.Sum([]byte(cfg.Cookie))
		gorgonIn.cookieDigest = cookieDigest[:]
	}

	gorgon, err := gorgonSign(gorgonIn)
	if err != nil {
		return nil, err
	}

	ladon, err := ladonSign(dev.AppID, dev.LicenseID, dev.SDKVersionCode, unix)
	if err != nil {
		return nil, err
	}

	var bodyDigest []byte
	if hasBody {
		bodyDigest = contentDigest[:]
	}

	argus, err := argusSign(argusInput{
		dev:        dev,
		query:      params,
		values:     values,
		bodyDigest: bodyDigest,
		timestamp:  unix,
		iv:         iv,
	})
	if err != nil {
		return nil, err
	}

	return &Bundle{
		ReqTicket: strconv.FormatInt(millis, 10),
		TraceID:   trace,
		Stub:      Stub(bodyBytes),
		Ladon:     ladon,
		Gorgon:    gorgon,
		Khronos:   strconv.FormatInt(unix, 10),
		Argus:     argus,
		Cookie:    cfg.Cookie,
	}, nil
}
