package ttcrypt

import (
	"encoding/json"
	"fmt"

	"github.com/vitalvas/ttsign/wire"
)

// payloadKind discriminates the payload variants.
type payloadKind int

const (
	payloadNone payloadKind = iota
	payloadText
	payloadRaw
	payloadFields
	payloadObject
)

// Payload is a tagged request-body variant with a single canonical byte
// form. The zero value carries nothing and is rejected by Canonical.
type Payload struct {
	kind   payloadKind
	text   string
	raw    []byte
	fields wire.Map
	object map[string]any
}

// Text wraps a UTF-8 string payload.
func Text(s string) Payload { return Payload{kind: payloadText, text: s} }

// Raw wraps a raw byte payload.
func Raw(b []byte) Payload { return Payload{kind: payloadRaw, raw: b} }

// Fields wraps a field-tagged map payload, canonicalized by wire encoding.
func Fields(m wire.Map) Payload { return Payload{kind: payloadFields, fields: m} }

// Object wraps a JSON object payload, canonicalized as compact JSON with
// sorted keys.
func Object(m map[string]any) Payload { return Payload{kind: payloadObject, object: m} }

// IsZero reports whether the payload carries no value.
func (p Payload) IsZero() bool { return p.kind == payloadNone }

// Canonical returns the deterministic byte form of the payload: UTF-8
// bytes for text, the bytes themselves for raw input, the wire encoding
// for field maps, and compact sorted-key JSON for objects.
func (p Payload) Canonical() ([]byte, error) {
	switch p.kind {
	case payloadText:
		return []byte(p.text), nil
	case payloadRaw:
		return p.raw, nil
	case payloadFields:
		return p.fields.Encode()
	case payloadObject:
		b, err := json.Marshal(p.object)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedPayloadType, err)
		}

		return b, nil
	default:
		return nil, ErrUnsupportedPayloadType
	}
}
