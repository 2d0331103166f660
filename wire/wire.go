package wire

import (
	"errors"
	"fmt"
	"slices"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrMalformedVarint is returned when a varint exceeds 10 bytes
	// without terminating.
	ErrMalformedVarint = errors.New("wire: varint exceeds 10 bytes")

	// ErrTruncatedInput is returned when the input ends inside a varint
	// or inside declared length-delimited content.
	ErrTruncatedInput = errors.New("wire: truncated input")

	// ErrFieldNumberOutOfRange is returned for field numbers outside
	// [1, 1<<29).
	ErrFieldNumberOutOfRange = errors.New("wire: field number out of range")
)

// Map is a field-tagged value map keyed by field number.
type Map map[int32]Value

// kind discriminates the value variants carried by a Map entry.
type kind int

const (
	kindNone kind = iota
	kindInt
	kindString
	kindBytes
	kindMap
)

// Value is a tagged variant holding an integer, UTF-8 text, raw bytes,
// or a nested map.
type Value struct {
	kind kind
	num  int64
	str  string
	raw  []byte
	sub  Map
}

// Int returns a varint-encoded integer value.
func Int(v int64) Value { return Value{kind: kindInt, num: v} }

// String returns a length-delimited UTF-8 text value.
func String(s string) Value { return Value{kind: kindString, str: s} }

// Bytes returns a length-delimited raw byte value.
func Bytes(b []byte) Value { return Value{kind: kindBytes, raw: b} }

// Nested returns a length-delimited nested map value.
func Nested(m Map) Value { return Value{kind: kindMap, sub: m} }

// Int returns the integer carried by the value, or zero for other kinds.
func (v Value) Int() int64 { return v.num }

// Bytes returns the byte content of a text, bytes, or decoded
// length-delimited value.
func (v Value) Bytes() []byte {
	if v.kind == kindString {
		return []byte(v.str)
	}

	return v.raw
}

// String returns the value's text content.
func (v Value) String() string {
	if v.kind == kindString {
		return v.str
	}

	return string(v.raw)
}

// DecodeMap re-interprets a length-delimited value as a nested map.
func (v Value) DecodeMap() (Map, error) {
	if v.kind == kindMap {
		return v.sub, nil
	}

	return Decode(v.raw)
}

// Encode serializes the map in canonical form: fields in ascending
// field-number order, integers as unsigned varints, everything else
// length-delimited.
func (m Map) Encode() ([]byte, error) {
	nums := make([]int32, 0, len(m))
	for num := range m {
		nums = append(nums, num)
	}
	slices.Sort(nums)

	var buf []byte
	for _, num := range nums {
		if num < int32(protowire.MinValidNumber) || num > int32(protowire.MaxValidNumber) {
			return nil, fmt.Errorf("%w: %d", ErrFieldNumberOutOfRange, num)
		}

		v := m[num]
		switch v.kind {
		case kindInt:
			buf = protowire.AppendTag(buf, protowire.Number(num), protowire.VarintType)
			buf = protowire.AppendVarint(buf, uint64(v.num))
		case kindString:
			buf = protowire.AppendTag(buf, protowire.Number(num), protowire.BytesType)
			buf = protowire.AppendString(buf, v.str)
		case kindBytes:
			buf = protowire.AppendTag(buf, protowire.Number(num), protowire.BytesType)
			buf = protowire.AppendBytes(buf, v.raw)
		case kindMap:
			sub, err := v.sub.Encode()
			if err != nil {
				return nil, err
			}

			buf = protowire.AppendTag(buf, protowire.Number(num), protowire.BytesType)
			buf = protowire.AppendBytes(buf, sub)
		default:
			return nil, fmt.Errorf("wire: field %d has no value", num)
		}
	}

	return buf, nil
}

// Decode parses encoded bytes back into a Map. Varint fields decode as
// Int values, length-delimited fields as Bytes values. A field number
// appearing twice keeps the last value.
func Decode(data []byte) (Map, error) {
	m := Map{}

	for len(data) > 0 {
		tag, n := protowire.ConsumeVarint(data)
		if n < 0 {
			return nil, varintError(data)
		}
		data = data[n:]

		num := int32(tag >> 3)
		typ := protowire.Type(tag & 7)
		if num < int32(protowire.MinValidNumber) || uint64(tag>>3) > uint64(protowire.MaxValidNumber) {
			return nil, fmt.Errorf("%w: %d", ErrFieldNumberOutOfRange, tag>>3)
		}

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, varintError(data)
			}
			data = data[n:]

			m[num] = Int(int64(v))
		case protowire.BytesType:
			size, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, varintError(data)
			}
			data = data[n:]

			if size > uint64(len(data)) {
				return nil, fmt.Errorf("%w: field %d declares %d bytes, %d remain",
					ErrTruncatedInput, num, size, len(data))
			}

			m[num] = Bytes(slices.Clone(data[:size]))
			data = data[size:]
		default:
			return nil, fmt.Errorf("wire: unsupported wire type %d for field %d", typ, num)
		}
	}

	return m, nil
}

// varintError classifies a failed varint read: a varint that does not
// terminate within 10 bytes (or terminates there but overflows 64 bits)
// is malformed, anything shorter means the input ended inside it.
func varintError(data []byte) error {
	limit := min(len(data), 10)
	for i := 0; i < limit; i++ {
		if data[i] < 0x80 {
			return ErrMalformedVarint
		}
	}

	if len(data) >= 10 {
		return ErrMalformedVarint
	}

	return ErrTruncatedInput
}
