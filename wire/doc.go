// Package wire encodes and decodes field-tagged value maps using the
// protobuf wire format: each field is a varint tag (field_number<<3 |
// wire_type) followed by a varint integer (wire type 0) or a
// length-delimited byte sequence (wire type 2) carrying UTF-8 text, raw
// bytes, or a recursively encoded nested map.
//
// Encoding is canonical: fields are emitted in ascending field-number
// order, so two maps with equal content produce identical bytes.
//
// The wire format does not preserve the distinction between text, raw
// bytes, and nested maps; Decode returns length-delimited values as
// bytes, and Value.DecodeMap re-interprets them as nested maps where the
// caller knows one is present.
package wire
