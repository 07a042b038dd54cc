// Package endian provides the byte-order abstraction used throughout the
// codec.
//
// The wire format's multi-byte integer fields may be stored either
// little-endian or big-endian, selected at runtime by a single byte in the
// file header (see section.Header.PCByteOrder). Floating-point fields are
// always little-endian regardless of that selection. This package combines
// encoding/binary's ByteOrder and AppendByteOrder into one interface so
// callers can hold a single value and use it for every subsequent read or
// write in a file.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. binary.LittleEndian and binary.BigEndian both
// satisfy it directly.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// SelectEngine maps the header's pc_byte_order byte to the engine that
// every subsequent multi-byte integer field in the file must use.
//
// Per the format, 0 selects big-endian and any nonzero value selects
// little-endian; float32 fields are never affected by this selection.
func SelectEngine(pcByteOrder byte) EndianEngine {
	if pcByteOrder == 0 {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// IsLittleEndian reports whether the given pc_byte_order byte selects
// little-endian order.
func IsLittleEndian(pcByteOrder byte) bool {
	return pcByteOrder != 0
}
