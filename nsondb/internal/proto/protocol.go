//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

// Package proto defines the contracts between the NSON framing layer and
// the binary protocol reader and writer.
package proto

import (
	"github.com/nsondb/nson-go-sdk/nsondb/types"
)

const (
	// SerialVersion represents the protocol version used to serialize
	// values between client and server.
	SerialVersion int16 = 1

	// RequestSizeLimit is the maximum size in bytes of an encoded request.
	RequestSizeLimit = 2 * 1024 * 1024

	// MaxNumElements bounds the declared entry count of a single encoded
	// map or array, to prevent a malformed count from driving huge
	// allocations or an effectively infinite decode loop.
	MaxNumElements = 1000000000
)

// Writer is the binary protocol writer used to encode values. It owns a
// growable in-memory buffer that supports random-access overwrite of
// already-written bytes; the reserve-then-backpatch framing of maps and
// arrays depends on that, so Writer is deliberately not an io.Writer
// pass-through abstraction.
type Writer interface {
	Write(p []byte) (int, error)
	WriteByte(b byte) error
	WriteInt(value int) (int, error)
	WriteIntAtOffset(value int, off int) error
	InsertAtOffset(p []byte, off int) error
	WritePackedInt(value int) (int, error)
	WritePackedLong(value int64) (int, error)
	WriteDouble(value float64) (int, error)
	WriteString(value string) (int, error)
	WriteBoolean(value bool) (int, error)
	WriteByteArray(value []byte) (int, error)
	WriteMap(value *types.MapValue) (int, error)
	WriteArray(value []types.FieldValue) (int, error)
	WriteFieldValue(value types.FieldValue) (int, error)
	Size() int
	Reset()
	Bytes() []byte
}

// Reader is the binary protocol reader used to decode values. It borrows
// an immutable byte buffer and advances a cursor over it; it never mutates
// the buffer and never reads past its end.
type Reader interface {
	ReadByte() (byte, error)
	ReadBoolean() (bool, error)
	ReadInt() (int, error)
	ReadPackedInt() (int, error)
	ReadPackedLong() (int64, error)
	ReadDouble() (float64, error)
	ReadString() (string, error)
	ReadByteArray() ([]byte, error)
	ReadFieldValue() (types.FieldValue, error)
	SkipValue() error
	Skip(n int) error
	Next() bool
	Offset() int
}
