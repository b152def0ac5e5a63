//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package binary

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/nsondb/nson-go-sdk/nsondb/nsonerr"
	"github.com/nsondb/nson-go-sdk/nsondb/types"
)

// maxNestingDepth bounds the collection nesting a decode will follow, so
// that a malformed buffer cannot exhaust the goroutine stack.
const maxNestingDepth = 1024

// maxNumElements bounds the declared entry count of a single collection.
// This mirrors proto.MaxNumElements without importing the parent package.
const maxNumElements = 1000000000

// Reader is a binary protocol reader that decodes byte sequences into
// values according to the protocol established between client and server.
//
// A Reader borrows an immutable view of a byte buffer it does not own and
// advances a cursor over it one value at a time. It never mutates the
// buffer and never reads past its end: a field that declares more bytes
// than remain fails with a BadProtocolMessage error and leaves no
// partially-built value behind.
//
// Multi-byte fixed-width fields use big endian byte order.
type Reader struct {
	buf   []byte
	off   int
	depth int
}

// NewReader creates a new binary protocol Reader positioned at the start
// of buf. The Reader borrows buf; the caller must not mutate it while the
// Reader is in use.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Next reports whether another value is available at the cursor. It is
// the transition between the reader's two states: "at a value" and
// "exhausted".
func (r *Reader) Next() bool {
	return r.off < len(r.buf)
}

// Offset returns the cursor position from the start of the buffer.
func (r *Reader) Offset() int {
	return r.off
}

// Skip advances the cursor n bytes without interpreting them.
func (r *Reader) Skip(n int) error {
	if n < 0 || n > len(r.buf)-r.off {
		return nsonerr.NewBadProtocol("binary.Reader: cannot skip %d bytes at offset %d", n, r.off)
	}
	r.off += n
	return nil
}

// ReadByte reads and returns the next byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, nsonerr.NewBadProtocol("binary.Reader: unexpected end of buffer at offset %d", r.off)
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

// ReadBoolean reads 1 byte and decodes it as a bool value. A zero byte is
// decoded as false and any non-zero byte is decoded as true.
func (r *Reader) ReadBoolean() (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

// ReadInt reads a fixed 4-byte big endian integer.
func (r *Reader) ReadInt() (int, error) {
	b, err := r.view(4)
	if err != nil {
		return 0, err
	}
	return int(int32(binary.BigEndian.Uint32(b))), nil
}

// ReadPackedInt reads a variable length of bytes that is an encoding of a
// packed int value.
func (r *Reader) ReadPackedInt() (int, error) {
	v, n, err := readPackedInt32(r.buf, r.off)
	if err != nil {
		return 0, err
	}
	r.off += n
	return int(v), nil
}

// ReadPackedLong reads a variable length of bytes that is an encoding of
// a packed long value.
func (r *Reader) ReadPackedLong() (int64, error) {
	v, n, err := readPackedInt64(r.buf, r.off)
	if err != nil {
		return 0, err
	}
	r.off += n
	return v, nil
}

// ReadDouble reads a fixed 8-byte big endian IEEE-754 bit pattern and
// returns it as a float64 value.
func (r *Reader) ReadDouble() (float64, error) {
	b, err := r.view(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// ReadString reads a packed byte-length prefix followed by that many
// UTF-8 bytes. Invalid UTF-8 fails the decode.
func (r *Reader) ReadString() (string, error) {
	byteLen, err := r.ReadPackedInt()
	if err != nil {
		return "", err
	}
	if byteLen < 0 {
		return "", nsonerr.NewBadProtocol("binary.Reader: invalid string length %d", byteLen)
	}

	b, err := r.view(byteLen)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", nsonerr.NewBadProtocol("binary.Reader: string is not valid UTF-8")
	}
	return string(b), nil
}

// ReadByteArray reads a packed byte-length prefix followed by that many
// raw bytes. The returned slice is a fresh copy, never a view of the
// reader's buffer.
func (r *Reader) ReadByteArray() ([]byte, error) {
	byteLen, err := r.ReadPackedInt()
	if err != nil {
		return nil, err
	}
	if byteLen < 0 {
		return nil, nsonerr.NewBadProtocol("binary.Reader: invalid length of byte array: %d", byteLen)
	}

	b, err := r.view(byteLen)
	if err != nil {
		return nil, err
	}
	out := make([]byte, byteLen)
	copy(out, b)
	return out, nil
}

// ReadFieldValue consumes the type tag at the cursor and recursively
// decodes the tagged value, advancing the cursor past the full value
// including nested content.
func (r *Reader) ReadFieldValue() (types.FieldValue, error) {
	t, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch types.DbType(t) {
	case types.Array:
		return r.readArray()

	case types.Binary:
		return r.ReadByteArray()

	case types.Boolean:
		return r.ReadBoolean()

	case types.Double:
		return r.ReadDouble()

	case types.Integer:
		return r.ReadPackedInt()

	case types.Long:
		return r.ReadPackedLong()

	case types.Map:
		return r.readMap()

	case types.String:
		return r.ReadString()

	case types.Timestamp:
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := types.ParseTimestamp(s)
		if err != nil {
			return nil, nsonerr.NewWithCause(nsonerr.BadProtocolMessage, err, "binary.Reader: invalid Timestamp value %q", s)
		}
		return v, nil

	case types.Number:
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := types.ParseNumber(s)
		if err != nil {
			return nil, nsonerr.NewWithCause(nsonerr.BadProtocolMessage, err, "binary.Reader: invalid Number value %q", s)
		}
		return v, nil

	case types.JSONNull:
		return types.JSONNullValueInstance, nil

	case types.Null:
		return types.NullValueInstance, nil

	case types.Empty:
		return types.EmptyValueInstance, nil

	default:
		return nil, nsonerr.NewBadProtocol("binary.Reader: unsupported type tag %d at offset %d", t, r.off-1)
	}
}

// SkipValue consumes the type tag at the cursor and advances the cursor
// past the full value without building it. For maps and arrays the
// declared total byte length is trusted, so nested entries are never
// interpreted; the cursor lands at exactly the position an entry-by-entry
// decode would reach.
func (r *Reader) SkipValue() error {
	t, err := r.ReadByte()
	if err != nil {
		return err
	}

	switch types.DbType(t) {
	case types.Array, types.Map:
		length, err := r.readFrameLength()
		if err != nil {
			return err
		}
		r.off += length
		return nil

	case types.Binary, types.String, types.Timestamp, types.Number:
		byteLen, err := r.ReadPackedInt()
		if err != nil {
			return err
		}
		if byteLen < 0 {
			return nsonerr.NewBadProtocol("binary.Reader: invalid length %d", byteLen)
		}
		return r.Skip(byteLen)

	case types.Boolean:
		_, err = r.ReadByte()
		return err

	case types.Double:
		return r.Skip(8)

	case types.Integer:
		_, err = r.ReadPackedInt()
		return err

	case types.Long:
		_, err = r.ReadPackedLong()
		return err

	case types.JSONNull, types.Null, types.Empty:
		return nil

	default:
		return nsonerr.NewBadProtocol("binary.Reader: unsupported type tag %d at offset %d", t, r.off-1)
	}
}

// readFrameLength reads and validates the 4-byte total length of a
// collection frame against the bytes remaining in the buffer.
func (r *Reader) readFrameLength() (int, error) {
	length, err := r.ReadInt()
	if err != nil {
		return 0, err
	}
	if length < 0 || length > len(r.buf)-r.off {
		return 0, nsonerr.NewBadProtocol("binary.Reader: collection length %d exceeds remaining %d bytes",
			length, len(r.buf)-r.off)
	}
	return length, nil
}

// readMap decodes the framed encoding of a map into an ordered MapValue,
// preserving the entry order the producer wrote. The bytes consumed by
// the entries must agree with the declared total length.
func (r *Reader) readMap() (*types.MapValue, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()

	declared, err := r.readFrameLength()
	if err != nil {
		return nil, err
	}
	start := r.off

	size, err := r.ReadPackedInt()
	if err != nil {
		return nil, err
	}
	if size < 0 || size > maxNumElements {
		return nil, nsonerr.NewBadProtocol("binary.Reader: invalid number of map entries: %d", size)
	}

	value := types.NewOrderedMapValue()
	for i := 0; i < size; i++ {
		k, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := r.ReadFieldValue()
		if err != nil {
			return nil, err
		}
		value.Put(k, v)
	}

	if consumed := r.off - start; consumed != declared {
		return nil, nsonerr.NewBadProtocol("binary.Reader: map declares %d bytes, entries consumed %d", declared, consumed)
	}
	return value, nil
}

// readArray decodes the framed encoding of an array. The bytes consumed
// by the elements must agree with the declared total length.
func (r *Reader) readArray() ([]types.FieldValue, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()

	declared, err := r.readFrameLength()
	if err != nil {
		return nil, err
	}
	start := r.off

	size, err := r.ReadPackedInt()
	if err != nil {
		return nil, err
	}
	if size < 0 || size > maxNumElements {
		return nil, nsonerr.NewBadProtocol("binary.Reader: invalid number of array elements: %d", size)
	}

	value := make([]types.FieldValue, 0, minInt(size, 1024))
	for i := 0; i < size; i++ {
		v, err := r.ReadFieldValue()
		if err != nil {
			return nil, err
		}
		value = append(value, v)
	}

	if consumed := r.off - start; consumed != declared {
		return nil, nsonerr.NewBadProtocol("binary.Reader: array declares %d bytes, elements consumed %d", declared, consumed)
	}
	return value, nil
}

func (r *Reader) enter() error {
	if r.depth >= maxNestingDepth {
		return nsonerr.NewBadProtocol("binary.Reader: collection nesting exceeds %d levels", maxNestingDepth)
	}
	r.depth++
	return nil
}

func (r *Reader) leave() {
	r.depth--
}

// view returns the next byteLen bytes without copying and advances the
// cursor past them.
func (r *Reader) view(byteLen int) ([]byte, error) {
	if byteLen < 0 || byteLen > len(r.buf)-r.off {
		return nil, nsonerr.NewBadProtocol("binary.Reader: need %d bytes at offset %d, have %d",
			byteLen, r.off, len(r.buf)-r.off)
	}
	b := r.buf[r.off : r.off+byteLen]
	r.off += byteLen
	return b, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
