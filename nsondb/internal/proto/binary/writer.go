//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package binary

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/nsondb/nson-go-sdk/nsondb/nsonerr"
	"github.com/nsondb/nson-go-sdk/nsondb/types"
)

// Writer is a binary protocol writer that encodes values as byte sequences
// according to the protocol established between client and server.
//
// A Writer exclusively owns a growable in-memory buffer. Beyond appending,
// the buffer supports overwriting and inserting at already-written offsets,
// which the length framing of maps and arrays relies on: the 4-byte total
// length of a collection is reserved before its entries are encoded and
// patched in place afterwards. A forward-only stream cannot support this,
// so Writer does not wrap an io.Writer.
//
// Writer implements the io.Writer and io.ByteWriter interfaces over its
// own buffer. A Writer never mutates the values it serializes.
type Writer struct {
	buf []byte
}

// NewWriter creates a new binary protocol Writer with an empty buffer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 256)}
}

// Write appends len(p) bytes from p to the buffer.
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// WriteByte appends the specified byte to the buffer.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// Size returns the number of bytes that have been written.
func (w *Writer) Size() int {
	return len(w.buf)
}

// Bytes returns the written bytes. The returned slice aliases the buffer
// and is only valid until the next write or Reset.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reset discards the written bytes, retaining the allocated buffer.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// WriteInt appends the specified value as a fixed 4-byte big endian
// integer. This form is used for the total byte length of maps and arrays
// so that the field can be reserved and patched in place.
func (w *Writer) WriteInt(value int) (int, error) {
	if value < math.MinInt32 || value > math.MaxInt32 {
		return 0, nsonerr.NewIllegalArgument("binary.Writer: int value %d out of 32-bit range", value)
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(int32(value)))
	w.buf = append(w.buf, b[:]...)
	return 4, nil
}

// WriteIntAtOffset overwrites the 4 bytes at offset off with the fixed
// 4-byte big endian encoding of value. The offset must address bytes that
// have already been written.
func (w *Writer) WriteIntAtOffset(value int, off int) error {
	if value < math.MinInt32 || value > math.MaxInt32 {
		return nsonerr.NewIllegalArgument("binary.Writer: int value %d out of 32-bit range", value)
	}
	if off < 0 || off+4 > len(w.buf) {
		return nsonerr.NewIllegalState("binary.Writer: offset %d is not within the written buffer", off)
	}
	binary.BigEndian.PutUint32(w.buf[off:off+4], uint32(int32(value)))
	return nil
}

// InsertAtOffset inserts p at offset off, shifting any bytes at or after
// off towards the end of the buffer. The offset must be within the written
// buffer or exactly at its end.
func (w *Writer) InsertAtOffset(p []byte, off int) error {
	if off < 0 || off > len(w.buf) {
		return nsonerr.NewIllegalState("binary.Writer: offset %d is not within the written buffer", off)
	}
	w.buf = append(w.buf, p...)
	copy(w.buf[off+len(p):], w.buf[off:])
	copy(w.buf[off:], p)
	return nil
}

// WritePackedInt appends the specified value using the packed int
// encoding.
func (w *Writer) WritePackedInt(value int) (int, error) {
	if value < math.MinInt32 || value > math.MaxInt32 {
		return 0, nsonerr.NewIllegalArgument("binary.Writer: packed int value %d out of 32-bit range", value)
	}
	n := len(w.buf)
	w.buf = appendPackedInt32(w.buf, int32(value))
	return len(w.buf) - n, nil
}

// WritePackedLong appends the specified value using the packed long
// encoding.
func (w *Writer) WritePackedLong(value int64) (int, error) {
	n := len(w.buf)
	w.buf = appendPackedInt64(w.buf, value)
	return len(w.buf) - n, nil
}

// WriteDouble appends the specified float64 value as a fixed 8-byte big
// endian IEEE-754 bit pattern. NaN, infinities, signed zeros and
// subnormals all round-trip bit-for-bit.
func (w *Writer) WriteDouble(value float64) (int, error) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(value))
	w.buf = append(w.buf, b[:]...)
	return 8, nil
}

// WriteString appends a packed byte-length prefix followed by the UTF-8
// bytes of value. A string that is not valid UTF-8 is rejected.
func (w *Writer) WriteString(value string) (n int, err error) {
	if !utf8.ValidString(value) {
		return 0, nsonerr.NewIllegalArgument("binary.Writer: string is not valid UTF-8")
	}

	if n, err = w.WritePackedInt(len(value)); err != nil {
		return
	}
	w.buf = append(w.buf, value...)
	return n + len(value), nil
}

// WriteBoolean appends the specified bool value as one byte: a true value
// is written as one and a false value is written as zero.
func (w *Writer) WriteBoolean(value bool) (int, error) {
	if value {
		return w.writeOneByte(1)
	}
	return w.writeOneByte(0)
}

// WriteByteArray appends a packed byte-length prefix followed by the raw
// bytes of value. A nil slice is written as a zero-length sequence.
func (w *Writer) WriteByteArray(value []byte) (n int, err error) {
	if n, err = w.WritePackedInt(len(value)); err != nil {
		return
	}
	w.buf = append(w.buf, value...)
	return n + len(value), nil
}

// WriteMap appends the framed encoding of the specified MapValue: a
// 4-byte total byte length covering everything that follows it, a packed
// entry count, then the entries as alternating key string and value. An
// ordered MapValue is written in insertion order.
//
// The caller is expected to have written the Map type tag.
func (w *Writer) WriteMap(value *types.MapValue) (n int, err error) {
	if value == nil {
		return 0, nsonerr.NewIllegalArgument("binary.Writer: nil MapValue")
	}

	lengthOffset := w.beginFrame()
	if _, err = w.WritePackedInt(value.Len()); err != nil {
		return
	}

	m := value.Map()
	for _, k := range value.Keys() {
		if _, err = w.WriteString(k); err != nil {
			return
		}
		if _, err = w.WriteFieldValue(m[k]); err != nil {
			return
		}
	}

	if err = w.endFrame(lengthOffset); err != nil {
		return
	}
	return len(w.buf) - lengthOffset, nil
}

// WriteArray appends the framed encoding of the specified slice of values,
// shaped like WriteMap without the key strings.
//
// The caller is expected to have written the Array type tag.
func (w *Writer) WriteArray(value []types.FieldValue) (n int, err error) {
	lengthOffset := w.beginFrame()
	if _, err = w.WritePackedInt(len(value)); err != nil {
		return
	}

	for _, v := range value {
		if _, err = w.WriteFieldValue(v); err != nil {
			return
		}
	}

	if err = w.endFrame(lengthOffset); err != nil {
		return
	}
	return len(w.buf) - lengthOffset, nil
}

// WriteRecord appends the framed encoding of the specified RecordValue as
// a Map whose entries follow the record's schema field order.
//
// The caller is expected to have written the Map type tag.
func (w *Writer) WriteRecord(value *types.RecordValue) (n int, err error) {
	if value == nil {
		return 0, nsonerr.NewIllegalArgument("binary.Writer: nil RecordValue")
	}

	lengthOffset := w.beginFrame()
	if _, err = w.WritePackedInt(value.Len()); err != nil {
		return
	}

	for _, f := range value.Fields() {
		v, ok := value.Get(f)
		if !ok {
			continue
		}
		if _, err = w.WriteString(f); err != nil {
			return
		}
		if _, err = w.WriteFieldValue(v); err != nil {
			return
		}
	}

	if err = w.endFrame(lengthOffset); err != nil {
		return
	}
	return len(w.buf) - lengthOffset, nil
}

// beginFrame reserves the 4-byte total-length field of a collection and
// returns its offset for endFrame.
func (w *Writer) beginFrame() int {
	off := len(w.buf)
	w.buf = append(w.buf, 0, 0, 0, 0)
	return off
}

// endFrame patches the length field reserved at lengthOffset with the
// number of bytes written after it.
func (w *Writer) endFrame(lengthOffset int) error {
	return w.WriteIntAtOffset(len(w.buf)-lengthOffset-4, lengthOffset)
}

// WriteFieldValue appends the tagged encoding of the specified field
// value, mapping Go types to database kinds as documented in the types
// package.
func (w *Writer) WriteFieldValue(value types.FieldValue) (int, error) {
	switch v := value.(type) {
	case string:
		return w.writeStringValue(v)

	case *string:
		if v == nil {
			return w.writeOneByte(byte(types.Null))
		}
		return w.writeStringValue(*v)

	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return w.writeIntegerValue(v)
		}
		return w.writeLongValue(int64(v))

	case uint:
		if v <= math.MaxInt32 {
			return w.writeIntegerValue(int(v))
		}
		if uint64(v) <= math.MaxInt64 {
			return w.writeLongValue(int64(v))
		}
		return w.writeNumberString(strconv.FormatUint(uint64(v), 10))

	case int8:
		return w.writeIntegerValue(int(v))

	case uint8:
		return w.writeIntegerValue(int(v))

	case int16:
		return w.writeIntegerValue(int(v))

	case uint16:
		return w.writeIntegerValue(int(v))

	case int32:
		return w.writeIntegerValue(int(v))

	case uint32:
		if v <= math.MaxInt32 {
			return w.writeIntegerValue(int(v))
		}
		return w.writeLongValue(int64(v))

	case int64:
		return w.writeLongValue(v)

	case uint64:
		if v <= math.MaxInt64 {
			return w.writeLongValue(int64(v))
		}
		return w.writeNumberString(strconv.FormatUint(v, 10))

	case float32:
		return w.writeDoubleValue(float64(v))

	case float64:
		return w.writeDoubleValue(v)

	case bool:
		return w.writeBooleanValue(v)

	case *types.MapValue:
		return w.writeMapValue(v)

	case map[string]interface{}:
		return w.writeMapValue(types.NewMapValue(v))

	case *types.RecordValue:
		return w.writeRecordValue(v)

	case []types.FieldValue:
		return w.writeArrayValue(v)

	case []interface{}:
		arr := make([]types.FieldValue, len(v))
		for i, e := range v {
			arr[i] = e
		}
		return w.writeArrayValue(arr)

	case time.Time:
		return w.writeTimestampValue(v)

	case *big.Rat:
		s, err := types.NumberString(v)
		if err != nil {
			return 0, nsonerr.NewWithCause(nsonerr.IllegalArgument, err, "binary.Writer: unsupported Number value")
		}
		return w.writeNumberString(s)

	case []byte:
		return w.writeBinaryValue(v)

	case json.Number:
		return w.writeJSONNumber(v)

	case *types.EmptyValue:
		return w.writeOneByte(byte(types.Empty))

	case *types.NullValue:
		return w.writeOneByte(byte(types.Null))

	case *types.JSONNullValue:
		return w.writeOneByte(byte(types.JSONNull))

	case nil:
		return w.writeOneByte(byte(types.JSONNull))

	default:
		return 0, nsonerr.NewIllegalArgument("binary.Writer: unsupported field value %v of type %[1]T", v)
	}
}

// writeJSONNumber picks the narrowest kind that represents the textual
// number exactly: Integer or Long for integral values, Double when the
// binary64 form round-trips the text, Number otherwise.
func (w *Writer) writeJSONNumber(v json.Number) (int, error) {
	if iv, err := v.Int64(); err == nil {
		if iv >= math.MinInt32 && iv <= math.MaxInt32 {
			return w.writeIntegerValue(int(iv))
		}
		return w.writeLongValue(iv)
	}
	if fv, err := v.Float64(); err == nil {
		if strconv.FormatFloat(fv, 'g', -1, 64) == v.String() {
			return w.writeDoubleValue(fv)
		}
	}
	if _, err := types.ParseNumber(v.String()); err != nil {
		return 0, nsonerr.NewIllegalArgument("binary.Writer: invalid numeric value %q", v.String())
	}
	return w.writeNumberString(v.String())
}

func (w *Writer) writeIntegerValue(value int) (n int, err error) {
	if n, err = w.writeOneByte(byte(types.Integer)); err != nil {
		return
	}
	cnt, err := w.WritePackedInt(value)
	n += cnt
	return
}

func (w *Writer) writeLongValue(value int64) (n int, err error) {
	if n, err = w.writeOneByte(byte(types.Long)); err != nil {
		return
	}
	cnt, err := w.WritePackedLong(value)
	n += cnt
	return
}

func (w *Writer) writeDoubleValue(value float64) (n int, err error) {
	if n, err = w.writeOneByte(byte(types.Double)); err != nil {
		return
	}
	cnt, err := w.WriteDouble(value)
	n += cnt
	return
}

func (w *Writer) writeStringValue(value string) (n int, err error) {
	if n, err = w.writeOneByte(byte(types.String)); err != nil {
		return
	}
	cnt, err := w.WriteString(value)
	n += cnt
	return
}

func (w *Writer) writeBooleanValue(value bool) (n int, err error) {
	if n, err = w.writeOneByte(byte(types.Boolean)); err != nil {
		return
	}
	cnt, err := w.WriteBoolean(value)
	n += cnt
	return
}

func (w *Writer) writeMapValue(value *types.MapValue) (n int, err error) {
	if n, err = w.writeOneByte(byte(types.Map)); err != nil {
		return
	}
	cnt, err := w.WriteMap(value)
	n += cnt
	return
}

func (w *Writer) writeRecordValue(value *types.RecordValue) (n int, err error) {
	if n, err = w.writeOneByte(byte(types.Map)); err != nil {
		return
	}
	cnt, err := w.WriteRecord(value)
	n += cnt
	return
}

func (w *Writer) writeArrayValue(value []types.FieldValue) (n int, err error) {
	if n, err = w.writeOneByte(byte(types.Array)); err != nil {
		return
	}
	cnt, err := w.WriteArray(value)
	n += cnt
	return
}

func (w *Writer) writeTimestampValue(value time.Time) (n int, err error) {
	s, err := types.FormatTimestamp(value)
	if err != nil {
		return 0, nsonerr.NewWithCause(nsonerr.IllegalArgument, err, "binary.Writer: unsupported Timestamp value")
	}
	if n, err = w.writeOneByte(byte(types.Timestamp)); err != nil {
		return
	}
	cnt, err := w.WriteString(s)
	n += cnt
	return
}

func (w *Writer) writeNumberString(value string) (n int, err error) {
	if n, err = w.writeOneByte(byte(types.Number)); err != nil {
		return
	}
	cnt, err := w.WriteString(value)
	n += cnt
	return
}

func (w *Writer) writeBinaryValue(value []byte) (n int, err error) {
	if n, err = w.writeOneByte(byte(types.Binary)); err != nil {
		return
	}
	cnt, err := w.WriteByteArray(value)
	n += cnt
	return
}

func (w *Writer) writeOneByte(b byte) (n int, err error) {
	w.buf = append(w.buf, b)
	return 1, nil
}
