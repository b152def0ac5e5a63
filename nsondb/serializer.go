//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package nsondb

import (
	"github.com/nsondb/nson-go-sdk/nsondb/internal/proto"
	"github.com/nsondb/nson-go-sdk/nsondb/internal/proto/binary"
	"github.com/nsondb/nson-go-sdk/nsondb/nsonerr"
	"github.com/nsondb/nson-go-sdk/nsondb/types"
)

// Serializer generates binary values piece by piece, without requiring
// the caller to materialize an in-memory tree first. It is an event-style
// interface: the caller starts and ends maps and arrays, and emits fields
// in between.
//
// Because the number of entries in a map or array is written as a packed
// integer whose width is not known until the collection is closed, the
// entry count bytes are inserted in front of the entries when EndMap or
// EndArray is called. The 4-byte total length reserved by StartMap and
// StartArray is then patched in place. Length offsets of enclosing frames
// precede the insertion point, so they stay valid.
//
// A Serializer must not be used from multiple goroutines concurrently.
type Serializer struct {
	w proto.Writer

	// offsetStack holds the buffer offset of the reserved 4-byte length
	// field of each currently open collection, innermost last.
	offsetStack []int

	// sizeStack holds the number of entries written so far to each
	// currently open collection, innermost last.
	sizeStack []int

	// scratch encodes the packed entry count before insertion.
	scratch proto.Writer
}

// NewSerializer creates an empty Serializer backed by a growable buffer.
func NewSerializer() *Serializer {
	return &Serializer{
		w:       binary.NewWriter(),
		scratch: binary.NewWriter(),
	}
}

// StartMap begins a map value. Every StartMap must be balanced by a
// matching EndMap after its fields are written.
func (ns *Serializer) StartMap() error {
	return ns.startComplexValue(types.Map)
}

// StartArray begins an array value. Every StartArray must be balanced by
// a matching EndArray after its elements are written.
func (ns *Serializer) StartArray() error {
	return ns.startComplexValue(types.Array)
}

// EndMap completes the map begun by the matching StartMap, filling in its
// entry count and total byte length.
func (ns *Serializer) EndMap() error {
	return ns.endComplexValue()
}

// EndArray completes the array begun by the matching StartArray, filling
// in its element count and total byte length.
func (ns *Serializer) EndArray() error {
	return ns.endComplexValue()
}

// StartField begins a named field of the enclosing map by writing its
// key. The caller writes the field's value next, then calls EndField.
func (ns *Serializer) StartField(key string) error {
	_, err := ns.w.WriteString(key)
	return err
}

// EndField completes the current field, counting it toward the enclosing
// collection's entry count.
func (ns *Serializer) EndField() error {
	return ns.incrSize()
}

// EndArrayField counts a just-written element toward the enclosing
// array's element count. Array elements have no key, so there is no
// StartArrayField counterpart.
func (ns *Serializer) EndArrayField() error {
	return ns.incrSize()
}

// WriteField writes a complete named field: the key, the value and the
// entry count bookkeeping.
func (ns *Serializer) WriteField(key string, value types.FieldValue) error {
	if err := ns.StartField(key); err != nil {
		return err
	}
	if _, err := ns.w.WriteFieldValue(value); err != nil {
		return err
	}
	return ns.EndField()
}

// WriteIntField writes a named Integer field.
func (ns *Serializer) WriteIntField(key string, value int) error {
	return ns.WriteField(key, value)
}

// WriteLongField writes a named Long field.
func (ns *Serializer) WriteLongField(key string, value int64) error {
	return ns.WriteField(key, value)
}

// WriteStringField writes a named String field.
func (ns *Serializer) WriteStringField(key string, value string) error {
	return ns.WriteField(key, value)
}

// WriteBooleanField writes a named Boolean field.
func (ns *Serializer) WriteBooleanField(key string, value bool) error {
	return ns.WriteField(key, value)
}

// WriteDoubleField writes a named Double field.
func (ns *Serializer) WriteDoubleField(key string, value float64) error {
	return ns.WriteField(key, value)
}

// WriteBinaryField writes a named Binary field.
func (ns *Serializer) WriteBinaryField(key string, value []byte) error {
	return ns.WriteField(key, value)
}

// WriteElement writes a complete array element including the element
// count bookkeeping.
func (ns *Serializer) WriteElement(value types.FieldValue) error {
	if _, err := ns.w.WriteFieldValue(value); err != nil {
		return err
	}
	return ns.EndArrayField()
}

// Size returns the number of bytes generated so far.
func (ns *Serializer) Size() int {
	return ns.w.Size()
}

// Bytes returns the generated encoding. All collections must have been
// closed; an unbalanced Start call is reported as an IllegalState error.
func (ns *Serializer) Bytes() ([]byte, error) {
	if len(ns.offsetStack) > 0 {
		return nil, nsonerr.NewIllegalState("nson: %d collection(s) still open", len(ns.offsetStack))
	}
	buf := ns.w.Bytes()
	out := make([]byte, len(buf))
	copy(out, buf)
	return out, nil
}

func (ns *Serializer) startComplexValue(t types.DbType) error {
	if err := ns.w.WriteByte(byte(t)); err != nil {
		return err
	}
	lengthOffset := ns.w.Size()
	// Reserve the 4-byte total length, patched by endComplexValue.
	if _, err := ns.w.WriteInt(0); err != nil {
		return err
	}
	ns.offsetStack = append(ns.offsetStack, lengthOffset)
	ns.sizeStack = append(ns.sizeStack, 0)
	return nil
}

func (ns *Serializer) endComplexValue() error {
	n := len(ns.offsetStack)
	if n == 0 {
		return nsonerr.NewIllegalState("nson: unbalanced end of map or array")
	}
	lengthOffset := ns.offsetStack[n-1]
	size := ns.sizeStack[n-1]
	ns.offsetStack = ns.offsetStack[:n-1]
	ns.sizeStack = ns.sizeStack[:n-1]

	ns.scratch.Reset()
	if _, err := ns.scratch.WritePackedInt(size); err != nil {
		return err
	}
	if err := ns.w.InsertAtOffset(ns.scratch.Bytes(), lengthOffset+4); err != nil {
		return err
	}

	// Total length covers the packed entry count plus the entries.
	return ns.w.WriteIntAtOffset(ns.w.Size()-lengthOffset-4, lengthOffset)
}

func (ns *Serializer) incrSize() error {
	n := len(ns.sizeStack)
	if n == 0 {
		return nsonerr.NewIllegalState("nson: field written outside of a map or array")
	}
	ns.sizeStack[n-1]++
	return nil
}
