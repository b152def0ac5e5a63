//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package nsondb

import (
	"math/big"
	"time"

	"github.com/nsondb/nson-go-sdk/nsondb/internal/proto"
	"github.com/nsondb/nson-go-sdk/nsondb/logger"
	"github.com/nsondb/nson-go-sdk/nsondb/nsonerr"
	"github.com/nsondb/nson-go-sdk/nsondb/types"
)

// MapWalker iterates over the fields of an encoded map one at a time,
// without materializing the map. After Next positions the walker on a
// field, the caller either decodes the value with one of the typed Read
// methods or passes over it with SkipField. Fields that are skipped cost
// no allocation beyond the field name.
//
// The walker's reader must be positioned at the type tag of a map.
type MapWalker struct {
	r            proto.Reader
	numElements  int
	currentName  string
	currentIndex int
	logger       *logger.Logger
}

// NewMapWalker creates a MapWalker over the map at the reader's cursor.
// It consumes the map's type tag, total length and entry count, and fails
// with a BadProtocolMessage error if the cursor is not at a map.
func NewMapWalker(r proto.Reader) (*MapWalker, error) {
	return NewMapWalkerWithLogger(r, nil)
}

// NewMapWalkerWithLogger is like NewMapWalker with per-field decode
// tracing emitted to lgr at the Fine level. A nil logger disables
// tracing.
func NewMapWalkerWithLogger(r proto.Reader, lgr *logger.Logger) (*MapWalker, error) {
	t, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if types.DbType(t) != types.Map {
		return nil, nsonerr.NewBadProtocol("nson.MapWalker: expected a Map, found type %s", types.DbType(t))
	}

	// Total length in bytes. The walker does not use it, field boundaries
	// come from the per-field decode, but it must still be sane.
	length, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, nsonerr.NewBadProtocol("nson.MapWalker: invalid map length %d", length)
	}

	numElements, err := r.ReadPackedInt()
	if err != nil {
		return nil, err
	}
	if numElements < 0 || numElements > proto.MaxNumElements {
		return nil, nsonerr.NewBadProtocol("nson.MapWalker: invalid number of map entries: %d", numElements)
	}

	return &MapWalker{
		r:            r,
		numElements:  numElements,
		currentIndex: -1,
		logger:       lgr,
	}, nil
}

// NumElements returns the number of fields declared by the map.
func (mw *MapWalker) NumElements() int {
	return mw.numElements
}

// HasNext reports whether fields remain to be visited.
func (mw *MapWalker) HasNext() bool {
	return mw.currentIndex+1 < mw.numElements
}

// Next advances to the next field and reads its name. The reader is left
// at the field's value; the caller must consume it with a typed Read
// method or SkipField before calling Next again.
func (mw *MapWalker) Next() error {
	if !mw.HasNext() {
		return nsonerr.NewIllegalState("nson.MapWalker: cannot advance past the last of %d fields", mw.numElements)
	}

	name, err := mw.r.ReadString()
	if err != nil {
		return err
	}
	mw.currentIndex++
	mw.currentName = name
	mw.logger.Fine("nson.MapWalker: at field %q (%d of %d)", name, mw.currentIndex+1, mw.numElements)
	return nil
}

// Name returns the name of the field the walker is positioned on.
func (mw *MapWalker) Name() string {
	return mw.currentName
}

// Reader returns the underlying reader, positioned at the current field's
// value. Callers that decode through it directly must consume the value
// completely.
func (mw *MapWalker) Reader() proto.Reader {
	return mw.r
}

// SkipField passes over the current field's value without decoding it.
func (mw *MapWalker) SkipField() error {
	mw.logger.Fine("nson.MapWalker: skipping field %q", mw.currentName)
	return mw.r.SkipValue()
}

// ReadInt decodes the current field as an Integer.
func (mw *MapWalker) ReadInt() (int, error) {
	if err := mw.expectType(types.Integer); err != nil {
		return 0, err
	}
	return mw.r.ReadPackedInt()
}

// ReadLong decodes the current field as a Long.
func (mw *MapWalker) ReadLong() (int64, error) {
	if err := mw.expectType(types.Long); err != nil {
		return 0, err
	}
	return mw.r.ReadPackedLong()
}

// ReadString decodes the current field as a String.
func (mw *MapWalker) ReadString() (string, error) {
	if err := mw.expectType(types.String); err != nil {
		return "", err
	}
	return mw.r.ReadString()
}

// ReadBoolean decodes the current field as a Boolean.
func (mw *MapWalker) ReadBoolean() (bool, error) {
	if err := mw.expectType(types.Boolean); err != nil {
		return false, err
	}
	return mw.r.ReadBoolean()
}

// ReadDouble decodes the current field as a Double.
func (mw *MapWalker) ReadDouble() (float64, error) {
	if err := mw.expectType(types.Double); err != nil {
		return 0, err
	}
	return mw.r.ReadDouble()
}

// ReadBinary decodes the current field as a Binary and returns the bytes
// verbatim. Continuation keys travel this way: the producer's bytes come
// back untouched, ready to be echoed in a follow-up request.
func (mw *MapWalker) ReadBinary() ([]byte, error) {
	if err := mw.expectType(types.Binary); err != nil {
		return nil, err
	}
	return mw.r.ReadByteArray()
}

// ReadTimestamp decodes the current field as a Timestamp in UTC.
func (mw *MapWalker) ReadTimestamp() (time.Time, error) {
	if err := mw.expectType(types.Timestamp); err != nil {
		return time.Time{}, err
	}
	s, err := mw.r.ReadString()
	if err != nil {
		return time.Time{}, err
	}
	v, err := types.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, nsonerr.NewWithCause(nsonerr.BadProtocolMessage, err,
			"nson.MapWalker: field %q holds an invalid Timestamp %q", mw.currentName, s)
	}
	return v, nil
}

// ReadNumber decodes the current field as an arbitrary-precision Number.
func (mw *MapWalker) ReadNumber() (*big.Rat, error) {
	if err := mw.expectType(types.Number); err != nil {
		return nil, err
	}
	s, err := mw.r.ReadString()
	if err != nil {
		return nil, err
	}
	v, err := types.ParseNumber(s)
	if err != nil {
		return nil, nsonerr.NewWithCause(nsonerr.BadProtocolMessage, err,
			"nson.MapWalker: field %q holds an invalid Number %q", mw.currentName, s)
	}
	return v, nil
}

// ReadFieldValue decodes the current field as a value of any type.
func (mw *MapWalker) ReadFieldValue() (types.FieldValue, error) {
	return mw.r.ReadFieldValue()
}

// expectType consumes the current field's type tag and verifies it.
func (mw *MapWalker) expectType(want types.DbType) error {
	t, err := mw.r.ReadByte()
	if err != nil {
		return err
	}
	if types.DbType(t) != want {
		return nsonerr.NewBadProtocol("nson.MapWalker: field %q holds a %s, expected a %s",
			mw.currentName, types.DbType(t), want)
	}
	return nil
}
