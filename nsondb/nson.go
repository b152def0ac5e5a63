//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

// Package nsondb implements NSON, a binary serialization for typed,
// recursive database values.
//
// The package offers two levels of API. Marshal and Unmarshal convert a
// complete value tree to and from its encoding in one call. Serializer
// and MapWalker stream an encoding piece by piece, which lets producers
// emit fields as they become available and lets consumers decode only the
// fields they care about while skipping the rest at near-zero cost.
//
// Values are modeled by the types package: Go strings, ints, bools,
// float64s, time.Time, *big.Rat, []byte, *types.MapValue, and slices of
// types.FieldValue all have a defined wire representation.
package nsondb

import (
	"github.com/nsondb/nson-go-sdk/nsondb/internal/proto/binary"
	"github.com/nsondb/nson-go-sdk/nsondb/nsonerr"
	"github.com/nsondb/nson-go-sdk/nsondb/types"
)

// Marshal encodes a value tree into its binary representation.
//
// Marshal fails with an IllegalArgument error for values outside the
// supported model, for Number values without a finite decimal expansion,
// and for Timestamp values with sub-microsecond precision.
func Marshal(value types.FieldValue) ([]byte, error) {
	w := binary.NewWriter()
	if _, err := w.WriteFieldValue(value); err != nil {
		return nil, err
	}
	buf := w.Bytes()
	out := make([]byte, len(buf))
	copy(out, buf)
	return out, nil
}

// Unmarshal decodes a binary encoding holding exactly one value and
// returns the value tree. Maps decode as ordered *types.MapValue, so the
// producer's field order is observable.
//
// Trailing bytes after the value fail the decode, as does any truncated,
// non-canonical or otherwise malformed input, with a BadProtocolMessage
// error.
func Unmarshal(data []byte) (types.FieldValue, error) {
	r := binary.NewReader(data)
	value, err := r.ReadFieldValue()
	if err != nil {
		return nil, err
	}
	if r.Next() {
		return nil, nsonerr.NewBadProtocol("nson: %d trailing bytes after value", len(data)-r.Offset())
	}
	return value, nil
}

// NewReader creates a cursor over an encoded buffer for callers that
// decode incrementally, for example through a MapWalker.
func NewReader(data []byte) *binary.Reader {
	return binary.NewReader(data)
}
