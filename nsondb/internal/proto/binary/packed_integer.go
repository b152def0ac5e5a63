//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

// This file implements reading and writing packed integer values.
//
// A packed integer is a zig-zag mapped magnitude emitted 7 bits per byte,
// least significant group first, with the continuation bit (0x80) set on
// all bytes but the last. Values of small magnitude, by far the common
// case for counts and lengths, cost a single byte while the full 32- and
// 64-bit ranges remain representable.
//
// Decoding is strict: an encoding longer than necessary (a multi-byte
// encoding whose final byte is zero) is rejected so that every value has
// exactly one wire representation, and a payload that does not fit the
// target width is rejected as a range error.

package binary

import (
	"math"

	"github.com/nsondb/nson-go-sdk/nsondb/nsonerr"
)

const (
	// maxPackedInt32Length is the maximum number of bytes needed to store
	// a signed 32-bit integer (ceil(32/7)).
	maxPackedInt32Length = 5

	// maxPackedInt64Length is the maximum number of bytes needed to store
	// a signed 64-bit integer (ceil(64/7)).
	maxPackedInt64Length = 10
)

// zigZag32 maps a signed 32-bit value to an unsigned value so that small
// magnitudes of either sign encode in few bytes.
func zigZag32(value int32) uint32 {
	return uint32(value<<1) ^ uint32(value>>31)
}

// unZigZag32 is the inverse of zigZag32.
func unZigZag32(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// zigZag64 maps a signed 64-bit value to an unsigned value so that small
// magnitudes of either sign encode in few bytes.
func zigZag64(value int64) uint64 {
	return uint64(value<<1) ^ uint64(value>>63)
}

// unZigZag64 is the inverse of zigZag64.
func unZigZag64(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// appendPackedInt32 appends the packed encoding of value to buf and
// returns the extended buffer.
func appendPackedInt32(buf []byte, value int32) []byte {
	return appendPackedUint(buf, uint64(zigZag32(value)))
}

// appendPackedInt64 appends the packed encoding of value to buf and
// returns the extended buffer.
func appendPackedInt64(buf []byte, value int64) []byte {
	return appendPackedUint(buf, zigZag64(value))
}

func appendPackedUint(buf []byte, u uint64) []byte {
	for u >= 0x80 {
		buf = append(buf, byte(u)|0x80)
		u >>= 7
	}
	return append(buf, byte(u))
}

// readPackedInt32 decodes a packed int32 from buf starting at offset off.
// It returns the value and the number of bytes consumed.
func readPackedInt32(buf []byte, off int) (int32, int, error) {
	u, n, err := readPackedUint(buf, off, maxPackedInt32Length)
	if err != nil {
		return 0, 0, err
	}
	if u > math.MaxUint32 {
		return 0, 0, nsonerr.NewRangeExceeded("binary.Reader: packed int exceeds 32 bits")
	}
	return unZigZag32(uint32(u)), n, nil
}

// readPackedInt64 decodes a packed int64 from buf starting at offset off.
// It returns the value and the number of bytes consumed.
func readPackedInt64(buf []byte, off int) (int64, int, error) {
	u, n, err := readPackedUint(buf, off, maxPackedInt64Length)
	if err != nil {
		return 0, 0, err
	}
	return unZigZag64(u), n, nil
}

// readPackedUint decodes the unsigned payload of a packed integer,
// enforcing the canonical form and the maximum encoded length.
func readPackedUint(buf []byte, off int, maxLen int) (uint64, int, error) {
	var u uint64
	var shift uint

	for i := 0; ; i++ {
		if off+i >= len(buf) {
			return 0, 0, nsonerr.NewBadProtocol("binary.Reader: truncated packed int")
		}
		if i >= maxLen {
			return 0, 0, nsonerr.NewBadProtocol("binary.Reader: packed int longer than %d bytes", maxLen)
		}

		b := buf[off+i]
		if b < 0x80 {
			if i > 0 && b == 0 {
				return 0, 0, nsonerr.NewBadProtocol("binary.Reader: non-canonical packed int")
			}
			if i == maxPackedInt64Length-1 && b > 1 {
				// Only a single bit of the tenth byte is usable for a
				// 64-bit payload.
				return 0, 0, nsonerr.NewRangeExceeded("binary.Reader: packed int exceeds 64 bits")
			}
			u |= uint64(b) << shift
			return u, i + 1, nil
		}

		u |= uint64(b&0x7f) << shift
		shift += 7
	}
}
