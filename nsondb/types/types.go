//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package types

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// DbType represents the database value kinds carried by the NSON format.
// The numeric value of a DbType is the one-byte type tag that leads every
// encoded value on the wire.
//
// The tag space is closed for the kinds below and open for future kinds:
// tags 13 through 127 are reserved. A reader that encounters a reserved or
// unassigned tag must fail the current decode with a protocol error.
type DbType int

const (
	// Array is an ordered sequence of values. Duplicates and mixed element
	// kinds are allowed.
	Array DbType = iota // 0

	// Binary is an uninterpreted sequence of zero or more bytes.
	Binary // 1

	// Boolean has only two possible values: true and false.
	Boolean // 2

	// Double represents the set of all IEEE-754 64-bit floating-point
	// numbers, including NaN, signed zeros, infinities and subnormals.
	Double // 3

	// Integer represents the set of all signed 32-bit integers
	// (-2147483648 to 2147483647).
	Integer // 4

	// Long represents the set of all signed 64-bit integers
	// (-9223372036854775808 to 9223372036854775807).
	Long // 5

	// Map is a collection of string-keyed values. Keys are unique within
	// a map; the wire format does not deduplicate.
	Map // 6

	// String represents the set of UTF-8 string values.
	String // 7

	// Timestamp is an instant in time with up to microsecond precision,
	// always normalized to UTC.
	Timestamp // 8

	// Number represents arbitrary-precision decimal numbers.
	Number // 9

	// JSONNull is the JSON literal null embedded in a semi-structured value.
	JSONNull // 10

	// Null indicates the absence of an actual value, or the fact that a
	// value is unknown or inapplicable.
	Null // 11

	// Empty indicates "no value". It is distinct from Null and from JSONNull.
	Empty // 12
)

// String returns the name of the database type.
//
// This implements the fmt.Stringer interface.
func (t DbType) String() string {
	switch t {
	case Array:
		return "Array"
	case Binary:
		return "Binary"
	case Boolean:
		return "Boolean"
	case Double:
		return "Double"
	case Integer:
		return "Integer"
	case Long:
		return "Long"
	case Map:
		return "Map"
	case String:
		return "String"
	case Timestamp:
		return "Timestamp"
	case Number:
		return "Number"
	case JSONNull:
		return "JSONNull"
	case Null:
		return "Null"
	case Empty:
		return "Empty"
	default:
		return fmt.Sprintf("DbType(%d)", int(t))
	}
}

// Timestamp text layouts accepted on decode. The writer always emits UTC
// with zero, three or six fractional digits; the reader accepts any
// fractional digit count and normalizes the instant to UTC.
const (
	// ISO8601ZLayout is the whole-second layout with the UTC designator.
	ISO8601ZLayout = "2006-01-02T15:04:05Z07:00"

	// ISO8601MilliLayout carries millisecond precision.
	ISO8601MilliLayout = "2006-01-02T15:04:05.000Z07:00"

	// ISO8601MicroLayout carries microsecond precision.
	ISO8601MicroLayout = "2006-01-02T15:04:05.000000Z07:00"
)

// FormatTimestamp renders t in the canonical NSON text form: ISO-8601
// extended, normalized to UTC, with as many fractional digits as needed to
// represent the stored precision exactly (0, 3 or 6).
//
// Timestamps with sub-microsecond precision are rejected rather than
// silently truncated.
func FormatTimestamp(t time.Time) (string, error) {
	ns := t.Nanosecond()
	if ns%1000 != 0 {
		return "", fmt.Errorf("types: timestamp %v exceeds microsecond precision", t)
	}

	u := t.UTC()
	switch {
	case ns == 0:
		return u.Format(ISO8601ZLayout), nil
	case ns%1e6 == 0:
		return u.Format(ISO8601MilliLayout), nil
	default:
		return u.Format(ISO8601MicroLayout), nil
	}
}

// ParseTimestamp parses the NSON text form of a timestamp and returns the
// instant normalized to UTC. Any number of fractional digits up to nine is
// accepted; distinct textual representations of the same instant parse to
// equal time.Time values.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// NumberString renders r in the canonical NSON decimal form: an optional
// sign, integer digits and an optional fractional part. Integral values
// render with no fractional part.
//
// Rationals without a finite decimal expansion (such as 1/3) cannot be
// represented exactly and are rejected; precision is never silently lost.
func NumberString(r *big.Rat) (string, error) {
	if r == nil {
		return "", fmt.Errorf("types: nil Number value")
	}
	if r.IsInt() {
		return r.RatString(), nil
	}

	// A finite decimal expansion exists iff the reduced denominator has no
	// prime factors other than 2 and 5. The number of fractional digits is
	// the larger exponent of the two.
	den := new(big.Int).Set(r.Denom())
	digits := 0
	for _, f := range []int64{2, 5} {
		factor := big.NewInt(f)
		rem := new(big.Int)
		n := 0
		for {
			q, m := new(big.Int).QuoRem(den, factor, rem)
			if m.Sign() != 0 {
				break
			}
			den.Set(q)
			n++
		}
		if n > digits {
			digits = n
		}
	}
	if den.Cmp(big.NewInt(1)) != 0 {
		return "", fmt.Errorf("types: Number %s has no finite decimal form", r.RatString())
	}

	return r.FloatString(digits), nil
}

// ParseNumber parses the canonical decimal form produced by NumberString,
// including an optional exponent part. It rejects forms that big.Rat would
// otherwise accept, such as "a/b" fractions.
func ParseNumber(s string) (*big.Rat, error) {
	if !validDecimalString(s) {
		return nil, fmt.Errorf("types: invalid decimal string %q", s)
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("types: invalid decimal string %q", s)
	}
	return r, nil
}

// validDecimalString reports whether s matches
// [+-]? digits [. digits]? ([eE] [+-]? digits)?
func validDecimalString(s string) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}

	mant := s
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant = s[:i]
		exp := s[i+1:]
		if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
			exp = exp[1:]
		}
		if !allDigits(exp) {
			return false
		}
	}

	intPart := mant
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		intPart = mant[:i]
		if !allDigits(mant[i+1:]) {
			return false
		}
	}
	return allDigits(intPart)
}

func allDigits(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
