//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package types

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapValuePut(t *testing.T) {
	m := NewMapValue(nil)
	m.Put("a", 1)
	m.Put("b", 2)
	assert.Equal(t, 2, m.Len())

	// Keys are unique. Putting under an existing key overwrites.
	m.Put("a", 3)
	assert.Equal(t, 2, m.Len())
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestOrderedMapValue(t *testing.T) {
	m := NewOrderedMapValue()
	m.Put("zebra", 1)
	m.Put("apple", 2)
	m.Put("mango", 3)
	assert.True(t, m.IsOrdered())
	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())

	// Overwriting keeps the original position.
	m.Put("apple", 20)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())

	k, v, ok := m.GetByIndex(2)
	require.True(t, ok)
	assert.Equal(t, "apple", k)
	assert.Equal(t, 20, v)

	_, _, ok = m.GetByIndex(0)
	assert.False(t, ok)
	_, _, ok = m.GetByIndex(4)
	assert.False(t, ok)

	m.Delete("apple")
	assert.Equal(t, []string{"zebra", "mango"}, m.Keys())
	assert.Equal(t, 2, m.Len())
}

func TestMapValueFromJSON(t *testing.T) {
	m, err := NewMapValueFromJSON(`{"id": 1, "pi": 3.14, "big": 123456789012345678901234567890}`)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	// Numbers keep their textual form until encoded.
	i, ok := m.GetInt("id")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	f, ok := m.GetFloat64("pi")
	require.True(t, ok)
	assert.Equal(t, 3.14, f)

	_, err = NewMapValueFromJSON(`[1, 2]`)
	assert.Error(t, err)
}

func TestRecordValueOrder(t *testing.T) {
	r1 := NewRecordValue([]string{"id", "name"})
	r1.Put("id", 1)
	r1.Put("name", "jane")

	r2 := NewRecordValue([]string{"name", "id"})
	r2.Put("id", 1)
	r2.Put("name", "jane")

	// Field order is part of a record's identity.
	assert.False(t, DeepEqual(r1, r2))

	// The MapValue views compare by key set only.
	assert.True(t, DeepEqual(r1.AsMapValue(), r2.AsMapValue()))
	assert.Equal(t, []string{"id", "name"}, r1.AsMapValue().Keys())
	assert.Equal(t, []string{"name", "id"}, r2.AsMapValue().Keys())
}

func TestRecordValueUnknownField(t *testing.T) {
	r := NewRecordValue([]string{"id"})
	r.Put("id", 1)
	r.Put("extra", true)
	assert.Equal(t, []string{"id", "extra"}, r.Fields())
	assert.Equal(t, 2, r.Len())
}

func TestDeepEqualDoubles(t *testing.T) {
	assert.True(t, DeepEqual(math.NaN(), math.NaN()))
	assert.True(t, DeepEqual(math.Inf(1), math.Inf(1)))
	assert.False(t, DeepEqual(math.Inf(1), math.Inf(-1)))
	assert.False(t, DeepEqual(0.0, math.Copysign(0, -1)))
	assert.True(t, DeepEqual(1.5, 1.5))
	assert.False(t, DeepEqual(1.5, 1.6))
}

func TestDeepEqualIntegerKinds(t *testing.T) {
	assert.True(t, DeepEqual(1234, int64(1234)))
	assert.True(t, DeepEqual(int32(-5), -5))
	assert.False(t, DeepEqual(1234, int64(1235)))
	// Integer kinds never equal doubles; the wire kinds differ.
	assert.False(t, DeepEqual(1, 1.0))
}

func TestDeepEqualCollections(t *testing.T) {
	a := NewMapValue(map[string]interface{}{"x": 1, "y": []interface{}{1, "two"}})
	b := NewOrderedMapValue()
	b.Put("y", []FieldValue{1, "two"})
	b.Put("x", 1)
	// Map equality is order-insensitive.
	assert.True(t, DeepEqual(a, b))

	b.Put("x", 2)
	assert.False(t, DeepEqual(a, b))

	assert.True(t, DeepEqual([]byte(nil), []byte{}))
	assert.False(t, DeepEqual([]FieldValue{1, 2}, []FieldValue{2, 1}))
}

func TestDeepEqualNullKinds(t *testing.T) {
	assert.True(t, DeepEqual(NullValueInstance, NullValueInstance))
	assert.True(t, DeepEqual(JSONNullValueInstance, &JSONNullValue{}))
	assert.False(t, DeepEqual(NullValueInstance, JSONNullValueInstance))
	assert.False(t, DeepEqual(NullValueInstance, EmptyValueInstance))
	assert.False(t, DeepEqual(nil, NullValueInstance))
	assert.True(t, DeepEqual(nil, nil))
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2017, 7, 15, 15, 18, 59, 0, time.UTC), "2017-07-15T15:18:59Z"},
		{time.Date(2017, 7, 15, 15, 18, 59, 123000000, time.UTC), "2017-07-15T15:18:59.123Z"},
		{time.Date(2017, 7, 15, 15, 18, 59, 123456000, time.UTC), "2017-07-15T15:18:59.123456Z"},
	}
	for _, tt := range tests {
		got, err := FormatTimestamp(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	// Non-UTC instants are formatted in UTC.
	loc := time.FixedZone("UTC+2", 2*3600)
	got, err := FormatTimestamp(time.Date(2017, 7, 15, 17, 18, 59, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, "2017-07-15T15:18:59Z", got)

	// Sub-microsecond precision is rejected.
	_, err = FormatTimestamp(time.Date(2017, 7, 15, 15, 18, 59, 123456789, time.UTC))
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2017, 7, 15, 15, 18, 59, 123456000, time.UTC)
	got, err := ParseTimestamp("2017-07-15T15:18:59.123456Z")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	// An offset form of the same instant parses to the same time.
	got2, err := ParseTimestamp("2017-07-15T17:18:59.123456+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(got2))

	_, err = ParseTimestamp("not a timestamp")
	assert.Error(t, err)
	_, err = ParseTimestamp("2017-07-15")
	assert.Error(t, err)
}

func TestTimestampRoundTripEquivalence(t *testing.T) {
	for _, text := range []string{
		"2017-07-15T15:18:59Z",
		"2017-07-15T15:18:59.123Z",
		"2017-07-15T15:18:59.123456Z",
	} {
		parsed, err := ParseTimestamp(text)
		require.NoError(t, err)
		formatted, err := FormatTimestamp(parsed)
		require.NoError(t, err)
		assert.Equal(t, text, formatted)
	}
}

func TestNumberString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"-12345", "-12345"},
		{"12.34", "12.34"},
		{"-0.001", "-0.001"},
		{"123456789012345678901234567890.123456789", "123456789012345678901234567890.123456789"},
	}
	for _, tt := range tests {
		r, ok := new(big.Rat).SetString(tt.in)
		require.True(t, ok)
		got, err := NumberString(r)
		require.NoErrorf(t, err, "NumberString(%s) got error", tt.in)
		assert.Equal(t, tt.want, got)
	}

	// Rationals without a finite decimal expansion are rejected.
	for _, r := range []*big.Rat{big.NewRat(1, 3), big.NewRat(22, 7), big.NewRat(-1, 6)} {
		_, err := NumberString(r)
		assert.Errorf(t, err, "NumberString(%s) should fail", r)
	}

	// Denominators made only of factors 2 and 5 terminate.
	got, err := NumberString(big.NewRat(1, 8))
	require.NoError(t, err)
	assert.Equal(t, "0.125", got)
	got, err = NumberString(big.NewRat(1, 40))
	require.NoError(t, err)
	assert.Equal(t, "0.025", got)
}

func TestParseNumber(t *testing.T) {
	for _, s := range []string{"0", "-12345", "12.34", "1e10", "-1.5E-3", "+0.5"} {
		r, err := ParseNumber(s)
		require.NoErrorf(t, err, "ParseNumber(%q) got error", s)
		require.NotNil(t, r)
	}

	r, err := ParseNumber("12.34")
	require.NoError(t, err)
	assert.Equal(t, 0, r.Cmp(big.NewRat(1234, 100)))

	for _, s := range []string{"", "abc", "1/3", "1.2.3", "0x10", "NaN", "Inf", "1e", "--1"} {
		_, err := ParseNumber(s)
		assert.Errorf(t, err, "ParseNumber(%q) should fail", s)
	}
}

func TestDbTypeString(t *testing.T) {
	assert.Equal(t, "Array", Array.String())
	assert.Equal(t, "Map", Map.String())
	assert.Equal(t, "Empty", Empty.String())
	assert.Equal(t, byte(0), byte(Array))
	assert.Equal(t, byte(12), byte(Empty))
}
