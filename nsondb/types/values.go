//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

// Package types defines the value model carried by the NSON binary format.
//
// A decoded or to-be-encoded value is a FieldValue, one of a closed set of
// kinds (see DbType). On input, Go values map to database kinds as follows:
//
//	Go Driver Types                              Database Types
//	=========================================    ===============
//	byte, int8, uint8, int16, uint16, int32      INTEGER
//	uint32 (0 <= x <= math.MaxInt32)
//	int (math.MinInt32 <= x <= math.MaxInt32)
//	-----------------------------------------    ---------------
//	int64                                        LONG
//	uint64 (0 <= x <= math.MaxInt64)
//	uint32 (math.MaxInt32 < x)
//	int (outside the 32-bit range)
//	-----------------------------------------    ---------------
//	*big.Rat                                     NUMBER
//	uint64, uint (x > math.MaxInt64)
//	-----------------------------------------    ---------------
//	float32, float64                             DOUBLE
//	-----------------------------------------    ---------------
//	string, *string                              STRING
//	-----------------------------------------    ---------------
//	[]byte                                       BINARY
//	-----------------------------------------    ---------------
//	bool                                         BOOLEAN
//	-----------------------------------------    ---------------
//	*MapValue, map[string]interface{}            MAP
//	*RecordValue                                 MAP (schema field order)
//	-----------------------------------------    ---------------
//	[]FieldValue, []interface{}                  ARRAY
//	-----------------------------------------    ---------------
//	time.Time                                    TIMESTAMP
//
// On output the mappings are fixed: INTEGER decodes to int, LONG to int64,
// DOUBLE to float64, NUMBER to *big.Rat, STRING to string, BINARY to
// []byte, BOOLEAN to bool, MAP to *MapValue (insertion ordered), ARRAY to
// []FieldValue and TIMESTAMP to time.Time in UTC.
//
// Values are immutable once constructed as far as the codec is concerned:
// encoding never mutates a value and decoding always allocates fresh values.
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"
	"sort"
	"strings"
	"time"
)

// FieldValue represents a single database value of any kind.
// This is an empty interface.
type FieldValue interface{}

// JSONNullValue represents an explicit JSON null embedded in a
// semi-structured value. It is distinct from NullValue and EmptyValue.
//
// This should be used as an immutable singleton object.
type JSONNullValue struct{}

// MarshalJSON returns the JSON encoding of JSONNullValue.
//
// This implements the json.Marshaler interface.
func (jn *JSONNullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// NullValue represents a null or missing value in a fully-typed field.
//
// This should be used as an immutable singleton object.
type NullValue struct{}

// MarshalJSON returns the JSON encoding of NullValue.
//
// This implements the json.Marshaler interface.
func (n *NullValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// EmptyValue represents "no value", such as the result of a query
// projection over a missing field. It is distinct from both null kinds.
//
// This should be used as an immutable singleton object.
type EmptyValue struct{}

// MarshalJSON returns the JSON encoding of EmptyValue.
//
// This implements the json.Marshaler interface.
func (e *EmptyValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

var (
	// JSONNullValueInstance is the singleton JSONNullValue.
	JSONNullValueInstance = &JSONNullValue{}

	// NullValueInstance is the singleton NullValue.
	NullValueInstance = &NullValue{}

	// EmptyValueInstance is the singleton EmptyValue.
	EmptyValueInstance = &EmptyValue{}
)

// MapValue represents a collection of string-keyed values, such as a table
// row or a nested map within one. Keys are case-sensitive and unique:
// putting a value under an existing key overwrites the prior value.
//
// A MapValue may optionally keep insertion order. Decoded maps are always
// ordered so that callers can observe the order the server produced.
type MapValue struct {
	// m stores the key/value pairs.
	m map[string]interface{}

	// keepInsertionOrder specifies whether to track insertion order.
	keepInsertionOrder bool

	// keys holds the keys in insertion order when ordering is tracked.
	keys []string
}

// NewMapValue creates an unordered MapValue holding the entries of m.
func NewMapValue(m map[string]interface{}) *MapValue {
	return &MapValue{
		m:                  m,
		keepInsertionOrder: false,
	}
}

// NewOrderedMapValue creates an empty MapValue that keeps insertion order.
// Entries can later be retrieved positionally with GetByIndex.
func NewOrderedMapValue() *MapValue {
	return &MapValue{
		m:                  make(map[string]interface{}),
		keepInsertionOrder: true,
		keys:               make([]string, 0, 16),
	}
}

// NewMapValueFromJSON creates a MapValue from the specified JSON text.
// It returns an error if jsonStr is not a valid JSON object.
//
// Numbers are decoded as json.Number so that integral, floating-point and
// arbitrary-precision values keep their exact textual form until encoded.
func NewMapValueFromJSON(jsonStr string) (*MapValue, error) {
	var m map[string]interface{}
	d := json.NewDecoder(strings.NewReader(jsonStr))
	d.UseNumber()
	if err := d.Decode(&m); err != nil {
		return nil, err
	}

	return NewMapValue(m), nil
}

// ToMapValue is a convenience function that wraps a single key/value pair
// in a MapValue.
func ToMapValue(k string, v interface{}) *MapValue {
	return NewMapValue(map[string]interface{}{k: v})
}

// Len returns the number of entries.
func (m *MapValue) Len() int {
	return len(m.m)
}

// IsOrdered reports whether the MapValue keeps insertion order.
func (m *MapValue) IsOrdered() bool {
	return m.keepInsertionOrder
}

// Map returns the underlying map.
func (m *MapValue) Map() map[string]interface{} {
	return m.m
}

// Keys returns the map keys. For an ordered MapValue the keys appear in
// insertion order; otherwise the order is unspecified.
func (m *MapValue) Keys() []string {
	if m.keepInsertionOrder {
		return m.keys
	}
	keys := make([]string, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	return keys
}

// MarshalJSON returns the JSON encoding of the MapValue.
//
// This implements the json.Marshaler interface.
func (m *MapValue) MarshalJSON() ([]byte, error) {
	if m == nil || m.m == nil {
		return []byte("null"), nil
	}
	return json.Marshal(m.m)
}

// Put inserts value v under key k, overwriting any prior value for k.
// If the MapValue is ordered, a new key is appended to the insertion order
// and an existing key keeps its original position.
func (m *MapValue) Put(k string, v interface{}) *MapValue {
	if m.m == nil {
		m.m = make(map[string]interface{})
	}

	if m.keepInsertionOrder {
		if _, ok := m.m[k]; !ok {
			m.keys = append(m.keys, k)
		}
	}

	m.m[k] = v
	return m
}

// Get returns the value stored under key k and whether it exists.
func (m *MapValue) Get(k string) (v interface{}, ok bool) {
	v, ok = m.m[k]
	return
}

// GetByIndex only applies to an ordered MapValue. It returns the key/value
// pair at the 1-based insertion position idx.
func (m *MapValue) GetByIndex(idx int) (k string, v interface{}, ok bool) {
	if !m.keepInsertionOrder {
		return
	}
	if idx < 1 || idx > len(m.keys) {
		return
	}

	k = m.keys[idx-1]
	v, ok = m.Get(k)
	return
}

// Delete removes the value stored under key k, adjusting the insertion
// order of an ordered MapValue accordingly.
func (m *MapValue) Delete(k string) {
	var ok bool
	if m.keepInsertionOrder {
		_, ok = m.Get(k)
	}

	delete(m.m, k)

	if !ok {
		return
	}

	for i, key := range m.keys {
		if key == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// GetString returns the string value stored under key k.
func (m *MapValue) GetString(k string) (s string, ok bool) {
	v, ok := m.Get(k)
	if !ok {
		return
	}
	s, ok = v.(string)
	return
}

// GetInt returns the int value stored under key k. A json.Number that
// fits an int is accepted as well.
func (m *MapValue) GetInt(k string) (i int, ok bool) {
	v, ok := m.Get(k)
	if !ok {
		return
	}

	if i, ok = v.(int); ok {
		return
	}

	number, ok := v.(json.Number)
	if !ok {
		return
	}
	i64, err := number.Int64()
	if err != nil {
		return 0, false
	}
	return int(i64), true
}

// GetInt64 returns the int64 value stored under key k. A json.Number that
// fits an int64 is accepted as well.
func (m *MapValue) GetInt64(k string) (i64 int64, ok bool) {
	v, ok := m.Get(k)
	if !ok {
		return
	}

	if i64, ok = v.(int64); ok {
		return
	}

	number, ok := v.(json.Number)
	if !ok {
		return
	}
	i64, err := number.Int64()
	if err != nil {
		return 0, false
	}
	return i64, true
}

// GetFloat64 returns the float64 value stored under key k. A json.Number
// is accepted as well.
func (m *MapValue) GetFloat64(k string) (f64 float64, ok bool) {
	v, ok := m.Get(k)
	if !ok {
		return
	}

	if f64, ok = v.(float64); ok {
		return
	}

	number, ok := v.(json.Number)
	if !ok {
		return
	}
	f64, err := number.Float64()
	if err != nil {
		return 0, false
	}
	return f64, true
}

// GetBinary returns the []byte value stored under key k.
func (m *MapValue) GetBinary(k string) (b []byte, ok bool) {
	v, ok := m.Get(k)
	if !ok {
		return
	}
	b, ok = v.([]byte)
	return
}

// RecordValue is a Map specialization whose field order is fixed by an
// external schema, such as a table's column order, rather than by
// insertion order. Field order is part of a record's identity: two records
// with the same entries but different schema orders compare unequal under
// DeepEqual, while their AsMapValue views compare equal.
type RecordValue struct {
	// fields holds the schema field order.
	fields []string

	// m stores the field values.
	m map[string]interface{}
}

// NewRecordValue creates an empty RecordValue whose field order is the
// specified schema order.
func NewRecordValue(fieldOrder []string) *RecordValue {
	fields := make([]string, len(fieldOrder))
	copy(fields, fieldOrder)
	return &RecordValue{
		fields: fields,
		m:      make(map[string]interface{}, len(fieldOrder)),
	}
}

// Put sets the value of field k, overwriting any prior value. A field that
// is not part of the schema is appended after the schema-ordered fields.
func (r *RecordValue) Put(k string, v interface{}) *RecordValue {
	if _, ok := r.m[k]; !ok && !r.inSchema(k) {
		r.fields = append(r.fields, k)
	}
	r.m[k] = v
	return r
}

func (r *RecordValue) inSchema(k string) bool {
	for _, f := range r.fields {
		if f == k {
			return true
		}
	}
	return false
}

// Get returns the value of field k and whether it is set.
func (r *RecordValue) Get(k string) (v interface{}, ok bool) {
	v, ok = r.m[k]
	return
}

// Len returns the number of fields that have been set.
func (r *RecordValue) Len() int {
	return len(r.m)
}

// Fields returns the record's field order. Fields that have no value yet
// are included; callers iterating entries should check Get.
func (r *RecordValue) Fields() []string {
	return r.fields
}

// AsMapValue returns an ordered MapValue view of the set fields in schema
// order. The view shares no bookkeeping with the record; mutating it does
// not affect the record.
func (r *RecordValue) AsMapValue() *MapValue {
	m := NewOrderedMapValue()
	for _, f := range r.fields {
		if v, ok := r.m[f]; ok {
			m.Put(f, v)
		}
	}
	return m
}

// MarshalJSON returns the JSON encoding of the RecordValue.
//
// This implements the json.Marshaler interface.
func (r *RecordValue) MarshalJSON() ([]byte, error) {
	if r == nil || r.m == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.m)
}

// DeepEqual reports whether two field values are equal under the value
// model's equality contract:
//
//   - Double values compare by bit pattern, so NaN equals NaN and
//     0.0 does not equal -0.0.
//   - Number values compare by exact decimal value.
//   - Timestamp values compare as instants.
//   - Binary values compare byte-wise; nil equals the empty slice.
//   - Array values compare element-wise in order.
//   - Map values compare by key set and per-key value, order-insensitive.
//   - Record values additionally compare field order.
//
// Integer-kind values (int, int32, int64 and friends) compare numerically
// across Go types, matching the writer's input mappings.
func DeepEqual(v1, v2 FieldValue) bool {
	switch a := v1.(type) {
	case nil:
		return v2 == nil

	case *NullValue:
		_, ok := v2.(*NullValue)
		return ok

	case *JSONNullValue:
		_, ok := v2.(*JSONNullValue)
		return ok

	case *EmptyValue:
		_, ok := v2.(*EmptyValue)
		return ok

	case bool:
		b, ok := v2.(bool)
		return ok && a == b

	case string:
		b, ok := v2.(string)
		return ok && a == b

	case *string:
		if a == nil {
			return v2 == nil
		}
		return DeepEqual(*a, v2)

	case float32:
		return DeepEqual(float64(a), v2)

	case float64:
		switch b := v2.(type) {
		case float64:
			return math.Float64bits(a) == math.Float64bits(b)
		case float32:
			return math.Float64bits(a) == math.Float64bits(float64(b))
		}
		return false

	case *big.Rat:
		b, ok := v2.(*big.Rat)
		return ok && a.Cmp(b) == 0

	case time.Time:
		b, ok := v2.(time.Time)
		return ok && a.Equal(b)

	case []byte:
		b, ok := v2.([]byte)
		return ok && bytes.Equal(a, b)

	case []FieldValue:
		b, ok := v2.([]FieldValue)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !DeepEqual(a[i], b[i]) {
				return false
			}
		}
		return true

	case []interface{}:
		arr := make([]FieldValue, len(a))
		for i, e := range a {
			arr[i] = e
		}
		return DeepEqual(arr, v2)

	case *MapValue:
		b, ok := v2.(*MapValue)
		return ok && mapEqual(a.Map(), b.Map())

	case map[string]interface{}:
		return DeepEqual(NewMapValue(a), v2)

	case *RecordValue:
		b, ok := v2.(*RecordValue)
		if !ok {
			return false
		}
		return recordEqual(a, b)

	default:
		ai, aok := intValue(v1)
		bi, bok := intValue(v2)
		return aok && bok && ai.Cmp(bi) == 0
	}
}

// mapEqual compares two maps by sorted key set and per-key value.
func mapEqual(a, b map[string]interface{}) bool {
	if len(a) != len(b) {
		return false
	}

	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		bv, ok := b[k]
		if !ok || !DeepEqual(a[k], bv) {
			return false
		}
	}
	return true
}

// recordEqual compares records field-by-field preserving field order.
func recordEqual(a, b *RecordValue) bool {
	if len(a.fields) != len(b.fields) || len(a.m) != len(b.m) {
		return false
	}
	for i, f := range a.fields {
		if b.fields[i] != f {
			return false
		}
		av, aok := a.m[f]
		bv, bok := b.m[f]
		if aok != bok {
			return false
		}
		if aok && !DeepEqual(av, bv) {
			return false
		}
	}
	return true
}

// intValue converts any integer-kind Go value to a big.Int for numeric
// comparison across Go types.
func intValue(v FieldValue) (*big.Int, bool) {
	switch n := v.(type) {
	case int:
		return big.NewInt(int64(n)), true
	case int8:
		return big.NewInt(int64(n)), true
	case int16:
		return big.NewInt(int64(n)), true
	case int32:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	case uint8:
		return big.NewInt(int64(n)), true
	case uint16:
		return big.NewInt(int64(n)), true
	case uint32:
		return big.NewInt(int64(n)), true
	case uint:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Int).SetUint64(n), true
	default:
		return nil, false
	}
}
