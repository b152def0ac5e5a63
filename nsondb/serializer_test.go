//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package nsondb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsondb/nson-go-sdk/nsondb/nsonerr"
	"github.com/nsondb/nson-go-sdk/nsondb/types"
)

func TestSerializerMatchesMarshal(t *testing.T) {
	// Streaming a map field by field must produce the same bytes as
	// marshaling the equivalent ordered value tree.
	ns := NewSerializer()
	require.NoError(t, ns.StartMap())
	require.NoError(t, ns.WriteIntField("id", 1234))
	require.NoError(t, ns.WriteStringField("name", "abcdefg"))
	require.NoError(t, ns.WriteBooleanField("active", true))
	require.NoError(t, ns.EndMap())
	streamed, err := ns.Bytes()
	require.NoError(t, err)

	m := types.NewOrderedMapValue()
	m.Put("id", 1234)
	m.Put("name", "abcdefg")
	m.Put("active", true)
	marshaled, err := Marshal(m)
	require.NoError(t, err)

	assert.Equal(t, marshaled, streamed)
}

func TestSerializerNestedCollections(t *testing.T) {
	ns := NewSerializer()
	require.NoError(t, ns.StartMap())

	require.NoError(t, ns.StartField("row"))
	require.NoError(t, ns.StartMap())
	require.NoError(t, ns.WriteIntField("id", 1))
	require.NoError(t, ns.EndMap())
	require.NoError(t, ns.EndField())

	require.NoError(t, ns.StartField("tags"))
	require.NoError(t, ns.StartArray())
	require.NoError(t, ns.WriteElement("a"))
	require.NoError(t, ns.WriteElement("b"))
	require.NoError(t, ns.EndArray())
	require.NoError(t, ns.EndField())

	require.NoError(t, ns.EndMap())
	buf, err := ns.Bytes()
	require.NoError(t, err)

	out, err := Unmarshal(buf)
	require.NoError(t, err)
	m, ok := out.(*types.MapValue)
	require.True(t, ok)
	assert.Equal(t, []string{"row", "tags"}, m.Keys())

	row, ok := m.Get("row")
	require.True(t, ok)
	inner, ok := row.(*types.MapValue)
	require.True(t, ok)
	id, ok := inner.GetInt("id")
	require.True(t, ok)
	assert.Equal(t, 1, id)

	tags, ok := m.Get("tags")
	require.True(t, ok)
	assert.True(t, types.DeepEqual([]types.FieldValue{"a", "b"}, tags))
}

func TestSerializerManyEntriesWidensCount(t *testing.T) {
	// More than 63 entries push the packed entry count past one byte, so
	// EndMap must shift the entries when inserting it.
	ns := NewSerializer()
	require.NoError(t, ns.StartMap())
	keys := make([]string, 100)
	for i := range keys {
		keys[i] = string(rune('a'+i%26)) + string(rune('0'+i/26))
		require.NoError(t, ns.WriteIntField(keys[i], i))
	}
	require.NoError(t, ns.EndMap())
	buf, err := ns.Bytes()
	require.NoError(t, err)

	out, err := Unmarshal(buf)
	require.NoError(t, err)
	m, ok := out.(*types.MapValue)
	require.True(t, ok)
	require.Equal(t, 100, m.Len())
	assert.Equal(t, keys, m.Keys())
}

func TestSerializerUnbalanced(t *testing.T) {
	ns := NewSerializer()
	err := ns.EndMap()
	assert.True(t, nsonerr.Is(err, nsonerr.IllegalState))

	ns = NewSerializer()
	require.NoError(t, ns.StartMap())
	_, err = ns.Bytes()
	assert.True(t, nsonerr.Is(err, nsonerr.IllegalState))

	ns = NewSerializer()
	err = ns.WriteIntField("orphan", 1)
	assert.True(t, nsonerr.Is(err, nsonerr.IllegalState))
}
