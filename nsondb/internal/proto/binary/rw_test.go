//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package binary

import (
	"math"
	"math/big"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/nsondb/nson-go-sdk/nsondb/nsonerr"
	"github.com/nsondb/nson-go-sdk/nsondb/types"
)

type ReadWriteTestSuite struct {
	suite.Suite
}

func TestReadWrite(t *testing.T) {
	suite.Run(t, &ReadWriteTestSuite{})
}

var byteArrayTests = [][]byte{
	{},
	{0},
	{0, 0},
	genBytes(64),
	genBytes(1024),
}

var stringTests = []string{
	"",
	" ",
	"nil",
	"null",
	genString(1024),
	"☺☻☹",
	"日a本b語ç日ð本Ê語þ日¥本¼語i日©",
	"你好, 世界",
}

func (suite *ReadWriteTestSuite) TestReadWriteByte() {
	w := NewWriter()
	tests := []byte{0, 1, math.MaxUint8}
	for _, v := range tests {
		w.WriteByte(v)
	}

	r := NewReader(w.Bytes())
	for _, in := range tests {
		out, err := r.ReadByte()
		if suite.NoErrorf(err, "ReadByte() got error %v", err) {
			suite.Equalf(in, out, "ReadByte() got unexpected value")
		}
	}

	_, err := r.ReadByte()
	suite.Truef(nsonerr.IsBadProtocol(err), "ReadByte() past the end got unexpected error %v", err)
}

func (suite *ReadWriteTestSuite) TestReadWriteInt() {
	w := NewWriter()
	tests := []int{0, 1, -1, math.MinInt32, math.MaxInt32}
	for _, v := range tests {
		w.WriteInt(v)
	}

	r := NewReader(w.Bytes())
	for _, in := range tests {
		out, err := r.ReadInt()
		if suite.NoErrorf(err, "ReadInt() got error %v", err) {
			suite.Equalf(in, out, "ReadInt() got unexpected value")
		}
	}

	_, err := r.ReadInt()
	suite.Truef(nsonerr.IsBadProtocol(err), "ReadInt() past the end got unexpected error %v", err)
}

func (suite *ReadWriteTestSuite) TestReadWritePackedInt() {
	w := NewWriter()
	for _, v := range packedInt32Tests {
		w.WritePackedInt(int(v))
	}

	r := NewReader(w.Bytes())
	for _, in := range packedInt32Tests {
		out, err := r.ReadPackedInt()
		if suite.NoErrorf(err, "ReadPackedInt() got error %v", err) {
			suite.Equalf(int(in), out, "ReadPackedInt() got unexpected value")
		}
	}

	_, err := r.ReadPackedInt()
	suite.Truef(nsonerr.IsBadProtocol(err), "ReadPackedInt() past the end got unexpected error %v", err)
}

func (suite *ReadWriteTestSuite) TestReadWritePackedLong() {
	w := NewWriter()
	for _, v := range packedInt64Tests {
		w.WritePackedLong(v)
	}

	r := NewReader(w.Bytes())
	for _, in := range packedInt64Tests {
		out, err := r.ReadPackedLong()
		if suite.NoErrorf(err, "ReadPackedLong() got error %v", err) {
			suite.Equalf(in, out, "ReadPackedLong() got unexpected value")
		}
	}
}

func (suite *ReadWriteTestSuite) TestReadWriteDouble() {
	w := NewWriter()
	tests := []float64{
		0.0, math.Copysign(0, -1),
		math.SmallestNonzeroFloat64, math.MaxFloat64,
		-1.1231421132132132, 132124.132132132132,
		math.NaN(), math.Inf(1), math.Inf(-1),
	}
	for _, v := range tests {
		w.WriteDouble(v)
	}

	r := NewReader(w.Bytes())
	for _, in := range tests {
		out, err := r.ReadDouble()
		if suite.NoErrorf(err, "ReadDouble() got error %v", err) {
			// Bit-pattern comparison covers NaN and the sign of zero.
			suite.Equalf(math.Float64bits(in), math.Float64bits(out), "ReadDouble() got unexpected value")
		}
	}
}

func (suite *ReadWriteTestSuite) TestReadWriteString() {
	w := NewWriter()
	for _, v := range stringTests {
		w.WriteString(v)
	}

	r := NewReader(w.Bytes())
	for _, in := range stringTests {
		out, err := r.ReadString()
		if suite.NoErrorf(err, "ReadString() got error %v", err) {
			suite.Equalf(in, out, "ReadString() got unexpected value")
		}
	}
}

func (suite *ReadWriteTestSuite) TestWriteStringRejectsInvalidUTF8() {
	w := NewWriter()
	_, err := w.WriteString("\xff\xfe")
	suite.Truef(nsonerr.IsIllegalArgument(err), "WriteString() with invalid UTF-8 got unexpected error %v", err)
}

func (suite *ReadWriteTestSuite) TestReadStringRejectsInvalidUTF8() {
	// A String field declaring one byte of invalid UTF-8.
	r := NewReader([]byte{0x02, 0xff})
	_, err := r.ReadString()
	suite.Truef(nsonerr.IsBadProtocol(err), "ReadString() with invalid UTF-8 got unexpected error %v", err)
}

func (suite *ReadWriteTestSuite) TestReadWriteByteArray() {
	w := NewWriter()
	for _, v := range byteArrayTests {
		w.WriteByteArray(v)
	}
	// nil writes as a zero-length array.
	w.WriteByteArray(nil)

	r := NewReader(w.Bytes())
	for _, in := range byteArrayTests {
		out, err := r.ReadByteArray()
		if suite.NoErrorf(err, "ReadByteArray() got error %v", err) {
			suite.Equalf(in, out, "ReadByteArray() got unexpected value")
		}
	}

	out, err := r.ReadByteArray()
	if suite.NoError(err) {
		suite.Len(out, 0, "ReadByteArray() of a nil write got unexpected value")
	}
}

func fieldValueTests() []types.FieldValue {
	return []types.FieldValue{
		"",
		"abcdefg",
		0,
		1234,
		-1234,
		int64(math.MaxInt64),
		int64(math.MinInt64),
		3.14159,
		math.NaN(),
		true,
		false,
		[]byte{1, 2, 3},
		time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC),
		big.NewRat(12345, 100),
		types.NullValueInstance,
		types.JSONNullValueInstance,
		types.EmptyValueInstance,
		[]types.FieldValue{},
		[]types.FieldValue{1, "two", 3.0},
		types.NewMapValue(nil),
		types.NewMapValue(map[string]interface{}{
			"id":     1,
			"name":   "jane",
			"scores": []interface{}{98.5, 87.0},
			"extra":  types.NullValueInstance,
		}),
	}
}

func (suite *ReadWriteTestSuite) TestReadWriteFieldValue() {
	for _, in := range fieldValueTests() {
		w := NewWriter()
		_, err := w.WriteFieldValue(in)
		if !suite.NoErrorf(err, "WriteFieldValue(%v) got error %v", in, err) {
			continue
		}

		r := NewReader(w.Bytes())
		out, err := r.ReadFieldValue()
		if !suite.NoErrorf(err, "ReadFieldValue() of %v got error %v", in, err) {
			continue
		}
		suite.Truef(types.DeepEqual(in, out), "round trip of %v got %v", in, out)
		suite.Falsef(r.Next(), "decode of %v left trailing bytes", in)
	}
}

func (suite *ReadWriteTestSuite) TestMapRoundTripPreservesOrder() {
	in := types.NewOrderedMapValue()
	in.Put("zebra", 1)
	in.Put("apple", 2)
	in.Put("mango", 3)

	w := NewWriter()
	_, err := w.WriteFieldValue(in)
	suite.Require().NoError(err)

	r := NewReader(w.Bytes())
	out, err := r.ReadFieldValue()
	suite.Require().NoError(err)

	m, ok := out.(*types.MapValue)
	suite.Require().True(ok)
	suite.Equal([]string{"zebra", "apple", "mango"}, m.Keys())
}

func (suite *ReadWriteTestSuite) TestDeepNesting() {
	inner := types.NewMapValue(map[string]interface{}{"leaf": 42})
	middle := types.NewMapValue(map[string]interface{}{
		"inner": inner,
		"arr":   []interface{}{[]interface{}{1, 2}, "x"},
	})
	outer := types.NewMapValue(map[string]interface{}{"middle": middle})

	w := NewWriter()
	_, err := w.WriteFieldValue(outer)
	suite.Require().NoError(err)

	r := NewReader(w.Bytes())
	out, err := r.ReadFieldValue()
	suite.Require().NoError(err)
	suite.True(types.DeepEqual(outer, out))
}

func (suite *ReadWriteTestSuite) TestSkipMatchesDecode() {
	for _, in := range fieldValueTests() {
		w := NewWriter()
		_, err := w.WriteFieldValue(in)
		suite.Require().NoError(err)
		buf := w.Bytes()

		decoder := NewReader(buf)
		_, err = decoder.ReadFieldValue()
		suite.Require().NoErrorf(err, "decode of %v failed", in)

		skipper := NewReader(buf)
		err = skipper.SkipValue()
		if suite.NoErrorf(err, "SkipValue() of %v got error %v", in, err) {
			suite.Equalf(decoder.Offset(), skipper.Offset(),
				"SkipValue() of %v landed at a different offset than decoding", in)
		}
	}
}

func (suite *ReadWriteTestSuite) TestTruncatedInputFails() {
	in := types.NewMapValue(map[string]interface{}{
		"id":   1234,
		"name": "abcdefg",
		"arr":  []interface{}{1, 2, 3},
		"bin":  genBytes(16),
	})
	w := NewWriter()
	_, err := w.WriteFieldValue(in)
	suite.Require().NoError(err)
	buf := w.Bytes()

	for i := 0; i < len(buf); i++ {
		r := NewReader(buf[:i])
		_, err := r.ReadFieldValue()
		suite.Errorf(err, "decode of a %d-byte prefix should fail", i)
	}
}

func (suite *ReadWriteTestSuite) TestUnknownTypeTagFails() {
	for _, tag := range []byte{13, 64, 127, 255} {
		r := NewReader([]byte{tag})
		_, err := r.ReadFieldValue()
		suite.Truef(nsonerr.IsBadProtocol(err), "tag %d got unexpected error %v", tag, err)

		r = NewReader([]byte{tag})
		err = r.SkipValue()
		suite.Truef(nsonerr.IsBadProtocol(err), "skip of tag %d got unexpected error %v", tag, err)
	}
}

func (suite *ReadWriteTestSuite) TestNegativeEntryCountFails() {
	// A map frame declaring -1 entries. The packed encoding of -1 is the
	// single byte 0x01, so the frame length is 1.
	buf := []byte{byte(types.Map), 0, 0, 0, 1, 0x01}
	r := NewReader(buf)
	_, err := r.ReadFieldValue()
	suite.Truef(nsonerr.IsBadProtocol(err), "negative entry count got unexpected error %v", err)
}

func (suite *ReadWriteTestSuite) TestLengthMismatchFails() {
	in := types.NewMapValue(map[string]interface{}{"id": 1234})
	w := NewWriter()
	_, err := w.WriteFieldValue(in)
	suite.Require().NoError(err)

	// Shrink the declared total length by one. The entries then consume
	// more bytes than the frame declares.
	buf := w.Bytes()
	tampered := make([]byte, len(buf))
	copy(tampered, buf)
	tampered[4]--

	r := NewReader(tampered)
	_, err = r.ReadFieldValue()
	suite.Truef(nsonerr.IsBadProtocol(err), "length mismatch got unexpected error %v", err)
}

func (suite *ReadWriteTestSuite) TestOversizedLengthFails() {
	in := types.NewMapValue(map[string]interface{}{"id": 1234})
	w := NewWriter()
	_, err := w.WriteFieldValue(in)
	suite.Require().NoError(err)

	// Grow the declared total length past the end of the buffer.
	buf := w.Bytes()
	tampered := make([]byte, len(buf))
	copy(tampered, buf)
	tampered[4] += 10

	r := NewReader(tampered)
	_, err = r.ReadFieldValue()
	suite.Truef(nsonerr.IsBadProtocol(err), "oversized length got unexpected error %v", err)

	r = NewReader(tampered)
	err = r.SkipValue()
	suite.Truef(nsonerr.IsBadProtocol(err), "skip with oversized length got unexpected error %v", err)
}

func (suite *ReadWriteTestSuite) TestTimestampPrecision() {
	w := NewWriter()
	milli := time.Date(2017, 7, 15, 15, 18, 59, 123000000, time.UTC)
	micro := time.Date(2017, 7, 15, 15, 18, 59, 123456000, time.UTC)
	whole := time.Date(2017, 7, 15, 15, 18, 59, 0, time.UTC)
	for _, v := range []time.Time{milli, micro, whole} {
		_, err := w.WriteFieldValue(v)
		suite.Require().NoError(err)
	}

	r := NewReader(w.Bytes())
	for _, in := range []time.Time{milli, micro, whole} {
		out, err := r.ReadFieldValue()
		if suite.NoError(err) {
			suite.Truef(types.DeepEqual(in, out), "timestamp %v decoded as %v", in, out)
		}
	}

	// Sub-microsecond precision has no wire representation.
	_, err := w.WriteFieldValue(time.Date(2017, 7, 15, 15, 18, 59, 123456789, time.UTC))
	suite.Truef(nsonerr.IsIllegalArgument(err), "sub-microsecond timestamp got unexpected error %v", err)
}

func (suite *ReadWriteTestSuite) TestNumberPrecision() {
	w := NewWriter()
	in, _ := new(big.Rat).SetString("123456789012345678901234567890.123456789")
	_, err := w.WriteFieldValue(in)
	suite.Require().NoError(err)

	r := NewReader(w.Bytes())
	out, err := r.ReadFieldValue()
	suite.Require().NoError(err)
	suite.Truef(types.DeepEqual(in, out), "number %v decoded as %v", in, out)

	// 1/3 has no finite decimal expansion and must be rejected rather
	// than silently rounded.
	_, err = w.WriteFieldValue(big.NewRat(1, 3))
	suite.Truef(nsonerr.IsIllegalArgument(err), "non-terminating number got unexpected error %v", err)
}

func (suite *ReadWriteTestSuite) TestWriterReset() {
	w := NewWriter()
	w.WriteString("hello")
	suite.Greater(w.Size(), 0)
	w.Reset()
	suite.Equal(0, w.Size())
	suite.Len(w.Bytes(), 0)
}

func (suite *ReadWriteTestSuite) TestInsertAtOffset() {
	w := NewWriter()
	w.Write([]byte{1, 2, 5, 6})
	err := w.InsertAtOffset([]byte{3, 4}, 2)
	suite.Require().NoError(err)
	suite.Equal([]byte{1, 2, 3, 4, 5, 6}, w.Bytes())

	err = w.InsertAtOffset([]byte{9}, 7)
	suite.Error(err)
}

func genBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}

func genString(n int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))]
	}
	return string(b)
}
