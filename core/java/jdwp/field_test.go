// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jdwp

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessturo/Roastery/core/data/endian"
)

func sizes8() IDSizes {
	return IDSizes{
		FieldIDSize:         8,
		MethodIDSize:        8,
		ObjectIDSize:        8,
		ReferenceTypeIDSize: 8,
		FrameIDSize:         8,
		populated:           true,
	}
}

func sizes4() IDSizes {
	return IDSizes{
		FieldIDSize:         4,
		MethodIDSize:        4,
		ObjectIDSize:        4,
		ReferenceTypeIDSize: 4,
		FrameIDSize:         4,
		populated:           true,
	}
}

// encodeField serialises one field of kind k for tests.
func encodeField(t *testing.T, s IDSizes, k fieldKind, v interface{}) []byte {
	t.Helper()
	buf := bytes.Buffer{}
	w := endian.Writer(&buf, endian.Big)
	require.NoError(t, k.encode(w, &s, v))
	return buf.Bytes()
}

func TestFieldRoundTrips(t *testing.T) {
	for _, test := range []struct {
		name  string
		sizes IDSizes
		kind  fieldKind
		value interface{}
		width int
	}{
		{"byte", sizes8(), fieldByte, byte(0x7F), 1},
		{"boolean", sizes8(), fieldBoolean, true, 1},
		{"char", sizes8(), fieldChar, Char(0x1234), 2},
		{"short", sizes8(), fieldShort, int16(-42), 2},
		{"int", sizes8(), fieldInt, int(-123456), 4},
		{"long", sizes8(), fieldLong, int64(-1234567890123), 8},
		{"float", sizes8(), fieldFloat, float32(2.5), 4},
		{"double", sizes8(), fieldDouble, float64(-3.75), 8},
		{"object8", sizes8(), fieldObjectID, ObjectID(0xDEADBEEFCAFEF00D), 8},
		{"object4", sizes4(), fieldObjectID, ObjectID(0xCAFEF00D), 4},
		{"thread", sizes8(), fieldThreadID, ThreadID(7), 8},
		{"threadgroup", sizes8(), fieldThreadGroupID, ThreadGroupID(8), 8},
		{"stringid", sizes8(), fieldStringID, StringID(9), 8},
		{"classloader", sizes8(), fieldClassLoaderID, ClassLoaderID(10), 8},
		{"classobject", sizes8(), fieldClassObjectID, ClassObjectID(11), 8},
		{"array", sizes8(), fieldArrayID, ArrayID(12), 8},
		{"reftype", sizes4(), fieldReferenceTypeID, ReferenceTypeID(0x01020304), 4},
		{"classid", sizes8(), fieldClassID, ClassID(14), 8},
		{"interfaceid", sizes8(), fieldInterfaceID, InterfaceID(15), 8},
		{"arraytypeid", sizes8(), fieldArrayTypeID, ArrayTypeID(16), 8},
		{"methodid", sizes4(), fieldMethodID, MethodID(0x0A0B0C0D), 4},
		{"fieldid", sizes8(), fieldFieldID, FieldID(18), 8},
		{"frameid", sizes8(), fieldFrameID, FrameID(19), 8},
		{"tagged", sizes8(), fieldTaggedObjectID,
			TaggedObjectID{Type: TagObject, Object: 0xDEADBEEFCAFEF00D}, 9},
		{"location", sizes8(), fieldLocation,
			Location{Type: Class, Class: 1, Method: 2, Location: 3}, 25},
		{"string", sizes8(), fieldString, "Ljava/lang/String;", 4 + 18},
		{"value-int", sizes8(), fieldValue, int(42), 5},
		{"value-void", sizes8(), fieldValue, nil, 1},
		{"value-object", sizes8(), fieldValue, ObjectID(99), 9},
		{"arrayregion-int", sizes8(), fieldArrayRegion,
			ArrayRegion{Tag: TagInt, Values: []Value{int(1), int(2), int(3)}}, 1 + 4 + 12},
		{"arrayregion-object", sizes8(), fieldArrayRegion,
			ArrayRegion{Tag: TagObject, Values: []Value{ObjectID(1), ObjectID(2)}}, 1 + 4 + 18},
	} {
		t.Run(test.name, func(t *testing.T) {
			data := encodeField(t, test.sizes, test.kind, test.value)
			require.Equal(t, test.width, len(data), "encoded length")

			br := bytes.NewReader(data)
			r := endian.Reader(br, endian.Big)
			got, err := test.kind.decode(r, &test.sizes)
			require.NoError(t, err)
			assert.Equal(t, 0, br.Len(), "bytes consumed")
			if diff := cmp.Diff(test.value, got); diff != "" {
				t.Errorf("decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTaggedObjectIDWire(t *testing.T) {
	// With an 8-byte object ID size, {'L', 0xDEADBEEFCAFEF00D} must encode
	// to the tag byte followed by the big-endian ID.
	s := sizes8()
	data := encodeField(t, s, fieldTaggedObjectID,
		TaggedObjectID{Type: TagObject, Object: 0xDEADBEEFCAFEF00D})
	assert.Equal(t, []byte{
		0x4C, 0xDE, 0xAD, 0xBE, 0xEF, 0xCA, 0xFE, 0xF0, 0x0D,
	}, data)

	br := bytes.NewReader(data)
	r := endian.Reader(br, endian.Big)
	got := readTaggedObjectID(r, &s)
	require.NoError(t, r.Error())
	assert.Equal(t, TaggedObjectID{Type: TagObject, Object: 0xDEADBEEFCAFEF00D}, got)
	assert.Equal(t, 0, br.Len())
}

func TestLocationWire(t *testing.T) {
	s := sizes8()
	loc := Location{
		Type:     Class,
		Class:    0xDEADBEEFCAFEF00D,
		Method:   0x424242421E0DF015,
		Location: 0x123456789ABCDEFF,
	}
	data := encodeField(t, s, fieldLocation, loc)
	require.Equal(t, 25, len(data))

	br := bytes.NewReader(data)
	r := endian.Reader(br, endian.Big)
	got := readLocation(r, &s)
	require.NoError(t, r.Error())
	assert.Equal(t, loc, got)
	assert.Equal(t, 0, br.Len())
}

func TestVariableWidthIDTruncation(t *testing.T) {
	// A 4-byte object ID writes only the low four bytes.
	s := sizes4()
	data := encodeField(t, s, fieldObjectID, ObjectID(0xCAFEF00D))
	assert.Equal(t, []byte{0xCA, 0xFE, 0xF0, 0x0D}, data)

	// Reading zero-extends.
	r := endian.Reader(bytes.NewReader(data), endian.Big)
	assert.Equal(t, ObjectID(0xCAFEF00D), readObjectID(r, &s))
	require.NoError(t, r.Error())
}

func TestIDTooWide(t *testing.T) {
	s := sizes4()
	buf := bytes.Buffer{}
	w := endian.Writer(&buf, endian.Big)
	err := fieldObjectID.encode(w, &s, ObjectID(0x1_0000_0000))
	assert.ErrorIs(t, err, ErrIDTooWide)
}

func TestSizesUnknown(t *testing.T) {
	s := IDSizes{}
	buf := bytes.Buffer{}
	w := endian.Writer(&buf, endian.Big)
	err := fieldObjectID.encode(w, &s, ObjectID(1))
	assert.ErrorIs(t, err, ErrSizesUnknown)

	r := endian.Reader(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8}), endian.Big)
	_, err = fieldObjectID.decode(r, &s)
	assert.ErrorIs(t, err, ErrSizesUnknown)
}

func TestInvalidTag(t *testing.T) {
	s := sizes8()
	r := endian.Reader(bytes.NewReader([]byte{0xFF, 0, 0, 0, 0}), endian.Big)
	_, err := fieldValue.decode(r, &s)
	assert.ErrorIs(t, err, ErrInvalidTag)
}

func TestTruncatedString(t *testing.T) {
	s := sizes8()
	// Declared length of 10 with only two payload bytes remaining.
	data := []byte{0x00, 0x00, 0x00, 0x0A, 'h', 'i'}
	r := endian.Reader(bytes.NewReader(data), endian.Big)
	_, err := fieldString.decode(r, &s)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestArrayRegionObjectElements(t *testing.T) {
	// Object-typed regions carry every element as a tagged value; each
	// element consumes exactly 1 + objectIDSize bytes.
	s := sizes8()
	region := ArrayRegion{Tag: TagObject, Values: []Value{
		ObjectID(0x1111), ObjectID(0x2222),
	}}
	data := encodeField(t, s, fieldArrayRegion, region)
	require.Equal(t, 1+4+2*(1+8), len(data))

	br := bytes.NewReader(data)
	r := endian.Reader(br, endian.Big)
	got := readArrayRegion(r, &s)
	require.NoError(t, r.Error())
	assert.Equal(t, region, got)
	assert.Equal(t, 0, br.Len())
}

func TestArrayRegionInvalidTag(t *testing.T) {
	s := sizes8()
	r := endian.Reader(bytes.NewReader([]byte{0x00, 0, 0, 0, 0}), endian.Big)
	readArrayRegion(r, &s)
	assert.ErrorIs(t, r.Error(), ErrInvalidTag)
}

func TestValueTagConsistency(t *testing.T) {
	for _, test := range []struct {
		value Value
		tag   Tag
	}{
		{byte(1), TagByte},
		{true, TagBoolean},
		{Char(2), TagChar},
		{int16(3), TagShort},
		{int(4), TagInt},
		{int64(5), TagLong},
		{float32(6), TagFloat},
		{float64(7), TagDouble},
		{nil, TagVoid},
		{ObjectID(8), TagObject},
		{ThreadID(9), TagThread},
		{ThreadGroupID(10), TagThreadGroup},
		{StringID(11), TagString},
		{ClassLoaderID(12), TagClassLoader},
		{ClassObjectID(13), TagClassObject},
		{ArrayID(14), TagArray},
	} {
		tag, err := tagOf(test.value)
		require.NoError(t, err)
		assert.Equal(t, test.tag, tag, "%T", test.value)

		s := sizes8()
		data := encodeField(t, s, fieldValue, test.value)
		assert.Equal(t, uint8(test.tag), data[0], "%T", test.value)
	}
}
