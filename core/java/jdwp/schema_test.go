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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessturo/Roastery/core/data/endian"
)

func encodeSchemaBody(t *testing.T, s IDSizes, cm cmd, args ...interface{}) []byte {
	t.Helper()
	buf := bytes.Buffer{}
	w := endian.Writer(&buf, endian.Big)
	require.NoError(t, encodeBody(w, &s, schemas[cm], args))
	return buf.Bytes()
}

func TestEverySchemaHasDistinctIdentity(t *testing.T) {
	for cm, sch := range schemas {
		assert.Equal(t, cm, sch.cmd, "%v", sch.name)
		assert.NotEmpty(t, sch.name)
	}
}

func TestGenericVectorEncode(t *testing.T) {
	data := encodeSchemaBody(t, sizes4(), cmdVirtualMachineInstanceCounts,
		[]ReferenceTypeID{0x0102, 0x0304})
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x01, 0x02,
		0x00, 0x00, 0x03, 0x04,
	}, data)
}

func TestNestedVectorEncode(t *testing.T) {
	// RedefineClasses carries a vector of (refType, classfile-bytes) tuples
	// where the classfile is itself a length-prefixed vector.
	type classDef struct {
		RefType   ReferenceTypeID
		Classfile []byte
	}
	data := encodeSchemaBody(t, sizes4(), cmdVirtualMachineRedefineClasses,
		[]classDef{{RefType: 5, Classfile: []byte{0xCA, 0xFE}}})
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x01, // one class
		0x00, 0x00, 0x00, 0x05, // refType
		0x00, 0x00, 0x00, 0x02, // two classfile bytes
		0xCA, 0xFE,
	}, data)
}

func TestDecodeBodyRoundTrip(t *testing.T) {
	s := sizes8()
	data := encodeSchemaBody(t, s, cmdThreadReferenceFrames, ThreadID(9), 1, 16)
	r := endian.Reader(bytes.NewReader(data), endian.Big)
	fields, err := decodeBody(r, &s, schemas[cmdThreadReferenceFrames])
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, ThreadID(9), fields[0])
	assert.Equal(t, 1, fields[1])
	assert.Equal(t, 16, fields[2])
}

func TestArgumentCountMismatch(t *testing.T) {
	buf := bytes.Buffer{}
	w := endian.Writer(&buf, endian.Big)
	s := sizes8()
	err := encodeBody(w, &s, schemas[cmdThreadReferenceFrames], []interface{}{ThreadID(9)})
	assert.Error(t, err)
}

func TestClassTypeSetValuesUntagged(t *testing.T) {
	// The assignments must serialise untagged: a long value occupies its
	// eight payload bytes with no tag byte.
	data := encodeSchemaBody(t, sizes4(), cmdClassTypeSetValues,
		ClassID(0x0A), []FieldAssignment{{Field: 0x0B, Value: int64(0x1122334455667788)}})
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x0A, // class
		0x00, 0x00, 0x00, 0x01, // one assignment
		0x00, 0x00, 0x00, 0x0B, // field
		0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, // untagged long
	}, data)
}

func TestObjectReferenceSetValuesUntagged(t *testing.T) {
	data := encodeSchemaBody(t, sizes4(), cmdObjectReferenceSetValues,
		ObjectID(0x0C), []FieldAssignment{{Field: 0x0D, Value: int(5)}})
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x0C,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x0D,
		0x00, 0x00, 0x00, 0x05, // untagged int
	}, data)
}

func TestArrayReferenceSetValuesUntagged(t *testing.T) {
	data := encodeSchemaBody(t, sizes4(), cmdArrayReferenceSetValues,
		ArrayID(0x0E), 3, []Value{int16(1), int16(2)})
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x0E,
		0x00, 0x00, 0x00, 0x03, // firstIndex
		0x00, 0x00, 0x00, 0x02, // two values
		0x00, 0x01, // untagged shorts
		0x00, 0x02,
	}, data)
}

func TestTaggedArgumentVectorEncode(t *testing.T) {
	// InvokeMethod arguments are tagged values: int 7 is five bytes.
	data := encodeSchemaBody(t, sizes4(), cmdClassTypeInvokeMethod,
		ClassID(1), ThreadID(2), MethodID(3), []Value{int(7)}, 0)
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x01, // class
		0x00, 0x00, 0x00, 0x02, // thread
		0x00, 0x00, 0x00, 0x03, // method
		0x00, 0x00, 0x00, 0x01, // one argument
		'I', 0x00, 0x00, 0x00, 0x07, // tagged int
		0x00, 0x00, 0x00, 0x00, // options
	}, data)
}
