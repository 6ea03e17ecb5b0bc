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

package endian_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessturo/Roastery/core/data/binary"
	"github.com/chessturo/Roastery/core/data/endian"
)

func TestBigEndianRoundTrip(t *testing.T) {
	buf := bytes.Buffer{}
	w := endian.Writer(&buf, endian.Big)
	w.Uint8(0x12)
	w.Uint16(0x1234)
	w.Uint32(0x12345678)
	w.Uint64(0x123456789ABCDEF0)
	w.Int16(-2)
	w.Int32(-3)
	w.Int64(-4)
	w.Float32(1.5)
	w.Float64(-2.25)
	w.Bool(true)
	w.Bool(false)
	require.NoError(t, w.Error())

	r := endian.Reader(bytes.NewReader(buf.Bytes()), endian.Big)
	assert.Equal(t, uint8(0x12), r.Uint8())
	assert.Equal(t, uint16(0x1234), r.Uint16())
	assert.Equal(t, uint32(0x12345678), r.Uint32())
	assert.Equal(t, uint64(0x123456789ABCDEF0), r.Uint64())
	assert.Equal(t, int16(-2), r.Int16())
	assert.Equal(t, int32(-3), r.Int32())
	assert.Equal(t, int64(-4), r.Int64())
	assert.Equal(t, float32(1.5), r.Float32())
	assert.Equal(t, float64(-2.25), r.Float64())
	assert.True(t, r.Bool())
	assert.False(t, r.Bool())
	require.NoError(t, r.Error())
}

func TestBigEndianByteOrder(t *testing.T) {
	buf := bytes.Buffer{}
	w := endian.Writer(&buf, endian.Big)
	w.Uint32(0x11223344)
	require.NoError(t, w.Error())
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, buf.Bytes())

	buf.Reset()
	w = endian.Writer(&buf, endian.Little)
	w.Uint32(0x11223344)
	require.NoError(t, w.Error())
	assert.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, buf.Bytes())
}

func TestReaderSticksOnError(t *testing.T) {
	r := endian.Reader(bytes.NewReader([]byte{0x01, 0x02}), endian.Big)
	assert.Equal(t, uint32(0), r.Uint32())
	require.Error(t, r.Error())
	// Further reads keep returning zero values and the first error.
	first := r.Error()
	assert.Equal(t, uint8(0), r.Uint8())
	assert.Equal(t, first, r.Error())
}

func TestWriteUintBytes(t *testing.T) {
	for _, test := range []struct {
		width    int32
		value    uint64
		expected []byte
	}{
		{1, 0x42, []byte{0x42}},
		{2, 0x4243, []byte{0x42, 0x43}},
		{3, 0x424344, []byte{0x42, 0x43, 0x44}},
		{8, 0xDEADBEEFCAFEF00D, []byte{0xDE, 0xAD, 0xBE, 0xEF, 0xCA, 0xFE, 0xF0, 0x0D}},
		{4, 0xFF11223344, []byte{0x11, 0x22, 0x33, 0x44}}, // truncates high bits
	} {
		buf := bytes.Buffer{}
		w := endian.Writer(&buf, endian.Big)
		binary.WriteUintBytes(w, test.width, test.value)
		require.NoError(t, w.Error())
		assert.Equal(t, test.expected, buf.Bytes(), "width %d", test.width)
	}
}

func TestReadUintBytesZeroExtends(t *testing.T) {
	r := endian.Reader(bytes.NewReader([]byte{0x11, 0x22, 0x33}), endian.Big)
	assert.Equal(t, uint64(0x112233), binary.ReadUintBytes(r, 3))
	require.NoError(t, r.Error())
}

func TestUintBytesWidthOutOfRange(t *testing.T) {
	buf := bytes.Buffer{}
	w := endian.Writer(&buf, endian.Big)
	binary.WriteUintBytes(w, 9, 1)
	assert.Error(t, w.Error())

	r := endian.Reader(bytes.NewReader([]byte{1}), endian.Big)
	binary.ReadUintBytes(r, 0)
	assert.Error(t, r.Error())
}

func TestDataShortRead(t *testing.T) {
	r := endian.Reader(bytes.NewReader([]byte{1, 2}), endian.Big)
	buf := make([]byte, 4)
	r.Data(buf)
	assert.ErrorIs(t, r.Error(), io.ErrUnexpectedEOF)
}
