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
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// codecConn builds a Connection good for encoding only: no transport, no
// workers.
func codecConn(s IDSizes) *Connection {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Connection{sizes: s, log: logrus.NewEntry(l)}
}

// encodePacket serialises a whole command packet with the given ID.
func encodePacket(t *testing.T, c *Connection, id PacketID, cm cmd, args ...interface{}) []byte {
	t.Helper()
	sch, body, err := c.encodeCmdBody(cm, args)
	require.NoError(t, err)
	data, err := frame(cmdPacket{id: id, cmdSet: sch.cmd.set, cmdID: sch.cmd.id, data: body})
	require.NoError(t, err)
	return data
}

func TestNoFields(t *testing.T) {
	// VirtualMachine.Version has no out-going fields: the packet is exactly
	// its header.
	c := codecConn(IDSizes{})
	data := encodePacket(t, c, 0, cmdVirtualMachineVersion)
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x0B,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x01, 0x01,
	}, data)
}

func TestOneField(t *testing.T) {
	c := codecConn(IDSizes{})
	data := encodePacket(t, c, 1, cmdVirtualMachineClassesBySignature, "Ljava/lang/String;")
	expected := append([]byte{
		0x00, 0x00, 0x00, 0x21,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x01, 0x02,
		0x00, 0x00, 0x00, 0x12,
	}, []byte("Ljava/lang/String;")...)
	assert.Equal(t, expected, data)
}

func TestVector(t *testing.T) {
	c := codecConn(sizes8())
	data := encodePacket(t, c, 2, cmdVirtualMachineDisposeObjects,
		[]DisposeObjectRequest{{Object: 0xDEADBEEFCAFEF00D, RefCount: 1}})
	require.Equal(t, 27, len(data))
	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x1B, // length 27
		0x00, 0x00, 0x00, 0x02, // id 2
		0x00, 0x01, 0x0E, // flags, cmdset 1, cmd 14
		0x00, 0x00, 0x00, 0x01, // one entry
		0xDE, 0xAD, 0xBE, 0xEF, 0xCA, 0xFE, 0xF0, 0x0D, // object ID
		0x00, 0x00, 0x00, 0x01, // refCnt
	}, data)
}

func TestHeaderDeclaredLengthMatchesEncoded(t *testing.T) {
	c := codecConn(sizes8())
	for _, test := range []struct {
		cm   cmd
		args []interface{}
	}{
		{cmdVirtualMachineVersion, nil},
		{cmdVirtualMachineCreateString, []interface{}{"hello"}},
		{cmdThreadReferenceFrames, []interface{}{ThreadID(1), 0, 10}},
		{cmdReferenceTypeGetValues, []interface{}{ReferenceTypeID(3), []FieldID{4, 5}}},
	} {
		data := encodePacket(t, c, 7, test.cm, test.args...)
		r := endianReader(bytes.NewReader(data))
		assert.Equal(t, uint32(len(data)), r.Uint32(), "%v", test.cm)
		assert.Equal(t, uint32(7), r.Uint32())
		assert.Equal(t, uint8(0), r.Uint8())
		assert.Equal(t, uint8(test.cm.set), r.Uint8())
		assert.Equal(t, uint8(test.cm.id), r.Uint8())
	}
}

func TestReadPacketClassifiesReply(t *testing.T) {
	raw := []byte{
		0x00, 0x00, 0x00, 0x0E, // length 14
		0x00, 0x00, 0x00, 0x2A, // id 42
		0x80,       // reply flag
		0x00, 0x15, // error 21
		0x01, 0x02, 0x03, // body
	}
	p, err := readPacket(endianReader(bytes.NewReader(raw)))
	require.NoError(t, err)
	reply, ok := p.(replyPacket)
	require.True(t, ok)
	assert.Equal(t, PacketID(42), reply.id)
	assert.Equal(t, ErrInvalidClass, reply.err)
	assert.Equal(t, []byte{1, 2, 3}, reply.data)
}

func TestReadPacketClassifiesCommand(t *testing.T) {
	raw := []byte{
		0x00, 0x00, 0x00, 0x0B,
		0x00, 0x00, 0x00, 0x07,
		0x00,
		0x40, 0x64, // Event.Composite
	}
	p, err := readPacket(endianReader(bytes.NewReader(raw)))
	require.NoError(t, err)
	packet, ok := p.(cmdPacket)
	require.True(t, ok)
	assert.Equal(t, cmdSetEvent, packet.cmdSet)
	assert.Equal(t, cmdCompositeEvent, packet.cmdID)
	assert.Empty(t, packet.data)
}

func TestReadPacketMalformed(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x00, 0x0A, 0, 0, 0, 0, 0, 0, 0}
	_, err := readPacket(endianReader(bytes.NewReader(raw)))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestReadPacketTruncatedBody(t *testing.T) {
	raw := []byte{
		0x00, 0x00, 0x00, 0x10, // declares a 5-byte body
		0x00, 0x00, 0x00, 0x01,
		0x80, 0x00, 0x00,
		0x01, 0x02, // only two body bytes arrive
	}
	_, err := readPacket(endianReader(bytes.NewReader(raw)))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestCheckBodyLen(t *testing.T) {
	assert.NoError(t, checkBodyLen(0))
	assert.NoError(t, checkBodyLen(1<<32-12))
	assert.ErrorIs(t, checkBodyLen(1<<32-10), ErrBodyTooLong)
}
