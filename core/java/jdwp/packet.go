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
	"math"

	"github.com/chessturo/Roastery/core/data/binary"
)

// PacketID identifies a single outbound command packet, and correlates its
// reply. IDs are allocated from a connection-scoped monotonic counter and
// are never reused.
type PacketID uint32

type packetFlags uint8

const packetIsReply = packetFlags(0x80)

// headerLen is the fixed length of every packet header.
const headerLen = 11

// JDWP uses the following framing for all communication:
//
// struct cmdPacket {
//   length uint32       4 bytes
//   id     PacketID     4 bytes
//   flags  packetFlags  1 byte
//   cmdSet cmdSet       1 byte
//   cmd    uint8        1 byte
//   data   []byte       N bytes
// }
//
// struct reply {
//   length uint32       4 bytes
//   id     PacketID     4 bytes
//   flags  packetFlags  1 byte
//   err    Error        2 bytes
//   data   []byte       N bytes
// }

type cmdPacket struct {
	id     PacketID
	flags  packetFlags
	cmdSet cmdSet
	cmdID  cmdID
	data   []byte
}

type replyPacket struct {
	id   PacketID
	err  Error
	data []byte
}

// checkBodyLen fails when a body would overflow the 32-bit total length
// field once the header is added.
func checkBodyLen(n int) error {
	if uint64(n) > math.MaxUint32-headerLen {
		return ErrBodyTooLong
	}
	return nil
}

func (p cmdPacket) write(w binary.Writer) error {
	if err := checkBodyLen(len(p.data)); err != nil {
		return err
	}
	w.Uint32(headerLen + uint32(len(p.data)))
	w.Uint32(uint32(p.id))
	w.Uint8(uint8(p.flags))
	w.Uint8(uint8(p.cmdSet))
	w.Uint8(uint8(p.cmdID))
	w.Data(p.data)
	return w.Error()
}

// readPacket reads one whole packet: the 11-byte header, then the body. The
// result is either a replyPacket or a cmdPacket, classified by bit 7 of the
// flags byte. An event is a cmdPacket with (cmdSet, cmdID) = (Event 64,
// Composite 100).
func readPacket(r binary.Reader) (interface{}, error) {
	length := r.Uint32()
	if err := r.Error(); err != nil {
		return nil, err
	}
	if length < headerLen {
		return nil, ErrMalformed
	}
	id := PacketID(r.Uint32())
	flags := packetFlags(r.Uint8())
	if flags&packetIsReply != 0 {
		out := replyPacket{
			id:  id,
			err: Error(r.Uint16()),
		}
		out.data = make([]byte, length-headerLen)
		r.Data(out.data)
		if err := r.Error(); err != nil {
			return nil, asTruncated(err)
		}
		return out, nil
	}
	out := cmdPacket{
		id:     id,
		flags:  flags,
		cmdSet: cmdSet(r.Uint8()),
		cmdID:  cmdID(r.Uint8()),
	}
	out.data = make([]byte, length-headerLen)
	r.Data(out.data)
	if err := r.Error(); err != nil {
		return nil, asTruncated(err)
	}
	return out, nil
}
