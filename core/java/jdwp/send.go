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
	"fmt"
	"io"

	"github.com/chessturo/Roastery/core/data/binary"
	"github.com/chessturo/Roastery/core/data/endian"
)

// Reply is a successful reply packet: the ID of the command it answers and
// the undecoded body bytes.
type Reply struct {
	ID   PacketID
	Data []byte
}

// endianReader wraps r in the big-endian binary.Reader all JDWP data uses.
func endianReader(r io.Reader) binary.Reader {
	return endian.Reader(r, endian.Big)
}

// frame serialises a command packet: the 11-byte header then the body.
func frame(p cmdPacket) ([]byte, error) {
	buf := bytes.Buffer{}
	w := endian.Writer(&buf, endian.Big)
	if err := p.write(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// newPacketID allocates the next packet ID. IDs are monotonic for the life
// of the connection and never reused.
func (c *Connection) newPacketID() PacketID {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	id := c.nextPacketID
	c.nextPacketID++
	return id
}

// encodeCmdBody serialises the body of cm from args using its schema.
// Encoding failures (unknown command, SizesUnknown, IDTooWide, BodyTooLong)
// fail here, before anything is enqueued, and do not affect the connection.
func (c *Connection) encodeCmdBody(cm cmd, args []interface{}) (*schema, []byte, error) {
	sch, ok := schemas[cm]
	if !ok {
		return nil, nil, fmt.Errorf("no schema for command %d.%d", cm.set, cm.id)
	}
	buf := bytes.Buffer{}
	w := endian.Writer(&buf, endian.Big)
	if err := encodeBody(w, &c.sizes, sch, args); err != nil {
		return nil, nil, err
	}
	if err := checkBodyLen(buf.Len()); err != nil {
		return nil, nil, err
	}
	return sch, buf.Bytes(), nil
}

// enqueue allocates a packet ID for body and appends it to the outbound
// queue, optionally registering a reply waiter first. The ID counter and the
// queue are advanced in the same critical section, so enqueue order always
// matches ID order.
func (c *Connection) enqueue(cm cmd, body []byte, wantReply bool) (PacketID, <-chan replyPacket, error) {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	if c.stopping {
		return 0, nil, ErrDisconnected
	}
	id := c.newPacketID()
	var ch chan replyPacket
	if wantReply {
		ch = make(chan replyPacket, 1)
		c.replyMu.Lock()
		c.waiters[id] = ch
		c.replyMu.Unlock()
	}
	c.queue = append(c.queue, cmdPacket{
		id:     id,
		cmdSet: cm.set,
		cmdID:  cm.id,
		data:   body,
	})
	c.queueCond.Signal()
	return id, ch, nil
}

// SendAsync serialises the command and enqueues it, returning the packet's
// already-assigned ID without waiting for transmission. The eventual reply
// is parked until claimed with WaitForReply.
func (c *Connection) SendAsync(commandSet, command uint8, args ...interface{}) (PacketID, error) {
	return c.sendAsync(cmd{cmdSet(commandSet), cmdID(command)}, args...)
}

func (c *Connection) sendAsync(cm cmd, args ...interface{}) (PacketID, error) {
	_, body, err := c.encodeCmdBody(cm, args)
	if err != nil {
		return 0, err
	}
	id, _, err := c.enqueue(cm, body, false)
	if err != nil {
		return 0, err
	}
	c.log.WithField("id", id).WithField("cmd", cm).Debug("jdwp command enqueued")
	return id, nil
}

// SendAndWait serialises the command, enqueues it, and blocks until its
// reply arrives or the connection shuts down. A non-zero JDWP error code in
// the reply header is returned as an Error; the reply body is then
// discarded.
func (c *Connection) SendAndWait(commandSet, command uint8, args ...interface{}) (*Reply, error) {
	p, err := c.req(cmd{cmdSet(commandSet), cmdID(command)}, args)
	if err != nil {
		return nil, err
	}
	return p.wait()
}

// pending is an in-flight command whose reply has not arrived yet.
type pending struct {
	c  *Connection
	ch <-chan replyPacket
	id PacketID
}

// req serialises and enqueues the command, registering the reply waiter
// before the packet can reach the wire.
func (c *Connection) req(cm cmd, args []interface{}) (*pending, error) {
	_, body, err := c.encodeCmdBody(cm, args)
	if err != nil {
		return nil, err
	}
	id, ch, err := c.enqueue(cm, body, true)
	if err != nil {
		return nil, err
	}
	c.log.WithField("id", id).WithField("cmd", cm).Debug("jdwp command enqueued")
	return &pending{c: c, ch: ch, id: id}, nil
}

// wait blocks until the pending reply is received or the connection shuts
// down.
func (p *pending) wait() (*Reply, error) {
	select {
	case reply, ok := <-p.ch:
		if !ok {
			return nil, ErrDisconnected
		}
		if reply.err != ErrNone {
			return nil, reply.err
		}
		return &Reply{ID: reply.id, Data: reply.data}, nil
	case <-p.c.stop:
		// A reply racing shutdown may still be buffered.
		select {
		case reply, ok := <-p.ch:
			if ok {
				if reply.err != ErrNone {
					return nil, reply.err
				}
				return &Reply{ID: reply.id, Data: reply.data}, nil
			}
		default:
		}
		return nil, ErrDisconnected
	}
}

// WaitForReply blocks until the reply for a packet previously sent with
// SendAsync arrives, claiming it if it was already parked.
func (c *Connection) WaitForReply(id PacketID) (*Reply, error) {
	c.replyMu.Lock()
	if reply, ok := c.parked[id]; ok {
		delete(c.parked, id)
		c.replyMu.Unlock()
		if reply.err != ErrNone {
			return nil, reply.err
		}
		return &Reply{ID: reply.id, Data: reply.data}, nil
	}
	ch := make(chan replyPacket, 1)
	c.waiters[id] = ch
	c.replyMu.Unlock()
	p := &pending{c: c, ch: ch, id: id}
	return p.wait()
}

// get sends the specified command and waits for the reply, handing its body
// to parse. A nil parse discards the body.
func (c *Connection) get(cm cmd, args []interface{}, parse func(r binary.Reader) error) error {
	p, err := c.req(cm, args)
	if err != nil {
		return err
	}
	reply, err := p.wait()
	if err != nil {
		return err
	}
	if parse == nil {
		return nil
	}
	r := endianReader(bytes.NewReader(reply.Data))
	if err := parse(r); err != nil {
		return err
	}
	return asTruncated(r.Error())
}
