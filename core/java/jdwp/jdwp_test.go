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
	"context"
	"io"
	"net"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/chessturo/Roastery/core/data/binary"
	"github.com/chessturo/Roastery/core/data/endian"
)

// vmPacket is a command packet as seen by the fake VM.
type vmPacket struct {
	id   PacketID
	set  uint8
	cmd  uint8
	data []byte
}

// fakeVM speaks the server side of the protocol over a net.Conn. It answers
// the IDSizes probe itself; everything else is recorded on received and
// handed to onPacket when set.
type fakeVM struct {
	t        *testing.T
	conn     net.Conn
	sizes    IDSizes
	received chan vmPacket
	onPacket func(p vmPacket)

	writeMu sync.Mutex
}

func newFakeVM(t *testing.T) (io.ReadWriteCloser, *fakeVM) {
	client, server := net.Pipe()
	vm := &fakeVM{
		t:        t,
		conn:     server,
		sizes:    sizes8(),
		received: make(chan vmPacket, 64),
	}
	go vm.serve()
	t.Cleanup(func() { server.Close() })
	return client, vm
}

func (vm *fakeVM) serve() {
	// Handshake.
	got := make([]byte, len(handshake))
	if _, err := io.ReadFull(vm.conn, got); err != nil {
		return
	}
	if !bytes.Equal(got, handshake) {
		vm.conn.Close()
		return
	}
	if _, err := vm.conn.Write(handshake); err != nil {
		return
	}

	r := endian.Reader(vm.conn, endian.Big)
	for {
		length := r.Uint32()
		id := r.Uint32()
		r.Uint8() // flags
		set := r.Uint8()
		cmd := r.Uint8()
		if r.Error() != nil {
			return
		}
		data := make([]byte, length-headerLen)
		r.Data(data)
		if r.Error() != nil {
			return
		}
		p := vmPacket{id: PacketID(id), set: set, cmd: cmd, data: data}

		if set == uint8(cmdSetVirtualMachine) && cmd == uint8(cmdVirtualMachineIDSizes.id) {
			buf := bytes.Buffer{}
			w := endian.Writer(&buf, endian.Big)
			w.Int32(vm.sizes.FieldIDSize)
			w.Int32(vm.sizes.MethodIDSize)
			w.Int32(vm.sizes.ObjectIDSize)
			w.Int32(vm.sizes.ReferenceTypeIDSize)
			w.Int32(vm.sizes.FrameIDSize)
			vm.reply(p.id, 0, buf.Bytes())
			continue
		}

		select {
		case vm.received <- p:
		default:
			vm.t.Error("fake VM receive buffer full")
		}
		if vm.onPacket != nil {
			vm.onPacket(p)
		}
	}
}

// reply writes a reply packet for id.
func (vm *fakeVM) reply(id PacketID, errCode uint16, body []byte) {
	vm.writeMu.Lock()
	defer vm.writeMu.Unlock()
	w := endian.Writer(vm.conn, endian.Big)
	w.Uint32(headerLen + uint32(len(body)))
	w.Uint32(uint32(id))
	w.Uint8(uint8(packetIsReply))
	w.Uint16(errCode)
	w.Data(body)
}

// composite writes an unsolicited composite event packet.
func (vm *fakeVM) composite(body []byte) {
	vm.writeMu.Lock()
	defer vm.writeMu.Unlock()
	w := endian.Writer(vm.conn, endian.Big)
	w.Uint32(headerLen + uint32(len(body)))
	w.Uint32(0x7FFFFFFF)
	w.Uint8(0)
	w.Uint8(uint8(cmdSetEvent))
	w.Uint8(uint8(cmdCompositeEvent))
	w.Data(body)
}

// next returns the next non-bootstrap packet the VM received.
func (vm *fakeVM) next() vmPacket {
	select {
	case p := <-vm.received:
		return p
	case <-time.After(5 * time.Second):
		vm.t.Fatal("timed out waiting for a packet")
		return vmPacket{}
	}
}

func openTestConnection(t *testing.T) (*Connection, *fakeVM) {
	client, vm := newFakeVM(t)
	c, err := Open(context.Background(), client)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, vm
}

func TestOpenBootstrapsSizes(t *testing.T) {
	c, _ := openTestConnection(t)
	sizes := c.Sizes()
	assert.True(t, sizes.Populated())
	assert.Equal(t, int32(8), sizes.ObjectIDSize)
	assert.Equal(t, int32(8), sizes.FrameIDSize)
}

func TestSendAndWaitRepliesInOrder(t *testing.T) {
	c, vm := openTestConnection(t)
	vm.onPacket = func(p vmPacket) {
		vm.reply(p.id, 0, []byte{0xAA, 0xBB})
	}
	reply, err := c.SendAndWait(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, reply.Data)
}

func TestReplyErrorCode(t *testing.T) {
	c, vm := openTestConnection(t)
	vm.onPacket = func(p vmPacket) {
		vm.reply(p.id, uint16(ErrInvalidClass), []byte{0x01})
	}
	_, err := c.SendAndWait(1, 1)
	require.Error(t, err)
	assert.Equal(t, ErrInvalidClass, err)
	assert.Contains(t, err.Error(), "Invalid class")
}

func TestOutOfOrderRepliesAndParking(t *testing.T) {
	c, vm := openTestConnection(t)

	idA, err := c.SendAsync(1, 1)
	require.NoError(t, err)
	idB, err := c.SendAsync(1, 1)
	require.NoError(t, err)
	require.Less(t, idA, idB)

	// Wait for both to arrive, then answer in reverse order.
	pA, pB := vm.next(), vm.next()
	require.Equal(t, idA, pA.id)
	require.Equal(t, idB, pB.id)
	vm.reply(idB, 0, []byte{0xB0})
	vm.reply(idA, 0, []byte{0xA0})

	replyA, err := c.WaitForReply(idA)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xA0}, replyA.Data)
	replyB, err := c.WaitForReply(idB)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xB0}, replyB.Data)
}

func TestConcurrentSendAsync(t *testing.T) {
	c, vm := openTestConnection(t)

	const workers = 16
	ids := make([]PacketID, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			id, err := c.SendAsync(1, 9)
			ids[i] = id
			return err
		})
	}
	require.NoError(t, g.Wait())

	// All IDs are distinct.
	seen := map[PacketID]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate packet ID %v", id)
		seen[id] = true
	}

	// Bytes reach the wire in ID order: monotonic enqueue implies FIFO
	// transmission.
	var wire []PacketID
	for i := 0; i < workers; i++ {
		wire = append(wire, vm.next().id)
	}
	assert.True(t, sort.SliceIsSorted(wire, func(i, j int) bool {
		return wire[i] < wire[j]
	}), "wire order %v not monotonic", wire)
}

func TestCloseUnblocksWaiters(t *testing.T) {
	c, _ := openTestConnection(t)

	errs := make(chan error, 1)
	go func() {
		_, err := c.SendAndWait(1, 1) // the fake VM never answers
		errs <- err
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, c.Close())

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrDisconnected)
	case <-time.After(5 * time.Second):
		t.Fatal("waiter was not unblocked by Close")
	}
}

func TestPeerCloseDisconnects(t *testing.T) {
	c, vm := openTestConnection(t)
	vm.conn.Close()

	// The reader notices and moves the pipeline to closing; every operation
	// from then on fails with ErrDisconnected.
	require.Eventually(t, func() bool {
		_, err := c.SendAndWait(1, 1)
		return err == ErrDisconnected
	}, 5*time.Second, 10*time.Millisecond)
}

func TestSendAfterCloseFails(t *testing.T) {
	c, _ := openTestConnection(t)
	require.NoError(t, c.Close())
	_, err := c.SendAsync(1, 1)
	assert.ErrorIs(t, err, ErrDisconnected)
	_, err = c.SendAndWait(1, 1)
	assert.ErrorIs(t, err, ErrDisconnected)
}

func TestEventDispatchToHandlers(t *testing.T) {
	c, vm := openTestConnection(t)

	events := make(chan Event, 4)
	c.RegisterHandler(&Handler{
		OnThreadStart: func(e *EventThreadStart) { events <- e },
	})

	vm.composite(buildComposite(t, vm.sizes, SuspendNone, threadStartRecord(3, 9)))

	select {
	case e := <-events:
		ts := e.(*EventThreadStart)
		assert.Equal(t, EventRequestID(3), ts.Request)
		assert.Equal(t, ThreadID(9), ts.Thread)
	case <-time.After(5 * time.Second):
		t.Fatal("event was not dispatched")
	}
}

func TestCompositeOrderAcrossHandlers(t *testing.T) {
	c, vm := openTestConnection(t)

	loc := Location{Type: Class, Class: 1, Method: 2, Location: 3}
	done := make(chan []EventKind, 1)
	var order []EventKind
	c.RegisterHandler(&Handler{OnEvent: func(e Event) {
		order = append(order, e.Kind())
		if len(order) == 3 {
			done <- order
		}
	}})

	vm.composite(buildComposite(t, vm.sizes, SuspendAll,
		breakpointRecord(1, 2, loc),
		threadStartRecord(3, 4),
		breakpointRecord(5, 6, loc),
	))

	select {
	case got := <-done:
		assert.Equal(t, []EventKind{Breakpoint, ThreadStart, Breakpoint}, got)
	case <-time.After(5 * time.Second):
		t.Fatal("composite was not fully dispatched")
	}
}

func TestBadCompositeClosesConnection(t *testing.T) {
	c, vm := openTestConnection(t)

	body := buildComposite(t, vm.sizes, SuspendNone, func(w *compositeWriter) {
		w.w.Uint8(200) // unknown event kind
	})
	vm.composite(body)

	require.Eventually(t, func() bool {
		_, err := c.SendAndWait(1, 1)
		return err == ErrDisconnected
	}, 5*time.Second, 10*time.Millisecond)
}

func TestGetVersion(t *testing.T) {
	c, vm := openTestConnection(t)
	vm.onPacket = func(p vmPacket) {
		if p.set != 1 || p.cmd != 1 {
			return
		}
		buf := bytes.Buffer{}
		w := endian.Writer(&buf, endian.Big)
		writeVMString(w, "Fake Debug Interface v1")
		w.Int32(1)
		w.Int32(8)
		writeVMString(w, "1.8.0")
		writeVMString(w, "Fake VM")
		vm.reply(p.id, 0, buf.Bytes())
	}

	version, err := c.GetVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version.JDWPMajor)
	assert.Equal(t, 8, version.JDWPMinor)
	assert.Equal(t, "Fake VM", version.Name)
}

func TestGetThreadNameEncodesID(t *testing.T) {
	c, vm := openTestConnection(t)
	vm.onPacket = func(p vmPacket) {
		if p.set != uint8(cmdSetThreadReference) {
			return
		}
		// The request body is the thread ID at the probed width.
		if assert.Equal(vm.t, 8, len(p.data)) {
			assert.Equal(vm.t, []byte{0, 0, 0, 0, 0, 0, 0, 0x2A}, p.data)
		}
		buf := bytes.Buffer{}
		w := endian.Writer(&buf, endian.Big)
		writeVMString(w, "main")
		vm.reply(p.id, 0, buf.Bytes())
	}

	name, err := c.GetThreadName(ThreadID(0x2A))
	require.NoError(t, err)
	assert.Equal(t, "main", name)
}

func TestSetEventRoundTrip(t *testing.T) {
	c, vm := openTestConnection(t)
	vm.onPacket = func(p vmPacket) {
		if p.set != uint8(cmdSetEventRequest) {
			return
		}
		buf := bytes.Buffer{}
		w := endian.Writer(&buf, endian.Big)
		w.Int32(77)
		vm.reply(p.id, 0, buf.Bytes())
	}

	id, err := c.SetEvent(Breakpoint, SuspendAll, CountEventModifier(1))
	require.NoError(t, err)
	assert.Equal(t, EventRequestID(77), id)
}

func writeVMString(w binary.Writer, s string) {
	w.Uint32(uint32(len(s)))
	w.Data([]byte(s))
}
