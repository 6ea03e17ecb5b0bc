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

// Package jdwp implements types to communicate using the the Java Debug Wire
// Protocol.
//
// A Connection multiplexes a single TCP stream between a writer goroutine,
// which drains an outbound packet queue, and a reader goroutine, which
// correlates reply packets with their commands and fans composite events out
// to registered Handlers.
package jdwp

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chessturo/Roastery/core/app/crash"
	"github.com/chessturo/Roastery/core/event/task"
)

// connState is the lifecycle state of a Connection.
type connState int32

const (
	stateConnecting = connState(iota)
	stateProbingSizes
	stateActive
	stateClosing
	stateClosed
)

func (s connState) String() string {
	switch s {
	case stateConnecting:
		return "connecting"
	case stateProbingSizes:
		return "probing-sizes"
	case stateActive:
		return "active"
	case stateClosing:
		return "closing"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// transport is the byte stream a Connection runs over. *Socket implements
// it; tests substitute in-memory pipes.
type transport interface {
	io.Reader
	io.Writer
	Close() error
}

// options collects the optional knobs of Dial and Open.
type options struct {
	log              *logrus.Entry
	handshakeTimeout time.Duration
}

// Option configures a Connection or Socket.
type Option func(*options)

// WithLogger directs the connection's logging to log. The default discards
// everything.
func WithLogger(log *logrus.Entry) Option {
	return func(o *options) { o.log = log }
}

// WithHandshakeTimeout bounds the time DialSocket waits for the peer to echo
// the handshake.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(o *options) { o.handshakeTimeout = d }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.log = logrus.NewEntry(l)
	}
	return o
}

// Connection represents a JDWP connection.
type Connection struct {
	transport transport
	log       *logrus.Entry

	// sizes is written once, before the connection leaves probing-sizes, and
	// read-only afterwards.
	sizes IDSizes

	idMu         sync.Mutex
	nextPacketID PacketID

	queueMu   sync.Mutex
	queueCond *sync.Cond
	queue     []cmdPacket
	stopping  bool

	replyMu sync.Mutex
	waiters map[PacketID]chan replyPacket
	parked  map[PacketID]replyPacket

	handlerMu sync.Mutex
	handlers  []*Handler

	// deferredMu orders composite packets that arrive before the sizes table
	// is populated.
	deferredMu sync.Mutex
	deferred   []cmdPacket

	stateMu sync.Mutex
	state   connState

	stop       chan struct{}
	stopOnce   sync.Once
	writerDone task.Signal
	readerDone task.Signal
	closeOnce  sync.Once
}

// Dial connects to the JDWP endpoint at addr ("host:port", host defaulting
// to localhost), performs the handshake and the ID-sizes bootstrap, and
// returns the active connection.
func Dial(ctx context.Context, addr string, opts ...Option) (*Connection, error) {
	sock, err := DialSocket(ctx, addr, opts...)
	if err != nil {
		return nil, err
	}
	return newConnection(ctx, sock, buildOptions(opts))
}

// Open creates a Connection using conn for I/O, performing the handshake
// over it first.
func Open(ctx context.Context, conn io.ReadWriteCloser, opts ...Option) (*Connection, error) {
	if err := exchangeHandshakes(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return newConnection(ctx, conn, buildOptions(opts))
}

// newConnection starts the worker pair and blocks until the VM has reported
// its ID sizes. Until that reply arrives no caller-issued command can be
// transmitted, since Dial and Open only return active connections.
func newConnection(ctx context.Context, t transport, o options) (*Connection, error) {
	c := &Connection{
		transport: t,
		log:       o.log,
		waiters:   map[PacketID]chan replyPacket{},
		parked:    map[PacketID]replyPacket{},
		stop:      make(chan struct{}),
		state:     stateProbingSizes,
	}
	c.queueCond = sync.NewCond(&c.queueMu)

	var fireWriterDone, fireReaderDone task.Task
	c.writerDone, fireWriterDone = task.NewSignal()
	c.readerDone, fireReaderDone = task.NewSignal()
	crash.Go(func() {
		defer fireWriterDone(ctx)
		c.send(ctx)
	})
	crash.Go(func() {
		defer fireReaderDone(ctx)
		c.recv(ctx)
	})

	sizes, err := c.GetIDSizes()
	if err != nil {
		c.Close()
		return nil, err
	}
	sizes.populated = true
	if err := sizes.validate(); err != nil {
		c.Close()
		return nil, err
	}

	c.deferredMu.Lock()
	c.sizes = sizes
	c.setState(stateActive)
	deferred := c.deferred
	c.deferred = nil
	c.deferredMu.Unlock()
	for _, p := range deferred {
		c.dispatchComposite(p)
	}
	return c, nil
}

// Sizes returns the ID sizes table reported by the VM.
func (c *Connection) Sizes() IDSizes { return c.sizes }

func (c *Connection) setState(s connState) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.state == stateClosed || (c.state == stateClosing && s != stateClosed) {
		return
	}
	c.log.WithField("state", s).Debug("jdwp connection state")
	c.state = s
}

func (c *Connection) currentState() connState {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

func (c *Connection) active() bool {
	return c.currentState() == stateActive
}

// RegisterHandler appends h to the handler list. h receives all events
// parsed after registration.
func (c *Connection) RegisterHandler(h *Handler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	c.handlers = append(c.handlers, h)
}

// UnregisterHandler removes h from the handler list.
func (c *Connection) UnregisterHandler(h *Handler) {
	c.handlerMu.Lock()
	defer c.handlerMu.Unlock()
	for i, got := range c.handlers {
		if got == h {
			c.handlers = append(c.handlers[:i], c.handlers[i+1:]...)
			return
		}
	}
}

// shutdown moves the connection to closing: both workers are signalled to
// stop and the transport is closed, unblocking any blocked read or write.
// Pending and future waiters resolve with ErrDisconnected.
func (c *Connection) shutdown(err error) {
	c.stopOnce.Do(func() {
		if err != nil && err != ErrDisconnected {
			c.log.WithError(err).Debug("jdwp connection shutting down")
		}
		c.setState(stateClosing)
		c.queueMu.Lock()
		c.stopping = true
		c.queueMu.Unlock()
		c.queueCond.Broadcast()
		close(c.stop)
		c.transport.Close()
	})
}

// Close signals both workers to stop, joins them, closes the transport and
// resolves every pending waiter with ErrDisconnected. Safe to call more than
// once.
func (c *Connection) Close() error {
	c.shutdown(nil)
	c.closeOnce.Do(func() {
		ctx := context.Background()
		c.writerDone.Wait(ctx)
		c.readerDone.Wait(ctx)

		c.replyMu.Lock()
		waiters := c.waiters
		c.waiters = map[PacketID]chan replyPacket{}
		c.parked = map[PacketID]replyPacket{}
		c.replyMu.Unlock()
		for _, ch := range waiters {
			close(ch)
		}
		c.setState(stateClosed)
	})
	return nil
}

// send drains the outbound queue in FIFO order, writing each packet to the
// transport. It runs until the connection shuts down.
func (c *Connection) send(ctx context.Context) {
	for {
		c.queueMu.Lock()
		for len(c.queue) == 0 && !c.stopping {
			c.queueCond.Wait()
		}
		if c.stopping {
			c.queueMu.Unlock()
			return
		}
		p := c.queue[0]
		c.queue = c.queue[1:]
		c.queueMu.Unlock()

		data, err := frame(p)
		if err != nil {
			// Framing cannot fail for packets that passed SendAsync's body
			// checks; treat it as fatal to avoid silently dropping packets.
			c.log.WithError(err).Warn("jdwp failed to frame packet")
			c.shutdown(err)
			return
		}
		if _, err := c.transport.Write(data); err != nil {
			if !task.Stopped(ctx) {
				c.log.WithError(err).Warn("jdwp failed to write packet")
			}
			c.shutdown(err)
			return
		}
		c.log.WithField("id", p.id).Debug("jdwp packet sent")
	}
}

// recv decodes all the incoming reply or command packets, correlating
// replies with their waiters and dispatching composite events. It runs until
// the connection shuts down or an I/O or framing error occurs.
func (c *Connection) recv(ctx context.Context) {
	r := endianReader(c.transport)
	for {
		packet, err := readPacket(r)
		if err != nil {
			select {
			case <-c.stop:
			default:
				if !task.Stopped(ctx) && err != ErrDisconnected && err != io.EOF {
					c.log.WithError(err).Warn("jdwp failed to read packet")
				}
			}
			c.shutdown(err)
			return
		}

		switch packet := packet.(type) {
		case replyPacket:
			c.deliverReply(packet)

		case cmdPacket:
			if packet.cmdSet == cmdSetEvent && packet.cmdID == cmdCompositeEvent {
				c.handleComposite(packet)
				continue
			}
			c.log.WithField("cmdset", packet.cmdSet).WithField("cmd", packet.cmdID).
				Debug("jdwp received unexpected command packet")
		}
	}
}

// deliverReply hands the reply to its registered waiter, or parks it until a
// waiter appears. Parked replies are retained: dropping them would silently
// hide protocol errors.
func (c *Connection) deliverReply(p replyPacket) {
	c.replyMu.Lock()
	ch, ok := c.waiters[p.id]
	if ok {
		delete(c.waiters, p.id)
	} else {
		c.parked[p.id] = p
	}
	c.replyMu.Unlock()
	if ok {
		ch <- p
	} else {
		c.log.WithField("id", p.id).Debug("jdwp reply parked: no waiter")
	}
}

// handleComposite parses and dispatches a composite event packet. Events
// that arrive before the sizes table is populated are deferred and replayed
// once it is.
func (c *Connection) handleComposite(p cmdPacket) {
	c.deferredMu.Lock()
	if !c.active() {
		c.deferred = append(c.deferred, p)
		c.deferredMu.Unlock()
		return
	}
	c.deferredMu.Unlock()
	c.dispatchComposite(p)
}

func (c *Connection) dispatchComposite(p cmdPacket) {
	composite, err := parseComposite(p.data, &c.sizes)
	if err != nil {
		// The stream cannot be safely re-framed after a parse failure.
		c.log.WithError(err).Warn("jdwp failed to parse composite event")
		c.shutdown(err)
		return
	}

	c.handlerMu.Lock()
	handlers := make([]*Handler, len(c.handlers))
	copy(handlers, c.handlers)
	c.handlerMu.Unlock()

	for _, ev := range composite.Events {
		c.log.WithField("kind", ev.Kind()).Debug("jdwp event")
		for _, h := range handlers {
			h.handle(ev)
		}
	}
}
