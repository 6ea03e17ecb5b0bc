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
	"context"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// handshake is the literal byte sequence each side must send, and receive,
// before any packet flows.
var handshake = []byte("JDWP-Handshake")

// Socket owns the TCP stream to the VM. Reads and writes each hold their own
// mutex, so a write can proceed while a read is blocked. Once the peer
// closes, or a read or write fails, the socket is permanently closed and all
// further operations fail with ErrDisconnected.
//
// Broken-pipe writes surface as errors rather than signals: the Go runtime
// only forwards SIGPIPE for writes to stdout and stderr, so no process-wide
// signal handling is needed.
type Socket struct {
	conn net.Conn
	log  *logrus.Entry

	readMu  sync.Mutex
	writeMu sync.Mutex

	closed int32 // atomic; non-zero once permanently closed
}

// DialSocket connects to the JDWP endpoint at addr ("host:port", host
// defaulting to localhost) and performs the handshake. The dial is
// dual-stack: IPv6 endpoints are preferred, IPv4 endpoints are used as a
// fallback.
func DialSocket(ctx context.Context, addr string, opts ...Option) (*Socket, error) {
	o := buildOptions(opts)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "bad address %q", addr)
	}
	if host == "" {
		host = "localhost"
	}
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %v", addr)
	}
	s := &Socket{conn: conn, log: o.log}
	if o.handshakeTimeout > 0 {
		conn.SetDeadline(time.Now().Add(o.handshakeTimeout))
	}
	if err := exchangeHandshakes(conn); err != nil {
		conn.Close()
		return nil, err
	}
	conn.SetDeadline(time.Time{})
	s.log.WithField("addr", conn.RemoteAddr()).Debug("jdwp handshake complete")
	return s, nil
}

// exchangeHandshakes sends the handshake and requires the peer to echo it.
func exchangeHandshakes(conn io.ReadWriter) error {
	if _, err := conn.Write(handshake); err != nil {
		return errors.Wrap(err, "send handshake")
	}
	ok, err := expect(conn, handshake)
	if err != nil {
		return errors.Wrap(err, "receive handshake")
	}
	if !ok {
		return ErrHandshake
	}
	return nil
}

// expect reads conn, expecting the specified sequence of bytes. If the read
// data doesn't match, then the function returns immediately with false.
func expect(conn io.Reader, expected []byte) (bool, error) {
	got := make([]byte, len(expected))
	for len(expected) > 0 {
		n, err := conn.Read(got)
		if err != nil {
			return false, err
		}
		for i := 0; i < n; i++ {
			if got[i] != expected[i] {
				return false, nil
			}
		}
		got, expected = got[n:], expected[n:]
	}
	return true, nil
}

// Closed reports whether the socket has entered its permanently-closed state.
func (s *Socket) Closed() bool {
	return atomic.LoadInt32(&s.closed) != 0
}

func (s *Socket) markClosed() {
	atomic.StoreInt32(&s.closed, 1)
}

// classify maps transport-level errors onto the error taxonomy: end-of-file
// and broken-pipe conditions become ErrDisconnected, anything else is an I/O
// error, wrapped.
func classify(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, syscall.ECONNRESET):
		return ErrDisconnected
	default:
		return errors.Wrap(err, op)
	}
}

// Read implements io.Reader under the socket's read mutex.
func (s *Socket) Read(p []byte) (int, error) {
	s.readMu.Lock()
	defer s.readMu.Unlock()
	if s.Closed() {
		return 0, ErrDisconnected
	}
	n, err := s.conn.Read(p)
	if err != nil {
		s.markClosed()
		return n, classify(err, "read")
	}
	return n, nil
}

// ReadExact reads exactly n bytes, blocking until they arrive or the peer
// closes.
func (s *Socket) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := s.ReadFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadFull fills p, blocking until every byte arrives or the peer closes.
func (s *Socket) ReadFull(p []byte) error {
	s.readMu.Lock()
	defer s.readMu.Unlock()
	if s.Closed() {
		return ErrDisconnected
	}
	if _, err := io.ReadFull(s.conn, p); err != nil {
		s.markClosed()
		return classify(err, "read")
	}
	return nil
}

// Write writes p in its entirety.
func (s *Socket) Write(p []byte) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.Closed() {
		return 0, ErrDisconnected
	}
	n, err := s.conn.Write(p)
	if err != nil {
		s.markClosed()
		return n, classify(err, "write")
	}
	return n, nil
}

// Close shuts the socket down. Safe to call more than once.
func (s *Socket) Close() error {
	s.markClosed()
	return s.conn.Close()
}
