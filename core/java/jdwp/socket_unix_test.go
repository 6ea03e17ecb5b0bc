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

//go:build unix

package jdwp

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollReadable(t *testing.T) {
	write := make(chan struct{})
	addr := listen(t, func(conn net.Conn) {
		if !echoHandshake(t, conn) {
			return
		}
		<-write
		conn.Write([]byte{0x42})
		io.Copy(io.Discard, conn)
	})

	sock, err := DialSocket(context.Background(), addr)
	require.NoError(t, err)
	defer sock.Close()

	ready, err := sock.PollReadable()
	require.NoError(t, err)
	assert.False(t, ready, "nothing written yet")

	close(write)
	require.Eventually(t, func() bool {
		ready, err := sock.PollReadable()
		return err == nil && ready
	}, 5*time.Second, 10*time.Millisecond)

	got, err := sock.ReadExact(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x42}, got)
}

func TestPollReadableAfterClose(t *testing.T) {
	addr := listen(t, func(conn net.Conn) {
		if !echoHandshake(t, conn) {
			return
		}
		io.Copy(io.Discard, conn)
	})

	sock, err := DialSocket(context.Background(), addr)
	require.NoError(t, err)
	require.NoError(t, sock.Close())
	_, err = sock.PollReadable()
	assert.ErrorIs(t, err, ErrDisconnected)
}
