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
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// PollReadable reports whether a read would not block, without consuming any
// data. It never blocks.
func (s *Socket) PollReadable() (bool, error) {
	if s.Closed() {
		return false, ErrDisconnected
	}
	sc, ok := s.conn.(syscall.Conn)
	if !ok {
		return false, errors.New("connection does not expose a file descriptor")
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		return false, errors.Wrap(err, "raw connection")
	}
	var (
		ready   bool
		pollErr error
	)
	if err := raw.Control(func(fd uintptr) {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		for {
			n, err := unix.Poll(fds, 0)
			if err == unix.EINTR {
				continue
			}
			if err != nil {
				pollErr = err
				return
			}
			ready = n > 0 && fds[0].Revents&unix.POLLIN != 0
			return
		}
	}); err != nil {
		return false, errors.Wrap(err, "poll")
	}
	if pollErr != nil {
		return false, errors.Wrap(pollErr, "poll")
	}
	return ready, nil
}
