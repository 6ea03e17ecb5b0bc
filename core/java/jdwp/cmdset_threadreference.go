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

import "github.com/chessturo/Roastery/core/data/binary"

// GetThreadName returns the name of the specified thread.
func (c *Connection) GetThreadName(id ThreadID) (string, error) {
	var res string
	err := c.get(cmdThreadReferenceName, []interface{}{id},
		func(r binary.Reader) error {
			res = readString(r)
			return nil
		})
	return res, err
}

// Suspend suspends the specified thread.
func (c *Connection) Suspend(id ThreadID) error {
	return c.get(cmdThreadReferenceSuspend, []interface{}{id}, nil)
}

// Resume resumes the specified thread.
func (c *Connection) Resume(id ThreadID) error {
	return c.get(cmdThreadReferenceResume, []interface{}{id}, nil)
}

// GetThreadStatus returns the thread status and suspend status of the
// specified thread.
func (c *Connection) GetThreadStatus(id ThreadID) (ThreadStatus, int, error) {
	var status ThreadStatus
	var suspendStatus int
	err := c.get(cmdThreadReferenceStatus, []interface{}{id},
		func(r binary.Reader) error {
			status = ThreadStatus(r.Int32())
			suspendStatus = int(r.Int32())
			return nil
		})
	return status, suspendStatus, err
}

// GetThreadGroup returns the group of the specified thread.
func (c *Connection) GetThreadGroup(id ThreadID) (ThreadGroupID, error) {
	var res ThreadGroupID
	err := c.get(cmdThreadReferenceThreadGroup, []interface{}{id},
		func(r binary.Reader) error {
			res = ThreadGroupID(readObjectID(r, &c.sizes))
			return nil
		})
	return res, err
}

// FrameInfo describes a single stack frame.
type FrameInfo struct {
	Frame    FrameID
	Location Location
}

// GetFrames returns a number of stack frames.
func (c *Connection) GetFrames(thread ThreadID, start, count int) ([]FrameInfo, error) {
	var res []FrameInfo
	err := c.get(cmdThreadReferenceFrames, []interface{}{thread, start, count},
		func(r binary.Reader) error {
			n := int(r.Int32())
			res = make([]FrameInfo, 0, n)
			for i := 0; i < n && r.Error() == nil; i++ {
				res = append(res, FrameInfo{
					Frame:    readFrameID(r, &c.sizes),
					Location: readLocation(r, &c.sizes),
				})
			}
			return nil
		})
	return res, err
}

// GetFrameCount returns the number of frames on the specified thread's
// stack.
func (c *Connection) GetFrameCount(thread ThreadID) (int, error) {
	var res int
	err := c.get(cmdThreadReferenceFrameCount, []interface{}{thread},
		func(r binary.Reader) error {
			res = int(r.Int32())
			return nil
		})
	return res, err
}

// GetSuspendCount returns the number of pending suspends on the specified
// thread.
func (c *Connection) GetSuspendCount(thread ThreadID) (int, error) {
	var res int
	err := c.get(cmdThreadReferenceSuspendCount, []interface{}{thread},
		func(r binary.Reader) error {
			res = int(r.Int32())
			return nil
		})
	return res, err
}

// Interrupt interrupts the specified thread.
func (c *Connection) Interrupt(thread ThreadID) error {
	return c.get(cmdThreadReferenceInterrupt, []interface{}{thread}, nil)
}
