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

// GetThisObject returns the this object for the specified thread and stack
// frame.
func (c *Connection) GetThisObject(thread ThreadID, frame FrameID) (TaggedObjectID, error) {
	var res TaggedObjectID
	err := c.get(cmdStackFrameThisObject, []interface{}{thread, frame},
		func(r binary.Reader) error {
			res = readTaggedObjectID(r, &c.sizes)
			return nil
		})
	return res, err
}

// VariableRequest names a variable slot to fetch, with the signature byte of
// its declared type.
type VariableRequest struct {
	Index int
	Tag   uint8
}

// GetValues returns the values of local variables in the given frame, based
// on their slots.
func (c *Connection) GetValues(thread ThreadID, frame FrameID, slots []VariableRequest) ([]Value, error) {
	var res []Value
	err := c.get(cmdStackFrameGetValues, []interface{}{thread, frame, slots},
		func(r binary.Reader) error {
			count := int(r.Int32())
			res = make([]Value, 0, count)
			for i := 0; i < count && r.Error() == nil; i++ {
				res = append(res, readValue(r, &c.sizes))
			}
			return nil
		})
	return res, err
}

// VariableAssignmentRequest pairs a variable slot with the value to store in
// it.
type VariableAssignmentRequest struct {
	Index int
	Value Value
}

// SetValues sets the values of local variables in the given frame.
func (c *Connection) SetValues(thread ThreadID, frame FrameID, slots []VariableAssignmentRequest) error {
	return c.get(cmdStackFrameSetValues, []interface{}{thread, frame, slots}, nil)
}

// PopFrames pops all frames up to, and including, the given frame.
func (c *Connection) PopFrames(thread ThreadID, frame FrameID) error {
	return c.get(cmdStackFramePopFrames, []interface{}{thread, frame}, nil)
}
