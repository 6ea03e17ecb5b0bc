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

// GetThreadGroupName returns the name of the specified thread group.
func (c *Connection) GetThreadGroupName(id ThreadGroupID) (string, error) {
	var res string
	err := c.get(cmdThreadGroupReferenceName, []interface{}{id},
		func(r binary.Reader) error {
			res = readString(r)
			return nil
		})
	return res, err
}

// GetThreadGroupParent returns the parent of the specified thread group.
func (c *Connection) GetThreadGroupParent(id ThreadGroupID) (ThreadGroupID, error) {
	var res ThreadGroupID
	err := c.get(cmdThreadGroupReferenceParent, []interface{}{id},
		func(r binary.Reader) error {
			res = ThreadGroupID(readObjectID(r, &c.sizes))
			return nil
		})
	return res, err
}

// ThreadGroupChildren holds the direct children of a thread group.
type ThreadGroupChildren struct {
	Threads []ThreadID
	Groups  []ThreadGroupID
}

// GetThreadGroupChildren returns the live threads and subgroups directly
// contained in the specified group.
func (c *Connection) GetThreadGroupChildren(id ThreadGroupID) (ThreadGroupChildren, error) {
	var res ThreadGroupChildren
	err := c.get(cmdThreadGroupReferenceChildren, []interface{}{id},
		func(r binary.Reader) error {
			threads := int(r.Int32())
			res.Threads = make([]ThreadID, 0, threads)
			for i := 0; i < threads && r.Error() == nil; i++ {
				res.Threads = append(res.Threads, ThreadID(readObjectID(r, &c.sizes)))
			}
			groups := int(r.Int32())
			res.Groups = make([]ThreadGroupID, 0, groups)
			for i := 0; i < groups && r.Error() == nil; i++ {
				res.Groups = append(res.Groups, ThreadGroupID(readObjectID(r, &c.sizes)))
			}
			return nil
		})
	return res, err
}
