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

// GetArrayLength returns the length of the specified array.
func (c *Connection) GetArrayLength(id ArrayID) (int, error) {
	var res int
	err := c.get(cmdArrayReferenceLength, []interface{}{id},
		func(r binary.Reader) error {
			res = int(r.Int32())
			return nil
		})
	return res, err
}

// GetArrayRegion returns length elements of the specified array starting at
// first.
func (c *Connection) GetArrayRegion(id ArrayID, first, length int) (ArrayRegion, error) {
	var res ArrayRegion
	err := c.get(cmdArrayReferenceGetValues, []interface{}{id, first, length},
		func(r binary.Reader) error {
			res = readArrayRegion(r, &c.sizes)
			return nil
		})
	return res, err
}

// GetArrayValues returns the values of the specified array.
func (c *Connection) GetArrayValues(id ArrayID, first, length int) ([]Value, error) {
	region, err := c.GetArrayRegion(id, first, length)
	if err != nil {
		return nil, err
	}
	return region.Values, nil
}

// SetArrayValues sets the values of the specified array, starting at first.
// The values travel untagged: the array's element type dictates their width.
func (c *Connection) SetArrayValues(id ArrayID, first int, values []Value) error {
	return c.get(cmdArrayReferenceSetValues, []interface{}{id, first, values}, nil)
}
