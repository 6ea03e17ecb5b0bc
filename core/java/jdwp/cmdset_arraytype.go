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

// NewArrayInstance creates a new array of the specified type and length.
func (c *Connection) NewArrayInstance(ty ArrayTypeID, length int) (TaggedObjectID, error) {
	var res TaggedObjectID
	err := c.get(cmdArrayTypeNewInstance, []interface{}{ty, length},
		func(r binary.Reader) error {
			res = readTaggedObjectID(r, &c.sizes)
			return nil
		})
	return res, err
}
