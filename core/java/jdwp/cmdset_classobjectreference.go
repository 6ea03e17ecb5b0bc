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

// GetReflectedType returns the reference type reflected by the specified
// class object.
func (c *Connection) GetReflectedType(id ClassObjectID) (ObjectType, error) {
	var res ObjectType
	err := c.get(cmdClassObjectReferenceReflectedType, []interface{}{id},
		func(r binary.Reader) error {
			res.Kind = TypeTag(r.Uint8())
			res.Type = readReferenceTypeID(r, &c.sizes)
			return nil
		})
	return res, err
}
