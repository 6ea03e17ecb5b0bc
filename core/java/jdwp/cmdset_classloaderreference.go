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

// GetVisibleClasses returns all the reference types the specified class
// loader can resolve by name.
func (c *Connection) GetVisibleClasses(loader ClassLoaderID) ([]ObjectType, error) {
	var res []ObjectType
	err := c.get(cmdClassLoaderReferenceVisibleClasses, []interface{}{loader},
		func(r binary.Reader) error {
			count := int(r.Int32())
			res = make([]ObjectType, 0, count)
			for i := 0; i < count && r.Error() == nil; i++ {
				res = append(res, ObjectType{
					Kind: TypeTag(r.Uint8()),
					Type: readReferenceTypeID(r, &c.sizes),
				})
			}
			return nil
		})
	return res, err
}
