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

// ObjectType describes a Java type.
type ObjectType struct {
	Kind TypeTag
	Type ReferenceTypeID
}

// GetObjectType returns the type of the specified object.
func (c *Connection) GetObjectType(object ObjectID) (ObjectType, error) {
	var res ObjectType
	err := c.get(cmdObjectReferenceReferenceType, []interface{}{object},
		func(r binary.Reader) error {
			res.Kind = TypeTag(r.Uint8())
			res.Type = readReferenceTypeID(r, &c.sizes)
			return nil
		})
	return res, err
}

// GetFieldValues returns the values of all the instance fields.
func (c *Connection) GetFieldValues(obj ObjectID, fields ...FieldID) ([]Value, error) {
	var res []Value
	err := c.get(cmdObjectReferenceGetValues, []interface{}{obj, fields},
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

// SetFieldValues assigns the given instance fields of obj. The values travel
// untagged: each field's declared type dictates its width.
func (c *Connection) SetFieldValues(obj ObjectID, assignments []FieldAssignment) error {
	return c.get(cmdObjectReferenceSetValues, []interface{}{obj, assignments}, nil)
}

// InvokeMethod invokes the specified instance method.
func (c *Connection) InvokeMethod(object ObjectID, class ClassID, method MethodID, thread ThreadID, options InvokeOptions, args ...Value) (InvokeResult, error) {
	if args == nil {
		args = []Value{}
	}
	var res InvokeResult
	err := c.get(cmdObjectReferenceInvokeMethod,
		[]interface{}{object, thread, class, method, args, int(options)},
		func(r binary.Reader) error {
			res.Result = readValue(r, &c.sizes)
			res.Exception = readTaggedObjectID(r, &c.sizes)
			return nil
		})
	return res, err
}

// DisableGC disables garbage collection for the specified object.
func (c *Connection) DisableGC(object ObjectID) error {
	return c.get(cmdObjectReferenceDisableCollection, []interface{}{object}, nil)
}

// EnableGC enables garbage collection for the specified object.
func (c *Connection) EnableGC(object ObjectID) error {
	return c.get(cmdObjectReferenceEnableCollection, []interface{}{object}, nil)
}

// IsCollected reports whether the specified object has been garbage
// collected.
func (c *Connection) IsCollected(object ObjectID) (bool, error) {
	var res bool
	err := c.get(cmdObjectReferenceIsCollected, []interface{}{object},
		func(r binary.Reader) error {
			res = r.Bool()
			return nil
		})
	return res, err
}
