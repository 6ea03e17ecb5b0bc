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

// InvokeResult holds the outcome of a method invocation: the returned value,
// and the thrown exception if the invocation completed abruptly.
type InvokeResult struct {
	Result    Value
	Exception TaggedObjectID
}

// NewInstanceResult holds the outcome of a constructor invocation.
type NewInstanceResult struct {
	Result    TaggedObjectID
	Exception TaggedObjectID
}

// GetSuperclass returns the immediate superclass of class.
func (c *Connection) GetSuperclass(class ClassID) (ClassID, error) {
	var res ClassID
	err := c.get(cmdClassTypeSuperclass, []interface{}{class},
		func(r binary.Reader) error {
			res = ClassID(readReferenceTypeID(r, &c.sizes))
			return nil
		})
	return res, err
}

// SetStaticFieldValues assigns the given static fields of class. The values
// travel untagged: each field's declared type dictates its width.
func (c *Connection) SetStaticFieldValues(class ClassID, assignments []FieldAssignment) error {
	return c.get(cmdClassTypeSetValues, []interface{}{class, assignments}, nil)
}

// InvokeStaticMethod invokes the specified static method.
func (c *Connection) InvokeStaticMethod(class ClassID, method MethodID, thread ThreadID, options InvokeOptions, args ...Value) (InvokeResult, error) {
	if args == nil {
		args = []Value{}
	}
	var res InvokeResult
	err := c.get(cmdClassTypeInvokeMethod,
		[]interface{}{class, thread, method, args, int(options)},
		func(r binary.Reader) error {
			res.Result = readValue(r, &c.sizes)
			res.Exception = readTaggedObjectID(r, &c.sizes)
			return nil
		})
	return res, err
}

// NewInstance constructs a new instance of class using the given
// constructor.
func (c *Connection) NewInstance(class ClassID, constructor MethodID, thread ThreadID, options InvokeOptions, args ...Value) (NewInstanceResult, error) {
	if args == nil {
		args = []Value{}
	}
	var res NewInstanceResult
	err := c.get(cmdClassTypeNewInstance,
		[]interface{}{class, thread, constructor, args, int(options)},
		func(r binary.Reader) error {
			res.Result = readTaggedObjectID(r, &c.sizes)
			res.Exception = readTaggedObjectID(r, &c.sizes)
			return nil
		})
	return res, err
}
