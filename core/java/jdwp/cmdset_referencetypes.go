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

// GetTypeSignature returns the Java type signature for the specified type.
func (c *Connection) GetTypeSignature(ty ReferenceTypeID) (string, error) {
	var res string
	err := c.get(cmdReferenceTypeSignature, []interface{}{ty},
		func(r binary.Reader) error {
			res = readString(r)
			return nil
		})
	return res, err
}

// GetFields returns all the fields for the specified type.
func (c *Connection) GetFields(ty ReferenceTypeID) (Fields, error) {
	var res Fields
	err := c.get(cmdReferenceTypeFields, []interface{}{ty},
		func(r binary.Reader) error {
			count := int(r.Int32())
			res = make(Fields, 0, count)
			for i := 0; i < count && r.Error() == nil; i++ {
				res = append(res, Field{
					ID:        readFieldID(r, &c.sizes),
					Name:      readString(r),
					Signature: readString(r),
					ModBits:   ModBits(r.Int32()),
				})
			}
			return nil
		})
	return res, err
}

// GetMethods returns all the methods for the specified type.
func (c *Connection) GetMethods(ty ReferenceTypeID) (Methods, error) {
	var res Methods
	err := c.get(cmdReferenceTypeMethods, []interface{}{ty},
		func(r binary.Reader) error {
			count := int(r.Int32())
			res = make(Methods, 0, count)
			for i := 0; i < count && r.Error() == nil; i++ {
				res = append(res, Method{
					ID:        readMethodID(r, &c.sizes),
					Name:      readString(r),
					Signature: readString(r),
					ModBits:   ModBits(r.Int32()),
				})
			}
			return nil
		})
	return res, err
}

// GetStaticFieldValues returns the values of all the requested static fields.
func (c *Connection) GetStaticFieldValues(ty ReferenceTypeID, fields ...FieldID) ([]Value, error) {
	var res []Value
	err := c.get(cmdReferenceTypeGetValues, []interface{}{ty, fields},
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

// GetImplemented returns all the direct interfaces implemented by the
// specified type.
func (c *Connection) GetImplemented(ty ReferenceTypeID) ([]InterfaceID, error) {
	var res []InterfaceID
	err := c.get(cmdReferenceTypeInterfaces, []interface{}{ty},
		func(r binary.Reader) error {
			count := int(r.Int32())
			res = make([]InterfaceID, 0, count)
			for i := 0; i < count && r.Error() == nil; i++ {
				res = append(res, InterfaceID(readReferenceTypeID(r, &c.sizes)))
			}
			return nil
		})
	return res, err
}

// GetSourceFile returns the source file name for the specified type.
func (c *Connection) GetSourceFile(ty ReferenceTypeID) (string, error) {
	var res string
	err := c.get(cmdReferenceTypeSourceFile, []interface{}{ty},
		func(r binary.Reader) error {
			res = readString(r)
			return nil
		})
	return res, err
}

// GetStatus returns the current loading status of the specified type.
func (c *Connection) GetStatus(ty ReferenceTypeID) (ClassStatus, error) {
	var res ClassStatus
	err := c.get(cmdReferenceTypeStatus, []interface{}{ty},
		func(r binary.Reader) error {
			res = ClassStatus(r.Int32())
			return nil
		})
	return res, err
}

// GetClassObject returns the class object corresponding to the specified
// type.
func (c *Connection) GetClassObject(ty ReferenceTypeID) (ClassObjectID, error) {
	var res ClassObjectID
	err := c.get(cmdReferenceTypeClassObject, []interface{}{ty},
		func(r binary.Reader) error {
			res = ClassObjectID(readObjectID(r, &c.sizes))
			return nil
		})
	return res, err
}
