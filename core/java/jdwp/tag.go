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

import "fmt"

// Tag is a single byte naming the runtime type of a value on the wire.
type Tag uint8

const (
	// TagArray is the tag for an array object value.
	TagArray = Tag('[')
	// TagByte is the tag for a byte value.
	TagByte = Tag('B')
	// TagChar is the tag for a 16-bit character value.
	TagChar = Tag('C')
	// TagObject is the tag for an object reference value.
	TagObject = Tag('L')
	// TagFloat is the tag for a 32-bit floating-point value.
	TagFloat = Tag('F')
	// TagDouble is the tag for a 64-bit floating-point value.
	TagDouble = Tag('D')
	// TagInt is the tag for a 32-bit signed integer value.
	TagInt = Tag('I')
	// TagLong is the tag for a 64-bit signed integer value.
	TagLong = Tag('J')
	// TagShort is the tag for a 16-bit signed integer value.
	TagShort = Tag('S')
	// TagVoid is the tag for a void value. Void values carry no payload.
	TagVoid = Tag('V')
	// TagBoolean is the tag for a boolean value.
	TagBoolean = Tag('Z')
	// TagString is the tag for a string object value.
	TagString = Tag('s')
	// TagThread is the tag for a thread object value.
	TagThread = Tag('t')
	// TagThreadGroup is the tag for a thread group object value.
	TagThreadGroup = Tag('g')
	// TagClassLoader is the tag for a class loader object value.
	TagClassLoader = Tag('l')
	// TagClassObject is the tag for a class object value.
	TagClassObject = Tag('c')
)

// isObject reports whether values carrying this tag are object references.
// Array region elements are tagged when, and only when, the region's declared
// tag is an object kind.
func (t Tag) isObject() bool {
	switch t {
	case TagArray, TagObject, TagString, TagThread, TagThreadGroup,
		TagClassLoader, TagClassObject:
		return true
	default:
		return false
	}
}

// valid reports whether t is one of the tags listed in the specification.
func (t Tag) valid() bool {
	switch t {
	case TagArray, TagByte, TagChar, TagObject, TagFloat, TagDouble, TagInt,
		TagLong, TagShort, TagVoid, TagBoolean, TagString, TagThread,
		TagThreadGroup, TagClassLoader, TagClassObject:
		return true
	default:
		return false
	}
}

func (t Tag) String() string {
	switch t {
	case TagArray:
		return "Array"
	case TagByte:
		return "Byte"
	case TagChar:
		return "Char"
	case TagObject:
		return "Object"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagShort:
		return "Short"
	case TagVoid:
		return "Void"
	case TagBoolean:
		return "Boolean"
	case TagString:
		return "String"
	case TagThread:
		return "Thread"
	case TagThreadGroup:
		return "ThreadGroup"
	case TagClassLoader:
		return "ClassLoader"
	case TagClassObject:
		return "ClassObject"
	default:
		return fmt.Sprintf("Tag<%d>", uint8(t))
	}
}
