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

import (
	"fmt"

	"github.com/chessturo/Roastery/core/data/binary"
)

// Value is a value read from or written to the VM. The dynamic type names
// the runtime type: byte, bool, Char, int16, int, int64, float32, float64,
// ObjectID, ThreadID, ThreadGroupID, StringID, ClassLoaderID, ClassObjectID,
// ArrayID, or nil for void. On the wire a tagged value is prefixed with the
// one-byte Tag implied by its dynamic type.
type Value interface{}

// ArrayRegion is a run of array elements sharing a declared element tag.
// Elements of an object-typed region are individually tagged on the wire;
// elements of a primitive region are untagged values of the declared tag.
type ArrayRegion struct {
	Tag    Tag
	Values []Value
}

// tagOf returns the Tag implied by the dynamic type of v.
func tagOf(v Value) (Tag, error) {
	switch v.(type) {
	case ArrayID:
		return TagArray, nil
	case byte:
		return TagByte, nil
	case Char:
		return TagChar, nil
	case ObjectID:
		return TagObject, nil
	case float32:
		return TagFloat, nil
	case float64:
		return TagDouble, nil
	case int, int32:
		return TagInt, nil
	case int16:
		return TagShort, nil
	case int64:
		return TagLong, nil
	case nil:
		return TagVoid, nil
	case bool:
		return TagBoolean, nil
	case StringID:
		return TagString, nil
	case ThreadID:
		return TagThread, nil
	case ThreadGroupID:
		return TagThreadGroup, nil
	case ClassLoaderID:
		return TagClassLoader, nil
	case ClassObjectID:
		return TagClassObject, nil
	default:
		return 0, fmt.Errorf("no tag for value of type %T", v)
	}
}

// writeValue writes v as a tagged value: the tag byte implied by v's dynamic
// type, then the untagged payload.
func writeValue(w binary.Writer, s *IDSizes, v Value) {
	tag, err := tagOf(v)
	if err != nil {
		w.SetError(err)
		return
	}
	w.Uint8(uint8(tag))
	writeUntaggedValue(w, s, v)
}

// writeUntaggedValue writes just the payload bytes of v. Void writes
// nothing.
func writeUntaggedValue(w binary.Writer, s *IDSizes, v Value) {
	switch v := v.(type) {
	case nil:
	case byte:
		w.Uint8(v)
	case bool:
		w.Bool(v)
	case Char:
		w.Int16(int16(v))
	case int16:
		w.Int16(v)
	case int:
		w.Int32(int32(v))
	case int32:
		w.Int32(v)
	case int64:
		w.Int64(v)
	case float32:
		w.Float32(v)
	case float64:
		w.Float64(v)
	case ObjectID:
		writeObjectID(w, s, v)
	case ThreadID:
		writeObjectID(w, s, ObjectID(v))
	case ThreadGroupID:
		writeObjectID(w, s, ObjectID(v))
	case StringID:
		writeObjectID(w, s, ObjectID(v))
	case ClassLoaderID:
		writeObjectID(w, s, ObjectID(v))
	case ClassObjectID:
		writeObjectID(w, s, ObjectID(v))
	case ArrayID:
		writeObjectID(w, s, ObjectID(v))
	default:
		w.SetError(fmt.Errorf("cannot encode value of type %T", v))
	}
}

// readValue reads a tag byte then the untagged payload it dictates.
func readValue(r binary.Reader, s *IDSizes) Value {
	tag := Tag(r.Uint8())
	if r.Error() != nil {
		return nil
	}
	return readUntaggedValue(r, s, tag)
}

// readUntaggedValue reads the payload of a value whose type is dictated by
// tag. Void has a zero-byte payload.
func readUntaggedValue(r binary.Reader, s *IDSizes, tag Tag) Value {
	switch tag {
	case TagVoid:
		return nil
	case TagByte:
		return r.Uint8()
	case TagBoolean:
		return r.Bool()
	case TagChar:
		return Char(r.Int16())
	case TagShort:
		return r.Int16()
	case TagInt:
		return int(r.Int32())
	case TagLong:
		return r.Int64()
	case TagFloat:
		return r.Float32()
	case TagDouble:
		return r.Float64()
	case TagObject:
		return readObjectID(r, s)
	case TagThread:
		return ThreadID(readObjectID(r, s))
	case TagThreadGroup:
		return ThreadGroupID(readObjectID(r, s))
	case TagString:
		return StringID(readObjectID(r, s))
	case TagClassLoader:
		return ClassLoaderID(readObjectID(r, s))
	case TagClassObject:
		return ClassObjectID(readObjectID(r, s))
	case TagArray:
		return ArrayID(readObjectID(r, s))
	default:
		r.SetError(ErrInvalidTag)
		return nil
	}
}

// writeArrayRegion writes tag, 4-byte count, then the elements: tagged when
// the region's tag names an object type, untagged otherwise.
func writeArrayRegion(w binary.Writer, s *IDSizes, v ArrayRegion) {
	w.Uint8(uint8(v.Tag))
	w.Uint32(uint32(len(v.Values)))
	for _, el := range v.Values {
		if v.Tag.isObject() {
			writeValue(w, s, el)
		} else {
			writeUntaggedValue(w, s, el)
		}
	}
}

// readArrayRegion mirrors writeArrayRegion.
func readArrayRegion(r binary.Reader, s *IDSizes) ArrayRegion {
	out := ArrayRegion{Tag: Tag(r.Uint8())}
	if r.Error() != nil {
		return out
	}
	if !out.Tag.valid() {
		r.SetError(ErrInvalidTag)
		return out
	}
	count := int(r.Uint32())
	for i := 0; i < count && r.Error() == nil; i++ {
		var el Value
		if out.Tag.isObject() {
			el = readValue(r, s)
		} else {
			el = readUntaggedValue(r, s, out.Tag)
		}
		out.Values = append(out.Values, el)
	}
	return out
}
