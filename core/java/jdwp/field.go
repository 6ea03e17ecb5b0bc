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
	"io"
	"reflect"

	"github.com/chessturo/Roastery/core/data/binary"
)

// fieldKind enumerates every wire form a packet field can take. A field's
// serialised length is fully determined by its kind plus, for the
// variable-width identifier kinds, the connection's ID sizes table.
type fieldKind uint8

const (
	fieldByte fieldKind = iota
	fieldBoolean
	fieldChar
	fieldShort
	fieldInt
	fieldLong
	fieldFloat
	fieldDouble
	fieldObjectID
	fieldThreadID
	fieldThreadGroupID
	fieldStringID
	fieldClassLoaderID
	fieldClassObjectID
	fieldArrayID
	fieldReferenceTypeID
	fieldClassID
	fieldInterfaceID
	fieldArrayTypeID
	fieldMethodID
	fieldFieldID
	fieldFrameID
	fieldTaggedObjectID
	fieldLocation
	fieldString
	fieldValue
	fieldUntaggedValue
	fieldArrayRegion
)

// asTruncated maps end-of-stream errors to ErrTruncated. A declared length
// that runs past the remaining data always surfaces this way.
func asTruncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrTruncated
	}
	return err
}

// checkIDWidth fails with ErrIDTooWide when v has set bits above the low
// width bytes.
func checkIDWidth(v uint64, width int32) error {
	if width < 8 && v>>(uint(width)*8) != 0 {
		return ErrIDTooWide
	}
	return nil
}

// writeID writes the low width bytes of v, most-significant first, rejecting
// values that do not fit.
func writeID(w binary.Writer, width int32, err error, v uint64) {
	if err != nil {
		w.SetError(err)
		return
	}
	if err := checkIDWidth(v, width); err != nil {
		w.SetError(err)
		return
	}
	binary.WriteUintBytes(w, width, v)
}

// readID reads a width-byte identifier, zero-extending to 64 bits.
func readID(r binary.Reader, width int32, err error) uint64 {
	if err != nil {
		r.SetError(err)
		return 0
	}
	return binary.ReadUintBytes(r, width)
}

func writeObjectID(w binary.Writer, s *IDSizes, v ObjectID) {
	width, err := s.object()
	writeID(w, width, err, uint64(v))
}

func readObjectID(r binary.Reader, s *IDSizes) ObjectID {
	width, err := s.object()
	return ObjectID(readID(r, width, err))
}

func writeReferenceTypeID(w binary.Writer, s *IDSizes, v ReferenceTypeID) {
	width, err := s.referenceType()
	writeID(w, width, err, uint64(v))
}

func readReferenceTypeID(r binary.Reader, s *IDSizes) ReferenceTypeID {
	width, err := s.referenceType()
	return ReferenceTypeID(readID(r, width, err))
}

func writeMethodID(w binary.Writer, s *IDSizes, v MethodID) {
	width, err := s.method()
	writeID(w, width, err, uint64(v))
}

func readMethodID(r binary.Reader, s *IDSizes) MethodID {
	width, err := s.method()
	return MethodID(readID(r, width, err))
}

func writeFieldID(w binary.Writer, s *IDSizes, v FieldID) {
	width, err := s.field()
	writeID(w, width, err, uint64(v))
}

func readFieldID(r binary.Reader, s *IDSizes) FieldID {
	width, err := s.field()
	return FieldID(readID(r, width, err))
}

func writeFrameID(w binary.Writer, s *IDSizes, v FrameID) {
	width, err := s.frame()
	writeID(w, width, err, uint64(v))
}

func readFrameID(r binary.Reader, s *IDSizes) FrameID {
	width, err := s.frame()
	return FrameID(readID(r, width, err))
}

// writeString writes a 4-byte big-endian length followed by the raw bytes.
// JDWP specifies modified UTF-8; the payload is carried verbatim.
func writeString(w binary.Writer, v string) {
	w.Uint32(uint32(len(v)))
	w.Data([]byte(v))
}

// readString reads a 4-byte length then that many bytes. A length running
// past the remaining data surfaces as ErrTruncated from the caller's final
// error check.
func readString(r binary.Reader) string {
	data := make([]byte, r.Uint32())
	r.Data(data)
	if r.Error() != nil {
		return ""
	}
	return string(data)
}

func writeTaggedObjectID(w binary.Writer, s *IDSizes, v TaggedObjectID) {
	w.Uint8(uint8(v.Type))
	writeObjectID(w, s, v.Object)
}

func readTaggedObjectID(r binary.Reader, s *IDSizes) TaggedObjectID {
	tag := Tag(r.Uint8())
	if r.Error() == nil && !tag.valid() {
		r.SetError(ErrInvalidTag)
		return TaggedObjectID{}
	}
	return TaggedObjectID{Type: tag, Object: readObjectID(r, s)}
}

// writeLocation writes type-tag, class-ID, method-ID then the 8-byte index.
func writeLocation(w binary.Writer, s *IDSizes, v Location) {
	w.Uint8(uint8(v.Type))
	width, err := s.referenceType()
	writeID(w, width, err, uint64(v.Class))
	writeMethodID(w, s, v.Method)
	w.Uint64(v.Location)
}

func readLocation(r binary.Reader, s *IDSizes) Location {
	l := Location{}
	l.Type = TypeTag(r.Uint8())
	width, err := s.referenceType()
	l.Class = ClassID(readID(r, width, err))
	l.Method = readMethodID(r, s)
	l.Location = r.Uint64()
	return l
}

// encode writes a single field of this kind to w. The concrete value type is
// coerced with reflection so that semantic aliases (EventRequestID for int,
// ClassID for ReferenceTypeID, ...) encode through the same kind.
func (k fieldKind) encode(w binary.Writer, s *IDSizes, v interface{}) error {
	rv := reflect.ValueOf(v)
	switch k {
	case fieldByte:
		w.Uint8(uint8(rv.Uint()))
	case fieldBoolean:
		w.Bool(rv.Bool())
	case fieldChar, fieldShort:
		w.Int16(int16(rv.Int()))
	case fieldInt:
		w.Int32(int32(rv.Int()))
	case fieldLong:
		w.Int64(rv.Int())
	case fieldFloat:
		w.Float32(float32(rv.Float()))
	case fieldDouble:
		w.Float64(rv.Float())
	case fieldObjectID, fieldThreadID, fieldThreadGroupID, fieldStringID,
		fieldClassLoaderID, fieldClassObjectID, fieldArrayID:
		writeObjectID(w, s, ObjectID(rv.Uint()))
	case fieldReferenceTypeID, fieldClassID, fieldInterfaceID, fieldArrayTypeID:
		writeReferenceTypeID(w, s, ReferenceTypeID(rv.Uint()))
	case fieldMethodID:
		writeMethodID(w, s, MethodID(rv.Uint()))
	case fieldFieldID:
		writeFieldID(w, s, FieldID(rv.Uint()))
	case fieldFrameID:
		writeFrameID(w, s, FrameID(rv.Uint()))
	case fieldTaggedObjectID:
		writeTaggedObjectID(w, s, v.(TaggedObjectID))
	case fieldLocation:
		writeLocation(w, s, v.(Location))
	case fieldString:
		writeString(w, rv.String())
	case fieldValue:
		writeValue(w, s, v)
	case fieldUntaggedValue:
		writeUntaggedValue(w, s, v)
	case fieldArrayRegion:
		writeArrayRegion(w, s, v.(ArrayRegion))
	default:
		return fmt.Errorf("unhandled field kind %d", k)
	}
	return w.Error()
}

// decode reads a single field of this kind from r, returning the value as
// its canonical Go type.
func (k fieldKind) decode(r binary.Reader, s *IDSizes) (interface{}, error) {
	var v interface{}
	switch k {
	case fieldByte:
		v = r.Uint8()
	case fieldBoolean:
		v = r.Bool()
	case fieldChar:
		v = Char(r.Int16())
	case fieldShort:
		v = r.Int16()
	case fieldInt:
		v = int(r.Int32())
	case fieldLong:
		v = r.Int64()
	case fieldFloat:
		v = r.Float32()
	case fieldDouble:
		v = r.Float64()
	case fieldObjectID:
		v = readObjectID(r, s)
	case fieldThreadID:
		v = ThreadID(readObjectID(r, s))
	case fieldThreadGroupID:
		v = ThreadGroupID(readObjectID(r, s))
	case fieldStringID:
		v = StringID(readObjectID(r, s))
	case fieldClassLoaderID:
		v = ClassLoaderID(readObjectID(r, s))
	case fieldClassObjectID:
		v = ClassObjectID(readObjectID(r, s))
	case fieldArrayID:
		v = ArrayID(readObjectID(r, s))
	case fieldReferenceTypeID:
		v = readReferenceTypeID(r, s)
	case fieldClassID:
		v = ClassID(readReferenceTypeID(r, s))
	case fieldInterfaceID:
		v = InterfaceID(readReferenceTypeID(r, s))
	case fieldArrayTypeID:
		v = ArrayTypeID(readReferenceTypeID(r, s))
	case fieldMethodID:
		v = readMethodID(r, s)
	case fieldFieldID:
		v = readFieldID(r, s)
	case fieldFrameID:
		v = readFrameID(r, s)
	case fieldTaggedObjectID:
		v = readTaggedObjectID(r, s)
	case fieldLocation:
		v = readLocation(r, s)
	case fieldString:
		v = readString(r)
	case fieldValue:
		v = readValue(r, s)
	case fieldUntaggedValue:
		return nil, fmt.Errorf("untagged values cannot be decoded without a tag")
	case fieldArrayRegion:
		v = readArrayRegion(r, s)
	default:
		return nil, fmt.Errorf("unhandled field kind %d", k)
	}
	if err := r.Error(); err != nil {
		return nil, asTruncated(err)
	}
	return v, nil
}
