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
	"reflect"

	"github.com/chessturo/Roastery/core/data/binary"
)

// slot describes one field of a command body. A slot is either a single
// field kind, or a vector: a 4-byte count followed by that many elements.
// Vector elements are single fields of the slot's kind, unless elem is set,
// in which case each element is a tuple encoded slot by slot.
type slot struct {
	name   string
	kind   fieldKind
	vector bool
	elem   []slot
}

// schema declares the wire shape of a single command: its command-set byte,
// command byte, and the ordered field slots of its body. The generic body
// serialiser walks the slot list; the handful of commands whose wire form
// departs from it carry an encode override.
type schema struct {
	cmd   cmd
	name  string
	slots []slot

	// encode, when non-nil, replaces the generic body serialiser.
	encode func(w binary.Writer, s *IDSizes, args []interface{}) error
}

// encodeBody serialises args according to sch, appending to w.
func encodeBody(w binary.Writer, s *IDSizes, sch *schema, args []interface{}) error {
	if sch.encode != nil {
		if err := sch.encode(w, s, args); err != nil {
			return err
		}
		return w.Error()
	}
	if len(args) != len(sch.slots) {
		return fmt.Errorf("%v: got %d arguments, schema has %d slots",
			sch.name, len(args), len(sch.slots))
	}
	for i, sl := range sch.slots {
		if err := encodeSlot(w, s, sl, args[i]); err != nil {
			return err
		}
	}
	return w.Error()
}

// encodeSlot serialises a single slot value, recursing for vector elements.
func encodeSlot(w binary.Writer, s *IDSizes, sl slot, arg interface{}) error {
	if !sl.vector {
		if sl.elem != nil {
			return encodeTuple(w, s, sl.elem, arg)
		}
		return sl.kind.encode(w, s, arg)
	}
	rv := reflect.ValueOf(arg)
	if rv.Kind() != reflect.Slice {
		return fmt.Errorf("slot %q wants a slice, got %T", sl.name, arg)
	}
	w.Uint32(uint32(rv.Len()))
	for i := 0; i < rv.Len(); i++ {
		el := rv.Index(i).Interface()
		var err error
		if sl.elem != nil {
			err = encodeTuple(w, s, sl.elem, el)
		} else {
			err = sl.kind.encode(w, s, el)
		}
		if err != nil {
			return err
		}
	}
	return w.Error()
}

// encodeTuple serialises a struct whose fields line up with the given slots.
func encodeTuple(w binary.Writer, s *IDSizes, slots []slot, arg interface{}) error {
	rv := reflect.ValueOf(arg)
	if rv.Kind() != reflect.Struct || rv.NumField() != len(slots) {
		return fmt.Errorf("tuple wants a struct with %d fields, got %T", len(slots), arg)
	}
	for i, sl := range slots {
		if err := encodeSlot(w, s, sl, rv.Field(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// decodeBody parses a command body left-to-right by sch's slot list.
// Vectors decode to []interface{}; tuple elements to []interface{} per
// element.
func decodeBody(r binary.Reader, s *IDSizes, sch *schema) ([]interface{}, error) {
	out := make([]interface{}, 0, len(sch.slots))
	for _, sl := range sch.slots {
		v, err := decodeSlot(r, s, sl)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeSlot(r binary.Reader, s *IDSizes, sl slot) (interface{}, error) {
	if !sl.vector {
		if sl.elem != nil {
			return decodeTuple(r, s, sl.elem)
		}
		return sl.kind.decode(r, s)
	}
	count := int(r.Uint32())
	if err := r.Error(); err != nil {
		return nil, asTruncated(err)
	}
	out := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		var v interface{}
		var err error
		if sl.elem != nil {
			v, err = decodeTuple(r, s, sl.elem)
		} else {
			v, err = sl.kind.decode(r, s)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func decodeTuple(r binary.Reader, s *IDSizes, slots []slot) ([]interface{}, error) {
	out := make([]interface{}, 0, len(slots))
	for _, sl := range slots {
		v, err := decodeSlot(r, s, sl)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FieldAssignment pairs a field with the value to store in it. The value is
// transmitted untagged: the field's declared type dictates its width.
type FieldAssignment struct {
	Field FieldID
	Value Value
}

// encodeUntaggedAssignments is the encode override shared by the SetValues
// commands whose wire form carries untagged values where the generic
// serialiser would tag them. The first argument is the target identifier,
// encoded with kind idKind; the second is a []FieldAssignment.
func encodeUntaggedAssignments(idKind fieldKind) func(binary.Writer, *IDSizes, []interface{}) error {
	return func(w binary.Writer, s *IDSizes, args []interface{}) error {
		if len(args) != 2 {
			return fmt.Errorf("SetValues wants (id, assignments), got %d arguments", len(args))
		}
		if err := idKind.encode(w, s, args[0]); err != nil {
			return err
		}
		assignments, ok := args[1].([]FieldAssignment)
		if !ok {
			return fmt.Errorf("SetValues wants []FieldAssignment, got %T", args[1])
		}
		w.Uint32(uint32(len(assignments)))
		for _, a := range assignments {
			writeFieldID(w, s, a.Field)
			writeUntaggedValue(w, s, a.Value)
		}
		return w.Error()
	}
}

// encodeArraySetValues is the encode override for ArrayReference.SetValues:
// array ID, first index, then the values untagged.
func encodeArraySetValues(w binary.Writer, s *IDSizes, args []interface{}) error {
	if len(args) != 3 {
		return fmt.Errorf("ArrayReference.SetValues wants (array, firstIndex, values), got %d arguments", len(args))
	}
	if err := fieldArrayID.encode(w, s, args[0]); err != nil {
		return err
	}
	if err := fieldInt.encode(w, s, args[1]); err != nil {
		return err
	}
	values, ok := args[2].([]Value)
	if !ok {
		return fmt.Errorf("ArrayReference.SetValues wants []Value, got %T", args[2])
	}
	w.Uint32(uint32(len(values)))
	for _, v := range values {
		writeUntaggedValue(w, s, v)
	}
	return w.Error()
}
