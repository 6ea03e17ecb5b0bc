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

// IDSizes describes the width in bytes of each of the variably sized
// identifier types, as reported by the VM in reply to the IDSizes command.
// The table is populated once, before the connection becomes usable, and is
// immutable for the connection's lifetime.
type IDSizes struct {
	FieldIDSize         int32 // FieldID size in bytes
	MethodIDSize        int32 // MethodID size in bytes
	ObjectIDSize        int32 // ObjectID size in bytes
	ReferenceTypeIDSize int32 // ReferenceTypeID size in bytes
	FrameIDSize         int32 // FrameID size in bytes

	populated bool
}

// Populated reports whether the VM has reported its ID sizes yet.
func (s IDSizes) Populated() bool { return s.populated }

// validate checks every width is in [1, 8].
func (s IDSizes) validate() error {
	for _, w := range []int32{
		s.FieldIDSize, s.MethodIDSize, s.ObjectIDSize,
		s.ReferenceTypeIDSize, s.FrameIDSize,
	} {
		if w < 1 || w > 8 {
			return fmt.Errorf("%w: ID size %d out of range", ErrMalformed, w)
		}
	}
	return nil
}

// object returns the ObjectID width, failing if the table is unpopulated.
func (s *IDSizes) object() (int32, error) {
	if !s.populated {
		return 0, ErrSizesUnknown
	}
	return s.ObjectIDSize, nil
}

// referenceType returns the ReferenceTypeID width, failing if the table is
// unpopulated.
func (s *IDSizes) referenceType() (int32, error) {
	if !s.populated {
		return 0, ErrSizesUnknown
	}
	return s.ReferenceTypeIDSize, nil
}

// method returns the MethodID width, failing if the table is unpopulated.
func (s *IDSizes) method() (int32, error) {
	if !s.populated {
		return 0, ErrSizesUnknown
	}
	return s.MethodIDSize, nil
}

// field returns the FieldID width, failing if the table is unpopulated.
func (s *IDSizes) field() (int32, error) {
	if !s.populated {
		return 0, ErrSizesUnknown
	}
	return s.FieldIDSize, nil
}

// frame returns the FrameID width, failing if the table is unpopulated.
func (s *IDSizes) frame() (int32, error) {
	if !s.populated {
		return 0, ErrSizesUnknown
	}
	return s.FrameIDSize, nil
}
