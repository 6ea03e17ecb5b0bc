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

// VariableTable returns all of the variables that are present in the given
// Method.
func (c *Connection) VariableTable(classTy ReferenceTypeID, method MethodID) (VariableTable, error) {
	var res VariableTable
	err := c.get(cmdMethodVariableTable, []interface{}{classTy, method},
		func(r binary.Reader) error {
			res.ArgCount = int(r.Int32())
			count := int(r.Int32())
			res.Slots = make([]FrameVariable, 0, count)
			for i := 0; i < count && r.Error() == nil; i++ {
				res.Slots = append(res.Slots, FrameVariable{
					CodeIndex: r.Uint64(),
					Name:      readString(r),
					Signature: readString(r),
					Length:    int(r.Int32()),
					Slot:      int(r.Int32()),
				})
			}
			return nil
		})
	return res, err
}

// LineEntry maps a code index to a source line.
type LineEntry struct {
	CodeIndex  uint64
	LineNumber int
}

// LineTable holds the line number information for a single method.
type LineTable struct {
	Start int64
	End   int64
	Lines []LineEntry
}

// GetLineTable returns the line table for the given method.
func (c *Connection) GetLineTable(classTy ReferenceTypeID, method MethodID) (LineTable, error) {
	var res LineTable
	err := c.get(cmdMethodLineTable, []interface{}{classTy, method},
		func(r binary.Reader) error {
			res.Start = r.Int64()
			res.End = r.Int64()
			count := int(r.Int32())
			res.Lines = make([]LineEntry, 0, count)
			for i := 0; i < count && r.Error() == nil; i++ {
				res.Lines = append(res.Lines, LineEntry{
					CodeIndex:  r.Uint64(),
					LineNumber: int(r.Int32()),
				})
			}
			return nil
		})
	return res, err
}
