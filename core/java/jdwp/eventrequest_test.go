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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRequestSetEncoding(t *testing.T) {
	c := codecConn(sizes8())
	data := encodePacket(t, c, 0, cmdEventRequestSet,
		SingleStep, SuspendAll, []EventModifier{
			CountEventModifier(0),
			ExceptionOnlyEventModifier{
				ExceptionOrNull: 0xDEADBEEFCAFEF00D,
				Caught:          true,
				Uncaught:        false,
			},
		})

	require.Equal(t, uint8(15), data[9], "command set")
	require.Equal(t, uint8(1), data[10], "command")
	assert.Equal(t, []byte{
		0x01,                   // event kind: SingleStep
		0x02,                   // suspend policy: all
		0x00, 0x00, 0x00, 0x02, // two modifiers
		0x01, 0x00, 0x00, 0x00, 0x00, // Count(0)
		0x08, 0xDE, 0xAD, 0xBE, 0xEF, 0xCA, 0xFE, 0xF0, 0x0D, 0x01, 0x00, // ExceptionOnly
	}, data[headerLen:])
}

func TestModifierKinds(t *testing.T) {
	for _, test := range []struct {
		mod  EventModifier
		kind uint8
	}{
		{CountEventModifier(1), 1},
		{ConditionalEventModifier(2), 2},
		{ThreadOnlyEventModifier(3), 3},
		{ClassOnlyEventModifier(4), 4},
		{ClassMatchEventModifier("a.*"), 5},
		{ClassExcludeEventModifier("b.*"), 6},
		{LocationOnlyEventModifier{}, 7},
		{ExceptionOnlyEventModifier{}, 8},
		{FieldOnlyEventModifier{}, 9},
		{StepEventModifier{}, 10},
		{InstanceOnlyEventModifier(11), 11},
		{SourceNameMatchEventModifier("c.java"), 12},
	} {
		assert.Equal(t, test.kind, test.mod.modKind(), "%T", test.mod)
	}
}

func TestStepModifierEncoding(t *testing.T) {
	c := codecConn(sizes8())
	data := encodePacket(t, c, 0, cmdEventRequestSet,
		SingleStep, SuspendEventThread, []EventModifier{
			StepEventModifier{Thread: 5, Size: 1, Depth: 0},
		})
	assert.Equal(t, []byte{
		0x01, 0x01,
		0x00, 0x00, 0x00, 0x01,
		0x0A, // modKind 10
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x05, // thread
		0x00, 0x00, 0x00, 0x01, // size: step line
		0x00, 0x00, 0x00, 0x00, // depth: step into
	}, data[headerLen:])
}
