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
	"context"
	"fmt"

	"github.com/chessturo/Roastery/core/data/binary"
	"github.com/chessturo/Roastery/core/event/task"
)

// EventModifier is the interface implemented by all event modifier types.
// These are filters on the events that are raised.
// See http://docs.oracle.com/javase/1.5.0/docs/guide/jpda/jdwp/jdwp-protocol.html#JDWP_EventRequest_Set
// for detailed descriptions and rules for each of the EventModifiers.
type EventModifier interface {
	// modKind is the modifier's discriminant byte on the wire.
	modKind() uint8
	// encode writes the modifier's fields, without the modKind byte.
	encode(w binary.Writer, s *IDSizes)
}

// CountEventModifier is an EventModifier that limits the number of times an
// event is fired. For example, using a CountEventModifier of 2 will only let
// two events fire.
type CountEventModifier int

// ConditionalEventModifier is an EventModifier that restricts the event to
// when the given expression is true.
type ConditionalEventModifier int

// ThreadOnlyEventModifier is an EventModifier that filters the events to those
// that are raised on the specified thread.
type ThreadOnlyEventModifier ThreadID

// ClassOnlyEventModifier is an EventModifier that filters the events to those
// that are associated with the specified class.
type ClassOnlyEventModifier ClassID

// ClassMatchEventModifier is an EventModifier that filters the events to those
// that are associated with class names that match the pattern. The pattern can
// be an exact class name match, or use a '*' wildcard at the start or end of
// the string. Examples:
// • "java.lang.String"
// • "*.String"
// • "java.lang.*"
type ClassMatchEventModifier string

// ClassExcludeEventModifier is an EventModifier that filters the events to
// those that are not associated with class names that match the pattern.
// See ClassMatchEventModifier for the permitted patterns.
type ClassExcludeEventModifier string

// LocationOnlyEventModifier is an EventModifier that filters the events to
// those that only originate at the specified location.
type LocationOnlyEventModifier Location

// ExceptionOnlyEventModifier is an EventModifier that filters exception events.
// Can only be used for exception events.
type ExceptionOnlyEventModifier struct {
	ExceptionOrNull ReferenceTypeID // If not 0, only permit exceptions of this type.
	Caught          bool            // Report caught exceptions
	Uncaught        bool            // Report uncaught exceptions
}

// FieldOnlyEventModifier is an EventModifier that filters events to those
// relating to the specified field.
// Can only be used for field access or field modified events.
type FieldOnlyEventModifier struct {
	Type  ReferenceTypeID
	Field FieldID
}

// StepEventModifier is an EventModifier that filters step events to those which
// satisfy depth and size constraints.
// Can only be used with step events.
type StepEventModifier struct {
	Thread ThreadID
	Size   int
	Depth  int
}

// InstanceOnlyEventModifier is an EventModifier that filters events to those
// which have the specified 'this' object.
type InstanceOnlyEventModifier ObjectID

// SourceNameMatchEventModifier is an EventModifier that filters class prepare
// events to classes whose source name matches the pattern.
type SourceNameMatchEventModifier string

func (CountEventModifier) modKind() uint8           { return 1 }
func (ConditionalEventModifier) modKind() uint8     { return 2 }
func (ThreadOnlyEventModifier) modKind() uint8      { return 3 }
func (ClassOnlyEventModifier) modKind() uint8       { return 4 }
func (ClassMatchEventModifier) modKind() uint8      { return 5 }
func (ClassExcludeEventModifier) modKind() uint8    { return 6 }
func (LocationOnlyEventModifier) modKind() uint8    { return 7 }
func (ExceptionOnlyEventModifier) modKind() uint8   { return 8 }
func (FieldOnlyEventModifier) modKind() uint8       { return 9 }
func (StepEventModifier) modKind() uint8            { return 10 }
func (InstanceOnlyEventModifier) modKind() uint8    { return 11 }
func (SourceNameMatchEventModifier) modKind() uint8 { return 12 }

func (m CountEventModifier) encode(w binary.Writer, s *IDSizes) {
	w.Int32(int32(m))
}

func (m ConditionalEventModifier) encode(w binary.Writer, s *IDSizes) {
	w.Int32(int32(m))
}

func (m ThreadOnlyEventModifier) encode(w binary.Writer, s *IDSizes) {
	writeObjectID(w, s, ObjectID(m))
}

func (m ClassOnlyEventModifier) encode(w binary.Writer, s *IDSizes) {
	writeReferenceTypeID(w, s, ReferenceTypeID(m))
}

func (m ClassMatchEventModifier) encode(w binary.Writer, s *IDSizes) {
	writeString(w, string(m))
}

func (m ClassExcludeEventModifier) encode(w binary.Writer, s *IDSizes) {
	writeString(w, string(m))
}

func (m LocationOnlyEventModifier) encode(w binary.Writer, s *IDSizes) {
	writeLocation(w, s, Location(m))
}

func (m ExceptionOnlyEventModifier) encode(w binary.Writer, s *IDSizes) {
	writeReferenceTypeID(w, s, m.ExceptionOrNull)
	w.Bool(m.Caught)
	w.Bool(m.Uncaught)
}

func (m FieldOnlyEventModifier) encode(w binary.Writer, s *IDSizes) {
	writeReferenceTypeID(w, s, m.Type)
	writeFieldID(w, s, m.Field)
}

func (m StepEventModifier) encode(w binary.Writer, s *IDSizes) {
	writeObjectID(w, s, ObjectID(m.Thread))
	w.Int32(int32(m.Size))
	w.Int32(int32(m.Depth))
}

func (m InstanceOnlyEventModifier) encode(w binary.Writer, s *IDSizes) {
	writeObjectID(w, s, ObjectID(m))
}

func (m SourceNameMatchEventModifier) encode(w binary.Writer, s *IDSizes) {
	writeString(w, string(m))
}

// encodeEventRequestSet is the fully custom encoder for EventRequest.Set:
// event kind, suspend policy, then each modifier prefixed with its modKind
// byte.
func encodeEventRequestSet(w binary.Writer, s *IDSizes, args []interface{}) error {
	if len(args) != 3 {
		return fmt.Errorf("EventRequest.Set wants (kind, policy, modifiers), got %d arguments", len(args))
	}
	kind, ok := args[0].(EventKind)
	if !ok {
		return fmt.Errorf("EventRequest.Set wants an EventKind, got %T", args[0])
	}
	policy, ok := args[1].(SuspendPolicy)
	if !ok {
		return fmt.Errorf("EventRequest.Set wants a SuspendPolicy, got %T", args[1])
	}
	modifiers, ok := args[2].([]EventModifier)
	if !ok {
		return fmt.Errorf("EventRequest.Set wants []EventModifier, got %T", args[2])
	}
	w.Uint8(uint8(kind))
	w.Uint8(uint8(policy))
	w.Uint32(uint32(len(modifiers)))
	for _, m := range modifiers {
		w.Uint8(m.modKind())
		m.encode(w, s)
	}
	return w.Error()
}

// SetEvent sets an event request, returning the identifier the VM assigned
// to it.
func (c *Connection) SetEvent(kind EventKind, policy SuspendPolicy, modifiers ...EventModifier) (EventRequestID, error) {
	if modifiers == nil {
		modifiers = []EventModifier{}
	}
	var res EventRequestID
	err := c.get(cmdEventRequestSet, []interface{}{kind, policy, modifiers},
		func(r binary.Reader) error {
			res = EventRequestID(r.Int32())
			return nil
		})
	return res, err
}

// ClearEvent cancels an event request.
func (c *Connection) ClearEvent(kind EventKind, id EventRequestID) error {
	return c.get(cmdEventRequestClear, []interface{}{uint8(kind), id}, nil)
}

// ClearAllBreakpoints cancels all breakpoint event requests.
func (c *Connection) ClearAllBreakpoints() error {
	return c.get(cmdEventRequestClearAllBreakpoints, nil, nil)
}

// WatchEvents sets an event request and feeds every matching event to
// onEvent, in arrival order, until onEvent returns false, the context is
// cancelled, or the connection shuts down. The request is cleared before
// returning.
func (c *Connection) WatchEvents(ctx context.Context, kind EventKind, policy SuspendPolicy, onEvent func(Event) bool, modifiers ...EventModifier) error {
	events := make(chan Event, 8)
	h := &Handler{OnEvent: func(e Event) {
		if e.Kind() != kind {
			return
		}
		select {
		case events <- e:
		case <-c.stop:
		}
	}}
	c.RegisterHandler(h)
	defer c.UnregisterHandler(h)

	id, err := c.SetEvent(kind, policy, modifiers...)
	if err != nil {
		return err
	}
	defer c.ClearEvent(kind, id)

	for {
		select {
		case e := <-events:
			if e.request() != id {
				continue
			}
			if !onEvent(e) {
				return nil
			}
		case <-c.stop:
			return ErrDisconnected
		case <-task.ShouldStop(ctx):
			return task.StopReason(ctx)
		}
	}
}
