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

// Handler receives events parsed from composite event packets. Set the
// callback for each kind of interest; a kind with no callback falls through
// to OnEvent, and if that is also nil the event is dropped.
//
// Handlers are invoked serially on the connection's reader goroutine, in
// registration order, and for a single composite in the order the events
// appear in it. Callbacks must not block indefinitely: no further packets
// are processed until they return.
type Handler struct {
	OnVMStart                   func(*EventVMStart)
	OnVMDeath                   func(*EventVMDeath)
	OnSingleStep                func(*EventSingleStep)
	OnBreakpoint                func(*EventBreakpoint)
	OnFramePop                  func(*EventFramePop)
	OnMethodEntry               func(*EventMethodEntry)
	OnMethodExit                func(*EventMethodExit)
	OnMethodExitWithReturnValue func(*EventMethodExitWithReturnValue)
	OnMonitorContendedEnter     func(*EventMonitorContendedEnter)
	OnMonitorContendedEntered   func(*EventMonitorContendedEntered)
	OnMonitorWait               func(*EventMonitorWait)
	OnMonitorWaited             func(*EventMonitorWaited)
	OnException                 func(*EventException)
	OnThreadStart               func(*EventThreadStart)
	OnThreadDeath               func(*EventThreadDeath)
	OnClassPrepare              func(*EventClassPrepare)
	OnClassUnload               func(*EventClassUnload)
	OnFieldAccess               func(*EventFieldAccess)
	OnFieldModification         func(*EventFieldModification)

	// OnEvent is the fallback for kinds without their own callback.
	OnEvent func(Event)
}

// handle delivers e to the per-kind callback, falling back to OnEvent.
func (h *Handler) handle(e Event) {
	switch e := e.(type) {
	case *EventVMStart:
		if h.OnVMStart != nil {
			h.OnVMStart(e)
			return
		}
	case *EventVMDeath:
		if h.OnVMDeath != nil {
			h.OnVMDeath(e)
			return
		}
	case *EventSingleStep:
		if h.OnSingleStep != nil {
			h.OnSingleStep(e)
			return
		}
	case *EventBreakpoint:
		if h.OnBreakpoint != nil {
			h.OnBreakpoint(e)
			return
		}
	case *EventFramePop:
		if h.OnFramePop != nil {
			h.OnFramePop(e)
			return
		}
	case *EventMethodEntry:
		if h.OnMethodEntry != nil {
			h.OnMethodEntry(e)
			return
		}
	case *EventMethodExit:
		if h.OnMethodExit != nil {
			h.OnMethodExit(e)
			return
		}
	case *EventMethodExitWithReturnValue:
		if h.OnMethodExitWithReturnValue != nil {
			h.OnMethodExitWithReturnValue(e)
			return
		}
	case *EventMonitorContendedEnter:
		if h.OnMonitorContendedEnter != nil {
			h.OnMonitorContendedEnter(e)
			return
		}
	case *EventMonitorContendedEntered:
		if h.OnMonitorContendedEntered != nil {
			h.OnMonitorContendedEntered(e)
			return
		}
	case *EventMonitorWait:
		if h.OnMonitorWait != nil {
			h.OnMonitorWait(e)
			return
		}
	case *EventMonitorWaited:
		if h.OnMonitorWaited != nil {
			h.OnMonitorWaited(e)
			return
		}
	case *EventException:
		if h.OnException != nil {
			h.OnException(e)
			return
		}
	case *EventThreadStart:
		if h.OnThreadStart != nil {
			h.OnThreadStart(e)
			return
		}
	case *EventThreadDeath:
		if h.OnThreadDeath != nil {
			h.OnThreadDeath(e)
			return
		}
	case *EventClassPrepare:
		if h.OnClassPrepare != nil {
			h.OnClassPrepare(e)
			return
		}
	case *EventClassUnload:
		if h.OnClassUnload != nil {
			h.OnClassUnload(e)
			return
		}
	case *EventFieldAccess:
		if h.OnFieldAccess != nil {
			h.OnFieldAccess(e)
			return
		}
	case *EventFieldModification:
		if h.OnFieldModification != nil {
			h.OnFieldModification(e)
			return
		}
	}
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}
