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

	"github.com/chessturo/Roastery/core/fault"
)

// The error taxonomy of the package. Every failure surfaced by this package
// is, or wraps, one of these values or an Error reply code.
const (
	// ErrDisconnected is returned when the peer has closed the connection or
	// the pipeline has been shut down.
	ErrDisconnected = fault.Const("connection closed")
	// ErrHandshake is returned when the peer does not echo the JDWP
	// handshake.
	ErrHandshake = fault.Const("bad JDWP handshake")
	// ErrMalformed is returned for a packet with an impossible header or a
	// truncated body.
	ErrMalformed = fault.Const("malformed packet")
	// ErrInvalidTag is returned when decoding a value with an unrecognised
	// tag byte.
	ErrInvalidTag = fault.Const("invalid value tag")
	// ErrInvalidEventKind is returned when a composite event carries an
	// unrecognised event kind byte.
	ErrInvalidEventKind = fault.Const("invalid event kind")
	// ErrIDTooWide is returned when encoding an identifier whose value does
	// not fit in the width reported by the VM.
	ErrIDTooWide = fault.Const("identifier wider than reported ID size")
	// ErrSizesUnknown is returned when a variable-width identifier is encoded
	// or decoded before the VM has reported its ID sizes.
	ErrSizesUnknown = fault.Const("ID sizes not yet known")
	// ErrTruncated is returned when a declared length exceeds the remaining
	// data.
	ErrTruncated = fault.Const("truncated data")
	// ErrBodyTooLong is returned when an outbound body would overflow the
	// 32-bit packet length field.
	ErrBodyTooLong = fault.Const("packet body too long")
)

// Error is a JDWP error code, carried in the header of every reply packet.
// The zero value means success.
type Error uint16

// ErrNone is the success code.
const ErrNone = Error(0)

const (
	ErrInvalidThread                       = Error(10)
	ErrInvalidThreadGroup                  = Error(11)
	ErrInvalidPriority                     = Error(12)
	ErrThreadNotSuspended                  = Error(13)
	ErrThreadSuspended                     = Error(14)
	ErrThreadNotAlive                      = Error(15)
	ErrInvalidObject                       = Error(20)
	ErrInvalidClass                        = Error(21)
	ErrClassNotPrepared                    = Error(22)
	ErrInvalidMethodID                     = Error(23)
	ErrInvalidLocation                     = Error(24)
	ErrInvalidFieldID                      = Error(25)
	ErrInvalidFrameID                      = Error(30)
	ErrNoMoreFrames                        = Error(31)
	ErrOpaqueFrame                         = Error(32)
	ErrNotCurrentFrame                     = Error(33)
	ErrTypeMismatch                        = Error(34)
	ErrInvalidSlot                         = Error(35)
	ErrDuplicate                           = Error(40)
	ErrNotFound                            = Error(41)
	ErrInvalidMonitor                      = Error(50)
	ErrNotMonitorOwner                     = Error(51)
	ErrInterrupt                           = Error(52)
	ErrInvalidClassFormat                  = Error(60)
	ErrCircularClassDefinition             = Error(61)
	ErrFailsVerification                   = Error(62)
	ErrAddMethodNotImplemented             = Error(63)
	ErrSchemaChangeNotImplemented          = Error(64)
	ErrInvalidTypestate                    = Error(65)
	ErrHierarchyChangeNotImplemented       = Error(66)
	ErrDeleteMethodNotImplemented          = Error(67)
	ErrUnsupportedVersion                  = Error(68)
	ErrNamesDontMatch                      = Error(69)
	ErrClassModifiersChangeNotImplemented  = Error(70)
	ErrMethodModifiersChangeNotImplemented = Error(71)
	ErrNotImplemented                      = Error(99)
	ErrNullPointer                         = Error(100)
	ErrAbsentInformation                   = Error(101)
	ErrInvalidEventType                    = Error(102)
	ErrIllegalArgument                     = Error(103)
	ErrOutOfMemory                         = Error(110)
	ErrAccessDenied                        = Error(111)
	ErrVMDead                              = Error(112)
	ErrInternal                            = Error(113)
	ErrUnattachedThread                    = Error(115)
	ErrInvalidTagCode                      = Error(500)
	ErrAlreadyInvoking                     = Error(502)
	ErrInvalidIndex                        = Error(503)
	ErrInvalidLength                       = Error(504)
	ErrInvalidString                       = Error(506)
	ErrInvalidClassLoader                  = Error(507)
	ErrInvalidArray                        = Error(508)
	ErrTransportLoad                       = Error(509)
	ErrTransportInit                       = Error(510)
	ErrNativeMethod                        = Error(511)
	ErrInvalidCount                        = Error(512)
)

// errorDescriptions holds the description of each reply error code, as listed
// in the JDWP specification.
var errorDescriptions = map[Error]string{
	ErrInvalidThread:                       "Passed thread is null, is not a valid thread or has exited.",
	ErrInvalidThreadGroup:                  "Thread group invalid.",
	ErrInvalidPriority:                     "Invalid priority.",
	ErrThreadNotSuspended:                  "If the specified thread has not been suspended by an event.",
	ErrThreadSuspended:                     "Thread already suspended.",
	ErrThreadNotAlive:                      "Thread has not been started or is now dead.",
	ErrInvalidObject:                       "If this reference type has been unloaded and garbage collected.",
	ErrInvalidClass:                        "Invalid class.",
	ErrClassNotPrepared:                    "Class has been loaded but not yet prepared.",
	ErrInvalidMethodID:                     "Invalid method.",
	ErrInvalidLocation:                     "Invalid location.",
	ErrInvalidFieldID:                      "Invalid field.",
	ErrInvalidFrameID:                      "Invalid jframeID.",
	ErrNoMoreFrames:                        "There are no more Java or JNI frames on the call stack.",
	ErrOpaqueFrame:                         "Information about the frame is not available.",
	ErrNotCurrentFrame:                     "Operation can only be performed on current frame.",
	ErrTypeMismatch:                        "The variable is not an appropriate type for the function used.",
	ErrInvalidSlot:                         "Invalid slot.",
	ErrDuplicate:                           "Item already set.",
	ErrNotFound:                            "Desired element not found.",
	ErrInvalidMonitor:                      "Invalid monitor.",
	ErrNotMonitorOwner:                     "This thread doesn't own the monitor.",
	ErrInterrupt:                           "The call has been interrupted before completion.",
	ErrInvalidClassFormat:                  "The virtual machine attempted to read a class file and determined that the file is malformed or otherwise cannot be interpreted as a class file.",
	ErrCircularClassDefinition:             "A circularity has been detected while initializing a class.",
	ErrFailsVerification:                   "The verifier detected that a class file, though well formed, contained some sort of internal inconsistency or security problem.",
	ErrAddMethodNotImplemented:             "Adding methods has not been implemented.",
	ErrSchemaChangeNotImplemented:          "Schema change has not been implemented.",
	ErrInvalidTypestate:                    "The state of the thread has been modified, and is now inconsistent.",
	ErrHierarchyChangeNotImplemented:       "A direct superclass is different for the new class version, or the set of directly implemented interfaces is different.",
	ErrDeleteMethodNotImplemented:          "The new class version does not declare a method declared in the old class version.",
	ErrUnsupportedVersion:                  "A class file has a version number not supported by this VM.",
	ErrNamesDontMatch:                      "The class name defined in the new class file is different from the name in the old class object.",
	ErrClassModifiersChangeNotImplemented:  "The new class version has different modifiers.",
	ErrMethodModifiersChangeNotImplemented: "A method in the new class version has different modifiers than its counterpart in the old class version.",
	ErrNotImplemented:                      "The functionality is not implemented in this virtual machine.",
	ErrNullPointer:                         "Invalid pointer.",
	ErrAbsentInformation:                   "Desired information is not available.",
	ErrInvalidEventType:                    "The specified event type id is not recognized.",
	ErrIllegalArgument:                     "Illegal argument.",
	ErrOutOfMemory:                         "The function needed to allocate memory and no more memory was available for allocation.",
	ErrAccessDenied:                        "Debugging has not been enabled in this virtual machine. JVMDI cannot be used.",
	ErrVMDead:                              "The virtual machine is not running.",
	ErrInternal:                            "An unexpected internal error has occurred.",
	ErrUnattachedThread:                    "The thread being used to call this function is not attached to the virtual machine. Calls must be made from attached threads.",
	ErrInvalidTagCode:                      "object type id or class tag.",
	ErrAlreadyInvoking:                     "Previous invoke not complete.",
	ErrInvalidIndex:                        "Index is invalid.",
	ErrInvalidLength:                       "The length is invalid.",
	ErrInvalidString:                       "The string is invalid.",
	ErrInvalidClassLoader:                  "The class loader is invalid.",
	ErrInvalidArray:                        "The array is invalid.",
	ErrTransportLoad:                       "Unable to load the transport.",
	ErrTransportInit:                       "Unable to initialize the transport.",
	ErrNativeMethod:                        "The method is a native method.",
	ErrInvalidCount:                        "The count is invalid.",
}

// Error returns the description of the error code listed in the JDWP
// specification.
func (e Error) Error() string {
	if desc, ok := errorDescriptions[e]; ok {
		return fmt.Sprintf("jdwp error %d: %s", uint16(e), desc)
	}
	return fmt.Sprintf("jdwp error %d", uint16(e))
}
