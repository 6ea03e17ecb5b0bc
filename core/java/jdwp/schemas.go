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

// The command schemas. Each entry declares the outbound wire shape of one
// command; the numbers and field lists are data taken from the JDWP
// specification.
var schemas = map[cmd]*schema{}

func declare(c cmd, name string, slots ...slot) *schema {
	s := &schema{cmd: c, name: name, slots: slots}
	schemas[c] = s
	return s
}

func declareCustom(c cmd, name string, enc func(binary.Writer, *IDSizes, []interface{}) error) {
	declare(c, name).encode = enc
}

func single(name string, kind fieldKind) slot { return slot{name: name, kind: kind} }
func vector(name string, kind fieldKind) slot { return slot{name: name, kind: kind, vector: true} }
func tuples(name string, elem ...slot) slot   { return slot{name: name, vector: true, elem: elem} }

func init() {
	// VirtualMachine command set.
	declare(cmdVirtualMachineVersion, "VirtualMachine.Version")
	declare(cmdVirtualMachineClassesBySignature, "VirtualMachine.ClassesBySignature",
		single("signature", fieldString))
	declare(cmdVirtualMachineAllClasses, "VirtualMachine.AllClasses")
	declare(cmdVirtualMachineAllThreads, "VirtualMachine.AllThreads")
	declare(cmdVirtualMachineTopLevelThreadGroups, "VirtualMachine.TopLevelThreadGroups")
	declare(cmdVirtualMachineDispose, "VirtualMachine.Dispose")
	declare(cmdVirtualMachineIDSizes, "VirtualMachine.IDSizes")
	declare(cmdVirtualMachineSuspend, "VirtualMachine.Suspend")
	declare(cmdVirtualMachineResume, "VirtualMachine.Resume")
	declare(cmdVirtualMachineExit, "VirtualMachine.Exit",
		single("exitCode", fieldInt))
	declare(cmdVirtualMachineCreateString, "VirtualMachine.CreateString",
		single("utf", fieldString))
	declare(cmdVirtualMachineCapabilities, "VirtualMachine.Capabilities")
	declare(cmdVirtualMachineClassPaths, "VirtualMachine.ClassPaths")
	declare(cmdVirtualMachineDisposeObjects, "VirtualMachine.DisposeObjects",
		tuples("requests",
			single("object", fieldObjectID),
			single("refCnt", fieldInt)))
	declare(cmdVirtualMachineHoldEvents, "VirtualMachine.HoldEvents")
	declare(cmdVirtualMachineReleaseEvents, "VirtualMachine.ReleaseEvents")
	declare(cmdVirtualMachineCapabilitiesNew, "VirtualMachine.CapabilitiesNew")
	declare(cmdVirtualMachineRedefineClasses, "VirtualMachine.RedefineClasses",
		tuples("classes",
			single("refType", fieldReferenceTypeID),
			vector("classfile", fieldByte)))
	declare(cmdVirtualMachineSetDefaultStratum, "VirtualMachine.SetDefaultStratum",
		single("stratumID", fieldString))
	declare(cmdVirtualMachineAllClassesWithGeneric, "VirtualMachine.AllClassesWithGeneric")
	declare(cmdVirtualMachineInstanceCounts, "VirtualMachine.InstanceCounts",
		vector("refTypes", fieldReferenceTypeID))

	// ReferenceType command set.
	declare(cmdReferenceTypeSignature, "ReferenceType.Signature",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeClassLoader, "ReferenceType.ClassLoader",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeModifiers, "ReferenceType.Modifiers",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeFields, "ReferenceType.Fields",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeMethods, "ReferenceType.Methods",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeGetValues, "ReferenceType.GetValues",
		single("refType", fieldReferenceTypeID),
		vector("fields", fieldFieldID))
	declare(cmdReferenceTypeSourceFile, "ReferenceType.SourceFile",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeNestedTypes, "ReferenceType.NestedTypes",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeStatus, "ReferenceType.Status",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeInterfaces, "ReferenceType.Interfaces",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeClassObject, "ReferenceType.ClassObject",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeSourceDebugExtension, "ReferenceType.SourceDebugExtension",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeSignatureWithGeneric, "ReferenceType.SignatureWithGeneric",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeFieldsWithGeneric, "ReferenceType.FieldsWithGeneric",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeMethodsWithGeneric, "ReferenceType.MethodsWithGeneric",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeInstances, "ReferenceType.Instances",
		single("refType", fieldReferenceTypeID),
		single("maxInstances", fieldInt))
	declare(cmdReferenceTypeClassFileVersion, "ReferenceType.ClassFileVersion",
		single("refType", fieldReferenceTypeID))
	declare(cmdReferenceTypeConstantPool, "ReferenceType.ConstantPool",
		single("refType", fieldReferenceTypeID))

	// ClassType command set.
	declare(cmdClassTypeSuperclass, "ClassType.Superclass",
		single("clazz", fieldClassID))
	declareCustom(cmdClassTypeSetValues, "ClassType.SetValues",
		encodeUntaggedAssignments(fieldClassID))
	declare(cmdClassTypeInvokeMethod, "ClassType.InvokeMethod",
		single("clazz", fieldClassID),
		single("thread", fieldThreadID),
		single("methodID", fieldMethodID),
		vector("arguments", fieldValue),
		single("options", fieldInt))
	declare(cmdClassTypeNewInstance, "ClassType.NewInstance",
		single("clazz", fieldClassID),
		single("thread", fieldThreadID),
		single("methodID", fieldMethodID),
		vector("arguments", fieldValue),
		single("options", fieldInt))

	// ArrayType command set.
	declare(cmdArrayTypeNewInstance, "ArrayType.NewInstance",
		single("arrType", fieldArrayTypeID),
		single("length", fieldInt))

	// The InterfaceType and Field command sets define no commands.

	// Method command set.
	declare(cmdMethodLineTable, "Method.LineTable",
		single("refType", fieldReferenceTypeID),
		single("methodID", fieldMethodID))
	declare(cmdMethodVariableTable, "Method.VariableTable",
		single("refType", fieldReferenceTypeID),
		single("methodID", fieldMethodID))
	declare(cmdMethodBytecodes, "Method.Bytecodes",
		single("refType", fieldReferenceTypeID),
		single("methodID", fieldMethodID))
	declare(cmdMethodIsObsolete, "Method.IsObsolete",
		single("refType", fieldReferenceTypeID),
		single("methodID", fieldMethodID))
	declare(cmdMethodVariableTableWithGeneric, "Method.VariableTableWithGeneric",
		single("refType", fieldReferenceTypeID),
		single("methodID", fieldMethodID))

	// ObjectReference command set.
	declare(cmdObjectReferenceReferenceType, "ObjectReference.ReferenceType",
		single("object", fieldObjectID))
	declare(cmdObjectReferenceGetValues, "ObjectReference.GetValues",
		single("object", fieldObjectID),
		vector("fields", fieldFieldID))
	declareCustom(cmdObjectReferenceSetValues, "ObjectReference.SetValues",
		encodeUntaggedAssignments(fieldObjectID))
	declare(cmdObjectReferenceMonitorInfo, "ObjectReference.MonitorInfo",
		single("object", fieldObjectID))
	declare(cmdObjectReferenceInvokeMethod, "ObjectReference.InvokeMethod",
		single("object", fieldObjectID),
		single("thread", fieldThreadID),
		single("clazz", fieldClassID),
		single("methodID", fieldMethodID),
		vector("arguments", fieldValue),
		single("options", fieldInt))
	declare(cmdObjectReferenceDisableCollection, "ObjectReference.DisableCollection",
		single("object", fieldObjectID))
	declare(cmdObjectReferenceEnableCollection, "ObjectReference.EnableCollection",
		single("object", fieldObjectID))
	declare(cmdObjectReferenceIsCollected, "ObjectReference.IsCollected",
		single("object", fieldObjectID))
	declare(cmdObjectReferenceReferringObjects, "ObjectReference.ReferringObjects",
		single("object", fieldObjectID),
		single("maxReferrers", fieldInt))

	// StringReference command set.
	declare(cmdStringReferenceValue, "StringReference.Value",
		single("stringObject", fieldStringID))

	// ThreadReference command set.
	declare(cmdThreadReferenceName, "ThreadReference.Name",
		single("thread", fieldThreadID))
	declare(cmdThreadReferenceSuspend, "ThreadReference.Suspend",
		single("thread", fieldThreadID))
	declare(cmdThreadReferenceResume, "ThreadReference.Resume",
		single("thread", fieldThreadID))
	declare(cmdThreadReferenceStatus, "ThreadReference.Status",
		single("thread", fieldThreadID))
	declare(cmdThreadReferenceThreadGroup, "ThreadReference.ThreadGroup",
		single("thread", fieldThreadID))
	declare(cmdThreadReferenceFrames, "ThreadReference.Frames",
		single("thread", fieldThreadID),
		single("startFrame", fieldInt),
		single("length", fieldInt))
	declare(cmdThreadReferenceFrameCount, "ThreadReference.FrameCount",
		single("thread", fieldThreadID))
	declare(cmdThreadReferenceOwnedMonitors, "ThreadReference.OwnedMonitors",
		single("thread", fieldThreadID))
	declare(cmdThreadReferenceCurrentContendedMonitor, "ThreadReference.CurrentContendedMonitor",
		single("thread", fieldThreadID))
	declare(cmdThreadReferenceStop, "ThreadReference.Stop",
		single("thread", fieldThreadID),
		single("throwable", fieldObjectID))
	declare(cmdThreadReferenceInterrupt, "ThreadReference.Interrupt",
		single("thread", fieldThreadID))
	declare(cmdThreadReferenceSuspendCount, "ThreadReference.SuspendCount",
		single("thread", fieldThreadID))
	declare(cmdThreadReferenceOwnedMonitorsStackDepthInfo, "ThreadReference.OwnedMonitorsStackDepthInfo",
		single("thread", fieldThreadID))
	declare(cmdThreadReferenceForceEarlyReturn, "ThreadReference.ForceEarlyReturn",
		single("thread", fieldThreadID),
		single("value", fieldValue))

	// ThreadGroupReference command set.
	declare(cmdThreadGroupReferenceName, "ThreadGroupReference.Name",
		single("group", fieldThreadGroupID))
	declare(cmdThreadGroupReferenceParent, "ThreadGroupReference.Parent",
		single("group", fieldThreadGroupID))
	declare(cmdThreadGroupReferenceChildren, "ThreadGroupReference.Children",
		single("group", fieldThreadGroupID))

	// ArrayReference command set.
	declare(cmdArrayReferenceLength, "ArrayReference.Length",
		single("arrayObject", fieldArrayID))
	declare(cmdArrayReferenceGetValues, "ArrayReference.GetValues",
		single("arrayObject", fieldArrayID),
		single("firstIndex", fieldInt),
		single("length", fieldInt))
	declareCustom(cmdArrayReferenceSetValues, "ArrayReference.SetValues",
		encodeArraySetValues)

	// ClassLoaderReference command set.
	declare(cmdClassLoaderReferenceVisibleClasses, "ClassLoaderReference.VisibleClasses",
		single("classLoaderObject", fieldClassLoaderID))

	// EventRequest command set.
	declareCustom(cmdEventRequestSet, "EventRequest.Set",
		encodeEventRequestSet)
	declare(cmdEventRequestClear, "EventRequest.Clear",
		single("eventKind", fieldByte),
		single("requestID", fieldInt))
	declare(cmdEventRequestClearAllBreakpoints, "EventRequest.ClearAllBreakpoints")

	// StackFrame command set.
	declare(cmdStackFrameGetValues, "StackFrame.GetValues",
		single("thread", fieldThreadID),
		single("frame", fieldFrameID),
		tuples("slots",
			single("slot", fieldInt),
			single("sigbyte", fieldByte)))
	declare(cmdStackFrameSetValues, "StackFrame.SetValues",
		single("thread", fieldThreadID),
		single("frame", fieldFrameID),
		tuples("slotValues",
			single("slot", fieldInt),
			single("slotValue", fieldValue)))
	declare(cmdStackFrameThisObject, "StackFrame.ThisObject",
		single("thread", fieldThreadID),
		single("frame", fieldFrameID))
	declare(cmdStackFramePopFrames, "StackFrame.PopFrames",
		single("thread", fieldThreadID),
		single("frame", fieldFrameID))

	// ClassObjectReference command set.
	declare(cmdClassObjectReferenceReflectedType, "ClassObjectReference.ReflectedType",
		single("classObject", fieldClassObjectID))
}
