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

// Version describes the JDWP version
type Version struct {
	Description string // Text information on the VM version
	JDWPMajor   int    // Major JDWP Version number
	JDWPMinor   int    // Minor JDWP Version number
	Version     string // Target VM JRE version, as in the java.version property
	Name        string // Target VM name, as in the java.vm.name property
}

// GetVersion returns the JDWP version from the server.
func (c *Connection) GetVersion() (Version, error) {
	res := Version{}
	err := c.get(cmdVirtualMachineVersion, nil, func(r binary.Reader) error {
		res.Description = readString(r)
		res.JDWPMajor = int(r.Int32())
		res.JDWPMinor = int(r.Int32())
		res.Version = readString(r)
		res.Name = readString(r)
		return nil
	})
	return res, err
}

// ClassInfo describes a loaded classes matching the requested signature.
type ClassInfo struct {
	Kind      TypeTag         // Kind of reference type
	TypeID    ReferenceTypeID // Matching loaded reference type
	Signature string          // The class signature
	Status    ClassStatus     // The class status
}

// ClassID returns the class identifier for the ClassInfo.
func (c ClassInfo) ClassID() ClassID {
	return ClassID(c.TypeID)
}

// GetClassesBySignature returns all the loaded classes matching the requested
// signature from the server.
func (c *Connection) GetClassesBySignature(signature string) ([]ClassInfo, error) {
	var res []ClassInfo
	err := c.get(cmdVirtualMachineClassesBySignature, []interface{}{signature},
		func(r binary.Reader) error {
			count := int(r.Int32())
			res = make([]ClassInfo, 0, count)
			for i := 0; i < count && r.Error() == nil; i++ {
				res = append(res, ClassInfo{
					Kind:      TypeTag(r.Uint8()),
					TypeID:    readReferenceTypeID(r, &c.sizes),
					Signature: signature,
					Status:    ClassStatus(r.Int32()),
				})
			}
			return nil
		})
	return res, err
}

// GetAllClasses returns all the classes loaded by the VM.
func (c *Connection) GetAllClasses() ([]ClassInfo, error) {
	var res []ClassInfo
	err := c.get(cmdVirtualMachineAllClasses, nil, func(r binary.Reader) error {
		count := int(r.Int32())
		res = make([]ClassInfo, 0, count)
		for i := 0; i < count && r.Error() == nil; i++ {
			res = append(res, ClassInfo{
				Kind:      TypeTag(r.Uint8()),
				TypeID:    readReferenceTypeID(r, &c.sizes),
				Signature: readString(r),
				Status:    ClassStatus(r.Int32()),
			})
		}
		return nil
	})
	return res, err
}

// GetAllThreads returns all the active threads by ID.
func (c *Connection) GetAllThreads() ([]ThreadID, error) {
	var res []ThreadID
	err := c.get(cmdVirtualMachineAllThreads, nil, func(r binary.Reader) error {
		count := int(r.Int32())
		res = make([]ThreadID, 0, count)
		for i := 0; i < count && r.Error() == nil; i++ {
			res = append(res, ThreadID(readObjectID(r, &c.sizes)))
		}
		return nil
	})
	return res, err
}

// GetTopLevelThreadGroups returns the thread groups that do not have a
// parent.
func (c *Connection) GetTopLevelThreadGroups() ([]ThreadGroupID, error) {
	var res []ThreadGroupID
	err := c.get(cmdVirtualMachineTopLevelThreadGroups, nil, func(r binary.Reader) error {
		count := int(r.Int32())
		res = make([]ThreadGroupID, 0, count)
		for i := 0; i < count && r.Error() == nil; i++ {
			res = append(res, ThreadGroupID(readObjectID(r, &c.sizes)))
		}
		return nil
	})
	return res, err
}

// GetIDSizes returns the sizes of all the variably sized data types.
func (c *Connection) GetIDSizes() (IDSizes, error) {
	res := IDSizes{}
	err := c.get(cmdVirtualMachineIDSizes, nil, func(r binary.Reader) error {
		res.FieldIDSize = r.Int32()
		res.MethodIDSize = r.Int32()
		res.ObjectIDSize = r.Int32()
		res.ReferenceTypeIDSize = r.Int32()
		res.FrameIDSize = r.Int32()
		return nil
	})
	return res, err
}

// SuspendAll suspends all threads.
func (c *Connection) SuspendAll() error {
	return c.get(cmdVirtualMachineSuspend, nil, nil)
}

// ResumeAll resumes all threads.
func (c *Connection) ResumeAll() error {
	return c.get(cmdVirtualMachineResume, nil, nil)
}

// ResumeAllExcept resumes all threads except for the specified thread.
func (c *Connection) ResumeAllExcept(thread ThreadID) error {
	if err := c.Suspend(thread); err != nil {
		return err
	}
	return c.ResumeAll()
}

// CreateString returns the StringID for the given string.
func (c *Connection) CreateString(str string) (StringID, error) {
	res := StringID(0)
	err := c.get(cmdVirtualMachineCreateString, []interface{}{str},
		func(r binary.Reader) error {
			res = StringID(readObjectID(r, &c.sizes))
			return nil
		})
	return res, err
}

// Dispose invalidates this virtual machine mirror.
func (c *Connection) Dispose() error {
	return c.get(cmdVirtualMachineDispose, nil, nil)
}

// Exit terminates the VM with the given exit code.
func (c *Connection) Exit(code int) error {
	return c.get(cmdVirtualMachineExit, []interface{}{code}, nil)
}

// DisposeObjectRequest names an object whose debugger-side reference count
// should drop by RefCount.
type DisposeObjectRequest struct {
	Object   ObjectID
	RefCount int
}

// DisposeObjects releases debugger-held references to the given objects.
func (c *Connection) DisposeObjects(requests []DisposeObjectRequest) error {
	return c.get(cmdVirtualMachineDisposeObjects, []interface{}{requests}, nil)
}

// HoldEvents tells the VM to queue events rather than deliver them.
func (c *Connection) HoldEvents() error {
	return c.get(cmdVirtualMachineHoldEvents, nil, nil)
}

// ReleaseEvents resumes event delivery after HoldEvents.
func (c *Connection) ReleaseEvents() error {
	return c.get(cmdVirtualMachineReleaseEvents, nil, nil)
}
