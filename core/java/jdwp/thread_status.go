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

// ThreadStatus is an enumerator of thread state.
type ThreadStatus int32

const (
	// ThreadStatusZombie is the status of a terminated thread.
	ThreadStatusZombie = ThreadStatus(0)
	// ThreadStatusRunning is the status of a runnable thread.
	ThreadStatusRunning = ThreadStatus(1)
	// ThreadStatusSleeping is the status of a sleeping thread.
	ThreadStatusSleeping = ThreadStatus(2)
	// ThreadStatusMonitor is the status of a thread blocked on a monitor.
	ThreadStatusMonitor = ThreadStatus(3)
	// ThreadStatusWait is the status of a waiting thread.
	ThreadStatusWait = ThreadStatus(4)
)

// SuspendStatusSuspended is the only bit of the suspend status word.
const SuspendStatusSuspended = 1

func (s ThreadStatus) String() string {
	switch s {
	case ThreadStatusZombie:
		return "Zombie"
	case ThreadStatusRunning:
		return "Running"
	case ThreadStatusSleeping:
		return "Sleeping"
	case ThreadStatusMonitor:
		return "Monitor"
	case ThreadStatusWait:
		return "Wait"
	default:
		return fmt.Sprintf("ThreadStatus<%d>", int32(s))
	}
}
