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

package task

import (
	"context"
	"time"
)

// Signal is used to notify that an event has occurred.
// A Signal is fired at most once, and observers may wait on it any number of
// times; waits that start after the fire complete immediately.
type Signal <-chan struct{}

// NewSignal returns a new unfired Signal, and the Task that fires it.
func NewSignal() (Signal, Task) {
	c := make(chan struct{})
	return c, Once(func(context.Context) error { close(c); return nil })
}

// FiredSignal is a signal that is already in the fired state.
var FiredSignal Signal

func init() {
	fired := make(chan struct{})
	close(fired)
	FiredSignal = fired
}

// Fired returns true if the signal has been fired.
func (s Signal) Fired() bool {
	select {
	case <-s:
		return true
	default:
		return false
	}
}

// Wait blocks until the signal has been fired or the context has been
// cancelled, returning true if the signal was fired.
func (s Signal) Wait(ctx context.Context) bool {
	select {
	case <-s:
		return true
	case <-ShouldStop(ctx):
		return false
	}
}

// TryWait waits for the signal to fire, the context to be cancelled or the
// timeout, returning true only if the signal was fired.
func (s Signal) TryWait(ctx context.Context, timeout time.Duration) bool {
	select {
	case <-s:
		return true
	case <-ShouldStop(ctx):
		return false
	case <-time.After(timeout):
		return false
	}
}
