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

import "context"

// ShouldStop returns a chan that is closed when tasks running with the given
// context should stop.
func ShouldStop(ctx context.Context) <-chan struct{} {
	return ctx.Done()
}

// StopReason returns the reason the context was stopped, or nil if it has not
// been stopped.
func StopReason(ctx context.Context) error {
	return ctx.Err()
}

// Stopped returns true if tasks running with the given context should stop.
func Stopped(ctx context.Context) bool {
	return ctx.Err() != nil
}
