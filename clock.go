// Copyright 2025 Jason Stonebraker
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gatewarden

import "github.com/jmhodges/clock"

// Clock is the capability every time-dependent operation in this module
// takes as an explicit parameter, never a global. Production code uses
// SystemClock; tests use a clock.FakeClock via NewFakeClock.
type Clock = clock.Clock

// SystemClock returns a Clock backed by the real wall clock.
func SystemClock() Clock {
	return clock.New()
}

// NewFakeClock returns a settable, advanceable clock for tests.
func NewFakeClock() clock.FakeClock {
	return clock.NewFake()
}
