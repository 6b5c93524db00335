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

package protocol

import "github.com/microcosm-cc/bluemonday"

var sanitizePolicy = bluemonday.StrictPolicy()

// SanitizeServerString strips any markup from a string the licensing
// service controls before it reaches a host application; State.Sanitize
// applies it to meta.detail (data.attributes.name is not carried into
// State). The server's response is cryptographically authentic,
// but authentic does not mean safe to render: a compromised or malicious
// account on the service side could still embed markup in free-text fields.
func SanitizeServerString(s string) string {
	return sanitizePolicy.Sanitize(s)
}

// Sanitize returns a copy of state with Detail sanitized.
func (s State) Sanitize() State {
	s.Detail = SanitizeServerString(s.Detail)
	return s
}
