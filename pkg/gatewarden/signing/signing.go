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

// Package signing builds the canonical Cavage HTTP-signatures signing
// string covering (request-target), host, date, and an optional digest.
package signing

import "strings"

// Build returns the canonical signing string for method, path, host, date,
// and an optional digest header value. digest may be empty, in which case
// the digest line is omitted entirely -- an empty line would invalidate the
// signature, so the line is gated on presence, not printed unconditionally.
func Build(method, path, host, date, digestHeader string) string {
	lines := []string{
		"(request-target): " + strings.ToLower(method) + " " + path,
		"host: " + host,
		"date: " + date,
	}
	if digestHeader != "" {
		lines = append(lines, "digest: "+digestHeader)
	}
	return strings.Join(lines, "\n")
}
