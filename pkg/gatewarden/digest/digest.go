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

// Package digest implements the sha-256=<base64> Digest header convention:
// computing, formatting, parsing, and verifying it against a body.
package digest

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
)

const headerPrefixLower = "sha-256="

// SHA256Base64 returns the standard base64 (with padding) encoding of the
// SHA-256 digest of data.
func SHA256Base64(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// FormatHeader returns the full Digest header value for data.
func FormatHeader(data []byte) string {
	return headerPrefixLower + SHA256Base64(data)
}

// ParseHeader extracts the base64 payload from a Digest header value,
// accepting a case-insensitive "sha-256=" prefix. ok is false if the header
// does not carry that prefix.
func ParseHeader(header string) (payload string, ok bool) {
	trimmed := strings.TrimSpace(header)
	if len(trimmed) < len(headerPrefixLower) {
		return "", false
	}
	prefix := trimmed[:len(headerPrefixLower)]
	if !strings.EqualFold(prefix, headerPrefixLower) {
		return "", false
	}
	return trimmed[len(headerPrefixLower):], true
}

// Verify checks body against an optional Digest header value. An absent
// header (empty string) is accepted: the caller may not have sent one. A
// present-but-unparseable or mismatched header is a DigestMismatch.
func Verify(body []byte, header string) error {
	if header == "" {
		return nil
	}
	payload, ok := ParseHeader(header)
	if !ok {
		return errs.NewDigestMismatch()
	}
	if payload != SHA256Base64(body) {
		return errs.NewDigestMismatch()
	}
	return nil
}
