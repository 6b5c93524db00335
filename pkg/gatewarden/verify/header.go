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

// Package verify decodes Keygen-Signature headers and performs Ed25519
// verification against the signing string they cover.
package verify

import (
	"strings"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
)

// ParsedSignature is the decoded form of a Keygen-Signature header.
type ParsedSignature struct {
	KeyID     string
	Algorithm string
	Signature string
	Headers   []string
}

// ParseHeader splits a Keygen-Signature header on commas, then each segment
// on the first '=', trimming whitespace and a single pair of surrounding
// double quotes from the value. Duplicate keys resolve last-write-wins.
// algorithm must equal "ed25519"; signature must be non-empty; keyid and
// headers are optional.
func ParseHeader(header string) (ParsedSignature, error) {
	params := make(map[string]string)
	for _, segment := range strings.Split(header, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		idx := strings.Index(segment, "=")
		if idx < 0 {
			return ParsedSignature{}, errs.NewProtocolError("malformed signature parameter: %q", segment)
		}
		key := strings.ToLower(strings.TrimSpace(segment[:idx]))
		value := strings.TrimSpace(segment[idx+1:])
		value = unquote(value)
		params[key] = value
	}

	algorithm := params["algorithm"]
	if algorithm != "ed25519" {
		return ParsedSignature{}, errs.NewProtocolError("unsupported signature algorithm: %q", algorithm)
	}
	signature := params["signature"]
	if signature == "" {
		return ParsedSignature{}, errs.NewProtocolError("signature parameter missing or empty")
	}

	parsed := ParsedSignature{
		KeyID:     params["keyid"],
		Algorithm: algorithm,
		Signature: signature,
	}
	if headers, ok := params["headers"]; ok && headers != "" {
		parsed.Headers = strings.Fields(headers)
	}
	return parsed, nil
}

func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}
