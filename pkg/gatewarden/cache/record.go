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

// Package cache implements the authenticated, on-disk cache of the last
// verified license response: a record type that re-verifies itself on load,
// and a namespaced store that persists it atomically.
package cache

import (
	"encoding/json"
	"time"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/pipeline"
)

// Record is the persisted, authenticated form of a verified response.
type Record struct {
	Date        string    `json:"date"`
	Signature   string    `json:"signature"`
	Digest      string    `json:"digest,omitempty"`
	Body        []byte    `json:"body"`
	CachedAt    time.Time `json:"cached_at"`
	RequestPath string    `json:"request_path"`
	Host        string    `json:"host"`
}

// New builds a Record, setting cached_at to now, the caller's current clock
// reading at the moment of construction.
func New(date, signature, digestHeader string, body []byte, requestPath, host string, now time.Time) Record {
	return Record{
		Date:        date,
		Signature:   signature,
		Digest:      digestHeader,
		Body:        body,
		CachedAt:    now,
		RequestPath: requestPath,
		Host:        host,
	}
}

// ToJSON renders the record as pretty-printed JSON.
func (r Record) ToJSON() ([]byte, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, errs.NewCacheIO("encode cache record: %v", err)
	}
	return out, nil
}

// FromJSON parses a previously-serialized record.
func FromJSON(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, errs.NewCacheIO("decode cache record: %v", err)
	}
	return r, nil
}

// Verify re-applies the signature-only verification pipeline against the
// record's own stored fields, then enforces the offline grace policy.
//
// A signature or digest failure here is reported as CacheTampered, never as
// SignatureInvalid/DigestMismatch: those kinds mean the wire was
// compromised, CacheTampered means the local store was. A negative age
// (cached_at in the future) is also treated as tampering, not clock skew.
// Exactly age == grace is accepted; age > grace is CacheExpired.
func (r Record) Verify(publicKeyHex string, offlineGrace time.Duration, now time.Time) error {
	resp := pipeline.Response{
		Date:        r.Date,
		Signature:   r.Signature,
		Digest:      r.Digest,
		Body:        r.Body,
		RequestPath: r.RequestPath,
		Host:        r.Host,
	}
	if err := pipeline.VerifyResponseSignatureOnly(resp, publicKeyHex); err != nil {
		return errs.NewCacheTampered("%v", err)
	}

	age := now.Sub(r.CachedAt)
	if age < 0 {
		return errs.NewCacheTampered("cached_at is in the future")
	}
	if age > offlineGrace {
		return errs.NewCacheExpired()
	}
	return nil
}
