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

import "github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"

// Kind and Error are re-exported at the module root so callers never need to
// import the internal errs package directly.
type Kind = errs.Kind
type Error = errs.Error

const (
	ConfigError         = errs.ConfigError
	MissingLicense       = errs.MissingLicense
	KeygenTransport      = errs.KeygenTransport
	SignatureMissing     = errs.SignatureMissing
	SignatureInvalid     = errs.SignatureInvalid
	DigestMismatch       = errs.DigestMismatch
	ResponseTooOld       = errs.ResponseTooOld
	ResponseFromFuture   = errs.ResponseFromFuture
	ProtocolError        = errs.ProtocolError
	CacheIO              = errs.CacheIO
	CacheTampered        = errs.CacheTampered
	CacheExpired         = errs.CacheExpired
	InvalidLicense       = errs.InvalidLicense
	EntitlementMissing   = errs.EntitlementMissing
	UsageLimitExceeded   = errs.UsageLimitExceeded
	MeterIO              = errs.MeterIO
)

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	return errs.Is(err, kind)
}
