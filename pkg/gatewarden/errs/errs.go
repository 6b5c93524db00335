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

// Package errs defines the error taxonomy shared by every package in this
// module. It is deliberately a leaf package with no internal dependencies so
// that both the manager and the packages it composes can construct and
// inspect these errors without an import cycle.
package errs

import "fmt"

// Kind categorizes every failure the core can surface.
type Kind int

const (
	// ConfigError means a configuration pre-condition was violated.
	ConfigError Kind = iota
	// MissingLicense means the caller passed an empty key.
	MissingLicense
	// KeygenTransport means the request could not reach the licensing
	// service (DNS, TLS, timeout, connection refused). This is the only
	// kind that engages offline fallback.
	KeygenTransport
	// SignatureMissing means the response lacked a Date or Keygen-Signature
	// header. Kept distinct from SignatureInvalid so telemetry can tell
	// "no crypto was presented" from "crypto did not verify."
	SignatureMissing
	// SignatureInvalid means Ed25519 verification failed, or the signature
	// was not exactly 64 bytes.
	SignatureInvalid
	// DigestMismatch means the body hash did not match the Digest header.
	DigestMismatch
	// ResponseTooOld means the response Date is older than the freshness
	// window allows.
	ResponseTooOld
	// ResponseFromFuture means the response Date is further ahead than the
	// freshness window allows.
	ResponseFromFuture
	// ProtocolError means a header, body, or date could not be parsed.
	ProtocolError
	// CacheIO means a cache read/write/serialize operation failed.
	CacheIO
	// CacheTampered means a cached record's signature or digest failed to
	// re-verify, or its age is negative. Kept distinct from SignatureInvalid:
	// one means the local store is compromised, the other means the wire is.
	CacheTampered
	// CacheExpired means a cached record's age exceeded the offline grace
	// period.
	CacheExpired
	// InvalidLicense means the server reported meta.valid == false.
	InvalidLicense
	// EntitlementMissing means a required entitlement was not present in
	// the server's echoed scope.
	EntitlementMissing
	// UsageLimitExceeded means honoring the request would exceed the
	// license's usage cap.
	UsageLimitExceeded
	// MeterIO means usage meter persistence failed.
	MeterIO
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case MissingLicense:
		return "MissingLicense"
	case KeygenTransport:
		return "KeygenTransport"
	case SignatureMissing:
		return "SignatureMissing"
	case SignatureInvalid:
		return "SignatureInvalid"
	case DigestMismatch:
		return "DigestMismatch"
	case ResponseTooOld:
		return "ResponseTooOld"
	case ResponseFromFuture:
		return "ResponseFromFuture"
	case ProtocolError:
		return "ProtocolError"
	case CacheIO:
		return "CacheIO"
	case CacheTampered:
		return "CacheTampered"
	case CacheExpired:
		return "CacheExpired"
	case InvalidLicense:
		return "InvalidLicense"
	case EntitlementMissing:
		return "EntitlementMissing"
	case UsageLimitExceeded:
		return "UsageLimitExceeded"
	case MeterIO:
		return "MeterIO"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type the core returns. AgeSeconds is set only
// for ResponseTooOld; Code is set only for EntitlementMissing.
type Error struct {
	Kind       Kind
	Detail     string
	AgeSeconds int64
	Code       string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ResponseTooOld:
		return fmt.Sprintf("%s: response age %ds exceeds freshness window", e.Kind, e.AgeSeconds)
	case EntitlementMissing:
		return fmt.Sprintf("%s: %s", e.Kind, e.Code)
	default:
		if e.Detail == "" {
			return e.Kind.String()
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
}

// New builds a plain *Error of the given kind.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Is reports whether err is an *Error of the given kind. Direct type
// assertion is sufficient here because this package never wraps an *Error
// inside another error value.
func Is(err error, kind Kind) bool {
	ge, ok := err.(*Error)
	if !ok {
		return false
	}
	return ge.Kind == kind
}

// NewConfigError reports a violated configuration pre-condition.
func NewConfigError(format string, args ...interface{}) error {
	return New(ConfigError, format, args...)
}

// NewMissingLicense reports an empty license key.
func NewMissingLicense() error {
	return &Error{Kind: MissingLicense, Detail: "license key is empty"}
}

// NewKeygenTransport reports a transport-level failure reaching the
// licensing service.
func NewKeygenTransport(format string, args ...interface{}) error {
	return New(KeygenTransport, format, args...)
}

// NewSignatureMissing reports an absent Date or Keygen-Signature header.
func NewSignatureMissing() error {
	return &Error{Kind: SignatureMissing, Detail: "response missing date or signature header"}
}

// NewSignatureInvalid reports an Ed25519 verification failure.
func NewSignatureInvalid(format string, args ...interface{}) error {
	return New(SignatureInvalid, format, args...)
}

// NewDigestMismatch reports a body hash that does not match the Digest
// header.
func NewDigestMismatch() error {
	return &Error{Kind: DigestMismatch, Detail: "body digest does not match Digest header"}
}

// NewResponseTooOld reports a response older than the freshness window.
func NewResponseTooOld(ageSeconds int64) error {
	return &Error{Kind: ResponseTooOld, AgeSeconds: ageSeconds}
}

// NewResponseFromFuture reports a response dated further ahead than the
// freshness tolerance.
func NewResponseFromFuture() error {
	return &Error{Kind: ResponseFromFuture, Detail: "response date is ahead of the freshness tolerance"}
}

// NewProtocolError reports an unparseable header, body, or date.
func NewProtocolError(format string, args ...interface{}) error {
	return New(ProtocolError, format, args...)
}

// NewCacheIO reports a cache read/write/serialize failure.
func NewCacheIO(format string, args ...interface{}) error {
	return New(CacheIO, format, args...)
}

// NewCacheTampered reports a cached record that failed to re-verify.
func NewCacheTampered(format string, args ...interface{}) error {
	return New(CacheTampered, format, args...)
}

// NewCacheExpired reports a cached record whose age exceeded the offline
// grace period.
func NewCacheExpired() error {
	return &Error{Kind: CacheExpired, Detail: "cached record exceeded offline grace period"}
}

// NewInvalidLicense reports a server-asserted invalid license.
func NewInvalidLicense() error {
	return &Error{Kind: InvalidLicense, Detail: "license is not valid"}
}

// NewEntitlementMissing reports a required entitlement the server did not
// echo back.
func NewEntitlementMissing(code string) error {
	return &Error{Kind: EntitlementMissing, Code: code}
}

// NewUsageLimitExceeded reports a usage cap that would be exceeded.
func NewUsageLimitExceeded() error {
	return &Error{Kind: UsageLimitExceeded, Detail: "usage cap would be exceeded"}
}

// NewMeterIO reports a usage meter persistence failure.
func NewMeterIO(format string, args ...interface{}) error {
	return New(MeterIO, format, args...)
}
