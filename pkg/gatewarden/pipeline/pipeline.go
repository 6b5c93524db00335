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

// Package pipeline composes the digest, signing-string, and Ed25519
// verification steps into the fixed-order checks a captured HTTP response
// must pass before its body is trusted.
package pipeline

import (
	"time"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/digest"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/signing"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/verify"
)

// Response is the captured form of an HTTP response: only what the pipeline
// needs, nothing parsed yet.
type Response struct {
	Date        string
	Signature   string
	Digest      string
	Body        []byte
	RequestPath string
	Host        string
}

// VerifyResponse runs the full live-traffic pipeline: presence of Date and
// Signature, digest check, signature-header parse, public key decode,
// signing-string reconstruction, Ed25519 verification, then the freshness
// window. Steps run in this order and stop at the first failure.
func VerifyResponse(resp Response, publicKeyHex string, now time.Time) error {
	if resp.Date == "" || resp.Signature == "" {
		return errs.NewSignatureMissing()
	}
	if err := digest.Verify(resp.Body, resp.Digest); err != nil {
		return err
	}
	parsed, err := verify.ParseHeader(resp.Signature)
	if err != nil {
		return err
	}
	pub, err := verify.DecodePublicKey(publicKeyHex)
	if err != nil {
		return err
	}
	signingString := signing.Build("post", resp.RequestPath, resp.Host, resp.Date, resp.Digest)
	if err := verify.Ed25519(pub, []byte(signingString), parsed.Signature); err != nil {
		return err
	}
	return verify.CheckDateFreshness(resp.Date, now)
}

// VerifyResponseSignatureOnly runs every step of VerifyResponse except the
// freshness check. Used by the cache path, where the offline grace window
// replaces the live freshness window.
func VerifyResponseSignatureOnly(resp Response, publicKeyHex string) error {
	if resp.Date == "" || resp.Signature == "" {
		return errs.NewSignatureMissing()
	}
	if err := digest.Verify(resp.Body, resp.Digest); err != nil {
		return err
	}
	parsed, err := verify.ParseHeader(resp.Signature)
	if err != nil {
		return err
	}
	pub, err := verify.DecodePublicKey(publicKeyHex)
	if err != nil {
		return err
	}
	signingString := signing.Build("post", resp.RequestPath, resp.Host, resp.Date, resp.Digest)
	return verify.Ed25519(pub, []byte(signingString), parsed.Signature)
}
