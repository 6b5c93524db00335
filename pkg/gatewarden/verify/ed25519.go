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

package verify

import (
	"crypto/ed25519"
	"encoding/base64"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
)

// Ed25519 verifies a base64-encoded signature against message using pub.
// The signature must decode to exactly 64 bytes; any other length, or a
// cryptographic verification failure, is reported as SignatureInvalid --
// never as a protocol error, since the wire framing was fine and only the
// cryptographic claim failed.
func Ed25519(pub ed25519.PublicKey, message []byte, signatureB64 string) error {
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return errs.NewSignatureInvalid("signature is not valid base64: %v", err)
	}
	if len(sig) != ed25519.SignatureSize {
		return errs.NewSignatureInvalid("signature must be %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}
	if !ed25519.Verify(pub, message, sig) {
		return errs.NewSignatureInvalid("ed25519 verification failed")
	}
	return nil
}
