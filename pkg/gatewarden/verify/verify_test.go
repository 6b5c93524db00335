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
	"testing"
	"time"

	"github.com/Michael-A-Kuykendall/gatewarden/internal/testkeys"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
)

const testPublicKeyHex = testkeys.PublicKeyHex

func testKeyPair(t *testing.T) (ed25519.PrivateKey, ed25519.PublicKey) {
	t.Helper()
	priv, pub := testkeys.KeyPair()
	return priv, pub
}

func TestParseHeaderValid(t *testing.T) {
	parsed, err := ParseHeader(`keyid="default", algorithm="ed25519", signature="c2lnbg==", headers="(request-target) host date digest"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.KeyID != "default" || parsed.Algorithm != "ed25519" || parsed.Signature != "c2lnbg==" {
		t.Fatalf("unexpected parse result: %+v", parsed)
	}
	want := []string{"(request-target)", "host", "date", "digest"}
	if len(parsed.Headers) != len(want) {
		t.Fatalf("headers = %v, want %v", parsed.Headers, want)
	}
}

func TestParseHeaderRejectsNonEd25519(t *testing.T) {
	_, err := ParseHeader(`algorithm="rsa-sha256", signature="abc"`)
	if !errs.Is(err, errs.ProtocolError) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}

func TestParseHeaderRequiresSignature(t *testing.T) {
	_, err := ParseHeader(`algorithm="ed25519"`)
	if !errs.Is(err, errs.ProtocolError) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}

func TestParseHeaderDuplicateKeysLastWriteWins(t *testing.T) {
	parsed, err := ParseHeader(`algorithm="ed25519", signature="first", signature="second"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Signature != "second" {
		t.Fatalf("signature = %q, want second", parsed.Signature)
	}
}

func TestDecodePublicKeyRoundTrip(t *testing.T) {
	_, pub := testKeyPair(t)
	decoded, err := DecodePublicKey(testPublicKeyHex)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.Equal(pub) {
		t.Fatal("decoded key does not equal original")
	}
	// Second call should hit the cache and still produce the same key.
	decodedAgain, err := DecodePublicKey(testPublicKeyHex)
	if err != nil {
		t.Fatalf("unexpected error on cached decode: %v", err)
	}
	if !decodedAgain.Equal(pub) {
		t.Fatal("cached decode does not equal original")
	}
}

func TestDecodePublicKeyRejectsWrongLength(t *testing.T) {
	_, err := DecodePublicKey("abcd")
	if !errs.Is(err, errs.ConfigError) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestEd25519ValidSignature(t *testing.T) {
	priv, pub := testKeyPair(t)
	message := []byte("hello world")
	sig := ed25519.Sign(priv, message)
	sigB64 := base64.StdEncoding.EncodeToString(sig)
	if err := Ed25519(pub, message, sigB64); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEd25519WrongLengthSignature(t *testing.T) {
	_, pub := testKeyPair(t)
	err := Ed25519(pub, []byte("hello"), base64.StdEncoding.EncodeToString([]byte("short")))
	if !errs.Is(err, errs.SignatureInvalid) {
		t.Fatalf("expected SignatureInvalid, got %v", err)
	}
}

func TestEd25519TamperedMessage(t *testing.T) {
	priv, pub := testKeyPair(t)
	sig := ed25519.Sign(priv, []byte("original"))
	sigB64 := base64.StdEncoding.EncodeToString(sig)
	err := Ed25519(pub, []byte("tampered"), sigB64)
	if !errs.Is(err, errs.SignatureInvalid) {
		t.Fatalf("expected SignatureInvalid, got %v", err)
	}
}

func TestCheckFreshnessBoundaries(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		date    time.Time
		wantErr *errs.Kind
	}{
		{"exactly at max age passes", now.Add(-300 * time.Second), nil},
		{"one second past max age fails", now.Add(-301 * time.Second), kindPtr(errs.ResponseTooOld)},
		{"exactly at future tolerance passes", now.Add(60 * time.Second), nil},
		{"one second past future tolerance fails", now.Add(61 * time.Second), kindPtr(errs.ResponseFromFuture)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckFreshness(tc.date, now)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errs.Is(err, *tc.wantErr) {
				t.Fatalf("expected %v, got %v", *tc.wantErr, err)
			}
		})
	}
}

func kindPtr(k errs.Kind) *errs.Kind { return &k }
