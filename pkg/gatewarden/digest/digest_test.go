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

package digest

import (
	"testing"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
)

func TestSHA256Base64EmptyString(t *testing.T) {
	got := SHA256Base64([]byte(""))
	want := "47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU="
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSHA256Base64HelloWorld(t *testing.T) {
	got := SHA256Base64([]byte("Hello, World!"))
	want := "3/1gIbsr1bCvZ2KQgJ7DpTGR3YHH9wpLKGiKNiGCmG8="
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFormatHeader(t *testing.T) {
	got := FormatHeader([]byte("Hello, World!"))
	want := "sha-256=3/1gIbsr1bCvZ2KQgJ7DpTGR3YHH9wpLKGiKNiGCmG8="
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestParseHeaderCaseInsensitivePrefix(t *testing.T) {
	for _, header := range []string{
		"sha-256=abcd",
		"SHA-256=abcd",
		"Sha-256=abcd",
	} {
		payload, ok := ParseHeader(header)
		if !ok {
			t.Fatalf("ParseHeader(%q) not ok", header)
		}
		if payload != "abcd" {
			t.Fatalf("ParseHeader(%q) = %q, want abcd", header, payload)
		}
	}
}

func TestParseHeaderRejectsOtherAlgorithms(t *testing.T) {
	if _, ok := ParseHeader("md5=abcd"); ok {
		t.Fatal("expected ok=false for md5= prefix")
	}
}

func TestVerifyAbsentHeaderOK(t *testing.T) {
	if err := Verify([]byte("anything"), ""); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestVerifyMatchingHeaderOK(t *testing.T) {
	body := []byte("Hello, World!")
	if err := Verify(body, FormatHeader(body)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestVerifyMismatchedHeader(t *testing.T) {
	err := Verify([]byte("tampered body"), FormatHeader([]byte("original body")))
	if !errs.Is(err, errs.DigestMismatch) {
		t.Fatalf("expected DigestMismatch, got %v", err)
	}
}

func TestVerifyMalformedHeader(t *testing.T) {
	err := Verify([]byte("body"), "not-a-digest-header")
	if !errs.Is(err, errs.DigestMismatch) {
		t.Fatalf("expected DigestMismatch, got %v", err)
	}
}
