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

package signing

import "testing"

func TestBuildOmitsDigestLineWhenAbsent(t *testing.T) {
	got := Build("POST", "/v1/accounts/test/licenses/actions/validate-key", "api.keygen.sh", "Wed, 09 Jun 2021 16:08:15 GMT", "")
	want := "(request-target): post /v1/accounts/test/licenses/actions/validate-key\n" +
		"host: api.keygen.sh\n" +
		"date: Wed, 09 Jun 2021 16:08:15 GMT"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestBuildIncludesDigestLineWhenPresent(t *testing.T) {
	got := Build("POST", "/v1/accounts/test/licenses/actions/validate-key", "api.keygen.sh", "Wed, 09 Jun 2021 16:08:15 GMT", "sha-256=827Op2un8OT9KJuN1siRs5h6mxjrUh4LJag66dQjnIM=")
	want := "(request-target): post /v1/accounts/test/licenses/actions/validate-key\n" +
		"host: api.keygen.sh\n" +
		"date: Wed, 09 Jun 2021 16:08:15 GMT\n" +
		"digest: sha-256=827Op2un8OT9KJuN1siRs5h6mxjrUh4LJag66dQjnIM="
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestBuildMethodCaseNotObservable(t *testing.T) {
	a := Build("POST", "/p", "h", "d", "")
	b := Build("post", "/p", "h", "d", "")
	c := Build("PoSt", "/p", "h", "d", "")
	if a != b || b != c {
		t.Fatalf("method case leaked into signing string: %q %q %q", a, b, c)
	}
}

func TestBuildEquivalenceWithAndWithoutDigest(t *testing.T) {
	withoutDigest := Build("post", "/v1/accounts/keygen/licenses?limit=1", "api.keygen.sh", "Wed, 09 Jun 2021 16:08:15 GMT", "")
	withDigest := Build("post", "/v1/accounts/keygen/licenses?limit=1", "api.keygen.sh", "Wed, 09 Jun 2021 16:08:15 GMT", "sha-256=abc=")
	suffix := "\ndigest: sha-256=abc="
	if withDigest[:len(withDigest)-len(suffix)] != withoutDigest {
		t.Fatalf("removing digest suffix did not recover the no-digest form:\nwith:    %q\nwithout: %q", withDigest, withoutDigest)
	}
}

func TestBuildNoTrailingNewline(t *testing.T) {
	got := Build("post", "/p", "h", "d", "")
	if len(got) > 0 && got[len(got)-1] == '\n' {
		t.Fatalf("signing string has a trailing newline: %q", got)
	}
}
