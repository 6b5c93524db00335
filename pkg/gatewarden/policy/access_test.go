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

package policy

import (
	"testing"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/protocol"
)

func TestCheckAccessInvalidLicense(t *testing.T) {
	state := protocol.State{Valid: false}
	err := CheckAccess(state, nil)
	if !errs.Is(err, errs.InvalidLicense) {
		t.Fatalf("expected InvalidLicense, got %v", err)
	}
}

func TestCheckAccessFirstMissingInRequestOrder(t *testing.T) {
	state := protocol.State{Valid: true, Entitlements: []string{"b"}}
	err := CheckAccess(state, []string{"a", "b", "c"})
	ge, ok := err.(*errs.Error)
	if !ok || ge.Kind != errs.EntitlementMissing {
		t.Fatalf("expected EntitlementMissing, got %v", err)
	}
	if ge.Code != "a" {
		t.Fatalf("expected first missing code 'a', got %q", ge.Code)
	}
}

func TestCheckAccessAllPresent(t *testing.T) {
	state := protocol.State{Valid: true, Entitlements: []string{"a", "b", "c"}}
	if err := CheckAccess(state, []string{"a", "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func uintPtr(v uint64) *uint64 { return &v }

func TestCapsAllowsWithLimit(t *testing.T) {
	caps := Caps{MonthlyLimit: uintPtr(10), CurrentUses: uintPtr(8)}
	if !caps.Allows(2) {
		t.Fatal("expected 8+2<=10 to allow")
	}
	if caps.Allows(3) {
		t.Fatal("expected 8+3<=10 to deny")
	}
}

func TestCapsAllowsWithLimitNoCurrentUses(t *testing.T) {
	caps := Caps{MonthlyLimit: uintPtr(5)}
	if !caps.Allows(5) {
		t.Fatal("expected 0+5<=5 to allow")
	}
	if caps.Allows(6) {
		t.Fatal("expected 0+6<=5 to deny")
	}
}

func TestCapsAllowsNoLimit(t *testing.T) {
	caps := Caps{}
	if !caps.Allows(1_000_000) {
		t.Fatal("expected unlimited caps to always allow")
	}
}

func TestCheckAccessWithUsageExceedsCap(t *testing.T) {
	state := protocol.State{Valid: true, Entitlements: []string{"pro"}, MaxUses: uintPtr(10), CurrentUses: uintPtr(10)}
	err := CheckAccessWithUsage(state, []string{"pro"}, 1)
	if !errs.Is(err, errs.UsageLimitExceeded) {
		t.Fatalf("expected UsageLimitExceeded, got %v", err)
	}
}

func TestCheckAccessWithUsageChecksAccessBeforeCap(t *testing.T) {
	state := protocol.State{Valid: true, Entitlements: []string{}, MaxUses: uintPtr(10), CurrentUses: uintPtr(10)}
	err := CheckAccessWithUsage(state, []string{"pro"}, 1)
	if !errs.Is(err, errs.EntitlementMissing) {
		t.Fatalf("expected EntitlementMissing to take priority, got %v", err)
	}
}
