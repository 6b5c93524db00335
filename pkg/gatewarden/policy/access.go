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

// Package policy checks a decoded license state against the entitlements a
// host application requires and the usage cap it must not exceed.
package policy

import (
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/protocol"
)

// CheckAccess requires state.Valid, then that every code in required appears
// in state.Entitlements. The first missing code, in request order, is the
// one reported.
func CheckAccess(state protocol.State, required []string) error {
	if !state.Valid {
		return errs.NewInvalidLicense()
	}
	for _, code := range required {
		if !contains(state.Entitlements, code) {
			return errs.NewEntitlementMissing(code)
		}
	}
	return nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// Caps is a derived view of a license's usage limit and current usage.
type Caps struct {
	MonthlyLimit *uint64
	CurrentUses  *uint64
}

// FromState derives Caps from a State.
func FromState(state protocol.State) Caps {
	return Caps{MonthlyLimit: state.MaxUses, CurrentUses: state.CurrentUses}
}

// Allows reports whether honoring additional more uses keeps current usage
// at or under the limit. A Caps with no limit allows any amount.
func (c Caps) Allows(additional uint64) bool {
	if c.MonthlyLimit == nil {
		return true
	}
	current := uint64(0)
	if c.CurrentUses != nil {
		current = *c.CurrentUses
	}
	return current+additional <= *c.MonthlyLimit
}

// HasCap reports whether a limit is set at all.
func (c Caps) HasCap() bool {
	return c.MonthlyLimit != nil
}

// CheckAccessWithUsage runs CheckAccess, then verifies the usage cap is not
// exceeded by additional more uses.
func CheckAccessWithUsage(state protocol.State, required []string, additional uint64) error {
	if err := CheckAccess(state, required); err != nil {
		return err
	}
	if !FromState(state).Allows(additional) {
		return errs.NewUsageLimitExceeded()
	}
	return nil
}
