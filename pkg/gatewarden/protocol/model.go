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

// Package protocol decodes the licensing service's JSON envelope into a
// normalized State.
package protocol

import (
	"encoding/json"
	"time"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
)

// ValidateResponse is the JSON envelope returned by the validate-key
// endpoint.
type ValidateResponse struct {
	Meta ValidateMeta  `json:"meta"`
	Data *LicenseData  `json:"data,omitempty"`
}

// ValidateMeta carries the server's validity verdict and the entitlement
// scope it confirmed.
type ValidateMeta struct {
	Valid  bool       `json:"valid"`
	Code   string     `json:"code"`
	Detail string     `json:"detail,omitempty"`
	Scope  *ScopeMeta `json:"scope,omitempty"`
}

// ScopeMeta echoes back the entitlements the server confirmed the license
// possesses, in response to the request's own scope assertion.
type ScopeMeta struct {
	Entitlements []string `json:"entitlements"`
}

// LicenseData carries the license resource's attributes.
type LicenseData struct {
	ID         string             `json:"id"`
	Type       string             `json:"type"`
	Attributes LicenseAttributes  `json:"attributes"`
}

// LicenseAttributes are the license resource's own fields. Entitlements are
// deliberately NOT here: the client reads entitlements only from the scope
// the server echoed back in ValidateMeta.Scope, never from these attributes.
type LicenseAttributes struct {
	Name     string  `json:"name,omitempty"`
	Expiry   *string `json:"expiry,omitempty"`
	MaxUses  *uint64 `json:"maxUses,omitempty"`
	Uses     *uint64 `json:"uses,omitempty"`
}

// ParseValidateResponse decodes a validate-key response body.
func ParseValidateResponse(body []byte) (ValidateResponse, error) {
	var resp ValidateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ValidateResponse{}, errs.NewProtocolError("decode validate response: %v", err)
	}
	return resp, nil
}

// State is the normalized, derived view of a validate-key response.
type State struct {
	Valid        bool
	Entitlements []string
	ExpiresAt    *time.Time
	MaxUses      *uint64
	CurrentUses  *uint64
	Code         string
	Detail       string
}

// FromValidateResponse derives a State from a decoded response. Entitlements
// come exclusively from meta.scope.entitlements (defaulting to empty, never
// from data.attributes). An unparseable expiry is not a hard error: it
// leaves ExpiresAt absent, because the server is authoritative on validity
// via meta.valid regardless.
func FromValidateResponse(resp ValidateResponse) State {
	state := State{
		Valid:  resp.Meta.Valid,
		Code:   resp.Meta.Code,
		Detail: resp.Meta.Detail,
	}
	if resp.Meta.Scope != nil {
		state.Entitlements = resp.Meta.Scope.Entitlements
	}
	if state.Entitlements == nil {
		state.Entitlements = []string{}
	}
	if resp.Data != nil {
		attrs := resp.Data.Attributes
		state.MaxUses = attrs.MaxUses
		state.CurrentUses = attrs.Uses
		if attrs.Expiry != nil {
			if parsed, err := time.Parse(time.RFC3339, *attrs.Expiry); err == nil {
				state.ExpiresAt = &parsed
			}
		}
	}
	return state
}
