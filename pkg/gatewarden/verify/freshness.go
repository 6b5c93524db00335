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
	"net/mail"
	"time"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
)

// MaxResponseAgeSeconds bounds how stale a live response's Date header may
// be.
const MaxResponseAgeSeconds = 300

// MaxFutureToleranceSeconds bounds how far ahead of now a live response's
// Date header may claim to be.
const MaxFutureToleranceSeconds = 60

// ParseDate parses an RFC 2822 (RFC 5322) date string, the format HTTP's
// Date header uses.
func ParseDate(date string) (time.Time, error) {
	t, err := mail.ParseDate(date)
	if err != nil {
		return time.Time{}, errs.NewProtocolError("unparseable date %q: %v", date, err)
	}
	return t, nil
}

// CheckFreshness rejects a response timestamp outside
// [now - MaxResponseAgeSeconds, now + MaxFutureToleranceSeconds]. Both
// boundaries are inclusive.
func CheckFreshness(responseDate, now time.Time) error {
	age := int64(now.Sub(responseDate).Seconds())
	if age > MaxResponseAgeSeconds {
		return errs.NewResponseTooOld(age)
	}
	if age < -MaxFutureToleranceSeconds {
		return errs.NewResponseFromFuture()
	}
	return nil
}

// CheckDateFreshness parses date and applies CheckFreshness against now.
func CheckDateFreshness(date string, now time.Time) error {
	parsed, err := ParseDate(date)
	if err != nil {
		return err
	}
	return CheckFreshness(parsed, now)
}
