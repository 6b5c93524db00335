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

// Package meter tracks daily, monthly, and lifetime usage counters with
// UTC-date rollover on read, persisted atomically alongside the cache.
package meter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/Michael-A-Kuykendall/gatewarden/pkg/gatewarden/errs"
)

const dateLayout = "2006-01-02"
const monthLayout = "2006-01"

// Stats is the persisted counter state.
type Stats struct {
	DailyCount     uint64 `json:"daily_count"`
	MonthlyCount   uint64 `json:"monthly_count"`
	DailyDate      string `json:"daily_date,omitempty"`
	MonthlyPeriod  string `json:"monthly_period,omitempty"`
	LifetimeCount  uint64 `json:"lifetime_count"`
}

func formatDate(t time.Time) string  { return t.UTC().Format(dateLayout) }
func formatMonth(t time.Time) string { return t.UTC().Format(monthLayout) }

// increment rolls the daily/monthly counters over if now falls in a
// different UTC day/month than the stored period, then increments all three
// counters.
func (s *Stats) increment(now time.Time) {
	today := formatDate(now)
	thisMonth := formatMonth(now)

	if s.DailyDate != today {
		s.DailyDate = today
		s.DailyCount = 0
	}
	if s.MonthlyPeriod != thisMonth {
		s.MonthlyPeriod = thisMonth
		s.MonthlyCount = 0
	}
	s.DailyCount++
	s.MonthlyCount++
	s.LifetimeCount++
}

// dailyCount applies rollover-on-read: if now is in a different UTC day than
// the stored period, the count is reported as zero without mutating state.
func (s Stats) dailyCount(now time.Time) uint64 {
	if s.DailyDate != formatDate(now) {
		return 0
	}
	return s.DailyCount
}

func (s Stats) monthlyCount(now time.Time) uint64 {
	if s.MonthlyPeriod != formatMonth(now) {
		return 0
	}
	return s.MonthlyCount
}

// Meter persists Stats under a namespace directory, in the file
// usage.json, next to the cache store's records.
type Meter struct {
	path  string
	stats Stats
}

// NewMeter loads existing stats from path, or starts from zero if no file
// exists yet.
func NewMeter(path string) (*Meter, error) {
	m := &Meter{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, errs.NewMeterIO("read usage meter: %v", err)
	}
	if err := json.Unmarshal(data, &m.stats); err != nil {
		return nil, errs.NewMeterIO("decode usage meter: %v", err)
	}
	return m, nil
}

// NewMeterWithNamespace is a convenience constructor building the meter's
// path as <dataDir>/<namespace>/usage.json.
func NewMeterWithNamespace(dataDir, namespace string) (*Meter, error) {
	return NewMeter(filepath.Join(dataDir, namespace, "usage.json"))
}

// Increment rolls over if needed, increments all three counters, and
// persists the result before returning.
func (m *Meter) Increment(now time.Time) error {
	m.stats.increment(now)
	return m.save()
}

// DailyCount returns today's count, applying rollover-on-read.
func (m *Meter) DailyCount(now time.Time) uint64 { return m.stats.dailyCount(now) }

// MonthlyCount returns this month's count, applying rollover-on-read.
func (m *Meter) MonthlyCount(now time.Time) uint64 { return m.stats.monthlyCount(now) }

// LifetimeCount returns the monotone lifetime counter.
func (m *Meter) LifetimeCount() uint64 { return m.stats.LifetimeCount }

// Stats returns a copy of the raw persisted counters.
func (m *Meter) Stats() Stats { return m.stats }

func (m *Meter) save() error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errs.NewMeterIO("create meter directory: %v", err)
	}
	data, err := json.MarshalIndent(m.stats, "", "  ")
	if err != nil {
		return errs.NewMeterIO("encode usage meter: %v", err)
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errs.NewMeterIO("write temp meter file: %v", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return errs.NewMeterIO("rename meter file into place: %v", err)
	}
	return nil
}
