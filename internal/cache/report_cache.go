// Copyright 2026 AWS Cost Protection Contributors
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

// This file implements ReportCache for the most recent sweep report.
//
// The sweep loop stores each completed report here; GET /report serves reads
// from it without touching AWS, and report-age metrics derive from its
// timestamp. Only the latest report is retained. Operators who need history
// scrape the per-sweep metrics instead.
package cache

import (
	"time"

	"github.com/exit0-io/aws-cost-protection/internal/governor"
)

// ReportCache stores the most recent sweep report with thread-safe access.
//
// ReportCache embeds BaseCache for locking and freshness tracking, so
// staleness checks (IsStale, GetAge) come for free alongside Set/Get.
type ReportCache struct {
	BaseCache

	report *governor.Report
}

// NewReportCache creates a new empty report cache.
func NewReportCache() *ReportCache {
	return &ReportCache{
		BaseCache: NewBaseCache(),
	}
}

// Set replaces the cached report with the given sweep outcome.
// Called by the sweep loop after every completed sweep, including sweeps
// that found nothing and sweeps whose report carries errors.
func (c *ReportCache) Set(report *governor.Report) {
	c.Lock()
	defer c.Unlock()

	c.report = report
	c.MarkUpdated()
}

// Get returns the most recent report and true, or nil and false if no sweep
// has completed yet.
//
// The returned report is a copy to prevent callers from modifying cached
// slices; the copy shares no backing arrays with the stored report.
func (c *ReportCache) Get() (*governor.Report, bool) {
	c.RLock()
	defer c.RUnlock()

	if c.report == nil {
		return nil, false
	}

	reportCopy := governor.Report{
		StoppedInstances: append([]string{}, c.report.StoppedInstances...),
		ScaledDownGroups: append([]string{}, c.report.ScaledDownGroups...),
		Errors:           append([]string{}, c.report.Errors...),
		RegionsProcessed: append([]string{}, c.report.RegionsProcessed...),
	}
	return &reportCopy, true
}

// Clear removes the cached report and resets the lastUpdate timestamp.
// Under normal operation the cache is only ever replaced, never cleared;
// this exists for shutdown and tests.
func (c *ReportCache) Clear() {
	c.Lock()
	defer c.Unlock()

	c.report = nil
	// Reset lastUpdate to zero to indicate the cache has never been populated
	c.lastUpdate = time.Time{}
}
