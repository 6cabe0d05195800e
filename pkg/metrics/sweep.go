/*
Copyright 2026 AWS Cost Protection Contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordRegionOutcome records one region's sweep results. Counters are
// incremented even when a count is zero so the per-region series exist from
// the first sweep onward; a region that stops appearing here has dropped out
// of the configured region list or started failing before its sweep.
//
// Example usage:
//
//	metrics.RecordRegionOutcome("us-west-2",
//	    len(report.StoppedInstances), len(report.ScaledDownGroups), len(report.Errors))
func (m *Metrics) RecordRegionOutcome(region string, stopped, scaledDown, errors int) {
	labels := prometheus.Labels{LabelRegion: region}

	m.StoppedInstances.With(labels).Add(float64(stopped))
	m.ScaledDownGroups.With(labels).Add(float64(scaledDown))
	m.SweepErrors.With(labels).Add(float64(errors))
}

// RecordProtectedSkip counts a resource the sweep examined and left alone.
//
// resourceType is ResourceTypeInstance or ResourceTypeGroup; reason is one of
// ReasonStopProtection, ReasonGovernanceTag, or ReasonCheckFailed. The
// check_failed reason is the only operational signal for the fail-safe path,
// since fail-safe skips are deliberately absent from report error lists.
func (m *Metrics) RecordProtectedSkip(resourceType, reason string) {
	m.ProtectedSkips.With(prometheus.Labels{
		LabelResourceType: resourceType,
		LabelReason:       reason,
	}).Inc()
}

// RecordSweep records a completed sweep: the duration is observed and the
// last-success timestamp is stamped. A sweep that produced errors still
// counts as completed; errors live in the report and the per-region error
// counter.
//
// Example usage:
//
//	start := time.Now()
//	report := governor.Sweep(ctx)
//	metrics.RecordSweep(time.Since(start))
func (m *Metrics) RecordSweep(duration time.Duration) {
	m.SweepDuration.Observe(duration.Seconds())
	m.SweepLastSuccess.Set(float64(time.Now().Unix()))
}

// SetEstimatedHourlySavings publishes the savings estimate for the last
// sweep. The gauge holds the most recent sweep's estimate, not a running
// total; a sweep that stops nothing sets it to zero.
func (m *Metrics) SetEstimatedHourlySavings(dollarsPerHour float64) {
	m.EstimatedHourlySavings.Set(dollarsPerHour)
}
