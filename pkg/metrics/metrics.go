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

// Package metrics provides Prometheus metrics for the cost governor.
// It exposes governor health, sweep outcome, and report freshness metrics
// to enable operational visibility and alerting.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the cost governor. These metrics
// provide observability into governor health, what each sweep did, and how
// fresh the last report is.
type Metrics struct {
	// lastReportTime tracks when the last report was stored. The background
	// goroutine uses it to keep the report age gauge current.
	lastReportTime time.Time
	lastReportMu   sync.RWMutex

	// stopCh signals the background goroutine to stop when the governor shuts down
	stopCh chan struct{}

	// GovernorRunning indicates whether the governor is running.
	// This is a simple gauge set to 1 on startup. If the metric disappears
	// from the metrics endpoint, it indicates the governor has crashed.
	GovernorRunning prometheus.Gauge

	// SweepDuration measures how long a full sweep across all configured
	// regions takes. Sweeps are sequential, so this grows with fleet size
	// and region count.
	SweepDuration prometheus.Histogram

	// SweepLastSuccess records the Unix timestamp of the last completed
	// sweep. This enables alerting on a stalled governor.
	SweepLastSuccess prometheus.Gauge

	// ReportAge stores the age (in seconds) of the last report. A value of
	// 60 means the report is 60 seconds old. This metric is automatically
	// updated every second by a background goroutine, enabling direct
	// alerting on stale reports.
	ReportAge prometheus.Gauge

	// StoppedInstances counts instances stopped by sweeps.
	// Labels: region
	StoppedInstances *prometheus.CounterVec

	// ScaledDownGroups counts autoscaling groups scaled to zero by sweeps.
	// Labels: region
	ScaledDownGroups *prometheus.CounterVec

	// SweepErrors counts errors recorded in sweep reports. Every entry in a
	// report's errors list increments this once.
	// Labels: region
	SweepErrors *prometheus.CounterVec

	// ProtectedSkips counts resources a sweep examined and left alone. The
	// check_failed reason surfaces the fail-safe path, where a protection
	// check errored and the resource was treated as protected.
	// Labels: resource_type, reason
	ProtectedSkips *prometheus.CounterVec

	// EstimatedHourlySavings reports the estimated on-demand spend (USD/hour)
	// removed by the stops in the last sweep. Best effort: instance types
	// without a resolvable price contribute nothing.
	EstimatedHourlySavings prometheus.Gauge
}

// NewMetrics creates and registers all governor metrics with the provided
// registry. The registry is the one served by the metrics endpoint; tests
// pass a fresh prometheus.NewRegistry().
//
// Example usage:
//
//	metrics := metrics.NewMetrics(prometheus.DefaultRegisterer)
//	metrics.GovernorRunning.Set(1)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stopCh: make(chan struct{}),

		GovernorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "governance_governor_running",
			Help: "Indicates whether the cost governor is running (1 = running)",
		}),

		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "governance_sweep_duration_seconds",
			Help: "Time taken to sweep all configured regions",
			// Buckets cover 100ms to 5 minutes; sweeps make one blocking
			// AWS call at a time, so large fleets sit in the upper buckets
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),

		SweepLastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "governance_sweep_last_success_timestamp",
			Help: "Unix timestamp of the last completed sweep",
		}),

		ReportAge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "governance_report_age_seconds",
			Help: "Age of the last report in seconds (updated every second)",
		}),

		StoppedInstances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_stopped_instances_total",
			Help: "Instances stopped by sweeps",
		}, []string{LabelRegion}),

		ScaledDownGroups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_scaled_down_asgs_total",
			Help: "Autoscaling groups scaled to zero by sweeps",
		}, []string{LabelRegion}),

		SweepErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_sweep_errors_total",
			Help: "Errors recorded in sweep reports",
		}, []string{LabelRegion}),

		ProtectedSkips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "governance_protected_skips_total",
			Help: "Resources examined and left alone, by protection reason",
		}, []string{LabelResourceType, LabelReason}),

		EstimatedHourlySavings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "governance_estimated_hourly_savings_dollars",
			Help: "Estimated on-demand spend removed by the last sweep's stops (USD/hour)",
		}),
	}

	// Register all metrics with the provided registry
	reg.MustRegister(
		m.GovernorRunning,
		m.SweepDuration,
		m.SweepLastSuccess,
		m.ReportAge,
		m.StoppedInstances,
		m.ScaledDownGroups,
		m.SweepErrors,
		m.ProtectedSkips,
		m.EstimatedHourlySavings,
	)

	// Start background goroutine to update the report age gauge every second
	go m.updateReportAgeLoop()

	return m
}

// MarkReportUpdated marks that a new report has been stored. This records the
// current timestamp, which the background goroutine uses to keep the
// governance_report_age_seconds metric current.
func (m *Metrics) MarkReportUpdated() {
	m.lastReportMu.Lock()
	m.lastReportTime = time.Now()
	m.lastReportMu.Unlock()
}

// updateReportAgeLoop runs in a background goroutine and updates the report
// age gauge every second. No age is published before the first report.
//
// The loop continues until m.stopCh is closed (governor shutdown).
func (m *Metrics) updateReportAgeLoop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.updateReportAge()
		case <-m.stopCh:
			return
		}
	}
}

// updateReportAge sets the report age gauge from the last update time.
func (m *Metrics) updateReportAge() {
	m.lastReportMu.RLock()
	lastUpdate := m.lastReportTime
	m.lastReportMu.RUnlock()

	if lastUpdate.IsZero() {
		return
	}

	m.ReportAge.Set(time.Since(lastUpdate).Seconds())
}

// Stop signals the background goroutine to stop updating metrics.
// This should be called when the governor is shutting down.
func (m *Metrics) Stop() {
	close(m.stopCh)
}
