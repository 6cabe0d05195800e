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

// This file exports metric name constants for use by external consumers
// (dashboards, alert rules, or other monitoring tools) that need to query
// governor metrics programmatically. Using these constants provides
// compile-time safety, refactoring support, and IDE autocomplete for metric
// names.
//
// For metric label names, see the exported label constants in labels.go:
// LabelRegion, LabelResourceType, LabelReason, LabelStatus.
//
// Example usage in external tools:
//
//	import "github.com/exit0-io/aws-cost-protection/pkg/metrics"
//
//	// Type-safe metric name reference
//	query := fmt.Sprintf("sum(%s)", metrics.MetricStoppedInstancesTotal)
//
//	// Type-safe label references
//	query := fmt.Sprintf("%s{%s=\"us-west-2\"}",
//	    metrics.MetricStoppedInstancesTotal,
//	    metrics.LabelRegion)

// Governor Health Metrics
//
// These metrics provide visibility into the operational health of the
// governor itself: whether it is running, how long sweeps take, and how
// fresh the last report is.

const (
	// MetricGovernorRunning indicates whether the governor is running.
	// Value is always 1 when the governor is active. If this metric disappears
	// from the metrics endpoint, it indicates the governor has crashed or stopped.
	// Type: Gauge
	// Labels: none
	MetricGovernorRunning = "governance_governor_running"

	// MetricSweepDurationSeconds measures how long a full sweep across all
	// configured regions takes. Use this to spot regions or accounts that
	// slow the sweep down as fleets grow.
	// Type: Histogram
	// Labels: none
	MetricSweepDurationSeconds = "governance_sweep_duration_seconds"

	// MetricSweepLastSuccessTimestamp records the Unix timestamp of the last
	// completed sweep. This enables alerting on a stalled governor (e.g., no
	// sweep completed in 2+ intervals).
	// Type: Gauge
	// Labels: none
	MetricSweepLastSuccessTimestamp = "governance_sweep_last_success_timestamp"

	// MetricReportAgeSeconds measures the age of the last report in seconds.
	// This metric is automatically updated every second by a background
	// goroutine. A value of 60 means the report is 60 seconds old. Use this
	// for alerting on stale reports (e.g., alert if > 2x sweep interval).
	// Type: Gauge
	// Labels: none
	MetricReportAgeSeconds = "governance_report_age_seconds"
)

// Sweep Outcome Metrics
//
// These metrics count what each sweep did: instances stopped, groups scaled
// to zero, errors recorded, and resources deliberately left alone.

const (
	// MetricStoppedInstancesTotal counts instances stopped by sweeps, by region.
	// Type: Counter
	// Labels: region
	MetricStoppedInstancesTotal = "governance_stopped_instances_total"

	// MetricScaledDownGroupsTotal counts autoscaling groups scaled to zero by
	// sweeps, by region.
	// Type: Counter
	// Labels: region
	MetricScaledDownGroupsTotal = "governance_scaled_down_asgs_total"

	// MetricSweepErrorsTotal counts errors recorded in sweep reports, by
	// region. Every entry in a report's errors list increments this once.
	// Type: Counter
	// Labels: region
	MetricSweepErrorsTotal = "governance_sweep_errors_total"

	// MetricProtectedSkipsTotal counts resources a sweep examined and left
	// alone, by resource type and reason. The check_failed reason surfaces
	// the fail-safe path: a protection check errored, so the resource was
	// treated as protected. A persistently rising check_failed series is the
	// signal that the sweeper cannot classify part of the fleet.
	// Type: Counter
	// Labels: resource_type, reason
	MetricProtectedSkipsTotal = "governance_protected_skips_total"

	// MetricEstimatedHourlySavings reports the estimated on-demand spend
	// (USD/hour) removed by the stops in the last sweep. Best effort: types
	// without a resolvable price contribute nothing, and groups are excluded.
	// Type: Gauge
	// Labels: none
	MetricEstimatedHourlySavings = "governance_estimated_hourly_savings_dollars"
)

// Credential Check Metrics
//
// These metrics are registered by the credential monitor in pkg/aws (on the
// default registry via promauto) and track the status and performance of
// region access validation. The name constants live here so dashboards and
// the e2e suite share one vocabulary.

const (
	// MetricCredentialCheckTotal counts credential checks by region and
	// status ("success" or "failure").
	// Type: Counter
	// Labels: region, status
	MetricCredentialCheckTotal = "aws_credential_check_total"

	// MetricCredentialCheckDurationSeconds measures the time taken to
	// validate region access. This helps identify slow or timing-out regions.
	// Type: Histogram
	// Labels: region
	MetricCredentialCheckDurationSeconds = "aws_credential_check_duration_seconds"

	// MetricCredentialLastCheckTimestamp records the Unix timestamp of the
	// last credential check per region, successful or not.
	// Type: Gauge
	// Labels: region
	MetricCredentialLastCheckTimestamp = "aws_credential_last_check_timestamp"

	// MetricCredentialHealthy indicates whether the last credential check
	// for a region succeeded (1) or failed (0).
	// Type: Gauge
	// Labels: region
	MetricCredentialHealthy = "aws_credential_healthy"
)
