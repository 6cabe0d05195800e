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

// Package governor implements the cost governance sweep: stopping unprotected
// running EC2 instances and scaling unprotected autoscaling groups to zero
// across the configured regions.
//
// A sweep is sequential and single-threaded. Regions are processed in
// configured order, resources in enumeration order, one blocking call at a
// time; each region gets its own freshly constructed clients and shares no
// state with its siblings. Concurrency lives entirely in the surrounding
// shell (the Run ticker, HTTP servers, the credential monitor), never inside
// a sweep itself.
//
// Failures are data, not control flow. Every failure at any granularity is
// folded into the report's errors list and processing continues; nothing a
// sweep encounters is fatal to the invocation.
package governor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/exit0-io/aws-cost-protection/pkg/aws"
	"github.com/exit0-io/aws-cost-protection/pkg/config"
	"github.com/exit0-io/aws-cost-protection/pkg/cost"
	"github.com/exit0-io/aws-cost-protection/pkg/metrics"
)

// ReportSink receives each completed sweep report. The last-report cache
// behind GET /report satisfies this.
type ReportSink interface {
	Set(report *Report)
}

// Governor runs governance sweeps over the configured regions.
type Governor struct {
	// AWSClient for making API calls
	AWSClient aws.Client

	// Configuration with the allowed regions and sweep cadence
	Config *config.Config

	// Metrics for observability
	Metrics *metrics.Metrics

	// Estimator prices each sweep's stopped instances for the savings gauge.
	// Optional; when nil the estimate is skipped.
	Estimator *cost.SavingsEstimator

	// Reports receives each completed report. Optional.
	Reports ReportSink

	// Logger
	Log logr.Logger

	// Policy overrides the protection convention. The zero value means the
	// standard ResourceGovernance/keep convention.
	Policy ProtectionPolicy
}

// protectionPolicy returns the active policy, defaulting the zero value to
// the standard governance tag convention.
func (g *Governor) protectionPolicy() ProtectionPolicy {
	if g.Policy.TagKey == "" {
		return NewProtectionPolicy()
	}
	return g.Policy
}

// ProcessRegion sweeps a single region and always returns a report for it.
//
// Client construction is the one failure that escapes as an error; the driver
// turns it into an aggregate error entry and drops the region from
// regions_processed. Once both clients exist the sweepers absorb their own
// failures into the report, and a failed instance sweep never prevents the
// group sweep from running.
func (g *Governor) ProcessRegion(ctx context.Context, region string) (RegionReport, error) {
	report := NewRegionReport(region)

	// Fresh clients for every region; credentials and endpoint overrides are
	// resolved at the client layer.
	regionConfig := aws.RegionConfig{Region: region}

	ec2, err := g.AWSClient.EC2(ctx, regionConfig)
	if err != nil {
		return report, fmt.Errorf("failed to create EC2 client for region %s: %w", region, err)
	}
	asg, err := g.AWSClient.AutoScaling(ctx, regionConfig)
	if err != nil {
		return report, fmt.Errorf("failed to create autoscaling client for region %s: %w", region, err)
	}

	policy := g.protectionPolicy()
	g.sweepInstances(ctx, ec2, policy, &report)
	g.sweepGroups(ctx, asg, policy, &report)

	return report, nil
}

// Sweep runs one full governance sweep and always returns a well-formed
// aggregate report, regardless of how many regions or resources failed.
//
// After the region loop the sweep records per-region metrics, prices the
// stopped instances for the savings gauge, publishes the report to the sink,
// and logs a summary.
func (g *Governor) Sweep(ctx context.Context) *Report {
	start := time.Now()
	regions := g.Config.Regions()
	log := g.Log.WithValues("regions", len(regions))
	log.Info("starting governance sweep")

	report := NewReport()
	stopped := []aws.Instance{}

	for _, region := range regions {
		regionReport, err := g.ProcessRegion(ctx, region)
		if err != nil {
			log.Error(err, "error processing region", "region", region)
			report.Errors = append(report.Errors,
				fmt.Sprintf("error processing region %s: %v", region, err))
			g.Metrics.RecordRegionOutcome(region, 0, 0, 1)
			continue
		}

		report.Merge(regionReport)
		stopped = append(stopped, regionReport.stoppedRecords...)
		g.Metrics.RecordRegionOutcome(region,
			len(regionReport.StoppedInstances),
			len(regionReport.ScaledDownGroups),
			len(regionReport.Errors))
	}

	g.Metrics.RecordSweep(time.Since(start))
	g.Metrics.MarkReportUpdated()

	if g.Estimator != nil {
		estimate := g.Estimator.EstimateHourlySavings(ctx, stopped)
		g.Metrics.SetEstimatedHourlySavings(estimate.HourlyDollars)
		log.Info("estimated hourly savings",
			"dollars_per_hour", estimate.HourlyDollars,
			"priced_instances", estimate.Priced,
			"unpriced_instances", estimate.Unpriced)
	}

	if g.Reports != nil {
		g.Reports.Set(report)
	}

	log.Info("governance sweep completed",
		"duration_seconds", time.Since(start).Seconds(),
		"stopped_instances", len(report.StoppedInstances),
		"scaled_down_asgs", len(report.ScaledDownGroups),
		"errors", len(report.Errors),
		"regions_processed", len(report.RegionsProcessed))

	return report
}

// Run sweeps immediately, then on every tick of the configured interval until
// the context is cancelled. Service mode only; Lambda and one-shot
// invocations call Sweep directly.
func (g *Governor) Run(ctx context.Context) {
	interval := g.Config.GetSweepInterval()
	g.Log.Info("starting governance sweep loop", "interval", interval.String())

	g.Metrics.GovernorRunning.Set(1)
	defer g.Metrics.GovernorRunning.Set(0)

	g.Sweep(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.Log.Info("governance sweep loop stopping")
			return
		case <-ticker.C:
			g.Sweep(ctx)
		}
	}
}
