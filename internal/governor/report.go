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

package governor

import (
	"fmt"

	"github.com/exit0-io/aws-cost-protection/pkg/aws"
)

// RegionReport collects the outcome of sweeping a single region.
// Entries use the form "<id> (<region>)" so merged reports stay attributable.
type RegionReport struct {
	// Region is the region this report covers.
	Region string

	// StoppedInstances lists instances stopped this sweep.
	StoppedInstances []string

	// ScaledDownGroups lists autoscaling groups scaled to zero this sweep.
	ScaledDownGroups []string

	// Errors lists every failure encountered in this region, one string per
	// failed action or enumeration. A populated Errors never prevents the
	// successful entries from being reported.
	Errors []string

	// stoppedRecords retains the typed records behind StoppedInstances so the
	// driver can price them after the sweep. Not serialized.
	stoppedRecords []aws.Instance
}

// NewRegionReport creates an empty report for a region. Slices are initialized
// so they serialize as [] rather than null.
func NewRegionReport(region string) RegionReport {
	return RegionReport{
		Region:           region,
		StoppedInstances: []string{},
		ScaledDownGroups: []string{},
		Errors:           []string{},
	}
}

// entry formats a resource identifier with its region, the shape used for
// every StoppedInstances and ScaledDownGroups element.
func entry(id, region string) string {
	return fmt.Sprintf("%s (%s)", id, region)
}

// Report is the aggregate outcome of one sweep across all configured regions.
// This is the wire format returned by the Lambda envelope, POST /sweep, and
// GET /report.
type Report struct {
	// StoppedInstances lists every instance stopped, as "<id> (<region>)".
	StoppedInstances []string `json:"stopped_instances"`

	// ScaledDownGroups lists every group scaled to zero, as "<name> (<region>)".
	ScaledDownGroups []string `json:"scaled_down_asgs"`

	// Errors lists every failure at any granularity. A sweep with errors is
	// still a successful invocation; callers inspect this list, not a status.
	Errors []string `json:"errors"`

	// RegionsProcessed lists the regions whose sweep ran to completion.
	// A region whose clients could not be constructed is absent here and
	// contributes one entry to Errors instead.
	RegionsProcessed []string `json:"regions_processed"`
}

// NewReport creates an empty aggregate report. All four lists are initialized
// so an empty sweep serializes as [] for every key, never null.
func NewReport() *Report {
	return &Report{
		StoppedInstances: []string{},
		ScaledDownGroups: []string{},
		Errors:           []string{},
		RegionsProcessed: []string{},
	}
}

// Merge folds a completed region's results into the aggregate and marks the
// region processed. Only call this for regions that ran to completion;
// a failed region is recorded through Errors alone.
func (r *Report) Merge(regionReport RegionReport) {
	r.StoppedInstances = append(r.StoppedInstances, regionReport.StoppedInstances...)
	r.ScaledDownGroups = append(r.ScaledDownGroups, regionReport.ScaledDownGroups...)
	r.Errors = append(r.Errors, regionReport.Errors...)
	r.RegionsProcessed = append(r.RegionsProcessed, regionReport.Region)
}
