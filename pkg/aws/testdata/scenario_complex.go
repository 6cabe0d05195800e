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

package testdata

import (
	"time"

	"github.com/exit0-io/aws-cost-protection/pkg/aws"
)

// ComplexScenario represents a realistic multi-region environment with a
// production fleet pinned by governance markers, a DR region, and a
// development region that mostly gets swept.
//
// Environment:
// - 3 regions (us-west-2, us-east-1, eu-west-1)
// - Production (us-west-2): api tier kept by tags, database kept by stop
//   protection, experiments and a mistagged instance swept
// - DR (us-east-1): replica kept by stop protection, drill instance swept,
//   standby group scaled to zero
// - Development (eu-west-1): dev boxes swept, demo box kept, batch group
//   tagged with the wrong governance value and therefore scaled
//
// This scenario tests tag key case sensitivity, tag value case
// insensitivity, both protection markers, and multi-region merging.
var ComplexScenario = Scenario{
	Name:        "complex",
	Description: "Multi-region environment with mixed governance markers",
	Regions: []Region{
		{
			Name:      "us-west-2",
			Instances: productionInstances(),
			StopProtected: map[string]bool{
				// db-primary, kept via disableApiStop
				"i-0a17c4e2b8d931004": true,
			},
			InstanceTags: map[string][]aws.Tag{
				"i-0a17c4e2b8d931001": {
					{Key: "Name", Value: "api-1"},
					{Key: "ResourceGovernance", Value: "keep"},
				},
				"i-0a17c4e2b8d931002": {
					{Key: "Name", Value: "api-2"},
					{Key: "ResourceGovernance", Value: "keep"},
				},
				"i-0a17c4e2b8d931003": {
					{Key: "Name", Value: "api-3"},
					// Value case differs; still kept
					{Key: "ResourceGovernance", Value: "Keep"},
				},
				"i-0a17c4e2b8d931006": {
					{Key: "Name", Value: "experiment-b"},
				},
				"i-0a17c4e2b8d931007": {
					{Key: "Name", Value: "forecast-prototype"},
					// Key case differs from the governance tag; swept
					{Key: "resourcegovernance", Value: "keep"},
				},
			},
			Groups: []aws.AutoScalingGroup{
				{Name: "prod-web", MinSize: 2, MaxSize: 12, DesiredCapacity: 6, Region: "us-west-2"},
				{Name: "prod-workers", MinSize: 1, MaxSize: 8, DesiredCapacity: 4, Region: "us-west-2"},
				{Name: "canary", MinSize: 0, MaxSize: 2, DesiredCapacity: 0, Region: "us-west-2"},
			},
			GroupTags: map[string][]aws.Tag{
				"prod-web": {
					{Key: "ResourceGovernance", Value: "keep"},
				},
			},
		},
		{
			Name:      "us-east-1",
			Instances: drInstances(),
			StopProtected: map[string]bool{
				// dr-replica, kept via disableApiStop
				"i-0b28d5f3c9ea42001": true,
			},
			InstanceTags: map[string][]aws.Tag{
				"i-0b28d5f3c9ea42003": {
					{Key: "Name", Value: "dr-console"},
					{Key: "ResourceGovernance", Value: "keep"},
				},
			},
			Groups: []aws.AutoScalingGroup{
				{Name: "dr-standby", MinSize: 0, MaxSize: 6, DesiredCapacity: 1, Region: "us-east-1"},
				{Name: "dr-protected", MinSize: 1, MaxSize: 4, DesiredCapacity: 2, Region: "us-east-1"},
			},
			GroupTags: map[string][]aws.Tag{
				"dr-protected": {
					{Key: "ResourceGovernance", Value: "KEEP"},
				},
			},
		},
		{
			Name:      "eu-west-1",
			Instances: developmentInstances(),
			InstanceTags: map[string][]aws.Tag{
				"i-0c39e6a4d0fb53003": {
					{Key: "Name", Value: "dev-demo"},
					{Key: "ResourceGovernance", Value: "keep"},
				},
			},
			Groups: []aws.AutoScalingGroup{
				{Name: "eu-batch", MinSize: 0, MaxSize: 5, DesiredCapacity: 2, Region: "eu-west-1"},
				{Name: "eu-nightly", MinSize: 0, MaxSize: 3, DesiredCapacity: 0, Region: "eu-west-1"},
			},
			GroupTags: map[string][]aws.Tag{
				"eu-batch": {
					// Wrong value; the group is swept
					{Key: "ResourceGovernance", Value: "retain"},
				},
			},
		},
	},

	Expected: ExpectedOutcomes{
		StoppedInstances: []string{
			"i-0a17c4e2b8d931005 (us-west-2)",
			"i-0a17c4e2b8d931006 (us-west-2)",
			"i-0a17c4e2b8d931007 (us-west-2)",
			"i-0b28d5f3c9ea42002 (us-east-1)",
			"i-0c39e6a4d0fb53001 (eu-west-1)",
			"i-0c39e6a4d0fb53002 (eu-west-1)",
		},
		ScaledDownGroups: []string{
			"prod-workers (us-west-2)",
			"dr-standby (us-east-1)",
			"eu-batch (eu-west-1)",
		},
		ErrorCount: 0,
		RegionsProcessed: []string{
			"us-west-2",
			"us-east-1",
			"eu-west-1",
		},

		// us-west-2: c5.large 0.085 + c5.large 0.085 + t3.xlarge 0.1664
		// us-east-1: t3.small 0.0208
		// eu-west-1: t3.medium 0.0416 + t3.medium 0.0416
		HourlySavings: 0.4404,
	},
}

// Production us-west-2: api tier, database, experiments
func productionInstances() []aws.Instance {
	return []aws.Instance{
		{
			InstanceID:       "i-0a17c4e2b8d931001",
			InstanceType:     "m5.xlarge",
			State:            aws.InstanceStateRunning,
			Region:           "us-west-2",
			AvailabilityZone: "us-west-2a",
			LaunchTime:       mustParseTime(time.RFC3339, "2025-03-18T07:00:00Z"),
		},
		{
			InstanceID:       "i-0a17c4e2b8d931002",
			InstanceType:     "m5.xlarge",
			State:            aws.InstanceStateRunning,
			Region:           "us-west-2",
			AvailabilityZone: "us-west-2b",
			LaunchTime:       mustParseTime(time.RFC3339, "2025-03-18T07:02:00Z"),
		},
		{
			InstanceID:       "i-0a17c4e2b8d931003",
			InstanceType:     "m5.xlarge",
			State:            aws.InstanceStateRunning,
			Region:           "us-west-2",
			AvailabilityZone: "us-west-2c",
			LaunchTime:       mustParseTime(time.RFC3339, "2025-03-18T07:04:00Z"),
		},
		{
			InstanceID:       "i-0a17c4e2b8d931004",
			InstanceType:     "r5.2xlarge",
			State:            aws.InstanceStateRunning,
			Region:           "us-west-2",
			AvailabilityZone: "us-west-2a",
			LaunchTime:       mustParseTime(time.RFC3339, "2024-12-01T00:00:00Z"),
		},
		{
			InstanceID:       "i-0a17c4e2b8d931005",
			InstanceType:     "c5.large",
			State:            aws.InstanceStateRunning,
			Region:           "us-west-2",
			AvailabilityZone: "us-west-2b",
			LaunchTime:       mustParseTime(time.RFC3339, "2026-02-10T13:20:00Z"),
		},
		{
			InstanceID:       "i-0a17c4e2b8d931006",
			InstanceType:     "c5.large",
			State:            aws.InstanceStateRunning,
			Region:           "us-west-2",
			AvailabilityZone: "us-west-2c",
			LaunchTime:       mustParseTime(time.RFC3339, "2026-02-10T13:25:00Z"),
		},
		{
			InstanceID:       "i-0a17c4e2b8d931007",
			InstanceType:     "t3.xlarge",
			State:            aws.InstanceStateRunning,
			Region:           "us-west-2",
			AvailabilityZone: "us-west-2a",
			LaunchTime:       mustParseTime(time.RFC3339, "2026-01-05T10:00:00Z"),
		},
		{
			InstanceID:       "i-0a17c4e2b8d931008",
			InstanceType:     "m5.large",
			State:            aws.InstanceStateStopped,
			Region:           "us-west-2",
			AvailabilityZone: "us-west-2b",
			LaunchTime:       mustParseTime(time.RFC3339, "2025-08-22T18:00:00Z"),
		},
	}
}

// DR us-east-1: replica, drill box, operator console
func drInstances() []aws.Instance {
	return []aws.Instance{
		{
			InstanceID:       "i-0b28d5f3c9ea42001",
			InstanceType:     "r5.xlarge",
			State:            aws.InstanceStateRunning,
			Region:           "us-east-1",
			AvailabilityZone: "us-east-1a",
			LaunchTime:       mustParseTime(time.RFC3339, "2025-01-15T04:30:00Z"),
		},
		{
			InstanceID:       "i-0b28d5f3c9ea42002",
			InstanceType:     "t3.small",
			State:            aws.InstanceStateRunning,
			Region:           "us-east-1",
			AvailabilityZone: "us-east-1b",
			LaunchTime:       mustParseTime(time.RFC3339, "2026-02-14T09:00:00Z"),
		},
		{
			InstanceID:       "i-0b28d5f3c9ea42003",
			InstanceType:     "t3.micro",
			State:            aws.InstanceStateRunning,
			Region:           "us-east-1",
			AvailabilityZone: "us-east-1a",
			LaunchTime:       mustParseTime(time.RFC3339, "2025-05-01T12:00:00Z"),
		},
	}
}

// Development eu-west-1: dev boxes, a demo box, one parked instance
func developmentInstances() []aws.Instance {
	return []aws.Instance{
		{
			InstanceID:       "i-0c39e6a4d0fb53001",
			InstanceType:     "t3.medium",
			State:            aws.InstanceStateRunning,
			Region:           "eu-west-1",
			AvailabilityZone: "eu-west-1a",
			LaunchTime:       mustParseTime(time.RFC3339, "2026-02-18T08:00:00Z"),
		},
		{
			InstanceID:       "i-0c39e6a4d0fb53002",
			InstanceType:     "t3.medium",
			State:            aws.InstanceStateRunning,
			Region:           "eu-west-1",
			AvailabilityZone: "eu-west-1b",
			LaunchTime:       mustParseTime(time.RFC3339, "2026-02-18T08:05:00Z"),
		},
		{
			InstanceID:       "i-0c39e6a4d0fb53003",
			InstanceType:     "m5.large",
			State:            aws.InstanceStateRunning,
			Region:           "eu-west-1",
			AvailabilityZone: "eu-west-1a",
			LaunchTime:       mustParseTime(time.RFC3339, "2025-10-09T15:30:00Z"),
		},
		{
			InstanceID:       "i-0c39e6a4d0fb53004",
			InstanceType:     "t3.large",
			State:            aws.InstanceStateStopped,
			Region:           "eu-west-1",
			AvailabilityZone: "eu-west-1c",
			LaunchTime:       mustParseTime(time.RFC3339, "2025-12-24T20:00:00Z"),
		},
	}
}
