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

// SimpleScenario represents a small single-region environment that exercises
// every protection path once.
//
// Environment (us-east-1):
//   - web-1: running, unmarked -> stopped
//   - web-2: running, tagged ResourceGovernance=keep -> kept
//   - etl-1: running, stop protection enabled -> kept
//   - ci-runner-1: running, tagged ResourceGovernance=KEEP (value case
//     differs) -> kept
//   - scratch-1: running, tagged but without the governance tag -> stopped
//   - archive-1: already stopped -> invisible to the sweep
//   - web-workers group: desired 3 -> scaled to zero, max size untouched
//   - batch-fleet group: tagged ResourceGovernance=keep -> kept
//   - drained group: desired already 0 -> untouched
var SimpleScenario = Scenario{
	Name:        "simple",
	Description: "Single region with one fleet covering each protection path",
	Regions: []Region{
		{
			Name: "us-east-1",
			Instances: []aws.Instance{
				{
					InstanceID:       "i-0f3a1b2c4d5e60001",
					InstanceType:     "m5.large",
					State:            aws.InstanceStateRunning,
					Region:           "us-east-1",
					AvailabilityZone: "us-east-1a",
					LaunchTime:       mustParseTime(time.RFC3339, "2025-11-03T08:30:00Z"),
				},
				{
					InstanceID:       "i-0f3a1b2c4d5e60002",
					InstanceType:     "m5.large",
					State:            aws.InstanceStateRunning,
					Region:           "us-east-1",
					AvailabilityZone: "us-east-1b",
					LaunchTime:       mustParseTime(time.RFC3339, "2025-11-03T08:31:00Z"),
				},
				{
					InstanceID:       "i-0f3a1b2c4d5e60003",
					InstanceType:     "c5.xlarge",
					State:            aws.InstanceStateRunning,
					Region:           "us-east-1",
					AvailabilityZone: "us-east-1a",
					LaunchTime:       mustParseTime(time.RFC3339, "2025-09-14T02:00:00Z"),
				},
				{
					InstanceID:       "i-0f3a1b2c4d5e60004",
					InstanceType:     "t3.medium",
					State:            aws.InstanceStateRunning,
					Region:           "us-east-1",
					AvailabilityZone: "us-east-1c",
					LaunchTime:       mustParseTime(time.RFC3339, "2026-01-20T16:45:00Z"),
				},
				{
					InstanceID:       "i-0f3a1b2c4d5e60005",
					InstanceType:     "t3.large",
					State:            aws.InstanceStateRunning,
					Region:           "us-east-1",
					AvailabilityZone: "us-east-1b",
					LaunchTime:       mustParseTime(time.RFC3339, "2026-02-02T11:15:00Z"),
				},
				{
					InstanceID:       "i-0f3a1b2c4d5e60006",
					InstanceType:     "r5.large",
					State:            aws.InstanceStateStopped,
					Region:           "us-east-1",
					AvailabilityZone: "us-east-1a",
					LaunchTime:       mustParseTime(time.RFC3339, "2025-06-30T09:00:00Z"),
				},
			},
			StopProtected: map[string]bool{
				"i-0f3a1b2c4d5e60003": true,
			},
			InstanceTags: map[string][]aws.Tag{
				"i-0f3a1b2c4d5e60002": {
					{Key: "Name", Value: "web-2"},
					{Key: "ResourceGovernance", Value: "keep"},
				},
				"i-0f3a1b2c4d5e60004": {
					{Key: "Name", Value: "ci-runner-1"},
					{Key: "ResourceGovernance", Value: "KEEP"},
				},
				"i-0f3a1b2c4d5e60005": {
					{Key: "Name", Value: "scratch-1"},
					{Key: "Team", Value: "platform"},
				},
			},
			Groups: []aws.AutoScalingGroup{
				{
					Name:            "web-workers",
					MinSize:         1,
					MaxSize:         6,
					DesiredCapacity: 3,
					Region:          "us-east-1",
				},
				{
					Name:            "batch-fleet",
					MinSize:         0,
					MaxSize:         10,
					DesiredCapacity: 2,
					Region:          "us-east-1",
				},
				{
					Name:            "drained",
					MinSize:         0,
					MaxSize:         4,
					DesiredCapacity: 0,
					Region:          "us-east-1",
				},
			},
			GroupTags: map[string][]aws.Tag{
				"batch-fleet": {
					{Key: "ResourceGovernance", Value: "keep"},
				},
			},
		},
	},

	Expected: ExpectedOutcomes{
		StoppedInstances: []string{
			"i-0f3a1b2c4d5e60001 (us-east-1)",
			"i-0f3a1b2c4d5e60005 (us-east-1)",
		},
		ScaledDownGroups: []string{
			"web-workers (us-east-1)",
		},
		ErrorCount: 0,
		RegionsProcessed: []string{
			"us-east-1",
		},

		// m5.large 0.096 + t3.large 0.0832
		HourlySavings: 0.1792,
	},
}
