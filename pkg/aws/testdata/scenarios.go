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

// Package testdata provides realistic fleet fixtures and sweep scenarios for
// testing cost governance behavior.
//
// Each scenario describes a multi-region environment (running instances with
// their protection markers, autoscaling groups with their capacities) together
// with the outcomes a sweep over that environment is expected to produce.
package testdata

import (
	"context"
	"time"

	"github.com/exit0-io/aws-cost-protection/pkg/aws"
)

// Scenario represents a complete environment to sweep.
// Each scenario includes per-region fleets and expected sweep outcomes.
type Scenario struct {
	Name        string
	Description string

	// Regions defines the regional fleets in this scenario
	Regions []Region

	// Expected outcomes for validation
	Expected ExpectedOutcomes
}

// Region represents a single region's fleet.
type Region struct {
	Name string

	// Instances holds the region's instances, running or otherwise.
	// Only running instances are visible to a sweep.
	Instances []aws.Instance

	// StopProtected maps instance ID to its stop protection attribute
	StopProtected map[string]bool

	// InstanceTags maps instance ID to its tags
	InstanceTags map[string][]aws.Tag

	// Groups holds the region's autoscaling groups
	Groups []aws.AutoScalingGroup

	// GroupTags maps group name to its tags
	GroupTags map[string][]aws.Tag
}

// ExpectedOutcomes defines the results a sweep over the scenario should report.
type ExpectedOutcomes struct {
	// StoppedInstances lists expected "<instance-id> (<region>)" entries
	StoppedInstances []string

	// ScaledDownGroups lists expected "<group-name> (<region>)" entries
	ScaledDownGroups []string

	// ErrorCount is the number of errors the sweep should report
	ErrorCount int

	// RegionsProcessed lists regions expected to complete both sweeps
	RegionsProcessed []string

	// HourlySavings is the on-demand spend removed per hour by the
	// expected stops, priced from the scenario's pricing data
	HourlySavings float64
}

// LoadScenario populates a MockClient with data from a scenario.
// This allows running the same scenario through different test implementations.
func LoadScenario(scenario Scenario, client *aws.MockClient) {
	ctx := context.Background()

	for _, region := range scenario.Regions {
		regionConfig := aws.RegionConfig{Region: region.Name}

		// Get or create EC2 client for this region
		ec2Client, _ := client.EC2(ctx, regionConfig)
		mockEC2 := ec2Client.(*aws.MockEC2Client)

		mockEC2.SetInstances(region.Instances)
		for instanceID, protected := range region.StopProtected {
			mockEC2.SetStopProtected(instanceID, protected)
		}
		for instanceID, tags := range region.InstanceTags {
			mockEC2.SetTags(instanceID, tags)
		}

		// Get or create autoscaling client for this region
		asgClient, _ := client.AutoScaling(ctx, regionConfig)
		mockASG := asgClient.(*aws.MockAutoScalingClient)

		mockASG.SetGroups(region.Groups)
		for groupName, tags := range region.GroupTags {
			mockASG.SetTags(groupName, tags)
		}
	}

	// Load pricing data (shared across regions)
	pricingClient := client.Pricing(ctx)
	mockPricing := pricingClient.(*aws.MockPricingClient)
	for _, region := range scenario.Regions {
		for _, instance := range region.Instances {
			mockPricing.SetOnDemandPrice(
				region.Name,
				instance.InstanceType,
				"Linux",
				defaultOnDemandPrice(instance.InstanceType),
			)
		}
	}
}

// defaultOnDemandPrice returns a realistic on-demand hourly price for an
// instance type. These are approximate AWS Linux prices as of 2025.
func defaultOnDemandPrice(instanceType string) float64 {
	prices := map[string]float64{
		// General Purpose
		"t3.micro":   0.0104,
		"t3.small":   0.0208,
		"t3.medium":  0.0416,
		"t3.large":   0.0832,
		"t3.xlarge":  0.1664,
		"t3.2xlarge": 0.3328,

		"m5.large":   0.096,
		"m5.xlarge":  0.192,
		"m5.2xlarge": 0.384,
		"m5.4xlarge": 0.768,

		// Compute Optimized
		"c5.large":   0.085,
		"c5.xlarge":  0.17,
		"c5.2xlarge": 0.34,
		"c5.4xlarge": 0.68,

		// Memory Optimized
		"r5.large":   0.126,
		"r5.xlarge":  0.252,
		"r5.2xlarge": 0.504,
		"r5.4xlarge": 1.008,
	}

	if price, ok := prices[instanceType]; ok {
		return price
	}

	// Default fallback for unknown types
	return 0.10
}

// Helper function to create a time.Time from a date string
func mustParseTime(layout, value string) time.Time {
	t, err := time.Parse(layout, value)
	if err != nil {
		panic(err)
	}
	return t
}
