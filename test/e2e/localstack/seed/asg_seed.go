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

package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
)

//go:embed testdata/autoscaling.json
var asgFixturesFS embed.FS

// SeedAutoScaling seeds Auto Scaling resources (launch configurations and
// groups) into LocalStack from the embedded JSON fixtures.
//
// This function is idempotent - launch configurations and groups that already
// exist are skipped, so repeated seeding does not reset capacities a sweep
// has already changed.
//
// The function:
//  1. Loads Auto Scaling fixtures from testdata/autoscaling.json
//  2. Creates launch configurations (if they don't exist)
//  3. Creates Auto Scaling groups with their capacities and tags
//
// Returns an error if any operation fails.
func SeedAutoScaling(ctx context.Context, cfg aws.Config) error {
	// Load fixtures from embedded JSON
	fixtures, err := loadAutoScalingFixtures()
	if err != nil {
		return fmt.Errorf("failed to load Auto Scaling fixtures: %w", err)
	}

	// Seed launch configurations first (groups reference them)
	if err := seedLaunchConfigurations(ctx, cfg, fixtures.LaunchConfigurations); err != nil {
		return fmt.Errorf("failed to seed launch configurations: %w", err)
	}

	// Seed Auto Scaling groups
	if err := seedAutoScalingGroups(ctx, cfg, fixtures.Groups); err != nil {
		return fmt.Errorf("failed to seed Auto Scaling groups: %w", err)
	}

	return nil
}

// loadAutoScalingFixtures loads Auto Scaling fixtures from the embedded
// testdata/autoscaling.json file.
func loadAutoScalingFixtures() (*AutoScalingFixtures, error) {
	data, err := asgFixturesFS.ReadFile("testdata/autoscaling.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read autoscaling.json: %w", err)
	}

	var fixtures AutoScalingFixtures
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse autoscaling.json: %w", err)
	}

	return &fixtures, nil
}

// asgClientForRegion creates an Auto Scaling client bound to the fixture's
// region rather than the config's default region.
func asgClientForRegion(cfg aws.Config, region string) *autoscaling.Client {
	return autoscaling.NewFromConfig(cfg, func(o *autoscaling.Options) {
		o.Region = region
	})
}

// seedLaunchConfigurations creates launch configurations in LocalStack.
// This function is idempotent - it skips configurations that already exist.
func seedLaunchConfigurations(ctx context.Context, cfg aws.Config, configurations []LaunchConfiguration) error {
	for _, lc := range configurations {
		client := asgClientForRegion(cfg, lc.Region)

		// Check if the launch configuration already exists
		describeOutput, err := client.DescribeLaunchConfigurations(ctx, &autoscaling.DescribeLaunchConfigurationsInput{
			LaunchConfigurationNames: []string{lc.Name},
		})
		if err != nil {
			return fmt.Errorf("failed to describe launch configurations: %w", err)
		}

		if len(describeOutput.LaunchConfigurations) > 0 {
			// Launch configuration already exists, skip
			continue
		}

		_, err = client.CreateLaunchConfiguration(ctx, &autoscaling.CreateLaunchConfigurationInput{
			LaunchConfigurationName: aws.String(lc.Name),
			ImageId:                 aws.String(lc.ImageID),
			InstanceType:            aws.String(lc.InstanceType),
		})
		if err != nil {
			return fmt.Errorf("failed to create launch configuration %s: %w", lc.Name, err)
		}
	}

	return nil
}

// seedAutoScalingGroups creates Auto Scaling groups in LocalStack.
// This function is idempotent - it skips groups that already exist, so a
// group a sweep already scaled down keeps its zeroed capacity.
func seedAutoScalingGroups(ctx context.Context, cfg aws.Config, groups []AutoScalingGroup) error {
	for _, group := range groups {
		client := asgClientForRegion(cfg, group.Region)

		// Check if the group already exists
		describeOutput, err := client.DescribeAutoScalingGroups(ctx, &autoscaling.DescribeAutoScalingGroupsInput{
			AutoScalingGroupNames: []string{group.Name},
		})
		if err != nil {
			return fmt.Errorf("failed to describe Auto Scaling groups: %w", err)
		}

		if len(describeOutput.AutoScalingGroups) > 0 {
			// Group already exists, skip
			continue
		}

		// Convert tags to the Auto Scaling tag format
		asgTags := make([]asgtypes.Tag, len(group.Tags))
		for i, tag := range group.Tags {
			asgTags[i] = asgtypes.Tag{
				Key:               aws.String(tag.Key),
				Value:             aws.String(tag.Value),
				PropagateAtLaunch: aws.Bool(tag.PropagateAtLaunch),
			}
		}

		_, err = client.CreateAutoScalingGroup(ctx, &autoscaling.CreateAutoScalingGroupInput{
			AutoScalingGroupName:    aws.String(group.Name),
			LaunchConfigurationName: aws.String(group.LaunchConfigurationName),
			MinSize:                 aws.Int32(group.MinSize),
			MaxSize:                 aws.Int32(group.MaxSize),
			DesiredCapacity:         aws.Int32(group.DesiredCapacity),
			AvailabilityZones:       group.AvailabilityZones,
			Tags:                    asgTags,
		})
		if err != nil {
			return fmt.Errorf("failed to create Auto Scaling group %s: %w", group.Name, err)
		}
	}

	return nil
}
