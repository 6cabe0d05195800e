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
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

//go:embed testdata/ec2.json
var ec2FixturesFS embed.FS

// SeedEC2 creates the governance test fleet in LocalStack: security groups
// first, then the EC2 instances, each in the region its fixture names.
//
// Instance fixtures are deduplicated by their Name tag, counting only running
// instances. Instances a previous sweep stopped therefore get relaunched on
// re-seed, while protected instances that survived the sweep are not
// duplicated.
func SeedEC2(ctx context.Context, cfg aws.Config) error {
	fixtures, err := loadEC2Fixtures()
	if err != nil {
		return fmt.Errorf("failed to load EC2 fixtures: %w", err)
	}

	if err := seedSecurityGroups(ctx, cfg, fixtures.SecurityGroups); err != nil {
		return fmt.Errorf("failed to seed security groups: %w", err)
	}
	if err := seedEC2Instances(ctx, cfg, fixtures.Instances); err != nil {
		return fmt.Errorf("failed to seed EC2 instances: %w", err)
	}
	return nil
}

func loadEC2Fixtures() (*EC2Fixtures, error) {
	data, err := ec2FixturesFS.ReadFile("testdata/ec2.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read ec2.json: %w", err)
	}

	var fixtures EC2Fixtures
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse ec2.json: %w", err)
	}
	return &fixtures, nil
}

// ec2ClientForRegion binds an EC2 client to the fixture's region rather than
// the config's default region.
func ec2ClientForRegion(cfg aws.Config, region string) *ec2.Client {
	return ec2.NewFromConfig(cfg, func(o *ec2.Options) {
		o.Region = region
	})
}

func seedSecurityGroups(ctx context.Context, cfg aws.Config, securityGroups []SecurityGroup) error {
	for _, sg := range securityGroups {
		client := ec2ClientForRegion(cfg, sg.Region)

		exists, err := securityGroupExists(ctx, client, sg.GroupName)
		if err != nil {
			return fmt.Errorf("failed to check security group %s: %w", sg.GroupName, err)
		}
		if exists {
			continue
		}

		if _, err := client.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
			GroupName:   aws.String(sg.GroupName),
			Description: aws.String(sg.Description),
		}); err != nil {
			return fmt.Errorf("failed to create security group %s: %w", sg.GroupName, err)
		}
	}
	return nil
}

func securityGroupExists(ctx context.Context, client *ec2.Client, groupName string) (bool, error) {
	out, err := client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		Filters: []types.Filter{
			{Name: aws.String("group-name"), Values: []string{groupName}},
		},
	})
	if err != nil {
		return false, err
	}
	return len(out.SecurityGroups) > 0, nil
}

func seedEC2Instances(ctx context.Context, cfg aws.Config, instances []EC2Instance) error {
	for _, instance := range instances {
		client := ec2ClientForRegion(cfg, instance.Region)

		if name := fixtureName(instance); name != "" {
			running, err := runningCountByName(ctx, client, name)
			if err != nil {
				return fmt.Errorf("failed to count running %s instances: %w", name, err)
			}
			if running >= instance.Count {
				continue
			}
		}

		// LocalStack accepts any AMI id, so the fixture value goes straight
		// through.
		input := &ec2.RunInstancesInput{
			ImageId:           aws.String(instance.ImageID),
			InstanceType:      types.InstanceType(instance.InstanceType),
			MinCount:          aws.Int32(int32(instance.Count)),
			MaxCount:          aws.Int32(int32(instance.Count)),
			TagSpecifications: instanceTagSpecs(instance.Tags),
		}
		if instance.DisableAPIStop {
			input.DisableApiStop = aws.Bool(true)
		}

		if _, err := client.RunInstances(ctx, input); err != nil {
			return fmt.Errorf("failed to launch instances (type: %s, count: %d): %w",
				instance.InstanceType, instance.Count, err)
		}
	}
	return nil
}

// fixtureName returns the fixture's Name tag value, or "" if it has none.
// Unnamed fixtures cannot be deduplicated and launch on every seed.
func fixtureName(instance EC2Instance) string {
	for _, tag := range instance.Tags {
		if tag.Key == "Name" {
			return tag.Value
		}
	}
	return ""
}

func runningCountByName(ctx context.Context, client *ec2.Client, name string) (int, error) {
	out, err := client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []types.Filter{
			{Name: aws.String("tag:Name"), Values: []string{name}},
			{Name: aws.String("instance-state-name"), Values: []string{"running"}},
		},
	})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, reservation := range out.Reservations {
		count += len(reservation.Instances)
	}
	return count, nil
}

func instanceTagSpecs(tags []Tag) []types.TagSpecification {
	if len(tags) == 0 {
		return nil
	}

	ec2Tags := make([]types.Tag, len(tags))
	for i, tag := range tags {
		ec2Tags[i] = types.Tag{
			Key:   aws.String(tag.Key),
			Value: aws.String(tag.Value),
		}
	}
	return []types.TagSpecification{{
		ResourceType: types.ResourceTypeInstance,
		Tags:         ec2Tags,
	}}
}
