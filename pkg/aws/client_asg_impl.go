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

package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	asgtypes "github.com/aws/aws-sdk-go-v2/service/autoscaling/types"
)

// RealAutoScalingClient is a production implementation of AutoScalingClient
// that makes real API calls to AWS Auto Scaling using the AWS SDK v2.
type RealAutoScalingClient struct {
	client *autoscaling.Client
	region string
}

// NewRealAutoScalingClient creates a new Auto Scaling client with the
// specified credentials. The credentials should come from either the default
// credential chain or from an STS AssumeRole operation.
func NewRealAutoScalingClient(ctx context.Context, region string, creds aws.CredentialsProvider, endpointURL string) (*RealAutoScalingClient, error) {
	// Load AWS configuration with the provided credentials
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, err
	}

	// Create Auto Scaling client
	asgOpts := []func(*autoscaling.Options){}
	if endpointURL != "" {
		// Override endpoint for LocalStack testing
		asgOpts = append(asgOpts, func(o *autoscaling.Options) {
			o.BaseEndpoint = &endpointURL
		})
	}
	client := autoscaling.NewFromConfig(cfg, asgOpts...)

	return &RealAutoScalingClient{
		client: client,
		region: region,
	}, nil
}

// DescribeGroups returns every Auto Scaling group in the client's region,
// traversing all result pages.
func (c *RealAutoScalingClient) DescribeGroups(ctx context.Context) ([]AutoScalingGroup, error) {
	groups := make([]AutoScalingGroup, 0)

	input := &autoscaling.DescribeAutoScalingGroupsInput{}

	for page := 0; page < maxDescribePages; page++ {
		out, err := c.client.DescribeAutoScalingGroups(ctx, input)
		if err != nil {
			return nil, err
		}

		for _, raw := range out.AutoScalingGroups {
			groups = append(groups, convertGroup(raw, c.region))
		}

		if out.NextToken == nil {
			return groups, nil
		}
		input.NextToken = out.NextToken
	}

	return nil, fmt.Errorf("auto scaling group listing in %s did not terminate after %d pages", c.region, maxDescribePages)
}

// DescribeGroupTags returns the group's tags with the given key. The lookup
// is narrowed server-side to the one group and key.
func (c *RealAutoScalingClient) DescribeGroupTags(ctx context.Context, groupName string, key string) ([]Tag, error) {
	out, err := c.client.DescribeTags(ctx, &autoscaling.DescribeTagsInput{
		Filters: []asgtypes.Filter{
			{
				Name:   aws.String("auto-scaling-group"),
				Values: []string{groupName},
			},
			{
				Name:   aws.String("key"),
				Values: []string{key},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	tags := make([]Tag, 0, len(out.Tags))
	for _, raw := range out.Tags {
		tag := Tag{}
		if raw.Key != nil {
			tag.Key = *raw.Key
		}
		if raw.Value != nil {
			tag.Value = *raw.Value
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// UpdateGroupCapacity sets the group's minimum size, maximum size, and
// desired capacity in a single update call. Callers pass the maximum through
// unchanged when they only intend to force the floor and target down.
func (c *RealAutoScalingClient) UpdateGroupCapacity(ctx context.Context, groupName string, minSize, maxSize, desiredCapacity int32) error {
	_, err := c.client.UpdateAutoScalingGroup(ctx, &autoscaling.UpdateAutoScalingGroupInput{
		AutoScalingGroupName: aws.String(groupName),
		MinSize:              aws.Int32(minSize),
		MaxSize:              aws.Int32(maxSize),
		DesiredCapacity:      aws.Int32(desiredCapacity),
	})
	return err
}

// convertGroup translates a raw SDK group into the typed record the rest of
// the codebase works with. This is the only place Auto Scaling wire shapes
// are unpacked.
func convertGroup(raw asgtypes.AutoScalingGroup, region string) AutoScalingGroup {
	group := AutoScalingGroup{
		Region: region,
	}
	if raw.AutoScalingGroupName != nil {
		group.Name = *raw.AutoScalingGroupName
	}
	if raw.MinSize != nil {
		group.MinSize = *raw.MinSize
	}
	if raw.MaxSize != nil {
		group.MaxSize = *raw.MaxSize
	}
	if raw.DesiredCapacity != nil {
		group.DesiredCapacity = *raw.DesiredCapacity
	}
	return group
}
