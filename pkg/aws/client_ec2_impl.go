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
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// maxDescribePages bounds every paginated listing loop. A NextToken chain
// longer than this indicates an API anomaly (or a pathological fleet) and is
// surfaced as an error instead of looping forever.
const maxDescribePages = 100

// RealEC2Client is a production implementation of EC2Client that makes
// real API calls to AWS EC2 using the AWS SDK v2.
type RealEC2Client struct {
	client *ec2.Client
	region string
}

// NewRealEC2Client creates a new EC2 client with the specified credentials.
// The credentials should come from either the default credential chain or
// from an STS AssumeRole operation.
func NewRealEC2Client(ctx context.Context, region string, creds aws.CredentialsProvider, endpointURL string) (*RealEC2Client, error) {
	// Load AWS configuration with the provided credentials
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, err
	}

	// Create EC2 client
	ec2Opts := []func(*ec2.Options){}
	if endpointURL != "" {
		// Override endpoint for LocalStack testing
		ec2Opts = append(ec2Opts, func(o *ec2.Options) {
			o.BaseEndpoint = &endpointURL
		})
	}
	client := ec2.NewFromConfig(cfg, ec2Opts...)

	return &RealEC2Client{
		client: client,
		region: region,
	}, nil
}

// DescribeRunningInstances returns every instance in the client's region
// whose state is exactly "running", traversing all result pages. Instances
// in transitional states (pending, stopping) are excluded by the server-side
// filter so the sweep never races a state change it did not observe.
func (c *RealEC2Client) DescribeRunningInstances(ctx context.Context) ([]Instance, error) {
	instances := make([]Instance, 0)

	input := &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("instance-state-name"),
				Values: []string{InstanceStateRunning},
			},
		},
	}

	for page := 0; page < maxDescribePages; page++ {
		out, err := c.client.DescribeInstances(ctx, input)
		if err != nil {
			return nil, err
		}

		for _, reservation := range out.Reservations {
			for _, raw := range reservation.Instances {
				instances = append(instances, convertInstance(raw, c.region))
			}
		}

		if out.NextToken == nil {
			return instances, nil
		}
		input.NextToken = out.NextToken
	}

	return nil, fmt.Errorf("instance listing in %s did not terminate after %d pages", c.region, maxDescribePages)
}

// DescribeStopProtection reports whether the instance has the disableApiStop
// attribute set. A missing attribute in the response is treated as false.
func (c *RealEC2Client) DescribeStopProtection(ctx context.Context, instanceID string) (bool, error) {
	out, err := c.client.DescribeInstanceAttribute(ctx, &ec2.DescribeInstanceAttributeInput{
		Attribute:  ec2types.InstanceAttributeNameDisableApiStop,
		InstanceId: aws.String(instanceID),
	})
	if err != nil {
		return false, err
	}

	if out.DisableApiStop == nil || out.DisableApiStop.Value == nil {
		return false, nil
	}
	return *out.DisableApiStop.Value, nil
}

// DescribeInstanceTags returns the instance's tags with the given key.
// The lookup is narrowed server-side to the one resource and key, so the
// response is at most a single tag and never needs pagination.
func (c *RealEC2Client) DescribeInstanceTags(ctx context.Context, instanceID string, key string) ([]Tag, error) {
	out, err := c.client.DescribeTags(ctx, &ec2.DescribeTagsInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("resource-id"),
				Values: []string{instanceID},
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

// StopInstance issues a stop for a single instance.
func (c *RealEC2Client) StopInstance(ctx context.Context, instanceID string) error {
	_, err := c.client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
	})
	return err
}

// convertInstance translates a raw SDK instance into the typed record the
// rest of the codebase works with. This is the only place EC2 wire shapes
// are unpacked.
func convertInstance(raw ec2types.Instance, region string) Instance {
	instance := Instance{
		InstanceType: string(raw.InstanceType),
		Region:       region,
	}
	if raw.InstanceId != nil {
		instance.InstanceID = *raw.InstanceId
	}
	if raw.State != nil {
		instance.State = string(raw.State.Name)
	}
	if raw.Placement != nil && raw.Placement.AvailabilityZone != nil {
		instance.AvailabilityZone = *raw.Placement.AvailabilityZone
	}
	if raw.LaunchTime != nil {
		instance.LaunchTime = *raw.LaunchTime
	}
	return instance
}
