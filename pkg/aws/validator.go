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
)

// Validator provides methods to validate AWS region access.
// This is used by health checks and the credential monitor to verify that
// the configured sweep regions are reachable before governance actions run.
type Validator interface {
	// ValidateRegionAccess attempts to validate access to a specific region
	// by creating clients (assuming the role if configured) and making a
	// lightweight API call. Returns an error if the region is not accessible.
	ValidateRegionAccess(ctx context.Context, regionConfig RegionConfig) error
}

// RegionValidator implements the Validator interface using the AWS SDK.
type RegionValidator struct {
	client Client
}

// NewRegionValidator creates a new RegionValidator that uses the provided
// AWS client to validate region access.
func NewRegionValidator(client Client) *RegionValidator {
	return &RegionValidator{
		client: client,
	}
}

// ValidateRegionAccess validates that we can act in the specified region by
// creating an EC2 client (which includes AssumeRole if configured) and then
// listing running instances.
//
// This validation:
//  1. Tests that AssumeRole credentials work (if configured)
//  2. Verifies basic AWS API connectivity in the region
//  3. Exercises the same describe permission every sweep needs first
//
// Returns nil if the region is accessible, or an error with details about
// the failure (e.g., AssumeRole denied, network error, invalid credentials).
func (v *RegionValidator) ValidateRegionAccess(ctx context.Context, regionConfig RegionConfig) error {
	// Attempt to create an EC2 client for this region.
	// This will trigger AssumeRole if regionConfig.AssumeRoleARN is set.
	ec2Client, err := v.client.EC2(ctx, regionConfig)
	if err != nil {
		return fmt.Errorf("failed to create EC2 client for region %s: %w",
			regionConfig.Region, err)
	}

	// Make the sweep's first describe call to verify the credentials actually
	// work. We don't care about the results; we just need to know whether the
	// API call succeeds.
	_, err = ec2Client.DescribeRunningInstances(ctx)
	if err != nil {
		return fmt.Errorf("failed to validate AWS API access in region %s: %w",
			regionConfig.Region, err)
	}

	return nil
}
