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
)

// Client is the main interface for interacting with AWS services.
// It provides access to the EC2, Auto Scaling, and Pricing APIs with
// built-in support for cross-account AssumeRole operations.
type Client interface {
	// EC2 returns an EC2Client scoped to the specified region configuration.
	// If regionConfig.AssumeRoleARN is set, it will assume that role.
	// Otherwise, it uses the default credential chain.
	//
	// A fresh client is returned on every call; nothing is cached between
	// calls, so each region sweep starts from clean credential state.
	EC2(ctx context.Context, regionConfig RegionConfig) (EC2Client, error)

	// AutoScaling returns an AutoScalingClient scoped to the specified region
	// configuration, constructed fresh on every call like EC2.
	AutoScaling(ctx context.Context, regionConfig RegionConfig) (AutoScalingClient, error)

	// Pricing returns a PricingClient (does not require region-specific credentials)
	Pricing(ctx context.Context) PricingClient
}

// EC2Client provides access to the EC2 API operations a governance sweep needs.
type EC2Client interface {
	// DescribeRunningInstances returns every instance in the client's region
	// whose state is exactly "running". Traverses all result pages.
	DescribeRunningInstances(ctx context.Context) ([]Instance, error)

	// DescribeStopProtection reports whether the instance has the
	// disableApiStop attribute set.
	DescribeStopProtection(ctx context.Context, instanceID string) (bool, error)

	// DescribeInstanceTags returns the instance's tags with the given key.
	// Key matching is exact; callers own any value comparison semantics.
	DescribeInstanceTags(ctx context.Context, instanceID string, key string) ([]Tag, error)

	// StopInstance issues a stop for a single instance.
	StopInstance(ctx context.Context, instanceID string) error
}

// AutoScalingClient provides access to the Auto Scaling API operations a
// governance sweep needs.
type AutoScalingClient interface {
	// DescribeGroups returns every Auto Scaling group in the client's region.
	// Traverses all result pages.
	DescribeGroups(ctx context.Context) ([]AutoScalingGroup, error)

	// DescribeGroupTags returns the group's tags with the given key.
	// Key matching is exact; callers own any value comparison semantics.
	DescribeGroupTags(ctx context.Context, groupName string, key string) ([]Tag, error)

	// UpdateGroupCapacity sets the group's minimum size, maximum size, and
	// desired capacity in a single update call.
	UpdateGroupCapacity(ctx context.Context, groupName string, minSize, maxSize, desiredCapacity int32) error
}

// PricingClient provides access to AWS Pricing API operations.
// This client does not require account-specific credentials as pricing
// information is publicly available.
type PricingClient interface {
	// GetOnDemandPrice returns the on-demand price for an instance type in a region.
	GetOnDemandPrice(
		ctx context.Context,
		region string,
		instanceType string,
		operatingSystem string,
	) (*OnDemandPrice, error)

	// GetOnDemandPrices returns on-demand prices for multiple instance types.
	// Instance types with no resolvable price are skipped rather than failing
	// the whole batch.
	GetOnDemandPrices(
		ctx context.Context,
		region string,
		instanceTypes []string,
		operatingSystem string,
	) ([]OnDemandPrice, error)
}

// ClientConfig configures the AWS client creation.
type ClientConfig struct {
	// DefaultRegion is the region used for region-independent API calls
	// (STS AssumeRole, pricing lookups)
	DefaultRegion string

	// AssumeRoleARN is applied to every RegionConfig that does not carry its
	// own role. Empty means the default credential chain.
	AssumeRoleARN string

	// ExternalID is presented alongside AssumeRoleARN when assuming the role
	ExternalID string

	// SessionName is the AssumeRole session name
	// Default: "cost-governor"
	SessionName string
}

// NewClient creates a new AWS client with the specified configuration.
// The client handles credential management and AssumeRole operations; the
// SDK's standard retry behavior applies to every call it issues.
//
// For production use, this creates a RealClient that connects to actual AWS APIs.
// For testing with LocalStack, use NewClientWithEndpoint instead.
func NewClient(ctx context.Context, config ClientConfig) (Client, error) {
	// Create a real AWS client with no custom endpoint (production use)
	return NewClientWithEndpoint(ctx, config, "")
}

// NewClientWithEndpoint creates a new AWS client with a custom endpoint URL.
// This is primarily used for testing with LocalStack.
//
// For production use, pass an empty endpointURL or use NewClient instead.
// For LocalStack testing, pass "http://localhost:4566" as endpointURL.
func NewClientWithEndpoint(ctx context.Context, config ClientConfig, endpointURL string) (Client, error) {
	return NewRealClient(ctx, config, endpointURL)
}
