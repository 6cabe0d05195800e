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

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// DefaultSessionName is the AssumeRole session name used when callers do not
// provide one.
const DefaultSessionName = "cost-governor"

// RealClient is a production implementation of the Client interface that
// makes real calls to AWS APIs using the AWS SDK v2.
//
// This implementation handles:
//   - Credential management using the AWS SDK default credential chain
//   - STS AssumeRole operations for cross-account access
//   - Region-aware API calls
//
// EC2 and Auto Scaling clients are constructed fresh on every call and never
// cached. Each region sweep therefore works with its own client pair, and a
// failure constructing one region's clients cannot poison another region's.
// The pricing client is the one exception: pricing data is region-independent
// and internally cached, so a single shared instance is kept.
//
// For testing, use MockClient instead.
type RealClient struct {
	config      ClientConfig
	awsCfg      aws.Config  // Base config from the default credential chain
	stsClient   *sts.Client // Used for AssumeRole operations
	pricing     PricingClient
	endpointURL string // Optional endpoint URL (for LocalStack testing)
}

// NewRealClient creates a new RealClient with the specified configuration.
// The client uses the AWS SDK default credential chain for authentication.
//
// For LocalStack testing, set endpointURL to "http://localhost:4566".
func NewRealClient(ctx context.Context, cfg ClientConfig, endpointURL string) (*RealClient, error) {
	// Load AWS configuration using default credential chain
	// This will automatically use:
	// 1. Environment variables (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY)
	// 2. Shared credentials file (~/.aws/credentials)
	// 3. IAM role (if running on Lambda, EC2, or ECS)
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.DefaultRegion),
	)
	if err != nil {
		return nil, err
	}

	// Create STS client for AssumeRole operations
	stsOpts := []func(*sts.Options){}
	if endpointURL != "" {
		// Override endpoint for LocalStack testing
		stsOpts = append(stsOpts, func(o *sts.Options) {
			o.BaseEndpoint = &endpointURL
		})
	}
	stsClient := sts.NewFromConfig(awsCfg, stsOpts...)

	return &RealClient{
		config:      cfg,
		awsCfg:      awsCfg,
		stsClient:   stsClient,
		pricing:     nil, // Will be initialized on first Pricing() call
		endpointURL: endpointURL,
	}, nil
}

// EC2 returns an EC2Client scoped to the specified region configuration.
// If regionConfig.AssumeRoleARN is set, it will assume that role using STS.
// The client is constructed fresh on every call.
func (c *RealClient) EC2(ctx context.Context, regionConfig RegionConfig) (EC2Client, error) {
	// Get credentials (potentially via AssumeRole)
	creds, err := c.getCredentials(ctx, regionConfig)
	if err != nil {
		return nil, err
	}

	return NewRealEC2Client(ctx, regionConfig.Region, creds, c.endpointURL)
}

// AutoScaling returns an AutoScalingClient scoped to the specified region
// configuration. If regionConfig.AssumeRoleARN is set, it will assume that
// role using STS. The client is constructed fresh on every call.
func (c *RealClient) AutoScaling(ctx context.Context, regionConfig RegionConfig) (AutoScalingClient, error) {
	// Get credentials (potentially via AssumeRole)
	creds, err := c.getCredentials(ctx, regionConfig)
	if err != nil {
		return nil, err
	}

	return NewRealAutoScalingClient(ctx, regionConfig.Region, creds, c.endpointURL)
}

// Pricing returns a PricingClient. The pricing API is not region-specific, so
// one client is shared across calls. If the client cannot be constructed, a
// BrokenPricingClient carrying the construction error is returned so callers
// see the failure on first use instead of a nil client.
func (c *RealClient) Pricing(ctx context.Context) PricingClient {
	if c.pricing != nil {
		return c.pricing
	}

	creds, err := c.getCredentials(ctx, RegionConfig{
		Region:        c.config.DefaultRegion,
		AssumeRoleARN: c.config.AssumeRoleARN,
		ExternalID:    c.config.ExternalID,
		SessionName:   c.config.SessionName,
	})
	if err != nil {
		return &BrokenPricingClient{err: err}
	}

	client, err := NewRealPricingClient(ctx, creds, c.endpointURL)
	if err != nil {
		return &BrokenPricingClient{err: err}
	}

	c.pricing = client
	return c.pricing
}

// getCredentials returns credentials for the specified region configuration.
// If AssumeRoleARN is set, it performs an STS AssumeRole operation and returns
// the resulting static session credentials. Otherwise, it returns the default
// credential chain provider from the base configuration.
func (c *RealClient) getCredentials(
	ctx context.Context,
	regionConfig RegionConfig,
) (aws.CredentialsProvider, error) {
	// A region config that carries no role of its own inherits the
	// client-level role settings.
	roleARN := regionConfig.AssumeRoleARN
	externalID := regionConfig.ExternalID
	if roleARN == "" {
		roleARN = c.config.AssumeRoleARN
		externalID = c.config.ExternalID
	}
	if roleARN == "" {
		return c.awsCfg.Credentials, nil
	}

	sessionName := regionConfig.SessionName
	if sessionName == "" {
		sessionName = c.config.SessionName
	}
	if sessionName == "" {
		sessionName = DefaultSessionName
	}

	input := &sts.AssumeRoleInput{
		RoleArn:         &roleARN,
		RoleSessionName: &sessionName,
	}
	if externalID != "" {
		input.ExternalId = &externalID
	}

	result, err := c.stsClient.AssumeRole(ctx, input)
	if err != nil {
		return nil, err
	}

	// Return static credentials from the assumed role
	return credentials.StaticCredentialsProvider{
		Value: aws.Credentials{
			AccessKeyID:     *result.Credentials.AccessKeyId,
			SecretAccessKey: *result.Credentials.SecretAccessKey,
			SessionToken:    *result.Credentials.SessionToken,
		},
	}, nil
}
