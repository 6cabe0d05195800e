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

// Package seed provides functionality to seed test data into LocalStack for E2E testing.
//
// This package replaces brittle shell-based seeding with type-safe Go code
// that uses the AWS SDK v2. Test data is defined in JSON fixture files under
// testdata/ and programmatically created in LocalStack: a mixed EC2 fleet
// with protected and unprotected instances, Auto Scaling groups in every
// protection state the sweep distinguishes, and the IAM roles the governor
// assumes.
//
// Example usage:
//
//	ctx := context.Background()
//	cfg, err := awsconfig.LoadDefaultConfig(ctx,
//	    awsconfig.WithRegion("us-east-1"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := seed.SeedAll(ctx, cfg); err != nil {
//	    log.Fatal(err)
//	}
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// SeedAll orchestrates seeding of all test data into LocalStack.
// This function should be called during E2E test setup, before the first sweep.
//
// The seeding order is important:
//  1. IAM resources (roles and policies) - required for AssumeRole testing
//  2. EC2 resources (security groups and instances) - the fleet the sweep acts on
//  3. Auto Scaling resources (launch configurations and groups)
//
// This function is designed to be idempotent where possible. IAM resources,
// security groups, launch configurations, and groups won't be duplicated if
// they already exist. EC2 instances will be created on each run, which is
// acceptable for ephemeral LocalStack instances.
//
// Returns an error if any seeding operation fails.
func SeedAll(ctx context.Context, cfg aws.Config) error {
	// Add a timeout to prevent hanging if LocalStack is unresponsive
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	// Seed IAM resources first (roles and policies)
	// These are required for AssumeRole coverage in E2E tests
	if err := SeedIAM(ctx, cfg); err != nil {
		return fmt.Errorf("failed to seed IAM resources: %w", err)
	}

	// Seed EC2 resources (security groups and instances)
	// These give the instance sweep something to stop and something to keep
	if err := SeedEC2(ctx, cfg); err != nil {
		return fmt.Errorf("failed to seed EC2 resources: %w", err)
	}

	// Seed Auto Scaling resources (launch configurations and groups)
	// These give the group sweep something to scale down and something to keep
	if err := SeedAutoScaling(ctx, cfg); err != nil {
		return fmt.Errorf("failed to seed Auto Scaling resources: %w", err)
	}

	return nil
}
