/*
Copyright 2026 AWS Cost Protection Contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package utils provides test utilities for E2E tests.
//
// Coverage: Excluded - these utilities are only used by E2E tests against
// LocalStack. They are tested through actual E2E test execution, not unit
// tests.
package utils

import (
	"context"
	"fmt"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/exit0-io/aws-cost-protection/test/e2e/localstack/seed"
)

// localStackHealthPollInterval is how often WaitForLocalStack retries.
const localStackHealthPollInterval = 2 * time.Second

// WaitForLocalStack polls LocalStack's health endpoint until it responds or
// the timeout elapses. Call this before seeding so a LocalStack container
// that is still starting up doesn't fail the suite with connection errors.
func WaitForLocalStack(ctx context.Context, endpointURL string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	healthURL := endpointURL + "/_localstack/health"
	ticker := time.NewTicker(localStackHealthPollInterval)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			return fmt.Errorf("failed to build health request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("LocalStack at %s not healthy after %s: %w", endpointURL, timeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

// SeedLocalStack seeds test data into LocalStack using native AWS SDK calls
// against the given endpoint. This should be called once during E2E test
// setup, before the first sweep.
//
// LocalStack accepts any credentials; the static "test" pair maps to the
// default test account 000000000000.
func SeedLocalStack(ctx context.Context, endpointURL string) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithBaseEndpoint(endpointURL),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("test", "test", "")),
	)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Call the seed package which makes native AWS SDK calls
	if err := seed.SeedAll(ctx, cfg); err != nil {
		return fmt.Errorf("failed to seed LocalStack: %w", err)
	}

	return nil
}
