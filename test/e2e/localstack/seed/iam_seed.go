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
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
)

//go:embed testdata/iam.json
var iamFixturesFS embed.FS

// governorTrustPolicy lets any principal assume the governor roles.
// LocalStack does not evaluate trust relationships, so a wildcard keeps the
// validator's AssumeRole path simple.
const governorTrustPolicy = `{
	"Version": "2012-10-17",
	"Statement": [
		{
			"Effect": "Allow",
			"Principal": {"AWS": "*"},
			"Action": "sts:AssumeRole"
		}
	]
}`

// SeedIAM creates the governor roles and their sweep policy in LocalStack.
// Policies go in before roles so attachments resolve. Existing resources are
// left alone, so re-seeding against a warm LocalStack is safe.
func SeedIAM(ctx context.Context, cfg aws.Config) error {
	fixtures, err := loadIAMFixtures()
	if err != nil {
		return fmt.Errorf("failed to load IAM fixtures: %w", err)
	}

	client := iam.NewFromConfig(cfg)

	if err := seedIAMPolicies(ctx, client, fixtures.Policies); err != nil {
		return fmt.Errorf("failed to seed IAM policies: %w", err)
	}
	if err := seedIAMRoles(ctx, client, fixtures.Roles); err != nil {
		return fmt.Errorf("failed to seed IAM roles: %w", err)
	}
	return nil
}

func loadIAMFixtures() (*IAMFixtures, error) {
	data, err := iamFixturesFS.ReadFile("testdata/iam.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read iam.json: %w", err)
	}

	var fixtures IAMFixtures
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse iam.json: %w", err)
	}
	return &fixtures, nil
}

// notFound reports whether err is IAM's NoSuchEntity error.
func notFound(err error) bool {
	var noSuchEntity *types.NoSuchEntityException
	return errors.As(err, &noSuchEntity)
}

func seedIAMPolicies(ctx context.Context, client *iam.Client, policies []IAMPolicy) error {
	for _, policy := range policies {
		// Policies land in LocalStack's default account.
		arn := "arn:aws:iam::000000000000:policy/" + policy.PolicyName

		_, err := client.GetPolicy(ctx, &iam.GetPolicyInput{PolicyArn: aws.String(arn)})
		if err == nil {
			continue
		}
		if !notFound(err) {
			return fmt.Errorf("failed to look up policy %s: %w", policy.PolicyName, err)
		}

		doc, err := json.Marshal(policy.PolicyDocument)
		if err != nil {
			return fmt.Errorf("failed to marshal policy document for %s: %w", policy.PolicyName, err)
		}

		if _, err := client.CreatePolicy(ctx, &iam.CreatePolicyInput{
			PolicyName:     aws.String(policy.PolicyName),
			Description:    aws.String(policy.Description),
			PolicyDocument: aws.String(string(doc)),
		}); err != nil {
			return fmt.Errorf("failed to create policy %s: %w", policy.PolicyName, err)
		}
	}
	return nil
}

func seedIAMRoles(ctx context.Context, client *iam.Client, roles []IAMRole) error {
	for _, role := range roles {
		_, err := client.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(role.RoleName)})
		switch {
		case err == nil:
			// Role exists; attachments below are still reconciled.
		case notFound(err):
			if _, err := client.CreateRole(ctx, &iam.CreateRoleInput{
				RoleName:                 aws.String(role.RoleName),
				Path:                     aws.String(role.Path),
				Description:              aws.String(role.Description),
				AssumeRolePolicyDocument: aws.String(governorTrustPolicy),
			}); err != nil {
				return fmt.Errorf("failed to create role %s: %w", role.RoleName, err)
			}
		default:
			return fmt.Errorf("failed to look up role %s: %w", role.RoleName, err)
		}

		if err := attachRolePolicies(ctx, client, role.RoleName, role.AttachedPolicies); err != nil {
			return err
		}
	}
	return nil
}

// attachRolePolicies attaches each listed policy to the role. AttachRolePolicy
// tolerates repeats, so only a missing role or policy is treated as fatal.
func attachRolePolicies(ctx context.Context, client *iam.Client, roleName string, policyARNs []string) error {
	for _, arn := range policyARNs {
		_, err := client.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
			RoleName:  aws.String(roleName),
			PolicyArn: aws.String(arn),
		})
		if err != nil && notFound(err) {
			return fmt.Errorf("failed to attach policy %s to role %s: %w", arn, roleName, err)
		}
	}
	return nil
}
