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

// Package aws provides abstractions for interacting with AWS services.
//
// This file contains pure data structure definitions with no logic.
// These types are constructed exactly once at the API boundary (see the
// convert helpers in the client implementations) so the rest of the
// codebase never touches raw SDK response shapes.

package aws

import (
	"time"
)

// EC2 instance state names as reported by the DescribeInstances API.
const (
	InstanceStateRunning  = "running"
	InstanceStateStopped  = "stopped"
	InstanceStateStopping = "stopping"
)

// RegionConfig represents configuration for accessing AWS APIs in one region.
// Supports both the ambient credential chain and AssumeRole-based access.
type RegionConfig struct {
	// Region is the AWS region all service clients are created for.
	Region string

	// AssumeRoleARN is the ARN of the role to assume before creating clients.
	// If empty, the default credential chain is used directly.
	// Example: "arn:aws:iam::111111111111:role/cost-governor"
	AssumeRoleARN string

	// ExternalID is an optional external ID for AssumeRole operations.
	// Used for enhanced security when assuming roles across accounts.
	ExternalID string

	// SessionName is the name to use for AssumeRole sessions.
	// Defaults to "cost-governor" if not specified.
	SessionName string
}

// Instance represents an EC2 instance as seen by a governance sweep.
type Instance struct {
	// InstanceID is the EC2 instance ID (e.g., "i-abc123def456")
	InstanceID string

	// InstanceType is the instance type (e.g., "m5.xlarge")
	InstanceType string

	// State is the current instance state (e.g., "running", "stopped")
	State string

	// Region is the AWS region
	Region string

	// AvailabilityZone is the AZ where the instance is running
	AvailabilityZone string

	// LaunchTime is when the instance was launched
	LaunchTime time.Time
}

// AutoScalingGroup represents an EC2 Auto Scaling group with the capacity
// fields a governance sweep inspects and updates.
type AutoScalingGroup struct {
	// Name is the Auto Scaling group name, unique within a region
	Name string

	// MinSize is the configured minimum capacity
	MinSize int32

	// MaxSize is the configured maximum capacity
	MaxSize int32

	// DesiredCapacity is the capacity the group currently targets
	DesiredCapacity int32

	// Region is the AWS region
	Region string
}

// Tag is a single resource tag as returned by the tagging APIs.
// Tags are looked up live per resource during a sweep, never cached.
type Tag struct {
	// Key is the tag key (e.g., "ResourceGovernance")
	Key string

	// Value is the tag value (e.g., "keep")
	Value string
}

// OnDemandPrice represents the on-demand price for an instance type.
type OnDemandPrice struct {
	// InstanceType is the instance type
	InstanceType string

	// Region is the AWS region
	Region string

	// PricePerHour is the on-demand hourly price in USD
	PricePerHour float64

	// OperatingSystem is the OS type (e.g., "Linux")
	OperatingSystem string

	// Tenancy is "Shared", "Dedicated", or "Host"
	Tenancy string
}
