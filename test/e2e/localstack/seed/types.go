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

// IAMFixtures defines all IAM resources to seed into LocalStack.
// These fixtures create the roles and policies the governor assumes
// during E2E testing.
type IAMFixtures struct {
	Roles    []IAMRole   `json:"roles"`
	Policies []IAMPolicy `json:"policies"`
}

// IAMRole represents an IAM role to be created in LocalStack.
type IAMRole struct {
	// RoleName is the name of the IAM role (e.g., "CostGovernorRole")
	RoleName string `json:"role_name"`

	// Path is the IAM path for the role (e.g., "/governance/")
	Path string `json:"path"`

	// Description provides context about the role's purpose
	Description string `json:"description"`

	// AttachedPolicies lists policy ARNs to attach to this role
	// Example: ["arn:aws:iam::000000000000:policy/CostGovernorPolicy"]
	AttachedPolicies []string `json:"attached_policies"`
}

// IAMPolicy represents an IAM policy to be created in LocalStack.
type IAMPolicy struct {
	// PolicyName is the name of the IAM policy (e.g., "CostGovernorPolicy")
	PolicyName string `json:"policy_name"`

	// Description provides context about the policy's purpose
	Description string `json:"description"`

	// PolicyDocument is the JSON policy document defining permissions
	PolicyDocument PolicyDocument `json:"policy_document"`
}

// PolicyDocument represents an IAM policy document structure.
// This follows the standard AWS IAM policy format.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement represents a single statement in an IAM policy.
type Statement struct {
	Effect   string      `json:"Effect"`   // "Allow" or "Deny"
	Action   []string    `json:"Action"`   // List of actions (e.g., ["ec2:StopInstances"])
	Resource interface{} `json:"Resource"` // "*" or array of ARNs
}

// EC2Fixtures defines all EC2 resources to seed into LocalStack.
type EC2Fixtures struct {
	SecurityGroups []SecurityGroup `json:"security_groups"`
	Instances      []EC2Instance   `json:"instances"`
}

// SecurityGroup represents an EC2 security group to be created.
type SecurityGroup struct {
	// GroupName is the name of the security group
	GroupName string `json:"group_name"`

	// Description provides context about the security group
	Description string `json:"description"`

	// Region is the AWS region where the security group should be created
	Region string `json:"region"`
}

// EC2Instance represents an EC2 instance to be created in LocalStack.
type EC2Instance struct {
	// ImageID is the AMI ID (LocalStack accepts any value, e.g., "ami-12345678")
	ImageID string `json:"image_id"`

	// InstanceType is the EC2 instance type (e.g., "m5.large")
	InstanceType string `json:"instance_type"`

	// Count is the number of instances to launch
	Count int `json:"count"`

	// Region is the AWS region where the instance should be created
	Region string `json:"region"`

	// DisableAPIStop enables EC2 stop protection on the instance, making
	// it invisible to the sweep's stop path
	DisableAPIStop bool `json:"disable_api_stop"`

	// Tags are key-value pairs to tag the instance
	// Example: [{"Key": "ResourceGovernance", "Value": "keep"}]
	Tags []Tag `json:"tags"`
}

// Tag represents an AWS resource tag.
type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// AutoScalingFixtures defines all Auto Scaling resources to seed into
// LocalStack.
type AutoScalingFixtures struct {
	LaunchConfigurations []LaunchConfiguration `json:"launch_configurations"`
	Groups               []AutoScalingGroup    `json:"groups"`
}

// LaunchConfiguration represents a launch configuration backing the seeded
// Auto Scaling groups.
type LaunchConfiguration struct {
	// Name is the launch configuration name (e.g., "e2e-lc")
	Name string `json:"name"`

	// ImageID is the AMI ID (LocalStack accepts any value)
	ImageID string `json:"image_id"`

	// InstanceType is the EC2 instance type launched by groups using this
	// configuration
	InstanceType string `json:"instance_type"`

	// Region is the AWS region where the configuration should be created
	Region string `json:"region"`
}

// AutoScalingGroup represents an Auto Scaling group to be created in
// LocalStack.
type AutoScalingGroup struct {
	// Name is the Auto Scaling group name
	Name string `json:"name"`

	// LaunchConfigurationName references a LaunchConfiguration fixture
	LaunchConfigurationName string `json:"launch_configuration_name"`

	// MinSize is the group's minimum capacity
	MinSize int32 `json:"min_size"`

	// MaxSize is the group's maximum capacity
	MaxSize int32 `json:"max_size"`

	// DesiredCapacity is the capacity the group targets at creation
	DesiredCapacity int32 `json:"desired_capacity"`

	// Region is the AWS region where the group should be created
	Region string `json:"region"`

	// AvailabilityZones lists the zones the group spans
	AvailabilityZones []string `json:"availability_zones"`

	// Tags are applied to the group. PropagateAtLaunch controls whether a
	// tag is copied onto instances the group launches; the governance tag
	// should propagate so launched instances are protected too.
	Tags []AutoScalingTag `json:"tags"`
}

// AutoScalingTag represents an Auto Scaling group tag.
type AutoScalingTag struct {
	Key               string `json:"Key"`
	Value             string `json:"Value"`
	PropagateAtLaunch bool   `json:"PropagateAtLaunch"`
}
