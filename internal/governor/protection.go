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

package governor

import (
	"context"
	"strings"

	"github.com/exit0-io/aws-cost-protection/pkg/aws"
	"github.com/exit0-io/aws-cost-protection/pkg/config"
	"github.com/exit0-io/aws-cost-protection/pkg/metrics"
)

// Decision is the outcome of a protection check. Reason is one of the
// pkg/metrics skip-reason label values so decisions feed the skip counter
// directly; Cause carries the underlying error when Reason is
// ReasonCheckFailed, for logging only.
type Decision struct {
	Protected bool
	Reason    string
	Cause     error
}

// ProtectionPolicy decides whether a resource may be acted on. It only ever
// reads: attribute and tag lookups, never writes.
//
// The policy fails safe. Any error during a check yields Protected=true with
// ReasonCheckFailed, and the resource is skipped exactly like one carrying a
// keep tag. Check errors are never surfaced as sweep errors; a persistent
// run of them shows up on the skip counter's check_failed series instead.
type ProtectionPolicy struct {
	// TagKey is matched exactly against tag keys.
	TagKey string

	// KeepValue is matched case-insensitively against tag values.
	KeepValue string
}

// NewProtectionPolicy returns the policy for the standard governance tag
// convention.
func NewProtectionPolicy() ProtectionPolicy {
	return ProtectionPolicy{
		TagKey:    config.GovernanceTagKey,
		KeepValue: config.GovernanceTagKeepValue,
	}
}

// ForInstance checks an instance's stop protection attribute, then its
// governance tag. The attribute check runs first so an attribute-protected
// instance costs one API call, not two.
func (p ProtectionPolicy) ForInstance(ctx context.Context, ec2 aws.EC2Client, instanceID string) Decision {
	stopProtected, err := ec2.DescribeStopProtection(ctx, instanceID)
	if err != nil {
		return Decision{Protected: true, Reason: metrics.ReasonCheckFailed, Cause: err}
	}
	if stopProtected {
		return Decision{Protected: true, Reason: metrics.ReasonStopProtection}
	}

	tags, err := ec2.DescribeInstanceTags(ctx, instanceID, p.TagKey)
	if err != nil {
		return Decision{Protected: true, Reason: metrics.ReasonCheckFailed, Cause: err}
	}
	if p.hasKeepTag(tags) {
		return Decision{Protected: true, Reason: metrics.ReasonGovernanceTag}
	}

	return Decision{}
}

// ForGroup checks an autoscaling group's governance tag. Groups have no
// stop-protection attribute, so the tag is the whole policy.
func (p ProtectionPolicy) ForGroup(ctx context.Context, asg aws.AutoScalingClient, groupName string) Decision {
	tags, err := asg.DescribeGroupTags(ctx, groupName, p.TagKey)
	if err != nil {
		return Decision{Protected: true, Reason: metrics.ReasonCheckFailed, Cause: err}
	}
	if p.hasKeepTag(tags) {
		return Decision{Protected: true, Reason: metrics.ReasonGovernanceTag}
	}

	return Decision{}
}

// hasKeepTag reports whether any tag matches the governance convention:
// exact key, case-insensitive value.
func (p ProtectionPolicy) hasKeepTag(tags []aws.Tag) bool {
	for _, tag := range tags {
		if tag.Key == p.TagKey && strings.EqualFold(tag.Value, p.KeepValue) {
			return true
		}
	}
	return false
}
