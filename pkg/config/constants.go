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

package config

const (
	// DefaultRegion is the single region swept when ALLOWED_REGIONS is
	// entirely unset. A set-but-empty value does NOT fall back here;
	// it means an intentionally empty sweep.
	DefaultRegion = "us-east-1"

	// GovernanceTagKey is the tag key consulted by the protection policy.
	GovernanceTagKey = "ResourceGovernance"

	// GovernanceTagKeepValue marks the owning resource as protected from
	// governance action. The comparison against the tag value is
	// case-insensitive ("keep", "Keep", "KEEP" all protect).
	GovernanceTagKeepValue = "keep"
)
