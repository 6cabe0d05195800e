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

package metrics

// Metric label name constants.
const (
	// Location labels
	LabelRegion = "region"

	// Sweep labels
	LabelResourceType = "resource_type"
	LabelReason       = "reason"

	// Credential check labels
	LabelStatus = "status"
)

// Values for the resource_type label.
const (
	ResourceTypeInstance = "instance"
	ResourceTypeGroup    = "asg"
)

// Values for the reason label on protected-skip counters. These classify why
// a resource was left alone: one of the two protection markers, or a failed
// protection check (the fail-safe path). A persistently rising check_failed
// series means the sweeper is skipping resources it cannot classify.
const (
	ReasonStopProtection = "stop_protection"
	ReasonGovernanceTag  = "governance_tag"
	ReasonCheckFailed    = "check_failed"
)
