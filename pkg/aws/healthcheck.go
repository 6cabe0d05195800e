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
	"net/http"
)

// HealthChecker adapts the credential monitor's cached region status to the
// probe handler signature the ops server serves. It is meant to back a
// readiness probe: the service does not report ready while every configured
// sweep region is unreachable.
//
// Checks read only the monitor's in-memory cache, never AWS APIs, so probe
// frequency puts no load on AWS regardless of how aggressive the prober is.
type HealthChecker struct {
	monitor *CredentialMonitor
}

// NewHealthChecker creates a health checker backed by the given monitor.
func NewHealthChecker(monitor *CredentialMonitor) *HealthChecker {
	return &HealthChecker{
		monitor: monitor,
	}
}

// Name returns the name of this health checker for logging purposes.
func (h *HealthChecker) Name() string {
	return "aws-region-access"
}

// Check reports readiness from the monitor's cached state.
//
// The monitor degrades gracefully: individual unhealthy regions do not fail
// the check, only the loss of every region does. Regions not yet checked
// (monitor just started) count as healthy so startup is not blocked on the
// first full validation pass.
//
// This check is designed to be used as a readiness probe, not a liveness
// probe. Temporary AWS API failures should not cause the process to be
// killed, but they should prevent it from receiving traffic until access is
// restored.
func (h *HealthChecker) Check(_ *http.Request) error {
	return h.monitor.GetStatus()
}
