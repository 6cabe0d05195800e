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
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// credentialCheckTotal tracks the total number of credential checks performed.
	credentialCheckTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aws_credential_check_total",
			Help: "Total number of AWS credential checks performed by region and status",
		},
		[]string{"region", "status"},
	)

	// credentialCheckDuration tracks the duration of credential checks.
	credentialCheckDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aws_credential_check_duration_seconds",
			Help:    "Duration of AWS credential checks in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"region"},
	)

	// credentialLastCheckTimestamp tracks when the last check was performed.
	credentialLastCheckTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aws_credential_last_check_timestamp",
			Help: "Unix timestamp of the last AWS credential check",
		},
		[]string{"region"},
	)

	// credentialHealthy indicates whether credentials are currently healthy.
	credentialHealthy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aws_credential_healthy",
			Help: "Indicates if AWS credentials are healthy (1=healthy, 0=unhealthy)",
		},
		[]string{"region"},
	)
)

// RegionStatus represents the health status of a single sweep region.
type RegionStatus struct {
	Region      string    // AWS region identifier
	LastChecked time.Time // When the last check was performed
	LastError   error     // Error from the last check (nil if healthy)
	Healthy     bool      // Overall health status
}

// CredentialMonitor runs periodic background checks of AWS region access
// and caches the results for fast healthz lookups without making AWS API calls.
//
// Health checks read cached state from memory instead of making network
// calls, providing sub-millisecond response times while still detecting
// credential issues within the configured check interval. The sweep itself
// never consults the monitor; it finds out about broken regions the honest
// way and records them in its report.
//
// The monitor runs checks in the background on a configurable interval
// (default: 10 minutes) and maintains per-region health status with
// graceful degradation support.
type CredentialMonitor struct {
	validator     Validator      // Validator for checking region access
	regions       []RegionConfig // Regions to monitor
	checkInterval time.Duration  // How often to check access

	mu           sync.RWMutex             // Protects regionStatus map
	regionStatus map[string]*RegionStatus // key: region identifier

	ctx    context.Context    // Context for lifecycle management
	cancel context.CancelFunc // Cancel function for stopping the monitor
	logger logr.Logger        // Structured logger for monitoring events
}

// NewCredentialMonitor creates a new credential monitor with the specified
// configuration.
//
// The monitor will not start automatically - call Start() to begin background
// monitoring.
//
// Parameters:
//   - validator: region access validator
//   - regions: regions to monitor
//   - checkInterval: how often to check access (default: 10 minutes)
//   - logger: structured logger for monitoring events
func NewCredentialMonitor(
	validator Validator,
	regions []RegionConfig,
	checkInterval time.Duration,
	logger logr.Logger,
) *CredentialMonitor {
	ctx, cancel := context.WithCancel(context.Background())

	// Default check interval if not specified
	if checkInterval == 0 {
		checkInterval = 10 * time.Minute
	}

	return &CredentialMonitor{
		validator:     validator,
		regions:       regions,
		checkInterval: checkInterval,
		regionStatus:  make(map[string]*RegionStatus),
		ctx:           ctx,
		cancel:        cancel,
		logger:        logger.WithName("credential-monitor"),
	}
}

// Start begins the background monitoring goroutine.
// This method is non-blocking and returns immediately.
//
// The monitor will perform an initial check immediately on startup,
// then continue checking on the configured interval until Stop() is called.
func (m *CredentialMonitor) Start() {
	m.logger.Info("Starting credential monitor",
		"regions", len(m.regions),
		"checkInterval", m.checkInterval)

	go m.monitorLoop()
}

// Stop gracefully shuts down the credential monitor.
func (m *CredentialMonitor) Stop() {
	m.logger.Info("Stopping credential monitor")
	m.cancel()
}

// monitorLoop is the main monitoring goroutine that runs periodic checks.
func (m *CredentialMonitor) monitorLoop() {
	// Run initial check immediately on startup before entering ticker loop.
	// This ensures health status is available as soon as the monitor starts,
	// rather than waiting for the first tick (which could be 10+ minutes).
	m.CheckAllRegions()

	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CheckAllRegions()
		case <-m.ctx.Done():
			m.logger.Info("Credential monitor stopped")
			return
		}
	}
}

// CheckAllRegions performs validation checks on all configured regions.
// This runs in the background and updates the cached status for each region.
// This method is exported for testing purposes.
func (m *CredentialMonitor) CheckAllRegions() {
	m.logger.V(1).Info("Running credential checks", "regions", len(m.regions))

	for _, regionConfig := range m.regions {
		m.checkRegion(regionConfig)
	}
}

// checkRegion validates a single region and updates its status.
func (m *CredentialMonitor) checkRegion(regionConfig RegionConfig) {
	start := time.Now()

	// Perform the validation check
	err := m.validator.ValidateRegionAccess(m.ctx, regionConfig)
	duration := time.Since(start)

	// Update metrics
	status := "success"
	healthyValue := float64(1)
	if err != nil {
		status = "failure"
		healthyValue = 0
	}
	credentialCheckTotal.WithLabelValues(regionConfig.Region, status).Inc()
	credentialCheckDuration.WithLabelValues(regionConfig.Region).Observe(duration.Seconds())
	credentialLastCheckTimestamp.WithLabelValues(regionConfig.Region).SetToCurrentTime()
	credentialHealthy.WithLabelValues(regionConfig.Region).Set(healthyValue)

	// Update cached status
	m.mu.Lock()
	m.regionStatus[regionConfig.Region] = &RegionStatus{
		Region:      regionConfig.Region,
		LastChecked: time.Now(),
		LastError:   err,
		Healthy:     err == nil,
	}
	m.mu.Unlock()

	if err != nil {
		m.logger.Error(err, "Credential check failed",
			"region", regionConfig.Region,
			"duration", duration)
	} else {
		m.logger.V(1).Info("Credential check succeeded",
			"region", regionConfig.Region,
			"duration", duration)
	}
}

// GetStatus returns the cached health status for all monitored regions.
// This method is designed for healthz checks and performs only memory reads
// (no AWS API calls), providing sub-millisecond response times.
//
// The method implements graceful degradation: it returns an error only if
// ALL regions are unhealthy. If some regions are healthy and some are
// degraded, it returns nil (healthy) but logs the degraded regions. This
// keeps the service taking traffic when individual regions have issues
// while still detecting complete credential failure.
//
// Returns:
//   - nil if all regions are healthy (or if some are degraded but not all failed)
//   - error if ALL regions are unhealthy
func (m *CredentialMonitor) GetStatus() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// If no regions configured, consider healthy
	if len(m.regions) == 0 {
		return nil
	}

	var unhealthyRegions []string
	var healthyCount int

	for _, regionConfig := range m.regions {
		status, exists := m.regionStatus[regionConfig.Region]
		if !exists {
			// Region hasn't been checked yet (monitor just started)
			// Don't fail health check; just note it hasn't been validated yet
			m.logger.V(1).Info("Region not yet checked", "region", regionConfig.Region)
			continue
		}

		if !status.Healthy {
			unhealthyRegions = append(unhealthyRegions, fmt.Sprintf(
				"%s: %v",
				status.Region,
				status.LastError,
			))
		} else {
			healthyCount++
		}
	}

	// Graceful degradation: only fail if ALL regions are unhealthy.
	// This keeps the service operating when individual regions have
	// credential issues, rather than failing entirely.
	totalRegions := len(m.regions)
	if len(unhealthyRegions) > 0 {
		if healthyCount == 0 {
			// ALL regions are unhealthy - fail the health check
			return fmt.Errorf("all %d regions are unhealthy: %v",
				totalRegions, unhealthyRegions)
		}

		// Some regions unhealthy but not all - log but don't fail
		m.logger.Info("Some regions are unhealthy (degraded operation)",
			"unhealthyCount", len(unhealthyRegions),
			"healthyCount", healthyCount,
			"totalCount", totalRegions,
			"unhealthyRegions", unhealthyRegions)
	}

	return nil
}

// GetRegionStatus returns the cached status for a specific region.
// Returns nil if the region hasn't been checked yet.
func (m *CredentialMonitor) GetRegionStatus(region string) *RegionStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status, exists := m.regionStatus[region]
	if !exists {
		return nil
	}

	// Return a copy to prevent external modification
	statusCopy := *status
	return &statusCopy
}
