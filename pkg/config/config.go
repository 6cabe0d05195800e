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

// Package config provides configuration management for the cost governor.
//
// The governor requires configuration for:
//   - The list of AWS regions allowed to be swept
//   - Optional cross-account role assumption
//   - Operational settings (sweep interval, log level, bind addresses)
//
// Configuration is environment-first so the same binary runs unchanged in
// Lambda (env vars only, no filesystem) and as a standalone daemon (env vars
// plus an optional YAML file). Uses Viper for robust configuration management
// with explicit env binding.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete governor configuration.
type Config struct {
	// AllowedRegions is the comma-separated list of AWS regions the sweep is
	// allowed to process, in order. Empty and whitespace-only entries are
	// dropped during parsing. When the value is entirely unset the governor
	// falls back to DefaultRegion; an explicitly empty value means "sweep
	// nothing" and is valid.
	AllowedRegions string `yaml:"allowedRegions,omitempty"`

	// AssumeRoleARN is an optional IAM role to assume before creating the
	// per-region service clients. When empty, the SDK default credential
	// chain of the execution environment is used directly.
	// Format: arn:aws:iam::ACCOUNT_ID:role/ROLE_NAME
	AssumeRoleARN string `yaml:"assumeRoleArn,omitempty"`

	// ExternalID is the external ID presented when assuming AssumeRoleARN.
	// Only meaningful together with AssumeRoleARN.
	ExternalID string `yaml:"externalId,omitempty"`

	// EndpointURL overrides the AWS service endpoint for every client.
	// Used to point the governor at LocalStack-style stacks in development.
	EndpointURL string `yaml:"endpointUrl,omitempty"`

	// SweepInterval is how often the standalone service runs a governance
	// sweep. Format: Go duration string (e.g., "30m", "1h").
	// Default: 1h. Ignored in Lambda and one-shot modes.
	SweepInterval string `yaml:"sweepInterval,omitempty"`

	// LogLevel controls the verbosity of logs.
	// Valid values: debug, info, warn, error
	// Default: info
	LogLevel string `yaml:"logLevel,omitempty"`

	// MetricsBindAddress is the address the metrics/ops endpoint binds to.
	// Default: :8080
	MetricsBindAddress string `yaml:"metricsBindAddress,omitempty"`

	// HealthProbeBindAddress is the address the health probe endpoint binds to.
	// Default: :8081
	HealthProbeBindAddress string `yaml:"healthProbeBindAddress,omitempty"`

	// CredentialCheckInterval is how often the background monitor validates
	// region access. Format: Go duration string (e.g., "5m", "10m").
	// Default: 10m
	CredentialCheckInterval string `yaml:"credentialCheckInterval,omitempty"`

	// Savings contains settings for the post-sweep savings estimate.
	Savings SavingsConfig `yaml:"savings,omitempty"`
}

// SavingsConfig contains settings for the estimated-savings lookup that runs
// after each sweep. The estimate is best effort and never affects the sweep
// outcome.
type SavingsConfig struct {
	// OperatingSystem is the OS assumed when looking up on-demand prices for
	// stopped instances. The stop path does not inspect the instance platform,
	// so a single assumption keeps the estimate cheap.
	// Valid values: "Linux", "Windows", "RHEL", "SUSE"
	// Default: "Linux"
	OperatingSystem string `yaml:"operatingSystem,omitempty"`
}

// Load loads configuration from the environment and, when path is non-empty,
// a YAML file, then validates the result.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables
//  2. Configuration file values (only when a path is given)
//  3. Default values
//
// The region list binds to the bare ALLOWED_REGIONS variable first
// (GOVERNOR_ALLOWED_REGIONS also works), and a variable that is set but empty
// yields zero regions rather than the default.
// Every other setting binds under the GOVERNOR_ prefix, for example:
//   - GOVERNOR_SWEEP_INTERVAL overrides sweepInterval
//   - GOVERNOR_LOG_LEVEL overrides logLevel
//   - GOVERNOR_ASSUME_ROLE_ARN overrides assumeRoleArn
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("allowedRegions", DefaultRegion)
	v.SetDefault("sweepInterval", "1h")
	v.SetDefault("logLevel", "info")
	v.SetDefault("metricsBindAddress", ":8080")
	v.SetDefault("healthProbeBindAddress", ":8081")
	v.SetDefault("credentialCheckInterval", "10m")
	v.SetDefault("savings.operatingSystem", "Linux")

	// A set-but-empty ALLOWED_REGIONS must produce an empty sweep, not fall
	// through to the default region.
	v.AllowEmptyEnv(true)

	// Enable environment variable overrides with GOVERNOR_ prefix
	// Manually bind each config key to its environment variable
	// Viper's automatic mapping doesn't handle camelCase to SCREAMING_SNAKE_CASE well
	v.SetEnvPrefix("GOVERNOR")
	_ = v.BindEnv("allowedRegions", "ALLOWED_REGIONS", "GOVERNOR_ALLOWED_REGIONS")
	_ = v.BindEnv("assumeRoleArn", "GOVERNOR_ASSUME_ROLE_ARN")
	_ = v.BindEnv("externalId", "GOVERNOR_EXTERNAL_ID")
	_ = v.BindEnv("endpointUrl", "GOVERNOR_ENDPOINT_URL")
	_ = v.BindEnv("sweepInterval", "GOVERNOR_SWEEP_INTERVAL")
	_ = v.BindEnv("logLevel", "GOVERNOR_LOG_LEVEL")
	_ = v.BindEnv("metricsBindAddress", "GOVERNOR_METRICS_BIND_ADDRESS")
	_ = v.BindEnv("healthProbeBindAddress", "GOVERNOR_HEALTH_PROBE_BIND_ADDRESS")
	_ = v.BindEnv("credentialCheckInterval", "GOVERNOR_CREDENTIAL_CHECK_INTERVAL")
	_ = v.BindEnv("savings.operatingSystem", "GOVERNOR_SAVINGS_OPERATING_SYSTEM")

	// Read the configuration file only when one was supplied. Lambda runs
	// env-only.
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is valid and returns an error if not.
//
// Region identifiers themselves are treated as opaque strings: a bogus
// region surfaces as a per-region error in the sweep report rather than a
// startup failure, matching the partial-failure model.
func (c *Config) Validate() error {
	// Validate AssumeRole ARN format when one is configured
	if c.AssumeRoleARN != "" && !isValidIAMRoleARN(c.AssumeRoleARN) {
		return fmt.Errorf(
			"invalid AssumeRole ARN %q: must be in format arn:aws:iam::ACCOUNT_ID:role/ROLE_NAME",
			c.AssumeRoleARN,
		)
	}

	// An external ID without a role to assume is a configuration mistake
	if c.ExternalID != "" && c.AssumeRoleARN == "" {
		return fmt.Errorf("externalId is set but assumeRoleArn is not")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	// Validate intervals
	if c.SweepInterval != "" {
		if _, err := time.ParseDuration(c.SweepInterval); err != nil {
			return fmt.Errorf("invalid sweep interval %q: %w", c.SweepInterval, err)
		}
	}
	if c.CredentialCheckInterval != "" {
		if _, err := time.ParseDuration(c.CredentialCheckInterval); err != nil {
			return fmt.Errorf("invalid credential check interval %q: %w", c.CredentialCheckInterval, err)
		}
	}

	// Validate savings configuration
	if c.Savings.OperatingSystem != "" {
		validOSes := map[string]bool{
			"Linux":   true,
			"Windows": true,
			"RHEL":    true,
			"SUSE":    true,
		}
		if !validOSes[c.Savings.OperatingSystem] {
			return fmt.Errorf(
				"invalid operating system %q in savings config, must be one of: Linux, Windows, RHEL, SUSE",
				c.Savings.OperatingSystem,
			)
		}
	}

	return nil
}

// Regions returns the parsed allowed-region list in configured order.
// Empty and whitespace-only entries are dropped. An entirely empty value
// yields an empty slice, which the governor treats as a valid empty sweep.
func (c *Config) Regions() []string {
	regions := make([]string, 0)
	for _, part := range strings.Split(c.AllowedRegions, ",") {
		region := strings.TrimSpace(part)
		if region == "" {
			continue
		}
		regions = append(regions, region)
	}
	return regions
}

// GetSweepInterval returns the parsed sweep interval duration.
// Returns 1 hour if not configured (the default value).
func (c *Config) GetSweepInterval() time.Duration {
	if c.SweepInterval == "" {
		return time.Hour
	}
	duration, err := time.ParseDuration(c.SweepInterval)
	if err != nil {
		// Should never happen since Validate() checks this
		return time.Hour
	}
	return duration
}

// GetCredentialCheckInterval returns the parsed credential check interval.
// Returns 10 minutes if not configured (the default value).
func (c *Config) GetCredentialCheckInterval() time.Duration {
	if c.CredentialCheckInterval == "" {
		return 10 * time.Minute
	}
	duration, err := time.ParseDuration(c.CredentialCheckInterval)
	if err != nil {
		// Should never happen since Validate() checks this
		return 10 * time.Minute
	}
	return duration
}

// GetSavingsOperatingSystem returns the OS assumed for savings price lookups.
// Returns "Linux" if not configured (the default value).
func (c *Config) GetSavingsOperatingSystem() string {
	if c.Savings.OperatingSystem == "" {
		return "Linux"
	}
	return c.Savings.OperatingSystem
}

// isValidIAMRoleARN checks if a string is a valid IAM role ARN.
// Valid format: arn:aws:iam::123456789012:role/RoleName
// Also accepts: arn:aws-us-gov:iam::... for GovCloud
func isValidIAMRoleARN(arn string) bool {
	// Partition can be "aws" or "aws-us-gov" or "aws-cn"
	matched, _ := regexp.MatchString(`^arn:(aws|aws-us-gov|aws-cn):iam::\d{12}:role/[a-zA-Z0-9+=,.@\-_/]+$`, arn)
	return matched
}
