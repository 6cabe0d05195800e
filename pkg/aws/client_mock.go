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
)

// MockClient is a mock implementation of the Client interface for testing.
// It provides configurable responses and tracks method calls.
type MockClient struct {
	mu sync.RWMutex

	// EC2Clients maps region to MockEC2Client
	EC2Clients map[string]*MockEC2Client

	// AutoScalingClients maps region to MockAutoScalingClient
	AutoScalingClients map[string]*MockAutoScalingClient

	// PricingClientInstance is the mock pricing client
	PricingClientInstance *MockPricingClient

	// AssumeRoleCalls tracks all AssumeRole attempts
	AssumeRoleCalls []AssumeRoleCall

	// Errors can be set to simulate client construction failures. The map
	// variants scope the failure to a single region.
	EC2Error          error
	EC2Errors         map[string]error
	AutoScalingError  error
	AutoScalingErrors map[string]error
}

// AssumeRoleCall records an AssumeRole operation for testing.
type AssumeRoleCall struct {
	Region        string
	AssumeRoleARN string
	SessionName   string
}

// NewMockClient creates a new MockClient with initialized maps.
func NewMockClient() *MockClient {
	return &MockClient{
		EC2Clients:            make(map[string]*MockEC2Client),
		AutoScalingClients:    make(map[string]*MockAutoScalingClient),
		PricingClientInstance: NewMockPricingClient(),
		AssumeRoleCalls:       []AssumeRoleCall{},
		EC2Errors:             make(map[string]error),
		AutoScalingErrors:     make(map[string]error),
	}
}

// EC2 returns a mock EC2Client for the specified region.
func (m *MockClient) EC2(ctx context.Context, regionConfig RegionConfig) (EC2Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.EC2Error != nil {
		return nil, m.EC2Error
	}
	if err, ok := m.EC2Errors[regionConfig.Region]; ok && err != nil {
		return nil, err
	}

	// Track AssumeRole call if ARN is specified
	if regionConfig.AssumeRoleARN != "" {
		m.AssumeRoleCalls = append(m.AssumeRoleCalls, AssumeRoleCall{
			Region:        regionConfig.Region,
			AssumeRoleARN: regionConfig.AssumeRoleARN,
			SessionName:   regionConfig.SessionName,
		})
	}

	// Return existing client or create new one
	client, exists := m.EC2Clients[regionConfig.Region]
	if !exists {
		client = NewMockEC2Client()
		m.EC2Clients[regionConfig.Region] = client
	}

	return client, nil
}

// AutoScaling returns a mock AutoScalingClient for the specified region.
func (m *MockClient) AutoScaling(ctx context.Context, regionConfig RegionConfig) (AutoScalingClient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AutoScalingError != nil {
		return nil, m.AutoScalingError
	}
	if err, ok := m.AutoScalingErrors[regionConfig.Region]; ok && err != nil {
		return nil, err
	}

	// Track AssumeRole call if ARN is specified
	if regionConfig.AssumeRoleARN != "" {
		m.AssumeRoleCalls = append(m.AssumeRoleCalls, AssumeRoleCall{
			Region:        regionConfig.Region,
			AssumeRoleARN: regionConfig.AssumeRoleARN,
			SessionName:   regionConfig.SessionName,
		})
	}

	// Return existing client or create new one
	client, exists := m.AutoScalingClients[regionConfig.Region]
	if !exists {
		client = NewMockAutoScalingClient()
		m.AutoScalingClients[regionConfig.Region] = client
	}

	return client, nil
}

// Pricing returns the mock PricingClient.
func (m *MockClient) Pricing(ctx context.Context) PricingClient {
	return m.PricingClientInstance
}

// MockEC2Client is a mock implementation of EC2Client for testing.
type MockEC2Client struct {
	mu sync.RWMutex

	// Instances is the mock instance data across all states;
	// DescribeRunningInstances serves the running subset
	Instances []Instance

	// StopProtected maps instance ID to the disableApiStop attribute value
	StopProtected map[string]bool

	// Tags maps instance ID to that instance's tags
	Tags map[string][]Tag

	// Error injection for testing error paths. Map variants fail only the
	// given instance ID.
	DescribeRunningInstancesError error
	DescribeStopProtectionErrors  map[string]error
	DescribeInstanceTagsErrors    map[string]error
	StopInstanceErrors            map[string]error

	// StopCalls records the instance IDs stopped, in call order
	StopCalls []string

	// CallCounts tracks method call counts
	DescribeRunningInstancesCallCount int
	DescribeStopProtectionCallCount   int
	DescribeInstanceTagsCallCount     int
	StopInstanceCallCount             int
}

// NewMockEC2Client creates a new MockEC2Client.
func NewMockEC2Client() *MockEC2Client {
	return &MockEC2Client{
		Instances:                    []Instance{},
		StopProtected:                make(map[string]bool),
		Tags:                         make(map[string][]Tag),
		DescribeStopProtectionErrors: make(map[string]error),
		DescribeInstanceTagsErrors:   make(map[string]error),
		StopInstanceErrors:           make(map[string]error),
		StopCalls:                    []string{},
	}
}

// DescribeRunningInstances returns the mock instances whose state is "running".
func (m *MockEC2Client) DescribeRunningInstances(ctx context.Context) ([]Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DescribeRunningInstancesCallCount++

	// Return error if set (for testing error paths)
	if m.DescribeRunningInstancesError != nil {
		return nil, m.DescribeRunningInstancesError
	}

	running := []Instance{}
	for _, instance := range m.Instances {
		if instance.State == InstanceStateRunning {
			running = append(running, instance)
		}
	}

	return running, nil
}

// DescribeStopProtection returns the mock disableApiStop value for the instance.
func (m *MockEC2Client) DescribeStopProtection(ctx context.Context, instanceID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DescribeStopProtectionCallCount++

	if err := m.DescribeStopProtectionErrors[instanceID]; err != nil {
		return false, err
	}

	return m.StopProtected[instanceID], nil
}

// DescribeInstanceTags returns the instance's mock tags with the given key.
func (m *MockEC2Client) DescribeInstanceTags(ctx context.Context, instanceID string, key string) ([]Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DescribeInstanceTagsCallCount++

	if err := m.DescribeInstanceTagsErrors[instanceID]; err != nil {
		return nil, err
	}

	matched := []Tag{}
	for _, tag := range m.Tags[instanceID] {
		if tag.Key == key {
			matched = append(matched, tag)
		}
	}

	return matched, nil
}

// StopInstance records the stop call and transitions the mock instance out of
// the running state, so a subsequent DescribeRunningInstances no longer
// returns it. This mirrors the real API closely enough for idempotence tests.
func (m *MockEC2Client) StopInstance(ctx context.Context, instanceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StopInstanceCallCount++

	if err := m.StopInstanceErrors[instanceID]; err != nil {
		return err
	}

	m.StopCalls = append(m.StopCalls, instanceID)
	for i := range m.Instances {
		if m.Instances[i].InstanceID == instanceID {
			m.Instances[i].State = InstanceStateStopping
		}
	}

	return nil
}

// SetInstances replaces the mock instance data (helper for tests).
func (m *MockEC2Client) SetInstances(instances []Instance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Instances = instances
}

// SetStopProtected sets the mock disableApiStop value for an instance
// (helper for tests).
func (m *MockEC2Client) SetStopProtected(instanceID string, protected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StopProtected[instanceID] = protected
}

// SetTags sets the mock tags for an instance (helper for tests).
func (m *MockEC2Client) SetTags(instanceID string, tags []Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tags[instanceID] = tags
}

// MockAutoScalingClient is a mock implementation of AutoScalingClient for testing.
type MockAutoScalingClient struct {
	mu sync.RWMutex

	// Groups is the mock Auto Scaling group data
	Groups []AutoScalingGroup

	// Tags maps group name to that group's tags
	Tags map[string][]Tag

	// Error injection for testing error paths. Map variants fail only the
	// given group name.
	DescribeGroupsError     error
	DescribeGroupTagsErrors map[string]error
	UpdateGroupErrors       map[string]error

	// CapacityUpdates records every UpdateGroupCapacity call, in call order
	CapacityUpdates []CapacityUpdate

	// CallCounts tracks method call counts
	DescribeGroupsCallCount    int
	DescribeGroupTagsCallCount int
	UpdateGroupCallCount       int
}

// CapacityUpdate records an UpdateGroupCapacity operation for testing.
type CapacityUpdate struct {
	GroupName       string
	MinSize         int32
	MaxSize         int32
	DesiredCapacity int32
}

// NewMockAutoScalingClient creates a new MockAutoScalingClient.
func NewMockAutoScalingClient() *MockAutoScalingClient {
	return &MockAutoScalingClient{
		Groups:                  []AutoScalingGroup{},
		Tags:                    make(map[string][]Tag),
		DescribeGroupTagsErrors: make(map[string]error),
		UpdateGroupErrors:       make(map[string]error),
		CapacityUpdates:         []CapacityUpdate{},
	}
}

// DescribeGroups returns the mock Auto Scaling group data.
func (m *MockAutoScalingClient) DescribeGroups(ctx context.Context) ([]AutoScalingGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DescribeGroupsCallCount++

	// Return error if set (for testing error paths)
	if m.DescribeGroupsError != nil {
		return nil, m.DescribeGroupsError
	}

	groups := make([]AutoScalingGroup, len(m.Groups))
	copy(groups, m.Groups)
	return groups, nil
}

// DescribeGroupTags returns the group's mock tags with the given key.
func (m *MockAutoScalingClient) DescribeGroupTags(ctx context.Context, groupName string, key string) ([]Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DescribeGroupTagsCallCount++

	if err := m.DescribeGroupTagsErrors[groupName]; err != nil {
		return nil, err
	}

	matched := []Tag{}
	for _, tag := range m.Tags[groupName] {
		if tag.Key == key {
			matched = append(matched, tag)
		}
	}

	return matched, nil
}

// UpdateGroupCapacity records the update and applies it to the mock group, so
// a subsequent DescribeGroups reflects the new capacity.
func (m *MockAutoScalingClient) UpdateGroupCapacity(ctx context.Context, groupName string, minSize, maxSize, desiredCapacity int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateGroupCallCount++

	if err := m.UpdateGroupErrors[groupName]; err != nil {
		return err
	}

	m.CapacityUpdates = append(m.CapacityUpdates, CapacityUpdate{
		GroupName:       groupName,
		MinSize:         minSize,
		MaxSize:         maxSize,
		DesiredCapacity: desiredCapacity,
	})

	for i := range m.Groups {
		if m.Groups[i].Name == groupName {
			m.Groups[i].MinSize = minSize
			m.Groups[i].MaxSize = maxSize
			m.Groups[i].DesiredCapacity = desiredCapacity
		}
	}

	return nil
}

// SetGroups replaces the mock group data (helper for tests).
func (m *MockAutoScalingClient) SetGroups(groups []AutoScalingGroup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Groups = groups
}

// SetTags sets the mock tags for a group (helper for tests).
func (m *MockAutoScalingClient) SetTags(groupName string, tags []Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tags[groupName] = tags
}

// MockPricingClient is a mock implementation of PricingClient for testing.
type MockPricingClient struct {
	mu sync.RWMutex

	// OnDemandPrices maps "region:instanceType:os" to price
	OnDemandPrices map[string]*OnDemandPrice

	// Error injection for testing error paths
	GetOnDemandPriceError error

	// CallCounts tracks method call counts
	GetOnDemandPriceCallCount  int
	GetOnDemandPricesCallCount int
}

// NewMockPricingClient creates a new MockPricingClient.
func NewMockPricingClient() *MockPricingClient {
	return &MockPricingClient{
		OnDemandPrices: make(map[string]*OnDemandPrice),
	}
}

// GetOnDemandPrice returns the mock on-demand price.
func (m *MockPricingClient) GetOnDemandPrice(
	ctx context.Context,
	region string,
	instanceType string,
	operatingSystem string,
) (*OnDemandPrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetOnDemandPriceCallCount++

	if m.GetOnDemandPriceError != nil {
		return nil, m.GetOnDemandPriceError
	}

	key := fmt.Sprintf("%s:%s:%s", region, instanceType, operatingSystem)
	price, exists := m.OnDemandPrices[key]
	if !exists {
		return nil, fmt.Errorf("on-demand price not found for %s", key)
	}

	return price, nil
}

// GetOnDemandPrices returns mock on-demand prices for multiple instance types.
// Instance types with no configured price are skipped, like the real client.
func (m *MockPricingClient) GetOnDemandPrices(
	ctx context.Context,
	region string,
	instanceTypes []string,
	operatingSystem string,
) ([]OnDemandPrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetOnDemandPricesCallCount++

	if m.GetOnDemandPriceError != nil {
		return nil, m.GetOnDemandPriceError
	}

	prices := []OnDemandPrice{}
	for _, instanceType := range instanceTypes {
		key := fmt.Sprintf("%s:%s:%s", region, instanceType, operatingSystem)
		price, exists := m.OnDemandPrices[key]
		if exists {
			prices = append(prices, *price)
		}
	}

	return prices, nil
}

// SetOnDemandPrice sets a mock on-demand price (helper for tests).
func (m *MockPricingClient) SetOnDemandPrice(
	region string,
	instanceType string,
	operatingSystem string,
	pricePerHour float64,
) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s:%s:%s", region, instanceType, operatingSystem)
	m.OnDemandPrices[key] = &OnDemandPrice{
		InstanceType:    instanceType,
		Region:          region,
		PricePerHour:    pricePerHour,
		OperatingSystem: operatingSystem,
		Tenancy:         "Shared",
	}
}
