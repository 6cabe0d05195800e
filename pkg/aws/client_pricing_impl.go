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
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	pricingtypes "github.com/aws/aws-sdk-go-v2/service/pricing/types"
)

// The AWS Pricing API is only served from a small set of regions, regardless
// of which region's prices are being queried.
const (
	PricingRegionUSEast1  = "us-east-1"
	PricingRegionAPSouth1 = "ap-south-1"
)

// pricingCacheTTL is how long a looked-up price stays valid. On-demand
// prices change rarely, so a day keeps API traffic negligible without
// risking stale estimates that matter.
const pricingCacheTTL = 24 * time.Hour

// RealPricingClient is a production implementation of PricingClient that
// makes real API calls to the AWS Pricing API using the AWS SDK v2.
//
// Results are cached in memory with a TTL so repeated sweeps do not hammer
// the pricing API for the same instance types.
type RealPricingClient struct {
	client        *pricing.Client
	pricingRegion string

	cacheMutex sync.RWMutex
	cache      map[string]*cachedPrice
	cacheTTL   time.Duration
}

// cachedPrice is a price lookup result with its expiry.
type cachedPrice struct {
	price     *OnDemandPrice
	expiresAt time.Time
}

// NewRealPricingClient creates a new Pricing client against the default
// pricing endpoint region (us-east-1).
func NewRealPricingClient(ctx context.Context, creds aws.CredentialsProvider, endpointURL string) (*RealPricingClient, error) {
	return NewRealPricingClientWithRegion(ctx, PricingRegionUSEast1, creds, endpointURL)
}

// NewRealPricingClientWithRegion creates a new Pricing client against a
// specific pricing endpoint region. Only the regions that actually serve the
// Pricing API are accepted.
func NewRealPricingClientWithRegion(ctx context.Context, region string, creds aws.CredentialsProvider, endpointURL string) (*RealPricingClient, error) {
	if region != PricingRegionUSEast1 && region != PricingRegionAPSouth1 {
		return nil, fmt.Errorf("pricing API is not available in %q, use %s or %s",
			region, PricingRegionUSEast1, PricingRegionAPSouth1)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, err
	}

	pricingOpts := []func(*pricing.Options){}
	if endpointURL != "" {
		// Override endpoint for LocalStack testing
		pricingOpts = append(pricingOpts, func(o *pricing.Options) {
			o.BaseEndpoint = &endpointURL
		})
	}

	return &RealPricingClient{
		client:        pricing.NewFromConfig(cfg, pricingOpts...),
		pricingRegion: region,
		cache:         make(map[string]*cachedPrice),
		cacheTTL:      pricingCacheTTL,
	}, nil
}

// GetOnDemandPrice returns the on-demand price for an instance type in a
// region, consulting the cache first.
func (c *RealPricingClient) GetOnDemandPrice(
	ctx context.Context,
	region string,
	instanceType string,
	operatingSystem string,
) (*OnDemandPrice, error) {
	cacheKey := fmt.Sprintf("%s:%s:%s:Shared", region, instanceType, operatingSystem)

	c.cacheMutex.RLock()
	cached, exists := c.cache[cacheKey]
	c.cacheMutex.RUnlock()
	if exists && time.Now().Before(cached.expiresAt) {
		return cached.price, nil
	}

	// The pricing API filters on human-readable location names, not region
	// identifiers.
	location, err := regionToLocation(region)
	if err != nil {
		return nil, err
	}

	out, err := c.client.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: aws.String("AmazonEC2"),
		Filters: []pricingtypes.Filter{
			termMatchFilter("instanceType", instanceType),
			termMatchFilter("location", location),
			termMatchFilter("operatingSystem", operatingSystem),
			termMatchFilter("tenancy", "Shared"),
			termMatchFilter("preInstalledSw", "NA"),
			termMatchFilter("capacitystatus", "Used"),
		},
		MaxResults: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query pricing for %s in %s: %w", instanceType, region, err)
	}
	if len(out.PriceList) == 0 {
		return nil, fmt.Errorf("no on-demand pricing found for %s (%s) in %s",
			instanceType, operatingSystem, region)
	}

	price, err := parsePricingDocument(out.PriceList[0], region, instanceType, operatingSystem)
	if err != nil {
		return nil, err
	}

	c.cacheMutex.Lock()
	c.cache[cacheKey] = &cachedPrice{
		price:     price,
		expiresAt: time.Now().Add(c.cacheTTL),
	}
	c.cacheMutex.Unlock()

	return price, nil
}

// GetOnDemandPrices returns on-demand prices for multiple instance types.
// Instance types with no resolvable price are skipped rather than failing
// the whole batch; the caller gets whatever subset could be priced.
func (c *RealPricingClient) GetOnDemandPrices(
	ctx context.Context,
	region string,
	instanceTypes []string,
	operatingSystem string,
) ([]OnDemandPrice, error) {
	prices := make([]OnDemandPrice, 0, len(instanceTypes))
	for _, instanceType := range instanceTypes {
		price, err := c.GetOnDemandPrice(ctx, region, instanceType, operatingSystem)
		if err != nil {
			continue
		}
		prices = append(prices, *price)
	}
	return prices, nil
}

// termMatchFilter builds an exact-match pricing filter.
func termMatchFilter(field, value string) pricingtypes.Filter {
	return pricingtypes.Filter{
		Type:  pricingtypes.FilterTypeTermMatch,
		Field: aws.String(field),
		Value: aws.String(value),
	}
}

// pricingDocument is the subset of a Pricing API product document the
// on-demand price lookup needs. Both levels under OnDemand are keyed by
// opaque SKU-derived identifiers, hence the maps.
type pricingDocument struct {
	Terms struct {
		OnDemand map[string]struct {
			PriceDimensions map[string]struct {
				PricePerUnit map[string]string `json:"pricePerUnit"`
				Unit         string            `json:"unit"`
			} `json:"priceDimensions"`
		} `json:"OnDemand"`
	} `json:"terms"`
}

// parsePricingDocument extracts the hourly USD on-demand price from a raw
// Pricing API product document.
func parsePricingDocument(doc string, region, instanceType, operatingSystem string) (*OnDemandPrice, error) {
	var parsed pricingDocument
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse pricing document for %s in %s: %w", instanceType, region, err)
	}

	if len(parsed.Terms.OnDemand) == 0 {
		return nil, fmt.Errorf("pricing document for %s in %s has no OnDemand terms", instanceType, region)
	}

	for _, term := range parsed.Terms.OnDemand {
		for _, dimension := range term.PriceDimensions {
			if dimension.Unit != "Hrs" {
				continue
			}
			usd, ok := dimension.PricePerUnit["USD"]
			if !ok {
				continue
			}
			pricePerHour, err := strconv.ParseFloat(usd, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse price %q for %s in %s: %w", usd, instanceType, region, err)
			}
			return &OnDemandPrice{
				InstanceType:    instanceType,
				Region:          region,
				PricePerHour:    pricePerHour,
				OperatingSystem: operatingSystem,
				Tenancy:         "Shared",
			}, nil
		}
	}

	return nil, fmt.Errorf("pricing document for %s in %s has no hourly price dimension", instanceType, region)
}

// BrokenPricingClient is a PricingClient that fails every call with a fixed
// error. RealClient hands it out when the real pricing client cannot be
// constructed, so the failure surfaces on first use instead of as a nil
// interface.
type BrokenPricingClient struct {
	err error
}

// GetOnDemandPrice always returns the construction error.
func (c *BrokenPricingClient) GetOnDemandPrice(
	_ context.Context,
	_ string,
	_ string,
	_ string,
) (*OnDemandPrice, error) {
	return nil, c.err
}

// GetOnDemandPrices always returns the construction error.
func (c *BrokenPricingClient) GetOnDemandPrices(
	_ context.Context,
	_ string,
	_ []string,
	_ string,
) ([]OnDemandPrice, error) {
	return nil, c.err
}

// regionToLocation maps a region identifier to the location name the Pricing
// API filters on.
func regionToLocation(region string) (string, error) {
	locations := map[string]string{
		"us-east-1":      "US East (N. Virginia)",
		"us-east-2":      "US East (Ohio)",
		"us-west-1":      "US West (N. California)",
		"us-west-2":      "US West (Oregon)",
		"us-gov-east-1":  "AWS GovCloud (US-East)",
		"us-gov-west-1":  "AWS GovCloud (US-West)",
		"ca-central-1":   "Canada (Central)",
		"ca-west-1":      "Canada West (Calgary)",
		"eu-central-1":   "EU (Frankfurt)",
		"eu-central-2":   "EU (Zurich)",
		"eu-west-1":      "EU (Ireland)",
		"eu-west-2":      "EU (London)",
		"eu-west-3":      "EU (Paris)",
		"eu-north-1":     "EU (Stockholm)",
		"eu-south-1":     "EU (Milan)",
		"eu-south-2":     "EU (Spain)",
		"ap-east-1":      "Asia Pacific (Hong Kong)",
		"ap-south-1":     "Asia Pacific (Mumbai)",
		"ap-south-2":     "Asia Pacific (Hyderabad)",
		"ap-southeast-1": "Asia Pacific (Singapore)",
		"ap-southeast-2": "Asia Pacific (Sydney)",
		"ap-southeast-3": "Asia Pacific (Jakarta)",
		"ap-southeast-4": "Asia Pacific (Melbourne)",
		"ap-northeast-1": "Asia Pacific (Tokyo)",
		"ap-northeast-2": "Asia Pacific (Seoul)",
		"ap-northeast-3": "Asia Pacific (Osaka)",
		"me-south-1":     "Middle East (Bahrain)",
		"me-central-1":   "Middle East (UAE)",
		"sa-east-1":      "South America (Sao Paulo)",
		"af-south-1":     "Africa (Cape Town)",
		"il-central-1":   "Israel (Tel Aviv)",
	}

	location, ok := locations[region]
	if !ok {
		return "", fmt.Errorf("no pricing location known for region %q", region)
	}
	return location, nil
}
