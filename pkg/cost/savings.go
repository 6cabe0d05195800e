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

// Package cost estimates the spend removed by governance sweeps.
package cost

import (
	"context"

	"github.com/exit0-io/aws-cost-protection/pkg/aws"
)

// PriceReader provides on-demand prices for instance types in a region.
// Satisfied by the aws package's PricingClient; narrow so tests can supply
// small stubs.
type PriceReader interface {
	GetOnDemandPrices(ctx context.Context, region string, instanceTypes []string, operatingSystem string) ([]aws.OnDemandPrice, error)
}

// SavingsEstimator converts a sweep's stopped instances into an estimated
// hourly on-demand rate. The estimate is a shelf-price upper bound: discount
// instruments are not modeled, and autoscaling groups are excluded because
// the instance types behind a group are not resolved.
//
// The estimator is stateless and best effort. A type or region that cannot
// be priced contributes nothing to the total and is counted in the result
// instead of failing the sweep.
type SavingsEstimator struct {
	// Pricing resolves on-demand rates. Optional: if nil, every instance
	// is reported unpriced.
	Pricing PriceReader

	// OperatingSystem is the pricing dimension to query, e.g. "Linux".
	OperatingSystem string
}

// Estimate is the outcome of pricing one sweep's stops.
type Estimate struct {
	// HourlyDollars is the summed on-demand rate (USD/hour) of all priced
	// instances.
	HourlyDollars float64

	// Priced and Unpriced count how many instances did and did not resolve
	// a price. Unpriced covers unknown types and pricing lookup failures.
	Priced   int
	Unpriced int
}

// NewSavingsEstimator creates a savings estimator. operatingSystem selects
// the pricing dimension ("Linux" unless the fleet runs something else).
func NewSavingsEstimator(pricing PriceReader, operatingSystem string) *SavingsEstimator {
	return &SavingsEstimator{
		Pricing:         pricing,
		OperatingSystem: operatingSystem,
	}
}

// EstimateHourlySavings prices the given stopped instances. Instances are
// grouped by region, each region's types are resolved in one pricing call,
// and every instance contributes its type's rate to the total.
//
// A failed pricing call marks that region's instances unpriced and moves on.
func (e *SavingsEstimator) EstimateHourlySavings(ctx context.Context, instances []aws.Instance) Estimate {
	estimate := Estimate{}
	if len(instances) == 0 {
		return estimate
	}
	if e.Pricing == nil {
		estimate.Unpriced = len(instances)
		return estimate
	}

	// Group instance types by region so each region costs one lookup
	typesByRegion := make(map[string][]string)
	seen := make(map[string]bool)
	for _, instance := range instances {
		key := instance.Region + ":" + instance.InstanceType
		if seen[key] {
			continue
		}
		seen[key] = true
		typesByRegion[instance.Region] = append(typesByRegion[instance.Region], instance.InstanceType)
	}

	// Resolve rates per region; a failed region simply stays unpriced
	rates := make(map[string]float64)
	for region, types := range typesByRegion {
		prices, err := e.Pricing.GetOnDemandPrices(ctx, region, types, e.OperatingSystem)
		if err != nil {
			continue
		}
		for _, price := range prices {
			rates[region+":"+price.InstanceType] = price.PricePerHour
		}
	}

	for _, instance := range instances {
		rate, ok := rates[instance.Region+":"+instance.InstanceType]
		if !ok {
			estimate.Unpriced++
			continue
		}
		estimate.Priced++
		estimate.HourlyDollars += rate
	}

	return estimate
}
