//go:build e2e
// +build e2e

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

package e2e

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/exit0-io/aws-cost-protection/pkg/aws"
)

var _ = Describe("Sweeping with a failing region", Ordered, func() {
	var stack *governorStack

	BeforeAll(func() {
		ctx := context.Background()
		stack = startGovernorStack("us-west-2,eu-central-1")

		By("seeding one unprotected instance in us-west-2")
		ec2Client, err := stack.Mock.EC2(ctx, aws.RegionConfig{Region: "us-west-2"})
		Expect(err).NotTo(HaveOccurred())
		ec2Client.(*aws.MockEC2Client).SetInstances([]aws.Instance{
			{InstanceID: "i-0b2d4f6a8c0e20001", InstanceType: "m5.large", State: "running", Region: "us-west-2"},
		})
		pricing := stack.Mock.Pricing(ctx).(*aws.MockPricingClient)
		pricing.SetOnDemandPrice("us-west-2", "m5.large", "Linux", 0.096)

		By("breaking EC2 client construction in eu-central-1")
		stack.Mock.EC2Errors["eu-central-1"] = errors.New("AuthFailure: not authorized for this region")
	})

	It("should sweep the healthy region and report the broken one", func() {
		report, _ := runSweep(stack.OpsURL)

		Expect(report.StoppedInstances).To(Equal([]string{"i-0b2d4f6a8c0e20001 (us-west-2)"}))
		Expect(report.ScaledDownGroups).To(BeEmpty())
		Expect(report.RegionsProcessed).To(Equal([]string{"us-west-2"}))

		Expect(report.Errors).To(HaveLen(1))
		Expect(report.Errors[0]).To(ContainSubstring("error processing region eu-central-1"))
		Expect(report.Errors[0]).To(ContainSubstring("failed to create EC2 client for region eu-central-1"))
	})

	It("should count the failure against the broken region only", func() {
		exposition := fetchMetrics(stack.OpsURL)

		Expect(exposition).To(ContainSubstring(`governance_sweep_errors_total{region="eu-central-1"} 1` + "\n"))
		Expect(exposition).To(ContainSubstring(`governance_stopped_instances_total{region="us-west-2"} 1` + "\n"))
		Expect(exposition).To(ContainSubstring(`governance_sweep_errors_total{region="us-west-2"} 0` + "\n"))
	})
})
