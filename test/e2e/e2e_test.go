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
	"fmt"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/exit0-io/aws-cost-protection/pkg/aws"
	"github.com/exit0-io/aws-cost-protection/pkg/aws/testdata"
)

var _ = Describe("Governance sweep lifecycle", Ordered, func() {
	var (
		stack          *governorStack
		firstSweepBody string
	)

	BeforeAll(func() {
		By("starting a governor stack over one region")
		stack = startGovernorStack("us-east-1")

		By("seeding the mock account with a mixed fleet")
		testdata.LoadScenario(testdata.SimpleScenario, stack.Mock)
	})

	Context("before the first sweep", func() {
		It("should report no completed sweep yet", func() {
			status, body := getBody(stack.OpsURL + "/report")
			Expect(status).To(Equal(http.StatusNotFound))
			Expect(body).To(MatchJSON(`{"error": "no completed sweep yet"}`))
		})
	})

	Context("running the first sweep", func() {
		It("should stop and scale down exactly the unprotected resources", func() {
			By("triggering a sweep through the ops endpoint")
			report, body := runSweep(stack.OpsURL)
			firstSweepBody = body

			By("verifying the report matches the seeded fleet")
			Expect(report.StoppedInstances).To(Equal(testdata.SimpleScenario.Expected.StoppedInstances))
			Expect(report.ScaledDownGroups).To(Equal(testdata.SimpleScenario.Expected.ScaledDownGroups))
			Expect(report.Errors).To(BeEmpty())
			Expect(report.RegionsProcessed).To(Equal(testdata.SimpleScenario.Expected.RegionsProcessed))
		})

		It("should scale the group to zero while preserving its max size", func() {
			mockASG := stack.Mock.AutoScalingClients["us-east-1"]
			Expect(mockASG.CapacityUpdates).To(Equal([]aws.CapacityUpdate{
				{GroupName: "web-workers", MinSize: 0, MaxSize: 6, DesiredCapacity: 0},
			}))
		})

		It("should serve the sweep report from the report endpoint", func() {
			status, body := getBody(stack.OpsURL + "/report")
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(MatchJSON(firstSweepBody))
		})

		It("should expose sweep outcomes as metrics", func() {
			exposition := fetchMetrics(stack.OpsURL)

			By("verifying per-region action counters")
			Expect(exposition).To(ContainSubstring(`governance_stopped_instances_total{region="us-east-1"} 2` + "\n"))
			Expect(exposition).To(ContainSubstring(`governance_scaled_down_asgs_total{region="us-east-1"} 1` + "\n"))
			Expect(exposition).To(ContainSubstring(`governance_sweep_errors_total{region="us-east-1"} 0` + "\n"))

			By("verifying protected resources were counted as skips")
			Expect(exposition).To(ContainSubstring(`governance_protected_skips_total{reason="governance_tag",resource_type="instance"} 2` + "\n"))
			Expect(exposition).To(ContainSubstring(`governance_protected_skips_total{reason="stop_protection",resource_type="instance"} 1` + "\n"))
			Expect(exposition).To(ContainSubstring(`governance_protected_skips_total{reason="governance_tag",resource_type="asg"} 1` + "\n"))

			By("verifying the savings estimate and sweep bookkeeping")
			Expect(exposition).To(ContainSubstring(
				fmt.Sprintf("governance_estimated_hourly_savings_dollars %g\n", testdata.SimpleScenario.Expected.HourlySavings)))
			Expect(exposition).To(ContainSubstring("governance_sweep_duration_seconds_count 1\n"))
			Expect(exposition).To(ContainSubstring("governance_governor_running 0\n"))
		})
	})

	Context("running a second sweep", func() {
		It("should find nothing left to act on", func() {
			report, _ := runSweep(stack.OpsURL)

			Expect(report.StoppedInstances).To(BeEmpty())
			Expect(report.ScaledDownGroups).To(BeEmpty())
			Expect(report.Errors).To(BeEmpty())
			Expect(report.RegionsProcessed).To(Equal([]string{"us-east-1"}))
		})

		It("should zero the savings estimate and keep counting sweeps", func() {
			exposition := fetchMetrics(stack.OpsURL)

			Expect(exposition).To(ContainSubstring("governance_estimated_hourly_savings_dollars 0\n"))
			Expect(exposition).To(ContainSubstring("governance_sweep_duration_seconds_count 2\n"))

			By("verifying action counters did not grow")
			Expect(exposition).To(ContainSubstring(`governance_stopped_instances_total{region="us-east-1"} 2` + "\n"))
			Expect(exposition).To(ContainSubstring(`governance_scaled_down_asgs_total{region="us-east-1"} 1` + "\n"))
		})
	})
})
