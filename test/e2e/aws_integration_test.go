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
	"os"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/exit0-io/aws-cost-protection/internal/governor"
	"github.com/exit0-io/aws-cost-protection/pkg/aws"
	"github.com/exit0-io/aws-cost-protection/pkg/config"
	"github.com/exit0-io/aws-cost-protection/pkg/metrics"
	"github.com/exit0-io/aws-cost-protection/test/utils"
)

// These specs run the real AWS clients against LocalStack instead of mocks.
// They are skipped unless GOVERNOR_E2E_ENDPOINT points at a LocalStack
// endpoint (usually http://localhost:4566).
var _ = Describe("LocalStack sweep", Ordered, func() {
	var (
		ctx    context.Context
		client aws.Client
	)

	BeforeAll(func() {
		endpoint := os.Getenv("GOVERNOR_E2E_ENDPOINT")
		if endpoint == "" {
			Skip("GOVERNOR_E2E_ENDPOINT not set. Start it with: cd test/localstack && docker-compose up -d")
		}

		ctx = context.Background()

		By("waiting for LocalStack to become healthy")
		Expect(utils.WaitForLocalStack(ctx, endpoint, time.Minute)).To(Succeed())

		By("seeding LocalStack with the e2e fleet")
		Expect(utils.SeedLocalStack(ctx, endpoint)).To(Succeed())

		By("creating real AWS clients against LocalStack")
		var err error
		client, err = aws.NewClientWithEndpoint(ctx, aws.ClientConfig{DefaultRegion: "us-east-1"}, endpoint)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should sweep the seeded fleet without errors", func() {
		registry := prometheus.NewRegistry()
		m := metrics.NewMetrics(registry)
		DeferCleanup(m.Stop)

		g := &governor.Governor{
			AWSClient: client,
			Config:    &config.Config{AllowedRegions: "us-east-1"},
			Metrics:   m,
			Log:       logr.Discard(),
		}
		report := g.Sweep(ctx)

		Expect(report.Errors).To(BeEmpty())
		Expect(report.RegionsProcessed).To(Equal([]string{"us-east-1"}))

		By("verifying the unprotected web instances were stopped")
		Expect(len(report.StoppedInstances)).To(BeNumerically(">=", 2))
		for _, entry := range report.StoppedInstances {
			Expect(entry).To(HaveSuffix("(us-east-1)"))
		}

		By("verifying only the unprotected group was scaled down")
		Expect(report.ScaledDownGroups).To(Equal([]string{"e2e-web-workers (us-east-1)"}))
	})

	It("should leave protected instances running", func() {
		ec2Client, err := client.EC2(ctx, aws.RegionConfig{Region: "us-east-1"})
		Expect(err).NotTo(HaveOccurred())

		running, err := ec2Client.DescribeRunningInstances(ctx)
		Expect(err).NotTo(HaveOccurred())

		typesRunning := make(map[string]int)
		for _, instance := range running {
			typesRunning[instance.InstanceType]++
		}

		By("verifying the tagged database instance survived")
		Expect(typesRunning["c5.xlarge"]).To(BeNumerically(">=", 1))

		By("verifying the stop-protected bastion survived")
		Expect(typesRunning["t3.medium"]).To(BeNumerically(">=", 1))

		By("verifying no unprotected web instance is left running")
		Expect(typesRunning["m5.large"]).To(BeZero())
	})

	It("should preserve max size when scaling groups to zero", func() {
		asgClient, err := client.AutoScaling(ctx, aws.RegionConfig{Region: "us-east-1"})
		Expect(err).NotTo(HaveOccurred())

		groups, err := asgClient.DescribeGroups(ctx)
		Expect(err).NotTo(HaveOccurred())

		byName := make(map[string]aws.AutoScalingGroup)
		for _, group := range groups {
			byName[group.Name] = group
		}

		Expect(byName).To(HaveKey("e2e-web-workers"))
		Expect(byName["e2e-web-workers"].MinSize).To(Equal(int32(0)))
		Expect(byName["e2e-web-workers"].MaxSize).To(Equal(int32(6)))
		Expect(byName["e2e-web-workers"].DesiredCapacity).To(Equal(int32(0)))

		By("verifying the protected fleet kept its capacity")
		Expect(byName).To(HaveKey("e2e-protected-fleet"))
		Expect(byName["e2e-protected-fleet"].DesiredCapacity).To(Equal(int32(2)))
	})
})
