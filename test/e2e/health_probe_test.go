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
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/exit0-io/aws-cost-protection/pkg/aws/testdata"
)

var _ = Describe("Health probes", Ordered, func() {
	var stack *governorStack

	BeforeAll(func() {
		stack = startGovernorStack("us-east-1")
	})

	Context("liveness", func() {
		It("should always report healthy", func() {
			status, body := getBody(stack.ProbeURL + "/healthz")
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(Equal("ok\n"))
		})
	})

	Context("readiness", func() {
		It("should be ready before any credential check has run", func() {
			status, body := getBody(stack.ProbeURL + "/readyz")
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(Equal("ok\n"))
		})

		It("should stay ready after a successful credential check", func() {
			By("seeding the region so the validator can list instances")
			testdata.LoadScenario(testdata.SimpleScenario, stack.Mock)

			By("checking all regions synchronously")
			stack.Monitor.CheckAllRegions()

			status, body := getBody(stack.ProbeURL + "/readyz")
			Expect(status).To(Equal(http.StatusOK))
			Expect(body).To(Equal("ok\n"))
		})

		It("should fail once every region loses access", func() {
			By("breaking EC2 client construction for the only region")
			stack.Mock.EC2Errors["us-east-1"] = errors.New("ExpiredToken: security token expired")

			By("checking all regions synchronously")
			stack.Monitor.CheckAllRegions()

			status, body := getBody(stack.ProbeURL + "/readyz")
			Expect(status).To(Equal(http.StatusInternalServerError))
			Expect(body).To(ContainSubstring("readiness check failed"))
			Expect(body).To(ContainSubstring("us-east-1"))
		})

		It("should recover once region access is restored", func() {
			By("clearing the construction failure")
			delete(stack.Mock.EC2Errors, "us-east-1")

			By("checking all regions synchronously")
			stack.Monitor.CheckAllRegions()

			status, _ := getBody(stack.ProbeURL + "/readyz")
			Expect(status).To(Equal(http.StatusOK))
		})
	})
})
