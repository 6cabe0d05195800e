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
	"encoding/json"
	"io"
	"net/http"

	. "github.com/onsi/gomega"

	"github.com/exit0-io/aws-cost-protection/internal/governor"
)

// fetchMetrics scrapes the ops server's /metrics endpoint and returns the
// Prometheus exposition text.
func fetchMetrics(opsURL string) string {
	resp, err := http.Get(opsURL + "/metrics")
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "metrics scrape should succeed")
	defer func() { _ = resp.Body.Close() }()
	ExpectWithOffset(1, resp.StatusCode).To(Equal(http.StatusOK), "metrics scrape should return 200")

	body, err := io.ReadAll(resp.Body)
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "reading metrics body should succeed")
	return string(body)
}

// runSweep triggers a sweep through the ops server and returns the decoded
// report along with the raw response body.
func runSweep(opsURL string) (governor.Report, string) {
	resp, err := http.Post(opsURL+"/sweep", "application/json", nil)
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "sweep request should succeed")
	defer func() { _ = resp.Body.Close() }()
	ExpectWithOffset(1, resp.StatusCode).To(Equal(http.StatusOK), "sweep should return 200")

	body, err := io.ReadAll(resp.Body)
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "reading sweep response should succeed")

	var report governor.Report
	ExpectWithOffset(1, json.Unmarshal(body, &report)).To(Succeed(), "sweep response should decode as a report")
	return report, string(body)
}

// getBody performs a GET against url and returns the status code and body.
func getBody(url string) (int, string) {
	resp, err := http.Get(url)
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "GET %s should succeed", url)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	ExpectWithOffset(1, err).NotTo(HaveOccurred(), "reading response body should succeed")
	return resp.StatusCode, string(body)
}
