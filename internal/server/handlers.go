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

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/exit0-io/aws-cost-protection/internal/governor"
)

// Sweeper runs one governance sweep on demand. *governor.Governor satisfies
// this.
type Sweeper interface {
	Sweep(ctx context.Context) *governor.Report
}

// ReportSource serves the last completed sweep report. The report cache
// satisfies this.
type ReportSource interface {
	Get() (*governor.Report, bool)
}

// ReadyChecker reports whether the service should receive traffic. The AWS
// health checker satisfies this.
type ReadyChecker interface {
	Check(req *http.Request) error
}

// NewOpsMux assembles the ops surface:
//
//	GET  /metrics - Prometheus metrics from the given gatherer
//	POST /sweep   - run a sweep now and return its report
//	GET  /report  - the last completed sweep report
func NewOpsMux(gatherer prometheus.Gatherer, sweeper Sweeper, reports ReportSource, log logr.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("/sweep", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		log.Info("sweep triggered via ops endpoint", "remote_addr", r.RemoteAddr)
		report := sweeper.Sweep(r.Context())
		writeJSON(w, http.StatusOK, report, log)
	})

	mux.HandleFunc("/report", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		report, ok := reports.Get()
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "no completed sweep yet",
			}, log)
			return
		}
		writeJSON(w, http.StatusOK, report, log)
	})

	return mux
}

// NewProbeMux assembles the probe surface:
//
//	GET /healthz - process liveness, always ok
//	GET /readyz  - readiness from the given checker
//
// A nil checker leaves /readyz always ready; Lambda and one-shot modes never
// build a monitor.
func NewProbeMux(checker ReadyChecker) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if checker != nil {
			if err := checker.Check(r); err != nil {
				http.Error(w, fmt.Sprintf("readiness check failed: %v", err), http.StatusInternalServerError)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	return mux
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any, log logr.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error(err, "failed to encode response body")
	}
}
