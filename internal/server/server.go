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

// Package server provides the HTTP surfaces of the standalone governor: an
// ops server (Prometheus metrics, manual sweep trigger, last report) and a
// probe server (liveness and readiness).
//
// The two surfaces bind separately so the probe port can stay cluster-local
// while the ops port is scraped. Handlers are plain net/http; the governor
// itself never serves HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/go-logr/logr"
)

// Server wraps an http.Server with background start and logged shutdown.
type Server struct {
	srv *http.Server
	log logr.Logger
}

// New creates a named server for the given address and handler.
func New(name, addr string, handler http.Handler, log logr.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		log: log.WithValues("server", name),
	}
}

// Start serves in a background goroutine until Shutdown or a listen failure.
func (s *Server) Start() {
	go func() {
		s.log.Info("starting server", "address", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error(err, "server stopped with error")
		}
	}()
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")
	return s.srv.Shutdown(ctx)
}
