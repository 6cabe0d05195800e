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

// Package handler adapts a governance sweep to Lambda invocation.
//
// The handler runs one sweep per invocation and replies with HTTP 200
// regardless of what the sweep encountered: partial failures are entries in
// the report body, not invocation errors. A non-200 outcome would make retry
// policies re-run a sweep whose actions already happened.
package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-logr/logr"

	"github.com/exit0-io/aws-cost-protection/internal/governor"
)

// Sweeper runs one governance sweep. *governor.Governor satisfies this.
type Sweeper interface {
	Sweep(ctx context.Context) *governor.Report
}

// Handler serves Lambda invocations by running a sweep per request.
type Handler struct {
	// Sweeper runs the sweep
	Sweeper Sweeper

	// Logger
	Log logr.Logger
}

// NewHandler creates a Handler around a sweeper.
func NewHandler(sweeper Sweeper, log logr.Logger) *Handler {
	return &Handler{
		Sweeper: sweeper,
		Log:     log,
	}
}

// Handle runs one sweep and returns the report as a 200 response. The only
// error this returns is a failed report encoding; sweep failures ride in the
// report's errors list.
func (h *Handler) Handle(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	report := h.Sweeper.Sweep(ctx)

	body, err := json.Marshal(report)
	if err != nil {
		h.Log.Error(err, "failed to encode sweep report")
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to encode sweep report: %w", err)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(body),
	}, nil
}
