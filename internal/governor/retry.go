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

package governor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
)

// RetryConfig configures exponential backoff for startup operations.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// InitialDelay is the delay after the first failure.
	InitialDelay time.Duration

	// MaxDelay caps the delay between attempts.
	MaxDelay time.Duration

	// Multiplier grows the delay after each failed attempt.
	Multiplier float64
}

// DefaultRetryConfig returns the backoff used for startup credential checks.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  5,
		InitialDelay: 2 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// RetryWithBackoff runs operation until it succeeds, attempts are exhausted,
// or the context is cancelled.
//
// Sweep actions are deliberately never retried; a failed stop or scale-down
// is reported and left for the next sweep. This helper exists for startup
// checks, where waiting out transient IAM or network conditions beats
// crash-looping the process.
func RetryWithBackoff(
	ctx context.Context,
	cfg RetryConfig,
	log logr.Logger,
	operationName string,
	operation func() error,
) error {
	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = operation()
		if lastErr == nil {
			if attempt > 1 {
				log.Info("operation succeeded after retries",
					"operation", operationName,
					"attempts", attempt)
			}
			return nil
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		log.Error(lastErr, "operation failed, will retry",
			"operation", operationName,
			"attempt", attempt,
			"max_attempts", cfg.MaxAttempts,
			"retry_in", delay.String())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, cfg.MaxAttempts, lastErr)
}
