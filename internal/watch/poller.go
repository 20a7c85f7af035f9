// Copyright 2025 The Render Preview Status Authors
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

package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/previewops/render-preview-status/internal/render"
)

// Outcome is the poller's view of a deploy: pending or one of three
// terminal states. Once terminal, an outcome never reverts to pending.
type Outcome string

const (
	OutcomePending  Outcome = "pending"
	OutcomeSuccess  Outcome = "success"
	OutcomeFailure  Outcome = "failure"
	OutcomeInactive Outcome = "inactive"
)

// Terminal reports whether the outcome stops the poll loop.
func (o Outcome) Terminal() bool {
	return o != OutcomePending
}

// Human descriptions attached to terminal status reports. Pending reports
// carry no description; they are heartbeats.
const (
	DescSucceeded        = "Deploy succeeded"
	DescFailed           = "Deploy failed"
	DescDeactivated      = "Deploy deactivated"
	DescExceededAttempts = "Exceeded max attempts"
)

// Reporter mirrors one poll observation onto an external system. Repeated
// calls must update a single record lineage, not create new ones.
type Reporter interface {
	Report(ctx context.Context, outcome Outcome, description string) error
}

// OutcomeFor maps a Render deploy status to a poll outcome. Statuses
// outside the three terminal cases count as still in progress.
func OutcomeFor(status render.DeployStatus) Outcome {
	switch status {
	case render.StatusLive:
		return OutcomeSuccess
	case render.StatusBuildFailed:
		return OutcomeFailure
	case render.StatusDeactivated:
		return OutcomeInactive
	default:
		return OutcomePending
	}
}

// description returns the fixed human string for a terminal outcome.
func description(outcome Outcome) string {
	switch outcome {
	case OutcomeSuccess:
		return DescSucceeded
	case OutcomeFailure:
		return DescFailed
	case OutcomeInactive:
		return DescDeactivated
	default:
		return ""
	}
}

// Poller drives a deploy from pending to a terminal outcome by repeatedly
// fetching its status from Render and mirroring each observation through a
// Reporter.
type Poller struct {
	deploys     render.Client
	reporter    Reporter
	maxAttempts int
	interval    time.Duration
	logger      zerolog.Logger
}

// NewPoller creates a poller that checks every interval, giving up after
// maxAttempts non-terminal polls.
func NewPoller(deploys render.Client, reporter Reporter, maxAttempts int, interval time.Duration, logger zerolog.Logger) *Poller {
	return &Poller{
		deploys:     deploys,
		reporter:    reporter,
		maxAttempts: maxAttempts,
		interval:    interval,
		logger:      logger.With().Str("component", "poller").Logger(),
	}
}

// Wait polls deploy until it reaches a terminal state or the attempt budget
// runs out, reporting every observation along the way.
//
// Budget exhaustion is a designed outcome: it reports a failure with
// DescExceededAttempts and returns OutcomeFailure with a nil error. Fetch
// and report errors are fatal and propagate untouched; only the "still
// pending" condition is ever retried. The wait between polls blocks and is
// cancellable through ctx.
func (p *Poller) Wait(ctx context.Context, serviceID string, deploy *render.Deploy) (Outcome, error) {
	attempts := 0

	for {
		if attempts >= p.maxAttempts {
			p.logger.Warn().
				Str("deploy_id", deploy.ID).
				Int("attempts", attempts).
				Msg("Attempt budget exhausted")

			if err := p.reporter.Report(ctx, OutcomeFailure, DescExceededAttempts); err != nil {
				return OutcomeFailure, fmt.Errorf("failed to report budget exhaustion: %w", err)
			}
			return OutcomeFailure, nil
		}

		current, err := p.deploys.GetDeploy(ctx, serviceID, deploy.ID)
		if err != nil {
			return OutcomePending, err
		}

		outcome := OutcomeFor(current.Status)

		p.logger.Debug().
			Str("deploy_id", deploy.ID).
			Str("status", string(current.Status)).
			Str("outcome", string(outcome)).
			Int("attempt", attempts).
			Msg("Polled deploy status")

		if outcome.Terminal() {
			desc := description(outcome)
			if err := p.reporter.Report(ctx, outcome, desc); err != nil {
				return outcome, fmt.Errorf("failed to report terminal outcome: %w", err)
			}

			p.logger.Info().
				Str("deploy_id", deploy.ID).
				Str("outcome", string(outcome)).
				Msg(desc)
			return outcome, nil
		}

		// Heartbeat so the record shows progress while the build runs.
		if err := p.reporter.Report(ctx, outcome, ""); err != nil {
			return outcome, fmt.Errorf("failed to report pending status: %w", err)
		}

		attempts++

		select {
		case <-ctx.Done():
			return OutcomePending, ctx.Err()
		case <-time.After(p.interval):
		}
	}
}
