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

package action

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	gogithub "github.com/google/go-github/v66/github"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-githubactions"

	"github.com/previewops/render-preview-status/internal/comment"
	"github.com/previewops/render-preview-status/internal/event"
	"github.com/previewops/render-preview-status/internal/github"
	"github.com/previewops/render-preview-status/internal/render"
	"github.com/previewops/render-preview-status/internal/watch"
)

// Runner executes one invocation end to end: load the event, parse the
// comment, resolve the deploy, poll it to a terminal outcome and publish
// step outputs.
type Runner struct {
	cfg     *Config
	out     *githubactions.Action
	logger  zerolog.Logger
	deploys render.Client
	gh      *gogithub.Client
}

// NewRunner wires a Runner from validated configuration.
func NewRunner(cfg *Config, out *githubactions.Action, logger zerolog.Logger) *Runner {
	return &Runner{
		cfg:     cfg,
		out:     out,
		logger:  logger.With().Str("component", "runner").Logger(),
		deploys: render.NewClient(cfg.RenderAPIBaseURL, cfg.RenderAPIKey),
		gh:      github.NewClient(cfg.GitHubToken),
	}
}

// Run performs the invocation. A nil return means either a terminal outcome
// was reached and reported, or the trigger was not a Render preview comment
// (a deliberate skip). Any other condition is fatal and surfaces as the
// returned error.
func (r *Runner) Run(ctx context.Context) error {
	evt, err := event.Load(r.cfg.EventPath)
	if err != nil {
		return err
	}

	if !evt.OnPullRequest() {
		r.logger.Info().
			Int("issue", evt.Issue.Number).
			Msg("Comment is not on a pull request, skipping")
		return nil
	}

	identity, err := comment.Parse(evt.Comment.Body)
	if errors.Is(err, comment.ErrNotPreviewComment) {
		r.logger.Info().
			Int("pr", evt.Issue.Number).
			Str("author", evt.Comment.User.Login).
			Msg("Comment is not a Render preview comment, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	r.logger.Info().
		Str("service_name", identity.ServiceName).
		Str("service_id", identity.ServiceID).
		Str("server_url", identity.ServerURL).
		Msg("Parsed Render preview comment")

	r.out.SetOutput("server-url", identity.ServerURL)
	r.out.SetOutput("service-name", identity.ServiceName)
	r.out.SetOutput("service-id", identity.ServiceID)
	r.out.SetOutput("dashboard-url", identity.DashboardURL)

	deploys, err := r.deploys.ListDeploys(ctx, identity.ServiceID)
	if err != nil {
		return err
	}

	deploy := render.LatestDeploy(deploys)
	if deploy == nil {
		return fmt.Errorf("no deploys found for service %s", identity.ServiceID)
	}

	r.logger.Info().
		Str("deploy_id", deploy.ID).
		Str("commit", deploy.Commit.ID).
		Str("status", string(deploy.Status)).
		Msg("Watching most recent deploy")

	reporter, publishRecordID := r.newReporter(identity, deploy.ID)

	poller := watch.NewPoller(r.deploys, reporter, r.cfg.MaxAttempts, r.cfg.Interval, r.logger)
	outcome, err := poller.Wait(ctx, identity.ServiceID, deploy)
	if err != nil {
		return err
	}

	publishRecordID()
	r.out.SetOutput(string(outcome), string(outcome))

	// The summary file only exists under a real runner.
	if os.Getenv("GITHUB_STEP_SUMMARY") != "" {
		r.out.AddStepSummary(fmt.Sprintf("Render deploy `%s` of `%s`: **%s**",
			deploy.ID, identity.ServiceName, outcome))
	}

	return nil
}

// newReporter builds the reporter for the configured mode, plus a closure
// that publishes the record id output once the record exists.
func (r *Runner) newReporter(identity *comment.ServiceIdentity, deployID string) (watch.Reporter, func()) {
	switch r.cfg.ReportMode {
	case ModeDeployment:
		reporter := github.NewDeploymentReporter(r.gh, r.cfg.Owner, r.cfg.Repo, r.cfg.SHA, identity)
		return reporter, func() {
			r.out.SetOutput("deployment-id", strconv.FormatInt(reporter.DeploymentID(), 10))
		}
	default:
		reporter := github.NewCommitStatusReporter(r.gh, r.cfg.Owner, r.cfg.Repo, r.cfg.SHA, identity, deployID)
		return reporter, func() {
			r.out.SetOutput("status-id", strconv.FormatInt(reporter.StatusID(), 10))
		}
	}
}
