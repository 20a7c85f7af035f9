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

package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v66/github"

	"github.com/previewops/render-preview-status/internal/comment"
	"github.com/previewops/render-preview-status/internal/watch"
)

// DeploymentReporter mirrors poll outcomes as a GitHub deployment plus a
// stream of deployment statuses. The deployment is created once, lazily on
// the first report; every subsequent report appends a status to it.
type DeploymentReporter struct {
	client       *github.Client
	owner        string
	repo         string
	ref          string
	environment  string
	serverURL    string
	dashboardURL string
	deploymentID int64
}

// NewDeploymentReporter creates a reporter that records a deployment of
// identity's service at ref in owner/repo.
func NewDeploymentReporter(client *github.Client, owner, repo, ref string, identity *comment.ServiceIdentity) *DeploymentReporter {
	return &DeploymentReporter{
		client:       client,
		owner:        owner,
		repo:         repo,
		ref:          ref,
		environment:  identity.ServiceName,
		serverURL:    identity.ServerURL,
		dashboardURL: identity.DashboardURL,
	}
}

// Report ensures the deployment exists, then appends a deployment status
// reflecting the outcome.
func (r *DeploymentReporter) Report(ctx context.Context, outcome watch.Outcome, description string) error {
	if err := r.ensureDeployment(ctx); err != nil {
		return err
	}

	req := &github.DeploymentStatusRequest{
		State:  github.String(deploymentState(outcome)),
		LogURL: github.String(r.dashboardURL),
	}
	if description != "" {
		req.Description = github.String(description)
	}
	if outcome == watch.OutcomeSuccess {
		req.EnvironmentURL = github.String(r.serverURL)
		// Retire earlier preview deployments of this environment.
		req.AutoInactive = github.Bool(true)
	}

	_, _, err := r.client.Repositories.CreateDeploymentStatus(ctx, r.owner, r.repo, r.deploymentID, req)
	if err != nil {
		return fmt.Errorf("failed to create deployment status: %w", err)
	}

	return nil
}

// DeploymentID returns the id of the deployment backing this reporter, or 0
// before the first report.
func (r *DeploymentReporter) DeploymentID() int64 {
	return r.deploymentID
}

// ensureDeployment creates the backing deployment on first use. Required
// contexts are cleared so the deployment is recorded regardless of other
// checks on the commit.
func (r *DeploymentReporter) ensureDeployment(ctx context.Context) error {
	if r.deploymentID != 0 {
		return nil
	}

	req := &github.DeploymentRequest{
		Ref:                  github.String(r.ref),
		Environment:          github.String(r.environment),
		TransientEnvironment: github.Bool(true),
		AutoMerge:            github.Bool(false),
		RequiredContexts:     &[]string{},
		Description:          github.String("Render PR preview"),
	}

	deployment, _, err := r.client.Repositories.CreateDeployment(ctx, r.owner, r.repo, req)
	if err != nil {
		return fmt.Errorf("failed to create deployment: %w", err)
	}

	r.deploymentID = deployment.GetID()
	return nil
}

// deploymentState maps an outcome onto the deployment-status state set,
// which unlike commit statuses does carry inactive.
func deploymentState(outcome watch.Outcome) string {
	switch outcome {
	case watch.OutcomeSuccess:
		return "success"
	case watch.OutcomeFailure:
		return "failure"
	case watch.OutcomeInactive:
		return "inactive"
	default:
		return "pending"
	}
}
