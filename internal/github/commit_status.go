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

// CommitStatusReporter mirrors poll outcomes as commit statuses on the
// triggering commit. All updates share one context string, so GitHub shows
// a single evolving check rather than a pile of them.
type CommitStatusReporter struct {
	client        *github.Client
	owner         string
	repo          string
	sha           string
	serverURL     string
	dashboardURL  string
	statusContext string
	statusID      int64
}

// NewCommitStatusReporter creates a reporter that writes commit statuses
// for sha in owner/repo, labeled after the service and deploy it tracks.
func NewCommitStatusReporter(client *github.Client, owner, repo, sha string, identity *comment.ServiceIdentity, deployID string) *CommitStatusReporter {
	return &CommitStatusReporter{
		client:        client,
		owner:         owner,
		repo:          repo,
		sha:           sha,
		serverURL:     identity.ServerURL,
		dashboardURL:  identity.DashboardURL,
		statusContext: recordLabel(identity.ServiceName, deployID),
	}
}

// Report creates or updates the commit status for the tracked deploy.
func (r *CommitStatusReporter) Report(ctx context.Context, outcome watch.Outcome, description string) error {
	status := &github.RepoStatus{
		State:     github.String(commitState(outcome)),
		TargetURL: github.String(targetURL(outcome, r.serverURL, r.dashboardURL)),
		Context:   github.String(r.statusContext),
	}
	if description != "" {
		status.Description = github.String(description)
	}

	created, _, err := r.client.Repositories.CreateStatus(ctx, r.owner, r.repo, r.sha, status)
	if err != nil {
		return fmt.Errorf("failed to update commit status: %w", err)
	}

	r.statusID = created.GetID()
	return nil
}

// StatusID returns the id of the most recently written commit status, or 0
// before the first report.
func (r *CommitStatusReporter) StatusID() int64 {
	return r.statusID
}

// commitState maps an outcome onto the commit-status state set. Commit
// statuses have no inactive state, so deactivated deploys surface as error.
func commitState(outcome watch.Outcome) string {
	switch outcome {
	case watch.OutcomeSuccess:
		return "success"
	case watch.OutcomeFailure:
		return "failure"
	case watch.OutcomeInactive:
		return "error"
	default:
		return "pending"
	}
}
