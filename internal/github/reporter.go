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
	"fmt"

	"github.com/google/go-github/v66/github"

	"github.com/previewops/render-preview-status/internal/watch"
)

// NewClient creates a go-github client authenticated with token. An empty
// token yields an unauthenticated client, useful in tests.
func NewClient(token string) *github.Client {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return client
}

// recordLabel builds the stable label that groups every report of one
// invocation into a single evolving record: the commit-status context in
// commit-status mode, reused verbatim across updates.
func recordLabel(serviceName, deployID string) string {
	return fmt.Sprintf("Render – %s – %s", serviceName, deployID)
}

// targetURL picks the URL a report points at: the live server only once the
// deploy succeeded, the dashboard otherwise.
func targetURL(outcome watch.Outcome, serverURL, dashboardURL string) string {
	if outcome == watch.OutcomeSuccess {
		return serverURL
	}
	return dashboardURL
}
