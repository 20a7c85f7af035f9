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
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-githubactions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEvent(t *testing.T, commentBody string, onPR bool) string {
	t.Helper()

	payload := map[string]any{
		"action": "created",
		"issue":  map[string]any{"number": 42},
		"comment": map[string]any{
			"body": commentBody,
			"user": map[string]any{"login": "render[bot]"},
		},
		"repository": map[string]any{
			"full_name": "acme/widgets",
			"name":      "widgets",
			"owner":     map[string]any{"login": "acme"},
		},
	}
	if onPR {
		payload["issue"].(map[string]any)["pull_request"] = map[string]any{
			"url": "https://api.github.com/repos/acme/widgets/pulls/42",
		}
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func testConfig(eventPath string) *Config {
	return &Config{
		RenderAPIKey:     "rnd_key",
		GitHubToken:      "gh_token",
		RenderAPIBaseURL: "http://render.invalid",
		MaxAttempts:      5,
		Interval:         time.Millisecond,
		ReportMode:       ModeCommitStatus,
		Owner:            "acme",
		Repo:             "widgets",
		SHA:              "abc123",
		EventPath:        eventPath,
	}
}

func TestRun_skips_unrelated_comments(t *testing.T) {
	cfg := testConfig(writeEvent(t, "LGTM, ship it", true))
	runner := NewRunner(cfg, githubactions.New(), zerolog.Nop())

	err := runner.Run(context.Background())

	assert.NoError(t, err, "unrelated comments are a skip, not a failure")
}

func TestRun_skips_comments_outside_pull_requests(t *testing.T) {
	body := "Your Render PR Server URL is https://my-app-pr-42.onrender.com https://dashboard.render.com/my-app/srv-abc123"
	cfg := testConfig(writeEvent(t, body, false))
	runner := NewRunner(cfg, githubactions.New(), zerolog.Nop())

	err := runner.Run(context.Background())

	assert.NoError(t, err)
}

func TestRun_malformed_preview_comment_is_fatal(t *testing.T) {
	cfg := testConfig(writeEvent(t, "Your Render PR Server URL is coming soon", true))
	runner := NewRunner(cfg, githubactions.New(), zerolog.Nop())

	err := runner.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server URL")
}

func TestRun_missing_event_file_is_fatal(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing.json"))
	runner := NewRunner(cfg, githubactions.New(), zerolog.Nop())

	err := runner.Run(context.Background())

	require.Error(t, err)
}

func TestRun_empty_deploy_list_is_fatal(t *testing.T) {
	renderSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	defer renderSrv.Close()

	outputPath := filepath.Join(t.TempDir(), "outputs")
	require.NoError(t, os.WriteFile(outputPath, nil, 0o600))
	t.Setenv("GITHUB_OUTPUT", outputPath)

	body := "Your Render PR Server URL is https://my-app-pr-42.onrender.com https://dashboard.render.com/my-app/srv-abc123"
	cfg := testConfig(writeEvent(t, body, true))
	cfg.RenderAPIBaseURL = renderSrv.URL
	runner := NewRunner(cfg, githubactions.New(), zerolog.Nop())

	err := runner.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no deploys found")
}

func TestRun_polls_to_success_and_publishes_outputs(t *testing.T) {
	// Render fake: the listing shows an in-progress deploy (plus an older
	// one, to prove max-by-createdAt selection); the first status fetch is
	// still pending, the second is live.
	var statusFetches int
	renderSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/services/srv-abc123/deploys":
			fmt.Fprint(w, `[
				{"deploy": {"id": "dep-old", "status": "live", "createdAt": "2025-06-01T08:00:00Z"}, "cursor": "c0"},
				{"deploy": {"id": "dep-new", "status": "build_in_progress", "createdAt": "2025-06-01T09:00:00Z"}, "cursor": "c1"}
			]`)
		case "/services/srv-abc123/deploys/dep-new":
			statusFetches++
			status := "build_in_progress"
			if statusFetches > 1 {
				status = "live"
			}
			fmt.Fprintf(w, `{"id": "dep-new", "status": %q, "createdAt": "2025-06-01T09:00:00Z"}`, status)
		default:
			t.Errorf("unexpected render path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer renderSrv.Close()

	// GitHub fake: records commit statuses.
	var statusPosts int
	githubSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/widgets/statuses/abc123" {
			t.Errorf("unexpected github path %s", r.URL.Path)
		}
		statusPosts++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": 777}`)
	}))
	defer githubSrv.Close()

	outputPath := filepath.Join(t.TempDir(), "outputs")
	require.NoError(t, os.WriteFile(outputPath, nil, 0o600))
	t.Setenv("GITHUB_OUTPUT", outputPath)

	body := "Your Render PR Server URL is https://my-app-pr-42.onrender.com https://dashboard.render.com/my-app/srv-abc123"
	cfg := testConfig(writeEvent(t, body, true))
	cfg.RenderAPIBaseURL = renderSrv.URL

	runner := NewRunner(cfg, githubactions.New(), zerolog.Nop())
	baseURL, err := url.Parse(githubSrv.URL + "/")
	require.NoError(t, err)
	runner.gh.BaseURL = baseURL

	require.NoError(t, runner.Run(context.Background()))

	assert.Equal(t, 2, statusFetches, "one pending poll then the live poll")
	assert.Equal(t, 2, statusPosts, "one pending heartbeat plus the terminal report")

	outputs, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	for _, want := range []string{
		"server-url", "https://my-app-pr-42.onrender.com",
		"service-name", "my-app",
		"service-id", "srv-abc123",
		"dashboard-url", "https://dashboard.render.com/my-app/srv-abc123",
		"status-id", "777",
		"success",
	} {
		assert.Contains(t, string(outputs), want)
	}
}
