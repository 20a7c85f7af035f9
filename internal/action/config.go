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
	"fmt"
	"time"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/viper"

	"github.com/previewops/render-preview-status/internal/render"
)

// ReportMode selects how deploy progress is mirrored onto GitHub.
type ReportMode string

const (
	// ModeCommitStatus writes commit statuses on the triggering commit.
	ModeCommitStatus ReportMode = "commit-status"
	// ModeDeployment creates a deployment and appends deployment statuses.
	ModeDeployment ReportMode = "deployment"
)

// Config holds everything one invocation needs, assembled once at the
// boundary and passed by value into the core. Core packages never read
// process state themselves.
type Config struct {
	RenderAPIKey     string
	GitHubToken      string
	RenderAPIBaseURL string
	MaxAttempts      int
	Interval         time.Duration
	ReportMode       ReportMode
	LogLevel         string

	// Runner context.
	Owner     string
	Repo      string
	SHA       string
	EventPath string
}

// Load assembles configuration from action inputs, environment fallbacks
// and defaults, plus the repository/commit context the runner provides.
//
// Each option resolves flag > INPUT_<NAME> (the runner's input convention)
// > bare environment fallback > default.
func Load() (*Config, error) {
	setDefaults()
	bindInputs()

	ghc, err := githubactions.Context()
	if err != nil {
		return nil, fmt.Errorf("failed to read runner context: %w", err)
	}
	owner, repo := ghc.Repo()

	cfg := &Config{
		RenderAPIKey:     viper.GetString("render-api-key"),
		GitHubToken:      viper.GetString("github-token"),
		RenderAPIBaseURL: viper.GetString("render-api-base-url"),
		MaxAttempts:      viper.GetInt("max-attempts"),
		Interval:         time.Duration(viper.GetInt("interval")) * time.Millisecond,
		ReportMode:       ReportMode(viper.GetString("report-mode")),
		LogLevel:         viper.GetString("log-level"),
		Owner:            owner,
		Repo:             repo,
		SHA:              ghc.SHA,
		EventPath:        ghc.EventPath,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required options are present and coherent.
func (c *Config) Validate() error {
	if c.RenderAPIKey == "" {
		return fmt.Errorf("render-api-key is required (input or RENDER_API_KEY)")
	}
	if c.GitHubToken == "" {
		return fmt.Errorf("github-token is required (input or GITHUB_TOKEN)")
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max-attempts must be positive, got %d", c.MaxAttempts)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.ReportMode != ModeCommitStatus && c.ReportMode != ModeDeployment {
		return fmt.Errorf("report-mode must be %q or %q, got %q", ModeCommitStatus, ModeDeployment, c.ReportMode)
	}
	if c.Owner == "" || c.Repo == "" {
		return fmt.Errorf("repository is unknown; GITHUB_REPOSITORY is not set")
	}
	if c.SHA == "" {
		return fmt.Errorf("commit SHA is unknown; GITHUB_SHA is not set")
	}
	return nil
}

// setDefaults sets default option values.
func setDefaults() {
	viper.SetDefault("render-api-base-url", render.DefaultBaseURL)
	viper.SetDefault("max-attempts", 100)
	viper.SetDefault("interval", 10000) // milliseconds
	viper.SetDefault("report-mode", string(ModeCommitStatus))
	viper.SetDefault("log-level", "info")
}

// bindInputs binds each option to the runner's INPUT_* variable and, for
// credentials, the conventional bare variable as a fallback.
func bindInputs() {
	//nolint:errcheck // BindEnv only errors on an empty key
	viper.BindEnv("render-api-key", "INPUT_RENDER-API-KEY", "RENDER_API_KEY")
	viper.BindEnv("github-token", "INPUT_GITHUB-TOKEN", "GITHUB_TOKEN")
	viper.BindEnv("render-api-base-url", "INPUT_RENDER-API-BASE-URL")
	viper.BindEnv("max-attempts", "INPUT_MAX-ATTEMPTS")
	viper.BindEnv("interval", "INPUT_INTERVAL")
	viper.BindEnv("report-mode", "INPUT_REPORT-MODE")
	viper.BindEnv("log-level", "INPUT_LOG-LEVEL")
}
