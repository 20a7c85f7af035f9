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

// Command render-preview-status watches a Render PR preview deploy and
// mirrors its progress onto GitHub. It is meant to run as a GitHub Action
// step triggered by issue_comment events, but every input can also be
// passed as a flag for local runs.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/previewops/render-preview-status/internal/action"
	"github.com/previewops/render-preview-status/internal/render"
)

var rootCmd = &cobra.Command{
	Use:   "render-preview-status",
	Short: "Mirror a Render PR preview deploy's status onto GitHub",
	Long: `render-preview-status reads the triggering issue_comment event, parses
Render's preview comment for the service identity, then polls the Render API
until the deploy goes live, fails or is deactivated, reporting each step to
GitHub as a commit status or deployment status.`,
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("render-api-key", "", "Render API key (falls back to RENDER_API_KEY)")
	flags.String("github-token", "", "GitHub token (falls back to GITHUB_TOKEN)")
	flags.String("render-api-base-url", render.DefaultBaseURL, "Render API base URL")
	flags.Int("max-attempts", 100, "maximum number of polls before reporting failure")
	flags.Int("interval", 10000, "milliseconds to wait between polls")
	flags.String("report-mode", string(action.ModeCommitStatus), "commit-status or deployment")
	flags.String("log-level", "info", "debug, info, warn or error")

	for _, name := range []string{
		"render-api-key",
		"github-token",
		"render-api-base-url",
		"max-attempts",
		"interval",
		"report-mode",
		"log-level",
	} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := action.Load()
	if err != nil {
		return err
	}

	setLogLevel(cfg.LogLevel)

	log.Info().
		Str("repository", cfg.Owner+"/"+cfg.Repo).
		Str("sha", cfg.SHA).
		Str("report_mode", string(cfg.ReportMode)).
		Int("max_attempts", cfg.MaxAttempts).
		Dur("interval", cfg.Interval).
		Msg("Configuration loaded")

	// The host enforces the overall wall-clock ceiling; the signal context
	// just lets a cancellation land between polls.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := action.NewRunner(cfg, githubactions.New(), log.Logger)
	return runner.Run(ctx)
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := rootCmd.Execute(); err != nil {
		// Single top-level boundary: one error annotation, one exit code.
		githubactions.Errorf("%s", err)
		log.Error().Err(err).Msg("Invocation failed")
		os.Exit(1)
	}
}
