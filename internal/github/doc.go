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

// Package github writes deploy progress back to GitHub.
//
// Two reporter implementations cover the two integration modes:
//
//   - CommitStatusReporter posts commit statuses on the triggering commit,
//     keyed by a stable context string so repeated reports update one check.
//   - DeploymentReporter creates a GitHub deployment once and then appends
//     deployment statuses to it.
//
// Both satisfy watch.Reporter and follow the same URL rule: the target or
// environment URL is the live preview server only on success, and the
// Render dashboard otherwise.
//
// Authentication requires a token with repo:status scope (commit-status
// mode) or repo_deployment scope (deployment mode).
package github
