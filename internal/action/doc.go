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

// Package action is the invocation boundary.
//
// Config gathers the option surface once (action inputs with environment
// fallbacks and defaults, plus the runner's repository/commit context) into
// a plain struct; nothing below this package touches ambient process state.
// Runner then drives the single pass the tool performs:
//
//	event file -> comment.Parse -> render.LatestDeploy -> watch.Poller -> outputs
//
// Fatal errors bubble out of Run to the command entry point, which turns
// them into one workflow error annotation and a non-zero exit. A comment
// that is not a Render preview comment ends the run successfully with no
// outputs set.
package action
