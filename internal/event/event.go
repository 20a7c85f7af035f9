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

// Package event loads the GitHub event payload the Actions runner writes to
// disk before invoking a step. The runner points at it via GITHUB_EVENT_PATH.
package event

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads and decodes an issue_comment event payload from path.
func Load(path string) (*IssueCommentEvent, error) {
	if path == "" {
		return nil, fmt.Errorf("event path is empty; is this running inside a workflow?")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	var evt IssueCommentEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}

	return &evt, nil
}
