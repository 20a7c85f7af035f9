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

package render

import (
	"context"
	"fmt"
	"time"
)

// Client interface defines the contract for the Render deploy API.
type Client interface {
	// ListDeploys returns the most recent deploys for a service.
	ListDeploys(ctx context.Context, serviceID string) ([]*Deploy, error)
	// GetDeploy fetches the current state of a single deploy.
	GetDeploy(ctx context.Context, serviceID, deployID string) (*Deploy, error)
}

// DeployStatus is the deploy lifecycle state reported by Render.
type DeployStatus string

// Deploy statuses Render reports. Live, BuildFailed and Deactivated are the
// terminal states this tool acts on; everything else counts as in progress.
const (
	StatusCreated           DeployStatus = "created"
	StatusBuildInProgress   DeployStatus = "build_in_progress"
	StatusUpdateInProgress  DeployStatus = "update_in_progress"
	StatusPreDeployProgress DeployStatus = "pre_deploy_in_progress"
	StatusLive              DeployStatus = "live"
	StatusDeactivated       DeployStatus = "deactivated"
	StatusBuildFailed       DeployStatus = "build_failed"
	StatusUpdateFailed      DeployStatus = "update_failed"
	StatusCanceled          DeployStatus = "canceled"
)

// Deploy represents one build/release of a Render service.
type Deploy struct {
	ID         string       `json:"id"`
	Commit     Commit       `json:"commit"`
	Status     DeployStatus `json:"status"`
	Trigger    string       `json:"trigger"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	FinishedAt *time.Time   `json:"finishedAt,omitempty"`
}

// Commit identifies the commit a deploy was built from.
type Commit struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// APIError is returned for non-2xx responses from the Render API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("render API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("render API returned status %d: %s", e.StatusCode, e.Message)
}

// LatestDeploy selects the most recently created deploy from deploys.
// The listing endpoint's ordering is not trusted; this is a max-by-CreatedAt
// reduction over the window. Returns nil for an empty slice.
func LatestDeploy(deploys []*Deploy) *Deploy {
	var latest *Deploy
	for _, d := range deploys {
		if latest == nil || d.CreatedAt.After(latest.CreatedAt) {
			latest = d
		}
	}
	return latest
}
