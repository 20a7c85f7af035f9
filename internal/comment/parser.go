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

package comment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MarkerPhrase is the literal Render writes into every PR preview comment.
// Comments without it did not come from the Render integration and are
// skipped rather than treated as parse failures.
const MarkerPhrase = "Your Render PR Server URL is"

// dashboardBase is the URL prefix Render uses for service dashboard links.
const dashboardBase = "https://dashboard.render.com"

// Sentinel errors returned by Parse. ErrNotPreviewComment signals a skip;
// the remaining three are fatal parse failures with one error per missing
// field.
var (
	ErrNotPreviewComment = errors.New("comment does not contain the Render PR preview marker")
	ErrNoServerURL       = errors.New("no preview server URL found in comment")
	ErrNoServiceName     = errors.New("no service name found in dashboard URL")
	ErrNoServiceID       = errors.New("no service id found in dashboard URL")
)

// Literal portions match case-insensitively; captured tokens follow Render's
// lowercase alphanumeric-and-hyphen convention. Preview hostnames embed the
// PR number as a "-pr-<n>" suffix on the service subdomain.
var (
	serverURLPattern   = regexp.MustCompile(`(?i)Your Render PR Server URL is\s+(https://[a-z0-9-]+-pr-[0-9]+\.onrender\.com)`)
	serviceNamePattern = regexp.MustCompile(`(?i)dashboard\.render\.com/([a-z0-9-]+)/[a-z0-9-]+`)
	serviceIDPattern   = regexp.MustCompile(`(?i)dashboard\.render\.com/[a-z0-9-]+/([a-z0-9-]+)`)
)

// ServiceIdentity is the structured identity extracted from a Render PR
// preview comment. All four fields are always populated; a missing field is
// a parse failure, never a partial result.
type ServiceIdentity struct {
	// ServerURL is the public URL of the preview server.
	ServerURL string
	// ServiceName is the Render service name, e.g. "my-app".
	ServiceName string
	// ServiceID is the Render service id, e.g. "srv-abc123".
	ServiceID string
	// DashboardURL links to the service's page on the Render dashboard.
	// It is reconstructed from ServiceName and ServiceID, so it is
	// well-formed even when the comment wraps the link in punctuation.
	DashboardURL string
}

// Parse extracts a ServiceIdentity from the raw text of a PR comment.
//
// It returns ErrNotPreviewComment when the text lacks the marker phrase;
// callers should treat that as "not ours, ignore" rather than a failure.
// Once the marker is present, any missing field is an error. Parse is pure:
// same input, same output, no side effects.
func Parse(text string) (*ServiceIdentity, error) {
	if !containsMarker(text) {
		return nil, ErrNotPreviewComment
	}

	server := serverURLPattern.FindStringSubmatch(text)
	if server == nil {
		return nil, ErrNoServerURL
	}

	name := serviceNamePattern.FindStringSubmatch(text)
	if name == nil {
		return nil, ErrNoServiceName
	}

	id := serviceIDPattern.FindStringSubmatch(text)
	if id == nil {
		return nil, ErrNoServiceID
	}

	serviceName := strings.ToLower(name[1])
	serviceID := strings.ToLower(id[1])

	return &ServiceIdentity{
		ServerURL:    strings.ToLower(server[1]),
		ServiceName:  serviceName,
		ServiceID:    serviceID,
		DashboardURL: fmt.Sprintf("%s/%s/%s", dashboardBase, serviceName, serviceID),
	}, nil
}

// containsMarker reports whether text carries the marker phrase, ignoring
// case on the literal.
func containsMarker(text string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(MarkerPhrase))
}
