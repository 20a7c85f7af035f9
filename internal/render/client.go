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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Render API endpoint.
const DefaultBaseURL = "https://api.render.com/v1"

// deployListLimit bounds the listing window; the triggering deploy is
// always near the head of it.
const deployListLimit = 20

// httpClient implements Client over the Render REST API.
type httpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a Render API client authenticated with apiKey.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// deployListEntry is the wrapper shape of the deploy listing endpoint:
// each element pairs a deploy with a pagination cursor.
type deployListEntry struct {
	Deploy *Deploy `json:"deploy"`
	Cursor string  `json:"cursor"`
}

// ListDeploys returns up to deployListLimit recent deploys for serviceID.
func (c *httpClient) ListDeploys(ctx context.Context, serviceID string) ([]*Deploy, error) {
	endpoint := fmt.Sprintf("%s/services/%s/deploys?limit=%d",
		c.baseURL, url.PathEscape(serviceID), deployListLimit)

	var entries []deployListEntry
	if err := c.get(ctx, endpoint, &entries); err != nil {
		return nil, fmt.Errorf("failed to list deploys for service %s: %w", serviceID, err)
	}

	deploys := make([]*Deploy, 0, len(entries))
	for _, entry := range entries {
		if entry.Deploy != nil {
			deploys = append(deploys, entry.Deploy)
		}
	}

	return deploys, nil
}

// GetDeploy fetches a single deploy by id.
func (c *httpClient) GetDeploy(ctx context.Context, serviceID, deployID string) (*Deploy, error) {
	endpoint := fmt.Sprintf("%s/services/%s/deploys/%s",
		c.baseURL, url.PathEscape(serviceID), url.PathEscape(deployID))

	var deploy Deploy
	if err := c.get(ctx, endpoint, &deploy); err != nil {
		return nil, fmt.Errorf("failed to get deploy %s: %w", deployID, err)
	}

	return &deploy, nil
}

// get performs an authenticated GET and decodes the JSON response into out.
func (c *httpClient) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// apiError builds an APIError from an error response, pulling the message
// out of Render's {"message": "..."} error body when present.
func apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Message = payload.Message
		}
	}

	return apiErr
}
