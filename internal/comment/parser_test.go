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
	"reflect"
	"testing"
)

const wellFormedComment = `Your Render PR Server URL is https://my-app-pr-42.onrender.com.

Follow its progress at https://dashboard.render.com/my-app/srv-abc123.`

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantIdentity *ServiceIdentity
		wantErr      error
	}{
		{
			name: "Well-formed preview comment",
			text: wellFormedComment,
			wantIdentity: &ServiceIdentity{
				ServerURL:    "https://my-app-pr-42.onrender.com",
				ServiceName:  "my-app",
				ServiceID:    "srv-abc123",
				DashboardURL: "https://dashboard.render.com/my-app/srv-abc123",
			},
		},
		{
			name: "Marker phrase is case-insensitive",
			text: "your render pr server url is https://my-app-pr-7.onrender.com see https://dashboard.render.com/my-app/srv-xyz",
			wantIdentity: &ServiceIdentity{
				ServerURL:    "https://my-app-pr-7.onrender.com",
				ServiceName:  "my-app",
				ServiceID:    "srv-xyz",
				DashboardURL: "https://dashboard.render.com/my-app/srv-xyz",
			},
		},
		{
			name: "Dashboard URL wrapped in markdown punctuation reconstructs cleanly",
			text: "Your Render PR Server URL is https://api-pr-9.onrender.com!\nProgress: (https://dashboard.render.com/api/srv-123abc).",
			wantIdentity: &ServiceIdentity{
				ServerURL:    "https://api-pr-9.onrender.com",
				ServiceName:  "api",
				ServiceID:    "srv-123abc",
				DashboardURL: "https://dashboard.render.com/api/srv-123abc",
			},
		},
		{
			name:    "Empty comment is skipped",
			text:    "",
			wantErr: ErrNotPreviewComment,
		},
		{
			name:    "Unrelated comment is skipped",
			text:    "LGTM, merging once CI is green",
			wantErr: ErrNotPreviewComment,
		},
		{
			name:    "Comment mentioning Render without the marker is skipped",
			text:    "The Render dashboard is at https://dashboard.render.com/my-app/srv-abc123",
			wantErr: ErrNotPreviewComment,
		},
		{
			name:    "Marker present but server URL missing",
			text:    "Your Render PR Server URL is coming soon. https://dashboard.render.com/my-app/srv-abc123",
			wantErr: ErrNoServerURL,
		},
		{
			name:    "Marker present but hostname is not a PR preview",
			text:    "Your Render PR Server URL is https://my-app.onrender.com https://dashboard.render.com/my-app/srv-abc123",
			wantErr: ErrNoServerURL,
		},
		{
			name:    "Dashboard URL missing entirely",
			text:    "Your Render PR Server URL is https://my-app-pr-42.onrender.com",
			wantErr: ErrNoServiceName,
		},
		{
			name:    "Dashboard URL missing the service id segment",
			text:    "Your Render PR Server URL is https://my-app-pr-42.onrender.com https://dashboard.render.com/my-app",
			wantErr: ErrNoServiceName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				if got != nil {
					t.Errorf("Parse() returned identity %+v alongside error", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.wantIdentity) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.wantIdentity)
			}
		})
	}
}

func TestParse_is_deterministic(t *testing.T) {
	first, err := Parse(wellFormedComment)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	second, err := Parse(wellFormedComment)
	if err != nil {
		t.Fatalf("Parse() unexpected error on second call: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse() not idempotent: first %+v, second %+v", first, second)
	}
}

func TestParse_uppercase_dashboard_tokens_are_lowercased(t *testing.T) {
	text := "Your Render PR Server URL is https://my-app-pr-3.onrender.com https://DASHBOARD.RENDER.COM/My-App/SRV-ABC"

	got, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if got.ServiceName != "my-app" {
		t.Errorf("ServiceName = %q, want %q", got.ServiceName, "my-app")
	}
	if got.ServiceID != "srv-abc" {
		t.Errorf("ServiceID = %q, want %q", got.ServiceID, "srv-abc")
	}
	if got.DashboardURL != "https://dashboard.render.com/my-app/srv-abc" {
		t.Errorf("DashboardURL = %q not reconstructed in lowercase", got.DashboardURL)
	}
}
