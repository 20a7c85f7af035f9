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

// Package render provides a read-only client for the Render deploy API.
//
// The tool consumes two endpoints:
//
//	GET /services/{serviceID}/deploys?limit=20
//	GET /services/{serviceID}/deploys/{deployID}
//
// Authentication uses a bearer API key. Requests are synchronous and are
// never retried here; transient failures propagate to the caller, which
// treats them as fatal for the invocation.
//
// Example usage:
//
//	client := render.NewClient(render.DefaultBaseURL, apiKey)
//	deploys, err := client.ListDeploys(ctx, "srv-abc123")
//	if err != nil {
//	    return err
//	}
//	deploy := render.LatestDeploy(deploys)
package render
