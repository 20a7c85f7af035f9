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

// Package comment parses Render's PR preview comments.
//
// When Render builds a preview environment for a pull request it posts a
// comment containing the preview server URL and a link to the service's
// dashboard page. This package recognizes those comments and extracts the
// service identity from them.
//
// The comment template is external to this codebase and can drift; the
// literal phrasing and URL shapes live in named constants and patterns at
// the top of parser.go so drift is a one-place change.
//
// Example usage:
//
//	identity, err := comment.Parse(body)
//	if errors.Is(err, comment.ErrNotPreviewComment) {
//	    // some other comment on the PR, not ours
//	    return nil
//	}
//	if err != nil {
//	    return err
//	}
//	fmt.Println(identity.ServiceID)
package comment
