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

package event

// IssueCommentEvent represents a GitHub issue_comment webhook payload as
// delivered by the Actions runner. Only the fields this tool reads are
// modeled.
type IssueCommentEvent struct {
	Action     string     `json:"action"`
	Issue      Issue      `json:"issue"`
	Comment    Comment    `json:"comment"`
	Repository Repository `json:"repository"`
}

// Issue contains the issue (or pull request) the comment was left on.
type Issue struct {
	Number int `json:"number"`
	// PullRequest is present only when the issue is a pull request.
	PullRequest *PullRequestLink `json:"pull_request,omitempty"`
}

// PullRequestLink marks an issue as a pull request.
type PullRequestLink struct {
	URL string `json:"url"`
}

// Comment contains the comment body and author.
type Comment struct {
	ID      int64  `json:"id"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
	User    User   `json:"user"`
}

// User represents the comment author.
type User struct {
	Login string `json:"login"`
}

// Repository contains repository metadata.
type Repository struct {
	FullName string `json:"full_name"`
	Name     string `json:"name"`
	Owner    Owner  `json:"owner"`
}

// Owner represents the repository owner.
type Owner struct {
	Login string `json:"login"`
}

// OnPullRequest reports whether the comment was left on a pull request
// rather than a plain issue.
func (e *IssueCommentEvent) OnPullRequest() bool {
	return e.Issue.PullRequest != nil
}
