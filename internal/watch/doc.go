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

// Package watch contains the poll-until-terminal state machine.
//
// A deploy starts Pending and moves forward to exactly one of Success,
// Failure or Inactive:
//
//	live         -> Success
//	build_failed -> Failure
//	deactivated  -> Inactive
//	anything else stays Pending
//
// Every observation, including pending heartbeats, is mirrored through a
// Reporter so the external record tracks progress. Exhausting the attempt
// budget is a designed Failure outcome, not an error; transport errors from
// either upstream are fatal and end the invocation.
package watch
