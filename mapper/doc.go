/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package mapper provides deterministic, immutable projections of HTTP error
// statuses onto gRPC status codes.
//
// # Overview
//
// The classification policy speaks HTTP: every fault resolves to a status
// such as 400, 401 or 500. gRPC handlers share that policy and need a
// canonical code for the same fault. Package mapper does that in a way that
// is:
//
//   - immutable, so a Mapper is a snapshot safe for concurrent reuse;
//   - overridable per status and per status class.
//
// # Resolution model
//
// A Mapper resolves codes in the following order:
//
//  1. exact override for the status;
//  2. exact default (library or user-adjusted);
//  3. class default: FailedPrecondition for 4xx, Internal for 5xx;
//  4. fallback (codes.Internal unless configured).
//
// # Building a mapper
//
//	m, err := mapper.New(
//	    mapper.WithOverride(http.StatusConflict, codes.AlreadyExists),
//	    mapper.WithClass(4, codes.InvalidArgument),
//	)
//	if err != nil {
//	    // invalid status or code
//	}
//
//	m.GRPCCode(409) // codes.AlreadyExists
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of which tier matched. It is
// intended for inspection and logging, not for stable machine parsing.
package mapper
