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

// Package apierr turns faults raised while handling a request into uniform,
// client-facing JSON:API error envelopes.
//
// The root package holds Error, the application fault: a failure that
// handler code raises on purpose, with an explicit HTTP status and a
// pre-built entry. Every other fault (malformed bodies, missing or rejected
// credentials, validation failures, panics, arbitrary errors) is classified
// by package classify and dispatched by package advice; httpx, ginx and
// grpcx plug that dispatcher into net/http, gin and gRPC servers.
//
// A typical service declares its application faults once:
//
//	var ErrSoldOut = apierr.E(http.StatusConflict, "theatre-409-sold-out", "Sold Out",
//	    apierr.WithKeysOption("theatre-409-sold-out", "theatre-409-sold-out.detail"),
//	)
//
// and returns specialized copies from handlers:
//
//	return ErrSoldOut.WithMeta("showing", id).WithCause(err)
package apierr
