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

package code

// DefaultPrefix is the catalog prefix used when a service does not configure
// its own.
const DefaultPrefix = "errors"

// Baseline suffixes. Combined with a prefix and a status via Key they form
// the codes of the baseline policy, e.g. "errors-400-not-readable".
//
// Business codes are defined by services themselves; these only cover the
// failures every HTTP service shares.
const (
	// NotReadable marks a request body that could not be parsed.
	// Paired with 400.
	NotReadable = "not-readable"

	// Auth marks a request that carried no usable credentials.
	// Paired with 401.
	Auth = "auth"

	// AccessDenied marks an authenticated (or rejected) caller that is not
	// allowed to perform the request.
	// Paired with 403.
	AccessDenied = "access_denied"

	// Validation marks a request that violates one or more constraints.
	// Paired with 400. Per-constraint detail keys hang below it, e.g.
	// "errors-400-validation.required".
	Validation = "validation"

	// Internal marks any failure the caller cannot act on.
	// Paired with 500.
	Internal = "internal"
)
