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

package apis

import (
	"dirpx.dev/apierr/envelope"
	"golang.org/x/text/language"
)

// StatusError is an error that knows the HTTP status it should be reported
// with. The status is expected to be a client (4xx) or server (5xx) error
// status; adapters treat anything else as 500.
type StatusError interface {
	error

	// HTTPStatus returns the HTTP status of the error.
	HTTPStatus() int
}

// EntryProvider is implemented by errors that carry a pre-built,
// client-facing envelope entry.
//
// The classifier honors such errors verbatim (first rule of the table): it
// keeps their status and entry and only adds request-scoped data (id,
// locale meta). Titles and details declared through catalog keys are
// resolved with the given resolver and language.
type EntryProvider interface {
	StatusError

	// ErrorEntry returns the entry to report. Implementations must return a
	// value that does not share mutable state with the error itself.
	ErrorEntry(r Resolver, tag language.Tag) envelope.Entry
}

// CausedError represents an error that exposes its underlying cause.
//
// Having this interface in apis lets logging code walk cause chains of
// errors that predate errors.Unwrap (pkg/errors style) as well as the
// standard ones.
type CausedError interface {
	error

	// Cause returns the underlying error that triggered this error, if any.
	// May return nil.
	Cause() error
}
