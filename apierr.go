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

package apierr

import (
	"fmt"
	"net/http"

	"dirpx.dev/apierr/apis"
	"dirpx.dev/apierr/code"
	"dirpx.dev/apierr/envelope"
	"golang.org/x/text/language"
)

// Error is an application fault: a failure raised deliberately by handler
// code together with the status and the client-facing entry it should be
// reported with.
//
// It carries:
//   - Status: HTTP status, 400..599 (anything else is reported as 500);
//   - Code: stable machine code, also the default catalog key;
//   - Title, Detail: literal client-facing texts;
//   - TitleKey, DetailKey: optional catalog keys, resolved per request with
//     Title and Detail as fallbacks;
//   - Source, Meta: JSON:API source and free-form metadata;
//   - Cause: wrapped underlying error, logged but never sent to clients.
//
// All mutation helpers (WithX) return a shallow copy, so Error values can be
// declared once at package level and safely specialized per call.
type Error struct {
	Status    int
	Code      code.Code
	Title     string
	Detail    string
	TitleKey  string
	DetailKey string
	Source    *envelope.Source
	// Meta is treated as immutable: WithMeta/WithMetas always copy it.
	Meta  map[string]any
	Cause error
}

var _ apis.EntryProvider = (*Error)(nil)

// E is a convenience constructor for Error.
//
// Usage:
//
//	var ErrSeatTaken = apierr.E(http.StatusConflict, "theatre-409-seat-taken", "Seat Taken",
//	    apierr.WithKeysOption("theatre-409-seat-taken", ""),
//	)
//
//	return ErrSeatTaken.WithMeta("seat", seat).WithCause(err)
//
// It always returns a new Error and applies all provided options in order.
func E(status int, c code.Code, title string, opts ...Option) *Error {
	e := &Error{Status: normalizeStatus(status), Code: c, Title: title}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<status> <code>: <title>
//
// followed by ": <cause>" when a cause is attached. This is the log view of
// the fault; clients only ever see the entry.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := fmt.Sprintf("%d %s: %s", e.HTTPStatus(), e.Code, e.Title)
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// HTTPStatus implements apis.StatusError.
func (e *Error) HTTPStatus() int {
	if e == nil {
		return http.StatusInternalServerError
	}
	return normalizeStatus(e.Status)
}

// ErrorEntry implements apis.EntryProvider. Keys are resolved through r in
// language tag; a nil resolver leaves the literal texts in place.
func (e *Error) ErrorEntry(r apis.Resolver, tag language.Tag) envelope.Entry {
	if e == nil {
		return envelope.Entry{}
	}
	title, detail := e.Title, e.Detail
	if r != nil {
		if e.TitleKey != "" {
			title = r.Resolve(e.TitleKey, tag, e.Title)
		}
		// a detail key with neither message nor literal stays empty
		if e.DetailKey != "" {
			if v := r.Resolve(e.DetailKey, tag, e.Detail); v != e.DetailKey {
				detail = v
			}
		}
	}
	return envelope.NewBuilder().
		Code(string(e.Code)).
		Title(title).
		Detail(detail).
		Source(e.Source).
		Meta(e.Meta).
		Build()
}

// WithStatus returns a shallow copy of e with a new status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = normalizeStatus(status)
	return &cp
}

// WithTitle returns a shallow copy of e with a replaced title.
func (e *Error) WithTitle(title string) *Error {
	cp := *e
	cp.Title = title
	return &cp
}

// WithDetail returns a shallow copy of e with a replaced detail.
func (e *Error) WithDetail(detail string) *Error {
	cp := *e
	cp.Detail = detail
	return &cp
}

// WithKeys returns a shallow copy of e whose title and detail are resolved
// from the message catalog. Empty keys leave the literal text in use.
func (e *Error) WithKeys(titleKey, detailKey string) *Error {
	cp := *e
	cp.TitleKey = titleKey
	cp.DetailKey = detailKey
	return &cp
}

// WithSource returns a shallow copy of e pointing at the offending part of
// the request. An empty source clears it.
func (e *Error) WithSource(src *envelope.Source) *Error {
	cp := *e
	if src.IsZero() {
		cp.Source = nil
		return &cp
	}
	s := *src
	cp.Source = &s
	return &cp
}

// WithMeta returns a shallow copy of e with one extra key/value in Meta.
//
// The method always copies the map; the receiver and any error sharing its
// map are never modified.
func (e *Error) WithMeta(k string, v any) *Error {
	return e.WithMetas(map[string]any{k: v})
}

// WithMetas returns a shallow copy of e with kv merged into Meta, kv taking
// precedence on key conflicts.
func (e *Error) WithMetas(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	cp.Meta = envelope.MergeMeta(cp.Meta, kv)
	return &cp
}

// WithCause returns a shallow copy of e with the given underlying cause attached.
// If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

func normalizeStatus(status int) int {
	if status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}
