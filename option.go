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

import "dirpx.dev/apierr/envelope"

// Option is a functional option for constructing or transforming an Error.
// It always takes an *Error and returns a (possibly new) *Error.
type Option func(*Error) *Error

// WithDetailOption sets the literal detail on construction.
func WithDetailOption(detail string) Option {
	return func(e *Error) *Error {
		return e.WithDetail(detail)
	}
}

// WithKeysOption sets the catalog keys of title and detail on construction.
func WithKeysOption(titleKey, detailKey string) Option {
	return func(e *Error) *Error {
		return e.WithKeys(titleKey, detailKey)
	}
}

// WithSourceOption sets the entry source on construction.
func WithSourceOption(src *envelope.Source) Option {
	return func(e *Error) *Error {
		return e.WithSource(src)
	}
}

// WithMetaOption adds a single meta key/value on construction.
func WithMetaOption(k string, v any) Option {
	return func(e *Error) *Error {
		return e.WithMeta(k, v)
	}
}

// WithMetasOption merges multiple meta key/values on construction.
func WithMetasOption(kv map[string]any) Option {
	return func(e *Error) *Error {
		return e.WithMetas(kv)
	}
}

// WithCauseOption attaches a cause on construction.
func WithCauseOption(err error) Option {
	return func(e *Error) *Error {
		return e.WithCause(err)
	}
}
