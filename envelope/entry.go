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

package envelope

import "reflect"

// Entry is a single error object as seen by API clients.
//
// Detail MUST be safe for end-user display: no stack traces, no secrets,
// no internal identifiers. Meta carries free-form data that has already been
// judged safe to expose.
type Entry struct {
	// ID identifies this particular occurrence of the problem.
	ID string `json:"id,omitempty" msgpack:"id,omitempty"`

	// Code is the stable, machine-readable code of the problem.
	Code string `json:"code,omitempty" msgpack:"code,omitempty"`

	// Title is a short, human-readable summary that does not change between
	// occurrences of the problem, except for localization.
	Title string `json:"title,omitempty" msgpack:"title,omitempty"`

	// Detail is a human-readable explanation of this occurrence.
	Detail string `json:"detail,omitempty" msgpack:"detail,omitempty"`

	// Source points at the part of the request that caused the problem.
	Source *Source `json:"source,omitempty" msgpack:"source,omitempty"`

	// Meta holds non-standard, client-safe information about the problem.
	Meta map[string]any `json:"meta,omitempty" msgpack:"meta,omitempty"`
}

// Source references the offending part of the request.
type Source struct {
	// Pointer is a JSON Pointer (RFC 6901) into the request document,
	// e.g. "/email" or "/address/city".
	Pointer string `json:"pointer,omitempty" msgpack:"pointer,omitempty"`

	// Parameter names the query or path parameter that caused the problem.
	Parameter string `json:"parameter,omitempty" msgpack:"parameter,omitempty"`

	// Header names the request header that caused the problem.
	Header string `json:"header,omitempty" msgpack:"header,omitempty"`
}

// Pointer returns a Source for a field of the request body.
// The field path uses "." as separator ("address.city" -> "/address/city").
func Pointer(field string) *Source {
	if field == "" {
		return nil
	}
	p := make([]byte, 0, len(field)+1)
	p = append(p, '/')
	for i := 0; i < len(field); i++ {
		if field[i] == '.' {
			p = append(p, '/')
			continue
		}
		p = append(p, field[i])
	}
	return &Source{Pointer: string(p)}
}

// Parameter returns a Source for a query or path parameter.
func Parameter(name string) *Source {
	if name == "" {
		return nil
	}
	return &Source{Parameter: name}
}

// Header returns a Source for a request header.
func Header(name string) *Source {
	if name == "" {
		return nil
	}
	return &Source{Header: name}
}

// IsZero reports whether the source carries no reference at all.
func (s *Source) IsZero() bool {
	return s == nil || (s.Pointer == "" && s.Parameter == "" && s.Header == "")
}

// WithID returns a copy of e with the given id.
func (e Entry) WithID(id string) Entry {
	e.ID = id
	return e
}

// WithSource returns a copy of e pointing at src. An empty source is dropped.
func (e Entry) WithSource(src *Source) Entry {
	if src.IsZero() {
		e.Source = nil
		return e
	}
	cp := *src
	e.Source = &cp
	return e
}

// WithMeta returns a copy of e with m merged into its metadata.
//
// Keys from m win on conflict. Neither e.Meta nor m is modified, so the
// original entry and any map shared with it stay exactly as they were.
func (e Entry) WithMeta(m map[string]any) Entry {
	e.Meta = MergeMeta(e.Meta, m)
	return e
}

// Equal reports whether e and o are structurally equal.
func (e Entry) Equal(o Entry) bool {
	if e.ID != o.ID || e.Code != o.Code || e.Title != o.Title || e.Detail != o.Detail {
		return false
	}
	if e.Source.IsZero() != o.Source.IsZero() {
		return false
	}
	if !e.Source.IsZero() && *e.Source != *o.Source {
		return false
	}
	if len(e.Meta) != len(o.Meta) {
		return false
	}
	for k, v := range e.Meta {
		ov, ok := o.Meta[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// MergeMeta returns the union of base and add, with add winning on
// conflicting keys. It never writes to either argument. When one side is
// empty the other is still copied, so the result never aliases an input.
// Two empty inputs produce nil, which keeps "meta" out of the output.
func MergeMeta(base, add map[string]any) map[string]any {
	if len(base) == 0 && len(add) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(add))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range add {
		out[k] = v
	}
	return out
}
