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

package mapper

import (
	"fmt"

	"dirpx.dev/apierr/apis"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process overview:
//
//  1. Seed the builder with the library defaults.
//  2. Apply user-provided options (defaults, overrides, classes, fallback).
//  3. Validate every status, class and code.
//  4. Freeze all maps into fresh copies.
//
// Errors returned from this function indicate invalid statuses or codes.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	if err := validateStatuses("default", b.defaults); err != nil {
		return nil, err
	}
	if err := validateStatuses("override", b.overrides); err != nil {
		return nil, err
	}
	if err := validateClasses(b.classes); err != nil {
		return nil, err
	}
	if err := validateCode(b.fallback); err != nil {
		return nil, fmt.Errorf("mapper: fallback: %w", err)
	}

	return &mapper{
		defaults:  freeze(b.defaults),
		overrides: freeze(b.overrides),
		classes:   freeze(b.classes),
		fallback:  b.fallback,
	}, nil
}

// MustNew is like New but panics on error. Intended for package-level
// variables built from constant options.
func MustNew(opts ...Option) apis.Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// mapper is safe for concurrent use once constructed.
type mapper struct {
	// defaults holds the per-status codes (library or user adjusted).
	defaults map[int]codes.Code

	// overrides holds explicit per-status codes; highest precedence.
	overrides map[int]codes.Code

	// classes holds the per-class codes keyed by status/100.
	classes map[int]codes.Code

	// fallback is used for statuses outside 4xx and 5xx.
	fallback codes.Code
}

// GRPCCode resolves the gRPC code for an HTTP status.
//
// Resolution order (highest to lowest):
//  1. exact override;
//  2. exact default;
//  3. class default (4xx or 5xx);
//  4. fallback.
func (m *mapper) GRPCCode(status int) codes.Code {
	c, _ := m.resolve(status)
	return c
}

// Explain produces a one-line trace of how GRPCCode resolved status.
//
// Example output:
//
//	http=404 source=default -> NOTFOUND(5)
//
// source is one of override, default, class or fallback.
func (m *mapper) Explain(status int) string {
	c, src := m.resolve(status)
	return fmt.Sprintf("http=%d source=%s -> %s", status, src, formatCode(c))
}

func (m *mapper) resolve(status int) (codes.Code, string) {
	if c, ok := m.overrides[status]; ok {
		return c, "override"
	}
	if c, ok := m.defaults[status]; ok {
		return c, "default"
	}
	if status >= 400 && status <= 599 {
		if c, ok := m.classes[status/100]; ok {
			return c, "class"
		}
	}
	return m.fallback, "fallback"
}
