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

import (
	"encoding"
	"strings"
	"testing"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		status int
		suffix string
		want   Code
	}{
		{"default prefix", DefaultPrefix, 400, NotReadable, "errors-400-not-readable"},
		{"service prefix", "movie-theatre", 401, Auth, "movie-theatre-401-auth"},
		{"prefix normalized", "  Movie Theatre ", 403, AccessDenied, "movie-theatre-403-access_denied"},
		{"no prefix", "", 500, Internal, "errors-500-internal"},
		{"no suffix", "errors", 500, "", "errors-500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Key(tt.prefix, tt.status, tt.suffix)
			if got != tt.want {
				t.Fatalf("Key(%q, %d, %q) = %q, want %q", tt.prefix, tt.status, tt.suffix, got, tt.want)
			}
			if err := Validate(got); err != nil {
				t.Fatalf("Key produced a non-canonical code %q: %v", got, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim", "  internal  ", "internal"},
		{"lower", "Errors-500-Internal", "errors-500-internal"},
		{"inner spaces", "movie  theatre", "movie-theatre"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	valid := []string{"abc", "errors-400-not-readable", "ERRORS-401-AUTH", "svc.user_not_found"}
	for _, in := range valid {
		if _, err := Parse(in); err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", in, err)
		}
	}

	invalid := []string{"", "a", "1abc", "abc/def", "-abc", strings.Repeat("a", MaxLength+1)}
	for _, in := range invalid {
		if _, err := Parse(in); err != ErrCodeInvalid {
			t.Fatalf("Parse(%q) error = %v, want ErrCodeInvalid", in, err)
		}
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustParse must panic on invalid input")
		}
	}()
	_ = MustParse("!")
}

func TestDetailAndWith(t *testing.T) {
	c := Key(DefaultPrefix, 400, Validation)
	if got := c.Detail(); got != "errors-400-validation.detail" {
		t.Fatalf("Detail() = %q", got)
	}
	if got := c.With("email"); got != "errors-400-validation.email" {
		t.Fatalf("With() = %q", got)
	}
	if got := c.With(""); got != string(c) {
		t.Fatalf("With(\"\") = %q", got)
	}
	if Empty.Detail() != "" {
		t.Fatal("empty code must have no detail key")
	}
}

func TestText_RoundTrip(t *testing.T) {
	var _ encoding.TextMarshaler = Code("")
	var c Code
	if err := c.UnmarshalText([]byte("  Errors-500-Internal ")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	b, err := c.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(b) != "errors-500-internal" {
		t.Fatalf("round trip = %q", b)
	}
	if _, err := Empty.MarshalText(); err == nil {
		t.Fatal("empty code must not marshal")
	}
}
