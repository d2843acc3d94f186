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
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Code is the stable, machine-readable identifier of a client-facing error.
//
// A Code doubles as the message-catalog key under which the localized title
// of the error is stored, e.g. "errors-400-not-readable". The detail text, when
// the catalog has one, lives under the same key with a ".detail" suffix.
type Code string

// MinLength and MaxLength bound the length of a canonical code.
const (
	MinLength = 3
	MaxLength = 128
)

// codeFmt accepts lowercase ASCII letters and digits separated by '-', '_'
// or '.', starting with a letter. The {2,127} range is tied to MinLength and
// MaxLength above.
const codeFmt = `^[a-z][a-z0-9_.-]{2,127}$`

var codeRe = regexp.MustCompile(codeFmt)

// ErrCodeInvalid is returned when a value cannot be parsed as a code.
var ErrCodeInvalid = errors.New("apierr: invalid code")

var (
	_ encoding.TextMarshaler   = (*Code)(nil)
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty is the zero-value code, meaning "not provided". Entries with an
// empty code simply omit the field.
var Empty Code = ""

// DetailSuffix is appended to a code to form the catalog key of the detail
// message.
const DetailSuffix = ".detail"

// Key builds a catalog-backed code from a service prefix, the HTTP status and
// a short suffix:
//
//	Key("movie-theatre", 401, "auth") == "movie-theatre-401-auth"
//
// An empty prefix falls back to DefaultPrefix.
func Key(prefix string, status int, suffix string) Code {
	var b strings.Builder
	prefix = Normalize(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	b.WriteString(prefix)
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(status))
	if suffix != "" {
		b.WriteByte('-')
		b.WriteString(Normalize(suffix))
	}
	return Code(b.String())
}

// Parse normalizes and validates s.
func Parse(s string) (Code, error) {
	s = Normalize(s)
	if !codeRe.MatchString(s) {
		return Empty, ErrCodeInvalid
	}
	return Code(s), nil
}

// MustParse is the panic-on-error variant of Parse, meant for package-level
// declarations.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize trims surrounding space, lowercases and turns inner whitespace
// into '-'. It does not validate.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

// Validate reports whether c is canonical. The empty code is invalid here;
// callers that treat it as "absent" check for Empty first.
func Validate(c Code) error {
	if !codeRe.MatchString(string(c)) {
		return ErrCodeInvalid
	}
	return nil
}

// Detail returns the catalog key of the detail message for c.
func (c Code) Detail() string {
	if c == Empty {
		return ""
	}
	return string(c) + DetailSuffix
}

// With returns the catalog key of a sub-message, e.g. the per-constraint
// detail "errors-400-validation.email".
func (c Code) With(sub string) string {
	if sub == "" {
		return string(c)
	}
	return string(c) + "." + sub
}

func (c Code) String() string { return string(c) }

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
