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
	"google.golang.org/grpc/codes"
)

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithDefault sets or replaces the library default gRPC code for the given
// HTTP status.
func WithDefault(status int, c codes.Code) Option {
	return func(b *builder) { b.defaults[status] = c }
}

// WithOverride registers an exact gRPC code for the given HTTP status.
// Overrides take precedence over every other rule.
func WithOverride(status int, c codes.Code) Option {
	return func(b *builder) { b.overrides[status] = c }
}

// WithClass sets the code used for statuses of the given class (4 for 4xx,
// 5 for 5xx) that have no exact entry.
func WithClass(class int, c codes.Code) Option {
	return func(b *builder) { b.classes[class] = c }
}

// WithFallback sets the code used for statuses outside the 4xx and 5xx
// classes. Defaults to codes.Internal.
func WithFallback(c codes.Code) Option {
	return func(b *builder) { b.fallback = c }
}
