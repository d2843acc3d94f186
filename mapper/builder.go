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

type builder struct {
	// defaults holds per-status codes that replace the library defaults.
	defaults map[int]codes.Code

	// overrides holds exact per-status codes; they win over defaults.
	overrides map[int]codes.Code

	// classes holds per-class (4 or 5) codes for statuses without an exact entry.
	classes map[int]codes.Code

	// fallback is used for statuses outside the 4xx and 5xx classes.
	fallback codes.Code
}

// newBuilder creates a builder seeded with the library defaults.
func newBuilder() *builder {
	b := &builder{
		defaults:  make(map[int]codes.Code, len(defaultGRPC)),
		overrides: make(map[int]codes.Code),
		classes:   make(map[int]codes.Code, len(defaultClass)),
		fallback:  codes.Internal,
	}
	for k, v := range defaultGRPC {
		b.defaults[k] = v
	}
	for k, v := range defaultClass {
		b.classes[k] = v
	}
	return b
}
