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
	"strings"

	"google.golang.org/grpc/codes"
)

// freeze makes an immutable copy of a builder map. Empty maps become nil.
func freeze(src map[int]codes.Code) map[int]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[int]codes.Code, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// validateStatuses checks that every key of m is an error status (400..599)
// and every value a known gRPC code.
func validateStatuses(kind string, m map[int]codes.Code) error {
	for s, c := range m {
		if s < 400 || s > 599 {
			return fmt.Errorf("mapper: %s status %d is not an error status", kind, s)
		}
		if err := validateCode(c); err != nil {
			return fmt.Errorf("mapper: %s status %d: %w", kind, s, err)
		}
	}
	return nil
}

func validateClasses(m map[int]codes.Code) error {
	for class, c := range m {
		if class != 4 && class != 5 {
			return fmt.Errorf("mapper: invalid status class %d (want 4 or 5)", class)
		}
		if err := validateCode(c); err != nil {
			return fmt.Errorf("mapper: class %dxx: %w", class, err)
		}
	}
	return nil
}

// validateCode rejects OK (an error never maps to success) and values past
// the last canonical code.
func validateCode(c codes.Code) error {
	if c == codes.OK || c > codes.Unauthenticated {
		return fmt.Errorf("invalid gRPC code %d", uint32(c))
	}
	return nil
}

// formatCode renders c as NAME(n), e.g. "NOTFOUND(5)".
func formatCode(c codes.Code) string {
	return fmt.Sprintf("%s(%d)", strings.ToUpper(c.String()), uint32(c))
}
