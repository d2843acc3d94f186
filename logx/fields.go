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

package logx

import (
	"errors"
	"fmt"

	"dirpx.dev/apierr/apis"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// RedactLimit is the number of leading characters of a credential that may
// appear in a log record.
const RedactLimit = 20

// RedactAuthorization returns the loggable form of an Authorization header:
// values up to RedactLimit characters are kept, longer ones are cut to
// RedactLimit characters followed by "...".
func RedactAuthorization(v string) string {
	r := []rune(v)
	if len(r) <= RedactLimit {
		return v
	}
	return string(r[:RedactLimit]) + "..."
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

const maxCauseDepth = 20

// ErrorFields describes err for a log record: its message, concrete type,
// the cause chain and, when any error in the chain carries one, the stack
// trace recorded by github.com/pkg/errors.
func ErrorFields(err error) []zap.Field {
	if err == nil {
		return nil
	}
	fields := []zap.Field{
		zap.String("error", err.Error()),
		zap.String("error_type", fmt.Sprintf("%T", err)),
	}
	if chain := CauseChain(err); len(chain) > 0 {
		fields = append(fields, zap.Strings("cause_chain", chain))
	}
	if st := stackOf(err); st != "" {
		fields = append(fields, zap.String("stack", st))
	}
	return fields
}

// CauseChain lists the wrapped causes of err, outermost first, as
// "<type>: <message>".
func CauseChain(err error) []string {
	var out []string
	cur := next(err)
	for i := 0; i < maxCauseDepth && cur != nil; i++ {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
		cur = next(cur)
	}
	return out
}

func next(err error) error {
	if u := errors.Unwrap(err); u != nil {
		return u
	}
	if c, ok := err.(apis.CausedError); ok {
		return c.Cause()
	}
	return nil
}

// stackOf returns the innermost recorded stack, which is the one closest to
// where the failure happened.
func stackOf(err error) string {
	var st pkgerrors.StackTrace
	for cur, i := err, 0; cur != nil && i <= maxCauseDepth; cur, i = next(cur), i+1 {
		if s, ok := cur.(stackTracer); ok && len(s.StackTrace()) > 0 {
			st = s.StackTrace()
		}
	}
	if len(st) == 0 {
		return ""
	}
	return fmt.Sprintf("%+v", st)
}
