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

package classify

import (
	"dirpx.dev/apierr/envelope"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
)

// Request is the ambient request data a fault is classified against.
// Transport glue fills it in; every field is optional.
type Request struct {
	Method string
	// Path excludes the query string, which may carry credentials.
	Path       string
	RemoteAddr string
	// Authorization is the raw header value. It is only ever logged
	// redacted.
	Authorization  string
	AcceptLanguage string
	RequestID      string
	// Principal identifies the authenticated caller, when there is one.
	Principal string
}

// Context is the per-fault classification input besides the error itself.
type Context struct {
	Request Request
	// Locale forces the response language. The zero value negotiates it
	// from Request.AcceptLanguage.
	Locale language.Tag
	// KeyPrefix overrides the classifier's catalog key prefix.
	KeyPrefix string
}

// Category is the fault category a rule matched.
type Category int

const (
	Unrecognized Category = iota
	Application
	MalformedInput
	MissingCredentials
	AccessDenied
	ConstraintViolation
	Runtime
)

func (c Category) String() string {
	switch c {
	case Application:
		return "application"
	case MalformedInput:
		return "malformed_input"
	case MissingCredentials:
		return "missing_credentials"
	case AccessDenied:
		return "access_denied"
	case ConstraintViolation:
		return "constraint_violation"
	case Runtime:
		return "runtime"
	default:
		return "unrecognized"
	}
}

// Record is the single log record a classified fault asks for.
type Record struct {
	Level  zapcore.Level
	Msg    string
	Fields []zap.Field
}

// Classified is the outcome of classification: the status and entries to
// send, and the record to log. It lives for one response.
type Classified struct {
	Status   int
	Category Category
	Entries  []envelope.Entry
	Locale   language.Tag
	Log      Record
	// Err is the classified error. It is never serialized.
	Err error
}

// Response wraps the entries into the response body.
func (c Classified) Response() envelope.Response {
	return envelope.NewResponse(c.Entries...)
}
