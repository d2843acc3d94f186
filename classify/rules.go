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
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"dirpx.dev/apierr/apis"
	"dirpx.dev/apierr/code"
	"dirpx.dev/apierr/envelope"
	"dirpx.dev/apierr/fault"
	"dirpx.dev/apierr/logx"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// rule is one row of the classification table. build reports false when
// the rule does not apply to the fault in scope.
type rule struct {
	category Category
	build    func(s *scope) (Classified, bool)
}

// rules is evaluated top to bottom; the first matching row wins.
var rules = []rule{
	{Application, application},
	{MalformedInput, malformedInput},
	{MissingCredentials, missingCredentials},
	{AccessDenied, accessDenied},
	{ConstraintViolation, constraintViolation},
	{Runtime, recognizedRuntime},
	{Unrecognized, unrecognized},
}

func application(s *scope) (Classified, bool) {
	var ep apis.EntryProvider
	if !errors.As(s.err, &ep) {
		return Classified{}, false
	}
	status := ep.HTTPStatus()
	entry := ep.ErrorEntry(s.c.resolver, s.tag)
	out := Classified{Status: status, Entries: []envelope.Entry{entry}}
	if status >= http.StatusInternalServerError {
		out.Log = Record{
			Level:  zapcore.ErrorLevel,
			Msg:    "application fault",
			Fields: append(logx.ErrorFields(s.err), requestFields(s.req)...),
		}
		return out, true
	}
	out.Log = Record{
		Level: zapcore.InfoLevel,
		Msg:   "application fault",
		Fields: append([]zap.Field{
			zap.String("code", entry.Code),
			zap.String("error", s.err.Error()),
		}, requestFields(s.req)...),
	}
	return out, true
}

func malformedInput(s *scope) (Classified, bool) {
	if !isMalformed(s.err) {
		return Classified{}, false
	}
	k := s.key(http.StatusBadRequest, code.NotReadable)
	entry := envelope.NewBuilder().
		Code(string(k)).
		Title(s.resolve(string(k), "Request Not Readable")).
		Detail(s.resolve(k.Detail(), "The request body could not be parsed.")).
		Build()
	return Classified{
		Status:  http.StatusBadRequest,
		Entries: []envelope.Entry{entry},
		Log: Record{
			Level:  zapcore.InfoLevel,
			Msg:    "request not readable",
			Fields: append([]zap.Field{zap.String("error", s.err.Error())}, requestFields(s.req)...),
		},
	}, true
}

// isMalformed matches request bodies the transport glue failed to decode.
// Decode errors of anything else (upstream payloads, stored documents) are
// server faults and fall through to the 500 rules.
func isMalformed(err error) bool {
	var nr *fault.NotReadable
	return errors.As(err, &nr)
}

func missingCredentials(s *scope) (Classified, bool) {
	var mc *fault.MissingCredentials
	if !errors.As(s.err, &mc) {
		return Classified{}, false
	}
	k := s.key(http.StatusUnauthorized, code.Auth)
	entry := envelope.NewBuilder().
		Code(string(k)).
		Title(s.resolve(string(k), "Unauthorised")).
		Detail(s.resolve(k.Detail(), "Authentication credentials were not provided.")).
		Build()
	return Classified{
		Status:  http.StatusUnauthorized,
		Entries: []envelope.Entry{entry},
		Log: Record{
			Level: zapcore.InfoLevel,
			Msg:   "credentials not found",
			Fields: append([]zap.Field{
				zap.String("authorization", logx.RedactAuthorization(s.req.Authorization)),
			}, requestFields(s.req)...),
		},
	}, true
}

// jwtErrors are the golang-jwt verification failures. Any of them in the
// chain means credentials were presented and rejected.
var jwtErrors = []error{
	jwt.ErrTokenMalformed,
	jwt.ErrTokenUnverifiable,
	jwt.ErrTokenSignatureInvalid,
	jwt.ErrTokenExpired,
	jwt.ErrTokenNotValidYet,
	jwt.ErrTokenUsedBeforeIssued,
	jwt.ErrTokenInvalidClaims,
	jwt.ErrTokenInvalidIssuer,
	jwt.ErrTokenInvalidAudience,
	jwt.ErrTokenInvalidSubject,
	jwt.ErrTokenInvalidId,
	jwt.ErrTokenRequiredClaimMissing,
}

func deniedFault(err error) (error, bool) {
	var ad *fault.AccessDenied
	if errors.As(err, &ad) {
		return ad, true
	}
	var ar *fault.AuthenticationRejected
	if errors.As(err, &ar) {
		return ar, true
	}
	for _, target := range jwtErrors {
		if errors.Is(err, target) {
			return err, true
		}
	}
	return nil, false
}

func accessDenied(s *scope) (Classified, bool) {
	matched, ok := deniedFault(s.err)
	if !ok {
		return Classified{}, false
	}
	k := s.key(http.StatusForbidden, code.AccessDenied)
	entry := envelope.NewBuilder().
		Code(string(k)).
		Title(s.resolve(string(k), "Access Denied")).
		Detail(s.resolve(k.Detail(), "You are not allowed to access this resource.")).
		Build()

	msg := "unidentified user denied access"
	fields := []zap.Field{
		zap.String("fault_type", typeName(matched)),
		zap.String("error", s.err.Error()),
	}
	if s.req.Principal != "" {
		msg = "user denied access"
		fields = append(fields, zap.String("principal", s.req.Principal))
	}
	return Classified{
		Status:  http.StatusForbidden,
		Entries: []envelope.Entry{entry},
		Log: Record{
			Level:  zapcore.WarnLevel,
			Msg:    msg,
			Fields: append(fields, requestFields(s.req)...),
		},
	}, true
}

// typeName returns the bare type name of err: "*fault.AccessDenied" ->
// "AccessDenied".
func typeName(err error) string {
	n := strings.TrimLeft(fmt.Sprintf("%T", err), "*")
	if i := strings.LastIndexByte(n, '.'); i >= 0 {
		n = n[i+1:]
	}
	return n
}

func constraintViolation(s *scope) (Classified, bool) {
	var cv *fault.ConstraintViolation
	if !errors.As(s.err, &cv) {
		var verrs validator.ValidationErrors
		if !errors.As(s.err, &verrs) {
			return Classified{}, false
		}
		cv = fault.FromValidationErrors(verrs, fault.Body)
	}

	k := s.key(http.StatusBadRequest, code.Validation)
	title := s.resolve(string(k), "Validation Failed")
	generic := s.resolve(k.Detail(), "{field} is invalid.")

	entries := make([]envelope.Entry, 0, max(1, len(cv.Violations)))
	for _, v := range cv.Violations {
		tmpl := s.resolve(k.With(v.Rule), generic)
		detail := strings.NewReplacer("{field}", v.Field, "{param}", v.Param).Replace(tmpl)
		entries = append(entries, envelope.NewBuilder().
			Code(string(k)).
			Title(title).
			Detail(detail).
			Source(v.Source()).
			Build())
	}
	if len(entries) == 0 {
		entries = append(entries, envelope.NewBuilder().Code(string(k)).Title(title).Build())
	}
	return Classified{
		Status:  http.StatusBadRequest,
		Entries: entries,
		Log: Record{
			Level: zapcore.InfoLevel,
			Msg:   "constraint violation",
			Fields: append([]zap.Field{
				zap.String("error", cv.Error()),
				zap.Int("violations", len(cv.Violations)),
			}, requestFields(s.req)...),
		},
	}, true
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

func isRecognizedRuntime(err error) bool {
	var (
		p  *fault.Panic
		rt runtime.Error
		st stackTracer
	)
	return errors.As(err, &p) ||
		errors.As(err, &rt) ||
		errors.As(err, &st) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func recognizedRuntime(s *scope) (Classified, bool) {
	if !isRecognizedRuntime(s.err) {
		return Classified{}, false
	}
	return internal(s, "runtime fault"), true
}

func unrecognized(s *scope) (Classified, bool) {
	return internal(s, "unhandled error"), true
}

func internal(s *scope, msg string) Classified {
	return Classified{
		Status:  http.StatusInternalServerError,
		Entries: []envelope.Entry{s.generic()},
		Log: Record{
			Level:  zapcore.ErrorLevel,
			Msg:    msg,
			Fields: append(logx.ErrorFields(s.err), requestFields(s.req)...),
		},
	}
}

// requestFields describes the request for a log record. The query string
// is never logged.
func requestFields(r Request) []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if r.Method != "" {
		fields = append(fields, zap.String("method", r.Method))
	}
	if r.Path != "" {
		fields = append(fields, zap.String("path", r.Path))
	}
	if r.RemoteAddr != "" {
		fields = append(fields, zap.String("remote_addr", r.RemoteAddr))
	}
	return fields
}
