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

package fault

import "fmt"

// NotReadable reports a request body that could not be parsed.
type NotReadable struct {
	Err error
}

// NewNotReadable wraps a decoding error.
func NewNotReadable(err error) *NotReadable { return &NotReadable{Err: err} }

func (e *NotReadable) Error() string {
	if e.Err == nil {
		return "request not readable"
	}
	return "request not readable: " + e.Err.Error()
}

func (e *NotReadable) Unwrap() error { return e.Err }

// MissingCredentials reports a request to a protected resource that carried
// no usable credentials.
type MissingCredentials struct {
	// Scheme is the expected authentication scheme, e.g. "Bearer".
	Scheme string
}

func (e *MissingCredentials) Error() string {
	if e.Scheme == "" {
		return "credentials not found"
	}
	return fmt.Sprintf("%s credentials not found", e.Scheme)
}

// AccessDenied reports an identified or anonymous caller that is not allowed
// to perform the request.
type AccessDenied struct {
	Msg string
	Err error
}

// Deny returns an AccessDenied fault with a log message.
func Deny(msg string) *AccessDenied { return &AccessDenied{Msg: msg} }

func (e *AccessDenied) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "access denied"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AccessDenied) Unwrap() error { return e.Err }

// AuthenticationRejected reports credentials that were present but failed
// verification (bad signature, expired token, unknown key).
type AuthenticationRejected struct {
	Err error
}

// Reject wraps a verification error.
func Reject(err error) *AuthenticationRejected { return &AuthenticationRejected{Err: err} }

func (e *AuthenticationRejected) Error() string {
	if e.Err == nil {
		return "authentication rejected"
	}
	return "authentication rejected: " + e.Err.Error()
}

func (e *AuthenticationRejected) Unwrap() error { return e.Err }
