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

package httpx

import (
	"net/http"

	"dirpx.dev/apierr/advice"
	"dirpx.dev/apierr/classify"
	"dirpx.dev/apierr/fault"
	"dirpx.dev/apierr/logx"
)

// HandlerFunc is an http.HandlerFunc that reports failure by returning an
// error instead of writing one.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Responder dispatches faults of net/http handlers to an Advice and writes
// the resulting envelopes.
type Responder struct {
	adv       *advice.Advice
	writer    Writer
	idHeader  string
	principal func(*http.Request) string
}

// Option configures a Responder.
type Option func(*Responder)

// WithWriter replaces the envelope writer.
func WithWriter(w Writer) Option {
	return func(r *Responder) { r.writer = w }
}

// WithRequestIDHeader sets the header request ids are read from.
func WithRequestIDHeader(name string) Option {
	return func(r *Responder) {
		if name != "" {
			r.idHeader = name
		}
	}
}

// WithPrincipal sets how the authenticated caller is identified in logs.
func WithPrincipal(fn func(*http.Request) string) Option {
	return func(r *Responder) { r.principal = fn }
}

// NewResponder returns a Responder for adv.
func NewResponder(adv *advice.Advice, opts ...Option) *Responder {
	r := &Responder{adv: adv, idHeader: DefaultRequestIDHeader}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond classifies err and writes its envelope.
func (p *Responder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	req := RequestFrom(r, p.idHeader)
	if p.principal != nil {
		req.Principal = p.principal(r)
	}
	ctx := r.Context()
	if req.RequestID != "" {
		ctx = logx.WithRequestID(ctx, req.RequestID)
	}
	c := p.adv.Handle(ctx, err, classify.Context{Request: req})
	p.writer.Write(w, r, c)
}

// Wrap adapts fn to http.Handler. Returned errors and panics are both
// reported through Respond; http.ErrAbortHandler is re-raised so the server
// can abort the connection.
func (p *Responder) Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer p.rescue(w, r)
		if err := fn(w, r); err != nil {
			p.Respond(w, r, err)
		}
	})
}

// Recover is a middleware that turns panics of next into 500 envelopes.
func (p *Responder) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer p.rescue(w, r)
		next.ServeHTTP(w, r)
	})
}

func (p *Responder) rescue(w http.ResponseWriter, r *http.Request) {
	v := recover()
	if v == nil {
		return
	}
	if v == http.ErrAbortHandler {
		panic(v)
	}
	p.Respond(w, r, fault.Recovered(v))
}

// Handle is shorthand for NewResponder(adv).Wrap(fn).
func Handle(adv *advice.Advice, fn HandlerFunc) http.Handler {
	return NewResponder(adv).Wrap(fn)
}
