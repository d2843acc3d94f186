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

package grpcx

import (
	"context"

	"dirpx.dev/apierr/adapter"
	"dirpx.dev/apierr/advice"
	"dirpx.dev/apierr/apis"
	"dirpx.dev/apierr/authx"
	"dirpx.dev/apierr/classify"
	"dirpx.dev/apierr/fault"
	"dirpx.dev/apierr/logx"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	gstatus "google.golang.org/grpc/status"
)

// Metadata keys the request is built from. gRPC lower-cases all keys.
const (
	MDAuthorization  = "authorization"
	MDAcceptLanguage = "accept-language"
	MDRequestID      = "x-request-id"
)

// call is shared between UnaryServerInterceptor and the interceptors it
// wraps, so the principal established further down the chain is known when
// the fault is classified.
type call struct {
	principal string
}

type callKey struct{}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that
// classifies handler errors and panics with adv and returns them as gRPC
// statuses.
//
// The provided apis.Mapper projects the classified HTTP status onto the
// gRPC code (library defaults when nil). Statuses carry errdetails as
// described in adapter.ToStatus, with domain as ErrorInfo domain.
//
// Errors that already carry a gRPC status are returned as-is.
func UnaryServerInterceptor(adv *advice.Advice, m apis.Mapper, domain string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		cl := &call{}
		ctx = context.WithValue(ctx, callKey{}, cl)

		defer func() {
			if v := recover(); v != nil {
				resp, err = nil, respond(ctx, adv, m, domain, info, cl, fault.Recovered(v))
			}
		}()

		resp, err = handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if _, ok := gstatus.FromError(err); ok {
			return nil, err
		}
		return nil, respond(ctx, adv, m, domain, info, cl, err)
	}
}

// UnaryAuthInterceptor authenticates the bearer token of the
// "authorization" metadata with a. Failures are returned as fault values
// for UnaryServerInterceptor to classify; on success the claims are
// available through authx.ClaimsFrom.
func UnaryAuthInterceptor(a *authx.Authenticator) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		claims, err := a.Authenticate(first(ctx, MDAuthorization))
		if err != nil {
			return nil, err
		}
		if cl, ok := ctx.Value(callKey{}).(*call); ok {
			cl.principal = claims.Subject
		}
		return handler(authx.WithClaims(ctx, claims), req)
	}
}

func respond(ctx context.Context, adv *advice.Advice, m apis.Mapper, domain string, info *grpc.UnaryServerInfo, cl *call, err error) error {
	method := ""
	if info != nil {
		method = info.FullMethod
	}
	req := RequestFrom(ctx, method)
	if cl.principal != "" {
		req.Principal = cl.principal
	}
	if req.RequestID != "" {
		ctx = logx.WithRequestID(ctx, req.RequestID)
	}
	out := adv.Handle(ctx, err, classify.Context{Request: req})
	return adapter.ToStatus(out, m, domain).Err()
}

// RequestFrom builds the classification request from the incoming metadata
// and peer of ctx. gRPC calls are HTTP/2 POSTs to the full method name.
func RequestFrom(ctx context.Context, fullMethod string) classify.Request {
	req := classify.Request{
		Method:         "POST",
		Path:           fullMethod,
		Authorization:  first(ctx, MDAuthorization),
		AcceptLanguage: first(ctx, MDAcceptLanguage),
		RequestID:      first(ctx, MDRequestID),
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		req.RemoteAddr = p.Addr.String()
	}
	if claims, ok := authx.ClaimsFrom(ctx); ok {
		req.Principal = claims.Subject
	}
	return req
}

func first(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if vs := md.Get(key); len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// ExtractErrorInfo pulls errdetails.ErrorInfo out of a gRPC error, if present.
// Useful in tests and client code.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}

// ExtractBadRequest pulls errdetails.BadRequest out of a gRPC error, if present.
func ExtractBadRequest(err error) (*errdetails.BadRequest, bool) {
	st, ok := gstatus.FromError(err)
	if err == nil || !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			return br, true
		}
	}
	return nil, false
}
