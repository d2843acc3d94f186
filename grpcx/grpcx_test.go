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
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"dirpx.dev/apierr"
	"dirpx.dev/apierr/advice"
	"dirpx.dev/apierr/authx"
	"dirpx.dev/apierr/classify"
	"dirpx.dev/apierr/fault"
	"dirpx.dev/apierr/logx"
	"dirpx.dev/apierr/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

const domain = "theatre.example.com"

var info = &grpc.UnaryServerInfo{FullMethod: "/theatre.v1.Shows/Book"}

func newInterceptor(t *testing.T) (grpc.UnaryServerInterceptor, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	adv := advice.New(classify.New(nil), logx.NewZapLogger(zap.New(core)))
	return UnaryServerInterceptor(adv, mapper.MustNew(), domain), logs
}

func incoming(kv ...string) context.Context {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(kv...))
	return peer.NewContext(ctx, &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 7), Port: 5555}})
}

func failing(err error) grpc.UnaryHandler {
	return func(context.Context, any) (any, error) { return nil, err }
}

func TestInterceptor_Success(t *testing.T) {
	ic, logs := newInterceptor(t)
	resp, err := ic(incoming(), "req", info, func(_ context.Context, req any) (any, error) {
		return req.(string) + "-ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "req-ok", resp)
	assert.Zero(t, logs.Len())
}

func TestInterceptor_ConstraintViolation(t *testing.T) {
	ic, logs := newInterceptor(t)
	err := fault.Violate(
		fault.Violation{Field: "seats", In: fault.Body, Rule: "min", Param: "1"},
		fault.Violation{Field: "show", In: fault.Path, Rule: "required"},
	)
	_, got := ic(incoming(MDAcceptLanguage, "fr", MDRequestID, "req-42"), nil, info, failing(err))

	st, ok := status.FromError(got)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "Échec de la validation", st.Message())

	ei, ok := ExtractErrorInfo(got)
	require.True(t, ok)
	assert.Equal(t, "errors-400-validation", ei.GetReason())
	assert.Equal(t, domain, ei.GetDomain())
	assert.Equal(t, "400", ei.GetMetadata()["http_status"])

	br, ok := ExtractBadRequest(got)
	require.True(t, ok)
	require.Len(t, br.GetFieldViolations(), 2)
	assert.Equal(t, "seats", br.GetFieldViolations()[0].GetField())
	assert.Equal(t, "seats doit valoir au moins 1.", br.GetFieldViolations()[0].GetDescription())
	assert.Equal(t, "show", br.GetFieldViolations()[1].GetField())

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-42", logs.All()[0].ContextMap()[logx.FieldRequestID])
}

func TestInterceptor_UnrecognizedIsOpaque(t *testing.T) {
	ic, logs := newInterceptor(t)
	_, got := ic(incoming(), nil, info, failing(errors.New("dial tcp 10.1.2.3:5432: connection refused")))

	st := status.Convert(got)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "Internal Server Error", st.Message())
	assert.NotContains(t, st.Proto().String(), "10.1.2.3")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "/theatre.v1.Shows/Book", fields["path"])
	assert.Equal(t, "10.0.0.7:5555", fields["remote_addr"])
}

func TestInterceptor_Panic(t *testing.T) {
	ic, logs := newInterceptor(t)
	_, got := ic(incoming(), nil, info, func(context.Context, any) (any, error) {
		panic("kaboom")
	})
	assert.Equal(t, codes.Internal, status.Code(got))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "runtime fault", logs.All()[0].Message)
}

func TestInterceptor_ApplicationFault(t *testing.T) {
	ic, _ := newInterceptor(t)
	err := apierr.E(http.StatusConflict, "theatre-409-sold-out", "Sold Out").
		WithMeta("show", "hamlet")
	_, got := ic(incoming(), nil, info, failing(err))

	assert.Equal(t, codes.Aborted, status.Code(got))
	ei, ok := ExtractErrorInfo(got)
	require.True(t, ok)
	assert.Equal(t, "theatre-409-sold-out", ei.GetReason())
	assert.Equal(t, "hamlet", ei.GetMetadata()["show"])
}

func TestInterceptor_StatusErrorsPassThrough(t *testing.T) {
	ic, logs := newInterceptor(t)
	in := status.Error(codes.NotFound, "no such show")
	_, got := ic(incoming(), nil, info, failing(in))
	assert.Equal(t, in, got)
	assert.Zero(t, logs.Len())
}

func TestAuthInterceptor(t *testing.T) {
	auth, err := authx.New([]byte("grpcx-test-secret"))
	require.NoError(t, err)
	ic, logs := newInterceptor(t)
	chain := func(ctx context.Context, h grpc.UnaryHandler) (any, error) {
		return ic(ctx, nil, info, func(ctx context.Context, req any) (any, error) {
			return UnaryAuthInterceptor(auth)(ctx, req, info, h)
		})
	}

	t.Run("missing", func(t *testing.T) {
		_, got := chain(incoming(), failing(nil))
		assert.Equal(t, codes.Unauthenticated, status.Code(got))
		ei, ok := ExtractErrorInfo(got)
		require.True(t, ok)
		assert.Equal(t, "errors-401-auth", ei.GetReason())
	})

	t.Run("rejected", func(t *testing.T) {
		_, got := chain(incoming(MDAuthorization, "Bearer not.a.token"), failing(nil))
		assert.Equal(t, codes.PermissionDenied, status.Code(got))
	})

	token, err := auth.Issue("user-9", time.Minute)
	require.NoError(t, err)

	t.Run("claims", func(t *testing.T) {
		resp, got := chain(incoming(MDAuthorization, "Bearer "+token), func(ctx context.Context, _ any) (any, error) {
			claims, ok := authx.ClaimsFrom(ctx)
			require.True(t, ok)
			return claims.Subject, nil
		})
		require.NoError(t, got)
		assert.Equal(t, "user-9", resp)
	})

	t.Run("principal logged on denial", func(t *testing.T) {
		before := logs.Len()
		_, got := chain(incoming(MDAuthorization, "Bearer "+token), func(ctx context.Context, _ any) (any, error) {
			claims, _ := authx.ClaimsFrom(ctx)
			return nil, authx.RequireRole(claims, "admin")
		})
		assert.Equal(t, codes.PermissionDenied, status.Code(got))
		require.Equal(t, before+1, logs.Len())
		entry := logs.All()[before]
		assert.Equal(t, "user denied access", entry.Message)
		assert.Equal(t, "user-9", entry.ContextMap()["principal"])
	})
}

func TestRequestFrom(t *testing.T) {
	req := RequestFrom(incoming(MDAuthorization, "Bearer x", MDAcceptLanguage, "fr-CA", MDRequestID, "r-1"), info.FullMethod)
	assert.Equal(t, classify.Request{
		Method:         "POST",
		Path:           "/theatre.v1.Shows/Book",
		RemoteAddr:     "10.0.0.7:5555",
		Authorization:  "Bearer x",
		AcceptLanguage: "fr-CA",
		RequestID:      "r-1",
	}, req)

	assert.Equal(t, classify.Request{Method: "POST"}, RequestFrom(context.Background(), ""))
}

func TestExtract_NonStatus(t *testing.T) {
	_, ok := ExtractErrorInfo(errors.New("plain"))
	assert.False(t, ok)
	_, ok = ExtractErrorInfo(nil)
	assert.False(t, ok)
	_, ok = ExtractBadRequest(status.Error(codes.Internal, "x"))
	assert.False(t, ok)
}
