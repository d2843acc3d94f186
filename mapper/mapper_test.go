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
	"net/http"
	"strings"
	"sync"
	"testing"

	"dirpx.dev/apierr/apis"
	"google.golang.org/grpc/codes"
)

func TestDefaults(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	tests := []struct {
		status int
		want   codes.Code
	}{
		{http.StatusBadRequest, codes.InvalidArgument},
		{http.StatusUnauthorized, codes.Unauthenticated},
		{http.StatusForbidden, codes.PermissionDenied},
		{http.StatusNotFound, codes.NotFound},
		{http.StatusTooManyRequests, codes.ResourceExhausted},
		{http.StatusInternalServerError, codes.Internal},
		{http.StatusServiceUnavailable, codes.Unavailable},
	}
	for _, tt := range tests {
		if got := m.GRPCCode(tt.status); got != tt.want {
			t.Fatalf("GRPCCode(%d) = %v; want %v", tt.status, got, tt.want)
		}
	}
}

func TestClassAndFallback(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.GRPCCode(418); got != codes.FailedPrecondition {
		t.Fatalf("4xx class: got %v, want FailedPrecondition", got)
	}
	if got := m.GRPCCode(507); got != codes.Internal {
		t.Fatalf("5xx class: got %v, want Internal", got)
	}
	if got := m.GRPCCode(200); got != codes.Internal {
		t.Fatalf("fallback: got %v, want Internal", got)
	}

	m2, err := New(WithClass(4, codes.InvalidArgument), WithFallback(codes.Unknown))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m2.GRPCCode(418); got != codes.InvalidArgument {
		t.Fatalf("custom class: got %v", got)
	}
	if got := m2.GRPCCode(302); got != codes.Unknown {
		t.Fatalf("custom fallback: got %v", got)
	}
}

func TestPriority_OverrideOverDefault(t *testing.T) {
	m, err := New(
		WithDefault(http.StatusConflict, codes.Aborted),
		WithOverride(http.StatusConflict, codes.AlreadyExists),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.GRPCCode(http.StatusConflict); got != codes.AlreadyExists {
		t.Fatalf("override must win; got %v", got)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"override 2xx", WithOverride(200, codes.Internal)},
		{"default 600", WithDefault(600, codes.Internal)},
		{"ok code", WithDefault(400, codes.OK)},
		{"unknown code", WithOverride(400, codes.Code(42))},
		{"bad class", WithClass(3, codes.Internal)},
		{"ok fallback", WithFallback(codes.OK)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opt); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustNew(WithClass(9, codes.Internal))
}

func TestExplain_Sources(t *testing.T) {
	m, err := New(WithOverride(http.StatusConflict, codes.AlreadyExists))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tests := []struct {
		status int
		want   string
	}{
		{409, "http=409 source=override -> ALREADYEXISTS(6)"},
		{404, "http=404 source=default -> NOTFOUND(5)"},
		{418, "http=418 source=class -> FAILEDPRECONDITION(9)"},
		{200, "http=200 source=fallback -> INTERNAL(13)"},
	}
	for _, tt := range tests {
		if got := m.Explain(tt.status); got != tt.want {
			t.Fatalf("Explain(%d) = %q; want %q", tt.status, got, tt.want)
		}
		if !strings.HasPrefix(m.Explain(tt.status), "http=") {
			t.Fatalf("unexpected format")
		}
	}
}

func TestImmutability_AfterBuild(t *testing.T) {
	opts := []Option{WithOverride(http.StatusConflict, codes.AlreadyExists)}
	m, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// A later build must not leak into the earlier snapshot.
	if _, err := New(WithOverride(http.StatusConflict, codes.Aborted)); err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.GRPCCode(http.StatusConflict); got != codes.AlreadyExists {
		t.Fatalf("snapshot changed: %v", got)
	}
	if defaultGRPC[http.StatusConflict] != codes.Aborted {
		t.Fatalf("library defaults mutated")
	}
}

func TestConcurrency_GRPCCode(t *testing.T) {
	m, err := New(WithOverride(499, codes.Canceled))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 2000; j++ {
				_ = m.GRPCCode(499)
				_ = m.GRPCCode(404)
				_ = m.Explain(418)
			}
		}()
	}
	wg.Wait()
}

func BenchmarkGRPCCode_Default(b *testing.B) {
	m, _ := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.GRPCCode(http.StatusNotFound)
	}
}

func BenchmarkGRPCCode_Class(b *testing.B) {
	m, _ := New()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.GRPCCode(418)
	}
}

// Ensure mapper implements apis.Mapper
func TestMapper_InterfaceSatisfaction(t *testing.T) {
	var _ apis.Mapper = (*mapper)(nil)
}
