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
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedactAuthorization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Bearer abc", "Bearer abc"},
		{"Bearer 0123456789abc", "Bearer 0123456789abc"}, // exactly 20
		{"Bearer 0123456789abcd", "Bearer 0123456789abc..."},
		{"Bearer eyJhbGciOiJIUzI1NiJ9.e30.sig", "Bearer eyJhbGciOiJIU..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RedactAuthorization(tt.in), tt.in)
	}
}

func TestErrorFields(t *testing.T) {
	root := pkgerrors.New("connection refused")
	err := fmt.Errorf("load user: %w", root)

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range ErrorFields(err) {
		f.AddTo(enc)
	}
	assert.Equal(t, "load user: connection refused", enc.Fields["error"])
	assert.Equal(t, "*fmt.wrapError", enc.Fields["error_type"])
	assert.Contains(t, enc.Fields["stack"], "TestErrorFields")
	assert.NotEmpty(t, enc.Fields["cause_chain"])

	assert.Nil(t, ErrorFields(nil))
}

func TestErrorFields_NoStack(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range ErrorFields(errors.New("plain")) {
		f.AddTo(enc)
	}
	_, hasStack := enc.Fields["stack"]
	_, hasChain := enc.Fields["cause_chain"]
	assert.False(t, hasStack)
	assert.False(t, hasChain)
}

func TestCauseChain_FollowsPkgErrorsCause(t *testing.T) {
	root := errors.New("root")
	err := pkgerrors.Wrap(pkgerrors.WithMessage(root, "middle"), "top")
	chain := CauseChain(err)
	require.NotEmpty(t, chain)
	assert.True(t, strings.HasSuffix(chain[len(chain)-1], "root"))
}

func TestZapLogger_WithContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))

	ctx := WithRequestID(context.Background(), "req-1")
	l.WithContext(ctx).Info("hello")
	l.WithContext(context.Background()).Info("plain")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "req-1", logs.All()[0].ContextMap()[FieldRequestID])
	_, ok := logs.All()[1].ContextMap()[FieldRequestID]
	assert.False(t, ok)
}

func TestLog_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))

	Log(l, zapcore.DebugLevel, "d")
	Log(l, zapcore.InfoLevel, "i")
	Log(l, zapcore.WarnLevel, "w")
	Log(l, zapcore.ErrorLevel, "e")
	Log(l, zapcore.FatalLevel, "capped")

	var got []zapcore.Level
	for _, e := range logs.All() {
		got = append(got, e.Level)
	}
	assert.Equal(t, []zapcore.Level{
		zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel, zapcore.ErrorLevel,
	}, got)
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("discarded")
	l.WithContext(context.Background()).Error("discarded")
}

func TestNew_WritesJSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "apierr.log")
	devnull := zapcore.AddSync(&strings.Builder{})
	l := newLogger(Config{Name: "test", Level: zapcore.InfoLevel, File: file}, devnull)
	l.Info("written", zap.String("k", "v"))
	l.Debug("filtered")
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"written"`)
	assert.Contains(t, string(raw), `"logger":"test"`)
	assert.NotContains(t, string(raw), "filtered")
}
