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

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts *zap.Logger to Logger.
type ZapLogger struct {
	logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// NewZapLogger wraps l. A nil logger discards everything.
func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		return &ZapLogger{logger: zap.NewNop()}
	}
	return &ZapLogger{logger: l}
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return NewZapLogger(nil) }

// WithContext returns a logger that adds the request id stored in ctx.
func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if z == nil {
		return NewZapLogger(nil)
	}
	if ctx == nil {
		return z
	}
	if id, ok := RequestIDFrom(ctx); ok {
		return &ZapLogger{logger: z.logger.With(zap.String(FieldRequestID, id))}
	}
	return z
}

func (z *ZapLogger) Debug(msg string, fields ...zap.Field) {
	z.logger.Debug(msg, fields...)
}

func (z *ZapLogger) Info(msg string, fields ...zap.Field) {
	z.logger.Info(msg, fields...)
}

func (z *ZapLogger) Warn(msg string, fields ...zap.Field) {
	z.logger.Warn(msg, fields...)
}

func (z *ZapLogger) Error(msg string, fields ...zap.Field) {
	z.logger.Error(msg, fields...)
}

func (z *ZapLogger) DPanic(msg string, fields ...zap.Field) {
	z.logger.DPanic(msg, fields...)
}

// Log writes msg at lvl. Levels above ErrorLevel are capped at ErrorLevel
// so that a misconfigured level can never terminate the process.
func Log(l Logger, lvl zapcore.Level, msg string, fields ...zap.Field) {
	switch {
	case lvl <= zapcore.DebugLevel:
		l.Debug(msg, fields...)
	case lvl == zapcore.InfoLevel:
		l.Info(msg, fields...)
	case lvl == zapcore.WarnLevel:
		l.Warn(msg, fields...)
	default:
		l.Error(msg, fields...)
	}
}
