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
)

// Logger is the minimal structured logger the error layer writes to.
//
// It deliberately mirrors a subset of *zap.Logger so that the adapter stays
// trivial, and carries request-scoped fields through WithContext.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	// DPanic logs at DPanicLevel; development loggers panic afterwards.
	DPanic(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}
