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

// Package advice is the single dispatch point for faults raised while
// handling a request: it classifies the fault, logs it exactly once and
// hands the classified result back to the transport glue for writing.
package advice

import (
	"context"

	"dirpx.dev/apierr/classify"
	"dirpx.dev/apierr/logx"
	"go.uber.org/zap"
)

// Advice is stateless apart from its immutable collaborators and may be
// shared by any number of concurrent requests.
type Advice struct {
	classifier *classify.Classifier
	log        logx.Logger
}

// New returns an Advice. A nil classifier uses the baseline policy and a
// nil logger discards records.
func New(c *classify.Classifier, l logx.Logger) *Advice {
	if c == nil {
		c = classify.New(nil)
	}
	if l == nil {
		l = logx.Nop()
	}
	return &Advice{classifier: c, log: l}
}

// Classifier returns the classifier in use.
func (a *Advice) Classifier() *classify.Classifier { return a.classifier }

// Handle converts err into the classified fault to respond with and emits
// its log record. It never panics on behalf of a logging sink.
//
// A panic inside classification is a bug in the rule table or in an
// apis.EntryProvider. It is reported through DPanic and a static 500 is
// returned. With a development logger DPanic panics, so the panic escapes
// Handle and nothing is written. Callers that must always answer recover
// around Handle themselves. The httpx, ginx and grpcx glue does not, so the
// bug surfaces while developing.
func (a *Advice) Handle(ctx context.Context, err error, cx classify.Context) classify.Classified {
	out, r := a.classify(err, cx)
	if r != nil {
		a.logger(ctx).DPanic("error classification failed",
			append([]zap.Field{zap.Any("panic", r)}, logx.ErrorFields(err)...)...)
		return out
	}
	a.emit(ctx, out.Log)
	return out
}

// classify runs the classifier. On panic it returns the static
// classification together with the recovered value.
func (a *Advice) classify(err error, cx classify.Context) (out classify.Classified, r any) {
	defer func() {
		if r = recover(); r != nil {
			out = classify.Internal()
			out.Err = err
		}
	}()
	return a.classifier.Classify(err, cx), nil
}

func (a *Advice) emit(ctx context.Context, rec classify.Record) {
	defer func() {
		// sink failures are dropped
		_ = recover()
	}()
	logx.Log(a.logger(ctx), rec.Level, rec.Msg, rec.Fields...)
}

func (a *Advice) logger(ctx context.Context) logx.Logger {
	if ctx == nil {
		return a.log
	}
	return a.log.WithContext(ctx)
}
