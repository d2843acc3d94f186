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

// Package ginx plugs the fault dispatcher into gin.
//
// Register Errors first so that it sees the errors and panics of every
// later handler:
//
//	r := gin.New()
//	r.Use(ginx.Errors(adv))
//	r.POST("/bookings", func(c *gin.Context) {
//	    var in booking
//	    if err := ginx.BindJSON(c, &in); err != nil {
//	        _ = c.Error(err)
//	        return
//	    }
//	    ...
//	})
package ginx

import (
	"net/http"

	"dirpx.dev/apierr/advice"
	"dirpx.dev/apierr/classify"
	"dirpx.dev/apierr/fault"
	"dirpx.dev/apierr/httpx"
	"dirpx.dev/apierr/logx"
	"github.com/gin-gonic/gin"
)

type config struct {
	writer   httpx.Writer
	idHeader string
}

// Option configures the Errors middleware.
type Option func(*config)

// WithWriter replaces the envelope writer.
func WithWriter(w httpx.Writer) Option {
	return func(c *config) { c.writer = w }
}

// WithRequestIDHeader sets the header request ids are read from.
func WithRequestIDHeader(name string) Option {
	return func(c *config) {
		if name != "" {
			c.idHeader = name
		}
	}
}

// Errors returns a middleware that reports the last error recorded on the
// gin context, or a recovered panic, through adv. Nothing is written when
// the handler already wrote a response; the fault is still logged.
func Errors(adv *advice.Advice, opts ...Option) gin.HandlerFunc {
	cfg := config{idHeader: httpx.DefaultRequestIDHeader}
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				respond(c, adv, cfg, fault.Recovered(v))
			}
		}()
		c.Next()
		if last := c.Errors.Last(); last != nil {
			respond(c, adv, cfg, last.Err)
		}
	}
}

func respond(c *gin.Context, adv *advice.Advice, cfg config, err error) {
	req := httpx.RequestFrom(c.Request, cfg.idHeader)
	if claims, ok := Claims(c); ok {
		req.Principal = claims.Subject
	}
	ctx := c.Request.Context()
	if req.RequestID != "" {
		ctx = logx.WithRequestID(ctx, req.RequestID)
	}

	out := adv.Handle(ctx, err, classify.Context{Request: req})
	c.Abort()
	if c.Writer.Written() {
		return
	}
	cfg.writer.Write(c.Writer, c.Request, out)
}
