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

package classify

import (
	"net/http"

	"dirpx.dev/apierr/apis"
	"dirpx.dev/apierr/code"
	"dirpx.dev/apierr/envelope"
	"dirpx.dev/apierr/locale"
	"dirpx.dev/apierr/logx"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// MetaLocale is the meta key of the resolved response language.
const MetaLocale = "locale"

// Classifier turns faults into Classified values. It is immutable after New
// and safe for concurrent use.
type Classifier struct {
	resolver   apis.Resolver
	prefix     string
	assignIDs  bool
	localeMeta bool
	meta       map[string]any
	locale     language.Tag
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithKeyPrefix sets the catalog key prefix, e.g. "movie-theatre" for keys
// like "movie-theatre-401-auth". The default is code.DefaultPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(c *Classifier) {
		if p := code.Normalize(prefix); p != "" {
			c.prefix = p
		}
	}
}

// WithRequestIDs makes every entry carry the request id, taken from
// Request.RequestID or generated when absent. A client-supplied id is only
// echoed when validRequestID accepts it; anything else gets a fresh UUID.
func WithRequestIDs() Option {
	return func(c *Classifier) { c.assignIDs = true }
}

// WithLocaleMeta adds the resolved response language to every entry's meta.
func WithLocaleMeta() Option {
	return func(c *Classifier) { c.localeMeta = true }
}

// WithMeta adds static meta to every entry. The map is copied.
func WithMeta(meta map[string]any) Option {
	return func(c *Classifier) { c.meta = envelope.MergeMeta(c.meta, meta) }
}

// WithDefaultLocale sets the language used when a request states no
// preference. Without it the resolver's own default applies.
func WithDefaultLocale(tag language.Tag) Option {
	return func(c *Classifier) { c.locale = tag }
}

// New returns a Classifier resolving messages through r. A nil resolver
// falls back to the built-in baseline catalog.
func New(r apis.Resolver, opts ...Option) *Classifier {
	if r == nil {
		r = locale.Baseline(language.English)
	}
	c := &Classifier{resolver: r, prefix: code.DefaultPrefix}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Prefix returns the catalog key prefix.
func (c *Classifier) Prefix() string { return c.prefix }

// Classify maps err to a Classified value. It is total: every error,
// including nil, matches exactly one rule.
func (c *Classifier) Classify(err error, cx Context) Classified {
	s := c.newScope(err, cx)
	for _, r := range rules {
		out, ok := r.build(s)
		if !ok {
			continue
		}
		out.Category = r.category
		return c.finish(s, out)
	}
	// the catch-all rule always matches
	panic("classify: no rule matched")
}

// scope carries what every rule needs for one fault.
type scope struct {
	c      *Classifier
	err    error
	req    Request
	tag    language.Tag
	prefix string
}

func (c *Classifier) newScope(err error, cx Context) *scope {
	s := &scope{c: c, err: err, req: cx.Request, tag: cx.Locale, prefix: c.prefix}
	if p := code.Normalize(cx.KeyPrefix); p != "" {
		s.prefix = p
	}
	if s.tag == language.Und {
		switch {
		case cx.Request.AcceptLanguage != "":
			s.tag = c.resolver.Negotiate(cx.Request.AcceptLanguage)
		case c.locale != language.Und:
			s.tag = c.locale
		default:
			s.tag = c.resolver.Negotiate("")
		}
	}
	return s
}

func (s *scope) key(status int, suffix string) code.Code {
	return code.Key(s.prefix, status, suffix)
}

func (s *scope) resolve(key, fallback string) string {
	return s.c.resolver.Resolve(key, s.tag, fallback)
}

// generic is the entry of every 5xx fault the raiser did not describe.
func (s *scope) generic() envelope.Entry {
	k := s.key(http.StatusInternalServerError, code.Internal)
	return envelope.NewBuilder().
		Code(string(k)).
		Title(s.resolve(string(k), defaultInternalTitle)).
		Detail(s.resolve(k.Detail(), defaultInternalDetail)).
		Build()
}

func (c *Classifier) finish(s *scope, out Classified) Classified {
	out.Locale = s.tag
	out.Err = s.err

	var id string
	if c.assignIDs {
		id = s.req.RequestID
		if !validRequestID(id) {
			id = uuid.NewString()
		}
	}
	meta := c.meta
	if c.localeMeta {
		meta = envelope.MergeMeta(meta, map[string]any{MetaLocale: s.tag.String()})
	}
	for i, e := range out.Entries {
		if id != "" {
			e = e.WithID(id)
		}
		if len(meta) > 0 {
			// the entry's own meta wins over classifier-level meta
			e.Meta = envelope.MergeMeta(meta, e.Meta)
		}
		out.Entries[i] = e
	}

	fields := make([]zap.Field, 0, len(out.Log.Fields)+3)
	fields = append(fields,
		zap.String("category", out.Category.String()),
		zap.Int("status", out.Status),
	)
	if id == "" {
		id = s.req.RequestID
	}
	if id != "" {
		fields = append(fields, zap.String(logx.FieldRequestID, id))
	}
	out.Log.Fields = append(fields, out.Log.Fields...)
	return out
}

const (
	defaultInternalTitle  = "Internal Server Error"
	defaultInternalDetail = "An unexpected error occurred."
)

// Internal returns the static classification used when classification
// itself cannot run. It touches neither the catalog nor the request.
func Internal() Classified {
	return Classified{
		Status:   http.StatusInternalServerError,
		Category: Unrecognized,
		Entries: []envelope.Entry{{
			Code:   string(code.Key(code.DefaultPrefix, http.StatusInternalServerError, code.Internal)),
			Title:  defaultInternalTitle,
			Detail: defaultInternalDetail,
		}},
		Locale: language.Und,
	}
}

// maxRequestIDLen bounds a client-supplied request id echoed into entries.
const maxRequestIDLen = 64

// validRequestID reports whether id is short and drawn from
// [A-Za-z0-9._:-], so that echoing it back cannot carry markup or padding.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == ':', c == '-':
		default:
			return false
		}
	}
	return true
}
