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

package locale

import (
	"sort"

	"dirpx.dev/apierr/apis"
	"golang.org/x/text/language"
)

// Messages maps catalog keys to localized strings for one language.
type Messages map[string]string

// Catalog is an immutable, locale-indexed message store.
//
// It is built once at start-up and only read afterwards, so a single
// Catalog can serve any number of concurrent requests without locking.
type Catalog struct {
	def     language.Tag
	tags    []language.Tag // supported tags, default first
	matcher language.Matcher
	msgs    map[language.Tag]Messages
}

var _ apis.Resolver = (*Catalog)(nil)

// New builds a Catalog from per-language messages. The input maps are
// copied; later changes by the caller are not observed. The default tag is
// always supported, even when it has no messages.
func New(def language.Tag, messages map[language.Tag]Messages) *Catalog {
	c := &Catalog{
		def:  def,
		msgs: make(map[language.Tag]Messages, len(messages)+1),
	}
	for tag, m := range messages {
		cp := make(Messages, len(m))
		for k, v := range m {
			cp[k] = v
		}
		c.msgs[tag] = cp
	}

	others := make([]language.Tag, 0, len(c.msgs))
	for tag := range c.msgs {
		if tag != def {
			others = append(others, tag)
		}
	}
	// map order is random; keep the matcher deterministic
	sort.Slice(others, func(i, j int) bool { return others[i].String() < others[j].String() })
	c.tags = append([]language.Tag{def}, others...)
	c.matcher = language.NewMatcher(c.tags)
	return c
}

// Resolve returns the message stored under key for tag.
//
// Lookup order:
//
//  1. tag itself, then its parents ("fr-CA" -> "fr");
//  2. the default language of the catalog;
//  3. fallback, when non-empty;
//  4. key itself.
//
// Resolve never fails. A missing translation shows up as the fallback or as
// the raw key, which keeps the gap visible without breaking the error path.
func (c *Catalog) Resolve(key string, tag language.Tag, fallback string) string {
	if c != nil && key != "" {
		for t := tag; ; t = t.Parent() {
			if s, ok := c.msgs[t][key]; ok {
				return s
			}
			if t.IsRoot() {
				break
			}
		}
		if s, ok := c.msgs[c.def][key]; ok {
			return s
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}

// Negotiate picks the best supported language for an Accept-Language header
// value. Unparsable or unmatched input yields the default language.
func (c *Catalog) Negotiate(acceptLanguage string) language.Tag {
	if c == nil {
		return language.Und
	}
	if acceptLanguage == "" {
		return c.def
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return c.def
	}
	_, idx, conf := c.matcher.Match(prefs...)
	if conf == language.No {
		return c.def
	}
	return c.tags[idx]
}

// Default returns the default language of the catalog.
func (c *Catalog) Default() language.Tag {
	if c == nil {
		return language.Und
	}
	return c.def
}

// Languages returns the supported languages, default first.
func (c *Catalog) Languages() []language.Tag {
	if c == nil {
		return nil
	}
	out := make([]language.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}
