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
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var baseline embed.FS

// Baseline returns a Catalog holding the built-in messages of the baseline
// policy (prefix "errors") with def as default language.
func Baseline(def language.Tag) *Catalog {
	msgs, err := readDir(baseline, "messages")
	if err != nil {
		// embedded files are fixed at build time
		panic(fmt.Sprintf("locale: broken baseline catalog: %v", err))
	}
	return New(def, msgs)
}

// Load reads every "<bcp47>.yaml" (or ".yml") file in dir of fsys into a
// Catalog. Files for the same language are merged, later files winning.
func Load(fsys fs.FS, dir string, def language.Tag) (*Catalog, error) {
	msgs, err := readDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	return New(def, msgs), nil
}

// LoadDir layers the catalog files found in dir on top of the baseline
// messages. An empty dir returns the baseline alone.
func LoadDir(dir string, def language.Tag) (*Catalog, error) {
	msgs, err := readDir(baseline, "messages")
	if err != nil {
		return nil, err
	}
	if dir != "" {
		extra, err := readDir(os.DirFS(dir), ".")
		if err != nil {
			return nil, err
		}
		for tag, m := range extra {
			merged := msgs[tag]
			if merged == nil {
				merged = make(Messages, len(m))
				msgs[tag] = merged
			}
			for k, v := range m {
				merged[k] = v
			}
		}
	}
	return New(def, msgs), nil
}

func readDir(fsys fs.FS, dir string) (map[language.Tag]Messages, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("locale: read catalog dir %q: %w", dir, err)
	}
	out := make(map[language.Tag]Messages, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := path.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(name, ext))
		if err != nil {
			return nil, fmt.Errorf("locale: catalog file %q is not named after a language tag: %w", name, err)
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("locale: read %q: %w", name, err)
		}
		m, err := parse(raw)
		if err != nil {
			return nil, fmt.Errorf("locale: parse %q: %w", name, err)
		}
		if out[tag] == nil {
			out[tag] = make(Messages, len(m))
		}
		for k, v := range m {
			out[tag][k] = v
		}
	}
	return out, nil
}

// parse decodes a YAML document into flat messages. Nested mappings are
// joined with "." so that
//
//	errors-400-validation:
//	  required: "{field} is required"
//
// yields the key "errors-400-validation.required".
func parse(raw []byte) (Messages, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	out := make(Messages)
	flatten(out, "", doc)
	return out, nil
}

func flatten(out Messages, prefix string, node map[string]any) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch tv := v.(type) {
		case map[string]any:
			flatten(out, key, tv)
		case nil:
			// "key:" with no value carries no message
		case string:
			out[key] = tv
		default:
			out[key] = fmt.Sprint(tv)
		}
	}
}
