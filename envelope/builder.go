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

package envelope

// Builder assembles an Entry step by step.
//
// Meta calls are additive: the first non-empty map is held by reference and
// every later call merges into a private copy. The caller's map is therefore
// never written to, even when it is shared with other builders.
type Builder struct {
	e      Entry
	shared bool // e.Meta still aliases a caller-provided map
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// ID sets the occurrence id.
func (b *Builder) ID(id string) *Builder {
	b.e.ID = id
	return b
}

// Code sets the machine-readable code.
func (b *Builder) Code(code string) *Builder {
	b.e.Code = code
	return b
}

// Title sets the short summary.
func (b *Builder) Title(title string) *Builder {
	b.e.Title = title
	return b
}

// Detail sets the occurrence explanation.
func (b *Builder) Detail(detail string) *Builder {
	b.e.Detail = detail
	return b
}

// Source sets a copy of src; a zero source clears it.
func (b *Builder) Source(src *Source) *Builder {
	b.e = b.e.WithSource(src)
	return b
}

// Meta merges data into the metadata gathered so far. Nil and empty maps
// are ignored.
func (b *Builder) Meta(data map[string]any) *Builder {
	if len(data) == 0 {
		return b
	}
	if b.e.Meta == nil {
		b.e.Meta = data
		b.shared = true
		return b
	}
	if b.shared {
		b.e.Meta = MergeMeta(b.e.Meta, nil)
		b.shared = false
	}
	for k, v := range data {
		b.e.Meta[k] = v
	}
	return b
}

// Build returns the assembled Entry. The returned value owns its metadata
// map; further builder calls do not affect it.
func (b *Builder) Build() Entry {
	e := b.e
	e.Meta = MergeMeta(e.Meta, nil)
	return e
}
