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

// Package envelope defines the wire format of client-facing errors.
//
// The shape follows JSON:API error objects:
//
//	{"errors": [{"id": "...", "code": "...", "title": "...", "detail": "...",
//	             "source": {"pointer": "/name"}, "meta": {"locale": "en"}}]}
//
// Every field is optional and empty values are omitted from the output
// entirely: there are no nulls and no empty objects on the wire.
//
// Entries are values. Nothing in this package mutates a map that was handed
// to it; metadata merges always produce a new map. This makes it safe to
// share a single Entry (or a metadata map) between goroutines and requests.
package envelope
