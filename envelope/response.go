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

import jsoniter "github.com/json-iterator/go"

// Response is the top-level error document. It is created per request and
// never stored.
type Response struct {
	Errors []Entry `json:"errors" msgpack:"errors"`
}

// NewResponse wraps entries into a Response. The slice is copied.
func NewResponse(entries ...Entry) Response {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return Response{Errors: out}
}

// MarshalJSON keeps "errors" an array even when the response is empty.
func (r Response) MarshalJSON() ([]byte, error) {
	type plain Response
	if r.Errors == nil {
		r.Errors = []Entry{}
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(plain(r))
}
