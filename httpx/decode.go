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

package httpx

import (
	"io"
	"net/http"

	"dirpx.dev/apierr/fault"
)

// DefaultMaxBodyBytes bounds request bodies read by DecodeJSON.
const DefaultMaxBodyBytes int64 = 1 << 20

// DecodeJSON decodes the JSON body of r into v, reading at most maxBytes
// (DefaultMaxBodyBytes when not positive). Any failure, including an
// oversized or empty body, is returned as *fault.NotReadable.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	if r.Body == nil {
		return fault.NewNotReadable(io.EOF)
	}
	body := http.MaxBytesReader(w, r.Body, maxBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fault.NewNotReadable(err)
	}
	return nil
}
