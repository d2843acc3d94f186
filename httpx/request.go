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
	"net/http"

	"dirpx.dev/apierr/classify"
)

// DefaultRequestIDHeader is the header a request id is read from.
const DefaultRequestIDHeader = "X-Request-ID"

// RequestFrom extracts the classification input from r. idHeader names the
// request id header; empty means DefaultRequestIDHeader.
func RequestFrom(r *http.Request, idHeader string) classify.Request {
	if r == nil {
		return classify.Request{}
	}
	if idHeader == "" {
		idHeader = DefaultRequestIDHeader
	}
	out := classify.Request{
		Method:         r.Method,
		RemoteAddr:     r.RemoteAddr,
		Authorization:  r.Header.Get("Authorization"),
		AcceptLanguage: r.Header.Get("Accept-Language"),
		RequestID:      r.Header.Get(idHeader),
	}
	if r.URL != nil {
		out.Path = r.URL.Path
	}
	return out
}
