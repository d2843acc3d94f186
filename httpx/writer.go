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
	"mime"
	"net/http"
	"strings"

	"dirpx.dev/apierr/classify"
	"dirpx.dev/apierr/envelope"
	jsoniter "github.com/json-iterator/go"
	"github.com/vmihailenco/msgpack"
)

// Media types the Writer can produce.
const (
	MediaTypeJSONAPI = "application/vnd.api+json"
	MediaTypeJSON    = "application/json"
	MediaTypeMsgpack = "application/msgpack"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Writer writes classified faults as error envelopes. JSON:API is the
// default; clients that accept application/msgpack get MessagePack.
type Writer struct {
	// ContentType overrides the JSON media type, e.g. MediaTypeJSON for
	// clients that do not know application/vnd.api+json.
	ContentType string
}

// Write serializes the envelope of c with the status of c. If the envelope
// cannot be encoded, a static 500 envelope is written instead.
func (w Writer) Write(rw http.ResponseWriter, r *http.Request, c classify.Classified) {
	status := c.Status
	ct, body, err := w.encode(r, c.Response())
	if err != nil {
		fallback := classify.Internal()
		status = fallback.Status
		ct, body, _ = w.encode(r, fallback.Response())
	}

	h := rw.Header()
	h.Set("Content-Type", ct)
	h.Set("X-Content-Type-Options", "nosniff")
	h.Del("Content-Length")
	rw.WriteHeader(status)
	if r != nil && r.Method == http.MethodHead {
		return
	}
	_, _ = rw.Write(body)
}

func (w Writer) encode(r *http.Request, resp envelope.Response) (string, []byte, error) {
	if r != nil && acceptsMsgpack(r.Header.Get("Accept")) {
		b, err := msgpack.Marshal(resp)
		return MediaTypeMsgpack, b, err
	}
	ct := w.ContentType
	if ct == "" {
		ct = MediaTypeJSONAPI
	}
	b, err := json.Marshal(resp)
	return ct, b, err
}

// acceptsMsgpack reports whether the Accept header lists a MessagePack media
// type with a non-zero quality.
func acceptsMsgpack(accept string) bool {
	if accept == "" {
		return false
	}
	for _, part := range strings.Split(accept, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if mt != MediaTypeMsgpack && mt != "application/x-msgpack" {
			continue
		}
		if q := params["q"]; q == "0" || q == "0.0" || q == "0.00" || q == "0.000" {
			continue
		}
		return true
	}
	return false
}
