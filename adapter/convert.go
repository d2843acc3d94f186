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

package adapter

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dirpx.dev/apierr/apis"
	"dirpx.dev/apierr/classify"
	"dirpx.dev/apierr/envelope"
	"dirpx.dev/apierr/mapper"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"
)

// Metadata keys set on errdetails.ErrorInfo besides the entry meta.
const (
	MetaHTTPStatus = "http_status"
	MetaID         = "id"
)

var defaultMapper = mapper.MustNew()

// ToStatus converts a classified fault into a gRPC status.
//
// The status code comes from m (library defaults when nil). The message is
// the title of the first entry. Details carry, in order:
//
//   - one errdetails.ErrorInfo (Reason = entry code, Domain = domain);
//   - one errdetails.LocalizedMessage with the first entry's detail;
//   - one errdetails.BadRequest when any entry has a source.
//
// If the details cannot be attached the bare status is returned.
func ToStatus(c classify.Classified, m apis.Mapper, domain string) *status.Status {
	if m == nil {
		m = defaultMapper
	}
	base := status.New(m.GRPCCode(c.Status), message(c))
	details := ToDetails(c, domain)
	if len(details) == 0 {
		return base
	}
	with, err := base.WithDetails(details...)
	if err != nil {
		return base
	}
	return with
}

// ToDetails returns the errdetails messages describing c.
func ToDetails(c classify.Classified, domain string) []protoadapt.MessageV1 {
	if len(c.Entries) == 0 {
		return nil
	}
	first := c.Entries[0]
	out := make([]protoadapt.MessageV1, 0, 3)

	out = append(out, &errdetails.ErrorInfo{
		Reason:   first.Code,
		Domain:   domain,
		Metadata: metadata(c.Status, first),
	})

	if msg := firstNonEmpty(first.Detail, first.Title); msg != "" {
		out = append(out, &errdetails.LocalizedMessage{
			Locale:  c.Locale.String(),
			Message: msg,
		})
	}

	var violations []*errdetails.BadRequest_FieldViolation
	for _, e := range c.Entries {
		if e.Source.IsZero() {
			continue
		}
		violations = append(violations, &errdetails.BadRequest_FieldViolation{
			Field:       FieldOf(e.Source),
			Description: firstNonEmpty(e.Detail, e.Title),
		})
	}
	if len(violations) > 0 {
		out = append(out, &errdetails.BadRequest{FieldViolations: violations})
	}
	return out
}

// FieldOf renders a source as a field path: body pointers use "." as
// separator ("/address/city" -> "address.city"), parameters and headers are
// returned as named.
func FieldOf(s *envelope.Source) string {
	switch {
	case s.IsZero():
		return ""
	case s.Pointer != "":
		return strings.ReplaceAll(strings.TrimPrefix(s.Pointer, "/"), "/", ".")
	case s.Parameter != "":
		return s.Parameter
	default:
		return s.Header
	}
}

func message(c classify.Classified) string {
	if len(c.Entries) > 0 && c.Entries[0].Title != "" {
		return c.Entries[0].Title
	}
	return http.StatusText(c.Status)
}

// metadata flattens the entry meta into ErrorInfo metadata. Values are
// rendered with fmt.
func metadata(httpStatus int, e envelope.Entry) map[string]string {
	md := make(map[string]string, len(e.Meta)+2)
	for k, v := range e.Meta {
		md[k] = fmt.Sprint(v)
	}
	md[MetaHTTPStatus] = strconv.Itoa(httpStatus)
	if e.ID != "" {
		md[MetaID] = e.ID
	}
	return md
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
