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

package fault

import (
	"errors"
	"reflect"
	"strings"

	"dirpx.dev/apierr/envelope"
	"github.com/go-playground/validator/v10"
)

// Location says which part of the request a violated field belongs to.
type Location string

const (
	Body   Location = "body"
	Query  Location = "query"
	Path   Location = "path"
	Header Location = "header"
)

// Violation is a single failed constraint.
type Violation struct {
	// Field is the dot-separated path of the field, e.g. "address.city" or
	// "items.0.sku" for body fields, or the parameter/header name.
	Field string
	In    Location
	// Rule is the violated constraint, e.g. "required", "email", "min".
	Rule string
	// Param is the constraint parameter, e.g. "3" for min=3.
	Param string
	// Message is the raw validator message. It is logged, never sent.
	Message string
}

// Source returns the envelope source for v.
func (v Violation) Source() *envelope.Source {
	switch v.In {
	case Query, Path:
		return envelope.Parameter(v.Field)
	case Header:
		return envelope.Header(v.Field)
	default:
		return envelope.Pointer(v.Field)
	}
}

// ConstraintViolation reports one or more failed constraints, in the order
// they were found.
type ConstraintViolation struct {
	Violations []Violation
}

// Violate builds a ConstraintViolation from individual violations.
func Violate(vs ...Violation) *ConstraintViolation {
	out := make([]Violation, len(vs))
	copy(out, vs)
	return &ConstraintViolation{Violations: out}
}

func (e *ConstraintViolation) Error() string {
	var b strings.Builder
	b.WriteString("constraint violation")
	for i, v := range e.Violations {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(v.Field)
		b.WriteString(" ")
		b.WriteString(v.Rule)
		if v.Param != "" {
			b.WriteString("=")
			b.WriteString(v.Param)
		}
	}
	return b.String()
}

// FromValidator converts validator output into a ConstraintViolation. Errors
// that are not validator.ValidationErrors are returned unchanged.
func FromValidator(err error, in Location) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return FromValidationErrors(verrs, in)
}

// FromValidationErrors converts validator field errors into violations. The
// root struct name is dropped from each namespace and slice indexes become
// path segments: "signup.items[0].sku" -> "items.0.sku".
func FromValidationErrors(verrs validator.ValidationErrors, in Location) *ConstraintViolation {
	vs := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		vs = append(vs, Violation{
			Field:   fieldPath(fe),
			In:      in,
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: fe.Error(),
		})
	}
	return &ConstraintViolation{Violations: vs}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	} else {
		ns = fe.Field()
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

// JSONFieldName reports the JSON name of a struct field, for use with
// (*validator.Validate).RegisterTagNameFunc. Fields without a json tag keep
// their Go name; "-" hides the field.
func JSONFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}
