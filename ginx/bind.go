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

package ginx

import (
	"errors"

	"dirpx.dev/apierr/fault"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// UseJSONFieldNames makes gin's validator report JSON field names, so that
// violation sources read "/address/city" rather than "/Address/City". It
// changes the process-wide binding.Validator.
func UseJSONFieldNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fault.JSONFieldName)
	}
}

// BindJSON decodes and validates the JSON body into v. Decoding failures are
// returned as *fault.NotReadable and validation failures as
// *fault.ConstraintViolation located in the body.
func BindJSON(c *gin.Context, v any) error {
	return bind(c.ShouldBindJSON(v), fault.Body)
}

// BindQuery decodes and validates query parameters into v.
func BindQuery(c *gin.Context, v any) error {
	return bind(c.ShouldBindQuery(v), fault.Query)
}

// BindURI decodes and validates path parameters into v.
func BindURI(c *gin.Context, v any) error {
	return bind(c.ShouldBindUri(v), fault.Path)
}

func bind(err error, in fault.Location) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fault.FromValidationErrors(verrs, in)
	}
	return fault.NewNotReadable(err)
}
