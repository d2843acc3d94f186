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
	"dirpx.dev/apierr/authx"
	"github.com/gin-gonic/gin"
)

const claimsKey = "apierr.claims"

// RequireBearer authenticates the request's bearer token with a. On failure
// the fault is recorded on the context and the chain is aborted; on success
// the claims are available through Claims and authx.ClaimsFrom.
func RequireBearer(a *authx.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Request = c.Request.WithContext(authx.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// RequireRole aborts with an access-denied fault unless the authenticated
// caller has role. It must run after RequireBearer.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := Claims(c)
		if err := authx.RequireRole(claims, role); err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Claims returns the claims stored by RequireBearer.
func Claims(c *gin.Context) (*authx.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*authx.Claims)
	return claims, ok && claims != nil
}
