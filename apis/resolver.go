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

package apis

import "golang.org/x/text/language"

// Resolver looks up localized messages by catalog key.
//
// Implementations must be safe for concurrent use and must never fail:
// a missing message resolves to fallback when it is non-empty and to key
// otherwise.
type Resolver interface {
	// Resolve returns the message for key in the best available language
	// for tag.
	Resolve(key string, tag language.Tag, fallback string) string

	// Negotiate picks the best supported language for an Accept-Language
	// header value.
	Negotiate(acceptLanguage string) language.Tag
}
