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

// Package classify maps faults to client-facing error entries.
//
// A Classifier evaluates an ordered rule table, first match wins:
//
//	1. application fault (apis.EntryProvider, e.g. *apierr.Error)  raiser's status
//	2. malformed input (unparsable body)                           400
//	3. missing credentials                                          401
//	4. access denied / authentication rejected                      403
//	5. constraint violations, one entry per violation               400
//	6. recognized runtime fault (panic, runtime.Error, stack)       500
//	7. anything else                                                500
//
// Statuses are fixed per category. Titles and details come from the message
// catalog under keys built by code.Key, so a service only supplies
// translations. Raw fault text never reaches 401, 403 or 5xx entries; it
// goes to the log record returned alongside the entries.
package classify
