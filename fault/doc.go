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

// Package fault declares the framework-level faults the classifier knows
// how to report: unreadable request bodies, missing or rejected
// credentials, denied access, constraint violations and recovered panics.
//
// Transport glue and authenticators raise these values; handler code raises
// apierr.Error instead. Every fault type wraps its cause, so errors.As keeps
// working across layers, and none of them is ever serialized as is: the
// classifier decides what a client may see.
package fault
