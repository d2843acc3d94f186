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

// Package code defines the machine-readable codes placed in error entries.
//
// Codes are stable strings such as "errors-401-auth". They are also the keys
// of the message catalog: the localized title of an error is stored under its
// code and the localized detail under "<code>.detail". Keeping both roles in
// one value means a client that sees a code can always find the message it
// was rendered from.
//
// Canonical codes are:
//
//   - lowercase;
//   - ASCII letters and digits separated by '-', '_' or '.';
//   - 3 to 128 characters long.
package code
