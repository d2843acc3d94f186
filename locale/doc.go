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

// Package locale resolves localized error messages.
//
// A Catalog holds messages per language (golang.org/x/text/language tags) and
// implements apis.Resolver. Catalog files are YAML documents named after the
// language they contain:
//
//	locales/
//	    en.yaml
//	    fr.yaml
//	    fr-CA.yaml
//
// Keys are error codes (see package code) plus optional sub-keys such as
// ".detail". The package embeds English and French messages for the baseline
// policy; services layer their own files on top with LoadDir.
package locale
