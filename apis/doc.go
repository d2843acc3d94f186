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

// Package apis defines the public Go-level contracts of apierr.
//
// The goal of this package is to provide small, composable interfaces that
// other packages can depend on without importing the concrete
// implementations: the locale catalog implements Resolver, the mapper
// package implements Mapper, and the root apierr.Error implements
// EntryProvider. Classifier and transport adapters target these interfaces
// only.
//
// This package must remain lightweight, so it only contains interfaces.
package apis
