// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package query turns a raw query string into structured signals plus an
// enhanced query text.
//
// Extraction is deliberately simple: substring containment over fixed,
// ordered vocabularies for skills and test types, and a small priority
// ladder of patterns for duration ceilings. The enhanced query injects the
// extracted signals back into the text so that the similarity computation
// itself sees them.
package query
