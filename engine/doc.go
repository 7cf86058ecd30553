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


// Package engine implements the recommendation pipeline: analyze the
// query, retrieve an oversampled candidate pool, apply the boost
// multipliers, and return the top results.
//
// Retrieval is pluggable through the Retriever interface. The
// SemanticRetriever searches the embedding index; the LexicalRetriever
// is the degraded-mode fallback when no embedding model is configured.
package engine
