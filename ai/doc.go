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


// Package ai provides the embedding abstraction used by the index builder
// and the semantic retriever.
//
// The Embedder interface decouples the rest of the system from the concrete
// embedding backend. Two implementations ship with the module:
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: deterministic test double, no external dependencies
//
// Whether an embedder is configured at all is decided once at service
// construction: a deployment without an embedding model runs in lexical
// fallback mode for the lifetime of the process, and this package is simply
// not used on that path.
//
// Production constructors (openai.NewEmbedder) return the ai.Embedder
// interface to enforce abstraction; the mock constructor returns the concrete
// *mock.MockEmbedder so tests can inject behavior and assert call counts.
package ai
