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


// Package index implements the embedding index over assessment records.
//
// Vectors are L2-normalized at build time and searched by inner product,
// which for unit vectors equals cosine similarity. This turns similarity
// search into a single dot product with no per-query normalization of the
// stored side.
//
// The Builder is the offline half: it embeds each record's canonical text
// (see EmbeddingText) over a worker pool and produces a Flat index. The
// Flat is the serving half: immutable, position-aligned with its records,
// and safe for lock-free concurrent search.
package index
