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


package index

import "errors"

var (
	// ErrNotLoaded is returned when Search is called on an index that was
	// never populated. This is a programming error, not a user-facing one.
	ErrNotLoaded = errors.New("index not loaded")

	// ErrEmbedderRequired is returned when a builder is created without an embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidLimit indicates a non-positive result limit.
	ErrInvalidLimit = errors.New("limit must be positive")

	// ErrDimensionMismatch indicates vectors of inconsistent dimensionality.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrMissingVector indicates a record without an embedding vector.
	ErrMissingVector = errors.New("record has no embedding vector")
)
