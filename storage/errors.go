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


package storage

import "errors"

var (
	// ErrArtifactMissing indicates that no persisted artifact exists.
	// Serving must not start without one.
	ErrArtifactMissing = errors.New("index artifact not found")

	// ErrArtifactMisaligned indicates that the vector index and its metadata
	// disagree. This is a fatal consistency violation, not a recoverable error.
	ErrArtifactMisaligned = errors.New("index and metadata misaligned")

	// ErrEmptyModel indicates an artifact write without an embedding model name.
	ErrEmptyModel = errors.New("embedding model name required")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
