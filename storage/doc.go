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


// Package storage defines persistence for the index artifact: the vector
// index and its position-aligned record metadata, treated as a single
// logical unit.
//
// The ArtifactStore interface is the contract; storage/badger provides the
// BadgerDB-backed implementation. Serialization uses the MUS binary format.
//
// The alignment invariant lives here: an artifact whose manifest disagrees
// with its stored records is reported as ErrArtifactMisaligned, and callers
// are expected to treat that as fatal at startup rather than serve from a
// partially consistent index.
package storage
