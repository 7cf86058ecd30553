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

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/assessrec/core"
)

// MUS serializers for the persisted artifact. Hand-written rather than
// generated: the type surface is two small structs and the field order
// below is the wire format.
var (
	float32SliceMUS = ord.NewSliceSer[float32](varint.Float32)
	stringSliceMUS  = ord.NewSliceSer[string](ord.String)

	// AssessmentRecordMUS serializes core.AssessmentRecord.
	AssessmentRecordMUS = assessmentRecordMUS{}

	// ManifestMUS serializes Manifest.
	ManifestMUS = manifestMUS{}
)

type assessmentRecordMUS struct{}

func (assessmentRecordMUS) Marshal(v core.AssessmentRecord, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Id), bs)
	n += ord.String.Marshal(v.URL, bs[n:])
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += stringSliceMUS.Marshal(v.TestType, bs[n:])
	n += varint.PositiveInt.Marshal(v.DurationMinutes, bs[n:])
	n += ord.Bool.Marshal(v.AdaptiveSupport, bs[n:])
	n += ord.Bool.Marshal(v.RemoteSupport, bs[n:])
	n += float32SliceMUS.Marshal(v.Vector, bs[n:])
	return n
}

func (assessmentRecordMUS) Unmarshal(bs []byte) (v core.AssessmentRecord, n int, err error) {
	var (
		id uint64
		n1 int
	)
	id, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Id = core.ID(id)

	v.URL, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TestType, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DurationMinutes, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AdaptiveSupport, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RemoteSupport, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (assessmentRecordMUS) Size(v core.AssessmentRecord) (n int) {
	n = varint.Uint64.Size(uint64(v.Id))
	n += ord.String.Size(v.URL)
	n += ord.String.Size(v.Name)
	n += ord.String.Size(v.Description)
	n += stringSliceMUS.Size(v.TestType)
	n += varint.PositiveInt.Size(v.DurationMinutes)
	n += ord.Bool.Size(v.AdaptiveSupport)
	n += ord.Bool.Size(v.RemoteSupport)
	n += float32SliceMUS.Size(v.Vector)
	return n
}

type manifestMUS struct{}

func (manifestMUS) Marshal(v Manifest, bs []byte) (n int) {
	n = ord.String.Marshal(v.Model, bs)
	n += varint.PositiveInt.Marshal(v.Count, bs[n:])
	n += varint.PositiveInt.Marshal(v.Dim, bs[n:])
	return n
}

func (manifestMUS) Unmarshal(bs []byte) (v Manifest, n int, err error) {
	var n1 int
	v.Model, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Count, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Dim, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	return
}

func (manifestMUS) Size(v Manifest) (n int) {
	n = ord.String.Size(v.Model)
	n += varint.PositiveInt.Size(v.Count)
	n += varint.PositiveInt.Size(v.Dim)
	return n
}

// MarshalAssessmentRecord serializes an AssessmentRecord to bytes.
func MarshalAssessmentRecord(record *core.AssessmentRecord) []byte {
	buf := make([]byte, AssessmentRecordMUS.Size(*record))
	AssessmentRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalAssessmentRecord deserializes an AssessmentRecord from bytes.
func UnmarshalAssessmentRecord(data []byte) (*core.AssessmentRecord, error) {
	record, _, err := AssessmentRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalManifest serializes a Manifest to bytes.
func MarshalManifest(manifest *Manifest) []byte {
	buf := make([]byte, ManifestMUS.Size(*manifest))
	ManifestMUS.Marshal(*manifest, buf)
	return buf
}

// UnmarshalManifest deserializes a Manifest from bytes.
func UnmarshalManifest(data []byte) (*Manifest, error) {
	manifest, _, err := ManifestMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &manifest, nil
}
