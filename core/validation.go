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


package core

import "fmt"

// ValidateAssessmentRecord validates an AssessmentRecord according to domain rules.
//
// Validation rules:
//   - URL must not be empty (it is the stable identifier)
//   - Name must not be empty
//   - DurationMinutes must not be negative (0 means unknown)
//
// NOT validated (populated by the index builder):
//   - Vector (empty until the record is embedded)
//   - Id (derived from URL, 0 is never produced by IDFromContent in practice)
func ValidateAssessmentRecord(record *AssessmentRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidAssessmentRecord)
	}

	if record.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAssessmentRecord, ErrEmptyURL)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAssessmentRecord, ErrEmptyName)
	}

	if record.DurationMinutes < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidAssessmentRecord, ErrNegativeDuration)
	}

	return nil
}
