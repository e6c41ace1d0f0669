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

// ValidateUnit validates a Unit according to domain rules.
//
// Validation rules:
//   - SourceID must not be empty
//   - Position must not be negative
//   - Status, when set, must be success or failed
//   - Retries must not be negative
//
// NOT validated (populated by the summarization worker):
//   - Summary (empty until summarization succeeds)
//   - Err (empty unless an attempt recorded a diagnostic)
func ValidateUnit(unit *Unit) error {
	if unit == nil {
		return fmt.Errorf("%w: unit is nil", ErrInvalidUnit)
	}

	if unit.SourceID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUnit, ErrEmptySourceID)
	}

	if unit.Position < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidUnit, ErrNegativePosition)
	}

	if err := ValidateStatus(unit.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUnit, err)
	}

	if unit.Retries < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidUnit, ErrNegativeRetries)
	}

	return nil
}

// ValidateStatus validates that a Status holds a recognized value.
// The empty string is valid for Units not yet summarized.
func ValidateStatus(status Status) error {
	if status != "" && status != StatusSuccess && status != StatusFailed {
		return fmt.Errorf("%w: value %q", ErrInvalidStatus, status)
	}
	return nil
}
