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

import "errors"

// Domain validation errors
var (
	// ErrInvalidUnit indicates a Unit failed validation.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrEmptySourceID indicates the SourceID field is empty.
	ErrEmptySourceID = errors.New("source id cannot be empty")

	// ErrNegativePosition indicates a negative chunk position.
	ErrNegativePosition = errors.New("position cannot be negative")

	// ErrInvalidStatus indicates a Status value outside success/failed.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrNegativeRetries indicates a negative retry count.
	ErrNegativeRetries = errors.New("retries cannot be negative")
)
