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


package corpus

import "errors"

var (
	// ErrCorpusNotFound indicates a required corpus file does not exist.
	// Operations that need an existing corpus return this with guidance to
	// run ingestion first.
	ErrCorpusNotFound = errors.New("corpus file not found")

	// ErrInvalidCorpus indicates the corpus file exists but holds neither a
	// unit array nor a recognized legacy shape.
	ErrInvalidCorpus = errors.New("corpus file has unrecognized structure")
)
