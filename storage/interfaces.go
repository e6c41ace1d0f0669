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

// VectorCache stores embedding vectors keyed by content key.
// Implementations must be safe for concurrent use.
type VectorCache interface {
	// Get returns the cached vector for key. The boolean reports whether
	// the key was present.
	Get(key uint64) ([]float32, bool, error)

	// Put stores a vector under key, replacing any existing value.
	Put(key uint64, vector []float32) error

	// Close releases the cache's resources.
	Close() error
}
