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


package badger

import (
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/chronicle/storage"
)

// VectorCache implements storage.VectorCache on a BadgerDB backend.
type VectorCache struct {
	backend     *Backend
	ownsBackend bool
	logger      *slog.Logger
}

// NewVectorCache creates a vector cache on an existing backend.
// The caller retains ownership of the backend.
func NewVectorCache(backend *Backend) (storage.VectorCache, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	return &VectorCache{
		backend: backend,
		logger:  slog.Default().With("component", "vector-cache"),
	}, nil
}

// OpenVectorCache opens a vector cache with its own backend at path.
// Closing the cache closes the backend.
func OpenVectorCache(path string) (storage.VectorCache, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &VectorCache{
		backend:     backend,
		ownsBackend: true,
		logger:      slog.Default().With("component", "vector-cache"),
	}, nil
}

// Get returns the cached vector for key.
func (c *VectorCache) Get(key uint64) ([]float32, bool, error) {
	if c.backend.IsClosed() {
		return nil, false, storage.ErrCacheClosed
	}

	var vector []float32
	found := false
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			vector, err = storage.UnmarshalVector(val)
			if err != nil {
				return err
			}
			found = true
			return nil
		})
	}, false)
	if err != nil {
		return nil, false, err
	}
	return vector, found, nil
}

// Put stores a vector under key, replacing any existing value.
func (c *VectorCache) Put(key uint64, vector []float32) error {
	if c.backend.IsClosed() {
		return storage.ErrCacheClosed
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeVectorKey(key), storage.MarshalVector(vector)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close releases the cache. The backend is closed only if this cache
// opened it.
func (c *VectorCache) Close() error {
	if c.ownsBackend {
		return c.backend.Close()
	}
	return nil
}
