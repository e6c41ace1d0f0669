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

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/chronicle/core"
)

// Store reads and writes the unit corpus on disk.
type Store struct {
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "corpus-store")
		return nil
	}
}

// NewStore creates a corpus store.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{
		logger: slog.Default().With("component", "corpus-store"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load reads the corpus at path, tolerating absence and legacy shapes.
// A missing file yields an empty corpus. Entries that fail to decode as
// units are skipped; the second return value counts them.
func (s *Store) Load(path string) ([]*core.Unit, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}

	return s.decode(path, data)
}

// Require reads the corpus at path, treating absence as an error.
// Retrieval operations use this so a missing corpus produces guidance
// instead of silently empty results.
func (s *Store) Require(path string) ([]*core.Unit, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s (run ingestion to build it)", ErrCorpusNotFound, path)
		}
		return nil, 0, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}

	return s.decode(path, data)
}

// decode parses corpus bytes, accepting the current array shape and the
// legacy object shape with a "summaries" key. Malformed entries inside the
// array are skipped and counted.
func (s *Store) decode(path string, data []byte) ([]*core.Unit, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Legacy shape: {"summaries": [...]}
		var legacy struct {
			Summaries []json.RawMessage `json:"summaries"`
		}
		if err := json.Unmarshal(data, &legacy); err != nil {
			return nil, 0, fmt.Errorf("%w: %s", ErrInvalidCorpus, path)
		}
		raw = legacy.Summaries
	}

	units := make([]*core.Unit, 0, len(raw))
	skipped := 0
	for _, entry := range raw {
		// Non-object entries (null, strings, numbers) decode into a zero
		// unit instead of erroring, so gate on the JSON shape first.
		trimmed := bytes.TrimSpace(entry)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			skipped++
			continue
		}

		var unit core.Unit
		if err := json.Unmarshal(trimmed, &unit); err != nil {
			skipped++
			continue
		}
		units = append(units, &unit)
	}

	if skipped > 0 {
		s.logger.Warn("skipped malformed corpus entries", "path", path, "skipped", skipped)
	}
	s.logger.Debug("loaded corpus", "path", path, "units", len(units))
	return units, skipped, nil
}

// Merge combines incoming units into an existing corpus, replacing by
// source: existing units whose source appears among the incoming units are
// dropped, then the incoming units are appended in order. Empty incoming
// input returns the existing corpus unchanged.
func (s *Store) Merge(existing, incoming []*core.Unit) []*core.Unit {
	if len(incoming) == 0 {
		return existing
	}

	replaced := make(map[string]struct{}, 1)
	for _, unit := range incoming {
		replaced[unit.SourceID] = struct{}{}
	}

	merged := make([]*core.Unit, 0, len(existing)+len(incoming))
	for _, unit := range existing {
		if _, ok := replaced[unit.SourceID]; ok {
			continue
		}
		merged = append(merged, unit)
	}
	return append(merged, incoming...)
}

// Save writes units to path as an indented JSON array. The write goes to a
// temp file in the same directory and is renamed into place, so a crash
// mid-write never corrupts an existing corpus.
func (s *Store) Save(path string, units []*core.Unit) error {
	if units == nil {
		units = []*core.Unit{}
	}

	data, err := json.MarshalIndent(units, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode corpus: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".corpus-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp corpus file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write corpus: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close corpus file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace corpus %s: %w", path, err)
	}

	s.logger.Info("corpus saved", "path", path, "units", len(units))
	return nil
}
