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


package synthesis

import (
	"github.com/poiesic/chronicle/search"
)

// Reference is one entry of an answer's citation table.
type Reference struct {
	// Number is the 1-based citation number used in the answer text.
	Number int

	// SourceID names the source document.
	SourceID string

	// Position is the unit's chunk position within the source.
	Position int
}

// referenceKey identifies a citable location.
type referenceKey struct {
	sourceID string
	position int
}

// buildReferences assigns citation numbers to ranked results in first-seen
// order over (source, position): the first occurrence of a pair claims the
// next number, and later occurrences reuse it. The returned numbers slice
// is index-aligned with results.
func buildReferences(results []*search.Result) ([]*Reference, []int) {
	references := make([]*Reference, 0, len(results))
	numbers := make([]int, len(results))
	assigned := make(map[referenceKey]int, len(results))

	for i, result := range results {
		key := referenceKey{sourceID: result.Unit.SourceID, position: result.Unit.Position}
		number, ok := assigned[key]
		if !ok {
			number = len(references) + 1
			assigned[key] = number
			references = append(references, &Reference{
				Number:   number,
				SourceID: result.Unit.SourceID,
				Position: result.Unit.Position,
			})
		}
		numbers[i] = number
	}
	return references, numbers
}
