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
	"fmt"

	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// maxVectorDim bounds decoded vector lengths. Embedding models in use
// produce at most a few thousand dimensions; anything larger is corruption.
const maxVectorDim = 1 << 16

// MarshalVector serializes an embedding vector to bytes: a varint element
// count followed by raw float32 values.
func MarshalVector(vector []float32) []byte {
	size := varint.Int.Size(len(vector))
	for _, v := range vector {
		size += raw.Float32.Size(v)
	}

	buf := make([]byte, size)
	n := varint.Int.Marshal(len(vector), buf)
	for _, v := range vector {
		n += raw.Float32.Marshal(v, buf[n:])
	}
	return buf
}

// UnmarshalVector deserializes an embedding vector from bytes.
func UnmarshalVector(data []byte) ([]float32, error) {
	count, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptVector, err)
	}
	if count < 0 || count > maxVectorDim {
		return nil, fmt.Errorf("%w: implausible dimension %d", ErrCorruptVector, count)
	}

	vector := make([]float32, count)
	for i := range vector {
		v, m, err := raw.Float32.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptVector, err)
		}
		vector[i] = v
		n += m
	}
	return vector, nil
}
