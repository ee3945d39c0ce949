// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package synthetic generates fixture TEKs for tests and demo commands: a
// large population of unpredictable "noise" keys, the realistic background
// population the matching engine's tests need. It does not plant a known
// key; callers that need one generate it themselves and add it to the
// population.
package synthetic

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
)

var _ mrand.Source64 = (*cryptoSource)(nil)

// NewSource returns a math/rand.Source64 backed by crypto/rand, so fixture
// generation is unpredictable (unlike math/rand's default seeded source)
// while still usable anywhere an *mrand.Rand is expected.
func NewSource() mrand.Source64 {
	return new(cryptoSource)
}

type cryptoSource struct{}

func (s *cryptoSource) Seed(seed int64) {}

func (s *cryptoSource) Int63() int64 {
	return int64(s.Uint64() & ^uint64(1<<63))
}

func (s *cryptoSource) Uint64() uint64 {
	var v uint64
	if err := binary.Read(crand.Reader, binary.BigEndian, &v); err != nil {
		panic(fmt.Sprintf("synthetic: reading crypto/rand: %v", err))
	}
	return v
}
