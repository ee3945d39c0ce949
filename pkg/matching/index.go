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

// Package matching implements the prefix-indexed lookup of locally observed
// Rolling Proximity Identifiers, and the engine that checks a stream of
// TEKs against it.
package matching

import (
	"encoding/binary"
	"sort"
)

// RPI is a 16-byte Rolling Proximity Identifier, as broadcast over BLE and
// recorded by local sighting storage.
type RPI = [16]byte

// Index is the sorted-RPI array plus its two-byte-prefix lookup table
// described for the build phase: sorting by the little-endian uint16 formed
// from bytes [0,2) of each RPI, then deriving prefix_end[0..65535] so a
// lookup only has to scan (linearly) within the one matching prefix bucket.
// An Index is immutable once built and safe to share by reference across
// concurrent matching jobs.
type Index struct {
	sorted    []RPI
	prefixEnd [65536]uint32
}

func prefixOf(r RPI) uint16 {
	return binary.LittleEndian.Uint16(r[0:2])
}

// NewIndex builds an Index over observed, the locally recorded RPIs from the
// sighting-retention window. observed is not mutated; NewIndex copies it
// before sorting.
func NewIndex(observed []RPI) *Index {
	sorted := make([]RPI, len(observed))
	copy(sorted, observed)
	sort.Slice(sorted, func(i, j int) bool {
		return prefixOf(sorted[i]) < prefixOf(sorted[j])
	})

	idx := &Index{sorted: sorted}

	// Count how many sorted elements fall in each two-byte prefix, then turn
	// that into a running total: prefix_end[p] becomes the number of
	// elements whose prefix is <= p, i.e. the exclusive upper bound of the
	// bucket for prefix p. This produces exactly the prefix_end array the
	// fill-forward description builds, in one pass over sorted plus one pass
	// over the 65536 prefixes.
	var counts [65536]uint32
	for _, r := range sorted {
		counts[prefixOf(r)]++
	}
	var cum uint32
	for p := 0; p < 65536; p++ {
		cum += counts[p]
		idx.prefixEnd[p] = cum
	}
	return idx
}

// Contains reports whether rpi is present in the index, and if so, its index
// within the sorted array NewIndex built.
func (idx *Index) Contains(rpi RPI) (int, bool) {
	p := prefixOf(rpi)
	var lo uint32
	if p > 0 {
		lo = idx.prefixEnd[p-1]
	}
	hi := idx.prefixEnd[p]

	for i := lo; i < hi; i++ {
		if idx.sorted[i] == rpi {
			return int(i), true
		}
	}
	return 0, false
}

// Len returns the number of RPIs in the index.
func (idx *Index) Len() int {
	return len(idx.sorted)
}
