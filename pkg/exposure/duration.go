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

package exposure

// splitIntoExposures walks sightings in order and breaks them into
// contiguous legacy exposures wherever the gap between consecutive
// sightings exceeds maxGap. Sightings must already be time-sorted.
func splitIntoExposures(sightings []SightingWithMetadata, maxGapSeconds int64) [][]SightingWithMetadata {
	if len(sightings) == 0 {
		return nil
	}

	var runs [][]SightingWithMetadata
	start := 0
	for i := 1; i < len(sightings); i++ {
		gap := sightings[i].Epoch - sightings[i-1].Epoch
		if gap > maxGapSeconds {
			runs = append(runs, sightings[start:i])
			start = i
		}
	}
	runs = append(runs, sightings[start:])
	return runs
}

// bucketizedDuration rounds raw (in seconds, already compensated by one
// scan interval) to the nearest multiple of scanInterval, with ties
// rounding down: if the remainder is <= half the interval, subtract it;
// otherwise add the complement.
func bucketizedDuration(compensated, scanInterval int64) int64 {
	if scanInterval <= 0 {
		return compensated
	}
	mod := compensated % scanInterval
	if mod <= scanInterval/2 {
		return compensated - mod
	}
	return compensated + (scanInterval - mod)
}
