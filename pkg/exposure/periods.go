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

// sample is one (time, attenuation) point in the extended attenuation time
// series for a single legacy exposure.
type sample struct {
	epoch         int64
	attenuationDB int
}

// period is a pair of adjacent samples with strictly positive duration.
// Attenuation over a period is the attenuation of its left endpoint
// (step-function semantics); scan2's attenuation only matters for
// interpolation when locating a threshold crossing.
type period struct {
	scan1, scan2 sample
}

func (p period) duration() int64 { return p.scan2.epoch - p.scan1.epoch }

// buildPeriods extends the sightings' attenuation series by half a scan
// interval on each end (virtual boundary scans repeating the first/last
// attenuation) and returns the adjacent-sample pairs with positive duration.
func buildPeriods(sightings []Sighting, scanInterval int64) []period {
	half := scanInterval / 2

	series := make([]sample, 0, len(sightings)+2)
	series = append(series, sample{epoch: sightings[0].Epoch - half, attenuationDB: sightings[0].AttenuationDB})
	for _, s := range sightings {
		series = append(series, sample{epoch: s.Epoch, attenuationDB: s.AttenuationDB})
	}
	last := sightings[len(sightings)-1]
	series = append(series, sample{epoch: last.Epoch + half, attenuationDB: last.AttenuationDB})

	periods := make([]period, 0, len(series)-1)
	for i := 0; i+1 < len(series); i++ {
		p := period{scan1: series[i], scan2: series[i+1]}
		if p.duration() > 0 {
			periods = append(periods, p)
		}
	}
	return periods
}

// weightedAttenuation is round(sum(period.scan1.attenuation * period.duration) / sum(period.duration)).
func weightedAttenuation(periods []period) int {
	var weighted, total int64
	for _, p := range periods {
		d := p.duration()
		weighted += int64(p.scan1.attenuationDB) * d
		total += d
	}
	if total == 0 {
		return 0
	}
	return int(roundHalfAwayFromZero(float64(weighted) / float64(total)))
}

// aboveDuration returns how much of period p's duration is classified as
// "at or above" threshold t, using step-function or linear-interpolation
// crossing detection per interpolationEnabled.
func aboveDuration(p period, t int, interpolationEnabled bool) int64 {
	d := p.duration()
	if d <= 0 {
		return 0
	}

	v1, v2 := p.scan1.attenuationDB, p.scan2.attenuationDB

	if !interpolationEnabled || v1 == v2 {
		if v1 >= t {
			return d
		}
		return 0
	}

	frac := float64(t-v1) / float64(v2-v1)
	cross := int64(roundHalfAwayFromZero(frac * float64(d)))

	if cross <= 0 || cross >= d {
		if v1 >= t {
			return d
		}
		return 0
	}

	if v1 >= t {
		// Attenuation decreasing through t: the leading side starts >= t.
		return cross
	}
	// Attenuation increasing through t: the trailing side starts >= t.
	return d - cross
}

// thresholdTimes returns (time_below_lo, time_between, time_above_hi) over
// all periods, satisfying time_below + time_between + time_above == total
// duration.
func thresholdTimes(periods []period, thresholds AttenuationThresholds, interpolationEnabled bool) (belowLo, between, aboveHi int64) {
	var total, aboveLo, above int64
	for _, p := range periods {
		total += p.duration()
		aboveLo += aboveDuration(p, thresholds.Lo, interpolationEnabled)
		above += aboveDuration(p, thresholds.Hi, interpolationEnabled)
	}
	belowLo = total - aboveLo
	aboveHi = above
	between = total - belowLo - aboveHi
	return belowLo, between, aboveHi
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int64(v + 0.5))
	}
	return float64(int64(v - 0.5))
}
