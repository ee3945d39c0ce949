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

import "github.com/google/uuid"

// ExposureRecord is one admitted legacy exposure: a contiguous run of
// sightings whose bucketized duration met the configured minimum. ScanID
// lets a host result-store key on this record without inventing its own
// identifier scheme.
type ExposureRecord struct {
	ScanID                uuid.UUID
	WeightedAttenuationDB int
	BucketizedDuration    int64 // seconds

	// TimeBelowLo, TimeBetween, TimeAboveHi are seconds, and sum to the
	// total duration of the (virtually extended) attenuation series.
	TimeBelowLo int64
	TimeBetween int64
	TimeAboveHi int64

	RiskScore int
}

// buildExposureRecord scores one contiguous run of sightings, or reports
// ok=false if the run's bucketized duration is below the configured
// minimum (the run is not an admitted exposure at all).
func buildExposureRecord(run []SightingWithMetadata, params TracingParams, cfg ExposureConfiguration, daysSinceLastExposure int) (ExposureRecord, bool) {
	scanInterval := int64(params.ScanInterval.Seconds())

	raw := run[len(run)-1].Epoch - run[0].Epoch
	compensated := raw + scanInterval
	bucketized := bucketizedDuration(compensated, scanInterval)
	if bucketized < int64(params.MinBucketizedDuration.Seconds()) {
		return ExposureRecord{}, false
	}

	sightings := make([]Sighting, len(run))
	for i, s := range run {
		sightings[i] = s.Sighting
	}
	periods := buildPeriods(sightings, scanInterval)

	weighted := weightedAttenuation(periods)
	belowLo, between, aboveHi := thresholdTimes(periods, cfg.DurationAtAttenuationThresholds, params.InterpolationEnabled)

	durationMinutes := int(bucketized / 60)
	riskScore := RiskScore(cfg, weighted, daysSinceLastExposure, durationMinutes, run[0].TransmissionRiskLevel)

	return ExposureRecord{
		ScanID:                uuid.New(),
		WeightedAttenuationDB: weighted,
		BucketizedDuration:    bucketized,
		TimeBelowLo:           belowLo,
		TimeBetween:           between,
		TimeAboveHi:           aboveHi,
		RiskScore:             riskScore,
	}, true
}

// TEKResult is the aggregation of all admitted legacy exposure records for
// one matched TEK: sum and max of risk scores, elementwise sum of the
// threshold-time vector, and the TEK's day in milliseconds since epoch.
type TEKResult struct {
	SumRiskScore int
	MaxRiskScore int

	TimeBelowLo int64
	TimeBetween int64
	TimeAboveHi int64

	DateMillis int64
}

// EvaluateTEK scores every legacy exposure formed by sightings (already
// time-sorted) against one matched TEK, and aggregates the admitted
// records. It returns ok=false if sightings is empty or no run met the
// minimum bucketized duration; evaluation never errors.
//
// Sightings at or after the TEK's own end interval are dropped unless
// params.IgnoreEmbargoPeriodWhenMatchingNearKeyEdges is NOT set: this
// pipeline treats the flag inverted relative to BuildExposureWindows, per
// the two call sites' differing defaults recorded in DESIGN.md.
func EvaluateTEK(sightings []SightingWithMetadata, params TracingParams, cfg ExposureConfiguration, daysSinceLastExposure int, rollingStartIntervalNumber, rollingPeriod int32) (TEKResult, bool) {
	if len(sightings) == 0 {
		return TEKResult{}, false
	}

	end := embargoEnd(rollingStartIntervalNumber, rollingPeriod, !params.IgnoreEmbargoPeriodWhenMatchingNearKeyEdges)
	clamped := sightings[:0:0]
	for _, s := range sightings {
		if s.Epoch < end {
			clamped = append(clamped, s)
		}
	}
	sightings = clamped
	if len(sightings) == 0 {
		return TEKResult{}, false
	}

	runs := splitIntoExposures(sightings, int64(params.MaxInterpolationDuration.Seconds()))

	result := TEKResult{
		DateMillis: int64(rollingStartIntervalNumber) * 10 * 60 * 1000,
	}
	admitted := false
	for _, run := range runs {
		rec, ok := buildExposureRecord(run, params, cfg, daysSinceLastExposure)
		if !ok {
			continue
		}
		admitted = true
		result.SumRiskScore += rec.RiskScore
		if rec.RiskScore > result.MaxRiskScore {
			result.MaxRiskScore = rec.RiskScore
		}
		result.TimeBelowLo += rec.TimeBelowLo
		result.TimeBetween += rec.TimeBetween
		result.TimeAboveHi += rec.TimeAboveHi
	}

	if !admitted {
		return TEKResult{}, false
	}
	return result, true
}
