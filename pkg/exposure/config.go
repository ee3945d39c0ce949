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

// Package exposure turns the matched TEKs and their sighting history into
// exposure windows and scored legacy exposure records. Everything here is a
// pure function of its inputs: there is no I/O and no shared mutable state.
package exposure

import (
	"time"

	"github.com/google/exposure-notification-core/pkg/tek"
)

// TracingParams configures both the exposure-window and legacy-record
// pipelines. These values are host-supplied; the zero value is not usable.
type TracingParams struct {
	// MinBucketizedDuration is the minimum admitted bucketized exposure
	// duration; shorter legacy exposures are dropped entirely.
	MinBucketizedDuration time.Duration

	// ScanInterval is the nominal spacing between BLE scans (scan_interval).
	ScanInterval time.Duration

	// MaxInterpolationDuration is the largest gap between consecutive
	// sightings that does not terminate a legacy exposure.
	MaxInterpolationDuration time.Duration

	// InterpolationEnabled switches threshold-crossing detection between a
	// step function (off) and linear interpolation (on).
	InterpolationEnabled bool

	// IgnoreEmbargoPeriodWhenMatchingNearKeyEdges clamps a sighting's valid
	// window to the TEK's own end interval. Two call sites in the original
	// implementation use this with inverted defaults; this flag is kept
	// rather than merged into a single behavior (open question, see
	// DESIGN.md).
	IgnoreEmbargoPeriodWhenMatchingNearKeyEdges bool

	// RecordSecondaryAttenuation switches on the newer min/typical
	// attenuation pair per scan instance. When false (the default), only
	// TypicalAttenuationDB is populated, matching the legacy behavior.
	RecordSecondaryAttenuation bool
}

// TekMetadata carries the per-scan defaults used while grouping sightings
// into exposure windows.
type TekMetadata struct {
	// ScanTime is the nominal duration of one BLE scan cycle (scan_time).
	ScanTime time.Duration

	// ScanExtend is additional slack added to ScanTime when deciding
	// whether two sightings belong to the same scan cycle (scan_extend).
	ScanExtend time.Duration

	// MaxMinutesSinceLastScan clamps the reported gap between scans.
	MaxMinutesSinceLastScan int

	// DefaultMinutesSinceLastScan is used for the very first scan instance,
	// which has no previous scan to measure from.
	DefaultMinutesSinceLastScan int
}

// DefaultTekMetadata mirrors the values used by the reference exposure
// notification client.
func DefaultTekMetadata() TekMetadata {
	return TekMetadata{
		ScanTime:                    4 * time.Second,
		ScanExtend:                  1 * time.Second,
		MaxMinutesSinceLastScan:     15,
		DefaultMinutesSinceLastScan: 5,
	}
}

// Sighting is one observed (RPI, RSSI, time, encrypted-metadata) tuple,
// reduced to the fields the evaluator needs once the RPI/AEM have already
// been matched and decrypted by earlier stages.
type Sighting struct {
	// Epoch is the observation time, in unix seconds.
	Epoch int64

	// AttenuationDB is tx_power - rssi, already clamped non-negative.
	AttenuationDB int
}

// SightingWithMetadata pairs a Sighting with the decrypted Associated
// Encrypted Metadata fields relevant to scoring: the transmission risk
// level and the report type carried in the TEK that produced a match.
// TransmissionRiskLevel is nil when the metadata did not carry one; the
// evaluator treats that as an unknown risk level (scoring factor 1).
type SightingWithMetadata struct {
	Sighting
	TransmissionRiskLevel *int
	ReportType             *tek.ReportType
}

// AttenuationThresholds is the (lo, hi) attenuation pair used to compute the
// three-element threshold-time vector. This is the
// duration_at_attenuation_thresholds field of ExposureConfiguration.
type AttenuationThresholds struct {
	Lo int
	Hi int
}

// ExposureConfiguration is the client-provided scoring configuration
// described in spec §6. Every array is indexed by the 8 buckets produced by
// the attenuationBucket, latencyBucket, durationBucket and riskLevelBucket
// functions in score.go.
type ExposureConfiguration struct {
	MinimumRiskScore int

	AttenuationScores            [8]int
	DaysSinceLastExposureScores [8]int
	DurationScores               [8]int
	TransmissionRiskScores       [8]int

	DurationAtAttenuationThresholds AttenuationThresholds
}

// Default bucket threshold tables (spec §6). These partition a raw value
// into one of 8 buckets; Scores arrays above are indexed by the result.
var (
	// AttenuationBucketThresholds buckets signal attenuation in dB.
	AttenuationBucketThresholds = [7]int{73, 63, 51, 33, 27, 15, 10}

	// DurationBucketThresholdsMinutes buckets a scan-instance duration.
	DurationBucketThresholdsMinutes = [7]int{0, 5, 10, 15, 20, 25, 30}

	// LatencyBucketThresholdsDays buckets days-since-last-exposure.
	LatencyBucketThresholdsDays = [7]int{14, 12, 10, 8, 6, 4, 2}
)
