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

package main

// Config holds the exposure-scoring defaults, sourced from the environment
// so the same binary can be re-tuned per deployment without a rebuild.
type Config struct {
	Debug bool `env:"DEBUG,default=false"`

	MinBucketizedDurationSeconds    int  `env:"MIN_BUCKETIZED_DURATION_SECONDS,default=300"`
	ScanIntervalSeconds             int  `env:"SCAN_INTERVAL_SECONDS,default=300"`
	MaxInterpolationDurationSeconds int  `env:"MAX_INTERPOLATION_DURATION_SECONDS,default=900"`
	InterpolationEnabled            bool `env:"INTERPOLATION_ENABLED,default=false"`

	AttenuationThresholdLo int `env:"ATTENUATION_THRESHOLD_LO,default=50"`
	AttenuationThresholdHi int `env:"ATTENUATION_THRESHOLD_HI,default=60"`

	MinimumRiskScore int `env:"MINIMUM_RISK_SCORE,default=1"`

	IgnoreEmbargoPeriodWhenMatchingNearKeyEdges bool `env:"IGNORE_EMBARGO_PERIOD_WHEN_MATCHING_NEAR_KEY_EDGES,default=false"`
	RecordSecondaryAttenuation                  bool `env:"RECORD_SECONDARY_ATTENUATION,default=false"`
}
