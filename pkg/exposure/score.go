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

// attenuationBucket returns the first index whose threshold the value
// exceeds, else 7.
func attenuationBucket(attenuationDB int) int {
	for i, th := range AttenuationBucketThresholds {
		if attenuationDB > th {
			return i
		}
	}
	return 7
}

// durationBucket returns the first index whose threshold the value does not
// exceed, else 7.
func durationBucket(minutes int) int {
	for i, th := range DurationBucketThresholdsMinutes {
		if minutes <= th {
			return i
		}
	}
	return 7
}

// latencyBucket returns the first index whose threshold the value reaches,
// else 7.
func latencyBucket(days int) int {
	for i, th := range LatencyBucketThresholdsDays {
		if days >= th {
			return i
		}
	}
	return 7
}

// riskLevelBucket maps a 1-based transmission risk level to its 0-based
// bucket, clamped to the valid [0,7] range. A nil level is handled by the
// caller (factor 1), not here.
func riskLevelBucket(level int) int {
	b := level - 1
	if b < 0 {
		return 0
	}
	if b > 7 {
		return 7
	}
	return b
}

// RiskScore computes the four-factor risk score for one admitted legacy
// exposure record: attenuation_score x days_since_last_exposure_score x
// duration_score x transmission_risk_score. If the product is below the
// configured minimum, the returned score is 0.
func RiskScore(cfg ExposureConfiguration, weightedAttenuationDB int, daysSinceLastExposure int, bucketizedDurationMinutes int, transmissionRiskLevel *int) int {
	attenuationScore := cfg.AttenuationScores[attenuationBucket(weightedAttenuationDB)]
	daysScore := cfg.DaysSinceLastExposureScores[latencyBucket(daysSinceLastExposure)]
	durationScore := cfg.DurationScores[durationBucket(bucketizedDurationMinutes)]

	transmissionScore := 1
	if transmissionRiskLevel != nil {
		transmissionScore = cfg.TransmissionRiskScores[riskLevelBucket(*transmissionRiskLevel)]
	}

	score := attenuationScore * daysScore * durationScore * transmissionScore
	if score < cfg.MinimumRiskScore {
		return 0
	}
	return score
}
