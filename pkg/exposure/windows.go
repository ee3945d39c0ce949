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

// windowDurationSeconds is the fixed 30-minute exposure-window boundary.
const windowDurationSeconds = 30 * 60

// ScanInstance aggregates the sightings observed within one physical BLE
// scan cycle.
type ScanInstance struct {
	TypicalAttenuationDB int

	// MinAttenuationDB is only populated when TracingParams.RecordSecondaryAttenuation
	// is set; nil reproduces the legacy single-value behavior.
	MinAttenuationDB *int

	SecondsSinceLastScan int
}

// ExposureWindow is up to 30 minutes of scan instances attributable to a
// single matched TEK. ScanID lets a host result-store key on this window
// without inventing its own identifier scheme.
type ExposureWindow struct {
	ScanID        uuid.UUID
	StartEpoch    int64
	ScanInstances []ScanInstance
}

// BuildExposureWindows groups time-sorted sightings into exposure windows
// per spec §4.5: a window opens on the first sighting or 30 minutes after
// the currently open window's start, whichever comes first; within a
// window, sightings fall into the trailing scan instance if they arrive
// within 1.5 x (scan_time + scan_extend) seconds of the previous sighting,
// else they start a new scan instance.
//
// Sightings at or after the TEK's own end interval are dropped unless
// params.IgnoreEmbargoPeriodWhenMatchingNearKeyEdges is set: the window
// pipeline treats the flag at face value, the opposite of how the legacy
// pipeline (EvaluateTEK) treats it, per the two inverted call-site defaults
// recorded in DESIGN.md.
func BuildExposureWindows(sightings []Sighting, meta TekMetadata, params TracingParams, rollingStartIntervalNumber, rollingPeriod int32) []ExposureWindow {
	end := embargoEnd(rollingStartIntervalNumber, rollingPeriod, params.IgnoreEmbargoPeriodWhenMatchingNearKeyEdges)
	clamped := sightings[:0:0]
	for _, s := range sightings {
		if s.Epoch < end {
			clamped = append(clamped, s)
		}
	}
	sightings = clamped

	if len(sightings) == 0 {
		return nil
	}

	scanCycle := int64((meta.ScanTime + meta.ScanExtend).Seconds() * 1.5)

	var windows []ExposureWindow
	var previousScanEpoch int64
	var previousSightingEpoch int64

	for i, s := range sightings {
		if len(windows) == 0 || s.Epoch-windows[len(windows)-1].StartEpoch >= windowDurationSeconds {
			windows = append(windows, ExposureWindow{ScanID: uuid.New(), StartEpoch: s.Epoch})
		}
		cur := &windows[len(windows)-1]

		sameScan := i > 0 && len(cur.ScanInstances) > 0 && s.Epoch-previousSightingEpoch <= scanCycle
		if sameScan {
			inst := &cur.ScanInstances[len(cur.ScanInstances)-1]
			if params.RecordSecondaryAttenuation {
				min := s.AttenuationDB
				if inst.MinAttenuationDB != nil && *inst.MinAttenuationDB < min {
					min = *inst.MinAttenuationDB
				}
				inst.MinAttenuationDB = &min
			}
			// Pairwise average of the running value and the new sighting
			// (later sightings weigh more), rather than a true median or
			// mean: a scan instance can span arbitrarily many sightings and
			// we only keep one record.
			inst.TypicalAttenuationDB = (inst.TypicalAttenuationDB + s.AttenuationDB) / 2
		} else {
			secondsSinceLastScan := meta.DefaultMinutesSinceLastScan * 60
			if previousScanEpoch != 0 {
				minutes := int((s.Epoch - previousScanEpoch) / 60)
				if minutes > meta.MaxMinutesSinceLastScan {
					minutes = meta.MaxMinutesSinceLastScan
				}
				secondsSinceLastScan = minutes * 60
			}
			inst := ScanInstance{
				TypicalAttenuationDB: s.AttenuationDB,
				SecondsSinceLastScan: secondsSinceLastScan,
			}
			if params.RecordSecondaryAttenuation {
				min := s.AttenuationDB
				inst.MinAttenuationDB = &min
			}
			cur.ScanInstances = append(cur.ScanInstances, inst)
			previousScanEpoch = s.Epoch
		}

		previousSightingEpoch = s.Epoch
	}

	return windows
}
