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

package tek

import "time"

// IntervalLength is the duration of one interval: 10 minutes.
const IntervalLength = 10 * time.Minute

// IntervalNumber returns the EN interval number for t: the number of whole
// 10-minute windows since the Unix epoch.
func IntervalNumber(t time.Time) int32 {
	return int32(t.Unix() / int64(IntervalLength.Seconds()))
}

// RollingStartIntervalNumber returns the day-aligned interval number a
// newly generated TEK at time t should use: the start of t's calendar day in
// interval terms.
func RollingStartIntervalNumber(t time.Time) int32 {
	return IntervalNumber(t) / IDsPerKey * IDsPerKey
}

// TimeForIntervalNumber returns the wall-clock time at which interval
// begins.
func TimeForIntervalNumber(interval int32) time.Time {
	return time.Unix(int64(IntervalLength.Seconds())*int64(interval), 0).UTC()
}
