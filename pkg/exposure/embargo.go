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

import "github.com/google/exposure-notification-core/pkg/tek"

// embargoEnd returns the TEK's own end-interval time, or math.MaxInt64 if
// ignoreEmbargo is set. Both the window pipeline and the legacy-record
// pipeline clamp sightings against this near their respective TEK
// boundaries; spec §9 records that the two original call sites used
// inverted defaults for the flag rather than a single unified default, so
// it stays a caller-supplied parameter here rather than a package constant.
func embargoEnd(rollingStartIntervalNumber, rollingPeriod int32, ignoreEmbargo bool) int64 {
	if ignoreEmbargo {
		return 1<<63 - 1
	}
	return tek.TimeForIntervalNumber(rollingStartIntervalNumber + rollingPeriod).Unix()
}
