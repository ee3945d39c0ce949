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

// DailySummary aggregates every matched TEK's TEKResult that falls on the
// same day (DateMillis truncated to a day boundary) into one per-day
// rollup. This mirrors the real exposure-notification client's "daily
// summary" API, which callers use instead of walking every individual TEK
// result; it is not named by spec §4.5 but follows directly from its
// per-TEK aggregation rule applied one level higher.
type DailySummary struct {
	DateMillis int64

	SumRiskScore int
	MaxRiskScore int

	TimeBelowLo int64
	TimeBetween int64
	TimeAboveHi int64

	TEKCount int
}

const millisPerDay = 24 * 60 * 60 * 1000

// Summarize buckets results by calendar day (UTC, using DateMillis) and
// returns one DailySummary per day, sorted by DateMillis ascending.
func Summarize(results []TEKResult) []DailySummary {
	byDay := make(map[int64]*DailySummary)
	var order []int64

	for _, r := range results {
		day := (r.DateMillis / millisPerDay) * millisPerDay
		s, ok := byDay[day]
		if !ok {
			s = &DailySummary{DateMillis: day}
			byDay[day] = s
			order = append(order, day)
		}
		s.SumRiskScore += r.SumRiskScore
		if r.MaxRiskScore > s.MaxRiskScore {
			s.MaxRiskScore = r.MaxRiskScore
		}
		s.TimeBelowLo += r.TimeBelowLo
		s.TimeBetween += r.TimeBetween
		s.TimeAboveHi += r.TimeAboveHi
		s.TEKCount++
	}

	// Simple insertion sort over `order`: the number of distinct days in a
	// 14-day retention window is always small.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && order[j-1] > order[j]; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}

	out := make([]DailySummary, len(order))
	for i, day := range order {
		out[i] = *byDay[day]
	}
	return out
}
