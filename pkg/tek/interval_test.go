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

import (
	"testing"
	"time"
)

func TestIntervalNumber(t *testing.T) {
	t.Parallel()

	// 2020-05-01T00:00:00Z is unix second 1_588_291_200, i.e. interval
	// 1_588_291_200 / 600 = 2_647_152.
	ts := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	if got, want := IntervalNumber(ts), int32(2647152); got != want {
		t.Errorf("IntervalNumber(%v) = %d, want %d", ts, got, want)
	}
}

func TestIntervalNumber_WithinIntervalIsFloor(t *testing.T) {
	t.Parallel()

	base := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	mid := base.Add(9*time.Minute + 59*time.Second)
	if got, want := IntervalNumber(mid), IntervalNumber(base); got != want {
		t.Errorf("IntervalNumber(%v) = %d, want %d (same interval as base)", mid, got, want)
	}

	next := base.Add(IntervalLength)
	if got, want := IntervalNumber(next), IntervalNumber(base)+1; got != want {
		t.Errorf("IntervalNumber(%v) = %d, want %d", next, got, want)
	}
}

func TestRollingStartIntervalNumber_DayAligned(t *testing.T) {
	t.Parallel()

	ts := time.Date(2020, 5, 1, 13, 27, 0, 0, time.UTC)
	start := RollingStartIntervalNumber(ts)
	if start%IDsPerKey != 0 {
		t.Fatalf("RollingStartIntervalNumber(%v) = %d is not day-aligned", ts, start)
	}
	if start > IntervalNumber(ts) || IntervalNumber(ts)-start >= IDsPerKey {
		t.Fatalf("RollingStartIntervalNumber(%v) = %d does not cover %v's interval", ts, start, ts)
	}
}

func TestTimeForIntervalNumber_RoundTrips(t *testing.T) {
	t.Parallel()

	ts := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	interval := IntervalNumber(ts)
	got := TimeForIntervalNumber(interval)
	if !got.Equal(ts) {
		t.Errorf("TimeForIntervalNumber(%d) = %v, want %v", interval, got, ts)
	}
}
