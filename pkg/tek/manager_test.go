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

func TestManager_CurrentTEK_StableWithinRollingPeriod(t *testing.T) {
	t.Parallel()

	m := NewManager()
	base := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

	a, err := m.CurrentTEK(base)
	if err != nil {
		t.Fatalf("CurrentTEK: %v", err)
	}
	b, err := m.CurrentTEK(base.Add(50 * time.Minute))
	if err != nil {
		t.Fatalf("CurrentTEK: %v", err)
	}
	if a.KeyData != b.KeyData {
		t.Errorf("TEK changed within the same rolling period")
	}
}

func TestManager_CurrentTEK_RotatesAfterRollingPeriod(t *testing.T) {
	t.Parallel()

	m := NewManager()
	base := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

	a, err := m.CurrentTEK(base)
	if err != nil {
		t.Fatalf("CurrentTEK: %v", err)
	}
	b, err := m.CurrentTEK(base.Add(25 * time.Hour))
	if err != nil {
		t.Fatalf("CurrentTEK: %v", err)
	}
	if a.KeyData == b.KeyData {
		t.Errorf("TEK did not rotate across a day boundary")
	}
	if b.RollingStartIntervalNumber%IDsPerKey != 0 {
		t.Errorf("new TEK's rolling start %d is not day-aligned", b.RollingStartIntervalNumber)
	}
}

func TestManager_CurrentRPI_MatchesBulkRPI(t *testing.T) {
	t.Parallel()

	m := NewManager()
	now := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

	rpi, err := m.CurrentRPI(now)
	if err != nil {
		t.Fatalf("CurrentRPI: %v", err)
	}

	k, err := m.CurrentTEK(now)
	if err != nil {
		t.Fatalf("CurrentTEK: %v", err)
	}
	want, err := RPI(k, IntervalNumber(now))
	if err != nil {
		t.Fatalf("RPI: %v", err)
	}
	if rpi != want {
		t.Fatalf("CurrentRPI = %x, want %x", rpi, want)
	}
}

func TestManager_CurrentRPI_StableWithinSameInterval(t *testing.T) {
	t.Parallel()

	m := NewManager()
	now := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

	a, err := m.CurrentRPI(now)
	if err != nil {
		t.Fatalf("CurrentRPI: %v", err)
	}
	b, err := m.CurrentRPI(now.Add(5 * time.Minute))
	if err != nil {
		t.Fatalf("CurrentRPI: %v", err)
	}
	if a != b {
		t.Fatalf("RPI changed within the same interval: %x != %x", a, b)
	}
}

func TestManager_CurrentRPI_ChangesAcrossIntervals(t *testing.T) {
	t.Parallel()

	m := NewManager()
	now := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

	a, err := m.CurrentRPI(now)
	if err != nil {
		t.Fatalf("CurrentRPI: %v", err)
	}
	b, err := m.CurrentRPI(now.Add(IntervalLength))
	if err != nil {
		t.Fatalf("CurrentRPI: %v", err)
	}
	if a == b {
		t.Fatalf("RPI identical across distinct intervals")
	}
}
