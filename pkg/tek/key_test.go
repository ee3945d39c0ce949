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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
)

func TestTemporaryExposureKey_EndIntervalNumber(t *testing.T) {
	t.Parallel()

	k := TemporaryExposureKey{RollingStartIntervalNumber: 100, RollingPeriod: 144}
	if got, want := k.EndIntervalNumber(), int32(244); got != want {
		t.Errorf("EndIntervalNumber() = %d, want %d", got, want)
	}
}

func TestTemporaryExposureKey_Covers(t *testing.T) {
	t.Parallel()

	k := TemporaryExposureKey{RollingStartIntervalNumber: 100, RollingPeriod: 144}

	cases := []struct {
		name     string
		interval int32
		want     bool
	}{
		{"before start", 99, false},
		{"at start", 100, true},
		{"mid range", 200, true},
		{"last covered", 243, true},
		{"at end, excluded", 244, false},
		{"well past end", 1000, false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if got := k.Covers(c.interval); got != c.want {
				t.Errorf("Covers(%d) = %v, want %v", c.interval, got, c.want)
			}
		})
	}
}

func TestDayNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		interval int32
		want     int32
	}{
		{0, 0},
		{143, 0},
		{144, 1},
		{2644800, 18366},
		{-1, -1},
		{-144, -1},
		{-145, -2},
	}
	for _, c := range cases {
		if got := DayNumber(c.interval); got != c.want {
			t.Errorf("DayNumber(%d) = %d, want %d", c.interval, got, c.want)
		}
	}
}

func TestNewTemporaryExposureKey_RejectsMisalignedStart(t *testing.T) {
	t.Parallel()

	_, err := NewTemporaryExposureKey(strings.NewReader(strings.Repeat("x", 16)), 5)
	if !errors.Is(err, coreerrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want wrapping ErrInvalidArgument", err)
	}
}

func TestNewTemporaryExposureKey_ReadsKeyMaterial(t *testing.T) {
	t.Parallel()

	want := []byte("0123456789abcdef")
	k, err := NewTemporaryExposureKey(bytes.NewReader(want), 144)
	if err != nil {
		t.Fatalf("NewTemporaryExposureKey: %v", err)
	}
	if !bytes.Equal(k.KeyData[:], want) {
		t.Errorf("KeyData = %q, want %q", k.KeyData, want)
	}
	if k.RollingStartIntervalNumber != 144 {
		t.Errorf("RollingStartIntervalNumber = %d, want 144", k.RollingStartIntervalNumber)
	}
	if k.RollingPeriod != IDsPerKey {
		t.Errorf("RollingPeriod = %d, want %d", k.RollingPeriod, IDsPerKey)
	}
}

func TestNewTemporaryExposureKey_ShortReaderFails(t *testing.T) {
	t.Parallel()

	_, err := NewTemporaryExposureKey(strings.NewReader("short"), 0)
	if !errors.Is(err, coreerrors.ErrCrypto) {
		t.Fatalf("err = %v, want wrapping ErrCrypto", err)
	}
}

func TestGenerateTEK_ProducesDistinctKeys(t *testing.T) {
	t.Parallel()

	a, err := GenerateTEK(0)
	if err != nil {
		t.Fatalf("GenerateTEK: %v", err)
	}
	b, err := GenerateTEK(0)
	if err != nil {
		t.Fatalf("GenerateTEK: %v", err)
	}
	if a.KeyData == b.KeyData {
		t.Errorf("two independently generated TEKs collided: %x", a.KeyData)
	}
}
