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

package matching

import (
	"context"
	"testing"

	"github.com/google/exposure-notification-core/internal/synthetic"
	"github.com/google/exposure-notification-core/pkg/tek"
)

// sliceSource adapts a []tek.TemporaryExposureKey into a TEKSource, the way
// pkg/export.Iterator would for a real export file.
type sliceSource struct {
	keys []tek.TemporaryExposureKey
	pos  int
}

func (s *sliceSource) Next() (tek.TemporaryExposureKey, bool, error) {
	if s.pos >= len(s.keys) {
		return tek.TemporaryExposureKey{}, true, nil
	}
	k := s.keys[s.pos]
	s.pos++
	return k, false, nil
}

func TestMatchStream_EmptyLocalIndexNoMatches(t *testing.T) {
	t.Parallel()

	teks, err := synthetic.TEKs(10, 2644800)
	if err != nil {
		t.Fatalf("synthetic.TEKs: %v", err)
	}

	idx := NewIndex(nil)
	matches, err := MatchStream(context.Background(), idx, &sliceSource{keys: teks})
	if err != nil {
		t.Fatalf("MatchStream: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("got %d matches against an empty index, want 0", len(matches))
	}
}

func TestMatchStream_FindsSinglePlantedMatchAmongNoise(t *testing.T) {
	t.Parallel()

	noise, err := synthetic.TEKs(999, 2644800)
	if err != nil {
		t.Fatalf("synthetic.TEKs: %v", err)
	}
	planted, err := tek.GenerateTEK(2647152)
	if err != nil {
		t.Fatalf("GenerateTEK: %v", err)
	}

	rpi, err := tek.RPI(planted, planted.RollingStartIntervalNumber+10)
	if err != nil {
		t.Fatalf("RPI: %v", err)
	}
	idx := NewIndex([]RPI{rpi})

	all := append([]tek.TemporaryExposureKey{planted}, noise...)
	matches, err := MatchStream(context.Background(), idx, &sliceSource{keys: all})
	if err != nil {
		t.Fatalf("MatchStream: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].KeyData != planted.KeyData {
		t.Fatalf("matched TEK is not the planted one")
	}
}

func TestMatchIndices_ReturnsInputOrderIndices(t *testing.T) {
	t.Parallel()

	noise, err := synthetic.TEKs(50, 2644800)
	if err != nil {
		t.Fatalf("synthetic.TEKs: %v", err)
	}
	planted, err := tek.GenerateTEK(2647152)
	if err != nil {
		t.Fatalf("GenerateTEK: %v", err)
	}
	rpi, err := tek.RPI(planted, planted.RollingStartIntervalNumber)
	if err != nil {
		t.Fatalf("RPI: %v", err)
	}
	idx := NewIndex([]RPI{rpi})

	all := append(append([]tek.TemporaryExposureKey{}, noise[:25]...), planted)
	all = append(all, noise[25:]...)

	indices, err := MatchIndices(context.Background(), idx, all)
	if err != nil {
		t.Fatalf("MatchIndices: %v", err)
	}
	if len(indices) != 1 || indices[0] != 25 {
		t.Fatalf("indices = %v, want [25]", indices)
	}
}

func TestMatchStream_RespectsCancellation(t *testing.T) {
	t.Parallel()

	teks, err := synthetic.TEKs(5, 2644800)
	if err != nil {
		t.Fatalf("synthetic.TEKs: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx := NewIndex(nil)
	_, err = MatchStream(ctx, idx, &sliceSource{keys: teks})
	if err == nil {
		t.Fatal("expected cancellation error, got nil")
	}
}

func TestMatchIndices_RejectsOversizedBatch(t *testing.T) {
	t.Parallel()

	idx := NewIndex(nil)
	oversized := make([]tek.TemporaryExposureKey, MaxBatchSize+1)
	if _, err := MatchIndices(context.Background(), idx, oversized); err == nil {
		t.Fatal("expected oversized-batch error, got nil")
	}
}
