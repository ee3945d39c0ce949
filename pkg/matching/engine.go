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
	"fmt"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
	"github.com/google/exposure-notification-core/pkg/logging"
	"github.com/google/exposure-notification-core/pkg/tek"
)

// MaxBatchSize is the largest number of TEKs a single MatchStream or
// MatchIndices call accepts. Callers with more TEKs re-enter with the next
// batch; the engine itself never buffers more than one batch's worth of
// input at a time.
const MaxBatchSize = 10000

// TEKSource is anything that yields TemporaryExposureKeys one at a time,
// signaling exhaustion with done == true. pkg/export's Iterator satisfies
// this without any adapter.
type TEKSource interface {
	Next() (tek.TemporaryExposureKey, bool, error)
}

// MatchStream consumes src until exhaustion or ctx is cancelled, returning
// every TEK whose generated RPIs hit idx, in the order they were read. A
// per-TEK RPI-generation failure is logged and that TEK is skipped rather
// than failing the whole batch; a source read failure (export-parse error)
// stops consumption and is returned.
func MatchStream(ctx context.Context, idx *Index, src TEKSource) ([]tek.TemporaryExposureKey, error) {
	log := logging.FromContext(ctx)

	var matches []tek.TemporaryExposureKey
	for count := 0; ; count++ {
		if count > MaxBatchSize {
			return nil, fmt.Errorf("matching: batch exceeds %d TEKs: %w", MaxBatchSize, coreerrors.ErrInvalidArgument)
		}
		if err := ctx.Err(); err != nil {
			return matches, err
		}

		k, done, err := src.Next()
		if err != nil {
			return matches, fmt.Errorf("matching: reading tek stream: %w", err)
		}
		if done {
			return matches, nil
		}

		matched, err := matchTEK(idx, k)
		if err != nil {
			log.Warnw("skipping tek: rpi generation failed", "error", err)
			continue
		}
		if matched {
			matches = append(matches, k)
		}
	}
}

// MatchIndices is the legacy pre-computed-batch entry point: teks is fully
// loaded ahead of time, and the result is the set of indices (in input
// order) of the TEKs that matched idx. It shares matchTEK with MatchStream
// so both entry points apply identical match semantics.
func MatchIndices(ctx context.Context, idx *Index, teks []tek.TemporaryExposureKey) ([]int, error) {
	if len(teks) > MaxBatchSize {
		return nil, fmt.Errorf("matching: batch of %d TEKs exceeds %d: %w", len(teks), MaxBatchSize, coreerrors.ErrInvalidArgument)
	}
	log := logging.FromContext(ctx)

	var matches []int
	for i, k := range teks {
		if err := ctx.Err(); err != nil {
			return matches, err
		}

		matched, err := matchTEK(idx, k)
		if err != nil {
			log.Warnw("skipping tek: rpi generation failed", "index", i, "error", err)
			continue
		}
		if matched {
			matches = append(matches, i)
		}
	}
	return matches, nil
}

// matchTEK generates k's 144 RPIs (bulk path) and checks each against idx,
// stopping at the first hit. Per spec, an early exit on match is permitted,
// but a miss never skips checking the remaining RPIs on the assumption that
// a populated prefix bucket implies a match; every RPI is checked against
// the index's actual contents.
func matchTEK(idx *Index, k tek.TemporaryExposureKey) (bool, error) {
	rpis, err := tek.BulkRPI(k)
	if err != nil {
		return false, err
	}

	for offset := 0; offset < len(rpis); offset += tek.RPILength {
		var rpi RPI
		copy(rpi[:], rpis[offset:offset+tek.RPILength])
		if _, ok := idx.Contains(rpi); ok {
			return true, nil
		}
	}
	return false, nil
}
