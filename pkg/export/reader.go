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

package export

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
	"github.com/google/exposure-notification-core/pkg/tek"
)

// Iterator walks the TemporaryExposureKey records of a single export.bin
// payload one at a time, decoding only the fixed TEK-carrying field (7,
// "keys") and skipping every other top-level field by wire type. It never
// materializes the whole key set, so a host streaming many batches can
// process one TEK at a time without buffering the decoded result.
//
// Next returns (key, false, nil) for each key in the export, and
// (zero-value, true, nil) once the export is exhausted, matching the
// Next() (item, done, err) convention this module uses for its other
// iterators.
type Iterator struct {
	body []byte
}

// NewIterator validates content's fixed header and returns an Iterator over
// its TemporaryExposureKeyExport body.
func NewIterator(content []byte) (*Iterator, error) {
	body, err := stripHeader(content)
	if err != nil {
		return nil, err
	}
	return &Iterator{body: body}, nil
}

// Next decodes and returns the next TemporaryExposureKey record.
func (it *Iterator) Next() (tek.TemporaryExposureKey, bool, error) {
	for len(it.body) > 0 {
		num, typ, n := protowire.ConsumeTag(it.body)
		if n < 0 {
			return tek.TemporaryExposureKey{}, false, fmt.Errorf("export: consuming field tag: %w", coreerrors.ErrParse)
		}
		it.body = it.body[n:]

		if num != fieldKeys {
			m := protowire.ConsumeFieldValue(num, typ, it.body)
			if m < 0 {
				return tek.TemporaryExposureKey{}, false, fmt.Errorf("export: skipping field %d: %w", num, coreerrors.ErrParse)
			}
			it.body = it.body[m:]
			continue
		}

		if typ != protowire.BytesType {
			return tek.TemporaryExposureKey{}, false, fmt.Errorf("export: field 7 has wire type %d, want length-delimited: %w", typ, coreerrors.ErrParse)
		}
		raw, n := protowire.ConsumeBytes(it.body)
		if n < 0 {
			return tek.TemporaryExposureKey{}, false, fmt.Errorf("export: consuming key record: %w", coreerrors.ErrParse)
		}
		it.body = it.body[n:]

		k, err := parseTEK(raw)
		if err != nil {
			return tek.TemporaryExposureKey{}, false, err
		}
		return k, false, nil
	}
	return tek.TemporaryExposureKey{}, true, nil
}

// ReadAll drains an Iterator into a slice, for callers that don't need
// streaming (e.g. test fixtures, the matching engine's MatchIndices entry
// point).
func ReadAll(content []byte) ([]tek.TemporaryExposureKey, error) {
	it, err := NewIterator(content)
	if err != nil {
		return nil, err
	}
	var out []tek.TemporaryExposureKey
	for {
		k, done, err := it.Next()
		if err != nil {
			return nil, err
		}
		if done {
			return out, nil
		}
		out = append(out, k)
	}
}

func parseTEK(b []byte) (tek.TemporaryExposureKey, error) {
	var k tek.TemporaryExposureKey
	var gotKeyData bool

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return tek.TemporaryExposureKey{}, fmt.Errorf("export: consuming tek field tag: %w", coreerrors.ErrParse)
		}
		b = b[n:]

		switch num {
		case fieldTEKKeyData:
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return tek.TemporaryExposureKey{}, fmt.Errorf("export: consuming key_data: %w", coreerrors.ErrParse)
			}
			b = b[n:]
			if len(raw) != tek.KeyLength {
				return tek.TemporaryExposureKey{}, fmt.Errorf("export: key_data is %d bytes, want %d: %w", len(raw), tek.KeyLength, coreerrors.ErrParse)
			}
			copy(k.KeyData[:], raw)
			gotKeyData = true

		case fieldTEKTransmissionRiskLevel:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return tek.TemporaryExposureKey{}, fmt.Errorf("export: consuming transmission_risk_level: %w", coreerrors.ErrParse)
			}
			b = b[n:]
			risk := int32(v)
			k.TransmissionRiskLevel = &risk

		case fieldTEKRollingStartInterval:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return tek.TemporaryExposureKey{}, fmt.Errorf("export: consuming rolling_start_interval_number: %w", coreerrors.ErrParse)
			}
			b = b[n:]
			k.RollingStartIntervalNumber = int32(v)

		case fieldTEKRollingPeriod:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return tek.TemporaryExposureKey{}, fmt.Errorf("export: consuming rolling_period: %w", coreerrors.ErrParse)
			}
			b = b[n:]
			k.RollingPeriod = int32(v)

		case fieldTEKReportType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return tek.TemporaryExposureKey{}, fmt.Errorf("export: consuming report_type: %w", coreerrors.ErrParse)
			}
			b = b[n:]
			rt := tek.ReportType(int32(v))
			k.ReportType = &rt

		case fieldTEKDaysSinceOnsetOfSymptoms:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return tek.TemporaryExposureKey{}, fmt.Errorf("export: consuming days_since_onset_of_symptoms: %w", coreerrors.ErrParse)
			}
			b = b[n:]
			days := int32(protowire.DecodeZigZag(v))
			k.DaysSinceOnsetOfSymptoms = &days

		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return tek.TemporaryExposureKey{}, fmt.Errorf("export: skipping tek field %d: %w", num, coreerrors.ErrParse)
			}
			b = b[m:]
		}
	}

	if !gotKeyData {
		return tek.TemporaryExposureKey{}, fmt.Errorf("export: key record missing key_data: %w", coreerrors.ErrParse)
	}
	if k.RollingPeriod == 0 {
		k.RollingPeriod = tek.IDsPerKey
	}
	return k, nil
}
