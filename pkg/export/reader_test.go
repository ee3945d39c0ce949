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
	"errors"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
	"github.com/google/exposure-notification-core/pkg/tek"
)

func sampleKey(seed byte, rollingStart int32) tek.TemporaryExposureKey {
	var k tek.TemporaryExposureKey
	for i := range k.KeyData {
		k.KeyData[i] = seed
	}
	k.RollingStartIntervalNumber = rollingStart
	k.RollingPeriod = tek.IDsPerKey
	return k
}

func TestMarshalReadAll_RoundTrips(t *testing.T) {
	t.Parallel()

	risk := int32(5)
	reportType := tek.ReportTypeConfirmedTest
	days := int32(2)

	want := []tek.TemporaryExposureKey{
		sampleKey(0x01, 2644800),
		{
			KeyData:                    [16]byte{2: 0xaa},
			RollingStartIntervalNumber: 2644944,
			RollingPeriod:              tek.IDsPerKey,
			TransmissionRiskLevel:      &risk,
			ReportType:                 &reportType,
			DaysSinceOnsetOfSymptoms:   &days,
		},
	}

	content, err := Marshal(Metadata{
		StartTimestamp: 1588291200,
		EndTimestamp:   1588377600,
		Region:         "US",
		BatchNum:       1,
		BatchSize:      1,
	}, want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := ReadAll(content)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d keys, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].KeyData != want[i].KeyData {
			t.Errorf("key %d: KeyData = %x, want %x", i, got[i].KeyData, want[i].KeyData)
		}
		if got[i].RollingStartIntervalNumber != want[i].RollingStartIntervalNumber {
			t.Errorf("key %d: RollingStartIntervalNumber = %d, want %d", i, got[i].RollingStartIntervalNumber, want[i].RollingStartIntervalNumber)
		}
	}

	if got[1].TransmissionRiskLevel == nil || *got[1].TransmissionRiskLevel != risk {
		t.Errorf("key 1: TransmissionRiskLevel = %v, want %d", got[1].TransmissionRiskLevel, risk)
	}
	if got[1].ReportType == nil || *got[1].ReportType != reportType {
		t.Errorf("key 1: ReportType = %v, want %d", got[1].ReportType, reportType)
	}
	if got[1].DaysSinceOnsetOfSymptoms == nil || *got[1].DaysSinceOnsetOfSymptoms != days {
		t.Errorf("key 1: DaysSinceOnsetOfSymptoms = %v, want %d", got[1].DaysSinceOnsetOfSymptoms, days)
	}
}

// TestReadAll_SkipsUnknownFieldsAroundKeys parses a hand-built export
// containing a header, a non-TEK field, two TEK records, and another
// non-TEK field, confirming the two keys decode while the other fields are
// silently skipped by wire type.
func TestReadAll_SkipsUnknownFieldsAroundKeys(t *testing.T) {
	t.Parallel()

	keyA := sampleKey(0x11, 2644800)
	keyB := sampleKey(0x22, 2644800)

	var body []byte
	body = protowire.AppendTag(body, fieldExportRegion, protowire.BytesType)
	body = protowire.AppendBytes(body, []byte("US"))

	body = protowire.AppendTag(body, fieldKeys, protowire.BytesType)
	body = protowire.AppendBytes(body, marshalTEK(keyA))

	body = protowire.AppendTag(body, fieldKeys, protowire.BytesType)
	body = protowire.AppendBytes(body, marshalTEK(keyB))

	body = protowire.AppendTag(body, fieldExportBatchNum, protowire.VarintType)
	body = protowire.AppendVarint(body, 1)

	content := append(append([]byte{}, FixedHeader...), body...)

	got, err := ReadAll(content)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d keys, want 2", len(got))
	}
	if got[0].KeyData != keyA.KeyData || got[1].KeyData != keyB.KeyData {
		t.Fatalf("decoded keys don't match inputs")
	}
}

func TestReadAll_EmptyExportYieldsNoKeys(t *testing.T) {
	t.Parallel()

	content, err := Marshal(Metadata{}, nil)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := ReadAll(content)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d keys, want 0", len(got))
	}
}

func TestNewIterator_RejectsBadHeader(t *testing.T) {
	t.Parallel()

	_, err := NewIterator([]byte("not an export file at all"))
	if !errors.Is(err, coreerrors.ErrBadHeader) {
		t.Fatalf("err = %v, want wrapping ErrBadHeader", err)
	}
}

func TestNewIterator_RejectsShortContent(t *testing.T) {
	t.Parallel()

	_, err := NewIterator([]byte("short"))
	if !errors.Is(err, coreerrors.ErrBadHeader) {
		t.Fatalf("err = %v, want wrapping ErrBadHeader", err)
	}
}

func TestReadAll_RejectsTruncatedKeyData(t *testing.T) {
	t.Parallel()

	var rec []byte
	rec = protowire.AppendTag(rec, fieldTEKKeyData, protowire.BytesType)
	rec = protowire.AppendBytes(rec, []byte("tooshort"))

	var body []byte
	body = protowire.AppendTag(body, fieldKeys, protowire.BytesType)
	body = protowire.AppendBytes(body, rec)

	content := append(append([]byte{}, FixedHeader...), body...)

	_, err := ReadAll(content)
	if !errors.Is(err, coreerrors.ErrParse) {
		t.Fatalf("err = %v, want wrapping ErrParse", err)
	}
}
