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
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/google/exposure-notification-core/pkg/tek"
)

// Metadata carries the top-level TemporaryExposureKeyExport fields Marshal
// writes alongside the key records. Region, BatchNum and BatchSize are
// informational only; this package's own reader skips them.
type Metadata struct {
	StartTimestamp uint64
	EndTimestamp   uint64
	Region         string
	BatchNum       int32
	BatchSize      int32
}

// Marshal encodes meta and keys into a complete export.bin payload: the
// fixed header followed by the protobuf-encoded TemporaryExposureKeyExport
// message. It is the write side of NewIterator/ReadAll, kept in this package
// so round-trip tests don't need an external fixture generator.
func Marshal(meta Metadata, keys []tek.TemporaryExposureKey) ([]byte, error) {
	var body []byte

	body = protowire.AppendTag(body, fieldExportStartTimestamp, protowire.VarintType)
	body = protowire.AppendVarint(body, meta.StartTimestamp)

	body = protowire.AppendTag(body, fieldExportEndTimestamp, protowire.VarintType)
	body = protowire.AppendVarint(body, meta.EndTimestamp)

	if meta.Region != "" {
		body = protowire.AppendTag(body, fieldExportRegion, protowire.BytesType)
		body = protowire.AppendBytes(body, []byte(meta.Region))
	}

	body = protowire.AppendTag(body, fieldExportBatchNum, protowire.VarintType)
	body = protowire.AppendVarint(body, uint64(meta.BatchNum))

	body = protowire.AppendTag(body, fieldExportBatchSize, protowire.VarintType)
	body = protowire.AppendVarint(body, uint64(meta.BatchSize))

	for _, k := range keys {
		rec := marshalTEK(k)
		body = protowire.AppendTag(body, fieldKeys, protowire.BytesType)
		body = protowire.AppendBytes(body, rec)
	}

	out := make([]byte, 0, FixedHeaderWidth+len(body))
	out = append(out, FixedHeader...)
	out = append(out, body...)
	return out, nil
}

func marshalTEK(k tek.TemporaryExposureKey) []byte {
	var buf []byte

	buf = protowire.AppendTag(buf, fieldTEKKeyData, protowire.BytesType)
	buf = protowire.AppendBytes(buf, k.KeyData[:])

	buf = protowire.AppendTag(buf, fieldTEKRollingStartInterval, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(uint32(k.RollingStartIntervalNumber)))

	buf = protowire.AppendTag(buf, fieldTEKRollingPeriod, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(uint32(k.RollingPeriod)))

	if k.TransmissionRiskLevel != nil {
		buf = protowire.AppendTag(buf, fieldTEKTransmissionRiskLevel, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(uint32(*k.TransmissionRiskLevel)))
	}

	if k.ReportType != nil {
		buf = protowire.AppendTag(buf, fieldTEKReportType, protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(uint32(*k.ReportType)))
	}

	if k.DaysSinceOnsetOfSymptoms != nil {
		buf = protowire.AppendTag(buf, fieldTEKDaysSinceOnsetOfSymptoms, protowire.VarintType)
		buf = protowire.AppendVarint(buf, protowire.EncodeZigZag(int64(*k.DaysSinceOnsetOfSymptoms)))
	}

	return buf
}
