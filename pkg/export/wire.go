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

import "google.golang.org/protobuf/encoding/protowire"

// Field numbers of the top-level TemporaryExposureKeyExport message. Only
// fieldKeys is interpreted by this package's reader; every other field is
// skipped by wire type so unrecognized or future fields never break parsing.
const (
	fieldExportStartTimestamp protowire.Number = 1
	fieldExportEndTimestamp   protowire.Number = 2
	fieldExportRegion         protowire.Number = 3
	fieldExportBatchNum       protowire.Number = 4
	fieldExportBatchSize      protowire.Number = 5
	fieldExportSignatureInfos protowire.Number = 6
	fieldKeys                 protowire.Number = 7
	fieldRevisedKeys          protowire.Number = 8
)

// Field numbers of the nested TemporaryExposureKey message.
const (
	fieldTEKKeyData                 protowire.Number = 1
	fieldTEKTransmissionRiskLevel    protowire.Number = 2
	fieldTEKRollingStartInterval     protowire.Number = 3
	fieldTEKRollingPeriod            protowire.Number = 4
	fieldTEKReportType               protowire.Number = 5
	fieldTEKDaysSinceOnsetOfSymptoms protowire.Number = 6
)
