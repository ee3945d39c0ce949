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

// Package tek implements the Temporary Exposure Key lifecycle: key
// generation, RPIK/AEMK derivation, Rolling Proximity Identifier generation
// (single and bulk), and Associated Encrypted Metadata encrypt/decrypt.
package tek

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
)

// IDsPerKey is the number of 10-minute intervals a TEK is valid for: 144
// intervals * 10 minutes = 24 hours.
const IDsPerKey = 144

// KeyLength is the length, in bytes, of a TEK's key material.
const KeyLength = 16

// ReportType mirrors the diagnosis report-type enumeration carried
// alongside a published TEK.
type ReportType int32

const (
	ReportTypeUnknown ReportType = iota
	ReportTypeConfirmedTest
	ReportTypeConfirmedClinical
	ReportTypeSelfReport
	ReportTypeRecursive
	ReportTypeRevoked
)

// UnknownDaysSinceOnset is the sentinel value for an unset/unknown
// days-since-symptom-onset field.
const UnknownDaysSinceOnset = 1 << 30

// TemporaryExposureKey is the 16-byte per-day seed a device generates, from
// which RPIs and the AEM key are both derived. It is immutable once created.
type TemporaryExposureKey struct {
	KeyData                   [KeyLength]byte
	RollingStartIntervalNumber int32
	RollingPeriod              int32

	// TransmissionRiskLevel and ReportType are optional. A nil pointer means
	// "not set" — distinct from the zero value of the underlying type.
	TransmissionRiskLevel *int32
	ReportType             *ReportType

	// DaysSinceOnsetOfSymptoms is optional; nil means unknown.
	DaysSinceOnsetOfSymptoms *int32
}

// EndIntervalNumber is the TEK's exclusive end interval:
// RollingStartIntervalNumber + RollingPeriod.
func (k TemporaryExposureKey) EndIntervalNumber() int32 {
	return k.RollingStartIntervalNumber + k.RollingPeriod
}

// Covers reports whether interval j falls within [start, start+period).
func (k TemporaryExposureKey) Covers(interval int32) bool {
	return interval >= k.RollingStartIntervalNumber && interval < k.EndIntervalNumber()
}

// DayNumber is the calendar-day index of an interval number:
// floor(interval / IDsPerKey).
func DayNumber(interval int32) int32 {
	if interval >= 0 {
		return interval / IDsPerKey
	}
	// Go truncates integer division toward zero; for negative intervals we
	// need floor division instead. Realistic interval numbers (seconds since
	// the Unix epoch / 600) are never negative, but the floor-division
	// semantics are part of the data model regardless.
	q := interval / IDsPerKey
	if interval%IDsPerKey != 0 {
		q--
	}
	return q
}

// NewTemporaryExposureKey generates a new TEK whose key material comes from
// r (typically crypto/rand.Reader) and whose RollingStartIntervalNumber is
// rollingStart, which must already be day-aligned
// (rollingStart % IDsPerKey == 0).
func NewTemporaryExposureKey(r io.Reader, rollingStart int32) (TemporaryExposureKey, error) {
	if rollingStart%IDsPerKey != 0 {
		return TemporaryExposureKey{}, fmt.Errorf("tek: rolling start %d is not day-aligned: %w", rollingStart, coreerrors.ErrInvalidArgument)
	}

	var k TemporaryExposureKey
	if _, err := io.ReadFull(r, k.KeyData[:]); err != nil {
		return TemporaryExposureKey{}, fmt.Errorf("tek: reading key material: %w: %v", coreerrors.ErrCrypto, err)
	}
	k.RollingStartIntervalNumber = rollingStart
	k.RollingPeriod = IDsPerKey
	return k, nil
}

// GenerateTEK is a convenience wrapper over NewTemporaryExposureKey using
// crypto/rand.Reader as the entropy source, the RNG every device uses in
// practice.
func GenerateTEK(rollingStart int32) (TemporaryExposureKey, error) {
	return NewTemporaryExposureKey(rand.Reader, rollingStart)
}
