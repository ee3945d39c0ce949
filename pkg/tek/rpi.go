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
	"encoding/binary"
	"fmt"

	"github.com/google/exposure-notification-core/pkg/encryption"
)

// RPILength is the length, in bytes, of one Rolling Proximity Identifier.
const RPILength = 16

// RPI computes the single Rolling Proximity Identifier a TEK would broadcast
// at interval j. This is only needed at broadcast time (one identifier per
// advertisement); the matching engine's hot path uses BulkRPI instead.
func RPI(k TemporaryExposureKey, j int32) ([16]byte, error) {
	var out [16]byte

	rpik, err := RollingProximityIdentifierKey(k)
	if err != nil {
		return out, err
	}

	block := paddedData(j)
	ciphertext, err := encryption.AES128ECBEncrypt(rpik, block[:])
	if err != nil {
		return out, fmt.Errorf("tek: generating rpi: %w", err)
	}
	copy(out[:], ciphertext)
	return out, nil
}

// buildPaddedBuffer constructs the (IDsPerKey * 16)-byte plaintext input to
// the bulk ECB call for a TEK whose rolling period starts at rollingStart:
// byte ranges [i*16, i*16+12) hold the constant "EN-RPI" + zero prefix, and
// [i*16+12, i*16+16) hold (rollingStart+i) little-endian. This plaintext
// depends only on rollingStart, not on any particular TEK's key material, so
// it is cacheable across every TEK that shares a rolling start (see
// PaddedBufferCache).
func buildPaddedBuffer(rollingStart int32) []byte {
	buf := make([]byte, IDsPerKey*RPILength)
	for i := int32(0); i < IDsPerKey; i++ {
		offset := i * RPILength
		copy(buf[offset:offset+12], paddedDataPrefix[:])
		binary.LittleEndian.PutUint32(buf[offset+12:offset+16], uint32(rollingStart+i))
	}
	return buf
}

// BulkRPI generates all IDsPerKey RPIs a TEK covers in a single AES-128-ECB
// call, per spec's "don't call the ECB primitive 144 separate times on the
// hot path" requirement. The result is the concatenation of RPI(k, start+i)
// for i in [0, IDsPerKey), i.e. output[i*16:(i+1)*16] == RPI(k, start+i).
func BulkRPI(k TemporaryExposureKey) ([]byte, error) {
	rpik, err := RollingProximityIdentifierKey(k)
	if err != nil {
		return nil, err
	}
	plaintext := buildPaddedBuffer(k.RollingStartIntervalNumber)
	ciphertext, err := encryption.AES128ECBEncrypt(rpik, plaintext)
	if err != nil {
		return nil, fmt.Errorf("tek: generating bulk rpis: %w", err)
	}
	return ciphertext, nil
}

// BulkRPIWithPlaintext is like BulkRPI but takes an already-built plaintext
// buffer (from buildPaddedBuffer, possibly served out of a
// PaddedBufferCache), so callers that process many TEKs sharing a day only
// pay the buffer-construction cost once.
func BulkRPIWithPlaintext(k TemporaryExposureKey, plaintext []byte) ([]byte, error) {
	rpik, err := RollingProximityIdentifierKey(k)
	if err != nil {
		return nil, err
	}
	ciphertext, err := encryption.AES128ECBEncrypt(rpik, plaintext)
	if err != nil {
		return nil, fmt.Errorf("tek: generating bulk rpis: %w", err)
	}
	return ciphertext, nil
}
