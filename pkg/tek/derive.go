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

// rpikInfo and aemkInfo are the HKDF info strings fixed by the EN protocol.
var (
	rpikInfo = []byte("EN-RPIK")
	aemkInfo = []byte("EN-AEMK")
)

// paddedDataPrefix is the fixed, TEK-independent first 12 bytes of every
// padded RPI data block: ASCII "EN-RPI" followed by six zero bytes. The
// last 4 bytes of each block are the interval number.
var paddedDataPrefix = [12]byte{'E', 'N', '-', 'R', 'P', 'I'}

// RollingProximityIdentifierKey derives the RPIK from a TEK's key material.
func RollingProximityIdentifierKey(k TemporaryExposureKey) ([16]byte, error) {
	return derivedKey(k.KeyData, rpikInfo)
}

// AssociatedEncryptedMetadataKey derives the AEMK from a TEK's key material.
func AssociatedEncryptedMetadataKey(k TemporaryExposureKey) ([16]byte, error) {
	return derivedKey(k.KeyData, aemkInfo)
}

func derivedKey(ikm [KeyLength]byte, info []byte) ([16]byte, error) {
	var out [16]byte
	raw, err := encryption.HKDFSHA256(ikm[:], nil, info, encryption.KeyLength)
	if err != nil {
		return out, fmt.Errorf("tek: deriving key: %w", err)
	}
	copy(out[:], raw)
	return out, nil
}

// paddedData builds the 16-byte padded data block for interval j:
// "EN-RPI" || 0x00*6 || uint32(j) little-endian.
func paddedData(j int32) [16]byte {
	var block [16]byte
	copy(block[:12], paddedDataPrefix[:])
	binary.LittleEndian.PutUint32(block[12:], uint32(j))
	return block
}
