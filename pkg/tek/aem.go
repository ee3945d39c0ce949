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
	"fmt"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
	"github.com/google/exposure-notification-core/pkg/encryption"
)

// AEMLength is the length, in bytes, of an Associated Encrypted Metadata
// payload: byte 0 is version/confidence, byte 1 is tx power, bytes 2-3 are
// reserved zero.
const AEMLength = 4

// EncryptAEM encrypts a 4-byte metadata payload under aemk, using rpi (the
// RPI broadcast in the same frame) as the CTR IV. AES-128-CTR is symmetric,
// so DecryptAEM is the identical call.
func EncryptAEM(aemk [16]byte, rpi [16]byte, metadata [AEMLength]byte) ([AEMLength]byte, error) {
	return xorAEM(aemk, rpi, metadata)
}

// DecryptAEM decrypts a 4-byte AEM payload encrypted by EncryptAEM under the
// same aemk and rpi.
func DecryptAEM(aemk [16]byte, rpi [16]byte, aem [AEMLength]byte) ([AEMLength]byte, error) {
	return xorAEM(aemk, rpi, aem)
}

func xorAEM(aemk [16]byte, rpi [16]byte, data [AEMLength]byte) ([AEMLength]byte, error) {
	var out [AEMLength]byte

	result, err := encryption.AES128CTR(aemk, rpi, data[:])
	if err != nil {
		return out, fmt.Errorf("tek: aem xor: %w", err)
	}
	if len(result) != AEMLength {
		return out, fmt.Errorf("tek: aem result length %d: %w", len(result), coreerrors.ErrInvalidArgument)
	}
	copy(out[:], result)
	return out, nil
}
