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

package encryption

import (
	"crypto/aes"
	"fmt"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
)

// AES128ECBEncrypt bulk-encrypts plaintext under key using AES-128 in ECB
// mode, with no padding. len(plaintext) must be a multiple of aes.BlockSize.
//
// Go's standard library deliberately does not expose an ECB cipher.Mode
// (the mode leaks patterns in repeated plaintext blocks), so this loops a
// single block cipher directly. That weakness does not apply here: every
// call site encrypts a buffer of distinct, non-repeating padded-interval
// blocks (see the "Bulk RPI generation" design in package tek), never the
// same plaintext block twice under the same key.
func AES128ECBEncrypt(key [KeyLength]byte, plaintext []byte) ([]byte, error) {
	if len(plaintext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ecb: plaintext length %d is not a multiple of %d: %w", len(plaintext), aes.BlockSize, coreerrors.ErrInvalidArgument)
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("ecb: building cipher: %w: %v", coreerrors.ErrCrypto, err)
	}

	ciphertext := make([]byte, len(plaintext))
	for offset := 0; offset < len(plaintext); offset += aes.BlockSize {
		block.Encrypt(ciphertext[offset:offset+aes.BlockSize], plaintext[offset:offset+aes.BlockSize])
	}
	return ciphertext, nil
}
