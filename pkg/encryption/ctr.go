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
	"crypto/cipher"
	"fmt"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
)

// AES128CTR runs AES-128 in CTR mode over data with the given key and
// 16-byte IV. CTR is symmetric, so the same call both encrypts and decrypts
// associated encrypted metadata (AEM). The EN protocol only ever calls this
// with 4-byte data (the AEM payload), but the primitive itself places no
// restriction on length.
func AES128CTR(key, iv [KeyLength]byte, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("ctr: building cipher: %w: %v", coreerrors.ErrCrypto, err)
	}

	out := make([]byte, len(data))
	stream := cipher.NewCTR(block, iv[:])
	stream.XORKeyStream(out, data)
	return out, nil
}
