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

// Package encryption implements the three cryptographic primitives the
// Exposure Notification protocol is built from: HKDF-SHA256 key derivation,
// bulk AES-128-ECB encryption, and AES-128-CTR encrypt/decrypt. All three
// are pure functions; none hold hidden mutable state.
package encryption

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
)

// KeyLength is the only output length the EN protocol ever derives keys at.
const KeyLength = 16

// HKDFSHA256 derives a KeyLength-byte key from ikm using RFC 5869 HKDF with
// SHA-256. A nil or empty salt is treated as a 32-byte all-zero salt, per the
// EN spec (this is also HKDF's own documented behavior, but the EN spec calls
// it out explicitly so we do too).
//
// length must equal KeyLength; any other value returns
// coreerrors.ErrUnsupportedLength.
func HKDFSHA256(ikm, salt, info []byte, length int) ([]byte, error) {
	if length != KeyLength {
		return nil, fmt.Errorf("hkdf: requested length %d: %w", length, coreerrors.ErrUnsupportedLength)
	}

	r := hkdf.New(sha256.New, ikm, salt, info)
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("hkdf: deriving key: %w: %v", coreerrors.ErrCrypto, err)
	}
	return out, nil
}
