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
	"bytes"
	"testing"
)

func TestAES128CTR_RoundTrip(t *testing.T) {
	t.Parallel()

	var key, iv [KeyLength]byte
	copy(key[:], bytes.Repeat([]byte{0xAB}, KeyLength))
	copy(iv[:], bytes.Repeat([]byte{0xCD}, KeyLength))

	metadata := []byte{0x40, 0x05, 0x00, 0x00}

	ciphertext, err := AES128CTR(key, iv, metadata)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Equal(ciphertext, metadata) {
		t.Fatalf("ciphertext equals plaintext")
	}

	plaintext, err := AES128CTR(key, iv, ciphertext)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(plaintext, metadata) {
		t.Fatalf("got %x, want %x", plaintext, metadata)
	}
}

func TestAES128CTR_DifferentIVDifferentCiphertext(t *testing.T) {
	t.Parallel()

	var key, iv1, iv2 [KeyLength]byte
	copy(iv2[:], []byte{0x01})
	metadata := []byte{0x11, 0x22, 0x33, 0x44}

	c1, err := AES128CTR(key, iv1, metadata)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	c2, err := AES128CTR(key, iv2, metadata)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if bytes.Equal(c1, c2) {
		t.Fatalf("ciphertexts equal despite different IVs")
	}
}
