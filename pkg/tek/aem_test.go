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

import "testing"

func TestEncryptDecryptAEM_RoundTrips(t *testing.T) {
	t.Parallel()

	k := key042()
	aemk, err := AssociatedEncryptedMetadataKey(k)
	if err != nil {
		t.Fatalf("AssociatedEncryptedMetadataKey: %v", err)
	}
	rpi, err := RPI(k, k.RollingStartIntervalNumber)
	if err != nil {
		t.Fatalf("RPI: %v", err)
	}

	metadata := [AEMLength]byte{0x01, 0xc3, 0x00, 0x00}

	ciphertext, err := EncryptAEM(aemk, rpi, metadata)
	if err != nil {
		t.Fatalf("EncryptAEM: %v", err)
	}
	if ciphertext == metadata {
		t.Errorf("ciphertext equals plaintext; CTR keystream did not apply")
	}

	plaintext, err := DecryptAEM(aemk, rpi, ciphertext)
	if err != nil {
		t.Fatalf("DecryptAEM: %v", err)
	}
	if plaintext != metadata {
		t.Errorf("DecryptAEM(EncryptAEM(m)) = %x, want %x", plaintext, metadata)
	}
}

func TestEncryptAEM_DifferentRPIDifferentCiphertext(t *testing.T) {
	t.Parallel()

	k := key042()
	aemk, err := AssociatedEncryptedMetadataKey(k)
	if err != nil {
		t.Fatalf("AssociatedEncryptedMetadataKey: %v", err)
	}
	rpiA, err := RPI(k, k.RollingStartIntervalNumber)
	if err != nil {
		t.Fatalf("RPI: %v", err)
	}
	rpiB, err := RPI(k, k.RollingStartIntervalNumber+1)
	if err != nil {
		t.Fatalf("RPI: %v", err)
	}

	metadata := [AEMLength]byte{0x01, 0xc3, 0x00, 0x00}

	a, err := EncryptAEM(aemk, rpiA, metadata)
	if err != nil {
		t.Fatalf("EncryptAEM: %v", err)
	}
	b, err := EncryptAEM(aemk, rpiB, metadata)
	if err != nil {
		t.Fatalf("EncryptAEM: %v", err)
	}
	if a == b {
		t.Errorf("ciphertext identical across distinct RPIs used as IV")
	}
}
