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

import (
	"fmt"

	"github.com/google/exposure-notification-core/pkg/base64util"
	"github.com/google/exposure-notification-core/pkg/tek"
)

// KeyDataBase64 renders a TEK's key_data the way clients put it on the wire
// in JSON and CLI contexts; the export.bin protobuf itself carries raw
// bytes, so base64 only shows up at those boundaries.
func KeyDataBase64(k tek.TemporaryExposureKey) string {
	return base64util.EncodeToString(k.KeyData[:])
}

// ParseKeyDataBase64 decodes a base64-encoded key_data value, as accepted
// from a JSON fixture or CLI flag, into the 16-byte array a
// tek.TemporaryExposureKey expects.
func ParseKeyDataBase64(s string) ([16]byte, error) {
	var out [16]byte
	raw, err := base64util.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("decoding key_data: %w", err)
	}
	if len(raw) != len(out) {
		return out, fmt.Errorf("decoded key_data must be %d bytes, got %d", len(out), len(raw))
	}
	copy(out[:], raw)
	return out, nil
}
