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

// Package export implements the streaming reader and writer for the
// temporary exposure key export file format: a fixed 16-byte header followed
// by a TemporaryExposureKeyExport protobuf message, typically carried inside
// a zip archive alongside a detached signature.
package export

import (
	"bytes"
	"fmt"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
)

// FixedHeader is the literal 16-byte prefix every export.bin payload starts
// with, padded with trailing spaces to FixedHeaderWidth.
var FixedHeader = []byte("EK Export v1    ")

// FixedHeaderWidth is len(FixedHeader).
const FixedHeaderWidth = 16

// Container entry names, for hosts that carry export.bin inside a zip
// alongside a detached export.sig.
const (
	BinaryEntryName    = "export.bin"
	SignatureEntryName = "export.sig"
)

func init() {
	if len(FixedHeader) != FixedHeaderWidth {
		panic("export: FixedHeader does not match FixedHeaderWidth")
	}
}

// stripHeader validates and removes the fixed header, returning the
// remaining protobuf-encoded body.
func stripHeader(content []byte) ([]byte, error) {
	if len(content) < FixedHeaderWidth {
		return nil, fmt.Errorf("export: content is %d bytes, shorter than the %d-byte header: %w", len(content), FixedHeaderWidth, coreerrors.ErrBadHeader)
	}
	prefix := content[:FixedHeaderWidth]
	if !bytes.Equal(prefix, FixedHeader) {
		return nil, fmt.Errorf("export: unrecognized header %q: %w", prefix, coreerrors.ErrBadHeader)
	}
	return content[FixedHeaderWidth:], nil
}
