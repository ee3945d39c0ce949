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
	"archive/zip"
	"fmt"
	"io"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
)

// OpenZipEntry opens the named entry (typically BinaryEntryName or
// SignatureEntryName) out of a zip archive, the container format health
// authorities distribute export batches in: export.bin next to a detached
// export.sig. Signature verification itself is the host's responsibility;
// this is only a convenience so a host doesn't have to re-derive the
// container format to hand NewIterator its export.bin bytes.
func OpenZipEntry(r io.ReaderAt, size int64, name string) (io.ReadCloser, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("export: opening zip: %w: %v", coreerrors.ErrIO, err)
	}

	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("export: opening zip entry %q: %w: %v", name, coreerrors.ErrIO, err)
			}
			return rc, nil
		}
	}
	return nil, fmt.Errorf("export: zip has no entry %q: %w", name, coreerrors.ErrBadHeader)
}
