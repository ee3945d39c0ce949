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
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/google/exposure-notification-core/pkg/coreerrors"
	"github.com/google/exposure-notification-core/pkg/tek"
)

// retryableReader is the hint a caller's io.Reader can implement to mark its
// I/O errors as transient (a flaky object-storage download, say) rather than
// a genuinely malformed payload.
type retryableReader interface {
	Retryable(err error) bool
}

// ReadAllFrom reads r fully, retrying transient read failures with a bounded
// exponential backoff, then parses the result the same way ReadAll does. If
// r implements retryableReader, its Retryable method decides whether a read
// error is worth retrying; otherwise every read error is treated as
// permanent, matching io.Reader's usual contract.
func ReadAllFrom(ctx context.Context, r io.Reader) ([]tek.TemporaryExposureKey, error) {
	b, err := retry.NewExponential(100 * time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("export: building retry backoff: %w", err)
	}
	b = retry.WithMaxRetries(5, b)

	hint, _ := r.(retryableReader)

	var content []byte
	if err := retry.Do(ctx, b, func(ctx context.Context) error {
		data, err := io.ReadAll(r)
		if err != nil {
			if hint != nil && hint.Retryable(err) {
				return retry.RetryableError(fmt.Errorf("export: reading export body: %w: %v", coreerrors.ErrIO, err))
			}
			return fmt.Errorf("export: reading export body: %w: %v", coreerrors.ErrIO, err)
		}
		content = data
		return nil
	}); err != nil {
		return nil, err
	}

	return ReadAll(content)
}
