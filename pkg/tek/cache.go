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
	"strconv"
	"time"

	"github.com/google/exposure-notification-core/pkg/cache"
)

// retentionWindow bounds how long a day's padded buffer stays warm: the
// spec's own retention window (today-14 days..today), rounded up so a
// buffer built at the start of a day doesn't expire mid-batch. It is not a
// hard deadline — a TEK outside the window simply rebuilds its buffer on
// next use instead of reusing a stale one indefinitely.
const retentionWindow = 15 * 24 * time.Hour

// PaddedBufferCache memoizes buildPaddedBuffer results by day number, so
// bulk RPI generation for many different TEKs that share a rolling start
// (the common case: every TEK published for a given day) only builds the
// plaintext buffer once. It wraps pkg/cache.Cache, the generic write-through
// cache this module uses elsewhere, keyed by the decimal day number.
type PaddedBufferCache struct {
	c *cache.Cache
}

// NewPaddedBufferCache returns an empty cache.
func NewPaddedBufferCache() *PaddedBufferCache {
	c, err := cache.New(retentionWindow)
	if err != nil {
		// retentionWindow is a positive constant; cache.New only rejects
		// negative durations.
		panic(err)
	}
	return &PaddedBufferCache{c: c}
}

// Get returns the cached plaintext padded buffer for the day starting at
// rollingStart, building and storing it on a miss.
func (c *PaddedBufferCache) Get(rollingStart int32) ([]byte, error) {
	key := strconv.Itoa(int(DayNumber(rollingStart)))

	val, err := c.c.WriteThruLookup(key, func() (interface{}, error) {
		return buildPaddedBuffer(rollingStart), nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]byte), nil
}
