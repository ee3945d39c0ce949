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

package synthetic

import (
	mrand "math/rand"

	"github.com/google/exposure-notification-core/pkg/tek"
)

// TEKs returns n independently generated TEKs, all sharing rollingStart,
// drawn from crypto/rand via NewSource. Each call returns fresh key
// material; there is no seeding for reproducibility; these are meant as an
// unpredictable background population, not a golden fixture.
func TEKs(n int, rollingStart int32) ([]tek.TemporaryExposureKey, error) {
	r := mrand.New(NewSource())

	out := make([]tek.TemporaryExposureKey, n)
	for i := range out {
		var k tek.TemporaryExposureKey
		if _, err := r.Read(k.KeyData[:]); err != nil {
			return nil, err
		}
		k.RollingStartIntervalNumber = rollingStart
		k.RollingPeriod = tek.IDsPerKey
		out[i] = k
	}
	return out, nil
}
