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
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"
)

// Manager is the RollingProximityIdManager described in the design notes: it
// holds the single active TEK and the last RPI it handed out, plus the
// padded-data cache, behind one mutex. CurrentTEK and CurrentRPI are its only
// exported accessors; no other component is allowed to mutate this state
// between calls.
type Manager struct {
	mu     sync.Mutex
	rand   io.Reader
	active *TemporaryExposureKey
	cache  *PaddedBufferCache

	lastInterval int32
	lastRPI      [16]byte
}

// NewManager returns a Manager that draws TEK key material from
// crypto/rand.Reader.
func NewManager() *Manager {
	return &Manager{
		rand:  rand.Reader,
		cache: NewPaddedBufferCache(),
	}
}

// CurrentTEK returns the active TEK as of now, generating a new one if the
// active TEK is absent or expired. The same TEK is returned for repeated
// calls within its rolling period.
func (m *Manager) CurrentTEK(now time.Time) (TemporaryExposureKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTEKLocked(now)
}

func (m *Manager) currentTEKLocked(now time.Time) (TemporaryExposureKey, error) {
	cur := IntervalNumber(now)

	if m.active == nil || cur >= m.active.EndIntervalNumber() {
		rollingStart := RollingStartIntervalNumber(now)
		k, err := NewTemporaryExposureKey(m.rand, rollingStart)
		if err != nil {
			return TemporaryExposureKey{}, fmt.Errorf("tek manager: generating tek: %w", err)
		}
		m.active = &k
	}
	return *m.active, nil
}

// CurrentRPI returns the RPI to broadcast at time now, generating (and
// caching) a new active TEK first if necessary.
func (m *Manager) CurrentRPI(now time.Time) ([16]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k, err := m.currentTEKLocked(now)
	if err != nil {
		return [16]byte{}, err
	}

	interval := IntervalNumber(now)
	if interval == m.lastInterval && m.lastRPI != ([16]byte{}) {
		return m.lastRPI, nil
	}

	plaintext, err := m.cache.Get(k.RollingStartIntervalNumber)
	if err != nil {
		return [16]byte{}, fmt.Errorf("tek manager: padded buffer: %w", err)
	}

	offset := (interval - k.RollingStartIntervalNumber) * RPILength
	block := [16]byte{}
	ciphertext, err := BulkRPIWithPlaintext(k, plaintext[offset:offset+RPILength])
	if err != nil {
		return [16]byte{}, fmt.Errorf("tek manager: generating rpi: %w", err)
	}
	copy(block[:], ciphertext)

	m.lastInterval = interval
	m.lastRPI = block
	return block, nil
}
