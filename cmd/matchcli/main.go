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

// This package is a CLI tool that demonstrates the full matching +
// evaluation pipeline end to end: it reads a TEK export file, builds a
// matching index from a local-sightings fixture, runs the matching engine,
// and scores any matched TEK against the same fixture's sighting history.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/google/exposure-notification-core/pkg/base64util"
	"github.com/google/exposure-notification-core/pkg/export"
	"github.com/google/exposure-notification-core/pkg/exposure"
	"github.com/google/exposure-notification-core/pkg/logging"
	"github.com/google/exposure-notification-core/pkg/matching"
)

var (
	exportPath   = flag.String("export", "", "Path to a TEK export.bin file (see cmd/genkeys).")
	sightingsPath = flag.String("sightings", "", "Path to a JSON file describing local sightings; see sightingsFixture.")
)

// sightingsFixture is the on-disk shape read from -sightings: the set of
// observed RPIs (base64, padding-tolerant, matching how real clients encode
// binary key material in JSON) that seed the matching index, plus the raw
// sighting history (shared across every matched TEK in this demo) used to
// score an exposure record once a match is found.
type sightingsFixture struct {
	ObservedRPIsBase64 []string `json:"observed_rpis_base64"`
	Sightings          []struct {
		EpochSeconds  int64 `json:"epoch_seconds"`
		AttenuationDB int   `json:"attenuation_db"`
	} `json:"sightings"`
}

func main() {
	flag.Parse()
	ctx := context.Background()
	logger := logging.FromContext(ctx)

	var cfg Config
	if err := envconfig.ProcessWith(ctx, &cfg, envconfig.OsLookuper()); err != nil {
		logger.Fatalw("loading configuration", "error", err)
	}
	if cfg.Debug {
		logger = logging.NewLogger(true)
	}

	if *exportPath == "" || *sightingsPath == "" {
		logger.Fatal("both -export and -sightings are required")
	}

	fixture, err := loadFixture(*sightingsPath)
	if err != nil {
		logger.Fatalw("loading sightings fixture", "error", err)
	}

	observed := make([]matching.RPI, 0, len(fixture.ObservedRPIsBase64))
	for _, b := range fixture.ObservedRPIsBase64 {
		raw, err := base64util.DecodeString(b)
		if err != nil || len(raw) != 16 {
			logger.Fatalw("invalid observed RPI", "value", b, "error", err)
		}
		var rpi matching.RPI
		copy(rpi[:], raw)
		observed = append(observed, rpi)
	}
	idx := matching.NewIndex(observed)
	logger.Infow("built matching index", "observed_rpis", idx.Len())

	content, err := os.ReadFile(*exportPath)
	if err != nil {
		logger.Fatalw("reading export file", "path", *exportPath, "error", err)
	}
	iter, err := export.NewIterator(content)
	if err != nil {
		logger.Fatalw("opening export file", "error", err)
	}

	matches, err := matching.MatchStream(ctx, idx, iter)
	if err != nil {
		logger.Fatalw("matching", "error", err)
	}
	logger.Infow("matching complete", "matches", len(matches))

	if len(fixture.Sightings) == 0 {
		return
	}

	sightings := make([]exposure.SightingWithMetadata, len(fixture.Sightings))
	for i, s := range fixture.Sightings {
		sightings[i] = exposure.SightingWithMetadata{
			Sighting: exposure.Sighting{Epoch: s.EpochSeconds, AttenuationDB: s.AttenuationDB},
		}
	}

	params := exposure.TracingParams{
		MinBucketizedDuration:    time.Duration(cfg.MinBucketizedDurationSeconds) * time.Second,
		ScanInterval:             time.Duration(cfg.ScanIntervalSeconds) * time.Second,
		MaxInterpolationDuration: time.Duration(cfg.MaxInterpolationDurationSeconds) * time.Second,
		InterpolationEnabled:     cfg.InterpolationEnabled,
		IgnoreEmbargoPeriodWhenMatchingNearKeyEdges: cfg.IgnoreEmbargoPeriodWhenMatchingNearKeyEdges,
		RecordSecondaryAttenuation:                   cfg.RecordSecondaryAttenuation,
	}
	tekMeta := exposure.DefaultTekMetadata()

	rawSightings := make([]exposure.Sighting, len(sightings))
	for i, s := range sightings {
		rawSightings[i] = s.Sighting
	}
	excfg := exposure.ExposureConfiguration{
		MinimumRiskScore:                cfg.MinimumRiskScore,
		AttenuationScores:               [8]int{8, 7, 6, 5, 4, 3, 2, 1},
		DaysSinceLastExposureScores:     [8]int{8, 7, 6, 5, 4, 3, 2, 1},
		DurationScores:                  [8]int{1, 2, 3, 4, 5, 6, 7, 8},
		TransmissionRiskScores:          [8]int{1, 2, 3, 4, 5, 6, 7, 8},
		DurationAtAttenuationThresholds: exposure.AttenuationThresholds{Lo: cfg.AttenuationThresholdLo, Hi: cfg.AttenuationThresholdHi},
	}

	for _, k := range matches {
		windows := exposure.BuildExposureWindows(rawSightings, tekMeta, params, k.RollingStartIntervalNumber, k.RollingPeriod)
		logger.Infow("built exposure windows", "rolling_start", k.RollingStartIntervalNumber, "windows", len(windows))

		result, ok := exposure.EvaluateTEK(sightings, params, excfg, 1, k.RollingStartIntervalNumber, k.RollingPeriod)
		if !ok {
			logger.Infow("matched TEK had no admitted exposure", "rolling_start", k.RollingStartIntervalNumber)
			continue
		}
		logger.Infow("scored exposure",
			"rolling_start", k.RollingStartIntervalNumber,
			"sum_risk_score", result.SumRiskScore,
			"max_risk_score", result.MaxRiskScore,
		)
	}
}

func loadFixture(path string) (*sightingsFixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fixture sightingsFixture
	if err := json.NewDecoder(bufio.NewReader(f)).Decode(&fixture); err != nil {
		return nil, err
	}
	return &fixture, nil
}
