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

// This package is a CLI tool for generating a synthetic TEK export file
// for local testing of the matching and export packages. It writes a
// standard "EK Export v1    " + protobuf-framed export.bin payload; it does
// not produce the signed zip container real distribution servers serve.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/google/exposure-notification-core/internal/synthetic"
	"github.com/google/exposure-notification-core/pkg/export"
	"github.com/google/exposure-notification-core/pkg/tek"
)

var (
	out          = flag.String("out", "export.bin", "Path to write the generated export.bin file to.")
	count        = flag.Int("count", 1000, "Number of synthetic TEKs to generate.")
	rollingStart = flag.Int64("rolling-start", 2644800, "Rolling start interval number shared by every generated TEK.")
	region       = flag.String("region", "", "Region string to record in the export metadata.")
)

func main() {
	flag.Parse()

	keys, err := synthetic.TEKs(*count, int32(*rollingStart))
	if err != nil {
		log.Fatalf("synthetic.TEKs: %v", err)
	}

	startSeconds := uint64(tek.TimeForIntervalNumber(int32(*rollingStart)).Unix())
	endSeconds := uint64(tek.TimeForIntervalNumber(int32(*rollingStart) + tek.IDsPerKey).Unix())

	payload, err := export.Marshal(export.Metadata{
		StartTimestamp: startSeconds,
		EndTimestamp:   endSeconds,
		Region:         *region,
		BatchNum:       1,
		BatchSize:      1,
	}, keys)
	if err != nil {
		log.Fatalf("export.Marshal: %v", err)
	}

	if err := os.WriteFile(*out, payload, 0o644); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
	log.Printf("wrote %d synthetic TEKs to %s", len(keys), *out)
	if len(keys) > 0 {
		log.Printf("first key_data (base64): %s", export.KeyDataBase64(keys[0]))
	}
}
