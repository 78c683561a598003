/*
Copyright 2022 CodeNotary, Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package runner

import (
	"context"
	"fmt"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
)

// RunInfo identifies a completed sweep
type RunInfo struct {
	ID      string
	Name    string
	Backend string
	Start   time.Time
	End     time.Time
}

// Sink publishes the results of a completed sweep
type Sink interface {
	Publish(ctx context.Context, run RunInfo, results []Result) error
	Close()
}

const influxMeasurement = "txbench"

// InfluxSink writes one point per sweep result to an InfluxDB v2 bucket
type InfluxSink struct {
	client influxdb2.Client
	writer api.WriteAPIBlocking
}

func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClient(url, token)

	return &InfluxSink{
		client: client,
		writer: client.WriteAPIBlocking(org, bucket),
	}
}

func (s *InfluxSink) Publish(ctx context.Context, run RunInfo, results []Result) error {
	for i, r := range results {
		p := influxdb2.NewPointWithMeasurement(influxMeasurement).
			AddTag("run", run.ID).
			AddTag("name", run.Name).
			AddTag("backend", run.Backend).
			AddTag("point", strconv.Itoa(i)).
			AddField("duration_ms", r.DurationMs).
			AddField("write_percentage", r.WritePercentage).
			AddField("transaction_size", r.TransactionSize).
			AddField("transaction_count", r.TransactionCount).
			SetTime(run.End)

		err := s.writer.WritePoint(ctx, p)
		if err != nil {
			return fmt.Errorf("publishing point %d of run %s: %w", i, run.ID, err)
		}
	}

	return nil
}

func (s *InfluxSink) Close() {
	s.client.Close()
}
