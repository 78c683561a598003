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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v2"
)

// ProgressTracker is notified every time a sweep point completes
type ProgressTracker interface {
	Add(points int)
}

type prometheusProgressTracker struct {
	progress  prometheus.Gauge
	currValue float64
	maxValue  float64
}

func (p *prometheusProgressTracker) Add(points int) {
	p.currValue += float64(points)
	p.progress.Set(p.currValue / p.maxValue)
}

type barProgressTracker struct {
	bar *progressbar.ProgressBar
}

func newBarProgressTracker(points int) ProgressTracker {
	return &barProgressTracker{bar: progressbar.New(points)}
}

func (p *barProgressTracker) Add(points int) {
	p.bar.Add(points)
}

type progressTrackers []ProgressTracker

func (ts progressTrackers) Add(points int) {
	for _, t := range ts {
		t.Add(points)
	}
}
