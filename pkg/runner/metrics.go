/*
Copyright 2025 Codenotary Inc. All rights reserved.

SPDX-License-Identifier: BUSL-1.1
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://mariadb.com/bsl11/

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package runner

import (
	"strconv"
	"time"

	"github.com/codenotary/txbench/pkg/workload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "txbench"

// Metrics exposes the progress of a sweep to prometheus
type Metrics struct {
	pointsTotal     *prometheus.CounterVec
	pointDuration   *prometheus.HistogramVec
	pointOperations *prometheus.GaugeVec
	sweepProgress   *prometheus.GaugeVec
}

// NewMetrics registers the sweep collectors on reg. A nil reg leaves them
// unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		pointsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sweep_points_total",
			Help:      "Number of sweep points measured.",
		}, []string{"backend"}),

		pointDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "point_duration_seconds",
			Help:      "Measured duration of sweep points.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}, []string{"backend"}),

		pointOperations: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "point_operations",
			Help:      "Operations executed by the last measured point.",
		}, []string{"backend", "write_percentage"}),

		sweepProgress: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "sweep_progress",
			Help:      "Fraction of the points of the current sweep already measured.",
		}, []string{"backend"}),
	}
}

func (m *Metrics) observePoint(backend string, p workload.Params, d time.Duration) {
	m.pointsTotal.WithLabelValues(backend).Inc()
	m.pointDuration.WithLabelValues(backend).Observe(d.Seconds())
	m.pointOperations.WithLabelValues(backend, strconv.Itoa(p.WritePercentage)).Set(float64(p.TotalOperations()))
}

func (m *Metrics) newProgressTracker(backend string, points int) ProgressTracker {
	gauge := m.sweepProgress.WithLabelValues(backend)
	gauge.Set(0)

	return &prometheusProgressTracker{
		progress: gauge,
		maxValue: float64(points),
	}
}
