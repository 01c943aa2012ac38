// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Relay records the results of relayed delegate actions.
type Relay struct {
	relayed  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewRelay creates the relay metrics and registers them.
func NewRelay(registerer prometheus.Registerer) *Relay {
	relayedOpts := prometheus.CounterOpts{
		Name:      "delegates_total",
		Namespace: namespace,
		Subsystem: "relayer",
		Help:      "number of delegate actions handled by the relayer, by result",
	}
	durationOpts := prometheus.HistogramOpts{
		Name:      "relay_duration_seconds",
		Namespace: namespace,
		Subsystem: "relayer",
		Help:      "time to check, sign and submit delegate actions",
		Buckets:   prometheus.DefBuckets,
	}

	factory := promauto.With(registerer)
	r := Relay{
		relayed:  factory.NewCounterVec(relayedOpts, []string{"result"}),
		duration: factory.NewHistogram(durationOpts),
	}

	return &r
}

// Relayed records the result of one delegate action.
func (r *Relay) Relayed(result string, duration time.Duration) {
	r.relayed.WithLabelValues(result).Inc()
	r.duration.Observe(duration.Seconds())
}
