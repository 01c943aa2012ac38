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
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Encoder is the codec whose output sizes are recorded.
type Encoder interface {
	Marshal(value interface{}) ([]byte, error)
	Unmarshal(data []byte, value interface{}) error
}

// Codec wraps a codec and records the size of the values it encodes.
type Codec struct {
	Encoder
	size prometheus.Histogram
}

// NewCodec wraps the codec and registers its metrics.
func NewCodec(registerer prometheus.Registerer, codec Encoder) *Codec {
	sizeOpts := prometheus.HistogramOpts{
		Name:      "encoded_bytes",
		Namespace: namespace,
		Subsystem: "keystore",
		Help:      "size of encoded key store records",
		Buckets:   prometheus.ExponentialBuckets(16, 2, 8),
	}

	c := Codec{
		Encoder: codec,
		size:    promauto.With(registerer).NewHistogram(sizeOpts),
	}

	return &c
}

func (c *Codec) Marshal(value interface{}) ([]byte, error) {
	data, err := c.Encoder.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("could not encode value: %w", err)
	}
	c.size.Observe(float64(len(data)))
	return data, nil
}
