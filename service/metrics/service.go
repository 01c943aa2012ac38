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
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/provider"
)

// Submission results.
const (
	resultSuccess   = "success"
	resultFailed    = "failed"
	resultRejected  = "rejected"
	resultTransport = "transport"
)

// Service wraps a service and counts the transactions submitted through it.
type Service struct {
	provider.Service
	submissions *prometheus.CounterVec
}

// NewService wraps the service and registers its metrics.
func NewService(registerer prometheus.Registerer, service provider.Service) *Service {
	submissionsOpts := prometheus.CounterOpts{
		Name:      "submissions_total",
		Namespace: namespace,
		Subsystem: "sender",
		Help:      "number of submitted transactions, by wait-until level and result",
	}

	s := Service{
		Service:     service,
		submissions: promauto.With(registerer).NewCounterVec(submissionsOpts, []string{"wait_until", "result"}),
	}

	return &s
}

func (s *Service) SendTransaction(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
	outcome, err := s.Service.SendTransaction(signed, level)

	result := resultSuccess
	switch {
	case errors.As(err, &failure.SubmissionRejected{}):
		result = resultRejected
	case err != nil:
		result = resultTransport
	case outcome != nil && outcome.Failed():
		result = resultFailed
	}
	s.submissions.WithLabelValues(level.String(), result).Inc()

	return outcome, err
}
