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

package relayer

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/optakt/near-go/models/near"
)

// DefaultConfig is the default configuration for the relayer.
var DefaultConfig = Config{
	Log:      zerolog.Nop(),
	Allowed:  nil,
	Level:    near.DefaultWaitUntil,
	Finality: near.FinalityFinal,
	Metrics:  nopMetrics{},
}

// Config contains the configuration options for the relayer.
type Config struct {
	Log zerolog.Logger
	// Allowed is the list of senders whose delegate actions are relayed. An
	// empty list allows all senders.
	Allowed []near.AccountID
	// Level is the wait-until level at which outer transactions are
	// submitted.
	Level    near.TxExecutionStatus
	Finality near.Finality
	Metrics  Metrics
}

// Metrics records the results of relayed delegate actions.
type Metrics interface {
	Relayed(result string, duration time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) Relayed(string, time.Duration) {}

// WithLogger sets the logger of the relayer.
func WithLogger(log zerolog.Logger) func(*Config) {
	return func(cfg *Config) {
		cfg.Log = log
	}
}

// WithAllowed restricts the senders whose delegate actions are relayed.
func WithAllowed(senders ...near.AccountID) func(*Config) {
	return func(cfg *Config) {
		cfg.Allowed = append(cfg.Allowed, senders...)
	}
}

// WithLevel sets the wait-until level of submissions.
func WithLevel(level near.TxExecutionStatus) func(*Config) {
	return func(cfg *Config) {
		cfg.Level = level
	}
}

// WithFinality sets the finality of the block used for expiry checks and as
// reference block of the outer transactions.
func WithFinality(finality near.Finality) func(*Config) {
	return func(cfg *Config) {
		cfg.Finality = finality
	}
}

// WithMetrics sets the recorder for relay metrics.
func WithMetrics(metrics Metrics) func(*Config) {
	return func(cfg *Config) {
		cfg.Metrics = metrics
	}
}
