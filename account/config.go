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

package account

import (
	"github.com/rs/zerolog"

	"github.com/optakt/near-go/models/near"
)

// DefaultConfig is the default configuration for an account.
var DefaultConfig = Config{
	Log:      zerolog.Nop(),
	Finality: near.FinalityFinal,
	Gas:      30_000_000_000_000,
}

// Config contains the configuration options for an account.
type Config struct {
	Log zerolog.Logger
	// Finality of the block whose hash is referenced by new transactions and
	// whose height bounds new delegate actions.
	Finality near.Finality
	// Gas attached to function calls made through the account helpers that
	// do not specify it.
	Gas uint64
}

// WithLogger sets the logger handed to the senders created by the account.
func WithLogger(log zerolog.Logger) func(*Config) {
	return func(cfg *Config) {
		cfg.Log = log
	}
}

// WithFinality sets the finality of the reference block.
func WithFinality(finality near.Finality) func(*Config) {
	return func(cfg *Config) {
		cfg.Finality = finality
	}
}

// WithGas sets the default gas for function calls.
func WithGas(gas uint64) func(*Config) {
	return func(cfg *Config) {
		cfg.Gas = gas
	}
}
