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

package sender

import (
	"github.com/rs/zerolog"
)

// Config holds the optional parameters of a sender.
type Config struct {
	Log zerolog.Logger
}

// DefaultConfig is the configuration used when no options are given.
var DefaultConfig = Config{
	Log: zerolog.Nop(),
}

// WithLogger makes the sender log its submissions to the given logger.
func WithLogger(log zerolog.Logger) func(*Config) {
	return func(cfg *Config) {
		cfg.Log = log
	}
}
