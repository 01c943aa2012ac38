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

package provider

import (
	"time"

	"github.com/rs/zerolog"
)

// Config holds the optional parameters of the HTTP providers.
type Config struct {
	Log     zerolog.Logger
	Timeout time.Duration
	Headers map[string]string
}

// DefaultConfig is the configuration used when no options are given. The
// timeout has to be long enough for submissions that wait for finality.
var DefaultConfig = Config{
	Log:     zerolog.Nop(),
	Timeout: 30 * time.Second,
	Headers: map[string]string{},
}

// WithLogger sets the logger of the provider.
func WithLogger(log zerolog.Logger) func(*Config) {
	return func(cfg *Config) {
		cfg.Log = log
	}
}

// WithTimeout sets the timeout of each HTTP request. A request that times out
// is reported as a transport error.
func WithTimeout(timeout time.Duration) func(*Config) {
	return func(cfg *Config) {
		cfg.Timeout = timeout
	}
}

// WithHeader adds a header to every request, such as an API key.
func WithHeader(key string, value string) func(*Config) {
	return func(cfg *Config) {
		cfg.Headers[key] = value
	}
}

func configure(options []func(*Config)) Config {
	cfg := DefaultConfig
	cfg.Headers = make(map[string]string, len(DefaultConfig.Headers))
	for key, value := range DefaultConfig.Headers {
		cfg.Headers[key] = value
	}
	for _, option := range options {
		option(&cfg)
	}
	return cfg
}
