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
	"fmt"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/dgraph-io/ristretto"

	"github.com/optakt/near-go/models/near"
)

// CacheConfig holds the parameters of a cached provider.
type CacheConfig struct {
	Size datasize.ByteSize
	TTL  time.Duration
}

// DefaultCacheConfig keeps block headers for one second, which is about the
// block time, so that concurrent transactions share one block query.
var DefaultCacheConfig = CacheConfig{
	Size: 1 * datasize.MB,
	TTL:  time.Second,
}

// WithCacheSize sets the maximum size of the cache.
func WithCacheSize(size datasize.ByteSize) func(*CacheConfig) {
	return func(cfg *CacheConfig) {
		cfg.Size = size
	}
}

// WithCacheTTL sets how long a block header is reused.
func WithCacheTTL(ttl time.Duration) func(*CacheConfig) {
	return func(cfg *CacheConfig) {
		cfg.TTL = ttl
	}
}

// Cached wraps a service and reuses recent block headers for a short time.
// Everything else, and access keys in particular, is always forwarded, so
// nonces are never served from the cache.
type Cached struct {
	Service
	cache *ristretto.Cache
	ttl   time.Duration
}

// headerCost is the approximate size of a cached block header.
const headerCost = 128

// NewCached creates a cached provider in front of the given service.
func NewCached(service Service, options ...func(*CacheConfig)) (*Cached, error) {

	cfg := DefaultCacheConfig
	for _, option := range options {
		option(&cfg)
	}

	// Ristretto recommends keeping ten times as many counters as items in the
	// cache when full.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.Size) / headerCost * 10,
		MaxCost:     int64(cfg.Size),
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize cache: %w", err)
	}

	c := Cached{
		Service: service,
		cache:   cache,
		ttl:     cfg.TTL,
	}

	return &c, nil
}

// Block returns the latest block header with the given finality, from the
// cache if it was fetched less than the TTL ago. Errors are never cached.
func (c *Cached) Block(finality near.Finality) (*near.BlockHeader, error) {

	cached, ok := c.cache.Get(string(finality))
	if ok {
		header := cached.(near.BlockHeader)
		return &header, nil
	}

	header, err := c.Service.Block(finality)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(string(finality), *header, headerCost, c.ttl)
	c.cache.Wait()

	return header, nil
}

// Close releases the resources of the cache.
func (c *Cached) Close() {
	c.cache.Close()
}
