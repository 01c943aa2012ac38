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

package keystore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/optakt/near-go/models/near"
)

// Memory is a key store that keeps keys in memory only.
type Memory struct {
	mu   sync.RWMutex
	keys map[string]map[near.AccountID]near.SecretKey
}

// NewMemory creates an empty in-memory key store.
func NewMemory() *Memory {
	m := Memory{
		keys: make(map[string]map[near.AccountID]near.SecretKey),
	}
	return &m
}

func (m *Memory) SetKey(network string, account near.AccountID, key near.SecretKey) error {
	err := validate(network, account)
	if err != nil {
		return err
	}
	err = validateKey(key)
	if err != nil {
		return fmt.Errorf("invalid secret key: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	accounts, ok := m.keys[network]
	if !ok {
		accounts = make(map[near.AccountID]near.SecretKey)
		m.keys[network] = accounts
	}
	accounts[account] = cloneKey(key)

	return nil
}

func (m *Memory) Key(network string, account near.AccountID) (near.SecretKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key, ok := m.keys[network][account]
	if !ok {
		return near.SecretKey{}, fmt.Errorf("could not get key (network: %s, account: %s): %w", network, account, ErrNotFound)
	}

	return cloneKey(key), nil
}

// RemoveKey removes the key of the account. Removing a missing key is not an
// error.
func (m *Memory) RemoveKey(network string, account near.AccountID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	accounts, ok := m.keys[network]
	if !ok {
		return nil
	}
	delete(accounts, account)
	if len(accounts) == 0 {
		delete(m.keys, network)
	}

	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keys = make(map[string]map[near.AccountID]near.SecretKey)

	return nil
}

// Networks returns the sorted names of the networks with at least one key.
func (m *Memory) Networks() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	networks := make([]string, 0, len(m.keys))
	for network := range m.keys {
		networks = append(networks, network)
	}
	sort.Strings(networks)

	return networks, nil
}

// Accounts returns the sorted accounts that have a key on the network.
func (m *Memory) Accounts(network string) ([]near.AccountID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	accounts := make([]near.AccountID, 0, len(m.keys[network]))
	for account := range m.keys[network] {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i] < accounts[j]
	})

	return accounts, nil
}
