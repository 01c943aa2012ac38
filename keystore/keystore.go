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
	"errors"
	"fmt"
	"strings"

	"github.com/optakt/near-go/models/near"
)

// ErrNotFound is returned when no key is stored for an account.
var ErrNotFound = errors.New("key not found")

// KeyStore stores one secret key per account and network.
type KeyStore interface {
	SetKey(network string, account near.AccountID, key near.SecretKey) error
	Key(network string, account near.AccountID) (near.SecretKey, error)
	RemoveKey(network string, account near.AccountID) error
	Clear() error
	Networks() ([]string, error)
	Accounts(network string) ([]near.AccountID, error)
}

func validate(network string, account near.AccountID) error {
	if network == "" {
		return fmt.Errorf("network name is empty")
	}
	if strings.ContainsRune(network, separator) {
		return fmt.Errorf("network name contains separator (network: %s)", network)
	}
	err := account.Validate()
	if err != nil {
		return fmt.Errorf("invalid account (account: %s): %w", account, err)
	}
	return nil
}

func validateKey(key near.SecretKey) error {
	want := key.Type.SecretKeyLength()
	if want == 0 {
		return fmt.Errorf("unknown key type (%s)", key.Type)
	}
	if len(key.Data) != want {
		return fmt.Errorf("invalid %s secret key length (have: %d, want: %d)", key.Type, len(key.Data), want)
	}
	return nil
}

func cloneKey(key near.SecretKey) near.SecretKey {
	return near.SecretKey{
		Type: key.Type,
		Data: append([]byte(nil), key.Data...),
	}
}
