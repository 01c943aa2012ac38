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
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v2"
	"github.com/hashicorp/go-multierror"

	"github.com/optakt/near-go/models/near"
)

const (
	prefixKey = 1
	separator = '/'
)

// Codec encodes the records persisted by the key store.
type Codec interface {
	Marshal(value interface{}) ([]byte, error)
	Unmarshal(data []byte, value interface{}) error
}

type record struct {
	Type uint8  `cbor:"1,keyasint"`
	Data []byte `cbor:"2,keyasint"`
}

// Badger is a key store persisted in a Badger database. Keys are stored under
// `<prefix><network>/<account>`, which keeps the entries of one network next
// to each other and sorted by account.
type Badger struct {
	db    *badger.DB
	codec Codec
}

// NewBadger creates a key store on top of the database.
func NewBadger(db *badger.DB, codec Codec) *Badger {
	b := Badger{
		db:    db,
		codec: codec,
	}
	return &b
}

func (b *Badger) SetKey(network string, account near.AccountID, key near.SecretKey) error {
	err := validate(network, account)
	if err != nil {
		return err
	}
	err = validateKey(key)
	if err != nil {
		return fmt.Errorf("invalid secret key: %w", err)
	}

	rec := record{
		Type: uint8(key.Type),
		Data: key.Data,
	}
	val, err := b.codec.Marshal(rec)
	if err != nil {
		return fmt.Errorf("could not encode key: %w", err)
	}

	err = b.db.Update(func(tx *badger.Txn) error {
		return tx.Set(encodeKey(network, account), val)
	})
	if err != nil {
		return fmt.Errorf("could not save key (network: %s, account: %s): %w", network, account, err)
	}

	return nil
}

func (b *Badger) Key(network string, account near.AccountID) (near.SecretKey, error) {

	var rec record
	err := b.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(encodeKey(network, account))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return b.codec.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return near.SecretKey{}, fmt.Errorf("could not get key (network: %s, account: %s): %w", network, account, ErrNotFound)
	}
	if err != nil {
		return near.SecretKey{}, fmt.Errorf("could not retrieve key (network: %s, account: %s): %w", network, account, err)
	}

	key := near.SecretKey{
		Type: near.KeyType(rec.Type),
		Data: rec.Data,
	}

	return key, nil
}

// RemoveKey removes the key of the account. Removing a missing key is not an
// error.
func (b *Badger) RemoveKey(network string, account near.AccountID) error {
	err := b.db.Update(func(tx *badger.Txn) error {
		return tx.Delete(encodeKey(network, account))
	})
	if err != nil {
		return fmt.Errorf("could not delete key (network: %s, account: %s): %w", network, account, err)
	}
	return nil
}

// Clear removes all keys. It keeps going when a key can not be removed and
// returns all the errors encountered.
func (b *Badger) Clear() error {

	var keys [][]byte
	err := b.iterate([]byte{prefixKey}, func(key []byte) {
		keys = append(keys, key)
	})
	if err != nil {
		return fmt.Errorf("could not list keys: %w", err)
	}

	var errs error
	for _, key := range keys {
		err = b.db.Update(func(tx *badger.Txn) error {
			return tx.Delete(key)
		})
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("could not delete key (key: %x): %w", key, err))
		}
	}

	return errs
}

// Networks returns the sorted names of the networks with at least one key.
func (b *Badger) Networks() ([]string, error) {

	var networks []string
	err := b.iterate([]byte{prefixKey}, func(key []byte) {
		network, _ := decodeKey(key)
		if len(networks) == 0 || networks[len(networks)-1] != network {
			networks = append(networks, network)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("could not list networks: %w", err)
	}
	sort.Strings(networks)

	return networks, nil
}

// Accounts returns the sorted accounts that have a key on the network.
func (b *Badger) Accounts(network string) ([]near.AccountID, error) {

	var accounts []near.AccountID
	err := b.iterate(encodeKey(network, ""), func(key []byte) {
		_, account := decodeKey(key)
		accounts = append(accounts, account)
	})
	if err != nil {
		return nil, fmt.Errorf("could not list accounts (network: %s): %w", network, err)
	}

	return accounts, nil
}

func (b *Badger) iterate(prefix []byte, process func(key []byte)) error {
	return b.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			process(it.Item().KeyCopy(nil))
		}

		return nil
	})
}

func encodeKey(network string, account near.AccountID) []byte {
	key := make([]byte, 0, 1+len(network)+1+len(account))
	key = append(key, prefixKey)
	key = append(key, network...)
	key = append(key, separator)
	key = append(key, account...)
	return key
}

func decodeKey(key []byte) (string, near.AccountID) {
	rest := key[1:]
	index := bytes.IndexByte(rest, separator)
	if index < 0 {
		return string(rest), ""
	}
	return string(rest[:index]), near.AccountID(rest[index+1:])
}
