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

package nonce

import (
	"errors"
	"fmt"
	"math"

	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
)

// Service represents something that can query the state of an access key.
type Service interface {
	AccessKey(account near.AccountID, key near.PublicKey) (*near.AccessKeyView, error)
}

// Resolver determines the nonce to use for the next transaction of an access
// key. It does not keep any state: two concurrent calls for the same key
// return the same nonce, so callers that sign concurrently with one key must
// serialize on their side.
type Resolver struct {
	service Service
}

// New creates a nonce resolver on top of the given service.
func New(service Service) *Resolver {
	r := Resolver{
		service: service,
	}
	return &r
}

// Next queries the current nonce of the access key and returns the one that
// follows it. A missing key is an error and never results in a default nonce.
// A missing account is reported the same way as a missing key.
func (r *Resolver) Next(account near.AccountID, key near.PublicKey) (uint64, error) {

	view, err := r.service.AccessKey(account, key)
	var notFound failure.AccessKeyNotFound
	if errors.As(err, &notFound) {
		return 0, notFound
	}
	if errors.As(err, &failure.UnknownAccount{}) {
		return 0, failure.AccessKeyNotFound{
			Description: failure.NewDescription("account does not exist", failure.WithErr(err)),
			AccountID:   string(account),
			PublicKey:   key.String(),
		}
	}
	if err != nil {
		return 0, fmt.Errorf("could not query access key (account: %s, key: %s): %w", account, key, err)
	}
	if view == nil {
		return 0, failure.AccessKeyNotFound{
			Description: failure.NewDescription("service returned no access key"),
			AccountID:   string(account),
			PublicKey:   key.String(),
		}
	}

	if view.Nonce == math.MaxUint64 {
		return 0, failure.InvalidNonce{
			Description: failure.NewDescription("access key nonce is exhausted",
				failure.WithString("account", string(account)),
				failure.WithStringer("key", key),
			),
			Nonce: view.Nonce,
		}
	}

	return view.Nonce + 1, nil
}
