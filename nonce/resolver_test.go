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

package nonce_test

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/nonce"
	"github.com/optakt/near-go/provider"
	"github.com/optakt/near-go/testing/mocks"
)

func TestResolver_Next(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		calls := 0
		service := mocks.BaselineService(t)
		service.AccessKeyFunc = func(account near.AccountID, key near.PublicKey) (*near.AccessKeyView, error) {
			calls++
			assert.Equal(t, mocks.GenericAccountID, account)
			assert.True(t, mocks.GenericPublicKey.Equal(key))

			view := mocks.GenericAccessKeyView
			return &view, nil
		}

		resolver := nonce.New(service)
		got, err := resolver.Next(mocks.GenericAccountID, mocks.GenericPublicKey)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericNonce+1, got)
		assert.Equal(t, 1, calls)
	})

	t.Run("strictly greater than observed nonce", func(t *testing.T) {
		t.Parallel()

		observed := []uint64{0, 1, 42, math.MaxUint64 - 1}
		for _, current := range observed {
			current := current
			service := mocks.BaselineService(t)
			service.AccessKeyFunc = func(near.AccountID, near.PublicKey) (*near.AccessKeyView, error) {
				return &near.AccessKeyView{AccessKey: near.AccessKey{Nonce: current}}, nil
			}

			got, err := nonce.New(service).Next(mocks.GenericAccountID, mocks.GenericPublicKey)

			require.NoError(t, err)
			assert.Greater(t, got, current)
		}
	})

	t.Run("handles unknown access key", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.AccessKeyFunc = func(account near.AccountID, key near.PublicKey) (*near.AccessKeyView, error) {
			return nil, failure.AccessKeyNotFound{
				Description: failure.NewDescription("access key does not exist"),
				AccountID:   string(account),
				PublicKey:   key.String(),
			}
		}

		got, err := nonce.New(service).Next(mocks.GenericAccountID, mocks.GenericPublicKey)

		assert.ErrorAs(t, err, &failure.AccessKeyNotFound{})
		assert.Zero(t, got)
	})

	t.Run("handles unknown account", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.AccessKeyFunc = func(account near.AccountID, _ near.PublicKey) (*near.AccessKeyView, error) {
			return nil, failure.UnknownAccount{
				Description: failure.NewDescription("account does not exist"),
				AccountID:   string(account),
			}
		}

		got, err := nonce.New(service).Next(mocks.GenericAccountID, mocks.GenericPublicKey)

		var notFound failure.AccessKeyNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, string(mocks.GenericAccountID), notFound.AccountID)
		assert.Equal(t, mocks.GenericPublicKey.String(), notFound.PublicKey)
		assert.Zero(t, got)
	})

	t.Run("handles unknown account from node", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":"1","error":{"name":"HANDLER_ERROR","cause":{"name":"UNKNOWN_ACCOUNT","info":{"requested_account_id":"ghost.testnet"}},"code":-32000,"message":"Server error"}}`))
		}))
		t.Cleanup(server.Close)

		resolver := nonce.New(provider.NewJSONRPC(server.URL))
		_, err := resolver.Next(near.AccountID("ghost.testnet"), mocks.GenericPublicKey)

		assert.ErrorAs(t, err, &failure.AccessKeyNotFound{})
	})

	t.Run("handles missing view", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.AccessKeyFunc = func(near.AccountID, near.PublicKey) (*near.AccessKeyView, error) {
			return nil, nil
		}

		_, err := nonce.New(service).Next(mocks.GenericAccountID, mocks.GenericPublicKey)

		assert.ErrorAs(t, err, &failure.AccessKeyNotFound{})
	})

	t.Run("handles service failure", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.AccessKeyFunc = func(near.AccountID, near.PublicKey) (*near.AccessKeyView, error) {
			return nil, mocks.GenericError
		}

		_, err := nonce.New(service).Next(mocks.GenericAccountID, mocks.GenericPublicKey)

		assert.ErrorIs(t, err, mocks.GenericError)
	})

	t.Run("handles exhausted nonce", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.AccessKeyFunc = func(near.AccountID, near.PublicKey) (*near.AccessKeyView, error) {
			return &near.AccessKeyView{AccessKey: near.AccessKey{Nonce: math.MaxUint64}}, nil
		}

		_, err := nonce.New(service).Next(mocks.GenericAccountID, mocks.GenericPublicKey)

		assert.ErrorAs(t, err, &failure.InvalidNonce{})
	})
}
