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

package provider_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/provider"
	"github.com/optakt/near-go/testing/mocks"
)

func restServer(t *testing.T, handle http.HandlerFunc) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handle)
	t.Cleanup(server.Close)

	return server
}

func TestFastNear_AccessKey(t *testing.T) {
	keyPath := "/account/alice.near/key/" + mocks.GenericPublicKey.String()

	t.Run("full access key", func(t *testing.T) {
		t.Parallel()

		server := restServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, keyPath, r.URL.Path)
			_, _ = w.Write([]byte(`{"nonce":42,"public_key":"` + mocks.GenericPublicKey.String() + `","type":"FullAccess"}`))
		})

		fast := provider.NewFastNear(server.URL)
		view, err := fast.AccessKey(mocks.GenericAccountID, mocks.GenericPublicKey)

		require.NoError(t, err)
		assert.Equal(t, uint64(42), view.Nonce)
		assert.True(t, view.Permission.IsFullAccess())
	})

	t.Run("function call key", func(t *testing.T) {
		t.Parallel()

		server := restServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"nonce":3,"allowance":"1000","receiver_id":"app.near","method_names":["set_status"],"type":"FunctionCall"}`))
		})

		fast := provider.NewFastNear(server.URL)
		view, err := fast.AccessKey(mocks.GenericAccountID, mocks.GenericPublicKey)

		require.NoError(t, err)
		require.NotNil(t, view.Permission.FunctionCall)
		assert.Equal(t, near.AccountID("app.near"), view.Permission.FunctionCall.ReceiverID)
		assert.Equal(t, "1000", view.Permission.FunctionCall.Allowance.String())
	})

	t.Run("handles missing key", func(t *testing.T) {
		t.Parallel()

		server := restServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		fast := provider.NewFastNear(server.URL)
		_, err := fast.AccessKey(mocks.GenericAccountID, mocks.GenericPublicKey)

		assert.ErrorAs(t, err, &failure.AccessKeyNotFound{})
	})

	t.Run("handles server error", func(t *testing.T) {
		t.Parallel()

		server := restServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		fast := provider.NewFastNear(server.URL)
		_, err := fast.AccessKey(mocks.GenericAccountID, mocks.GenericPublicKey)

		var notFound failure.AccessKeyNotFound
		require.Error(t, err)
		assert.False(t, errors.As(err, &notFound))
	})
}

func TestFastNear_Account(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		server := restServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/account/alice.near", r.URL.Path)
			_, _ = w.Write([]byte(`{"amount":"1000000","locked":"0","code_hash":"11111111111111111111111111111111","storage_usage":182,"storage_paid_at":0}`))
		})

		fast := provider.NewFastNear(server.URL)
		view, err := fast.Account(mocks.GenericAccountID)

		require.NoError(t, err)
		assert.Equal(t, "1000000", view.Amount.String())
		assert.Equal(t, uint64(182), view.StorageUsage)
	})

	t.Run("handles unknown account", func(t *testing.T) {
		t.Parallel()

		server := restServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		fast := provider.NewFastNear(server.URL)
		_, err := fast.Account(mocks.GenericAccountID)

		assert.ErrorAs(t, err, &failure.UnknownAccount{})
	})
}

func TestFastNear_CallFunction(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		server := restServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/account/app.near/view/get_status", r.URL.Path)
			assert.Equal(t, "alice.near", r.URL.Query().Get("account_id"))
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`"hello"`))
		})

		fast := provider.NewFastNear(server.URL)
		result, err := fast.CallFunction("app.near", "get_status", []byte(`{"account_id":"alice.near","limit":3}`))
		require.NoError(t, err)

		var status string
		err = result.Decode(&status)

		require.NoError(t, err)
		assert.Equal(t, "hello", status)
	})

	t.Run("handles non-object arguments", func(t *testing.T) {
		t.Parallel()

		fast := provider.NewFastNear("http://127.0.0.1:1")
		_, err := fast.CallFunction("app.near", "get_status", []byte(`[1,2]`))

		assert.Error(t, err)
	})

	t.Run("handles failed call", func(t *testing.T) {
		t.Parallel()

		server := restServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("MethodNotFound"))
		})

		fast := provider.NewFastNear(server.URL)
		_, err := fast.CallFunction("app.near", "missing", nil)

		assert.Error(t, err)
	})
}

func TestFastNear_ContractMethods(t *testing.T) {
	server := restServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account/app.near/contract/methods", r.URL.Path)
		_, _ = w.Write([]byte(`["get_status","set_status"]`))
	})

	fast := provider.NewFastNear(server.URL)
	methods, err := fast.ContractMethods("app.near")

	require.NoError(t, err)
	assert.Equal(t, []string{"get_status", "set_status"}, methods)
}
