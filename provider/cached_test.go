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
	"testing"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/provider"
	"github.com/optakt/near-go/testing/mocks"
)

func TestCached_Block(t *testing.T) {
	t.Run("reuses fetched header", func(t *testing.T) {
		t.Parallel()

		calls := 0
		service := mocks.BaselineService(t)
		service.BlockFunc = func(finality near.Finality) (*near.BlockHeader, error) {
			calls++
			header := mocks.GenericBlockHeader
			return &header, nil
		}

		cached, err := provider.NewCached(service, provider.WithCacheTTL(time.Minute))
		require.NoError(t, err)
		t.Cleanup(cached.Close)

		first, err := cached.Block(near.FinalityFinal)
		require.NoError(t, err)
		second, err := cached.Block(near.FinalityFinal)
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, first, second)
	})

	t.Run("forwards after close", func(t *testing.T) {
		t.Parallel()

		calls := 0
		service := mocks.BaselineService(t)
		service.BlockFunc = func(near.Finality) (*near.BlockHeader, error) {
			calls++
			header := mocks.GenericBlockHeader
			return &header, nil
		}

		cached, err := provider.NewCached(service, provider.WithCacheTTL(time.Minute))
		require.NoError(t, err)

		cached.Close()
		cached.Close()
		header, err := cached.Block(near.FinalityFinal)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericBlockHeader.Hash, header.Hash)
		assert.Equal(t, 1, calls)
	})

	t.Run("keeps finalities apart", func(t *testing.T) {
		t.Parallel()

		var requested []near.Finality
		service := mocks.BaselineService(t)
		service.BlockFunc = func(finality near.Finality) (*near.BlockHeader, error) {
			requested = append(requested, finality)
			header := mocks.GenericBlockHeader
			return &header, nil
		}

		cached, err := provider.NewCached(service, provider.WithCacheSize(64*datasize.KB))
		require.NoError(t, err)
		t.Cleanup(cached.Close)

		_, err = cached.Block(near.FinalityFinal)
		require.NoError(t, err)
		_, err = cached.Block(near.FinalityOptimistic)
		require.NoError(t, err)

		assert.Equal(t, []near.Finality{near.FinalityFinal, near.FinalityOptimistic}, requested)
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		service := mocks.BaselineService(t)
		service.BlockFunc = func(near.Finality) (*near.BlockHeader, error) {
			calls++
			return nil, mocks.GenericError
		}

		cached, err := provider.NewCached(service)
		require.NoError(t, err)
		t.Cleanup(cached.Close)

		_, err = cached.Block(near.FinalityFinal)
		assert.Error(t, err)
		_, err = cached.Block(near.FinalityFinal)
		assert.Error(t, err)

		assert.Equal(t, 2, calls)
	})

	t.Run("does not cache access keys", func(t *testing.T) {
		t.Parallel()

		calls := 0
		service := mocks.BaselineService(t)
		service.AccessKeyFunc = func(near.AccountID, near.PublicKey) (*near.AccessKeyView, error) {
			calls++
			view := mocks.GenericAccessKeyView
			return &view, nil
		}

		cached, err := provider.NewCached(service)
		require.NoError(t, err)
		t.Cleanup(cached.Close)

		_, err = cached.AccessKey(mocks.GenericAccountID, mocks.GenericPublicKey)
		require.NoError(t, err)
		_, err = cached.AccessKey(mocks.GenericAccountID, mocks.GenericPublicKey)
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
	})
}
