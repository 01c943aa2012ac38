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

package zbor_test

import (
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/near-go/codec/zbor"
)

type record struct {
	Account string
	Key     string
	Data    []byte
}

func TestCodec(t *testing.T) {
	value := record{
		Account: "alice.near",
		Key:     "ed25519:11111111111111111111111111111111",
		Data:    []byte{1, 2, 3},
	}

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		codec := zbor.NewCodec()
		data, err := codec.Marshal(value)
		require.NoError(t, err)

		var got record
		err = codec.Unmarshal(data, &got)

		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("canonical encoding", func(t *testing.T) {
		t.Parallel()

		codec := zbor.NewCodec(zbor.WithLevel(zstd.SpeedBestCompression))
		first, err := codec.Marshal(value)
		require.NoError(t, err)
		second, err := codec.Marshal(value)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("handles corrupted data", func(t *testing.T) {
		t.Parallel()

		codec := zbor.NewCodec()

		var got record
		err := codec.Unmarshal([]byte("not compressed"), &got)

		assert.Error(t, err)
	})
}
