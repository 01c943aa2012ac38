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

package near_test

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/near-go/models/near"
)

func TestParsePublicKey(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i)
	}
	encoded := base58.Encode(raw)

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		key, err := near.ParsePublicKey("ed25519:" + encoded)

		require.NoError(t, err)
		assert.Equal(t, near.ED25519, key.Type)
		assert.Equal(t, raw, key.Data)
		assert.Equal(t, "ed25519:"+encoded, key.String())
	})

	t.Run("defaults to ed25519 without prefix", func(t *testing.T) {
		t.Parallel()

		key, err := near.ParsePublicKey(encoded)

		require.NoError(t, err)
		assert.Equal(t, near.ED25519, key.Type)
	})

	t.Run("secp256k1 key", func(t *testing.T) {
		t.Parallel()

		data := make([]byte, 64)
		data[0] = 1
		key, err := near.ParsePublicKey("secp256k1:" + base58.Encode(data))

		require.NoError(t, err)
		assert.Equal(t, near.SECP256K1, key.Type)
		assert.Len(t, key.Data, 64)
	})

	t.Run("handles unknown key type", func(t *testing.T) {
		t.Parallel()

		_, err := near.ParsePublicKey("rsa:" + encoded)

		assert.Error(t, err)
	})

	t.Run("handles invalid length", func(t *testing.T) {
		t.Parallel()

		_, err := near.ParsePublicKey("ed25519:" + base58.Encode(raw[:31]))

		assert.Error(t, err)
	})

	t.Run("handles invalid base58", func(t *testing.T) {
		t.Parallel()

		_, err := near.ParsePublicKey("ed25519:0OIl")

		assert.Error(t, err)
	})
}

func TestPublicKey_Text(t *testing.T) {
	raw := make([]byte, 32)
	raw[31] = 7
	key, err := near.NewPublicKey(near.ED25519, raw)
	require.NoError(t, err)

	text, err := key.MarshalText()
	require.NoError(t, err)

	var decoded near.PublicKey
	err = decoded.UnmarshalText(text)

	require.NoError(t, err)
	assert.True(t, key.Equal(decoded))
}

func TestParseSecretKey(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		data := make([]byte, 64)
		key, err := near.ParseSecretKey("ed25519:" + base58.Encode(data))

		require.NoError(t, err)
		assert.Equal(t, near.ED25519, key.Type)
		assert.Equal(t, "ed25519:"+base58.Encode(data), key.String())
	})

	t.Run("handles invalid length", func(t *testing.T) {
		t.Parallel()

		_, err := near.ParseSecretKey("ed25519:" + base58.Encode(make([]byte, 32)))

		assert.Error(t, err)
	})
}

func TestParseHash(t *testing.T) {
	var hash near.Hash
	hash[0] = 0xff

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		got, err := near.ParseHash(hash.String())

		require.NoError(t, err)
		assert.Equal(t, hash, got)
		assert.False(t, got.IsZero())
	})

	t.Run("handles invalid length", func(t *testing.T) {
		t.Parallel()

		_, err := near.ParseHash(base58.Encode([]byte{1, 2, 3}))

		assert.Error(t, err)
	})
}
