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

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/near-go/models/near"
)

const maxU128 = "340282366920938463463374607431768211455"

func TestParseBalance(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		balance, err := near.ParseBalance("1000000000000000000000000")

		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000000000", balance.String())
	})

	t.Run("maximum value", func(t *testing.T) {
		t.Parallel()

		balance, err := near.ParseBalance(maxU128)

		require.NoError(t, err)
		assert.Equal(t, ^uint64(0), balance.Lo())
		assert.Equal(t, ^uint64(0), balance.Hi())
	})

	t.Run("handles overflow", func(t *testing.T) {
		t.Parallel()

		_, err := near.ParseBalance("340282366920938463463374607431768211456")

		assert.Error(t, err)
	})

	t.Run("handles invalid input", func(t *testing.T) {
		t.Parallel()

		_, err := near.ParseBalance("12a")

		assert.Error(t, err)
	})
}

func TestBalance_Parts(t *testing.T) {
	balance := near.BalanceFromParts(1, 2)

	assert.Equal(t, uint64(1), balance.Lo())
	assert.Equal(t, uint64(2), balance.Hi())
	assert.Equal(t, "36893488147419103233", balance.String())
}

func TestBalance_Arithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		t.Parallel()

		sum, err := near.NewBalance(40).Add(near.NewBalance(2))

		require.NoError(t, err)
		assert.Equal(t, 0, sum.Cmp(near.NewBalance(42)))
	})

	t.Run("add overflow", func(t *testing.T) {
		t.Parallel()

		_, err := near.MustParseBalance(maxU128).Add(near.NewBalance(1))

		assert.Error(t, err)
	})

	t.Run("sub underflow", func(t *testing.T) {
		t.Parallel()

		_, err := near.NewBalance(1).Sub(near.NewBalance(2))

		assert.Error(t, err)
	})

	t.Run("multiply", func(t *testing.T) {
		t.Parallel()

		product, err := near.MustParseBalance("10000000000000000000").MulUint64(100)

		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000000", product.String())
	})
}

func TestBalance_JSON(t *testing.T) {
	t.Run("quoted", func(t *testing.T) {
		t.Parallel()

		var balance near.Balance
		err := json.Unmarshal([]byte(`"1000000"`), &balance)

		require.NoError(t, err)
		assert.Equal(t, "1000000", balance.String())

		data, err := json.Marshal(balance)
		require.NoError(t, err)
		assert.JSONEq(t, `"1000000"`, string(data))
	})

	t.Run("bare number", func(t *testing.T) {
		t.Parallel()

		var balance near.Balance
		err := json.Unmarshal([]byte(`42`), &balance)

		require.NoError(t, err)
		assert.Equal(t, "42", balance.String())
	})
}
