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

const successOutcome = `{
	"final_execution_status": "EXECUTED_OPTIMISTIC",
	"status": {"SuccessValue": "dHJ1ZQ=="},
	"transaction": {
		"signer_id": "relay.near",
		"public_key": "ed25519:11111111111111111111111111111111",
		"nonce": 43,
		"receiver_id": "alice.near",
		"hash": "11111111111111111111111111111111"
	},
	"transaction_outcome": {
		"id": "11111111111111111111111111111111",
		"block_hash": "11111111111111111111111111111111",
		"outcome": {"logs": [], "receipt_ids": [], "gas_burnt": 100, "tokens_burnt": "10", "executor_id": "relay.near", "status": {"SuccessReceiptId": "11111111111111111111111111111111"}}
	},
	"receipts_outcome": [
		{
			"id": "11111111111111111111111111111111",
			"block_hash": "11111111111111111111111111111111",
			"outcome": {"logs": ["status set"], "receipt_ids": [], "gas_burnt": 200, "tokens_burnt": "20", "executor_id": "app.near", "status": {"SuccessValue": ""}}
		}
	]
}`

const expiredOutcome = `{
	"final_execution_status": "EXECUTED_OPTIMISTIC",
	"status": {"Failure": {"ActionError": {"index": 0, "kind": "DelegateActionExpired"}}},
	"transaction": {"signer_id": "relay.near", "receiver_id": "alice.near", "nonce": 44, "hash": "11111111111111111111111111111111"},
	"transaction_outcome": {"id": "11111111111111111111111111111111", "block_hash": "11111111111111111111111111111111", "outcome": {"logs": [], "receipt_ids": [], "gas_burnt": 1, "tokens_burnt": "0", "executor_id": "relay.near", "status": "Unknown"}},
	"receipts_outcome": []
}`

func TestExecutionOutcome_Unmarshal(t *testing.T) {
	t.Run("success value", func(t *testing.T) {
		t.Parallel()

		var outcome near.ExecutionOutcome
		err := json.Unmarshal([]byte(successOutcome), &outcome)

		require.NoError(t, err)
		assert.Equal(t, near.ExecutedOptimistic, outcome.FinalExecutionStatus)
		assert.Equal(t, near.StatusSuccessValue, outcome.Status.Kind)
		assert.Equal(t, []byte("true"), outcome.Status.SuccessValue)
		assert.False(t, outcome.Failed())
		assert.Empty(t, outcome.FailureKind())
		assert.Equal(t, near.AccountID("relay.near"), outcome.Transaction.SignerID)
		assert.Equal(t, uint64(43), outcome.Transaction.Nonce)
		assert.Equal(t, near.StatusSuccessReceiptID, outcome.TransactionOutcome.Outcome.Status.Kind)
		assert.Equal(t, []near.AccountID{"app.near"}, outcome.Executors())
		assert.Equal(t, []string{"status set"}, outcome.Logs())
	})

	t.Run("expired delegate action", func(t *testing.T) {
		t.Parallel()

		var outcome near.ExecutionOutcome
		err := json.Unmarshal([]byte(expiredOutcome), &outcome)

		require.NoError(t, err)
		assert.True(t, outcome.Failed())
		assert.Equal(t, "DelegateActionExpired", outcome.FailureKind())
		require.NotNil(t, outcome.Status.Failure.ActionError)
		require.NotNil(t, outcome.Status.Failure.ActionError.Index)
		assert.Equal(t, uint64(0), *outcome.Status.Failure.ActionError.Index)
		assert.Equal(t, near.StatusUnknown, outcome.TransactionOutcome.Outcome.Status.Kind)
	})

	t.Run("nested action error", func(t *testing.T) {
		t.Parallel()

		payload := `{"Failure": {"ActionError": {"index": 1, "kind": {"AccountDoesNotExist": {"account_id": "bob.near"}}}}}`

		var status near.ExecutionStatus
		err := json.Unmarshal([]byte(payload), &status)

		require.NoError(t, err)
		assert.Equal(t, near.StatusFailure, status.Kind)
		assert.Equal(t, "AccountDoesNotExist", status.Failure.Kind())
	})

	t.Run("invalid transaction error", func(t *testing.T) {
		t.Parallel()

		payload := `{"Failure": {"InvalidTxError": {"InvalidAccessKeyError": {"AccessKeyNotFound": {"account_id": "bob.near", "public_key": "ed25519:11111111111111111111111111111111"}}}}}`

		var status near.ExecutionStatus
		err := json.Unmarshal([]byte(payload), &status)

		require.NoError(t, err)
		assert.Equal(t, "AccessKeyNotFound", status.Failure.Kind())
	})

	t.Run("handles unknown status name", func(t *testing.T) {
		t.Parallel()

		var status near.ExecutionStatus
		err := json.Unmarshal([]byte(`"Exploded"`), &status)

		assert.Error(t, err)
	})
}

func TestTxExecutionStatus(t *testing.T) {
	levels := []near.TxExecutionStatus{
		near.None,
		near.Included,
		near.ExecutedOptimistic,
		near.IncludedFinal,
		near.Executed,
		near.Final,
	}

	t.Run("levels are totally ordered", func(t *testing.T) {
		t.Parallel()

		for i := range levels {
			for j := range levels {
				assert.Equal(t, i >= j, levels[i].AtLeast(levels[j]))
			}
		}
	})

	t.Run("text round trip", func(t *testing.T) {
		t.Parallel()

		for _, level := range levels {
			text, err := level.MarshalText()
			require.NoError(t, err)

			parsed, err := near.ParseTxExecutionStatus(string(text))
			require.NoError(t, err)
			assert.Equal(t, level, parsed)
		}
	})

	t.Run("default level", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, near.ExecutedOptimistic, near.DefaultWaitUntil)
		assert.Equal(t, "EXECUTED_OPTIMISTIC", near.DefaultWaitUntil.String())
	})

	t.Run("handles unknown level", func(t *testing.T) {
		t.Parallel()

		_, err := near.ParseTxExecutionStatus("SOMEWHAT_FINAL")

		assert.Error(t, err)
	})
}
