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

package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/near-go/account"
	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/testing/mocks"
)

func TestNew(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), mocks.BaselineService(t))

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericAccountID, acc.ID())
		assert.Equal(t, mocks.GenericPublicKey, acc.PublicKey())
	})

	t.Run("handles invalid account", func(t *testing.T) {
		t.Parallel()

		_, err := account.New("Alice", mocks.BaselineSigner(t), mocks.BaselineService(t))

		assert.ErrorAs(t, err, &failure.InvalidAccount{})
	})
}

func TestAccount_SendMoney(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		var submitted *near.SignedTransaction
		service := mocks.BaselineService(t)
		service.SendTransactionFunc = func(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
			submitted = signed
			outcome := mocks.GenericOutcome
			outcome.FinalExecutionStatus = level
			return &outcome, nil
		}

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), service)
		require.NoError(t, err)

		send, err := acc.SendMoney(mocks.GenericReceiverID, mocks.GenericAmount)
		require.NoError(t, err)
		outcome, err := send.Transact()
		require.NoError(t, err)

		require.NotNil(t, submitted)
		tx := submitted.Transaction()
		assert.Equal(t, mocks.GenericAccountID, tx.SignerID)
		assert.Equal(t, mocks.GenericReceiverID, tx.ReceiverID)
		assert.Equal(t, uint64(mocks.GenericNonce+1), tx.Nonce)
		assert.Equal(t, mocks.GenericHash, tx.BlockHash)
		assert.Equal(t, []near.Action{near.Transfer{Deposit: mocks.GenericAmount}}, tx.Actions)
		assert.Equal(t, send.Hash(), submitted.Hash())
		assert.Equal(t, near.DefaultWaitUntil, outcome.FinalExecutionStatus)
	})

	t.Run("uses configured finality", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.BlockFunc = func(finality near.Finality) (*near.BlockHeader, error) {
			assert.Equal(t, near.FinalityOptimistic, finality)
			header := mocks.GenericBlockHeader
			return &header, nil
		}

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), service, account.WithFinality(near.FinalityOptimistic))
		require.NoError(t, err)

		_, err = acc.SendMoney(mocks.GenericReceiverID, mocks.GenericAmount)
		assert.NoError(t, err)
	})

	t.Run("handles missing access key", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.AccessKeyFunc = func(near.AccountID, near.PublicKey) (*near.AccessKeyView, error) {
			return nil, failure.AccessKeyNotFound{}
		}

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), service)
		require.NoError(t, err)

		_, err = acc.SendMoney(mocks.GenericReceiverID, mocks.GenericAmount)

		assert.ErrorAs(t, err, &failure.AccessKeyNotFound{})
	})

	t.Run("handles block failure", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.BlockFunc = func(near.Finality) (*near.BlockHeader, error) {
			return nil, mocks.GenericError
		}

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), service)
		require.NoError(t, err)

		_, err = acc.SendMoney(mocks.GenericReceiverID, mocks.GenericAmount)

		assert.ErrorIs(t, err, mocks.GenericError)
	})

	t.Run("handles signer failure", func(t *testing.T) {
		t.Parallel()

		signer := mocks.BaselineSigner(t)
		signer.SignFunc = func([]byte) (near.Signature, error) {
			return near.Signature{}, mocks.GenericError
		}

		acc, err := account.New(mocks.GenericAccountID, signer, mocks.BaselineService(t))
		require.NoError(t, err)

		_, err = acc.SendMoney(mocks.GenericReceiverID, mocks.GenericAmount)

		assert.ErrorAs(t, err, &failure.SigningFailed{})
	})
}

func TestAccount_Transactions(t *testing.T) {
	key := near.PublicKey{Type: near.ED25519, Data: make([]byte, 32)}

	t.Run("create sub-account", func(t *testing.T) {
		t.Parallel()

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), mocks.BaselineService(t))
		require.NoError(t, err)

		send, err := acc.CreateSubAccount("sub", key, mocks.GenericAmount)
		require.NoError(t, err)
		assert.NotEqual(t, near.ZeroHash, send.Hash())
	})

	t.Run("handles invalid sub-account", func(t *testing.T) {
		t.Parallel()

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), mocks.BaselineService(t))
		require.NoError(t, err)

		_, err = acc.CreateSubAccount("Not Valid", key, mocks.GenericAmount)

		assert.ErrorAs(t, err, &failure.InvalidAccount{})
	})

	t.Run("function call uses default gas", func(t *testing.T) {
		t.Parallel()

		var call near.FunctionCall
		service := mocks.BaselineService(t)
		service.SendTransactionFunc = func(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
			call = signed.Transaction().Actions[0].(near.FunctionCall)
			outcome := mocks.GenericOutcome
			return &outcome, nil
		}

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), service, account.WithGas(5))
		require.NoError(t, err)

		send, err := acc.FunctionCall("app.near", "set_status", []byte(`{}`), 0, near.NewBalance(0))
		require.NoError(t, err)
		_, err = send.Transact()
		require.NoError(t, err)

		assert.Equal(t, uint64(5), call.Gas)
		assert.Equal(t, "set_status", call.MethodName)
	})

	t.Run("handles invalid action", func(t *testing.T) {
		t.Parallel()

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), mocks.BaselineService(t))
		require.NoError(t, err)

		_, err = acc.DeployContract(nil)

		assert.ErrorAs(t, err, &failure.InvalidAction{})
	})

	t.Run("key management targets own account", func(t *testing.T) {
		t.Parallel()

		var receivers []near.AccountID
		service := mocks.BaselineService(t)
		service.SendTransactionFunc = func(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
			receivers = append(receivers, signed.Transaction().ReceiverID)
			outcome := mocks.GenericOutcome
			return &outcome, nil
		}

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), service)
		require.NoError(t, err)

		add, err := acc.AddKey(key, near.FullAccessKey())
		require.NoError(t, err)
		_, err = add.Transact()
		require.NoError(t, err)

		del, err := acc.DeleteKey(key)
		require.NoError(t, err)
		_, err = del.Transact()
		require.NoError(t, err)

		assert.Equal(t, []near.AccountID{mocks.GenericAccountID, mocks.GenericAccountID}, receivers)
	})
}

func TestAccount_Balance(t *testing.T) {
	t.Run("storage cost exceeds stake", func(t *testing.T) {
		t.Parallel()

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), mocks.BaselineService(t))
		require.NoError(t, err)

		balance, err := acc.Balance()

		require.NoError(t, err)
		assert.Equal(t, "1000000", balance.Total.String())
		assert.Equal(t, "1000", balance.StateStaked.String())
		assert.Equal(t, "0", balance.Staked.String())
		assert.Equal(t, "999000", balance.Available.String())
	})

	t.Run("stake exceeds storage cost", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.AccountFunc = func(near.AccountID) (*near.AccountView, error) {
			view := near.AccountView{
				Amount:       mocks.GenericAmount,
				Locked:       near.NewBalance(5000),
				StorageUsage: 100,
			}
			return &view, nil
		}

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), service)
		require.NoError(t, err)

		balance, err := acc.Balance()

		require.NoError(t, err)
		assert.Equal(t, "1005000", balance.Total.String())
		assert.Equal(t, "5000", balance.Staked.String())
		assert.Equal(t, "1000000", balance.Available.String())
	})

	t.Run("handles protocol config failure", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.ProtocolConfigFunc = func(near.Finality) (*near.ProtocolConfig, error) {
			return nil, mocks.GenericError
		}

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), service)
		require.NoError(t, err)

		_, err = acc.Balance()

		assert.ErrorIs(t, err, mocks.GenericError)
	})
}

func TestAccount_ViewFunction(t *testing.T) {
	t.Run("encodes arguments", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.CallFunctionFunc = func(contract near.AccountID, method string, args []byte) (*near.CallResult, error) {
			assert.Equal(t, near.AccountID("app.near"), contract)
			assert.Equal(t, "get_status", method)
			assert.JSONEq(t, `{"account_id":"alice.near"}`, string(args))
			result := near.CallResult{Result: near.ByteArray(`"hello"`)}
			return &result, nil
		}

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), service)
		require.NoError(t, err)

		result, err := acc.ViewFunction("app.near", "get_status", map[string]string{"account_id": "alice.near"})
		require.NoError(t, err)

		var status string
		require.NoError(t, result.Decode(&status))
		assert.Equal(t, "hello", status)
	})

	t.Run("passes raw arguments", func(t *testing.T) {
		t.Parallel()

		service := mocks.BaselineService(t)
		service.CallFunctionFunc = func(_ near.AccountID, _ string, args []byte) (*near.CallResult, error) {
			assert.Equal(t, []byte("raw"), args)
			result := near.CallResult{}
			return &result, nil
		}

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), service)
		require.NoError(t, err)

		_, err = acc.ViewFunction("app.near", "get_status", []byte("raw"))
		assert.NoError(t, err)
	})
}

func TestAccount_Delegate(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), mocks.BaselineService(t))
		require.NoError(t, err)

		call := near.FunctionCall{MethodName: "set_status", Gas: 1}
		signed, err := acc.Delegate("app.near", 50, call)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericAccountID, signed.DelegateAction.SenderID)
		assert.Equal(t, near.AccountID("app.near"), signed.DelegateAction.ReceiverID)
		assert.Equal(t, uint64(mocks.GenericNonce+1), signed.DelegateAction.Nonce)
		assert.Equal(t, uint64(mocks.GenericHeight+50), signed.DelegateAction.MaxBlockHeight)
		assert.Equal(t, mocks.GenericSignature, signed.Signature)
	})

	t.Run("handles nested delegate", func(t *testing.T) {
		t.Parallel()

		acc, err := account.New(mocks.GenericAccountID, mocks.BaselineSigner(t), mocks.BaselineService(t))
		require.NoError(t, err)

		_, err = acc.Delegate("app.near", 50, near.Delegate{SignedDelegateAction: mocks.GenericSignedDelegateAction()})

		assert.ErrorAs(t, err, &failure.NestedDelegate{})
	})
}
