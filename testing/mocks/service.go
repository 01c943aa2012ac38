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

package mocks

import (
	"testing"

	"github.com/optakt/near-go/models/near"
)

type Service struct {
	AccessKeyFunc         func(account near.AccountID, key near.PublicKey) (*near.AccessKeyView, error)
	AccessKeysFunc        func(account near.AccountID) (*near.AccessKeyList, error)
	AccountFunc           func(account near.AccountID) (*near.AccountView, error)
	CallFunctionFunc      func(contract near.AccountID, method string, args []byte) (*near.CallResult, error)
	ViewStateFunc         func(contract near.AccountID, prefix []byte) (*near.ViewStateResult, error)
	BlockFunc             func(finality near.Finality) (*near.BlockHeader, error)
	ProtocolConfigFunc    func(finality near.Finality) (*near.ProtocolConfig, error)
	StatusFunc            func() (*near.NodeStatus, error)
	SendTransactionFunc   func(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
	TransactionStatusFunc func(hash near.Hash, sender near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
}

func BaselineService(t *testing.T) *Service {
	t.Helper()

	s := Service{
		AccessKeyFunc: func(near.AccountID, near.PublicKey) (*near.AccessKeyView, error) {
			view := GenericAccessKeyView
			return &view, nil
		},
		AccessKeysFunc: func(near.AccountID) (*near.AccessKeyList, error) {
			list := near.AccessKeyList{
				Keys:        []near.AccessKeyInfo{{PublicKey: GenericPublicKey, AccessKey: near.AccessKey{Nonce: GenericNonce}}},
				BlockHeight: GenericHeight,
				BlockHash:   GenericHash,
			}
			return &list, nil
		},
		AccountFunc: func(near.AccountID) (*near.AccountView, error) {
			view := near.AccountView{
				Amount:       GenericAmount,
				StorageUsage: 100,
				BlockHeight:  GenericHeight,
				BlockHash:    GenericHash,
			}
			return &view, nil
		},
		CallFunctionFunc: func(near.AccountID, string, []byte) (*near.CallResult, error) {
			result := near.CallResult{
				Result:      near.ByteArray(`"hello"`),
				BlockHeight: GenericHeight,
				BlockHash:   GenericHash,
			}
			return &result, nil
		},
		ViewStateFunc: func(near.AccountID, []byte) (*near.ViewStateResult, error) {
			result := near.ViewStateResult{
				Values:      []near.StateItem{{Key: []byte("STATE"), Value: GenericBytes}},
				BlockHeight: GenericHeight,
				BlockHash:   GenericHash,
			}
			return &result, nil
		},
		BlockFunc: func(near.Finality) (*near.BlockHeader, error) {
			header := GenericBlockHeader
			return &header, nil
		},
		ProtocolConfigFunc: func(near.Finality) (*near.ProtocolConfig, error) {
			config := near.ProtocolConfig{
				ChainID: "testnet",
				RuntimeConfig: near.RuntimeConfig{
					StorageAmountPerByte: near.NewBalance(10),
				},
			}
			return &config, nil
		},
		StatusFunc: func() (*near.NodeStatus, error) {
			status := near.NodeStatus{
				ChainID: "testnet",
				SyncInfo: near.SyncInfo{
					LatestBlockHash:   GenericHash,
					LatestBlockHeight: GenericHeight,
				},
			}
			return &status, nil
		},
		SendTransactionFunc: func(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
			outcome := GenericOutcome
			outcome.FinalExecutionStatus = level
			outcome.Transaction.Hash = signed.Hash()
			return &outcome, nil
		},
		TransactionStatusFunc: func(hash near.Hash, _ near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
			outcome := GenericOutcome
			outcome.FinalExecutionStatus = level
			outcome.Transaction.Hash = hash
			return &outcome, nil
		},
	}

	return &s
}

func (s *Service) AccessKey(account near.AccountID, key near.PublicKey) (*near.AccessKeyView, error) {
	return s.AccessKeyFunc(account, key)
}

func (s *Service) AccessKeys(account near.AccountID) (*near.AccessKeyList, error) {
	return s.AccessKeysFunc(account)
}

func (s *Service) Account(account near.AccountID) (*near.AccountView, error) {
	return s.AccountFunc(account)
}

func (s *Service) CallFunction(contract near.AccountID, method string, args []byte) (*near.CallResult, error) {
	return s.CallFunctionFunc(contract, method, args)
}

func (s *Service) ViewState(contract near.AccountID, prefix []byte) (*near.ViewStateResult, error) {
	return s.ViewStateFunc(contract, prefix)
}

func (s *Service) Block(finality near.Finality) (*near.BlockHeader, error) {
	return s.BlockFunc(finality)
}

func (s *Service) ProtocolConfig(finality near.Finality) (*near.ProtocolConfig, error) {
	return s.ProtocolConfigFunc(finality)
}

func (s *Service) Status() (*near.NodeStatus, error) {
	return s.StatusFunc()
}

func (s *Service) SendTransaction(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
	return s.SendTransactionFunc(signed, level)
}

func (s *Service) TransactionStatus(hash near.Hash, sender near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
	return s.TransactionStatusFunc(hash, sender, level)
}
