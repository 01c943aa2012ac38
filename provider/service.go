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

package provider

import (
	"github.com/optakt/near-go/models/near"
)

// Service is the full set of queries and submissions offered by a node.
type Service interface {
	AccessKey(account near.AccountID, key near.PublicKey) (*near.AccessKeyView, error)
	AccessKeys(account near.AccountID) (*near.AccessKeyList, error)
	Account(account near.AccountID) (*near.AccountView, error)
	CallFunction(contract near.AccountID, method string, args []byte) (*near.CallResult, error)
	ViewState(contract near.AccountID, prefix []byte) (*near.ViewStateResult, error)
	Block(finality near.Finality) (*near.BlockHeader, error)
	ProtocolConfig(finality near.Finality) (*near.ProtocolConfig, error)
	Status() (*near.NodeStatus, error)
	SendTransaction(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
	TransactionStatus(hash near.Hash, sender near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
}
