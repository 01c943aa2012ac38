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

type Relayer struct {
	IDFunc     func() near.AccountID
	RelayFunc  func(signed *near.SignedDelegateAction) (*near.ExecutionOutcome, error)
	StatusFunc func(hash near.Hash, senderID near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
}

func BaselineRelayer(t *testing.T) *Relayer {
	t.Helper()

	r := Relayer{
		IDFunc: func() near.AccountID {
			return GenericRelayerID
		},
		RelayFunc: func(*near.SignedDelegateAction) (*near.ExecutionOutcome, error) {
			outcome := GenericOutcome
			return &outcome, nil
		},
		StatusFunc: func(hash near.Hash, _ near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
			outcome := GenericOutcome
			outcome.FinalExecutionStatus = level
			outcome.Transaction.Hash = hash
			return &outcome, nil
		},
	}

	return &r
}

func (r *Relayer) ID() near.AccountID {
	return r.IDFunc()
}

func (r *Relayer) Relay(signed *near.SignedDelegateAction) (*near.ExecutionOutcome, error) {
	return r.RelayFunc(signed)
}

func (r *Relayer) Status(hash near.Hash, senderID near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
	return r.StatusFunc(hash, senderID, level)
}
