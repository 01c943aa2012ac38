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

package account

import (
	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/sender"
)

// SendMoney transfers the amount to the receiver.
func (a *Account) SendMoney(receiverID near.AccountID, amount near.Balance) (*sender.Sender, error) {
	return a.Transaction(receiverID, near.Transfer{Deposit: amount})
}

// CreateAccount creates a new account, funds it with the amount and gives
// full access to it to the key.
func (a *Account) CreateAccount(newID near.AccountID, key near.PublicKey, amount near.Balance) (*sender.Sender, error) {
	return a.Transaction(newID,
		near.CreateAccount{},
		near.Transfer{Deposit: amount},
		near.AddKey{PublicKey: key, AccessKey: near.FullAccessKey()},
	)
}

// CreateSubAccount creates the account `<prefix>.<account>`.
func (a *Account) CreateSubAccount(prefix string, key near.PublicKey, amount near.Balance) (*sender.Sender, error) {
	id := near.AccountID(prefix + "." + string(a.id))
	err := id.Validate()
	if err != nil {
		return nil, failure.InvalidAccount{
			Description: failure.NewDescription("invalid sub-account", failure.WithErr(err)),
			AccountID:   string(id),
		}
	}
	return a.CreateAccount(id, key, amount)
}

// AddKey adds an access key to the account.
func (a *Account) AddKey(key near.PublicKey, access near.AccessKey) (*sender.Sender, error) {
	return a.Transaction(a.id, near.AddKey{PublicKey: key, AccessKey: access})
}

// DeleteKey removes an access key from the account.
func (a *Account) DeleteKey(key near.PublicKey) (*sender.Sender, error) {
	return a.Transaction(a.id, near.DeleteKey{PublicKey: key})
}

// DeployContract deploys the code to the account.
func (a *Account) DeployContract(code []byte) (*sender.Sender, error) {
	return a.Transaction(a.id, near.DeployContract{Code: code})
}

// DeleteAccount deletes the account and sends its remaining balance to the
// beneficiary.
func (a *Account) DeleteAccount(beneficiaryID near.AccountID) (*sender.Sender, error) {
	return a.Transaction(a.id, near.DeleteAccount{BeneficiaryID: beneficiaryID})
}

// FunctionCall calls a method of the contract. A gas of zero uses the
// account's default gas.
func (a *Account) FunctionCall(contractID near.AccountID, method string, args []byte, gas uint64, deposit near.Balance) (*sender.Sender, error) {
	if gas == 0 {
		gas = a.cfg.Gas
	}
	call := near.FunctionCall{
		MethodName: method,
		Args:       args,
		Gas:        gas,
		Deposit:    deposit,
	}
	return a.Transaction(contractID, call)
}
