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

package action

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/optakt/near-go/models/near"
)

// Builder accumulates an ordered list of actions. It is meant to be used by a
// single goroutine; concurrent use requires external locking.
type Builder struct {
	actions []near.Action
	err     error
}

// New creates an empty action builder.
func New() *Builder {
	b := Builder{
		actions: make([]near.Action, 0, 1),
	}
	return &b
}

// Add appends an arbitrary action.
func (b *Builder) Add(action near.Action) *Builder {
	b.actions = append(b.actions, action)
	return b
}

func (b *Builder) CreateAccount() *Builder {
	return b.Add(near.CreateAccount{})
}

func (b *Builder) DeployContract(code []byte) *Builder {
	return b.Add(near.DeployContract{Code: code})
}

func (b *Builder) FunctionCall(method string, args []byte, gas uint64, deposit near.Balance) *Builder {
	call := near.FunctionCall{
		MethodName: method,
		Args:       args,
		Gas:        gas,
		Deposit:    deposit,
	}
	return b.Add(call)
}

// FunctionCallJSON appends a function call whose arguments are the JSON
// encoding of the given value. Encoding errors are returned by Build.
func (b *Builder) FunctionCallJSON(method string, args interface{}, gas uint64, deposit near.Balance) *Builder {
	data, err := json.Marshal(args)
	if err != nil {
		if b.err == nil {
			b.err = fmt.Errorf("could not encode arguments of %s (index: %d): %w", method, len(b.actions), err)
		}
		return b
	}
	return b.FunctionCall(method, data, gas, deposit)
}

func (b *Builder) Transfer(deposit near.Balance) *Builder {
	return b.Add(near.Transfer{Deposit: deposit})
}

func (b *Builder) Stake(amount near.Balance, key near.PublicKey) *Builder {
	return b.Add(near.Stake{Stake: amount, PublicKey: key})
}

func (b *Builder) AddKey(key near.PublicKey, access near.AccessKey) *Builder {
	return b.Add(near.AddKey{PublicKey: key, AccessKey: access})
}

func (b *Builder) DeleteKey(key near.PublicKey) *Builder {
	return b.Add(near.DeleteKey{PublicKey: key})
}

func (b *Builder) DeleteAccount(beneficiary near.AccountID) *Builder {
	return b.Add(near.DeleteAccount{BeneficiaryID: beneficiary})
}

func (b *Builder) Delegate(signed near.SignedDelegateAction) *Builder {
	return b.Add(near.Delegate{SignedDelegateAction: signed})
}

// Len returns the number of actions added so far.
func (b *Builder) Len() int {
	return len(b.actions)
}

// Build validates the accumulated actions and returns a copy of them, in the
// order they were added. Later changes to the builder do not affect the
// returned list.
func (b *Builder) Build() ([]near.Action, error) {
	if b.err != nil {
		return nil, b.err
	}
	err := Validate(b.actions)
	if err != nil {
		return nil, err
	}
	return near.CloneActions(b.actions), nil
}
