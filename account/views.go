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
	"fmt"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/optakt/near-go/models/near"
)

// ViewFunction calls a view method of the contract. Arguments given as bytes
// are passed as they are, anything else is encoded as JSON.
func (a *Account) ViewFunction(contractID near.AccountID, method string, args interface{}) (*near.CallResult, error) {

	var data []byte
	switch v := args.(type) {
	case nil:
	case []byte:
		data = v
	default:
		var err error
		data, err = json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("could not encode arguments: %w", err)
		}
	}

	result, err := a.service.CallFunction(contractID, method, data)
	if err != nil {
		return nil, fmt.Errorf("could not call view function %s on %s: %w", method, contractID, err)
	}

	return result, nil
}

// ViewState returns the contract state of the account whose keys start with
// the prefix.
func (a *Account) ViewState(prefix []byte) (*near.ViewStateResult, error) {
	result, err := a.service.ViewState(a.id, prefix)
	if err != nil {
		return nil, fmt.Errorf("could not view contract state: %w", err)
	}
	return result, nil
}

// AccessKeys returns all access keys of the account.
func (a *Account) AccessKeys() (*near.AccessKeyList, error) {
	list, err := a.service.AccessKeys(a.id)
	if err != nil {
		return nil, fmt.Errorf("could not list access keys: %w", err)
	}
	return list, nil
}

// State returns the account's state.
func (a *Account) State() (*near.AccountView, error) {
	view, err := a.service.Account(a.id)
	if err != nil {
		return nil, fmt.Errorf("could not get account state: %w", err)
	}
	return view, nil
}

// Balance returns the balance of the account. The tokens that pay for the
// account's storage are locked; if the account also stakes, only the larger
// of both amounts is unavailable.
func (a *Account) Balance() (*near.AccountBalance, error) {

	var (
		config *near.ProtocolConfig
		state  *near.AccountView
		group  errgroup.Group
	)

	group.Go(func() error {
		var err error
		config, err = a.service.ProtocolConfig(a.cfg.Finality)
		if err != nil {
			return fmt.Errorf("could not get protocol config: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		state, err = a.State()
		return err
	})

	err := group.Wait()
	if err != nil {
		return nil, err
	}

	return computeBalance(config.RuntimeConfig.StorageAmountPerByte, state)
}

func computeBalance(costPerByte near.Balance, state *near.AccountView) (*near.AccountBalance, error) {

	stateStaked, err := costPerByte.MulUint64(state.StorageUsage)
	if err != nil {
		return nil, fmt.Errorf("could not compute storage cost: %w", err)
	}

	total, err := state.Locked.Add(state.Amount)
	if err != nil {
		return nil, fmt.Errorf("could not compute total balance: %w", err)
	}

	staked := state.Locked
	locked := staked
	if stateStaked.Cmp(locked) > 0 {
		locked = stateStaked
	}

	available, err := total.Sub(locked)
	if err != nil {
		available = near.NewBalance(0)
	}

	balance := near.AccountBalance{
		Total:       total,
		StateStaked: stateStaked,
		Staked:      staked,
		Available:   available,
	}

	return &balance, nil
}
