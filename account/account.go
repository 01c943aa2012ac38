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

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/nonce"
	"github.com/optakt/near-go/sender"
	"github.com/optakt/near-go/transaction"
)

// Service represents something that can query the ledger and submit
// transactions to it.
type Service interface {
	AccessKey(account near.AccountID, key near.PublicKey) (*near.AccessKeyView, error)
	AccessKeys(account near.AccountID) (*near.AccessKeyList, error)
	Account(account near.AccountID) (*near.AccountView, error)
	CallFunction(contract near.AccountID, method string, args []byte) (*near.CallResult, error)
	ViewState(contract near.AccountID, prefix []byte) (*near.ViewStateResult, error)
	Block(finality near.Finality) (*near.BlockHeader, error)
	ProtocolConfig(finality near.Finality) (*near.ProtocolConfig, error)
	SendTransaction(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
	TransactionStatus(hash near.Hash, sender near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
}

// Account signs transactions for one account with one access key. It does
// not serialize its transactions: two transactions created concurrently get
// the same nonce and only one of them can be included.
type Account struct {
	cfg     Config
	log     zerolog.Logger
	id      near.AccountID
	signer  transaction.Signer
	service Service
	nonces  *nonce.Resolver
}

// New creates an account that signs with the given signer.
func New(id near.AccountID, signer transaction.Signer, service Service, options ...func(*Config)) (*Account, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	err := id.Validate()
	if err != nil {
		return nil, failure.InvalidAccount{
			Description: failure.NewDescription("invalid account", failure.WithErr(err)),
			AccountID:   string(id),
		}
	}

	a := Account{
		cfg:     cfg,
		log:     cfg.Log.With().Str("component", "account").Str("account", string(id)).Logger(),
		id:      id,
		signer:  signer,
		service: service,
		nonces:  nonce.New(service),
	}

	return &a, nil
}

// ID returns the identifier of the account.
func (a *Account) ID() near.AccountID {
	return a.id
}

// PublicKey returns the key the account signs with.
func (a *Account) PublicKey() near.PublicKey {
	return a.signer.PublicKey()
}

// SignTransaction assembles and signs a transaction with the given actions.
// The nonce and the reference block are fetched concurrently.
func (a *Account) SignTransaction(receiverID near.AccountID, actions ...near.Action) (*near.SignedTransaction, error) {

	key := a.signer.PublicKey()
	next, header, err := a.reference(key)
	if err != nil {
		return nil, err
	}

	tx, err := transaction.Assemble(a.id, key, receiverID, next, header.Hash, actions)
	if err != nil {
		return nil, fmt.Errorf("could not assemble transaction: %w", err)
	}

	signed, err := transaction.Sign(tx, a.signer)
	if err != nil {
		return nil, fmt.Errorf("could not sign transaction: %w", err)
	}

	a.log.Debug().
		Str("receiver", string(receiverID)).
		Uint64("nonce", next).
		Stringer("hash", signed.Hash()).
		Int("actions", len(actions)).
		Msg("transaction signed")

	return signed, nil
}

// Transaction signs a transaction with the given actions and returns a sender
// ready to submit it.
func (a *Account) Transaction(receiverID near.AccountID, actions ...near.Action) (*sender.Sender, error) {
	signed, err := a.SignTransaction(receiverID, actions...)
	if err != nil {
		return nil, err
	}
	return sender.New(signed, a.service, sender.WithLogger(a.cfg.Log)), nil
}

// reference returns the next nonce of the key and the header of the block
// new transactions refer to.
func (a *Account) reference(key near.PublicKey) (uint64, *near.BlockHeader, error) {

	var (
		next   uint64
		header *near.BlockHeader
		group  errgroup.Group
	)

	group.Go(func() error {
		var err error
		next, err = a.nonces.Next(a.id, key)
		if err != nil {
			return fmt.Errorf("could not resolve nonce: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		header, err = a.service.Block(a.cfg.Finality)
		if err != nil {
			return fmt.Errorf("could not get reference block: %w", err)
		}
		return nil
	})

	err := group.Wait()
	if err != nil {
		return 0, nil, err
	}

	return next, header, nil
}
