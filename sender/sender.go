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

package sender

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
)

// Service represents something that can submit signed transactions and report
// their status.
type Service interface {
	SendTransaction(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
	TransactionStatus(hash near.Hash, sender near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
}

// Sender submits one signed transaction. Each submission is a single call to
// the service, without retries, and a sender can only submit once.
//
// Abandoning a submission on the client side does not cancel it on the
// ledger. Callers that need bounded waits should submit without waiting and
// poll the status of the transaction hash instead.
type Sender struct {
	log     zerolog.Logger
	signed  *near.SignedTransaction
	service Service

	mu        sync.Mutex
	submitted bool
}

// New creates a sender for the signed transaction.
func New(signed *near.SignedTransaction, service Service, options ...func(*Config)) *Sender {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	s := Sender{
		log: cfg.Log.With().
			Str("component", "sender").
			Stringer("hash", signed.Hash()).
			Logger(),
		signed:  signed,
		service: service,
	}

	return &s
}

// Hash returns the hash of the signed transaction, which can be used to poll
// its status independently. It does not do any I/O.
func (s *Sender) Hash() near.Hash {
	return s.signed.Hash()
}

// Transact submits the transaction and waits for the default level.
func (s *Sender) Transact() (*near.ExecutionOutcome, error) {
	return s.Submit(near.DefaultWaitUntil)
}

// TransactAsync submits the transaction without waiting for it to be
// included, and returns its hash.
func (s *Sender) TransactAsync() (near.Hash, error) {
	_, err := s.Submit(near.None)
	if err != nil {
		return near.ZeroHash, err
	}
	return s.Hash(), nil
}

// TransactAdvanced submits the transaction and waits for the level given by
// its wire name, such as `INCLUDED_FINAL`.
func (s *Sender) TransactAdvanced(level string) (*near.ExecutionOutcome, error) {
	status, err := near.ParseTxExecutionStatus(level)
	if err != nil {
		return nil, failure.InvalidStatus{
			Description: failure.NewDescription("unknown wait-until level", failure.WithErr(err)),
			Status:      level,
		}
	}
	return s.Submit(status)
}

// Submit sends the transaction and blocks until the service reports that the
// given level was reached.
//
// A rejection by the ledger is returned as failure.SubmissionRejected; the
// transaction was not accepted. Any other failure is returned as
// failure.TransportError; the transaction may or may not have been accepted,
// and its status should be checked before submitting it again. When the
// transaction was executed but failed, the outcome is returned along with a
// failure.ExecutionFailed error.
func (s *Sender) Submit(level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {

	if !level.Valid() {
		return nil, failure.InvalidStatus{
			Description: failure.NewDescription("unknown wait-until level"),
			Status:      level.String(),
		}
	}

	s.mu.Lock()
	if s.submitted {
		s.mu.Unlock()
		return nil, failure.AlreadySubmitted{
			Description: failure.NewDescription("signed transactions can only be submitted once"),
			Hash:        s.Hash().String(),
		}
	}
	s.submitted = true
	s.mu.Unlock()

	log := s.log.With().Stringer("wait_until", level).Logger()
	log.Debug().Msg("submitting transaction")

	outcome, err := s.service.SendTransaction(s.signed, level)
	if err != nil {
		err = s.classify(err)
		log.Warn().Err(err).Msg("transaction submission failed")
		return nil, err
	}

	outcome = s.complete(outcome, level)
	if outcome.FinalExecutionStatus < level {
		log.Warn().
			Stringer("reached", outcome.FinalExecutionStatus).
			Msg("service reported a lower level than requested")
	}

	err = s.check(outcome)
	if err != nil {
		log.Info().Str("kind", outcome.FailureKind()).Msg("transaction execution failed")
		return outcome, err
	}

	log.Info().Stringer("reached", outcome.FinalExecutionStatus).Msg("transaction submitted")

	return outcome, nil
}

// Status queries the outcome of the transaction at the given level. It can be
// used whether or not the transaction was submitted through this sender.
func (s *Sender) Status(level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {

	if !level.Valid() {
		return nil, failure.InvalidStatus{
			Description: failure.NewDescription("unknown wait-until level"),
			Status:      level.String(),
		}
	}

	outcome, err := s.service.TransactionStatus(s.Hash(), s.signed.SignerID(), level)
	var unknown failure.UnknownTransaction
	if errors.As(err, &unknown) {
		return nil, unknown
	}
	if err != nil {
		return nil, s.classify(err)
	}

	outcome = s.complete(outcome, level)
	err = s.check(outcome)
	if err != nil {
		return outcome, err
	}

	return outcome, nil
}

// Submitted returns whether the transaction was handed to the service.
func (s *Sender) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

func (s *Sender) classify(err error) error {
	var rejected failure.SubmissionRejected
	if errors.As(err, &rejected) {
		if rejected.Hash == "" {
			rejected.Hash = s.Hash().String()
		}
		return rejected
	}
	var transport failure.TransportError
	if errors.As(err, &transport) {
		if transport.Hash == "" {
			transport.Hash = s.Hash().String()
		}
		return transport
	}
	return failure.TransportError{
		Description: failure.NewDescription("unknown submission outcome", failure.WithErr(err)),
		Hash:        s.Hash().String(),
		Err:         err,
	}
}

func (s *Sender) complete(outcome *near.ExecutionOutcome, level near.TxExecutionStatus) *near.ExecutionOutcome {
	if outcome == nil {
		outcome = &near.ExecutionOutcome{FinalExecutionStatus: level}
	}
	if outcome.Transaction.Hash.IsZero() {
		tx := s.signed.Transaction()
		outcome.Transaction = near.TransactionView{
			SignerID:   tx.SignerID,
			PublicKey:  tx.PublicKey,
			Nonce:      tx.Nonce,
			ReceiverID: tx.ReceiverID,
			Hash:       s.Hash(),
		}
	}
	return outcome
}

func (s *Sender) check(outcome *near.ExecutionOutcome) error {
	if !outcome.Failed() {
		return nil
	}
	return failure.ExecutionFailed{
		Description: failure.NewDescription("transaction execution failed",
			failure.WithString("signer", string(outcome.Transaction.SignerID)),
		),
		Hash: s.Hash().String(),
		Kind: outcome.FailureKind(),
	}
}
