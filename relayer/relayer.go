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

package relayer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/optakt/near-go/action"
	"github.com/optakt/near-go/delegate"
	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/nonce"
	"github.com/optakt/near-go/sender"
	"github.com/optakt/near-go/transaction"
)

// ErrStopped is returned for delegate actions relayed after the relayer was
// stopped.
var ErrStopped = errors.New("relayer stopped")

// Results recorded in the relay metrics.
const (
	ResultRelayed   = "relayed"
	ResultInvalid   = "invalid"
	ResultForbidden = "forbidden"
	ResultExpired   = "expired"
	ResultRejected  = "rejected"
	ResultFailed    = "failed"
	ResultTransport = "transport"
)

// Service represents something that can query the ledger and submit
// transactions to it.
type Service interface {
	AccessKey(account near.AccountID, key near.PublicKey) (*near.AccessKeyView, error)
	Block(finality near.Finality) (*near.BlockHeader, error)
	SendTransaction(signed *near.SignedTransaction, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
	TransactionStatus(hash near.Hash, sender near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error)
}

// Relayer wraps signed delegate actions into transactions signed by its own
// key and pays for their execution. All transactions of the relayer key go
// through a single worker, so that their nonces never collide.
type Relayer struct {
	cfg     Config
	log     zerolog.Logger
	id      near.AccountID
	signer  transaction.Signer
	service Service
	nonces  *nonce.Resolver
	allowed map[near.AccountID]struct{}

	queue *queue
	wake  chan struct{}
	stop  chan struct{}
	wg    *sync.WaitGroup

	mu     sync.Mutex
	closed bool

	// Only accessed by the worker.
	last uint64
}

type job struct {
	signed *near.SignedDelegateAction
	header *near.BlockHeader
	done   chan result
}

type result struct {
	outcome *near.ExecutionOutcome
	err     error
}

// New creates a relayer for the account and starts its worker.
func New(id near.AccountID, signer transaction.Signer, service Service, options ...func(*Config)) (*Relayer, error) {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	err := id.Validate()
	if err != nil {
		return nil, failure.InvalidAccount{
			Description: failure.NewDescription("invalid relayer account", failure.WithErr(err)),
			AccountID:   string(id),
		}
	}
	if !cfg.Level.Valid() {
		return nil, failure.InvalidStatus{
			Description: failure.NewDescription("invalid submission level"),
			Status:      cfg.Level.String(),
		}
	}

	allowed := make(map[near.AccountID]struct{}, len(cfg.Allowed))
	for _, senderID := range cfg.Allowed {
		allowed[senderID] = struct{}{}
	}

	r := Relayer{
		cfg: cfg,
		log: cfg.Log.With().
			Str("component", "relayer").
			Str("relayer", string(id)).
			Stringer("key", signer.PublicKey()).
			Logger(),
		id:      id,
		signer:  signer,
		service: service,
		nonces:  nonce.New(service),
		allowed: allowed,
		queue:   newQueue(),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		wg:      &sync.WaitGroup{},
	}

	r.wg.Add(1)
	go r.process()

	return &r, nil
}

// ID returns the account of the relayer.
func (r *Relayer) ID() near.AccountID {
	return r.id
}

// Relay checks the signed delegate action, wraps it into a transaction of the
// relayer and submits it at the configured level. Malformed, forbidden and
// expired delegate actions are refused before anything is submitted.
func (r *Relayer) Relay(signed *near.SignedDelegateAction) (*near.ExecutionOutcome, error) {

	start := time.Now()
	outcome, err := r.relay(signed)
	res := classify(err)
	r.cfg.Metrics.Relayed(res, time.Since(start))

	log := r.log.With().
		Str("sender", string(signed.DelegateAction.SenderID)).
		Str("receiver", string(signed.DelegateAction.ReceiverID)).
		Str("result", res).
		Logger()
	if err != nil {
		log.Warn().Err(err).Msg("delegate action not relayed")
		return outcome, err
	}
	executors := outcome.Executors()
	names := make([]string, 0, len(executors))
	for _, executor := range executors {
		names = append(names, string(executor))
	}
	log.Info().Stringer("hash", outcome.Transaction.Hash).Strs("executors", names).Msg("delegate action relayed")

	return outcome, nil
}

// Status returns the outcome of a transaction at the given level. Without a
// sender, the transaction is looked up as one relayed by this relayer.
func (r *Relayer) Status(hash near.Hash, senderID near.AccountID, level near.TxExecutionStatus) (*near.ExecutionOutcome, error) {
	if senderID == "" {
		senderID = r.id
	}
	outcome, err := r.service.TransactionStatus(hash, senderID, level)
	if err != nil {
		return nil, fmt.Errorf("could not get transaction status: %w", err)
	}
	return outcome, nil
}

// Stop stops the worker. Delegate actions that are still queued fail with
// ErrStopped.
func (r *Relayer) Stop() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	close(r.stop)
	r.wg.Wait()
}

func (r *Relayer) relay(signed *near.SignedDelegateAction) (*near.ExecutionOutcome, error) {

	err := action.Validate([]near.Action{delegate.Action(signed)})
	if err != nil {
		return nil, err
	}

	senderID := signed.DelegateAction.SenderID
	if len(r.allowed) > 0 {
		_, ok := r.allowed[senderID]
		if !ok {
			return nil, failure.SenderNotAllowed{
				Description: failure.NewDescription("sender is not on the allow list"),
				SenderID:    string(senderID),
			}
		}
	}

	err = delegate.Verify(signed)
	if err != nil {
		return nil, err
	}

	header, err := r.service.Block(r.cfg.Finality)
	if err != nil {
		return nil, fmt.Errorf("could not get current block: %w", err)
	}
	if delegate.Expired(signed, header.Height) {
		return nil, failure.DelegateExpired{
			Description: failure.NewDescription("delegate action expired",
				failure.WithString("sender", string(senderID)),
				failure.WithUint64("max_block_height", signed.DelegateAction.MaxBlockHeight),
				failure.WithUint64("height", header.Height),
			),
			MaxBlockHeight: signed.DelegateAction.MaxBlockHeight,
			Height:         header.Height,
		}
	}

	j := job{
		signed: signed,
		header: header,
		done:   make(chan result, 1),
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrStopped
	}
	r.queue.PushBack(&j)
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}

	res := <-j.done
	return res.outcome, res.err
}

func (r *Relayer) process() {
	defer r.wg.Done()

	for {
		select {
		case <-r.stop:
			for j := r.queue.PopFront(); j != nil; j = r.queue.PopFront() {
				j.done <- result{err: ErrStopped}
			}
			return
		case <-r.wake:
		}

		for j := r.queue.PopFront(); j != nil; j = r.queue.PopFront() {
			outcome, err := r.submit(j)
			j.done <- result{outcome: outcome, err: err}
		}
	}
}

// submit signs and submits the outer transaction for one job. The nonce is
// the next one known by the ledger, unless a previous transaction of the
// worker used it already and is not visible yet.
func (r *Relayer) submit(j *job) (*near.ExecutionOutcome, error) {

	key := r.signer.PublicKey()
	next, err := r.nonces.Next(r.id, key)
	if err != nil {
		return nil, fmt.Errorf("could not resolve relayer nonce: %w", err)
	}
	if next <= r.last {
		next = r.last + 1
	}

	tx, err := delegate.Wrap(r.id, key, next, j.header.Hash, j.signed)
	if err != nil {
		return nil, fmt.Errorf("could not wrap delegate action: %w", err)
	}
	signed, err := transaction.Sign(tx, r.signer)
	if err != nil {
		return nil, fmt.Errorf("could not sign relayer transaction: %w", err)
	}

	outcome, err := sender.New(signed, r.service, sender.WithLogger(r.cfg.Log)).Submit(r.cfg.Level)

	var rejected failure.SubmissionRejected
	if !errors.As(err, &rejected) {
		r.last = next
	}

	return outcome, err
}

func classify(err error) string {
	switch {
	case err == nil:
		return ResultRelayed
	case errors.As(err, &failure.SenderNotAllowed{}):
		return ResultForbidden
	case errors.As(err, &failure.DelegateExpired{}):
		return ResultExpired
	case errors.As(err, &failure.SubmissionRejected{}):
		return ResultRejected
	case errors.As(err, &failure.ExecutionFailed{}):
		return ResultFailed
	case errors.As(err, &failure.TransportError{}):
		return ResultTransport
	default:
		return ResultInvalid
	}
}
