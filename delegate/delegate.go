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

package delegate

import (
	"crypto/sha256"
	"fmt"

	"github.com/optakt/near-go/action"
	"github.com/optakt/near-go/encoding/borsh"
	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/signer"
	"github.com/optakt/near-go/transaction"
)

// SignaturePrefix is prepended to the encoding of a delegate action before
// hashing, so that its signature can never be replayed as the signature of a
// transaction (NEP-461).
const SignaturePrefix = uint32(1<<30 + 366)

// Make creates a delegate action for the inner sender. The actions can not
// contain delegate actions; delegation does not nest. The maximum block height
// is given by the caller, usually as the current height plus a margin.
func Make(senderID near.AccountID, receiverID near.AccountID, actions []near.Action, nonce uint64, maxBlockHeight uint64, key near.PublicKey) (*near.DelegateAction, error) {

	err := senderID.Validate()
	if err != nil {
		return nil, failure.InvalidAccount{
			Description: failure.NewDescription("invalid delegate sender", failure.WithErr(err)),
			AccountID:   string(senderID),
		}
	}
	err = receiverID.Validate()
	if err != nil {
		return nil, failure.InvalidAccount{
			Description: failure.NewDescription("invalid delegate receiver", failure.WithErr(err)),
			AccountID:   string(receiverID),
		}
	}
	err = key.Validate()
	if err != nil {
		return nil, failure.InvalidKey{
			Description: failure.NewDescription("invalid delegate key", failure.WithErr(err)),
			Key:         key.String(),
		}
	}
	if nonce == 0 {
		return nil, failure.InvalidNonce{
			Description: failure.NewDescription("nonce must be greater than zero"),
			Nonce:       nonce,
		}
	}
	if len(actions) == 0 {
		return nil, failure.InvalidTransaction{
			Description: failure.NewDescription("delegate action has no actions",
				failure.WithString("sender", string(senderID)),
			),
		}
	}

	err = action.ValidateInner(actions)
	if err != nil {
		return nil, err
	}

	delegate := near.DelegateAction{
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Actions:        near.CloneActions(actions),
		Nonce:          nonce,
		MaxBlockHeight: maxBlockHeight,
		PublicKey:      near.PublicKey{Type: key.Type, Data: append([]byte(nil), key.Data...)},
	}

	return &delegate, nil
}

// Hash returns the hash signed by the inner sender: the SHA-256 of the
// signature prefix followed by the canonical encoding of the delegate action.
func Hash(delegate *near.DelegateAction) (near.Hash, error) {
	data, err := borsh.EncodeDelegateAction(*delegate)
	if err != nil {
		return near.ZeroHash, fmt.Errorf("could not encode delegate action: %w", err)
	}

	w := borsh.NewWriter(4 + len(data))
	w.U32(SignaturePrefix)
	w.Fixed(data)
	payload, err := w.Result()
	if err != nil {
		return near.ZeroHash, fmt.Errorf("could not prefix delegate action: %w", err)
	}

	return sha256.Sum256(payload), nil
}

// Sign signs the delegate action with the inner sender's signer, whose key has
// to match the key of the delegate action.
func Sign(delegate *near.DelegateAction, s transaction.Signer) (*near.SignedDelegateAction, error) {

	key := s.PublicKey()
	if !key.Equal(delegate.PublicKey) {
		return nil, failure.InvalidKey{
			Description: failure.NewDescription("signer key does not match delegate key",
				failure.WithString("delegate_key", delegate.PublicKey.String()),
			),
			Key: key.String(),
		}
	}

	hash, err := Hash(delegate)
	if err != nil {
		return nil, err
	}

	sig, err := s.Sign(hash[:])
	if err != nil {
		return nil, failure.SigningFailed{
			Description: failure.NewDescription("signer could not sign delegate action",
				failure.WithString("sender", string(delegate.SenderID)),
				failure.WithErr(err),
			),
			Err: err,
		}
	}

	signed := near.SignedDelegateAction{
		DelegateAction: delegate.Clone(),
		Signature:      sig,
	}

	return &signed, nil
}

// Verify checks that the signature of the signed delegate action was made by
// the delegate action's key.
func Verify(signed *near.SignedDelegateAction) error {
	hash, err := Hash(&signed.DelegateAction)
	if err != nil {
		return err
	}
	err = signer.Verify(signed.DelegateAction.PublicKey, hash[:], signed.Signature)
	if err != nil {
		return failure.InvalidSignature{
			Description: failure.NewDescription("delegate signature does not verify",
				failure.WithString("sender", string(signed.DelegateAction.SenderID)),
				failure.WithErr(err),
			),
		}
	}
	return nil
}

// Action packages the signed delegate action as a single action of an outer
// transaction.
func Action(signed *near.SignedDelegateAction) near.Delegate {
	return near.Delegate{SignedDelegateAction: signed.Clone()}
}

// Wrap assembles the outer transaction that a relayer signs and pays for. Its
// receiver is the inner sender and its only action is the delegate action.
func Wrap(relayerID near.AccountID, relayerKey near.PublicKey, nonce uint64, blockHash near.Hash, signed *near.SignedDelegateAction) (*near.Transaction, error) {
	actions := []near.Action{Action(signed)}
	tx, err := transaction.Assemble(relayerID, relayerKey, signed.DelegateAction.SenderID, nonce, blockHash, actions)
	if err != nil {
		return nil, fmt.Errorf("could not assemble relay transaction: %w", err)
	}
	return tx, nil
}

// Expired returns whether the signed delegate action can no longer be
// executed at the given block height. The ledger is the authority on expiry;
// this only allows to skip submissions that are known to fail.
func Expired(signed *near.SignedDelegateAction, height uint64) bool {
	return signed.DelegateAction.Expired(height)
}
