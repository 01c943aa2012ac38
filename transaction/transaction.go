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

package transaction

import (
	"crypto/sha256"
	"fmt"

	"github.com/optakt/near-go/action"
	"github.com/optakt/near-go/encoding/borsh"
	"github.com/optakt/near-go/failure"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/signer"
)

// Assemble creates an unsigned transaction from its parts. It does not do any
// I/O: the nonce and the block hash have to be obtained by the caller right
// before assembling. The actions are copied, so that later changes to the
// given list do not affect the transaction.
func Assemble(signerID near.AccountID, key near.PublicKey, receiverID near.AccountID, nonce uint64, blockHash near.Hash, actions []near.Action) (*near.Transaction, error) {

	err := signerID.Validate()
	if err != nil {
		return nil, failure.InvalidAccount{
			Description: failure.NewDescription("invalid signer", failure.WithErr(err)),
			AccountID:   string(signerID),
		}
	}
	err = receiverID.Validate()
	if err != nil {
		return nil, failure.InvalidAccount{
			Description: failure.NewDescription("invalid receiver", failure.WithErr(err)),
			AccountID:   string(receiverID),
		}
	}
	err = key.Validate()
	if err != nil {
		return nil, failure.InvalidKey{
			Description: failure.NewDescription("invalid signer key", failure.WithErr(err)),
			Key:         key.String(),
		}
	}

	// A nonce of zero can never follow the nonce of an existing access key,
	// and a zero block hash is never a recent block.
	if nonce == 0 {
		return nil, failure.InvalidNonce{
			Description: failure.NewDescription("nonce must be greater than zero"),
			Nonce:       nonce,
		}
	}
	if blockHash.IsZero() {
		return nil, failure.InvalidTransaction{
			Description: failure.NewDescription("missing block hash"),
		}
	}

	if len(actions) == 0 {
		return nil, failure.InvalidTransaction{
			Description: failure.NewDescription("transaction has no actions",
				failure.WithString("signer", string(signerID)),
				failure.WithString("receiver", string(receiverID)),
			),
		}
	}
	err = action.Validate(actions)
	if err != nil {
		return nil, fmt.Errorf("could not validate actions: %w", err)
	}

	tx := near.Transaction{
		SignerID:   signerID,
		PublicKey:  near.PublicKey{Type: key.Type, Data: append([]byte(nil), key.Data...)},
		Nonce:      nonce,
		ReceiverID: receiverID,
		BlockHash:  blockHash,
		Actions:    near.CloneActions(actions),
	}

	return &tx, nil
}

// Encode returns the canonical encoding of the transaction.
func Encode(tx *near.Transaction) ([]byte, error) {
	data, err := borsh.EncodeTransaction(*tx)
	if err != nil {
		return nil, fmt.Errorf("could not encode transaction: %w", err)
	}
	return data, nil
}

// Hash returns the SHA-256 hash of the canonical encoding of the transaction.
// It identifies the transaction on the network and is what gets signed.
func Hash(tx *near.Transaction) (near.Hash, error) {
	data, err := Encode(tx)
	if err != nil {
		return near.ZeroHash, err
	}
	return sha256.Sum256(data), nil
}

// Sign hashes the transaction and signs the hash with the given signer. The
// signer's key has to be the key the transaction was assembled with. Signer
// errors are not retried.
func Sign(tx *near.Transaction, s Signer) (*near.SignedTransaction, error) {

	key := s.PublicKey()
	if !key.Equal(tx.PublicKey) {
		return nil, failure.InvalidKey{
			Description: failure.NewDescription("signer key does not match transaction key",
				failure.WithString("transaction_key", tx.PublicKey.String()),
			),
			Key: key.String(),
		}
	}

	hash, err := Hash(tx)
	if err != nil {
		return nil, err
	}

	sig, err := s.Sign(hash[:])
	if err != nil {
		return nil, failure.SigningFailed{
			Description: failure.NewDescription("signer could not sign transaction hash",
				failure.WithStringer("hash", hash),
				failure.WithErr(err),
			),
			Err: err,
		}
	}
	if sig.Type != key.Type {
		return nil, failure.SigningFailed{
			Description: failure.NewDescription("signature type does not match key type",
				failure.WithStringer("signature_type", sig.Type),
				failure.WithStringer("key_type", key.Type),
			),
		}
	}

	return near.NewSignedTransaction(*tx, sig, hash), nil
}

// Verify checks that the signature of the signed transaction was made over
// its hash with the transaction's key.
func Verify(signed *near.SignedTransaction) error {
	tx := signed.Transaction()
	hash, err := Hash(&tx)
	if err != nil {
		return err
	}
	if hash != signed.Hash() {
		return failure.InvalidSignature{
			Description: failure.NewDescription("transaction hash does not match content",
				failure.WithStringer("hash", signed.Hash()),
				failure.WithStringer("content_hash", hash),
			),
		}
	}
	err = signer.Verify(tx.PublicKey, hash[:], signed.Signature())
	if err != nil {
		return failure.InvalidSignature{
			Description: failure.NewDescription("signature does not verify",
				failure.WithStringer("hash", hash),
				failure.WithErr(err),
			),
		}
	}
	return nil
}
